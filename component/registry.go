package component

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/confspec/confspec"
	"github.com/confspec/confspec/manifest"
)

// Registry holds configurable components and drives their configuration
// and start/stop lifecycle. All methods are safe for concurrent use.
type Registry struct {
	logger *slog.Logger

	mu      sync.Mutex
	order   []string
	entries map[string]*entry
}

type entry struct {
	component  Configurable
	manifest   *manifest.Manifest
	instanceID string
	started    bool
}

// NewRegistry creates an empty registry. If logger is nil, slog.Default()
// is used.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Register validates the component's schema into a manifest and adds the
// component to the registry. A malformed schema is fatal: the component
// is not registered.
func (r *Registry) Register(c Configurable) error {
	const op = "Registry.Register"

	name := c.Name()
	if name == "" {
		return confspec.NewArgumentError(op, errors.New("component name must not be empty"))
	}

	m, err := manifest.New(c.Schema())
	if err != nil {
		return fmt.Errorf("component %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return confspec.NewArgumentError(op, fmt.Errorf("component %q already registered", name))
	}

	e := &entry{
		component:  c,
		manifest:   m,
		instanceID: uuid.New().String(),
	}
	r.order = append(r.order, name)
	r.entries[name] = e

	r.logger.Debug("registered component",
		"component", name,
		"instance_id", e.instanceID,
		"parameters", m.Len())
	return nil
}

// Names returns the registered component names in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}

// Manifest returns the named component's manifest.
func (r *Registry) Manifest(name string) (*manifest.Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, notFound("Registry.Manifest", name)
	}
	return e.manifest, nil
}

// Configure coerces the supplied raw option values through the named
// component's manifest and delivers the result to the component. A
// validation failure is fatal to the call and the component is not
// touched.
func (r *Registry) Configure(ctx context.Context, name string, values map[string]any) error {
	r.mu.Lock()
	e, ok := r.entries[name]
	r.mu.Unlock()
	if !ok {
		return notFound("Registry.Configure", name)
	}

	opts, err := e.manifest.Apply(values)
	if err != nil {
		return fmt.Errorf("component %q: %w", name, err)
	}

	if err := e.component.Configure(ctx, opts); err != nil {
		return confspec.NewLifecycleError("Registry.Configure",
			fmt.Errorf("component %q: %w", name, err))
	}

	r.logger.Info("configured component",
		"component", name,
		"instance_id", e.instanceID,
		"options", len(opts))
	return nil
}

// StartAll starts every component in registration order. If a start
// fails, components already started by this call are stopped again in
// reverse order and the start error is returned.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var started []*entry
	for _, name := range r.order {
		e := r.entries[name]
		if e.started {
			continue
		}
		if err := e.component.Start(ctx); err != nil {
			r.rollback(ctx, started)
			return confspec.NewLifecycleError("Registry.StartAll",
				fmt.Errorf("component %q: %w", name, err))
		}
		e.started = true
		started = append(started, e)
		r.logger.Info("started component",
			"component", name,
			"instance_id", e.instanceID)
	}
	return nil
}

// rollback stops components started within a failed StartAll, in reverse
// order. Stop errors are logged, not returned; the start error wins.
func (r *Registry) rollback(ctx context.Context, started []*entry) {
	for i := len(started) - 1; i >= 0; i-- {
		e := started[i]
		if err := e.component.Stop(ctx); err != nil {
			r.logger.Warn("failed to stop component during rollback",
				"component", e.component.Name(),
				"error", err)
		}
		e.started = false
	}
}

// StopAll stops every started component in reverse registration order.
// All stop errors are collected and returned together.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		name := r.order[i]
		e := r.entries[name]
		if !e.started {
			continue
		}
		if err := e.component.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("component %q: %w", name, err))
			continue
		}
		e.started = false
		r.logger.Info("stopped component",
			"component", name,
			"instance_id", e.instanceID)
	}
	if len(errs) > 0 {
		return confspec.NewLifecycleError("Registry.StopAll", errors.Join(errs...))
	}
	return nil
}

func notFound(op, name string) error {
	return &confspec.Error{
		Op:   op,
		Kind: confspec.KindArgument,
		Err:  fmt.Errorf("%w: %q", confspec.ErrComponentNotFound, name),
	}
}
