package component

import "context"

// Configurable is a component whose configuration is declared as a raw
// parameter schema and delivered as a coerced option map.
type Configurable interface {
	// Name returns the component's unique registry name.
	Name() string

	// Schema returns the component's raw parameter schema. It is read
	// once, at registration.
	Schema() map[string]any

	// Configure delivers the coerced option map. The component should
	// store the options verbatim; type validation has already happened.
	Configure(ctx context.Context, opts map[string]any) error

	// Start brings the component up. It is called in registration order.
	Start(ctx context.Context) error

	// Stop tears the component down. It is called in reverse registration
	// order.
	Stop(ctx context.Context) error
}
