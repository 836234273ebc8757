// Package component provides a start/stop lifecycle registry for
// configurable components.
//
// A component declares its configurable parameters once, as a raw schema
// map. The registry validates the schema into a manifest at registration
// time, and on each configuration event runs user-supplied option values
// through the manifest's Apply, handing the component the coerced option
// map. Any schema or validation error is fatal to the operation; a
// component is never left running with a partially valid configuration.
//
// The registry has an injected lifetime: construct it where the program
// wires its components, pass in a logger, and drive StartAll/StopAll from
// the program's own lifecycle. There is no process-wide registry.
package component
