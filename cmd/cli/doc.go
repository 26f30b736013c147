// Package cli constructs the reposafe command-line interface, wiring the
// backup command into a Cobra root command together with the configuration
// loader and structured logging primitives.
package cli
