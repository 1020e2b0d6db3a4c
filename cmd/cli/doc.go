// Package cli constructs the stamp command-line interface, wiring the Cobra
// command hierarchy, configuration loader, and structured logging primitives.
// Application bundles the setup and doctor commands behind shared persistent
// flags; Execute runs the assembled hierarchy against os.Args.
package cli
