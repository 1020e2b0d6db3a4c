// Package setup implements the one-time interactive bootstrap workflow: it
// collects project metadata, substitutes placeholder tokens into template
// files, finalizes the package manifest, installs dependencies, initializes
// Git, provisions and configures the GitHub repository, removes its own
// bootstrap entry points, and prints a numbered next-step summary.
//
// External tools are gated behind one-time capability probes; a missing
// optional tool degrades the affected steps to manual instructions instead of
// failing the run. Declining the confirmation prompt cancels the run without
// an error.
package setup
