// Package doctor implements the diagnostic command that reports which external
// tools the setup workflow can reach. It probes for Git, the GitHub CLI, and
// the configured package manager, checks the GitHub CLI authentication state,
// and names the configuration source in use, all without mutating anything.
package doctor
