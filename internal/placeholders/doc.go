// Package placeholders rewrites template configuration files by replacing
// literal placeholder tokens with values collected during setup. Targets that
// do not exist are skipped and reported rather than treated as failures.
package placeholders
