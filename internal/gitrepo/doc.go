// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for repository initialization, configuration
// reads, remote management, staging, committing, and pushing, along with
// structured parsing and formatting of remote URLs.
package gitrepo
