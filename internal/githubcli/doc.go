// Package githubcli wraps the GitHub CLI for repository provisioning.
//
// It layers typed request and response structures for gh subcommands, delivers
// nested REST payloads and secret values over the child's standard input, and
// integrates with execshell so interactions with GitHub can be stubbed during
// testing.
package githubcli
