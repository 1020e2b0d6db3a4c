// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions used throughout
// stamp to run git, gh, and the package manager in a testable manner. Child
// standard streams can be captured for inspection or inherited so attended
// steps such as dependency installation stay visible to the user.
package execshell
