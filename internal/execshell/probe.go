package execshell

import "os/exec"

// ExecutableLookup resolves an executable name to a filesystem path.
type ExecutableLookup func(executableName string) (string, error)

// ToolAvailabilityProbe answers whether external executables are installed.
//
// Availability is intended to be checked once per tool and the answer reused;
// dependent behavior is gated behind the probe instead of wrapping every
// invocation in its own error handling.
type ToolAvailabilityProbe struct {
	executableLookup ExecutableLookup
}

// NewToolAvailabilityProbe constructs a probe backed by exec.LookPath.
func NewToolAvailabilityProbe() *ToolAvailabilityProbe {
	return &ToolAvailabilityProbe{executableLookup: exec.LookPath}
}

// NewToolAvailabilityProbeWithLookup constructs a probe using the provided lookup, falling back to exec.LookPath.
func NewToolAvailabilityProbeWithLookup(executableLookup ExecutableLookup) *ToolAvailabilityProbe {
	if executableLookup == nil {
		executableLookup = exec.LookPath
	}
	return &ToolAvailabilityProbe{executableLookup: executableLookup}
}

// ToolAvailable reports whether the named executable resolves on the current system.
func (probe *ToolAvailabilityProbe) ToolAvailable(commandName CommandName) bool {
	if probe == nil || probe.executableLookup == nil {
		return false
	}
	_, lookupError := probe.executableLookup(string(commandName))
	return lookupError == nil
}
