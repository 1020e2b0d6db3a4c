package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	homeShortcutConstant       = "~"
	homeShortcutPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander rewrites leading "~" shortcuts into absolute home directory paths.
// The home directory lookup runs once and is cached for the expander's lifetime.
type HomeExpander struct {
	provider      HomeDirectoryProvider
	homeDirectory string
	lookupError   error
	lookupGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander backed by the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom home directory lookup.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{provider: provider}
}

// Expand resolves a leading home shortcut; paths without one pass through unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || len(candidatePath) == 0 || !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}

	homeDirectory := expander.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}

	switch {
	case candidatePath == homeShortcutConstant:
		return homeDirectory
	case strings.HasPrefix(candidatePath, homeShortcutPrefixConstant):
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, homeShortcutPrefixConstant))
	default:
		return candidatePath
	}
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.lookupGuard.Do(func() {
		expander.homeDirectory, expander.lookupError = expander.provider()
	})
	if expander.lookupError != nil {
		return ""
	}
	return expander.homeDirectory
}
