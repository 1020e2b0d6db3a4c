package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	toggleLongFlagPrefixConstant           = "--"
	toggleShortFlagPrefixConstant          = "-"
	toggleFlagTerminatorConstant           = "--"
	toggleAssignmentSeparatorConstant      = "="
	toggleValueTypeNameConstant            = "bool"
)

var (
	trueToggleLiterals  = []string{toggleTrueCanonicalValue, "yes", "on", "1", "t", "y"}
	falseToggleLiterals = []string{toggleFalseCanonicalValue, "no", "off", "0", "f", "n"}

	toggleFlagRegistryMutex sync.RWMutex
	toggleFlagNames         = map[string]struct{}{}
	toggleFlagShorthands    = map[string]struct{}{}
)

// AddToggleFlag registers a boolean toggle flag that accepts yes/no style values.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	toggleValue := newToggleFlagValue(defaultValue, target)
	if len(shorthand) > 0 {
		flagSet.VarP(toggleValue, name, shorthand, usage)
	} else {
		flagSet.Var(toggleValue, name, usage)
	}

	flag := flagSet.Lookup(name)
	if flag == nil {
		return
	}
	flag.NoOptDefVal = toggleTrueCanonicalValue
	flag.Usage = formatToggleUsage(usage, defaultValue)

	registerToggleFlag(name, shorthand)
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmed := strings.TrimSpace(description)
	if len(trimmed) == 0 {
		return fmt.Sprintf("`%s`", placeholder)
	}
	return fmt.Sprintf("`%s` %s", placeholder, trimmed)
}

// NormalizeToggleArguments rewrites toggle flag arguments so "--flag value" becomes "--flag=value" before parsing.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	index := 0
	for index < len(arguments) {
		current := arguments[index]
		if current == toggleFlagTerminatorConstant {
			normalized = append(normalized, arguments[index:]...)
			break
		}

		if normalizedArgument, consumed := normalizeToggleArgument(current, arguments, index); consumed > 0 {
			normalized = append(normalized, normalizedArgument)
			index += consumed
			continue
		}

		normalized = append(normalized, current)
		index++
	}

	return normalized
}

type toggleFlagValue struct {
	currentValue bool
	target       *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleFlagValue{currentValue: defaultValue, target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	parsedValue, parseError := parseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}

	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}

	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || !value.currentValue {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleValueTypeNameConstant
}

func parseToggleValue(rawValue string) (bool, error) {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		trimmedValue = toggleTrueCanonicalValue
	}

	normalizedValue := strings.ToLower(trimmedValue)
	for _, literal := range trueToggleLiterals {
		if normalizedValue == literal {
			return true, nil
		}
	}
	for _, literal := range falseToggleLiterals {
		if normalizedValue == literal {
			return false, nil
		}
	}

	return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
}

func registerToggleFlag(name string, shorthand string) {
	toggleFlagRegistryMutex.Lock()
	defer toggleFlagRegistryMutex.Unlock()
	toggleFlagNames[name] = struct{}{}
	if len(shorthand) > 0 {
		toggleFlagShorthands[shorthand] = struct{}{}
	}
}

// normalizeToggleArgument inspects one argument and glues a detached toggle value onto it when present.
func normalizeToggleArgument(current string, arguments []string, index int) (string, int) {
	flagName, hasInlineValue, isRegisteredToggle := classifyToggleArgument(current)
	if len(flagName) == 0 || !isRegisteredToggle {
		return "", 0
	}
	if hasInlineValue {
		return current, 1
	}
	if index+1 >= len(arguments) {
		return current, 1
	}

	nextValue := arguments[index+1]
	if strings.HasPrefix(nextValue, toggleShortFlagPrefixConstant) {
		return current, 1
	}
	return current + toggleAssignmentSeparatorConstant + nextValue, 2
}

func classifyToggleArgument(argument string) (flagName string, hasInlineValue bool, isRegisteredToggle bool) {
	switch {
	case strings.HasPrefix(argument, toggleLongFlagPrefixConstant):
		trimmed := strings.TrimPrefix(argument, toggleLongFlagPrefixConstant)
		name, inline := splitToggleAssignment(trimmed)
		return name, inline, isToggleName(name)
	case strings.HasPrefix(argument, toggleShortFlagPrefixConstant):
		trimmed := strings.TrimPrefix(argument, toggleShortFlagPrefixConstant)
		shorthand, inline := splitToggleAssignment(trimmed)
		if len(shorthand) != 1 {
			return "", false, false
		}
		return shorthand, inline, isToggleShorthand(shorthand)
	default:
		return "", false, false
	}
}

func splitToggleAssignment(argument string) (string, bool) {
	separatorIndex := strings.Index(argument, toggleAssignmentSeparatorConstant)
	if separatorIndex < 0 {
		return argument, false
	}
	return argument[:separatorIndex], true
}

func isToggleName(name string) bool {
	toggleFlagRegistryMutex.RLock()
	defer toggleFlagRegistryMutex.RUnlock()
	_, exists := toggleFlagNames[name]
	return exists
}

func isToggleShorthand(shorthand string) bool {
	toggleFlagRegistryMutex.RLock()
	defer toggleFlagRegistryMutex.RUnlock()
	_, exists := toggleFlagShorthands[shorthand]
	return exists
}
