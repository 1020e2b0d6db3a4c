package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderOpenConstant   = "<"
	choicePlaceholderCloseConstant  = ">"
	choiceSeparatorConstant         = "|"
	choiceUsageBareTemplateConstant = "`%s`"
	choiceUsageFullTemplateConstant = "`%s` %s"
)

// FormatChoiceUsage renders a flag usage string whose placeholder lists every
// accepted value with the default capitalized, for example `<debug|INFO|warn|error>`.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := choicePlaceholderOpenConstant + strings.Join(renderChoiceList(defaultChoice, choices), choiceSeparatorConstant) + choicePlaceholderCloseConstant
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(choiceUsageBareTemplateConstant, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplateConstant, placeholder, trimmedDescription)
}

func renderChoiceList(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	rendered := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, duplicate := seen[normalizedChoice]; duplicate {
			continue
		}
		seen[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			rendered = append(rendered, strings.ToUpper(trimmedChoice))
			continue
		}
		rendered = append(rendered, trimmedChoice)
	}

	return rendered
}
