package setup

import (
	"fmt"

	"github.com/temirov/stamp/internal/ui"
)

const (
	summaryHeadingConstant = "Next steps:"

	installInstructionTemplateConstant              = "Install dependencies: %s install"
	gitUnavailableInstructionTemplateConstant       = "Install Git, then run: git init && git add -A && git commit -m %q"
	createRepositoryInstructionTemplateConstant     = "Create the %s repository on GitHub and add the %s remote (%s)"
	createRepositoryBareInstructionTemplateConstant = "Create the %s repository on GitHub and add the %s remote"
	pushInstructionTemplateConstant                 = "Push your code: git push -u %s %s"
	protectionBlockedInstructionTemplateConstant    = "Push the %s branch, then protect it on GitHub"
	protectionInstructionTemplateConstant           = "Protect the %s branch on GitHub and require the %s check"
	protectionBareInstructionTemplateConstant       = "Protect the %s branch on GitHub"
	secretInstructionTemplateConstant               = "Add the %s repository secret on GitHub"
	reviewInstructionConstant                       = "Review the updated files and start building"
)

// SummaryInputs captures the run outcomes that decide which next-step lines
// the completion summary carries.
type SummaryInputs struct {
	RepositoryReference   string
	RemoteURL             string
	RemoteName            string
	DefaultBranch         string
	RequiredCheckName     string
	SecretName            string
	PackageManager        string
	CommitMessage         string
	GitAvailable          bool
	InstallCompleted      bool
	RemoteRepositoryReady bool
	PushCompleted         bool
	ProtectionApplied     bool
	ProtectionBlocked     bool
	SecretConfigured      bool
}

// BuildCompletionSummary assembles the numbered next-step list. Membership
// depends on what actually completed; numbering happens at render time.
func BuildCompletionSummary(inputs SummaryInputs) *ui.CompletionSummary {
	summary := &ui.CompletionSummary{}

	if !inputs.InstallCompleted {
		summary.Append(fmt.Sprintf(installInstructionTemplateConstant, inputs.PackageManager))
	}
	if !inputs.GitAvailable {
		summary.Append(fmt.Sprintf(gitUnavailableInstructionTemplateConstant, inputs.CommitMessage))
	}
	if !inputs.RemoteRepositoryReady {
		if len(inputs.RemoteURL) > 0 {
			summary.Append(fmt.Sprintf(createRepositoryInstructionTemplateConstant, inputs.RepositoryReference, inputs.RemoteName, inputs.RemoteURL))
		} else {
			summary.Append(fmt.Sprintf(createRepositoryBareInstructionTemplateConstant, inputs.RepositoryReference, inputs.RemoteName))
		}
	}
	if !inputs.PushCompleted {
		summary.Append(fmt.Sprintf(pushInstructionTemplateConstant, inputs.RemoteName, inputs.DefaultBranch))
	}
	if !inputs.ProtectionApplied {
		switch {
		case inputs.ProtectionBlocked:
			summary.Append(fmt.Sprintf(protectionBlockedInstructionTemplateConstant, inputs.DefaultBranch))
		case len(inputs.RequiredCheckName) > 0:
			summary.Append(fmt.Sprintf(protectionInstructionTemplateConstant, inputs.DefaultBranch, inputs.RequiredCheckName))
		default:
			summary.Append(fmt.Sprintf(protectionBareInstructionTemplateConstant, inputs.DefaultBranch))
		}
	}
	if len(inputs.SecretName) > 0 && !inputs.SecretConfigured {
		summary.Append(fmt.Sprintf(secretInstructionTemplateConstant, inputs.SecretName))
	}
	summary.Append(reviewInstructionConstant)

	return summary
}
