package setup

import (
	"context"
	"fmt"
	"path/filepath"
)

const (
	packageNamePromptConstant    = "Package name"
	repositoryNamePromptConstant = "Repository name"
	ownerNamePromptConstant      = "GitHub username"
	descriptionPromptConstant    = "Description"
	authorNamePromptConstant     = "Author"
	confirmationQuestionConstant = "Continue with these values? (y/n): "

	answerEchoHeadingConstant      = "\nProject configuration:\n"
	answerEchoLineTemplateConstant = "  %s: %s\n"
	promptErrorTemplateConstant    = "unable to read prompt response: %w"

	gitAuthorConfigurationKeyConstant = "user.name"
	gitOwnerConfigurationKeyConstant  = "github.user"
)

type answerDefaults struct {
	packageName string
	ownerName   string
	authorName  string
}

// resolveAnswerDefaults seeds prompt defaults from the environment. Every
// lookup falls back silently to an empty default when it cannot answer.
func (service *Service) resolveAnswerDefaults(executionContext context.Context, options WorkflowOptions, capabilities toolCapabilities) answerDefaults {
	defaults := answerDefaults{}

	absoluteDirectory, absoluteError := filepath.Abs(options.WorkingDirectory)
	if absoluteError == nil {
		defaults.packageName = filepath.Base(absoluteDirectory)
	}

	if capabilities.hostingCLIAvailable {
		currentLogin, loginError := service.gitHubClient.ResolveCurrentUserLogin(executionContext)
		if loginError == nil {
			defaults.ownerName = currentLogin
		}
	}
	if len(defaults.ownerName) == 0 && capabilities.gitAvailable {
		configuredOwner, ownerError := service.repositoryManager.ConfigurationValue(executionContext, options.WorkingDirectory, gitOwnerConfigurationKeyConstant)
		if ownerError == nil {
			defaults.ownerName = configuredOwner
		}
	}

	if capabilities.gitAvailable {
		configuredAuthor, authorError := service.repositoryManager.ConfigurationValue(executionContext, options.WorkingDirectory, gitAuthorConfigurationKeyConstant)
		if authorError == nil {
			defaults.authorName = configuredAuthor
		}
	}

	return defaults
}

func (service *Service) collectAnswers(executionContext context.Context, options WorkflowOptions, capabilities toolCapabilities) (AnswerSet, error) {
	defaults := service.resolveAnswerDefaults(executionContext, options, capabilities)

	packageName, packageError := service.prompter.Ask(packageNamePromptConstant, defaults.packageName)
	if packageError != nil {
		return AnswerSet{}, fmt.Errorf(promptErrorTemplateConstant, packageError)
	}

	repositoryName, repositoryError := service.prompter.Ask(repositoryNamePromptConstant, DeriveRepositoryName(packageName))
	if repositoryError != nil {
		return AnswerSet{}, fmt.Errorf(promptErrorTemplateConstant, repositoryError)
	}

	ownerName, ownerError := service.prompter.Ask(ownerNamePromptConstant, defaults.ownerName)
	if ownerError != nil {
		return AnswerSet{}, fmt.Errorf(promptErrorTemplateConstant, ownerError)
	}

	description, descriptionError := service.prompter.Ask(descriptionPromptConstant, "")
	if descriptionError != nil {
		return AnswerSet{}, fmt.Errorf(promptErrorTemplateConstant, descriptionError)
	}

	authorName, authorError := service.prompter.Ask(authorNamePromptConstant, defaults.authorName)
	if authorError != nil {
		return AnswerSet{}, fmt.Errorf(promptErrorTemplateConstant, authorError)
	}

	return AnswerSet{
		PackageName:    packageName,
		RepositoryName: repositoryName,
		OwnerName:      ownerName,
		Description:    description,
		AuthorName:     authorName,
	}, nil
}

func (service *Service) confirmAnswers(answers AnswerSet) (bool, error) {
	service.reporter.Printf(answerEchoHeadingConstant)
	service.reporter.Printf(answerEchoLineTemplateConstant, packageNamePromptConstant, answers.PackageName)
	service.reporter.Printf(answerEchoLineTemplateConstant, repositoryNamePromptConstant, answers.RepositoryName)
	service.reporter.Printf(answerEchoLineTemplateConstant, ownerNamePromptConstant, answers.OwnerName)
	service.reporter.Printf(answerEchoLineTemplateConstant, descriptionPromptConstant, answers.Description)
	service.reporter.Printf(answerEchoLineTemplateConstant, authorNamePromptConstant, answers.AuthorName)

	confirmed, confirmError := service.prompter.Confirm(confirmationQuestionConstant)
	if confirmError != nil {
		return false, fmt.Errorf(promptErrorTemplateConstant, confirmError)
	}
	return confirmed, nil
}
