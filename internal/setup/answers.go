package setup

import (
	"fmt"
	"strings"

	"github.com/temirov/stamp/internal/placeholders"
)

const (
	packageNameTokenConstant    = "{{PACKAGE_NAME}}"
	repositoryNameTokenConstant = "{{REPO_NAME}}"
	ownerNameTokenConstant      = "{{GITHUB_USERNAME}}"
	descriptionTokenConstant    = "{{DESCRIPTION}}"
	authorNameTokenConstant     = "{{AUTHOR}}"

	packageScopePrefixConstant        = "@"
	packageScopeSeparatorConstant     = "/"
	repositoryReferenceFormatConstant = "%s/%s"
)

// AnswerSet holds the collected project metadata. It is assembled during the
// prompt phase and read-only afterward.
type AnswerSet struct {
	PackageName    string
	RepositoryName string
	OwnerName      string
	Description    string
	AuthorName     string
}

// DeriveRepositoryName returns the default repository name for a package name.
// Scoped names keep only the portion after the scope separator.
func DeriveRepositoryName(packageName string) string {
	trimmedName := strings.TrimSpace(packageName)
	if !strings.HasPrefix(trimmedName, packageScopePrefixConstant) {
		return trimmedName
	}
	_, unscopedName, separatorFound := strings.Cut(trimmedName, packageScopeSeparatorConstant)
	if !separatorFound {
		return trimmedName
	}
	return unscopedName
}

// ReplacementTable derives the placeholder substitutions for the answers.
// Token keys are a fixed list; nothing is discovered dynamically.
func (answers AnswerSet) ReplacementTable() placeholders.ReplacementTable {
	return placeholders.ReplacementTable{
		packageNameTokenConstant:    answers.PackageName,
		repositoryNameTokenConstant: answers.RepositoryName,
		ownerNameTokenConstant:      answers.OwnerName,
		descriptionTokenConstant:    answers.Description,
		authorNameTokenConstant:     answers.AuthorName,
	}
}

// RepositoryReference returns the owner/name identifier used by the hosting CLI.
func (answers AnswerSet) RepositoryReference() string {
	return fmt.Sprintf(repositoryReferenceFormatConstant, answers.OwnerName, answers.RepositoryName)
}
