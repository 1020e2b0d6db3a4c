package placeholders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	targetMissingMessageConstant     = "Substitution target not found; skipping"
	targetUnchangedMessageConstant   = "No placeholder tokens present"
	targetRewrittenMessageConstant   = "Substituted placeholder tokens"
	targetPathFieldNameConstant      = "target_path"
	readTargetErrorTemplateConstant  = "unable to read %s: %w"
	statTargetErrorTemplateConstant  = "unable to stat %s: %w"
	writeTargetErrorTemplateConstant = "unable to write %s: %w"
	targetNotRegularTemplateConstant = "substitution target is not a regular file: %s"
)

// ReplacementTable maps literal placeholder tokens to their replacement values.
// Keys are a fixed list owned by the caller; the rewriter discovers nothing.
type ReplacementTable map[string]string

// FileOutcome describes what happened to one substitution target.
type FileOutcome struct {
	Path    string
	Skipped bool
	Changed bool
}

// Rewriter applies a replacement table to configured target files.
type Rewriter struct {
	logger *zap.Logger
}

// NewRewriter constructs a Rewriter.
func NewRewriter(logger *zap.Logger) *Rewriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rewriter{logger: logger}
}

// Apply replaces every occurrence of every table token in each target file,
// writing changed files back with their original permissions. Missing targets
// are reported as skipped, never created, and never an error.
func (rewriter *Rewriter) Apply(rootDirectory string, targetPaths []string, table ReplacementTable) ([]FileOutcome, error) {
	outcomes := make([]FileOutcome, 0, len(targetPaths))

	for _, targetPath := range targetPaths {
		outcome, processingError := rewriter.processTarget(rootDirectory, targetPath, table)
		if processingError != nil {
			return nil, processingError
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// Substitute returns the content with every token occurrence replaced.
func Substitute(content string, table ReplacementTable) string {
	substituted := content
	for placeholderToken, replacementValue := range table {
		substituted = strings.ReplaceAll(substituted, placeholderToken, replacementValue)
	}
	return substituted
}

func (rewriter *Rewriter) processTarget(rootDirectory string, targetPath string, table ReplacementTable) (FileOutcome, error) {
	fullPath := filepath.Join(rootDirectory, targetPath)

	fileInfo, statError := os.Stat(fullPath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			rewriter.logger.Info(targetMissingMessageConstant, zap.String(targetPathFieldNameConstant, fullPath))
			return FileOutcome{Path: targetPath, Skipped: true}, nil
		}
		return FileOutcome{}, fmt.Errorf(statTargetErrorTemplateConstant, fullPath, statError)
	}
	if !fileInfo.Mode().IsRegular() {
		return FileOutcome{}, fmt.Errorf(targetNotRegularTemplateConstant, fullPath)
	}

	fileContent, readError := os.ReadFile(fullPath)
	if readError != nil {
		return FileOutcome{}, fmt.Errorf(readTargetErrorTemplateConstant, fullPath, readError)
	}

	substitutedContent := Substitute(string(fileContent), table)
	if substitutedContent == string(fileContent) {
		rewriter.logger.Debug(targetUnchangedMessageConstant, zap.String(targetPathFieldNameConstant, fullPath))
		return FileOutcome{Path: targetPath}, nil
	}

	writeError := os.WriteFile(fullPath, []byte(substitutedContent), fileInfo.Mode().Perm())
	if writeError != nil {
		return FileOutcome{}, fmt.Errorf(writeTargetErrorTemplateConstant, fullPath, writeError)
	}

	rewriter.logger.Info(targetRewrittenMessageConstant, zap.String(targetPathFieldNameConstant, fullPath))
	return FileOutcome{Path: targetPath, Changed: true}, nil
}
