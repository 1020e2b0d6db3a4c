package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

const (
	manifestMissingMessageConstant     = "Package manifest not found; skipping finalization"
	manifestFinalizedMessageConstant   = "Finalized package manifest"
	manifestPathFieldNameConstant      = "manifest_path"
	manifestNameFieldNameConstant      = "manifest_name"
	scriptRemovedFieldNameConstant     = "script_removed"
	readManifestErrorTemplateConstant  = "unable to read manifest %s: %w"
	parseManifestErrorTemplateConstant = "unable to parse manifest %s: %w"
	writeManifestErrorTemplateConstant = "unable to write manifest %s: %w"
)

// FinalizeOutcome reports what finalization observed and changed.
type FinalizeOutcome struct {
	Skipped       bool
	ManifestName  string
	NameVerified  bool
	ScriptRemoved bool
}

// Finalizer verifies and trims the manifest file after token substitution.
type Finalizer struct {
	logger *zap.Logger
}

// NewFinalizer constructs a Finalizer.
func NewFinalizer(logger *zap.Logger) *Finalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finalizer{logger: logger}
}

// Finalize parses the manifest file, compares its name field against the
// expected name, removes the bootstrap script entry, and writes the document
// back with stable formatting. A missing manifest is reported as skipped.
func (finalizer *Finalizer) Finalize(manifestPath string, expectedName string, bootstrapScriptName string) (FinalizeOutcome, error) {
	fileInfo, statError := os.Stat(manifestPath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			finalizer.logger.Info(manifestMissingMessageConstant, zap.String(manifestPathFieldNameConstant, manifestPath))
			return FinalizeOutcome{Skipped: true}, nil
		}
		return FinalizeOutcome{}, fmt.Errorf(readManifestErrorTemplateConstant, manifestPath, statError)
	}

	fileContent, readError := os.ReadFile(manifestPath)
	if readError != nil {
		return FinalizeOutcome{}, fmt.Errorf(readManifestErrorTemplateConstant, manifestPath, readError)
	}

	document, parseError := Parse(fileContent)
	if parseError != nil {
		return FinalizeOutcome{}, fmt.Errorf(parseManifestErrorTemplateConstant, manifestPath, parseError)
	}

	outcome := FinalizeOutcome{}
	outcome.ManifestName, _ = document.Name()
	outcome.NameVerified = outcome.ManifestName == expectedName
	outcome.ScriptRemoved = document.RemoveScript(bootstrapScriptName)

	encodedContent, encodeError := document.Encode()
	if encodeError != nil {
		return FinalizeOutcome{}, encodeError
	}

	writeError := os.WriteFile(manifestPath, encodedContent, fileInfo.Mode().Perm())
	if writeError != nil {
		return FinalizeOutcome{}, fmt.Errorf(writeManifestErrorTemplateConstant, manifestPath, writeError)
	}

	finalizer.logger.Info(manifestFinalizedMessageConstant,
		zap.String(manifestPathFieldNameConstant, manifestPath),
		zap.String(manifestNameFieldNameConstant, outcome.ManifestName),
		zap.Bool(scriptRemovedFieldNameConstant, outcome.ScriptRemoved),
	)
	return outcome, nil
}
