package setup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	secretSourceSeparatorConstant            = ":"
	environmentSecretSourceTypeValueConstant = "env"
	fileSecretSourceTypeValueConstant        = "file"
	secretSourceMissingMessageConstant       = "secret source must be provided"
	environmentNameMissingMessageConstant    = "secret environment variable name must be provided"
	secretFilePathMissingMessageConstant     = "secret file path must be provided"
	secretFileReadErrorTemplateConstant      = "unable to read secret file %s: %w"
	unsupportedSecretSourceTemplateConstant  = "unsupported secret source type %q"
)

// SecretSourceType enumerates the supported secret retrieval mechanisms.
type SecretSourceType string

// Secret source type enumerations.
const (
	SecretSourceTypeEnvironment SecretSourceType = SecretSourceType(environmentSecretSourceTypeValueConstant)
	SecretSourceTypeFile        SecretSourceType = SecretSourceType(fileSecretSourceTypeValueConstant)
)

// SecretSourceConfiguration specifies where an optional secret value lives.
type SecretSourceConfiguration struct {
	Type      SecretSourceType
	Reference string
}

// EnvironmentLookup obtains an environment variable value.
type EnvironmentLookup func(key string) (string, bool)

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// SecretValueResolver retrieves optional secret values from configured sources.
type SecretValueResolver interface {
	ResolveSecret(source SecretSourceConfiguration) (string, bool, error)
}

// ParseSecretSource interprets textual secret source declarations. A bare name
// is shorthand for an environment variable reference.
func ParseSecretSource(sourceValue string) (SecretSourceConfiguration, error) {
	trimmedValue := strings.TrimSpace(sourceValue)
	if len(trimmedValue) == 0 {
		return SecretSourceConfiguration{}, errors.New(secretSourceMissingMessageConstant)
	}

	components := strings.SplitN(trimmedValue, secretSourceSeparatorConstant, 2)
	if len(components) == 1 {
		return SecretSourceConfiguration{
			Type:      SecretSourceTypeEnvironment,
			Reference: trimmedValue,
		}, nil
	}

	sourceType := strings.ToLower(strings.TrimSpace(components[0]))
	reference := strings.TrimSpace(components[1])

	switch sourceType {
	case environmentSecretSourceTypeValueConstant:
		if len(reference) == 0 {
			return SecretSourceConfiguration{}, errors.New(environmentNameMissingMessageConstant)
		}
		return SecretSourceConfiguration{Type: SecretSourceTypeEnvironment, Reference: reference}, nil
	case fileSecretSourceTypeValueConstant:
		if len(reference) == 0 {
			return SecretSourceConfiguration{}, errors.New(secretFilePathMissingMessageConstant)
		}
		return SecretSourceConfiguration{Type: SecretSourceTypeFile, Reference: reference}, nil
	default:
		return SecretSourceConfiguration{}, fmt.Errorf(unsupportedSecretSourceTemplateConstant, sourceType)
	}
}

// NewSecretValueResolver creates a secret resolver with optional dependency overrides.
func NewSecretValueResolver(environmentLookup EnvironmentLookup, fileReader FileReader) SecretValueResolver {
	resolvedEnvironmentLookup := environmentLookup
	if resolvedEnvironmentLookup == nil {
		resolvedEnvironmentLookup = os.LookupEnv
	}

	resolvedFileReader := fileReader
	if resolvedFileReader == nil {
		resolvedFileReader = os.ReadFile
	}

	return &secretValueResolver{
		environmentLookup: resolvedEnvironmentLookup,
		fileReader:        resolvedFileReader,
	}
}

type secretValueResolver struct {
	environmentLookup EnvironmentLookup
	fileReader        FileReader
}

// ResolveSecret returns the trimmed secret value and whether one is available.
// An unset variable, a blank value, or a missing file means the secret is
// simply not configured, which is not an error.
func (resolver *secretValueResolver) ResolveSecret(source SecretSourceConfiguration) (string, bool, error) {
	switch source.Type {
	case SecretSourceTypeEnvironment:
		value, found := resolver.environmentLookup(source.Reference)
		if !found {
			return "", false, nil
		}
		trimmedValue := strings.TrimSpace(value)
		if len(trimmedValue) == 0 {
			return "", false, nil
		}
		return trimmedValue, true, nil
	case SecretSourceTypeFile:
		contents, readError := resolver.fileReader(source.Reference)
		if readError != nil {
			if errors.Is(readError, fs.ErrNotExist) {
				return "", false, nil
			}
			return "", false, fmt.Errorf(secretFileReadErrorTemplateConstant, source.Reference, readError)
		}
		trimmedValue := strings.TrimSpace(string(contents))
		if len(trimmedValue) == 0 {
			return "", false, nil
		}
		return trimmedValue, true, nil
	default:
		return "", false, fmt.Errorf(unsupportedSecretSourceTemplateConstant, source.Type)
	}
}
