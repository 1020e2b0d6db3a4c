package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	configurationKeyDelimiterConstant               = "."
	environmentKeyDelimiterConstant                 = "_"
	environmentListSeparatorConstant                = ","
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
)

// ConfigurationLoader layers configuration sources for the CLI: embedded
// defaults shipped with the binary, then configuration files discovered on the
// search paths or named explicitly, then prefixed environment variables.
type ConfigurationLoader struct {
	configurationName      string
	configurationType      string
	environmentPrefix      string
	searchPaths            []string
	environmentKeyReplacer *strings.Replacer
	embeddedData           []byte
	embeddedDataType       string
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader that searches known paths and respects an environment prefix.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	duplicatedSearchPaths := make([]string, len(searchPaths))
	copy(duplicatedSearchPaths, searchPaths)

	return &ConfigurationLoader{
		configurationName:      configurationName,
		configurationType:      configurationType,
		environmentPrefix:      environmentPrefix,
		searchPaths:            duplicatedSearchPaths,
		environmentKeyReplacer: strings.NewReplacer(configurationKeyDelimiterConstant, environmentKeyDelimiterConstant),
	}
}

// SetEmbeddedConfiguration stores embedded configuration data merged before user-provided configuration files.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}

	loader.embeddedData = nil
	loader.embeddedDataType = strings.TrimSpace(configurationType)

	if len(configurationData) == 0 {
		return
	}

	loader.embeddedData = make([]byte, len(configurationData))
	copy(loader.embeddedData, configurationData)
}

// LoadConfiguration populates targetConfiguration using configuration files, defaults, and environment variables.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)

	if mergeError := loader.mergeEmbeddedConfiguration(viperInstance); mergeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
	}

	loader.bindEnvironmentOverrides(viperInstance)

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	loader.registerConfigurationFileSources(viperInstance, configurationFilePath)

	if readError := viperInstance.MergeInConfig(); readError != nil {
		var configurationFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(readError, &configurationFileNotFoundError) {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
		}
	}

	unmarshalError := viperInstance.Unmarshal(targetConfiguration, viper.DecodeHook(configurationDecodeHook()))
	if unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}

// mergeEmbeddedConfiguration layers the embedded defaults into the Viper
// instance before any user-provided file so file values win on conflict.
func (loader *ConfigurationLoader) mergeEmbeddedConfiguration(viperInstance *viper.Viper) error {
	if len(loader.embeddedData) == 0 {
		return nil
	}

	embeddedType := loader.embeddedDataType
	if len(embeddedType) == 0 {
		embeddedType = loader.configurationType
	}

	viperInstance.SetConfigType(embeddedType)
	mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedData))
	viperInstance.SetConfigType(loader.configurationType)

	return mergeError
}

// registerConfigurationFileSources points Viper either at the explicitly
// requested file or at the configured search paths.
func (loader *ConfigurationLoader) registerConfigurationFileSources(viperInstance *viper.Viper, configurationFilePath string) {
	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}
}

// bindEnvironmentOverrides enables prefixed environment variables, translating
// nested keys such as common.log_level into PREFIX_COMMON_LOG_LEVEL.
func (loader *ConfigurationLoader) bindEnvironmentOverrides(viperInstance *viper.Viper) {
	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	if loader.environmentKeyReplacer != nil {
		viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	}
	viperInstance.AutomaticEnv()
}

// configurationDecodeHook allows environment overrides to express list values as comma-separated strings.
func configurationDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(environmentListSeparatorConstant),
	)
}
