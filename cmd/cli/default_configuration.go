package cli

import _ "embed"

//go:embed default_config.yaml
var defaultConfigurationYAML []byte

// EmbeddedDefaultConfiguration returns the baseline configuration shipped inside the stamp binary together with its type identifier.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), defaultConfigurationYAML...), configurationTypeConstant
}
