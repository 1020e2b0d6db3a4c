// Package utils collects small helpers shared by every command.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging for the CLI, plus
// writer and context helpers shared across command builders.
package utils
