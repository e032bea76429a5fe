package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/temirov/textread/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	configurationFileMode      = 0o600
	configurationDirectoryMode = 0o755

	workingDirectoryErrorFormat = "determine working directory for configuration: %w"
	homeDirectoryErrorFormat    = "resolve home directory for configuration: %w"
	createDirectoryErrorFormat  = "create configuration directory %s: %w"
	unsupportedTargetFormat     = "unsupported init target %q"
	alreadyExistsFormat         = "configuration file already exists at %s"
	inspectPathErrorFormat      = "inspect configuration path %s: %w"
	writeErrorFormat            = "write configuration to %s: %w"

	defaultConfigurationTemplate = `scan:
  format: json
  tree: false
  strict_patterns: false
  pattern_engine: re2
  clipboard: false
  tokens:
    enabled: false
    model: gpt-4o
export:
  chunk_limit: 50000
  split: ask
snapshot:
  label: ""
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
	// HomeDirectory overrides the user home directory for the global target.
	HomeDirectory string
	// Fs defaults to the operating system filesystem.
	Fs afero.Fs
}

// DefaultTemplate returns the YAML written by InitializeConfiguration.
func DefaultTemplate() string {
	return defaultConfigurationTemplate
}

// InitializeConfiguration writes the default configuration to the requested target
// and returns its path. An existing file is only replaced with Force.
func InitializeConfiguration(options InitOptions) (string, error) {
	fileSystem := options.Fs
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	destinationPath, resolveError := resolveInitPath(fileSystem, options)
	if resolveError != nil {
		return "", resolveError
	}

	exists, existsError := afero.Exists(fileSystem, destinationPath)
	if existsError != nil {
		return "", fmt.Errorf(inspectPathErrorFormat, destinationPath, existsError)
	}
	if exists && !options.Force {
		return "", fmt.Errorf(alreadyExistsFormat, destinationPath)
	}

	if writeError := afero.WriteFile(fileSystem, destinationPath, []byte(defaultConfigurationTemplate), configurationFileMode); writeError != nil {
		return "", fmt.Errorf(writeErrorFormat, destinationPath, writeError)
	}
	return destinationPath, nil
}

func resolveInitPath(fileSystem afero.Fs, options InitOptions) (string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}
	switch target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf(workingDirectoryErrorFormat, err)
			}
			workingDirectory = current
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory := options.HomeDirectory
		if homeDirectory == "" {
			resolved, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf(homeDirectoryErrorFormat, err)
			}
			homeDirectory = resolved
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := fileSystem.MkdirAll(configurationDirectory, configurationDirectoryMode); err != nil {
			return "", fmt.Errorf(createDirectoryErrorFormat, configurationDirectory, err)
		}
		return filepath.Join(configurationDirectory, utils.ConfigFileName), nil
	default:
		return "", fmt.Errorf(unsupportedTargetFormat, target)
	}
}
