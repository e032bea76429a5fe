package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/textread/internal/config"
)

const (
	globalFlagName = "global"

	configUse                  = "config"
	configShortDescription     = "manage application configuration"
	configInitUse              = "init"
	configInitShortDescription = "write the default config.yaml"
	configInitLongDescription  = `Write config.yaml with the default scan, export and snapshot settings into the
working directory, or into ~/.textread with --global.`

	globalFlagDescription = "write the global configuration"

	configurationWrittenFormat = "wrote %s"
	absolutePathErrorFormat    = "resolve absolute path for '%s': %w"
)

// createConfigCommand returns the config command group.
func createConfigCommand(app *application) *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configUse,
		Short: configShortDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	configCommand.AddCommand(createConfigInitCommand(app))
	return configCommand
}

func createConfigInitCommand(app *application) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   configInitUse,
		Short: configInitShortDescription,
		Long:  configInitLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			options := config.InitOptions{
				Target:        config.InitTargetLocal,
				Force:         force,
				Fs:            app.dependencies.Fs,
				HomeDirectory: app.dependencies.HomeDirectory,
			}
			if global {
				options.Target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(options)
			if initError != nil {
				return initError
			}
			app.notifier(command).Info(fmt.Sprintf(configurationWrittenFormat, writtenPath))
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

func absolutePath(path string) (string, error) {
	absolute, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return "", fmt.Errorf(absolutePathErrorFormat, path, absoluteError)
	}
	return absolute, nil
}
