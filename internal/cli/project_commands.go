package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/textread/internal/session"
	"github.com/temirov/textread/internal/settings"
)

const (
	forceFlagName = "force"
	rootFlagName  = "root"

	initUse              = "init [root]"
	initShortDescription = "write the default settings file"
	initLongDescription  = `Write text-read-settings.txt with the default include and exclude patterns.
An existing file is kept unless --force is given.`

	addUse              = "add <paths...>"
	addShortDescription = "add include patterns for files or directories"
	addLongDescription  = `Generate an anchored include pattern for every path and append the new ones to
the project settings. Directories include everything below them.`
	addUsageExample = `  textread add src/main.rs docs --root ./project`

	excludeUse              = "exclude <directories...>"
	excludeShortDescription = "add exclude patterns for directories"
	excludeLongDescription  = `Generate an exclude pattern for the base name of every directory and append the
new ones to the project settings.`
	excludeUsageExample = `  textread exclude node_modules --root ./project`

	forceFlagDescription = "overwrite an existing file"
	rootFlagDescription  = "project root holding the settings file"

	settingsCreatedFormat  = "created %s"
	settingsKeptFormat     = "kept existing %s"
	patternAddedFormat     = "added %s"
	noPatternsAddedMessage = "settings already contain every pattern"
)

// createInitCommand returns the init subcommand.
func createInitCommand(app *application) *cobra.Command {
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			root, rootError := absolutePath(rootArgument(arguments))
			if rootError != nil {
				return rootError
			}
			settingsPath, created, initializeError := settings.Initialize(app.dependencies.Fs, root, force)
			if initializeError != nil {
				return initializeError
			}
			notifier := app.notifier(command)
			if created {
				notifier.Info(fmt.Sprintf(settingsCreatedFormat, settingsPath))
			} else {
				notifier.Info(fmt.Sprintf(settingsKeptFormat, settingsPath))
			}
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// createAddCommand returns the add subcommand.
func createAddCommand(app *application) *cobra.Command {
	var root string
	addCommand := &cobra.Command{
		Use:     addUse,
		Short:   addShortDescription,
		Long:    addLongDescription,
		Example: addUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.updatePatterns(command, root, func(projectSession *session.Session) ([]string, error) {
				return projectSession.AddPaths(arguments)
			})
		},
	}
	addCommand.Flags().StringVar(&root, rootFlagName, defaultPath, rootFlagDescription)
	return addCommand
}

// createExcludeCommand returns the exclude subcommand.
func createExcludeCommand(app *application) *cobra.Command {
	var root string
	excludeCommand := &cobra.Command{
		Use:     excludeUse,
		Short:   excludeShortDescription,
		Long:    excludeLongDescription,
		Example: excludeUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.updatePatterns(command, root, func(projectSession *session.Session) ([]string, error) {
				return projectSession.ExcludeDirectories(arguments)
			})
		},
	}
	excludeCommand.Flags().StringVar(&root, rootFlagName, defaultPath, rootFlagDescription)
	return excludeCommand
}

func (app *application) updatePatterns(command *cobra.Command, root string, update func(*session.Session) ([]string, error)) error {
	projectSession, openError := session.Open(app.dependencies.Fs, root, app.logger, session.Options{Now: app.dependencies.Now})
	if openError != nil {
		return openError
	}
	added, updateError := update(projectSession)
	if updateError != nil {
		return updateError
	}
	notifier := app.notifier(command)
	if len(added) == 0 {
		notifier.Info(noPatternsAddedMessage)
		return nil
	}
	for _, pattern := range added {
		notifier.Info(fmt.Sprintf(patternAddedFormat, pattern))
	}
	return nil
}
