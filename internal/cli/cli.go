// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/textread/internal/config"
	"github.com/temirov/textread/internal/services/clipboard"
	"github.com/temirov/textread/internal/services/notify"
	"github.com/temirov/textread/internal/services/prompt"
	"github.com/temirov/textread/internal/utils"
)

const (
	versionFlagName      = "version"
	configFlagName       = "config"
	verboseFlagName      = "verbose"
	versionTemplate      = "textread version: %s\n"
	defaultPath          = "."
	rootUse              = "textread"
	rootShortDescription = "textread command line interface"
	rootLongDescription  = `textread gathers the text files of a project into one document.
A per-project settings file (text-read-settings.txt) lists include and exclude
regular expressions, the last export location and notes for the reader.
Use scan to print the collected output, export to write it to disk in chunks
when it is large, and snapshot to copy the selected files into target/backup.`

	versionFlagDescription = "display application version"
	configFlagDescription  = "path to an application configuration file"
	verboseFlagDescription = "enable debug logging"

	loadConfigurationErrorFormat = "load configuration: %w"
)

// Dependencies supplies the collaborators used by the commands. Zero values
// select the operating system defaults.
type Dependencies struct {
	Fs        afero.Fs
	Clipboard clipboard.Copier
	Logger    *zap.Logger
	Now       func() time.Time
	// HomeDirectory overrides the user home directory for config init --global.
	HomeDirectory string
}

// application carries the state shared by every command of one invocation.
type application struct {
	dependencies      Dependencies
	configuration     config.ApplicationConfiguration
	configurationPath string
	verbose           bool
	logger            *zap.Logger
}

// Execute runs the textread application.
func Execute() error {
	rootCommand := NewRootCommand(Dependencies{})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(context.Background())
}

// NewRootCommand builds the root Cobra command around dependencies.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Fs == nil {
		dependencies.Fs = afero.NewOsFs()
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	if dependencies.Now == nil {
		dependencies.Now = time.Now
	}
	app := &application{dependencies: dependencies}
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return app.prepare()
		},
		PersistentPostRun: func(command *cobra.Command, arguments []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&app.configurationPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(rootCommand.PersistentFlags(), &app.verbose, verboseFlagName, false, verboseFlagDescription)
	rootCommand.AddCommand(
		createInitCommand(app),
		createScanCommand(app),
		createExportCommand(app),
		createSnapshotCommand(app),
		createAddCommand(app),
		createExcludeCommand(app),
		createConfigCommand(app),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// prepare loads the layered configuration and the logger once per invocation.
func (app *application) prepare() error {
	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: app.configurationPath})
	if loadError != nil {
		return fmt.Errorf(loadConfigurationErrorFormat, loadError)
	}
	app.configuration = loaded

	if app.dependencies.Logger != nil {
		app.logger = app.dependencies.Logger
		return nil
	}
	logger, loggerError := utils.NewApplicationLogger(app.verbose)
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	app.logger = logger
	return nil
}

func (app *application) notifier(command *cobra.Command) notify.Notifier {
	return notify.NewConsole(command.ErrOrStderr())
}

func (app *application) prompter(command *cobra.Command) prompt.Prompter {
	return prompt.NewConsole(command.InOrStdin(), command.ErrOrStderr())
}

func rootArgument(arguments []string) string {
	if len(arguments) == 0 {
		return defaultPath
	}
	return arguments[0]
}

func writeLine(writer io.Writer, text string) error {
	_, err := fmt.Fprintln(writer, text)
	return err
}
