package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	labelFlagName = "label"

	snapshotUse              = "snapshot [root]"
	snapshotAlias            = "b"
	snapshotShortDescription = "copy the selected files into target/backup (" + snapshotAlias + ")"
	snapshotLongDescription  = `Scan the project and copy every selected file into a timestamped folder under
target/backup, keeping the relative layout. Without --label the label is prompted;
an empty answer uses the default label and cancelling aborts the snapshot.`
	snapshotUsageExample = `  # Snapshot with a label
  textread snapshot --label beforeRefactor`

	labelFlagDescription = "snapshot label made of letters and digits"

	labelQuestion            = "Snapshot label (letters and digits, empty for default)"
	snapshotCancelledMessage = "snapshot cancelled"
	snapshotWrittenFormat    = "copied %d files to %s"
)

// createSnapshotCommand returns the snapshot subcommand.
func createSnapshotCommand(app *application) *cobra.Command {
	var flags scanFlags
	var label string

	snapshotCommand := &cobra.Command{
		Use:     snapshotUse,
		Aliases: []string{snapshotAlias},
		Short:   snapshotShortDescription,
		Long:    snapshotLongDescription,
		Example: snapshotUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			_, options, resolveError := flags.resolve(command, app.configuration.Scan)
			if resolveError != nil {
				return resolveError
			}
			options.Tree = false
			notifier := app.notifier(command)

			snapshotLabel := label
			if !command.Flags().Changed(labelFlagName) {
				snapshotLabel = app.configuration.Snapshot.Label
				if snapshotLabel == "" {
					answer, answered, promptError := app.prompter(command).Line(labelQuestion)
					if promptError != nil {
						return promptError
					}
					if !answered {
						notifier.Warn(snapshotCancelledMessage)
						return nil
					}
					snapshotLabel = answer
				}
			}

			projectSession, _, scanError := app.openAndScan(command, rootArgument(arguments), options, notifier)
			if scanError != nil {
				return scanError
			}
			created, snapshotError := projectSession.Snapshot(snapshotLabel)
			if snapshotError != nil {
				return snapshotError
			}
			notifier.Info(fmt.Sprintf(snapshotWrittenFormat, len(created.Copied), created.Destination))
			return nil
		},
	}

	addScanFlags(snapshotCommand, &flags)
	snapshotCommand.Flags().StringVar(&label, labelFlagName, "", labelFlagDescription)
	return snapshotCommand
}
