package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/textread/internal/output"
	"github.com/temirov/textread/internal/session"
	"github.com/temirov/textread/internal/types"
)

const (
	outputFlagName     = "output"
	splitFlagName      = "split"
	chunkLimitFlagName = "chunk-limit"

	exportUse              = "export [root]"
	exportAlias            = "x"
	exportShortDescription = "write the collected output to a file (" + exportAlias + ")"
	exportLongDescription  = `Scan the project and write the export artifact. The artifact starts with the
note, the project name and the generation time followed by the serialized output.
When it exceeds --chunk-limit bytes it is either split into numbered chunk files
or written whole, as chosen by --split.`
	exportUsageExample = `  # Export next to the remembered output location
  textread export

  # Always split into chunks of at most 20000 bytes
  textread export --split always --chunk-limit 20000 --output ./out/project.txt`

	outputFlagDescription     = "export file path or directory"
	splitFlagDescription      = "split oversized exports: ask, always or never"
	chunkLimitFlagDescription = "maximum chunk size in bytes"

	invalidSplitMessage      = "invalid split value '%s'"
	invalidChunkLimitMessage = "chunk limit must be positive, got %d"
	exportCancelledMessage   = "export cancelled"
	exportWrittenFormat      = "wrote %s"
)

// createExportCommand returns the export subcommand.
func createExportCommand(app *application) *cobra.Command {
	var flags scanFlags
	var outputPath string
	var splitMode string
	var chunkLimit int

	exportCommand := &cobra.Command{
		Use:     exportUse,
		Aliases: []string{exportAlias},
		Short:   exportShortDescription,
		Long:    exportLongDescription,
		Example: exportUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			format, options, resolveError := flags.resolve(command, app.configuration.Scan)
			if resolveError != nil {
				return resolveError
			}
			exportConfiguration := app.configuration.Export
			split := strings.ToLower(resolveString(command, splitFlagName, splitMode, exportConfiguration.Split, types.SplitAsk))
			if !isSupportedSplit(split) {
				return fmt.Errorf(invalidSplitMessage, split)
			}
			limit := resolveInt(command, chunkLimitFlagName, chunkLimit, exportConfiguration.ChunkLimit, output.DefaultChunkLimit)
			if limit <= 0 {
				return fmt.Errorf(invalidChunkLimitMessage, limit)
			}

			notifier := app.notifier(command)
			projectSession, _, scanError := app.openAndScan(command, rootArgument(arguments), options, notifier)
			if scanError != nil {
				return scanError
			}
			result, exportError := projectSession.Export(command.Context(), session.ExportRequest{
				Format:     format,
				Path:       outputPath,
				ChunkLimit: limit,
				Split:      split,
			}, app.prompter(command))
			if exportError != nil {
				return exportError
			}
			if result.Cancelled {
				notifier.Warn(exportCancelledMessage)
				return nil
			}
			for _, writtenPath := range result.Paths {
				notifier.Info(fmt.Sprintf(exportWrittenFormat, writtenPath))
			}
			return nil
		},
	}

	addScanFlags(exportCommand, &flags)
	exportCommand.Flags().StringVarP(&outputPath, outputFlagName, "o", "", outputFlagDescription)
	exportCommand.Flags().StringVar(&splitMode, splitFlagName, types.SplitAsk, splitFlagDescription)
	exportCommand.Flags().IntVar(&chunkLimit, chunkLimitFlagName, output.DefaultChunkLimit, chunkLimitFlagDescription)
	return exportCommand
}

func isSupportedSplit(mode string) bool {
	switch mode {
	case types.SplitAsk, types.SplitAlways, types.SplitNever:
		return true
	default:
		return false
	}
}
