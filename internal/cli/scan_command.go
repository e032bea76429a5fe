package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/textread/internal/config"
	"github.com/temirov/textread/internal/output"
	"github.com/temirov/textread/internal/patterns"
	"github.com/temirov/textread/internal/services/notify"
	"github.com/temirov/textread/internal/session"
	"github.com/temirov/textread/internal/tokenizer"
	"github.com/temirov/textread/internal/types"
	"github.com/temirov/textread/internal/utils"
)

const (
	formatFlagName  = "format"
	treeFlagName    = "tree"
	strictFlagName  = "strict"
	engineFlagName  = "engine"
	copyFlagName    = "copy"
	tokensFlagName  = "tokens"
	modelFlagName   = "model"
	includeFlagName = "include"
	excludeFlagName = "exclude"

	scanUse              = "scan [root]"
	scanAlias            = "s"
	scanShortDescription = "print the collected project output (" + scanAlias + ")"
	scanLongDescription  = `Collect every file selected by the project's include and exclude patterns
and print the serialized output. Use --format to select json, xml, toon or raw.`
	scanUsageExample = `  # Print the project in the current directory as JSON
  textread scan

  # Include the directory tree and copy the XML output to the clipboard
  textread scan --tree --format xml --copy ./project

  # Add a pattern for this run only
  textread scan -i '^docs/.*\.md$'`

	formatFlagDescription  = "output format (json, xml, toon, raw)"
	treeFlagDescription    = "include the directory tree"
	strictFlagDescription  = "fail on the first invalid pattern"
	engineFlagDescription  = "pattern engine (re2, regexp2)"
	copyFlagDescription    = "copy the output to the clipboard"
	tokensFlagDescription  = "count tokens of the output"
	modelFlagDescription   = "tokenizer model to use for token counting"
	includeFlagDescription = "extra include pattern for this run"
	excludeFlagDescription = "extra exclude pattern for this run"

	invalidFormatMessage    = "invalid format value '%s'"
	invalidEngineMessage    = "invalid pattern engine '%s'"
	patternRejectedFormat   = "pattern ignored: %s"
	patternFailedFormat     = "pattern evaluation failed: %s"
	scanSummaryFormat       = "%d files, %s of content, %d bytes serialized"
	tokenSummaryFormat      = "%d tokens (%s)"
	copiedToClipboardFormat = "copied %d bytes to the clipboard"
	clipboardFailureFormat  = "clipboard: %v"
	tokenizerFailureFormat  = "token count: %v"
)

// scanFlags stores the flags shared by every command that runs a scan.
type scanFlags struct {
	format   string
	tree     bool
	strict   bool
	engine   string
	includes []string
	excludes []string
}

func addScanFlags(command *cobra.Command, flags *scanFlags) {
	command.Flags().StringVar(&flags.format, formatFlagName, types.FormatJSON, formatFlagDescription)
	registerBooleanFlag(command.Flags(), &flags.tree, treeFlagName, false, treeFlagDescription)
	registerBooleanFlag(command.Flags(), &flags.strict, strictFlagName, false, strictFlagDescription)
	command.Flags().StringVar(&flags.engine, engineFlagName, types.EngineRE2, engineFlagDescription)
	command.Flags().StringArrayVarP(&flags.includes, includeFlagName, "i", nil, includeFlagDescription)
	command.Flags().StringArrayVarP(&flags.excludes, excludeFlagName, "e", nil, excludeFlagDescription)
}

// resolve applies the precedence flag, then configuration, then built-in default.
func (flags scanFlags) resolve(command *cobra.Command, configuration config.ScanConfiguration) (string, session.ScanOptions, error) {
	format := resolveString(command, formatFlagName, flags.format, configuration.Format, types.FormatJSON)
	format = strings.ToLower(format)
	if !isSupportedFormat(format) {
		return "", session.ScanOptions{}, fmt.Errorf(invalidFormatMessage, format)
	}
	engine := strings.ToLower(resolveString(command, engineFlagName, flags.engine, configuration.PatternEngine, types.EngineRE2))
	if !patterns.IsSupportedEngine(engine) {
		return "", session.ScanOptions{}, fmt.Errorf(invalidEngineMessage, engine)
	}
	options := session.ScanOptions{
		Tree:          resolveBool(command, treeFlagName, flags.tree, configuration.Tree, false),
		Strict:        resolveBool(command, strictFlagName, flags.strict, configuration.StrictPatterns, false),
		Engine:        engine,
		ExtraIncludes: flags.includes,
		ExtraExcludes: flags.excludes,
	}
	return format, options, nil
}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML, types.FormatTOON:
		return true
	default:
		return false
	}
}

func resolveString(command *cobra.Command, flagName string, flagValue string, configured string, fallback string) string {
	if command.Flags().Changed(flagName) {
		return flagValue
	}
	return config.StringOrDefault(configured, fallback)
}

func resolveBool(command *cobra.Command, flagName string, flagValue bool, configured *bool, fallback bool) bool {
	if command.Flags().Changed(flagName) {
		return flagValue
	}
	return config.BoolOrDefault(configured, fallback)
}

func resolveInt(command *cobra.Command, flagName string, flagValue int, configured *int, fallback int) int {
	if command.Flags().Changed(flagName) {
		return flagValue
	}
	return config.IntOrDefault(configured, fallback)
}

// openAndScan opens the project at root and runs one scan, reporting ignored patterns.
func (app *application) openAndScan(command *cobra.Command, root string, options session.ScanOptions, notifier notify.Notifier) (*session.Session, session.ScanResult, error) {
	projectSession, openError := session.Open(app.dependencies.Fs, root, app.logger, session.Options{Now: app.dependencies.Now})
	if openError != nil {
		return nil, session.ScanResult{}, openError
	}
	result, scanError := projectSession.Scan(command.Context(), options)
	if scanError != nil {
		return nil, session.ScanResult{}, scanError
	}
	for _, rejected := range result.Rejected() {
		notifier.Warn(fmt.Sprintf(patternRejectedFormat, rejected))
	}
	for _, failed := range result.FailedPatterns {
		notifier.Warn(fmt.Sprintf(patternFailedFormat, failed))
	}
	return projectSession, result, nil
}

// createScanCommand returns the scan subcommand.
func createScanCommand(app *application) *cobra.Command {
	var flags scanFlags
	var copyEnabled bool
	var tokensEnabled bool
	var tokenModel string

	scanCommand := &cobra.Command{
		Use:     scanUse,
		Aliases: []string{scanAlias},
		Short:   scanShortDescription,
		Long:    scanLongDescription,
		Example: scanUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			scanConfiguration := app.configuration.Scan
			format, options, resolveError := flags.resolve(command, scanConfiguration)
			if resolveError != nil {
				return resolveError
			}
			notifier := app.notifier(command)
			_, result, scanError := app.openAndScan(command, rootArgument(arguments), options, notifier)
			if scanError != nil {
				return scanError
			}
			rendered, renderError := output.Render(result.Output, format)
			if renderError != nil {
				return renderError
			}
			if writeError := writeLine(command.OutOrStdout(), rendered); writeError != nil {
				return writeError
			}
			notifier.Info(fmt.Sprintf(scanSummaryFormat, len(result.Output.Files), utils.FormatFileSize(result.Output.TotalContentBytes()), len(rendered)))

			if resolveBool(command, copyFlagName, copyEnabled, scanConfiguration.Clipboard, false) {
				if copyError := app.dependencies.Clipboard.Copy(rendered); copyError != nil {
					notifier.Warn(fmt.Sprintf(clipboardFailureFormat, copyError))
				} else {
					notifier.Info(fmt.Sprintf(copiedToClipboardFormat, len(rendered)))
				}
			}
			if resolveBool(command, tokensFlagName, tokensEnabled, scanConfiguration.Tokens.Enabled, false) {
				model := resolveString(command, modelFlagName, tokenModel, scanConfiguration.Tokens.Model, tokenizer.DefaultModel)
				app.reportTokens(rendered, model, notifier)
			}
			return nil
		},
	}

	addScanFlags(scanCommand, &flags)
	registerBooleanFlag(scanCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(scanCommand.Flags(), &tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	scanCommand.Flags().StringVar(&tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	return scanCommand
}

// reportTokens counts tokens of text. Tokenizer failures are warnings.
func (app *application) reportTokens(text string, model string, notifier notify.Notifier) {
	counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		notifier.Warn(fmt.Sprintf(tokenizerFailureFormat, counterError))
		return
	}
	counted, countError := tokenizer.CountText(counter, text)
	if countError != nil {
		notifier.Warn(fmt.Sprintf(tokenizerFailureFormat, countError))
		return
	}
	if counted.Counted {
		notifier.Info(fmt.Sprintf(tokenSummaryFormat, counted.Tokens, resolvedModel))
	}
}
