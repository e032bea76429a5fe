// Package settings reads and writes the per-project settings file.
//
// The file is line oriented. Each line is trimmed of leading whitespace and a
// trailing carriage return, then categorized:
//
//	# comment            ignored, as are blank lines
//	OUTPUT_PATH=<path>   remembered export path, last non-empty value wins
//	EXCLUDE:<pattern>    exclude pattern
//	DEVNOTE:<text>       developer memo line, kept verbatim
//	LLMNOTE:<text>       note line attached to exported output, kept verbatim
//	<pattern>            include pattern
package settings

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"

	"github.com/temirov/textread/internal/types"
	"github.com/temirov/textread/internal/utils"
)

const (
	commentPrefix    = "#"
	outputPathPrefix = "OUTPUT_PATH="
	excludePrefix    = "EXCLUDE:"
	memoPrefix       = "DEVNOTE:"
	notePrefix       = "LLMNOTE:"
	carriageReturn   = "\r"
	newline          = "\n"

	includeFieldName    = "include pattern"
	excludeFieldName    = "exclude pattern"
	memoFieldName       = "developer note"
	noteFieldName       = "note"
	outputPathFieldName = "output path"
	unstableValueReason = "would not load back unchanged from the settings file"

	maximumLineBytes = 16 * 1024 * 1024
	settingsFileMode = 0o644
)

// Path returns the location of the settings file for a project root.
func Path(root string) string {
	return filepath.Join(root, utils.SettingsFileName)
}

// Load reads the settings file under root. A missing or unreadable file
// yields empty settings.
func Load(fileSystem afero.Fs, root string) types.Settings {
	fileHandle, openError := fileSystem.Open(Path(root))
	if openError != nil {
		return types.Settings{}
	}
	defer fileHandle.Close()
	return Parse(fileHandle)
}

// Parse categorizes every line read from reader. Lines that cannot be read
// end the parse with whatever was categorized so far.
func Parse(reader io.Reader) types.Settings {
	var settings types.Settings
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maximumLineBytes)
	for scanner.Scan() {
		applyLine(&settings, scanner.Text())
	}
	return settings
}

func applyLine(settings *types.Settings, rawLine string) {
	line := strings.TrimSuffix(strings.TrimLeftFunc(rawLine, unicode.IsSpace), carriageReturn)
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
		return
	}
	switch {
	case strings.HasPrefix(line, outputPathPrefix):
		outputPath := strings.TrimSpace(strings.TrimPrefix(line, outputPathPrefix))
		if outputPath != "" {
			settings.OutputPath = outputPath
		}
	case strings.HasPrefix(line, excludePrefix):
		excludePattern := strings.TrimSpace(strings.TrimPrefix(line, excludePrefix))
		if excludePattern != "" {
			settings.Excludes = append(settings.Excludes, excludePattern)
		}
	case strings.HasPrefix(line, memoPrefix):
		settings.Memo = append(settings.Memo, strings.TrimPrefix(line, memoPrefix))
	case strings.HasPrefix(line, notePrefix):
		settings.Notes = append(settings.Notes, strings.TrimPrefix(line, notePrefix))
	default:
		settings.Includes = append(settings.Includes, strings.TrimSpace(line))
	}
}

// Format renders settings in file order: the output path followed by a blank
// line when set, then includes, excludes, memo lines and note lines.
func Format(settings types.Settings) string {
	var builder strings.Builder
	if settings.OutputPath != "" {
		builder.WriteString(outputPathPrefix + settings.OutputPath + newline + newline)
	}
	for _, includePattern := range settings.Includes {
		builder.WriteString(includePattern + newline)
	}
	for _, excludePattern := range settings.Excludes {
		builder.WriteString(excludePrefix + excludePattern + newline)
	}
	for _, memoLine := range settings.Memo {
		builder.WriteString(memoPrefix + memoLine + newline)
	}
	for _, noteLine := range settings.Notes {
		builder.WriteString(notePrefix + noteLine + newline)
	}
	return builder.String()
}

// Save regenerates the settings file under root, replacing any comments the
// file held. Values that would not load back unchanged are rejected with
// *types.ValidationError before anything is written: an include that is empty,
// starts with "#" or a category prefix, or carries leading whitespace; any
// value containing a line break or ending in a carriage return; and an exclude
// or output path with surrounding whitespace. A write failure is reported as
// *types.IOError.
func Save(fileSystem afero.Fs, root string, settings types.Settings) error {
	if validationError := Validate(settings); validationError != nil {
		return validationError
	}
	settingsPath := Path(root)
	if writeError := afero.WriteFile(fileSystem, settingsPath, []byte(Format(settings)), settingsFileMode); writeError != nil {
		return &types.IOError{Op: types.OperationWrite, Path: settingsPath, Err: writeError}
	}
	return nil
}

// Validate checks that every value of settings survives Format followed by Parse.
func Validate(settings types.Settings) error {
	categories := []struct {
		field   string
		prefix  string
		values  []string
		extract func(types.Settings) []string
	}{
		{field: includeFieldName, values: settings.Includes, extract: func(parsed types.Settings) []string { return parsed.Includes }},
		{field: excludeFieldName, prefix: excludePrefix, values: settings.Excludes, extract: func(parsed types.Settings) []string { return parsed.Excludes }},
		{field: memoFieldName, prefix: memoPrefix, values: settings.Memo, extract: func(parsed types.Settings) []string { return parsed.Memo }},
		{field: noteFieldName, prefix: notePrefix, values: settings.Notes, extract: func(parsed types.Settings) []string { return parsed.Notes }},
	}
	for _, category := range categories {
		for _, value := range category.values {
			if !survivesLine(value, category.prefix+value, category.extract) {
				return &types.ValidationError{Field: category.field, Value: value, Reason: unstableValueReason}
			}
		}
	}
	if settings.OutputPath != "" {
		extractOutputPath := func(parsed types.Settings) []string { return []string{parsed.OutputPath} }
		if !survivesLine(settings.OutputPath, outputPathPrefix+settings.OutputPath, extractOutputPath) {
			return &types.ValidationError{Field: outputPathFieldName, Value: settings.OutputPath, Reason: unstableValueReason}
		}
	}
	return nil
}

func survivesLine(value string, line string, extract func(types.Settings) []string) bool {
	if strings.ContainsAny(value, newline) {
		return false
	}
	var parsed types.Settings
	applyLine(&parsed, line)
	values := extract(parsed)
	return len(values) == 1 && values[0] == value
}
