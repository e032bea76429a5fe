package settings

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/temirov/textread/internal/types"
)

const (
	inspectSettingsFormat = "inspect settings path %s: %w"

	defaultSettingsTemplate = `# textread project settings.
#
# Every non-comment line is a regular expression matched anywhere in a file
# path relative to this directory, using forward slashes. Anchor with ^ and $
# to match whole paths.
#
#   <pattern>            include files matching the pattern
#   EXCLUDE:<pattern>    exclude files matching the pattern; in the tree view
#                        a matching directory is hidden with everything below
#   OUTPUT_PATH=<path>   default export destination
#   DEVNOTE:<text>       developer memo, never exported
#   LLMNOTE:<text>       note placed at the top of every export
#
# target/backup is always excluded.

EXCLUDE:^\.git/.*$
EXCLUDE:^target/.*$
`
)

// DefaultTemplate returns the commented settings file written by Initialize.
func DefaultTemplate() string {
	return defaultSettingsTemplate
}

// Initialize writes the default settings template under root. An existing file
// is kept unless force is set. The boolean reports whether a file was written.
func Initialize(fileSystem afero.Fs, root string, force bool) (string, bool, error) {
	settingsPath := Path(root)
	exists, existsError := afero.Exists(fileSystem, settingsPath)
	if existsError != nil {
		return settingsPath, false, fmt.Errorf(inspectSettingsFormat, settingsPath, existsError)
	}
	if exists && !force {
		return settingsPath, false, nil
	}
	if writeError := afero.WriteFile(fileSystem, settingsPath, []byte(defaultSettingsTemplate), settingsFileMode); writeError != nil {
		return settingsPath, false, &types.IOError{Op: types.OperationWrite, Path: settingsPath, Err: writeError}
	}
	return settingsPath, true, nil
}
