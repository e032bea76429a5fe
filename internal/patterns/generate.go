package patterns

import (
	"path/filepath"
	"regexp"

	"github.com/temirov/textread/internal/utils"
)

const (
	anchorStart         = "^"
	anchorEnd           = "$"
	anyTail             = ".*"
	directoryTailSuffix = "/.*$"
	currentDirectory    = "."
)

// IncludeForPath builds an include pattern selecting a picked file or
// everything under a picked directory. The path is expressed relative to
// root; a path outside root falls back to its base name.
func IncludeForPath(root string, path string, isDir bool) string {
	relativePath, insideRoot := utils.RelativeSlashPath(root, path)
	if !insideRoot {
		relativePath = filepath.Base(filepath.Clean(path))
	}
	if relativePath == currentDirectory {
		return anchorStart + anyTail + anchorEnd
	}
	escapedPath := regexp.QuoteMeta(relativePath)
	if isDir {
		return anchorStart + escapedPath + anyTail + anchorEnd
	}
	return anchorStart + escapedPath + anchorEnd
}

// ExcludeForDirectory builds an exclude pattern for everything under a top-level
// directory sharing the base name of path.
func ExcludeForDirectory(path string) string {
	baseName := filepath.Base(filepath.Clean(path))
	return anchorStart + regexp.QuoteMeta(baseName) + directoryTailSuffix
}

// AppendUnique appends each addition absent from existing, preserving order.
func AppendUnique(existing []string, additions ...string) []string {
	combined := append([]string(nil), existing...)
	for _, addition := range utils.DeduplicatePatterns(additions) {
		if !utils.ContainsString(combined, addition) {
			combined = append(combined, addition)
		}
	}
	return combined
}
