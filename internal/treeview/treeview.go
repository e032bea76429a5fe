// Package treeview renders an indented text outline of a project directory.
package treeview

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/textread/internal/patterns"
	"github.com/temirov/textread/internal/utils"
)

const (
	indentUnit              = "  "
	lineSeparator           = "\n"
	unreadableDirectoryText = "tree directory unreadable, listed without children"
)

// Renderer walks a directory tree independently of file collection.
type Renderer struct {
	Fs     afero.Fs
	Logger *zap.Logger
}

// Render renders root with the default renderer and no logging.
func Render(fileSystem afero.Fs, root string, excludes patterns.Set) string {
	return Renderer{Fs: fileSystem}.Render(root, excludes)
}

// Render returns the root base name at depth zero followed by one line per
// kept entry, indented two spaces per depth level. Entries are visited in
// lexical order. An entry whose relative path passes through the backup segment
// or matches an exclude pattern is omitted together with its subtree. A
// directory whose own path is kept stays listed even when every child is
// excluded.
func (renderer Renderer) Render(root string, excludes patterns.Set) string {
	cleanedRoot := filepath.Clean(root)
	lines := []string{filepath.Base(cleanedRoot)}
	lines = renderer.appendChildren(lines, cleanedRoot, cleanedRoot, excludes, 1)
	return strings.Join(lines, lineSeparator)
}

func (renderer Renderer) appendChildren(lines []string, root string, directoryPath string, excludes patterns.Set, depth int) []string {
	directoryEntries, readDirectoryError := afero.ReadDir(renderer.Fs, directoryPath)
	if readDirectoryError != nil {
		utils.LoggerOrNop(renderer.Logger).Warn(unreadableDirectoryText,
			zap.String("path", directoryPath),
			zap.Error(readDirectoryError))
		return lines
	}
	for _, directoryEntry := range directoryEntries {
		entryPath := filepath.Join(directoryPath, directoryEntry.Name())
		relativePath, _ := utils.RelativeSlashPath(root, entryPath)
		if Pruned(relativePath, excludes) {
			continue
		}
		lines = append(lines, strings.Repeat(indentUnit, depth)+directoryEntry.Name())
		if directoryEntry.IsDir() {
			lines = renderer.appendChildren(lines, root, entryPath, excludes, depth+1)
		}
	}
	return lines
}

// Pruned reports whether the tree omits the entry at relativePath.
func Pruned(relativePath string, excludes patterns.Set) bool {
	return utils.ContainsBackupSegment(relativePath) || excludes.Matches(relativePath)
}
