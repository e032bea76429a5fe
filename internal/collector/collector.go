// Package collector walks a project tree and reads the files selected by
// include and exclude patterns.
package collector

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/temirov/textread/internal/patterns"
	"github.com/temirov/textread/internal/types"
	"github.com/temirov/textread/internal/utils"
)

// Collect walks root depth-first in lexical order and returns one record per
// selected regular file.
//
// A file is selected when at least one include pattern and no exclude pattern
// matches its slash-separated path relative to root. Paths under the backup
// segment are never considered and their directories are not descended. The
// first read or walk failure aborts the run with *types.IOError and no partial
// result is returned.
func Collect(fileSystem afero.Fs, root string, includes patterns.Set, excludes patterns.Set) ([]types.FileRecord, error) {
	if includes.Empty() {
		return []types.FileRecord{}, nil
	}
	cleanedRoot := filepath.Clean(root)
	fileRecords := []types.FileRecord{}

	directoryWalkError := afero.Walk(fileSystem, cleanedRoot, func(walkedPath string, fileInfo os.FileInfo, accessError error) error {
		if accessError != nil {
			return &types.IOError{Op: types.OperationWalk, Path: walkedPath, Err: accessError}
		}
		relativePath, insideRoot := utils.RelativeSlashPath(cleanedRoot, walkedPath)
		if !insideRoot || relativePath == "." {
			return nil
		}
		if utils.ContainsBackupSegment(relativePath) {
			if fileInfo.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileInfo.Mode().IsRegular() {
			return nil
		}
		if !Selected(relativePath, includes, excludes) {
			return nil
		}

		fileBytes, fileReadError := afero.ReadFile(fileSystem, walkedPath)
		if fileReadError != nil {
			return &types.IOError{Op: types.OperationRead, Path: walkedPath, Err: fileReadError}
		}
		fileRecords = append(fileRecords, types.FileRecord{
			URL:     walkedPath,
			Name:    relativePath,
			Content: string(fileBytes),
		})
		return nil
	})
	if directoryWalkError != nil {
		return nil, directoryWalkError
	}
	return fileRecords, nil
}

// Selected applies the selection law to one relative path: at least one
// include matches and no exclude matches.
func Selected(relativePath string, includes patterns.Set, excludes patterns.Set) bool {
	return includes.Matches(relativePath) && !excludes.Matches(relativePath)
}
