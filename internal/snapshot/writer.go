// Package snapshot copies the currently selected files into a timestamped
// backup directory under the project root.
package snapshot

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/textread/internal/types"
	"github.com/temirov/textread/internal/utils"
)

const (
	directoryMode       = 0o755
	copiedFileMode      = 0o644
	snapshotWrittenText = "snapshot written"
	sourceMissingText   = "snapshot source missing, skipped"
)

// Snapshot describes one completed backup directory.
type Snapshot struct {
	Destination string
	Timestamp   time.Time
	Label       string
	Copied      []string
}

// Writer creates snapshots on Fs. Now defaults to time.Now.
type Writer struct {
	Fs     afero.Fs
	Now    func() time.Time
	Logger *zap.Logger
}

// Write copies files into root/target/backup/<timestamp>-<label>. Each file is
// placed at its path relative to root; a file outside root is placed at its
// full path below the destination. Files that no longer exist are skipped.
// The first failure aborts with *types.IOError and already copied files stay.
// Two snapshots written in the same second with the same label share a
// destination, and the later one overwrites the earlier files.
func (writer Writer) Write(root string, files []string, label string) (Snapshot, error) {
	validatedLabel, validationError := ValidateLabel(label)
	if validationError != nil {
		return Snapshot{}, validationError
	}
	timestamp := writer.now()
	destination := filepath.Join(utils.BackupRoot(root), FolderName(timestamp, validatedLabel))
	if mkdirError := writer.Fs.MkdirAll(destination, directoryMode); mkdirError != nil {
		return Snapshot{}, &types.IOError{Op: types.OperationMkdir, Path: destination, Err: mkdirError}
	}

	logger := utils.LoggerOrNop(writer.Logger)
	snapshot := Snapshot{Destination: destination, Timestamp: timestamp, Label: validatedLabel}
	for _, sourcePath := range files {
		exists, existsError := afero.Exists(writer.Fs, sourcePath)
		if existsError != nil {
			return snapshot, &types.IOError{Op: types.OperationCopy, Path: sourcePath, Err: existsError}
		}
		if !exists {
			logger.Debug(sourceMissingText, zap.String("path", sourcePath))
			continue
		}
		destinationPath := filepath.Join(destination, mirroredPath(root, sourcePath))
		if copyError := writer.copyFile(sourcePath, destinationPath); copyError != nil {
			return snapshot, &types.IOError{Op: types.OperationCopy, Path: sourcePath, Err: copyError}
		}
		snapshot.Copied = append(snapshot.Copied, destinationPath)
	}
	logger.Info(snapshotWrittenText,
		zap.String("destination", destination),
		zap.Int("files", len(snapshot.Copied)))
	return snapshot, nil
}

func (writer Writer) now() time.Time {
	if writer.Now == nil {
		return time.Now()
	}
	return writer.Now()
}

func mirroredPath(root string, sourcePath string) string {
	relativePath, insideRoot := utils.RelativeSlashPath(root, sourcePath)
	if !insideRoot {
		return filepath.Clean(sourcePath)
	}
	return filepath.FromSlash(relativePath)
}

func (writer Writer) copyFile(sourcePath string, destinationPath string) error {
	if mkdirError := writer.Fs.MkdirAll(filepath.Dir(destinationPath), directoryMode); mkdirError != nil {
		return mkdirError
	}
	sourceFile, openError := writer.Fs.Open(sourcePath)
	if openError != nil {
		return openError
	}
	defer sourceFile.Close()

	destinationFile, createError := writer.Fs.OpenFile(destinationPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, copiedFileMode)
	if createError != nil {
		return createError
	}
	if _, copyError := io.Copy(destinationFile, sourceFile); copyError != nil {
		destinationFile.Close()
		return copyError
	}
	return destinationFile.Close()
}
