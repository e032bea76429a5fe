package output

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/temirov/textread/internal/types"
	"github.com/temirov/textread/internal/utils"
)

const (
	// DefaultChunkLimit is the serialized size in bytes above which an export
	// is offered for splitting.
	DefaultChunkLimit = 50000

	// NoProjectName names the project in export headers when no root is known.
	NoProjectName = "NoProject"

	noteHeader         = "// Supplementary note:\n"
	projectHeaderStart = "// Project: "
	projectDateInfix   = ", Date: "
	artifactFooter     = "// End of chunk.\n"

	chunkInfix           = "_chunk_"
	exportFileExtension  = ".txt"
	exportFallbackPrefix = "output"
	exportNameSeparator  = "_"

	exportDirectoryMode = 0o755
	exportFileMode      = 0o644
)

// ComposeExport wraps serialized output with the note and a project header.
func ComposeExport(note string, projectName string, generatedAt time.Time, serialized string) string {
	var builder strings.Builder
	builder.WriteString(noteHeader)
	builder.WriteString(note + "\n\n")
	builder.WriteString(projectHeaderStart + projectName + projectDateInfix + utils.FormatExportHeaderTimestamp(generatedAt) + "\n")
	builder.WriteString(serialized + "\n")
	builder.WriteString(artifactFooter)
	return builder.String()
}

// ChunkFileName returns the sibling path of chunk index (1-based) for an
// export path: "<stem>_chunk_<index>.<ext>", without a dot when path has no
// extension.
func ChunkFileName(path string, index int) string {
	directory := filepath.Dir(path)
	baseName := filepath.Base(path)
	extension := filepath.Ext(baseName)
	stem := strings.TrimSuffix(baseName, extension)
	return filepath.Join(directory, stem+chunkInfix+strconv.Itoa(index)+extension)
}

// DefaultExportFileName proposes an export file name for a project.
func DefaultExportFileName(projectName string, now time.Time) string {
	prefix := projectName
	if strings.TrimSpace(prefix) == "" {
		prefix = exportFallbackPrefix
	}
	return prefix + exportNameSeparator + utils.FormatExportFileTimestamp(now) + exportFileExtension
}

// WriteExport writes artifact to path, or, when chunks is non-empty, writes
// each chunk to its ChunkFileName sibling instead. The parent directory is
// created. The first failure aborts with *types.IOError; files written before
// it are kept.
func WriteExport(fileSystem afero.Fs, path string, artifact string, chunks []string) ([]string, error) {
	parentDirectory := filepath.Dir(path)
	if mkdirError := fileSystem.MkdirAll(parentDirectory, exportDirectoryMode); mkdirError != nil {
		return nil, &types.IOError{Op: types.OperationMkdir, Path: parentDirectory, Err: mkdirError}
	}
	if len(chunks) == 0 {
		if writeError := afero.WriteFile(fileSystem, path, []byte(artifact), exportFileMode); writeError != nil {
			return nil, &types.IOError{Op: types.OperationWrite, Path: path, Err: writeError}
		}
		return []string{path}, nil
	}
	writtenPaths := make([]string, 0, len(chunks))
	for chunkIndex, chunkText := range chunks {
		chunkPath := ChunkFileName(path, chunkIndex+1)
		if writeError := afero.WriteFile(fileSystem, chunkPath, []byte(chunkText), exportFileMode); writeError != nil {
			return writtenPaths, &types.IOError{Op: types.OperationWrite, Path: chunkPath, Err: writeError}
		}
		writtenPaths = append(writtenPaths, chunkPath)
	}
	return writtenPaths, nil
}
