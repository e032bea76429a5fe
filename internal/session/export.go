package session

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/textread/internal/chunk"
	"github.com/temirov/textread/internal/output"
	"github.com/temirov/textread/internal/services/prompt"
	"github.com/temirov/textread/internal/settings"
	"github.com/temirov/textread/internal/types"
)

const (
	oversizedQuestionFormat = "serialized output is %d bytes, above the %d byte limit. Split into chunk files?"
	unsupportedSplitFormat  = "unsupported split mode %q"
	exportWrittenText       = "export written"
	exportCancelledText     = "export cancelled"
	writtenPathsField       = "paths"
	serializedBytesField    = "bytes"
)

// Decider answers the split question asked before an oversized export.
type Decider interface {
	Choose(question string) (prompt.Choice, error)
}

// ExportRequest describes one export.
type ExportRequest struct {
	// Format is one of the output formats; empty selects JSON.
	Format string
	// Path is the destination file or an existing directory. Empty selects the
	// remembered output directory, or the project root, with a default name.
	Path string
	// ChunkLimit is the serialized size above which the export is oversized.
	ChunkLimit int
	// Split is ask, always or never; empty means ask.
	Split string
}

// ExportResult reports what an export wrote.
type ExportResult struct {
	Paths           []string
	SerializedBytes int
	Chunked         bool
	Cancelled       bool
}

// Export serializes the last scan, wraps it with the note and project header
// and writes it. Output whose serialized size exceeds the chunk limit is split
// into chunk files according to the split mode, asking decider when the mode
// is ask; without a decider an oversized ask export is cancelled. A cancelled
// decision returns with nothing written. After writing,
// the destination directory is remembered and the settings are saved.
func (session *Session) Export(ctx context.Context, request ExportRequest, decider Decider) (ExportResult, error) {
	if contextError := ctx.Err(); contextError != nil {
		return ExportResult{}, contextError
	}
	if session.LastOutput == nil {
		return ExportResult{}, ErrNoScan
	}
	chunkLimit := request.ChunkLimit
	if chunkLimit <= 0 {
		chunkLimit = output.DefaultChunkLimit
	}
	format := request.Format
	if format == "" {
		format = types.FormatJSON
	}

	serialized, renderError := output.Render(session.LastOutput, format)
	if renderError != nil {
		return ExportResult{}, renderError
	}
	generatedAt := session.now()
	projectName := session.ProjectName()
	if projectName == "" {
		projectName = output.NoProjectName
	}
	artifact := output.ComposeExport(session.Settings.NoteText(), projectName, generatedAt, serialized)
	result := ExportResult{SerializedBytes: len(serialized)}

	if len(serialized) > chunkLimit {
		split, decideError := session.decideSplit(request.Split, len(serialized), chunkLimit, decider)
		if decideError != nil {
			return ExportResult{}, decideError
		}
		if split == prompt.ChoiceCancel {
			session.logger.Info(exportCancelledText, zap.Int(serializedBytesField, len(serialized)))
			result.Cancelled = true
			return result, nil
		}
		result.Chunked = split == prompt.ChoiceYes
	}

	exportPath := session.resolveExportPath(request.Path, generatedAt)
	var chunks []string
	if result.Chunked {
		var splitError error
		chunks, splitError = chunk.Split(artifact, chunkLimit)
		if splitError != nil {
			return ExportResult{}, splitError
		}
	}

	session.writeMutex.Lock()
	defer session.writeMutex.Unlock()
	if ensureError := session.ensureSettingsFile(); ensureError != nil {
		return ExportResult{}, ensureError
	}
	writtenPaths, writeError := output.WriteExport(session.Fs, exportPath, artifact, chunks)
	if writeError != nil {
		return ExportResult{Paths: writtenPaths}, writeError
	}
	result.Paths = writtenPaths
	session.OutputPath = filepath.Dir(exportPath)
	session.Settings.OutputPath = session.OutputPath
	session.logger.Info(exportWrittenText,
		zap.Strings(writtenPathsField, writtenPaths),
		zap.Int(serializedBytesField, len(serialized)))
	if saveError := settings.Save(session.Fs, session.Root, session.Settings); saveError != nil {
		return result, saveError
	}
	return result, nil
}

func (session *Session) decideSplit(mode string, size int, limit int, decider Decider) (prompt.Choice, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case types.SplitAlways:
		return prompt.ChoiceYes, nil
	case types.SplitNever:
		return prompt.ChoiceNo, nil
	case types.SplitAsk, "":
		if decider == nil {
			return prompt.ChoiceCancel, nil
		}
		return decider.Choose(fmt.Sprintf(oversizedQuestionFormat, size, limit))
	default:
		return prompt.ChoiceCancel, fmt.Errorf(unsupportedSplitFormat, mode)
	}
}

func (session *Session) resolveExportPath(requestedPath string, generatedAt time.Time) string {
	defaultName := output.DefaultExportFileName(session.ProjectName(), generatedAt)
	if strings.TrimSpace(requestedPath) == "" {
		directory := session.OutputPath
		if directory == "" {
			directory = session.Root
		}
		return filepath.Join(directory, defaultName)
	}
	absolutePath, absoluteError := filepath.Abs(requestedPath)
	if absoluteError != nil {
		absolutePath = requestedPath
	}
	if isDirectory, _ := afero.DirExists(session.Fs, absolutePath); isDirectory {
		return filepath.Join(absolutePath, defaultName)
	}
	return absolutePath
}
