// Package session holds the state of one project between user actions and
// orchestrates the stateless core components on its behalf.
package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/textread/internal/collector"
	"github.com/temirov/textread/internal/patterns"
	"github.com/temirov/textread/internal/settings"
	"github.com/temirov/textread/internal/snapshot"
	"github.com/temirov/textread/internal/treeview"
	"github.com/temirov/textread/internal/types"
	"github.com/temirov/textread/internal/utils"
)

const (
	resolveRootFormat           = "resolve project root %s: %w"
	inspectRootFormat           = "inspect project root %s: %w"
	inspectPathFormat           = "inspect %s: %w"
	rejectedPatternText         = "pattern rejected"
	patternEvaluationFailedText = "pattern evaluation failed"
	matchedPathField            = "path"
	settingsCreatedText         = "settings file created"
	scanCompletedText           = "scan completed"
	patternKindField            = "kind"
	patternSourceField          = "pattern"
	selectedFilesField          = "files"
	settingsPathField           = "path"
	projectRootField            = "root"
	treeRenderedField           = "tree"
	rejectedPatternsField       = "rejected"
	addedPatternsField          = "added"
	settingsUpdatedText         = "settings updated"
	projectRootIsNotFolder      = "project root %s is not a directory"
)

// ErrNoScan is returned by actions that need the output of a previous scan.
var ErrNoScan = errors.New("no scan result available; run a scan first")

// Options configures a Session.
type Options struct {
	// Now supplies timestamps for exports and snapshots. Defaults to time.Now.
	Now func() time.Time
}

// Session is the explicit state of one opened project: its root, its loaded
// settings, the output of the most recent scan and the remembered export
// directory. Settings saves and snapshots are serialized per session.
type Session struct {
	Fs         afero.Fs
	Root       string
	Settings   types.Settings
	LastOutput *types.ProjectOutput
	OutputPath string

	logger     *zap.Logger
	now        func() time.Time
	writeMutex sync.Mutex
}

// ScanOptions tunes one scan.
type ScanOptions struct {
	Tree          bool
	Strict        bool
	Engine        string
	ExtraIncludes []string
	ExtraExcludes []string
	// MatchTimeout bounds one regexp2 evaluation; zero selects the default.
	MatchTimeout time.Duration
}

// ScanResult is the output of one scan together with the pattern texts that
// failed to compile under the lenient policy.
type ScanResult struct {
	Output           *types.ProjectOutput
	RejectedIncludes []string
	RejectedExcludes []string
	// FailedPatterns lists patterns whose evaluation failed on at least one
	// path. Such an include did not select the path; such an exclude removed it.
	FailedPatterns []string
}

// Rejected returns every rejected pattern text, includes first.
func (result ScanResult) Rejected() []string {
	return append(append([]string(nil), result.RejectedIncludes...), result.RejectedExcludes...)
}

// Open prepares a session for root and loads its settings. A project without a
// settings file opens with empty settings and is left untouched; the file is
// written by the first edit or export.
func Open(fileSystem afero.Fs, root string, logger *zap.Logger, options Options) (*Session, error) {
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return nil, fmt.Errorf(resolveRootFormat, root, absoluteError)
	}
	isDirectory, inspectError := afero.IsDir(fileSystem, absoluteRoot)
	if inspectError != nil {
		return nil, fmt.Errorf(inspectRootFormat, absoluteRoot, inspectError)
	}
	if !isDirectory {
		return nil, fmt.Errorf(projectRootIsNotFolder, absoluteRoot)
	}

	session := &Session{
		Fs:     fileSystem,
		Root:   absoluteRoot,
		logger: utils.LoggerOrNop(logger),
		now:    options.Now,
	}
	if session.now == nil {
		session.now = time.Now
	}

	session.Settings = settings.Load(fileSystem, absoluteRoot)
	session.OutputPath = session.Settings.OutputPath
	return session, nil
}

// ProjectName returns the display name of the session root.
func (session *Session) ProjectName() string {
	return utils.ProjectName(session.Root, "")
}

// Scan compiles the current patterns, then collects the selected files and,
// when requested, renders the tree on two concurrent workers. The call blocks
// until both finish. The result replaces LastOutput.
func (session *Session) Scan(ctx context.Context, options ScanOptions) (ScanResult, error) {
	if contextError := ctx.Err(); contextError != nil {
		return ScanResult{}, contextError
	}
	failures := &matchFailures{logger: session.logger}
	compileOptions := patterns.Options{
		Engine:       options.Engine,
		Strict:       options.Strict,
		MatchTimeout: options.MatchTimeout,
		OnMatchError: failures.record,
	}
	includes, includeError := patterns.CompileAll(append(append([]string(nil), session.Settings.Includes...), options.ExtraIncludes...), patterns.KindInclude, compileOptions)
	if includeError != nil {
		return ScanResult{}, includeError
	}
	excludes, excludeError := patterns.CompileAll(append(append([]string(nil), session.Settings.Excludes...), options.ExtraExcludes...), patterns.KindExclude, compileOptions)
	if excludeError != nil {
		return ScanResult{}, excludeError
	}
	session.logRejected(includes)
	session.logRejected(excludes)

	var fileRecords []types.FileRecord
	var treeText string
	var workers errgroup.Group
	workers.Go(func() error {
		collected, collectError := collector.Collect(session.Fs, session.Root, includes, excludes)
		if collectError != nil {
			return collectError
		}
		fileRecords = collected
		return nil
	})
	if options.Tree {
		workers.Go(func() error {
			treeText = treeview.Renderer{Fs: session.Fs, Logger: session.logger}.Render(session.Root, excludes)
			return nil
		})
	}
	if waitError := workers.Wait(); waitError != nil {
		return ScanResult{}, waitError
	}

	projectOutput := &types.ProjectOutput{Files: fileRecords}
	if len(session.Settings.Notes) > 0 {
		noteText := session.Settings.NoteText()
		projectOutput.Note = &noteText
	}
	if options.Tree {
		projectOutput.Tree = &treeText
	}
	session.LastOutput = projectOutput

	result := ScanResult{
		Output:           projectOutput,
		RejectedIncludes: includes.Rejected(),
		RejectedExcludes: excludes.Rejected(),
		FailedPatterns:   failures.sources(),
	}
	session.logger.Debug(scanCompletedText,
		zap.String(projectRootField, session.Root),
		zap.Int(selectedFilesField, len(fileRecords)),
		zap.Bool(treeRenderedField, options.Tree),
		zap.Int(rejectedPatternsField, len(result.Rejected())))
	return result, nil
}

// matchFailures collects patterns whose evaluation failed during one scan.
// The collector and tree workers report into it concurrently.
type matchFailures struct {
	logger  *zap.Logger
	mutex   sync.Mutex
	failed  []string
	seenSet map[string]struct{}
}

func (failures *matchFailures) record(source string, path string, matchError error) {
	failures.logger.Warn(patternEvaluationFailedText,
		zap.String(patternSourceField, source),
		zap.String(matchedPathField, path),
		zap.Error(matchError))
	failures.mutex.Lock()
	defer failures.mutex.Unlock()
	if failures.seenSet == nil {
		failures.seenSet = map[string]struct{}{}
	}
	if _, seen := failures.seenSet[source]; seen {
		return
	}
	failures.seenSet[source] = struct{}{}
	failures.failed = append(failures.failed, source)
}

func (failures *matchFailures) sources() []string {
	failures.mutex.Lock()
	defer failures.mutex.Unlock()
	return append([]string(nil), failures.failed...)
}

func (session *Session) logRejected(set patterns.Set) {
	for _, rejectedSource := range set.Rejected() {
		session.logger.Warn(rejectedPatternText,
			zap.String(patternKindField, string(set.Kind())),
			zap.String(patternSourceField, rejectedSource))
	}
}

// AddPaths adds an include pattern for each picked file or directory and
// saves the settings. It returns the patterns that were new.
func (session *Session) AddPaths(paths []string) ([]string, error) {
	generated := make([]string, 0, len(paths))
	for _, pickedPath := range paths {
		absolutePath, absoluteError := filepath.Abs(pickedPath)
		if absoluteError != nil {
			return nil, fmt.Errorf(inspectPathFormat, pickedPath, absoluteError)
		}
		fileInfo, statError := session.Fs.Stat(absolutePath)
		if statError != nil {
			return nil, fmt.Errorf(inspectPathFormat, absolutePath, statError)
		}
		generated = append(generated, patterns.IncludeForPath(session.Root, absolutePath, fileInfo.IsDir()))
	}
	return session.updateSettings(func(current *types.Settings) []string {
		before := len(current.Includes)
		current.Includes = patterns.AppendUnique(current.Includes, generated...)
		return current.Includes[before:]
	})
}

// ExcludeDirectories adds an exclude pattern for each picked directory and
// saves the settings. It returns the patterns that were new.
func (session *Session) ExcludeDirectories(paths []string) ([]string, error) {
	generated := make([]string, 0, len(paths))
	for _, pickedPath := range paths {
		generated = append(generated, patterns.ExcludeForDirectory(pickedPath))
	}
	return session.updateSettings(func(current *types.Settings) []string {
		before := len(current.Excludes)
		current.Excludes = patterns.AppendUnique(current.Excludes, generated...)
		return current.Excludes[before:]
	})
}

func (session *Session) updateSettings(mutate func(current *types.Settings) []string) ([]string, error) {
	session.writeMutex.Lock()
	defer session.writeMutex.Unlock()

	if ensureError := session.ensureSettingsFile(); ensureError != nil {
		return nil, ensureError
	}
	updated := session.Settings.Clone()
	added := append([]string(nil), mutate(&updated)...)
	if saveError := settings.Save(session.Fs, session.Root, updated); saveError != nil {
		return nil, saveError
	}
	session.Settings = updated
	session.logger.Info(settingsUpdatedText,
		zap.String(settingsPathField, settings.Path(session.Root)),
		zap.Strings(addedPatternsField, added))
	return added, nil
}

// ensureSettingsFile writes the default settings template when the project has
// none and reloads the settings from it. Callers hold writeMutex.
func (session *Session) ensureSettingsFile() error {
	settingsPath, created, initializeError := settings.Initialize(session.Fs, session.Root, false)
	if initializeError != nil {
		return initializeError
	}
	if created {
		session.logger.Info(settingsCreatedText, zap.String(settingsPathField, settingsPath))
		session.Settings = settings.Load(session.Fs, session.Root)
	}
	return nil
}

// Snapshot copies the files of the last scan into a new backup directory.
func (session *Session) Snapshot(label string) (snapshot.Snapshot, error) {
	if session.LastOutput == nil {
		return snapshot.Snapshot{}, ErrNoScan
	}
	session.writeMutex.Lock()
	defer session.writeMutex.Unlock()
	writer := snapshot.Writer{Fs: session.Fs, Now: session.now, Logger: session.logger}
	return writer.Write(session.Root, session.LastOutput.FileURLs(), label)
}
