package treeview_test

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/textread/internal/patterns"
	"github.com/temirov/textread/internal/treeview"
	"github.com/temirov/textread/internal/utils"
)

const memoryRoot = "/work/project"

func populate(testingHandle *testing.T, fileSystem afero.Fs, relativePaths ...string) {
	testingHandle.Helper()
	if mkdirError := fileSystem.MkdirAll(memoryRoot, 0o755); mkdirError != nil {
		testingHandle.Fatalf("mkdir root: %v", mkdirError)
	}
	for _, relativePath := range relativePaths {
		fullPath := filepath.Join(memoryRoot, filepath.FromSlash(relativePath))
		if mkdirError := fileSystem.MkdirAll(filepath.Dir(fullPath), 0o755); mkdirError != nil {
			testingHandle.Fatalf("mkdir %s: %v", fullPath, mkdirError)
		}
		if writeError := afero.WriteFile(fileSystem, fullPath, []byte("x"), 0o644); writeError != nil {
			testingHandle.Fatalf("write %s: %v", fullPath, writeError)
		}
	}
}

func excludeSet(testingHandle *testing.T, sources ...string) patterns.Set {
	testingHandle.Helper()
	set, compileError := patterns.CompileAll(sources, patterns.KindExclude, patterns.Options{Strict: true})
	if compileError != nil {
		testingHandle.Fatalf("compile: %v", compileError)
	}
	return set
}

func TestRenderIndentsAndPrunes(testingHandle *testing.T) {
	testingHandle.Parallel()

	testCases := []struct {
		name     string
		excludes []string
		expected string
	}{
		{
			name:     "no_excludes",
			excludes: nil,
			expected: "project\n  README.md\n  docs\n    guide.md\n  src\n    main.rs\n    sub\n      b.rs\n  target",
		},
		{
			name:     "contents_pattern_keeps_directory_line",
			excludes: []string{`^docs/.*$`},
			expected: "project\n  README.md\n  docs\n  src\n    main.rs\n    sub\n      b.rs\n  target",
		},
		{
			name:     "nested_folder_exclusion_lists_folder_without_children",
			excludes: []string{`^src/sub/.*$`},
			expected: "project\n  README.md\n  docs\n    guide.md\n  src\n    main.rs\n    sub\n  target",
		},
		{
			name:     "plain_name_prunes_subtree",
			excludes: []string{`^src/sub$`},
			expected: "project\n  README.md\n  docs\n    guide.md\n  src\n    main.rs\n  target",
		},
		{
			name:     "file_pattern_hides_file",
			excludes: []string{`\.md$`},
			expected: "project\n  docs\n  src\n    main.rs\n    sub\n      b.rs\n  target",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testingHandle.Run(testCase.name, func(subTestingHandle *testing.T) {
			subTestingHandle.Parallel()
			fileSystem := afero.NewMemMapFs()
			populate(subTestingHandle, fileSystem, "README.md", "docs/guide.md", "src/main.rs", "src/sub/b.rs", "target/backup/2024-01-01_000000-snapshot/src/main.rs")
			actual := treeview.Render(fileSystem, memoryRoot, excludeSet(subTestingHandle, testCase.excludes...))
			if actual != testCase.expected {
				subTestingHandle.Fatalf("unexpected tree:\n%s\nwant:\n%s", actual, testCase.expected)
			}
		})
	}
}

type unreadableDirectoryFileSystem struct {
	afero.Fs
	unreadablePath string
}

func (fileSystem unreadableDirectoryFileSystem) Open(name string) (afero.File, error) {
	if filepath.Clean(name) == fileSystem.unreadablePath {
		return nil, os.ErrPermission
	}
	return fileSystem.Fs.Open(name)
}

func TestRenderListsUnreadableDirectoryWithoutChildren(testingHandle *testing.T) {
	testingHandle.Parallel()

	memoryFileSystem := afero.NewMemMapFs()
	populate(testingHandle, memoryFileSystem, "locked/secret.txt", "open/visible.txt")
	observedCore, observedLogs := observer.New(zapcore.WarnLevel)
	renderer := treeview.Renderer{
		Fs:     unreadableDirectoryFileSystem{Fs: memoryFileSystem, unreadablePath: filepath.Join(memoryRoot, "locked")},
		Logger: zap.New(observedCore),
	}

	actual := renderer.Render(memoryRoot, patterns.Set{})
	expected := "project\n  locked\n  open\n    visible.txt"
	if actual != expected {
		testingHandle.Fatalf("unexpected tree:\n%s", actual)
	}
	if observedLogs.Len() != 1 {
		testingHandle.Fatalf("expected one warning, got %d", observedLogs.Len())
	}
}

// renderedPaths rebuilds slash paths relative to the root from indentation.
func renderedPaths(tree string) []string {
	lines := strings.Split(tree, "\n")
	var ancestry []string
	var relativePaths []string
	for _, line := range lines[1:] {
		trimmedLine := strings.TrimLeft(line, " ")
		depth := (len(line) - len(trimmedLine)) / 2
		ancestry = append(ancestry[:depth-1], trimmedLine)
		relativePaths = append(relativePaths, strings.Join(ancestry, "/"))
	}
	return relativePaths
}

func TestRenderPrunesExcludedSubtrees(testingHandle *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("no rendered entry lies under an excluded or backup path", prop.ForAll(
		func(relativePaths []string, excludeSources []string) bool {
			fileSystem := afero.NewMemMapFs()
			_ = fileSystem.MkdirAll(memoryRoot, 0o755)
			for _, relativePath := range relativePaths {
				fullPath := filepath.Join(memoryRoot, filepath.FromSlash(relativePath))
				_ = fileSystem.MkdirAll(filepath.Dir(fullPath), 0o755)
				_ = afero.WriteFile(fileSystem, fullPath, []byte("x"), 0o644)
			}
			excludes, _ := patterns.CompileAll(excludeSources, patterns.KindExclude, patterns.Options{})

			rendered := renderedPaths(treeview.Render(fileSystem, memoryRoot, excludes))
			renderedSet := map[string]bool{}
			for _, renderedPath := range rendered {
				renderedSet[renderedPath] = true
			}

			expectedSet := map[string]bool{}
			for _, relativePath := range relativePaths {
				segments := strings.Split(relativePath, "/")
				for segmentIndex := range segments {
					prefix := strings.Join(segments[:segmentIndex+1], "/")
					if treeview.Pruned(prefix, excludes) {
						break
					}
					expectedSet[prefix] = true
				}
			}

			var expected []string
			for expectedPath := range expectedSet {
				expected = append(expected, expectedPath)
			}
			sort.Strings(expected)
			actual := append([]string(nil), rendered...)
			sort.Strings(actual)
			if len(expected) == 0 {
				expected = nil
			}
			if len(actual) == 0 {
				actual = nil
			}
			for renderedPath := range renderedSet {
				if utils.ContainsBackupSegment(renderedPath) {
					return false
				}
			}
			return reflect.DeepEqual(actual, expected)
		},
		gen.SliceOf(gen.RegexMatch(`^(src|docs|target)/(sub/|backup/)?(a|b)\.(go|md)$`)),
		gen.SliceOf(gen.OneConstOf(`^docs/.*$`, `sub`, `\.md$`, `^src$`, `^target/`)),
	))

	properties.TestingRun(testingHandle)
}
