package settings_test

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"github.com/temirov/textread/internal/settings"
)

func TestInitializeWritesTemplateOnce(testingHandle *testing.T) {
	testingHandle.Parallel()

	fileSystem := afero.NewMemMapFs()
	settingsPath, created, initializeError := settings.Initialize(fileSystem, projectRoot, false)
	if initializeError != nil || !created {
		testingHandle.Fatalf("expected template to be written, created=%v error=%v", created, initializeError)
	}
	if settingsPath != settings.Path(projectRoot) {
		testingHandle.Fatalf("unexpected path %q", settingsPath)
	}

	loaded := settings.Load(fileSystem, projectRoot)
	expectedExcludes := []string{`^\.git/.*$`, `^target/.*$`}
	if !reflect.DeepEqual(loaded.Excludes, expectedExcludes) || len(loaded.Includes) != 0 {
		testingHandle.Fatalf("unexpected template settings %#v", loaded)
	}

	if writeError := afero.WriteFile(fileSystem, settingsPath, []byte("custom\n"), 0o644); writeError != nil {
		testingHandle.Fatalf("write: %v", writeError)
	}
	_, created, initializeError = settings.Initialize(fileSystem, projectRoot, false)
	if initializeError != nil || created {
		testingHandle.Fatalf("existing file must be kept, created=%v error=%v", created, initializeError)
	}
	if loaded := settings.Load(fileSystem, projectRoot); !reflect.DeepEqual(loaded.Includes, []string{"custom"}) {
		testingHandle.Fatalf("existing file was modified: %#v", loaded)
	}

	_, created, initializeError = settings.Initialize(fileSystem, projectRoot, true)
	if initializeError != nil || !created {
		testingHandle.Fatalf("force must rewrite, created=%v error=%v", created, initializeError)
	}
	written, _ := afero.ReadFile(fileSystem, settingsPath)
	if string(written) != settings.DefaultTemplate() {
		testingHandle.Fatalf("expected the default template after force")
	}
}
