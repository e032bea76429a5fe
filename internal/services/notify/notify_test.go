package notify_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/temirov/textread/internal/services/notify"
)

func TestConsoleWritesOneLinePerMessage(testingHandle *testing.T) {
	testingHandle.Parallel()

	var buffer bytes.Buffer
	console := notify.NewConsole(&buffer)
	console.Info("scan finished")
	console.Warn("pattern rejected")
	console.Error("export failed")

	lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	if len(lines) != 3 {
		testingHandle.Fatalf("expected three lines, got %q", buffer.String())
	}
	expectations := []struct {
		label   string
		message string
	}{
		{label: "info:", message: "scan finished"},
		{label: "warn:", message: "pattern rejected"},
		{label: "error:", message: "export failed"},
	}
	for lineIndex, expectation := range expectations {
		if !strings.Contains(lines[lineIndex], expectation.label) || !strings.HasSuffix(lines[lineIndex], expectation.message) {
			testingHandle.Fatalf("line %d = %q", lineIndex, lines[lineIndex])
		}
	}
}
