package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/temirov/textread/internal/services/prompt"
)

func TestConsoleLine(testingHandle *testing.T) {
	testingHandle.Parallel()

	testCases := []struct {
		name             string
		input            string
		expectedAnswer   string
		expectedAccepted bool
	}{
		{name: "answer_with_newline", input: "release1\n", expectedAnswer: "release1", expectedAccepted: true},
		{name: "answer_with_crlf", input: "release1\r\n", expectedAnswer: "release1", expectedAccepted: true},
		{name: "empty_answer_accepted", input: "\n", expectedAnswer: "", expectedAccepted: true},
		{name: "answer_without_newline", input: "last", expectedAnswer: "last", expectedAccepted: true},
		{name: "end_of_input_cancels", input: "", expectedAnswer: "", expectedAccepted: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testingHandle.Run(testCase.name, func(subTestingHandle *testing.T) {
			subTestingHandle.Parallel()
			var output bytes.Buffer
			console := prompt.NewConsole(strings.NewReader(testCase.input), &output)
			answer, accepted, promptError := console.Line("Label")
			if promptError != nil {
				subTestingHandle.Fatalf("unexpected error: %v", promptError)
			}
			if answer != testCase.expectedAnswer || accepted != testCase.expectedAccepted {
				subTestingHandle.Fatalf("Line = %q, %v", answer, accepted)
			}
			if output.String() != "Label: " {
				subTestingHandle.Fatalf("unexpected prompt %q", output.String())
			}
		})
	}
}

func TestConsoleChooseRepromptsUntilRecognized(testingHandle *testing.T) {
	testingHandle.Parallel()

	var output bytes.Buffer
	console := prompt.NewConsole(strings.NewReader("maybe\nYES\n"), &output)
	choice, promptError := console.Choose("Split?")
	if promptError != nil {
		testingHandle.Fatalf("unexpected error: %v", promptError)
	}
	if choice != prompt.ChoiceYes {
		testingHandle.Fatalf("expected yes, got %v", choice)
	}
	if strings.Count(output.String(), "Split?") != 2 {
		testingHandle.Fatalf("expected the question twice, got %q", output.String())
	}
}

func TestConsoleChooseCancelsAtEndOfInput(testingHandle *testing.T) {
	testingHandle.Parallel()

	console := prompt.NewConsole(strings.NewReader(""), &bytes.Buffer{})
	choice, promptError := console.Choose("Split?")
	if promptError != nil || choice != prompt.ChoiceCancel {
		testingHandle.Fatalf("expected cancel, got %v %v", choice, promptError)
	}
}

func TestParseChoice(testingHandle *testing.T) {
	testingHandle.Parallel()

	testCases := map[string]prompt.Choice{"y": prompt.ChoiceYes, " No ": prompt.ChoiceNo, "CANCEL": prompt.ChoiceCancel}
	for answer, expected := range testCases {
		choice, recognized := prompt.ParseChoice(answer)
		if !recognized || choice != expected {
			testingHandle.Fatalf("ParseChoice(%q) = %v, %v", answer, choice, recognized)
		}
	}
	if _, recognized := prompt.ParseChoice("perhaps"); recognized {
		testingHandle.Fatalf("perhaps must not be recognized")
	}
}
