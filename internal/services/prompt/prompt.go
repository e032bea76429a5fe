// Package prompt asks the user questions on a console.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Choice is the answer to a yes/no/cancel question.
type Choice int

const (
	// ChoiceCancel aborts the pending action without side effects.
	ChoiceCancel Choice = iota
	// ChoiceYes accepts the proposed action.
	ChoiceYes
	// ChoiceNo declines the proposed action but continues.
	ChoiceNo
)

func (choice Choice) String() string {
	switch choice {
	case ChoiceYes:
		return "yes"
	case ChoiceNo:
		return "no"
	default:
		return "cancel"
	}
}

const (
	linePromptFormat   = "%s: "
	choicePromptFormat = "%s [y]es/[n]o/[c]ancel: "
	invalidChoiceText  = "please answer y, n or c"
	readAnswerFormat   = "read answer: %w"
)

// Prompter collects free text and yes/no/cancel decisions.
type Prompter interface {
	// Line asks for one line of text. The boolean is false when the user cancelled.
	Line(question string) (string, bool, error)
	// Choose asks a yes/no/cancel question.
	Choose(question string) (Choice, error)
}

// Console prompts on an output stream and reads answers line by line.
// End of input cancels the question.
type Console struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewConsole constructs a Console prompter.
func NewConsole(input io.Reader, output io.Writer) *Console {
	return &Console{reader: bufio.NewReader(input), writer: output}
}

// Line prints question and returns the answer without its line terminator.
func (console *Console) Line(question string) (string, bool, error) {
	fmt.Fprintf(console.writer, linePromptFormat, question)
	answer, cancelled, readError := console.readLine()
	if readError != nil || cancelled {
		return "", false, readError
	}
	return answer, true, nil
}

// Choose repeats question until it reads a recognized answer or input ends.
func (console *Console) Choose(question string) (Choice, error) {
	for {
		fmt.Fprintf(console.writer, choicePromptFormat, question)
		answer, cancelled, readError := console.readLine()
		if readError != nil {
			return ChoiceCancel, readError
		}
		if cancelled {
			return ChoiceCancel, nil
		}
		if choice, recognized := ParseChoice(answer); recognized {
			return choice, nil
		}
		fmt.Fprintln(console.writer, invalidChoiceText)
	}
}

func (console *Console) readLine() (string, bool, error) {
	line, readError := console.reader.ReadString('\n')
	if readError != nil {
		if errors.Is(readError, io.EOF) {
			if line == "" {
				return "", true, nil
			}
			return strings.TrimRight(line, "\r\n"), false, nil
		}
		return "", false, fmt.Errorf(readAnswerFormat, readError)
	}
	return strings.TrimRight(line, "\r\n"), false, nil
}

// ParseChoice recognizes y/yes, n/no and c/cancel in any letter case.
func ParseChoice(answer string) (Choice, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return ChoiceYes, true
	case "n", "no":
		return ChoiceNo, true
	case "c", "cancel":
		return ChoiceCancel, true
	default:
		return ChoiceCancel, false
	}
}

var _ Prompter = (*Console)(nil)
