// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

const copyFailedFormat = "copy to clipboard: %w"

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("system clipboard is not available")

// Copier copies textual data to a clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if writeError := clipboard.WriteAll(text); writeError != nil {
		return fmt.Errorf(copyFailedFormat, writeError)
	}
	return nil
}

// Memory keeps the last copied text in process memory.
type Memory struct {
	mutex sync.Mutex
	text  string
	count int
}

// Copy records text.
func (memory *Memory) Copy(text string) error {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()
	memory.text = text
	memory.count++
	return nil
}

// Text returns the most recently copied text and how many copies were made.
func (memory *Memory) Text() (string, int) {
	memory.mutex.Lock()
	defer memory.mutex.Unlock()
	return memory.text, memory.count
}

var (
	_ Copier = (*Service)(nil)
	_ Copier = (*Memory)(nil)
)
