package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/splitkit/internal/ui"
)

// Stdin is the input name that selects standard input.
const Stdin = "-"

// ErrNotFound is returned when the listing input file does not exist.
var ErrNotFound = errors.New("not found")

// SourceProvider determines and retrieves the listing content.
type SourceProvider struct {
	path      string
	clipboard bool
	stdin     io.Reader
}

// New creates a new SourceProvider reading from path, or from the clipboard
// when useClipboard is set.
func New(path string, useClipboard bool) *SourceProvider {
	return &SourceProvider{
		path:      path,
		clipboard: useClipboard,
		stdin:     os.Stdin,
	}
}

// Check verifies that the input file exists before any work is done.
func (sp *SourceProvider) Check() error {
	if sp.clipboard || sp.path == Stdin {
		return nil
	}
	if _, err := os.Stat(sp.path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s %w", sp.path, ErrNotFound)
		}
		return fmt.Errorf("failed to stat %s: %w", sp.path, err)
	}
	return nil
}

// GetContent retrieves content from the clipboard, stdin, or the input file.
func (sp *SourceProvider) GetContent() (string, error) {
	switch {
	case sp.clipboard:
		ui.Header("--- Reading from clipboard ---")
		content, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("failed to read from clipboard: %w", err)
		}
		if strings.TrimSpace(content) == "" {
			ui.Warning("Clipboard is empty. Nothing to process.")
			return "", nil
		}
		return content, nil

	case sp.path == Stdin:
		ui.Header("--- Reading from stdin ---")
		content, err := io.ReadAll(sp.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil

	default:
		if err := sp.Check(); err != nil {
			return "", err
		}
		ui.Header("--- Reading from %s ---", sp.path)
		content, err := os.ReadFile(sp.path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", sp.path, err)
		}
		return string(content), nil
	}
}
