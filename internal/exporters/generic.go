package exporters

import (
	"fmt"
	"strings"

	"github.com/mrlokans/tolino-notes/internal/entities"
)

type BookExporter interface {
	Export(books []entities.BookNotes) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed int      `json:"books_processed"`
	BooksSkipped   int      `json:"books_skipped"`
	BooksFailed    int      `json:"books_failed"`
	NotesProcessed int      `json:"notes_processed"`
	Files          []string `json:"files,omitempty"`
}

// Format is an output format for book files.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// ParseFormat accepts "md", "markdown" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported output format %q (use md or json)", s)
}

func (f Format) Extension() string {
	return string(f)
}

// Render produces the file body for one book. It returns false when nothing
// should be written.
func (f Format) Render(notes []entities.TolinoNote) ([]byte, bool, error) {
	switch f {
	case FormatJSON:
		data, err := RenderJSON(notes)
		if err != nil {
			return nil, false, err
		}
		return data, true, nil
	case FormatMarkdown:
		markdown, ok := RenderMarkdown(notes)
		return []byte(markdown), ok, nil
	}
	return nil, false, fmt.Errorf("unsupported output format %q", string(f))
}
