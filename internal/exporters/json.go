package exporters

import (
	"encoding/json"
	"fmt"

	"github.com/mrlokans/tolino-notes/internal/entities"
)

// RenderJSON renders every note of one book, bookmarks included, as an
// indented JSON array sorted like the Markdown output.
func RenderJSON(notes []entities.TolinoNote) ([]byte, error) {
	sorted := SortNotes(notes)
	if sorted == nil {
		sorted = []entities.TolinoNote{}
	}

	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}
	return append(data, '\n'), nil
}
