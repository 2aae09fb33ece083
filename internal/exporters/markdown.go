package exporters

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/mrlokans/tolino-notes/internal/entities"
)

// SortNotes returns a copy of notes ordered by page, then creation date.
func SortNotes(notes []entities.TolinoNote) []entities.TolinoNote {
	sorted := slices.Clone(notes)
	slices.SortStableFunc(sorted, func(a, b entities.TolinoNote) int {
		if c := cmp.Compare(a.Page, b.Page); c != 0 {
			return c
		}
		return a.CDate.Compare(b.CDate)
	})
	return sorted
}

// RenderMarkdown renders the notes of one book. It returns false when there
// is nothing to write, i.e. the book only has bookmarks.
func RenderMarkdown(notes []entities.TolinoNote) (string, bool) {
	readable := lo.Filter(SortNotes(notes), func(note entities.TolinoNote, _ int) bool {
		return note.HasContent()
	})
	if len(readable) == 0 {
		return "", false
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "# %s\n\n", readable[0].BookTitle)

	for _, note := range readable {
		fmt.Fprintf(&builder, "%s (p. %d)\n", note.ContentText(), note.Page)
		if note.NoteType == entities.NoteTypeNote {
			fmt.Fprintf(&builder, "> %s\n", note.UserNotesText())
		}
		builder.WriteString("\n")
	}

	return builder.String(), true
}
