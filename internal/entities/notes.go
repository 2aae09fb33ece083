package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// NoteType is the kind of annotation a Tolino export entry represents.
type NoteType string

const (
	NoteTypeHighlight NoteType = "HIGHLIGHT"
	NoteTypeNote      NoteType = "NOTE"
	NoteTypeBookmark  NoteType = "BOOKMARK"
)

func (t NoteType) String() string {
	return string(t)
}

// Valid reports whether t is one of the three known note types.
func (t NoteType) Valid() bool {
	switch t {
	case NoteTypeHighlight, NoteTypeNote, NoteTypeBookmark:
		return true
	}
	return false
}

// NoteDateLayout is the day.month.year hour:minute layout used when notes are
// serialized, regardless of the locale they were parsed from.
const NoteDateLayout = "02.01.2006 15:04"

// TolinoNote is a single parsed annotation. Content is nil for bookmarks,
// UserNotes is only set for notes.
type TolinoNote struct {
	NoteType  NoteType
	NoteLang  string
	BookTitle string
	Page      int
	CDate     time.Time
	Content   *string
	UserNotes *string
}

// HasContent reports whether the note carries readable text.
func (n TolinoNote) HasContent() bool {
	return n.NoteType != NoteTypeBookmark
}

// ContentText returns Content or an empty string.
func (n TolinoNote) ContentText() string {
	if n.Content == nil {
		return ""
	}
	return *n.Content
}

// UserNotesText returns UserNotes or an empty string.
func (n TolinoNote) UserNotesText() string {
	if n.UserNotes == nil {
		return ""
	}
	return *n.UserNotes
}

// BookNotes are the notes of one book in the order they were read.
type BookNotes struct {
	Title string
	Notes []TolinoNote
}

type tolinoNoteJSON struct {
	NoteType  NoteType `json:"note_type"`
	NoteLang  string   `json:"note_lang"`
	BookTitle string   `json:"book_title"`
	Page      int      `json:"page"`
	CDate     string   `json:"cdate"`
	Content   *string  `json:"content"`
	UserNotes *string  `json:"user_notes"`
}

func (n TolinoNote) MarshalJSON() ([]byte, error) {
	return json.Marshal(tolinoNoteJSON{
		NoteType:  n.NoteType,
		NoteLang:  n.NoteLang,
		BookTitle: n.BookTitle,
		Page:      n.Page,
		CDate:     n.CDate.Format(NoteDateLayout),
		Content:   n.Content,
		UserNotes: n.UserNotes,
	})
}

func (n *TolinoNote) UnmarshalJSON(data []byte) error {
	var raw tolinoNoteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.NoteType.Valid() {
		return fmt.Errorf("unknown note type %q", raw.NoteType)
	}
	cdate, err := time.Parse(NoteDateLayout, raw.CDate)
	if err != nil {
		return fmt.Errorf("invalid cdate %q: %w", raw.CDate, err)
	}
	*n = TolinoNote{
		NoteType:  raw.NoteType,
		NoteLang:  raw.NoteLang,
		BookTitle: raw.BookTitle,
		Page:      raw.Page,
		CDate:     cdate,
		Content:   raw.Content,
		UserNotes: raw.UserNotes,
	}
	return nil
}
