package entities

import (
	"time"
)

type ImportStatus string

const (
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportSession tracks one export file loaded into the database.
type ImportSession struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	BatchID       string       `gorm:"uniqueIndex;size:36" json:"batch_id"`
	SourceFile    string       `gorm:"size:1024" json:"source_file"`
	Status        ImportStatus `gorm:"size:20;default:'running'" json:"status"`
	NotesImported int          `json:"notes_imported"`
	BlocksSkipped int          `json:"blocks_skipped"`
	BlocksFailed  int          `json:"blocks_failed"`
	StartedAt     time.Time    `json:"started_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	Notes         []NoteRecord `gorm:"foreignKey:ImportSessionID" json:"-"`
}

func (ImportSession) TableName() string {
	return "import_sessions"
}

// NoteRecord is the persisted form of a TolinoNote.
type NoteRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ImportSessionID uint      `gorm:"index" json:"import_session_id"`
	BookTitle       string    `gorm:"index;size:512" json:"book_title"`
	NoteType        NoteType  `gorm:"size:20" json:"note_type"`
	NoteLang        string    `gorm:"size:8" json:"note_lang"`
	Page            int       `json:"page"`
	CDate           time.Time `gorm:"column:cdate;index" json:"cdate"`
	Content         *string   `gorm:"type:text" json:"content"`
	UserNotes       *string   `gorm:"type:text" json:"user_notes"`
	CreatedAt       time.Time `json:"created_at"`
}

func (NoteRecord) TableName() string {
	return "notes"
}

// NewNoteRecord copies a parsed note into its persisted form.
func NewNoteRecord(note TolinoNote) NoteRecord {
	return NoteRecord{
		BookTitle: note.BookTitle,
		NoteType:  note.NoteType,
		NoteLang:  note.NoteLang,
		Page:      note.Page,
		CDate:     note.CDate,
		Content:   note.Content,
		UserNotes: note.UserNotes,
	}
}

func (r NoteRecord) ToNote() TolinoNote {
	return TolinoNote{
		NoteType:  r.NoteType,
		NoteLang:  r.NoteLang,
		BookTitle: r.BookTitle,
		Page:      r.Page,
		CDate:     r.CDate,
		Content:   r.Content,
		UserNotes: r.UserNotes,
	}
}

// BookSummary is a book title with the number of stored notes.
type BookSummary struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	NoteCount int    `json:"note_count"`
}
