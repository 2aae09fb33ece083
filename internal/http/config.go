package http

import (
	"github.com/mrlokans/tolino-notes/internal/database"
	"github.com/mrlokans/tolino-notes/internal/entities"
	"github.com/mrlokans/tolino-notes/internal/exporters"
	"github.com/mrlokans/tolino-notes/internal/services"
)

// BookStore provides read access to stored books and their notes.
type BookStore interface {
	ListBooks() ([]entities.BookSummary, error)
	FindBookBySlug(slug string) (string, error)
	NotesForBook(title string) ([]entities.TolinoNote, error)
}

// ImportHistory lists past imports.
type ImportHistory interface {
	ListImportSessions(limit int) ([]entities.ImportSession, error)
}

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Database  *database.Database
	Books     BookStore
	NoteStore exporters.NoteStore
	Imports   ImportHistory
	Stats     NoteStats
	Converter *services.ConvertService
	Version   string
}
