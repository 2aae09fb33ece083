package exporters

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/tolino-notes/internal/database/notes"
	"github.com/mrlokans/tolino-notes/internal/entities"
)

// NoteStore persists a whole parsed export.
type NoteStore interface {
	SaveImport(sourceFile string, saved []entities.TolinoNote, stats notes.ImportStats) (*entities.ImportSession, error)
}

// DatabaseExporter saves every book of an export as one import session.
type DatabaseExporter struct {
	store      NoteStore
	SourceFile string
	Stats      notes.ImportStats
	Session    *entities.ImportSession
}

func NewDatabaseExporter(store NoteStore, sourceFile string, stats notes.ImportStats) *DatabaseExporter {
	return &DatabaseExporter{
		store:      store,
		SourceFile: sourceFile,
		Stats:      stats,
	}
}

func (e *DatabaseExporter) Export(books []entities.BookNotes) (ExportResult, error) {
	all := lo.FlatMap(books, func(book entities.BookNotes, _ int) []entities.TolinoNote {
		return book.Notes
	})

	session, err := e.store.SaveImport(e.SourceFile, all, e.Stats)
	if err != nil {
		return ExportResult{BooksFailed: len(books)}, fmt.Errorf("failed to save import: %w", err)
	}
	e.Session = session

	logrus.WithFields(logrus.Fields{
		"batch": session.BatchID,
		"books": len(books),
		"notes": session.NotesImported,
	}).Info("Saved import to database")

	return ExportResult{
		BooksProcessed: len(books),
		NotesProcessed: session.NotesImported,
	}, nil
}
