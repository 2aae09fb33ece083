// Package notes stores parsed Tolino notes and the imports they came from.
//
// Imports are append-only: importing the same export twice stores its notes
// twice, each set under its own import session.
//
// # Usage
//
//	repo := notes.NewRepository(db.DB)
//	session, err := repo.SaveImport("notes.txt", parsed, stats)
//	books, err := repo.ListBooks()
package notes

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/mrlokans/tolino-notes/internal/entities"
	"github.com/mrlokans/tolino-notes/internal/utils"
)

const insertBatchSize = 100

// ErrBookNotFound is returned when no stored note belongs to the requested book.
var ErrBookNotFound = errors.New("book not found")

// ImportStats carries block counters from the parse step into the session.
type ImportStats struct {
	BlocksSkipped int
	BlocksFailed  int
}

type bookRow struct {
	BookTitle string
	NoteCount int
}

// Repository handles note and import session database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveImport stores notes under a new import session in one transaction.
func (r *Repository) SaveImport(sourceFile string, notes []entities.TolinoNote, stats ImportStats) (*entities.ImportSession, error) {
	session := &entities.ImportSession{
		BatchID:       uuid.NewString(),
		SourceFile:    sourceFile,
		Status:        entities.ImportStatusRunning,
		BlocksSkipped: stats.BlocksSkipped,
		BlocksFailed:  stats.BlocksFailed,
		StartedAt:     time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return fmt.Errorf("failed to create import session: %w", err)
		}

		records := lo.Map(notes, func(note entities.TolinoNote, _ int) entities.NoteRecord {
			record := entities.NewNoteRecord(note)
			record.ImportSessionID = session.ID
			return record
		})
		if len(records) > 0 {
			if err := tx.CreateInBatches(records, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to save notes: %w", err)
			}
		}

		completedAt := time.Now()
		session.Status = entities.ImportStatusCompleted
		session.NotesImported = len(records)
		session.CompletedAt = &completedAt
		return tx.Save(session).Error
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// ListBooks returns every stored book title with its note count, ordered by
// title. Titles sharing a slug get -2, -3, ... suffixes in that order.
func (r *Repository) ListBooks() ([]entities.BookSummary, error) {
	var rows []bookRow
	err := r.db.Model(&entities.NoteRecord{}).
		Select("book_title, COUNT(*) AS note_count").
		Group("book_title").
		Order("book_title ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(rows))
	return lo.Map(rows, func(row bookRow, _ int) entities.BookSummary {
		return entities.BookSummary{
			Title:     row.BookTitle,
			Slug:      utils.UniqueSlug(used, utils.BookSlug(row.BookTitle)),
			NoteCount: row.NoteCount,
		}
	}), nil
}

// FindBookBySlug resolves a slug listed by ListBooks back to a title.
func (r *Repository) FindBookBySlug(slug string) (string, error) {
	books, err := r.ListBooks()
	if err != nil {
		return "", err
	}
	book, ok := lo.Find(books, func(b entities.BookSummary) bool {
		return b.Slug == slug
	})
	if !ok {
		return "", ErrBookNotFound
	}
	return book.Title, nil
}

// NotesForBook returns the notes of a book ordered by page and creation date.
func (r *Repository) NotesForBook(title string) ([]entities.TolinoNote, error) {
	var records []entities.NoteRecord
	err := r.db.Where("book_title = ?", title).
		Order("page ASC, cdate ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrBookNotFound
	}

	return lo.Map(records, func(record entities.NoteRecord, _ int) entities.TolinoNote {
		return record.ToNote()
	}), nil
}

// CountNotes returns the number of stored notes across all imports.
func (r *Repository) CountNotes() (int64, error) {
	var count int64
	err := r.db.Model(&entities.NoteRecord{}).Count(&count).Error
	return count, err
}

// ListImportSessions returns sessions newest first.
func (r *Repository) ListImportSessions(limit int) ([]entities.ImportSession, error) {
	var sessions []entities.ImportSession
	query := r.db.Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&sessions).Error
	return sessions, err
}
