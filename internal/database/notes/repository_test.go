package notes

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/tolino-notes/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := filepath.Join(t.TempDir(), "notes.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ImportSession{}, &entities.NoteRecord{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}

	return repo, cleanup
}

func strPtr(s string) *string {
	return &s
}

func testNotes() []entities.TolinoNote {
	return []entities.TolinoNote{
		{
			NoteType:  entities.NoteTypeHighlight,
			NoteLang:  "en",
			BookTitle: "Ender's Game (Card, Orson Scott)",
			Page:      77,
			CDate:     time.Date(2023, time.August, 20, 7, 48, 0, 0, time.UTC),
			Content:   strPtr("Ender laughed."),
		},
		{
			NoteType:  entities.NoteTypeNote,
			NoteLang:  "en",
			BookTitle: "Ender's Game (Card, Orson Scott)",
			Page:      12,
			CDate:     time.Date(2023, time.August, 21, 9, 0, 0, 0, time.UTC),
			Content:   strPtr("Quoted excerpt."),
			UserNotes: strPtr("User comment line."),
		},
		{
			NoteType:  entities.NoteTypeBookmark,
			NoteLang:  "de",
			BookTitle: "Miss Merkel",
			Page:      5,
			CDate:     time.Date(2023, time.May, 1, 18, 30, 0, 0, time.UTC),
		},
	}
}

func TestRepository_SaveImport(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	session, err := repo.SaveImport("notes.txt", testNotes(), ImportStats{BlocksSkipped: 2, BlocksFailed: 1})
	require.NoError(t, err)

	assert.NotZero(t, session.ID)
	assert.Len(t, session.BatchID, 36)
	assert.Equal(t, "notes.txt", session.SourceFile)
	assert.Equal(t, entities.ImportStatusCompleted, session.Status)
	assert.Equal(t, 3, session.NotesImported)
	assert.Equal(t, 2, session.BlocksSkipped)
	assert.Equal(t, 1, session.BlocksFailed)
	require.NotNil(t, session.CompletedAt)
}

func TestRepository_SaveImport_Empty(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	session, err := repo.SaveImport("empty.txt", nil, ImportStats{})
	require.NoError(t, err)
	assert.Equal(t, 0, session.NotesImported)

	books, err := repo.ListBooks()
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRepository_ListBooks(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.SaveImport("notes.txt", testNotes(), ImportStats{})
	require.NoError(t, err)

	books, err := repo.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Ender's Game (Card, Orson Scott)", books[0].Title)
	assert.Equal(t, "ender-s-game-card-orson-scott", books[0].Slug)
	assert.Equal(t, 2, books[0].NoteCount)

	assert.Equal(t, "Miss Merkel", books[1].Title)
	assert.Equal(t, 1, books[1].NoteCount)
}

func TestRepository_ImportsAreNotMerged(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.SaveImport("notes.txt", testNotes(), ImportStats{})
	require.NoError(t, err)
	second, err := repo.SaveImport("notes.txt", testNotes(), ImportStats{})
	require.NoError(t, err)
	assert.NotEqual(t, first.BatchID, second.BatchID)

	books, err := repo.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 4, books[0].NoteCount)
}

func TestRepository_FindBookBySlug(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.SaveImport("notes.txt", testNotes(), ImportStats{})
	require.NoError(t, err)

	title, err := repo.FindBookBySlug("miss-merkel")
	require.NoError(t, err)
	assert.Equal(t, "Miss Merkel", title)

	_, err = repo.FindBookBySlug("unknown-book")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_SharedSlugs(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	shared := []entities.TolinoNote{
		{NoteType: entities.NoteTypeBookmark, NoteLang: "de", BookTitle: "Faust", Page: 1},
		{NoteType: entities.NoteTypeBookmark, NoteLang: "de", BookTitle: "faust", Page: 2},
	}
	_, err := repo.SaveImport("notes.txt", shared, ImportStats{})
	require.NoError(t, err)

	books, err := repo.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "faust", books[0].Slug)
	assert.Equal(t, "faust-2", books[1].Slug)

	for _, book := range books {
		title, err := repo.FindBookBySlug(book.Slug)
		require.NoError(t, err)
		assert.Equal(t, book.Title, title)
	}
}

func TestRepository_CountNotes(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	count, err := repo.CountNotes()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = repo.SaveImport("notes.txt", testNotes(), ImportStats{})
	require.NoError(t, err)

	count, err = repo.CountNotes()
	require.NoError(t, err)
	assert.Equal(t, int64(len(testNotes())), count)
}

func TestRepository_NotesForBook(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.SaveImport("notes.txt", testNotes(), ImportStats{})
	require.NoError(t, err)

	notes, err := repo.NotesForBook("Ender's Game (Card, Orson Scott)")
	require.NoError(t, err)
	require.Len(t, notes, 2)

	assert.Equal(t, 12, notes[0].Page)
	assert.Equal(t, entities.NoteTypeNote, notes[0].NoteType)
	assert.Equal(t, "Quoted excerpt.", notes[0].ContentText())
	assert.Equal(t, "User comment line.", notes[0].UserNotesText())
	assert.True(t, notes[0].CDate.Equal(time.Date(2023, time.August, 21, 9, 0, 0, 0, time.UTC)))

	assert.Equal(t, 77, notes[1].Page)
	assert.Nil(t, notes[1].UserNotes)

	bookmarks, err := repo.NotesForBook("Miss Merkel")
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Nil(t, bookmarks[0].Content)

	_, err = repo.NotesForBook("Missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_ListImportSessions(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.SaveImport("first.txt", testNotes(), ImportStats{})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = repo.SaveImport("second.txt", testNotes()[:1], ImportStats{})
	require.NoError(t, err)

	sessions, err := repo.ListImportSessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "second.txt", sessions[0].SourceFile)

	limited, err := repo.ListImportSessions(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
