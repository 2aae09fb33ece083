// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── notes/           # Parsed notes and the import sessions they came from
//
// # Using Sub-packages
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./tolino-notes.db")
//
//	// Create the notes repository
//	repo := notes.NewRepository(db.DB)
//
//	// Store an export and read it back
//	session, err := repo.SaveImport("notes.txt", parsed, notes.ImportStats{})
//	books, err := repo.ListBooks()
//
// # Interface Implementations
//
//   - notes.Repository: implements http.BookStore and exporters.NoteStore
package database
