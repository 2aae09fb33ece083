package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/tolino-notes/internal/database/notes"
	"github.com/mrlokans/tolino-notes/internal/exporters"
	"github.com/mrlokans/tolino-notes/internal/http"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ http.BookStore = (*notes.Repository)(nil)

// ImportHistory implementations
var _ http.ImportHistory = (*notes.Repository)(nil)

// NoteStats implementations
var _ http.NoteStats = (*notes.Repository)(nil)

// NoteStore implementations
var _ exporters.NoteStore = (*notes.Repository)(nil)

// =============================================================================
// Exporters
// =============================================================================

var _ exporters.BookExporter = (*exporters.FileExporter)(nil)
var _ exporters.BookExporter = (*exporters.DatabaseExporter)(nil)
