// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Read access to stored books and notes (internal/http/config.go)
//   - NoteStore: Persist a parsed export as an import session (internal/exporters/database.go)
//
// ## Output Interfaces
//
//   - BookExporter: Write parsed books somewhere (internal/exporters/generic.go)
//
// # Adding a New Output Format
//
//  1. Add a renderer in internal/exporters/, taking the notes of one book:
//
//     func RenderCSV(notes []entities.TolinoNote) ([]byte, error)
//
//  2. Add a Format constant and handle it in Format.Render and ParseFormat.
//
//  3. FileExporter, the convert and watch commands pick it up through -format.
//
// # Adding a New Language
//
// Append a LanguageProfile to the default table in internal/tolino/languages.go.
// Its date prefixes must not be a prefix of any other profile's prefixes;
// TestLanguageTable_PrefixesDoNotOverlap guards this.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
