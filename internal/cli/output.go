package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/tolino-notes/internal/services"
	"github.com/mrlokans/tolino-notes/internal/tolino"
)

var (
	okLabel    = color.New(color.FgGreen).SprintFunc()
	skipLabel  = color.New(color.FgYellow).SprintFunc()
	errorLabel = color.New(color.FgRed).SprintFunc()
	titleLabel = color.New(color.Bold).SprintFunc()
)

func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, titleLabel(title))
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
}

func printOK(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", okLabel("[OK]"), fmt.Sprintf(format, args...))
}

func printSkip(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", skipLabel("[SKIP]"), fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", errorLabel("[ERROR]"), fmt.Sprintf(format, args...))
}

// printParseSummary reports what was found in the export and which blocks
// could not be used.
func printParseSummary(w io.Writer, parsed *tolino.ExportResult, verbose bool) {
	fmt.Fprintf(w, "Found %d notes in %d books (%d blocks)\n", len(parsed.Notes), len(parsed.Books), parsed.Blocks)

	if verbose && len(parsed.Books) > 0 {
		fmt.Fprintln(w, "\n=== Books Found ===")
		for i, book := range parsed.Books {
			fmt.Fprintf(w, "%d. %q (%d notes)\n", i+1, book.Title, len(book.Notes))
		}
	}

	if parsed.Skipped > 0 {
		printSkip(w, "%d blocks in an unsupported language or of an unknown type", parsed.Skipped)
	}
	for _, failure := range parsed.Failures {
		printError(w, "block %d: %v", failure.Index, failure.Err)
	}
}

func printExportSummary(w io.Writer, result *services.ConvertResult) {
	fmt.Fprintln(w, "\n=== Export Summary ===")
	fmt.Fprintf(w, "Books written: %d\n", result.Export.BooksProcessed)
	fmt.Fprintf(w, "Books skipped: %d\n", result.Export.BooksSkipped)
	fmt.Fprintf(w, "Books failed: %d\n", result.Export.BooksFailed)
	fmt.Fprintf(w, "Notes written: %d\n", result.Export.NotesProcessed)
}

// newCommandLogger logs to stderr so that status lines on stdout stay readable.
func newCommandLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
