package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/tolino-notes/internal/config"
	"github.com/mrlokans/tolino-notes/internal/database"
	"github.com/mrlokans/tolino-notes/internal/database/notes"
	"github.com/mrlokans/tolino-notes/internal/services"
	"github.com/mrlokans/tolino-notes/internal/tolino"
)

// ImportCommand stores the notes of a Tolino export in the local database.
type ImportCommand struct {
	InputPath    string
	DatabasePath string
	Languages    string
	Verbose      bool
	DryRun       bool

	out    io.Writer
	errOut io.Writer
}

func NewImportCommand(cfg *config.Config) *ImportCommand {
	return &ImportCommand{
		InputPath:    cfg.Export.InputFile,
		DatabasePath: cfg.Database.Path,
		Languages:    strings.Join(cfg.Export.Languages, ","),
		out:          os.Stdout,
		errOut:       os.Stderr,
	}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.InputPath, "input", cmd.InputPath, "Path to the Tolino 'notes.txt' export (defaults to TOLINO_INPUT_FILE)")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the local database file for storing imported notes")
	fs.StringVar(&cmd.Languages, "languages", cmd.Languages, "Comma separated language tags to accept (default: all)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -input <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import notes from a Tolino export into a local database.\n")
		fmt.Fprintf(os.Stderr, "Every run is stored as a separate import session.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -input /Volumes/tolino/notes.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -input notes.txt -db ./notes.db -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.InputPath == "" {
		return fmt.Errorf("required flag -input not provided")
	}
	if cmd.DatabasePath == "" {
		return fmt.Errorf("required flag -db not provided")
	}

	return nil
}

func (cmd *ImportCommand) Run() error {
	printHeader(cmd.out, "Tolino Import")

	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "DRY RUN MODE - No changes will be made")
		fmt.Fprintln(cmd.out)
	}

	if _, err := os.Stat(cmd.InputPath); os.IsNotExist(err) {
		return fmt.Errorf("notes file not found: %s", cmd.InputPath)
	}

	languages, err := tolino.LanguagesFor(config.SplitList(cmd.Languages))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.out, "File: %s\n", cmd.InputPath)

	logger := newCommandLogger(cmd.errOut, cmd.Verbose)
	service := services.NewConvertService(languages, logger)

	if cmd.DryRun {
		parsed, err := service.ParseFile(cmd.InputPath)
		if err != nil {
			return err
		}
		printParseSummary(cmd.out, parsed, cmd.Verbose)
		fmt.Fprintln(cmd.out, "\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Fprintf(cmd.out, "Saving to database: %s\n\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	result, exporter, err := service.ImportFile(cmd.InputPath, notes.NewRepository(db.DB))
	if err != nil {
		return err
	}
	printParseSummary(cmd.out, result.Parse, cmd.Verbose)

	printOK(cmd.out, "import %s saved", exporter.Session.BatchID)

	fmt.Fprintln(cmd.out, "\n=== Database Import Summary ===")
	fmt.Fprintf(cmd.out, "Books: %d\n", result.Export.BooksProcessed)
	fmt.Fprintf(cmd.out, "Notes saved: %d\n", result.Export.NotesProcessed)
	fmt.Fprintf(cmd.out, "Blocks skipped: %d\n", exporter.Session.BlocksSkipped)
	fmt.Fprintf(cmd.out, "Blocks failed: %d\n", exporter.Session.BlocksFailed)

	return nil
}

func (cmd *ImportCommand) setOutput(out, errOut io.Writer) {
	cmd.out, cmd.errOut = out, errOut
}
