package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/tolino-notes/internal/config"
	"github.com/mrlokans/tolino-notes/internal/exporters"
	"github.com/mrlokans/tolino-notes/internal/services"
	"github.com/mrlokans/tolino-notes/internal/tolino"
)

// ConvertCommand converts a Tolino notes.txt export into one file per book.
type ConvertCommand struct {
	InputPath string
	OutputDir string
	Format    string
	Languages string
	Verbose   bool
	DryRun    bool

	out    io.Writer
	errOut io.Writer
}

func NewConvertCommand(cfg *config.Config) *ConvertCommand {
	return &ConvertCommand{
		InputPath: cfg.Export.InputFile,
		OutputDir: cfg.Export.OutputDir,
		Format:    cfg.Export.Format,
		Languages: strings.Join(cfg.Export.Languages, ","),
		out:       os.Stdout,
		errOut:    os.Stderr,
	}
}

func (cmd *ConvertCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)

	fs.StringVar(&cmd.InputPath, "input", cmd.InputPath, "Path to the Tolino 'notes.txt' export (defaults to TOLINO_INPUT_FILE)")
	fs.StringVar(&cmd.OutputDir, "output", cmd.OutputDir, "Output directory for the converted files")
	fs.StringVar(&cmd.Format, "format", cmd.Format, "Output format: md or json")
	fs.StringVar(&cmd.Languages, "languages", cmd.Languages, "Comma separated language tags to accept (default: all)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be written without creating files")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s convert -input <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert highlights, notes and bookmarks from a Tolino export into\n")
		fmt.Fprintf(os.Stderr, "one Markdown or JSON file per book.\n\n")
		fmt.Fprintf(os.Stderr, "The export is typically found at:\n")
		fmt.Fprintf(os.Stderr, "  /Volumes/tolino/notes.txt\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Convert to Markdown:\n")
		fmt.Fprintf(os.Stderr, "  %s convert -input notes.txt -output ~/Obsidian/Tolino\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Only German and English notes, as JSON:\n")
		fmt.Fprintf(os.Stderr, "  %s convert -input notes.txt -output ./json -format json -languages de,en\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.InputPath == "" {
		return fmt.Errorf("required flag -input not provided")
	}
	if cmd.OutputDir == "" {
		return fmt.Errorf("required flag -output not provided")
	}
	if _, err := exporters.ParseFormat(cmd.Format); err != nil {
		return err
	}

	return nil
}

func (cmd *ConvertCommand) Run() error {
	printHeader(cmd.out, "Tolino Convert")

	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "DRY RUN MODE - No files will be written")
		fmt.Fprintln(cmd.out)
	}

	if _, err := os.Stat(cmd.InputPath); os.IsNotExist(err) {
		return fmt.Errorf("notes file not found: %s", cmd.InputPath)
	}

	languages, err := tolino.LanguagesFor(config.SplitList(cmd.Languages))
	if err != nil {
		return err
	}
	format, err := exporters.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}
	cmd.OutputDir = absOutputDir

	fmt.Fprintf(cmd.out, "File: %s\n", cmd.InputPath)
	fmt.Fprintf(cmd.out, "Languages: %s\n", strings.Join(languages.Tags(), ", "))
	fmt.Fprintln(cmd.out, "\nReading notes from Tolino export...")

	logger := newCommandLogger(cmd.errOut, cmd.Verbose)
	service := services.NewConvertService(languages, logger)

	parsed, err := service.ParseFile(cmd.InputPath)
	if err != nil {
		return err
	}
	printParseSummary(cmd.out, parsed, cmd.Verbose)

	if len(parsed.Books) == 0 {
		fmt.Fprintln(cmd.out, "No notes found in export")
		return nil
	}

	fmt.Fprintf(cmd.out, "\nExporting %s files to: %s\n", format, cmd.OutputDir)

	exporter := exporters.NewFileExporter(cmd.OutputDir, format, logger)
	exporter.DryRun = cmd.DryRun

	result, err := service.Export(parsed, exporter)
	if err != nil {
		return err
	}

	for _, path := range result.Export.Files {
		printOK(cmd.out, "%s", filepath.Base(path))
	}
	printExportSummary(cmd.out, result)

	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "\nDry run complete. Use without -dry-run to write files.")
	}

	return nil
}

func (cmd *ConvertCommand) setOutput(out, errOut io.Writer) {
	cmd.out, cmd.errOut = out, errOut
}
