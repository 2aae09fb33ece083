package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mrlokans/tolino-notes/internal/config"
	"github.com/mrlokans/tolino-notes/internal/exporters"
	"github.com/mrlokans/tolino-notes/internal/scheduler"
	"github.com/mrlokans/tolino-notes/internal/services"
	"github.com/mrlokans/tolino-notes/internal/tolino"
)

// WatchCommand re-converts an export on a cron schedule until interrupted.
type WatchCommand struct {
	InputPath string
	OutputDir string
	Format    string
	Languages string
	Schedule  string
	Verbose   bool

	out    io.Writer
	errOut io.Writer
}

func NewWatchCommand(cfg *config.Config) *WatchCommand {
	return &WatchCommand{
		InputPath: cfg.Export.InputFile,
		OutputDir: cfg.Export.OutputDir,
		Format:    cfg.Export.Format,
		Languages: strings.Join(cfg.Export.Languages, ","),
		Schedule:  cfg.Watch.Schedule,
		out:       os.Stdout,
		errOut:    os.Stderr,
	}
}

func (cmd *WatchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	fs.StringVar(&cmd.InputPath, "input", cmd.InputPath, "Path to the Tolino 'notes.txt' export")
	fs.StringVar(&cmd.OutputDir, "output", cmd.OutputDir, "Output directory for the converted files")
	fs.StringVar(&cmd.Format, "format", cmd.Format, "Output format: md or json")
	fs.StringVar(&cmd.Languages, "languages", cmd.Languages, "Comma separated language tags to accept (default: all)")
	fs.StringVar(&cmd.Schedule, "schedule", cmd.Schedule, "Cron schedule, e.g. '*/15 * * * *'")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s watch -input <path> -output <dir> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert the export once, then again on every schedule tick\n")
		fmt.Fprintf(os.Stderr, "whenever the file has changed. Stop with Ctrl+C.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s watch -input /Volumes/tolino/notes.txt -output ~/Obsidian/Tolino -schedule '*/5 * * * *'\n", os.Args[0])
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
	if err := scheduler.ValidateSchedule(cmd.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", cmd.Schedule, err)
	}

	return nil
}

// newScheduler builds the scheduler for the parsed flags.
func (cmd *WatchCommand) newScheduler() (*scheduler.ConvertScheduler, error) {
	languages, err := tolino.LanguagesFor(config.SplitList(cmd.Languages))
	if err != nil {
		return nil, err
	}
	format, err := exporters.ParseFormat(cmd.Format)
	if err != nil {
		return nil, err
	}
	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for output: %w", err)
	}
	cmd.OutputDir = absOutputDir

	logger := newCommandLogger(cmd.errOut, cmd.Verbose)
	service := services.NewConvertService(languages, logger)
	exporter := exporters.NewFileExporter(cmd.OutputDir, format, logger)

	return scheduler.NewConvertScheduler(service, exporter, cmd.InputPath, cmd.Schedule, logger), nil
}

func (cmd *WatchCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cmd.run(ctx)
}

func (cmd *WatchCommand) run(ctx context.Context) error {
	printHeader(cmd.out, "Tolino Watch")

	s, err := cmd.newScheduler()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.out, "File: %s\n", cmd.InputPath)
	fmt.Fprintf(cmd.out, "Output: %s\n", cmd.OutputDir)
	fmt.Fprintf(cmd.out, "Schedule: %s\n\n", cmd.Schedule)

	s.OnRun = cmd.report
	s.RunNow()

	if err := s.Start(ctx); err != nil {
		return err
	}
	if next := s.NextRunTime(); next != nil {
		fmt.Fprintf(cmd.out, "Next run: %s\n", next.Format("2006-01-02 15:04"))
	}

	<-ctx.Done()
	s.Stop()

	fmt.Fprintln(cmd.out, "Watch stopped")
	return nil
}

func (cmd *WatchCommand) report(status *scheduler.RunStatus) {
	switch {
	case status.Err != nil:
		printError(cmd.out, "%v", status.Err)
	case status.Skipped:
		printSkip(cmd.out, "export unchanged")
	default:
		printOK(cmd.out, "%d books, %d notes", status.Result.Export.BooksProcessed, status.Result.Export.NotesProcessed)
	}
}

func (cmd *WatchCommand) setOutput(out, errOut io.Writer) {
	cmd.out, cmd.errOut = out, errOut
}
