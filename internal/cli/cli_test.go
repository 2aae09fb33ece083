package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tolino-notes/internal/config"
	"github.com/mrlokans/tolino-notes/internal/database"
	"github.com/mrlokans/tolino-notes/internal/database/notes"
)

const testExport = "Ender's Game (Card, Orson Scott)\n" +
	"Highlight on page 77: \"Ender laughed.\"\n" +
	"Added on 08/20/2023 | 7:48\n" +
	"-----------------------------------\n" +
	"Miss Merkel (Safier, David)\n" +
	"Lesezeichen auf Seite 5:\n" +
	"Hinzugefügt am 21.08.2022 | 22:55\n" +
	"-----------------------------------\n" +
	"Unknown Book\n" +
	"Zakładka na stronie 5: x\n" +
	"Dodano 21.08.2022 | 22:55\n" +
	"-----------------------------------\n" +
	"Ender's Game (Card, Orson Scott)\n" +
	"Highlight on page twelve: \"Broken.\"\n" +
	"Added on 08/21/2023 | 9:00\n"

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(testExport), 0644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Database: config.Database{Path: filepath.Join(dir, "notes.db")},
		Export: config.Export{
			OutputDir: filepath.Join(dir, "out"),
			Format:    "md",
		},
		Watch: config.Watch{Schedule: "*/15 * * * *"},
	}
}

type outputSetter interface {
	setOutput(out, errOut io.Writer)
}

func captureOutput(cmd outputSetter) *bytes.Buffer {
	var out bytes.Buffer
	cmd.setOutput(&out, io.Discard)
	return &out
}

func TestConvertCommand_ParseFlags(t *testing.T) {
	t.Run("uses config defaults", func(t *testing.T) {
		cfg := testConfig(t)
		cmd := NewConvertCommand(cfg)

		require.NoError(t, cmd.ParseFlags([]string{"-input", "notes.txt"}))
		assert.Equal(t, "notes.txt", cmd.InputPath)
		assert.Equal(t, cfg.Export.OutputDir, cmd.OutputDir)
		assert.Equal(t, "md", cmd.Format)
	})

	t.Run("flags override config", func(t *testing.T) {
		cmd := NewConvertCommand(testConfig(t))

		err := cmd.ParseFlags([]string{"-input", "notes.txt", "-output", "json", "-format", "json", "-languages", "de,en", "-dry-run"})
		require.NoError(t, err)
		assert.Equal(t, "json", cmd.OutputDir)
		assert.Equal(t, "json", cmd.Format)
		assert.Equal(t, "de,en", cmd.Languages)
		assert.True(t, cmd.DryRun)
	})

	t.Run("requires input", func(t *testing.T) {
		cmd := NewConvertCommand(testConfig(t))
		assert.Error(t, cmd.ParseFlags(nil))
	})

	t.Run("input defaults to the configured export", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Export.InputFile = "/Volumes/tolino/notes.txt"
		cmd := NewConvertCommand(cfg)

		require.NoError(t, cmd.ParseFlags(nil))
		assert.Equal(t, "/Volumes/tolino/notes.txt", cmd.InputPath)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		cmd := NewConvertCommand(testConfig(t))
		assert.Error(t, cmd.ParseFlags([]string{"-input", "notes.txt", "-format", "pdf"}))
	})
}

func TestConvertCommand_Run(t *testing.T) {
	t.Run("writes one file per readable book", func(t *testing.T) {
		cfg := testConfig(t)
		cmd := NewConvertCommand(cfg)
		out := captureOutput(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"-input", writeExport(t)}))

		require.NoError(t, cmd.Run())

		assert.FileExists(t, filepath.Join(cfg.Export.OutputDir, "ender-s-game-card-orson-scott.md"))
		assert.NoFileExists(t, filepath.Join(cfg.Export.OutputDir, "miss-merkel-safier-david.md"))

		output := out.String()
		assert.Contains(t, output, "Found 2 notes in 2 books (4 blocks)")
		assert.Contains(t, output, "[SKIP] 1 blocks")
		assert.Contains(t, output, "[ERROR] block 3")
		assert.Contains(t, output, "[OK] ender-s-game-card-orson-scott.md")
		assert.Contains(t, output, "Books skipped: 1")
	})

	t.Run("json keeps bookmark only books", func(t *testing.T) {
		cfg := testConfig(t)
		cmd := NewConvertCommand(cfg)
		captureOutput(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"-input", writeExport(t), "-format", "json"}))

		require.NoError(t, cmd.Run())
		assert.FileExists(t, filepath.Join(cfg.Export.OutputDir, "miss-merkel-safier-david.json"))
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		cfg := testConfig(t)
		cmd := NewConvertCommand(cfg)
		out := captureOutput(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"-input", writeExport(t), "-dry-run"}))

		require.NoError(t, cmd.Run())
		assert.NoDirExists(t, cfg.Export.OutputDir)
		assert.Contains(t, out.String(), "DRY RUN MODE")
	})

	t.Run("missing input file", func(t *testing.T) {
		cmd := NewConvertCommand(testConfig(t))
		captureOutput(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"-input", filepath.Join(t.TempDir(), "missing.txt")}))

		assert.ErrorContains(t, cmd.Run(), "notes file not found")
	})

	t.Run("unknown language", func(t *testing.T) {
		cmd := NewConvertCommand(testConfig(t))
		captureOutput(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"-input", writeExport(t), "-languages", "pl"}))

		assert.Error(t, cmd.Run())
	})
}

func TestImportCommand_Run(t *testing.T) {
	t.Run("saves notes to the database", func(t *testing.T) {
		cfg := testConfig(t)
		cmd := NewImportCommand(cfg)
		out := captureOutput(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"-input", writeExport(t)}))

		require.NoError(t, cmd.Run())
		assert.Contains(t, out.String(), "Notes saved: 2")
		assert.Contains(t, out.String(), "Blocks failed: 1")

		db, err := database.NewDatabase(cfg.Database.Path)
		require.NoError(t, err)
		defer db.Close()

		repo := notes.NewRepository(db.DB)
		books, err := repo.ListBooks()
		require.NoError(t, err)
		assert.Len(t, books, 2)

		sessions, err := repo.ListImportSessions(0)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, "notes.txt", sessions[0].SourceFile)
	})

	t.Run("dry run leaves database untouched", func(t *testing.T) {
		cfg := testConfig(t)
		cmd := NewImportCommand(cfg)
		out := captureOutput(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"-input", writeExport(t), "-dry-run"}))

		require.NoError(t, cmd.Run())
		assert.NoFileExists(t, cfg.Database.Path)
		assert.Contains(t, out.String(), "Dry run complete")
	})

	t.Run("requires input", func(t *testing.T) {
		cmd := NewImportCommand(testConfig(t))
		assert.Error(t, cmd.ParseFlags([]string{"-db", "notes.db"}))
	})

	t.Run("input defaults to the configured export", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Export.InputFile = writeExport(t)
		cmd := NewImportCommand(cfg)
		out := captureOutput(cmd)
		require.NoError(t, cmd.ParseFlags(nil))

		require.NoError(t, cmd.Run())
		assert.Contains(t, out.String(), "Notes saved: 2")
	})
}

func TestWatchCommand(t *testing.T) {
	t.Run("rejects invalid schedule", func(t *testing.T) {
		cmd := NewWatchCommand(testConfig(t))
		err := cmd.ParseFlags([]string{"-input", "notes.txt", "-schedule", "hourly"})
		assert.ErrorContains(t, err, "invalid cron schedule")
	})

	t.Run("converts once and stops with the context", func(t *testing.T) {
		cfg := testConfig(t)
		cmd := NewWatchCommand(cfg)
		out := captureOutput(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"-input", writeExport(t)}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, cmd.run(ctx))
		assert.FileExists(t, filepath.Join(cfg.Export.OutputDir, "ender-s-game-card-orson-scott.md"))
		assert.Contains(t, out.String(), "[OK] 1 books, 1 notes")
		assert.Contains(t, out.String(), "Watch stopped")
	})
}
