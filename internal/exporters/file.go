package exporters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/tolino-notes/internal/entities"
	"github.com/mrlokans/tolino-notes/internal/utils"
)

// FileExporter writes one file per book into Dir.
type FileExporter struct {
	Dir    string
	Format Format
	DryRun bool
	logger logrus.FieldLogger
}

func NewFileExporter(dir string, format Format, logger logrus.FieldLogger) *FileExporter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FileExporter{
		Dir:    dir,
		Format: format,
		logger: logger,
	}
}

func (e *FileExporter) ensureDir() error {
	info, err := os.Stat(e.Dir)
	if os.IsNotExist(err) {
		if e.DryRun {
			return nil
		}
		if err := os.MkdirAll(e.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", e.Dir)
	}
	return nil
}

// Export renders and writes every book. A failing book is logged and counted
// but does not stop the others.
func (e *FileExporter) Export(books []entities.BookNotes) (ExportResult, error) {
	result := ExportResult{}

	if err := e.ensureDir(); err != nil {
		return result, err
	}

	used := make(map[string]bool, len(books))
	for _, book := range books {
		log := e.logger.WithField("book", book.Title)

		data, ok, err := e.Format.Render(book.Notes)
		if err != nil {
			log.WithError(err).Error("Failed to render book")
			result.BooksFailed++
			continue
		}
		if !ok {
			log.Debug("Nothing to write for book")
			result.BooksSkipped++
			continue
		}

		name := utils.UniqueSlug(used, utils.BookSlug(book.Title)) + "." + e.Format.Extension()
		outputPath := filepath.Join(e.Dir, name)

		if !e.DryRun {
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				log.WithError(err).Error("Failed to write book")
				result.BooksFailed++
				continue
			}
		}

		log.WithField("path", outputPath).Info("Exported book")
		result.BooksProcessed++
		result.NotesProcessed += len(book.Notes)
		result.Files = append(result.Files, outputPath)
	}

	return result, nil
}
