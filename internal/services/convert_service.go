package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/tolino-notes/internal/database/notes"
	"github.com/mrlokans/tolino-notes/internal/exporters"
	"github.com/mrlokans/tolino-notes/internal/tolino"
)

// ConvertResult contains the outcome of parsing an export and writing it out.
type ConvertResult struct {
	Parse  *tolino.ExportResult
	Export exporters.ExportResult
}

// ConvertService handles the common workflow:
// read export → parse blocks → group by book → export.
type ConvertService struct {
	reader *tolino.Reader
	logger logrus.FieldLogger
}

// NewConvertService creates a service parsing with the given language table.
func NewConvertService(languages tolino.LanguageTable, logger logrus.FieldLogger) *ConvertService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ConvertService{
		reader: tolino.NewReader(tolino.NewParser(languages), logger),
		logger: logger,
	}
}

// Parse reads a whole export from r.
func (s *ConvertService) Parse(r io.Reader) (*tolino.ExportResult, error) {
	return s.reader.Read(r)
}

// ParseFile reads the export at path.
func (s *ConvertService) ParseFile(path string) (*tolino.ExportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes export: %w", err)
	}
	defer file.Close()

	return s.Parse(file)
}

// Export hands every parsed book to exporter.
func (s *ConvertService) Export(parsed *tolino.ExportResult, exporter exporters.BookExporter) (*ConvertResult, error) {
	result, err := exporter.Export(parsed.Books)
	if err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}
	return &ConvertResult{Parse: parsed, Export: result}, nil
}

// ConvertFile parses the export at path and writes it with exporter.
func (s *ConvertService) ConvertFile(path string, exporter exporters.BookExporter) (*ConvertResult, error) {
	parsed, err := s.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return s.Export(parsed, exporter)
}

// ImportFile parses the export at path and stores it as one import session.
func (s *ConvertService) ImportFile(path string, store exporters.NoteStore) (*ConvertResult, *exporters.DatabaseExporter, error) {
	parsed, err := s.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}

	exporter := exporters.NewDatabaseExporter(store, filepath.Base(path), StatsFor(parsed))
	result, err := s.Export(parsed, exporter)
	if err != nil {
		return nil, nil, err
	}
	return result, exporter, nil
}

// StatsFor extracts the block counters stored with an import session.
func StatsFor(parsed *tolino.ExportResult) notes.ImportStats {
	return notes.ImportStats{
		BlocksSkipped: parsed.Skipped,
		BlocksFailed:  len(parsed.Failures),
	}
}
