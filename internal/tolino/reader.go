package tolino

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/tolino-notes/internal/entities"
)

const (
	utf8BOM        = "\ufeff"
	maxLineLength  = 1024 * 1024
	initialBufSize = 64 * 1024
)

// Tolino separates entries in notes.txt with a long run of dashes.
var blockSeparatorPattern = regexp.MustCompile(`^-{10,}$`)

// BlockError is a fatal parse failure for one block of an export.
type BlockError struct {
	Index int
	Block string
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %v", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// ExportResult is the outcome of reading a whole notes.txt export.
type ExportResult struct {
	Blocks   int
	Notes    []entities.TolinoNote
	Books    []entities.BookNotes
	Skipped  int
	Failures []*BlockError
}

// Reader splits a notes.txt export into blocks and feeds them to a Parser.
type Reader struct {
	parser *Parser
	logger logrus.FieldLogger
}

func NewReader(parser *Parser, logger logrus.FieldLogger) *Reader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Reader{parser: parser, logger: logger}
}

// SplitBlocks drops blank lines and splits the export on separator lines.
func SplitBlocks(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialBufSize), maxLineLength)

	var (
		blocks  []string
		current []string
		first   = true
	)
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
			first = false
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if blockSeparatorPattern.MatchString(trimmed) {
			flush()
			continue
		}
		current = append(current, trimmed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading notes export: %w", err)
	}
	flush()

	return blocks, nil
}

// Read parses every block of the export. Rejected blocks are counted and
// logged; malformed blocks are collected in Failures and do not stop the rest.
func (rd *Reader) Read(r io.Reader) (*ExportResult, error) {
	blocks, err := SplitBlocks(r)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{Blocks: len(blocks)}
	for i, block := range blocks {
		note, err := rd.parser.Parse(block)
		switch {
		case err == nil:
			result.Notes = append(result.Notes, *note)
		case IsSkippable(err):
			result.Skipped++
			rd.logger.WithFields(logrus.Fields{
				"block":  i,
				"reason": err.Error(),
			}).Warn("Skipping note block")
		default:
			result.Failures = append(result.Failures, &BlockError{Index: i, Block: block, Err: err})
			rd.logger.WithFields(logrus.Fields{
				"block": i,
			}).WithError(err).Error("Failed to parse note block")
		}
	}

	result.Books = GroupByBook(result.Notes)

	rd.logger.WithFields(logrus.Fields{
		"blocks":  result.Blocks,
		"notes":   len(result.Notes),
		"books":   len(result.Books),
		"skipped": result.Skipped,
		"failed":  len(result.Failures),
	}).Info("Parsed notes export")

	return result, nil
}

// GroupByBook groups notes by book title, keeping the order in which books
// first appear.
func GroupByBook(notes []entities.TolinoNote) []entities.BookNotes {
	byTitle := lo.GroupBy(notes, func(note entities.TolinoNote) string {
		return note.BookTitle
	})
	titles := lo.Uniq(lo.Map(notes, func(note entities.TolinoNote, _ int) string {
		return note.BookTitle
	}))

	return lo.Map(titles, func(title string, _ int) entities.BookNotes {
		return entities.BookNotes{Title: title, Notes: byTitle[title]}
	})
}
