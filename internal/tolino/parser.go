package tolino

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/tolino-notes/internal/entities"
)

var (
	// Short dash runs left over from the block separator.
	dashLinePattern = regexp.MustCompile(`^-{3,}$`)

	// Some locations carry a "-2" style suffix after the page number.
	pageSuffixPattern = regexp.MustCompile(`-[0-9]+$`)
)

const (
	locationSeparator = ": "
	// A quote that opens a line starts the highlighted passage of a note.
	noteQuoteBoundary = "\n\""
)

// Parser turns a single Tolino notes.txt block into a TolinoNote. It holds no
// mutable state and is safe for concurrent use.
type Parser struct {
	languages LanguageTable
}

func NewParser(languages LanguageTable) *Parser {
	if len(languages) == 0 {
		languages = DefaultLanguages()
	}
	return &Parser{languages: languages}
}

// Parse converts one raw block into a note. Rejections (see IsSkippable) mean
// the block should be ignored; MalformedDateError and MalformedPageError mean
// a recognized block carried data in an unexpected shape.
func (p *Parser) Parse(block string) (*entities.TolinoNote, error) {
	if strings.TrimSpace(block) == "" {
		return nil, ErrEmptyInput
	}

	lines := splitLines(normalizeInlineSpace(block))
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}
	if len(lines) < 2 {
		return nil, ErrIncompleteBlock
	}

	bookTitle := CleanString(lines[0], true)
	dateLine := lines[len(lines)-1]
	body := lines[1 : len(lines)-1]

	profile, ok := p.languages.Detect(dateLine)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, dateLine)
	}

	cdate, err := parseDate(profile, dateLine)
	if err != nil {
		return nil, err
	}

	fullText := strings.Join(body, "\n")

	var (
		header   string
		rest     string
		page     int
		fallback bool
	)
	if before, after, found := cutLocation(fullText, profile); found {
		header = collapseWhitespace(pageSuffixPattern.ReplaceAllString(before, ""))
		page, err = parsePage(header)
		if err != nil {
			return nil, err
		}
		rest = after
	} else {
		// No location header at all: treat everything after the first quote
		// as a highlight without a page.
		fallback = true
		_, rest, _ = strings.Cut(fullText, `"`)
	}

	note := &entities.TolinoNote{
		NoteLang:  profile.Tag,
		BookTitle: bookTitle,
		Page:      page,
		CDate:     cdate,
	}

	switch {
	case !fallback && strings.HasPrefix(header, profile.BookmarkPrefix):
		note.NoteType = entities.NoteTypeBookmark
	case fallback || strings.HasPrefix(header, profile.HighlightPrefix):
		note.NoteType = entities.NoteTypeHighlight
		content := CleanString(collapseWhitespace(rest), true)
		note.Content = &content
	case strings.HasPrefix(header, profile.NotePrefix):
		note.NoteType = entities.NoteTypeNote
		content, userNotes := splitNoteText(rest)
		note.Content = &content
		note.UserNotes = &userNotes
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnparsableContentType, header)
	}

	return note, nil
}

// cutLocation splits the location header from the text after it. Lines are
// trimmed, so a header with nothing after it on its line ends in a bare colon.
// Such a colon only counts when the text before it is a location header of
// profile; otherwise it belongs to the passage.
func cutLocation(text string, profile LanguageProfile) (header, rest string, found bool) {
	idx := strings.Index(text, locationSeparator)
	if nl := strings.Index(text, ":\n"); nl >= 0 && (idx < 0 || nl < idx) && profile.isLocationHeader(text[:nl]) {
		return text[:nl], text[nl+2:], true
	}
	if idx >= 0 {
		return text[:idx], text[idx+len(locationSeparator):], true
	}
	if before, ok := strings.CutSuffix(text, ":"); ok && profile.isLocationHeader(before) {
		return before, "", true
	}
	return "", "", false
}

// splitLines trims every line and drops blank and dash-only lines.
func splitLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || dashLinePattern.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func parseDate(profile LanguageProfile, dateLine string) (time.Time, error) {
	value := profile.StripDatePrefix(dateLine)
	value = strings.TrimSpace(strings.ReplaceAll(value, " | ", " "))

	cdate, err := time.Parse(profile.DateLayout, value)
	if err != nil {
		return time.Time{}, &MalformedDateError{Value: value, Layout: profile.DateLayout, Err: err}
	}
	return cdate, nil
}

// parsePage reads the page number from the last token of a location header
// such as "Highlight on page 77".
func parsePage(header string) (int, error) {
	tokens := strings.Fields(header)
	if len(tokens) == 0 {
		return 0, &MalformedPageError{Header: header, Err: fmt.Errorf("no page token")}
	}
	page, err := strconv.Atoi(tokens[len(tokens)-1])
	if err != nil {
		return 0, &MalformedPageError{Header: header, Err: err}
	}
	if page < 0 {
		return 0, &MalformedPageError{Header: header, Err: fmt.Errorf("negative page %d", page)}
	}
	return page, nil
}

// splitNoteText separates the user's comment from the passage it refers to.
// The export writes the comment first and the quoted passage last; the only
// usable boundary is a quote right after a line break, and the last such
// boundary wins.
func splitNoteText(text string) (content, userNotes string) {
	segments := strings.Split(text, noteQuoteBoundary)
	last := len(segments) - 1

	content = CleanString(collapseWhitespace(segments[last]), true)
	// Quotes the user typed around their own comment are kept.
	userNotes = CleanString(collapseWhitespace(strings.Join(segments[:last], noteQuoteBoundary)), false)
	return content, userNotes
}
