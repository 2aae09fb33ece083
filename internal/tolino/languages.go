package tolino

import (
	"fmt"
	"strings"
)

// LanguageProfile holds the locale specific markers a Tolino export uses.
type LanguageProfile struct {
	Tag                string
	CDatePrefix        string
	CDateChangedPrefix string
	HighlightPrefix    string
	NotePrefix         string
	BookmarkPrefix     string
	// DateLayout is a time.Parse layout for the date line once the prefix is
	// stripped and " | " has been collapsed to a single space.
	DateLayout string
}

// StripDatePrefix removes the creation or modification prefix from line.
func (p LanguageProfile) StripDatePrefix(line string) string {
	if rest, ok := strings.CutPrefix(line, p.CDatePrefix); ok {
		return rest
	}
	if p.CDateChangedPrefix != "" {
		if rest, ok := strings.CutPrefix(line, p.CDateChangedPrefix); ok {
			return rest
		}
	}
	return line
}

func (p LanguageProfile) matchesDateLine(line string) bool {
	if strings.HasPrefix(line, p.CDatePrefix) {
		return true
	}
	return p.CDateChangedPrefix != "" && strings.HasPrefix(line, p.CDateChangedPrefix)
}

// isLocationHeader reports whether line is a single-line location header
// such as "Bookmark on page 12".
func (p LanguageProfile) isLocationHeader(line string) bool {
	if strings.Contains(line, "\n") {
		return false
	}
	line = collapseWhitespace(line)
	for _, prefix := range []string{p.BookmarkPrefix, p.HighlightPrefix, p.NotePrefix} {
		if prefix != "" && strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// LanguageTable is an ordered list of profiles. Detection walks the table in
// order, so the first profile wins if prefixes ever overlap.
type LanguageTable []LanguageProfile

var defaultLanguages = LanguageTable{
	{
		Tag:                "en",
		CDatePrefix:        "Added on ",
		CDateChangedPrefix: "Changed on ",
		HighlightPrefix:    "Highlight on page ",
		NotePrefix:         "Note on page ",
		BookmarkPrefix:     "Bookmark on page ",
		DateLayout:         "1/2/2006 15:04",
	},
	{
		Tag:                "de",
		CDatePrefix:        "Hinzugefügt am ",
		CDateChangedPrefix: "Geändert am ",
		HighlightPrefix:    "Markierung auf Seite ",
		NotePrefix:         "Notiz auf Seite ",
		BookmarkPrefix:     "Lesezeichen auf Seite ",
		DateLayout:         "2.1.2006 15:04",
	},
	{
		Tag:                "es",
		CDatePrefix:        "Agregado el ",
		CDateChangedPrefix: "Modificado el ",
		HighlightPrefix:    "Marcadores en la página ",
		NotePrefix:         "Nota en la página ",
		BookmarkPrefix:     "Selección en la página ",
		DateLayout:         "2.1.2006 15:04",
	},
	{
		Tag:                "nl",
		CDatePrefix:        "Toegevoegd op ",
		CDateChangedPrefix: "Gewijzigd op ",
		HighlightPrefix:    "Markering op pagina ",
		NotePrefix:         "Notitie op pagina ",
		BookmarkPrefix:     "Bladwijzer op pagina ",
		DateLayout:         "2/1/2006 15:04",
	},
	{
		Tag:                "it",
		CDatePrefix:        "Aggiunto il ",
		CDateChangedPrefix: "Modificato il ",
		HighlightPrefix:    "Evidenziazione a pagina ",
		NotePrefix:         "Nota a pagina ",
		BookmarkPrefix:     "Segnalibro a pagina ",
		DateLayout:         "2.1.2006 15:04",
	},
	{
		Tag:                "fr",
		CDatePrefix:        "Ajouté le ",
		CDateChangedPrefix: "Modifié le ",
		HighlightPrefix:    "Surlignement en page ",
		NotePrefix:         "Note en page ",
		BookmarkPrefix:     "Signet en page ",
		DateLayout:         "2.1.2006 15:04",
	},
}

// DefaultLanguages returns a copy of the built-in table (en, de, es, nl, it, fr).
func DefaultLanguages() LanguageTable {
	table := make(LanguageTable, len(defaultLanguages))
	copy(table, defaultLanguages)
	return table
}

// LanguagesFor returns the built-in profiles for the given tags, in table
// order. An empty tag list returns the whole table.
func LanguagesFor(tags []string) (LanguageTable, error) {
	if len(tags) == 0 {
		return DefaultLanguages(), nil
	}

	wanted := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := defaultLanguages.Lookup(tag); !ok {
			return nil, fmt.Errorf("unsupported language %q", tag)
		}
		wanted[tag] = true
	}

	var table LanguageTable
	for _, profile := range defaultLanguages {
		if wanted[profile.Tag] {
			table = append(table, profile)
		}
	}
	if len(table) == 0 {
		return DefaultLanguages(), nil
	}
	return table, nil
}

// Detect finds the profile whose date prefix starts line.
func (t LanguageTable) Detect(line string) (LanguageProfile, bool) {
	for _, profile := range t {
		if profile.matchesDateLine(line) {
			return profile, true
		}
	}
	return LanguageProfile{}, false
}

func (t LanguageTable) Lookup(tag string) (LanguageProfile, bool) {
	for _, profile := range t {
		if profile.Tag == tag {
			return profile, true
		}
	}
	return LanguageProfile{}, false
}

func (t LanguageTable) Tags() []string {
	tags := make([]string, len(t))
	for i, profile := range t {
		tags[i] = profile.Tag
	}
	return tags
}
