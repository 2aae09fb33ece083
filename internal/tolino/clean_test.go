package tolino

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		stripQuotes bool
		expected    string
	}{
		{
			name:        "strips one leading and trailing quote",
			input:       `  "quoted"  `,
			stripQuotes: true,
			expected:    "quoted",
		},
		{
			name:        "only one quote is stripped at each end",
			input:       `""double""`,
			stripQuotes: true,
			expected:    `"double"`,
		},
		{
			name:        "keeps quotes when not stripping",
			input:       `"quoted"`,
			stripQuotes: false,
			expected:    `"quoted"`,
		},
		{
			name:        "normalizes curly quotes and guillemets",
			input:       "“one” «two»",
			stripQuotes: false,
			expected:    `"one" "two"`,
		},
		{
			name:        "collapses adjacent fancy quotes into one",
			input:       "end.”“Start",
			stripQuotes: false,
			expected:    `end."Start`,
		},
		{
			name:        "normalizes apostrophe like marks",
			input:       "it’s ‘x’ a´b `c`",
			stripQuotes: false,
			expected:    "it's 'x' a'b 'c'",
		},
		{
			name:        "doubled apostrophes become a double quote",
			input:       "’’Simple,’’ he said",
			stripQuotes: false,
			expected:    `"Simple," he said`,
		},
		{
			name:        "expands ellipsis",
			input:       "wait…",
			stripQuotes: true,
			expected:    "wait...",
		},
		{
			name:        "collapses whitespace",
			input:       "a \t b  c\nd",
			stripQuotes: true,
			expected:    "a b c d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanString(tt.input, tt.stripQuotes))
		})
	}
}

func TestCleanString_FixedPointOnParsedContent(t *testing.T) {
	note, err := newTestParser().Parse("Book\nHighlight on page 1: \"It’s  a  “test”…\tdone\"\nAdded on 08/20/2023 | 7:48")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := note.ContentText()
	assert.Equal(t, `It's a "test"... done`, content)
	assert.Equal(t, content, CleanString(content, true))
}

func TestCleanString_QuotedContentIsNotFixedPoint(t *testing.T) {
	note, err := newTestParser().Parse("Book\nMarkierung auf Seite 286: \"\"So why?’’ I ask. \"They did.’’\"\nHinzugefügt am 15.08.2023 | 18:00")
	require.NoError(t, err)

	content := note.ContentText()
	assert.Equal(t, `"So why?" I ask. "They did."`, content)

	// A second quote strip eats the passage's own outer quotes.
	assert.Equal(t, `So why?" I ask. "They did.`, CleanString(content, true))
	assert.Equal(t, content, CleanString(content, false))
}

func TestNormalizeInlineSpace(t *testing.T) {
	assert.Equal(t, "a b  c\nd\r\ne", normalizeInlineSpace("a\tb  c\nd\r\ne"))
}
