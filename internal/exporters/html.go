package exporters

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/mrlokans/tolino-notes/internal/entities"
)

// HTMLRenderer turns the Markdown output of a book into HTML for previews.
// Raw HTML in highlights is escaped.
type HTMLRenderer struct {
	engine goldmark.Markdown
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Render returns false when the book has nothing but bookmarks.
func (r *HTMLRenderer) Render(notes []entities.TolinoNote) ([]byte, bool, error) {
	markdown, ok := RenderMarkdown(notes)
	if !ok {
		return nil, false, nil
	}

	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(markdown), &buf); err != nil {
		return nil, false, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), true, nil
}
