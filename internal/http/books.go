package http

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/tolino-notes/internal/database/notes"
	"github.com/mrlokans/tolino-notes/internal/entities"
	"github.com/mrlokans/tolino-notes/internal/exporters"
)

const bookTemplateName = "book"

var bookTemplate = template.Must(template.New(bookTemplateName).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type bookPage struct {
	Title string
	Body  template.HTML
}

type BooksController struct {
	store BookStore
	html  *exporters.HTMLRenderer
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{
		store: store,
		html:  exporters.NewHTMLRenderer(),
	}
}

// ListBooks returns every stored book with its note count.
func (c *BooksController) ListBooks(ctx *gin.Context) {
	books, err := c.store.ListBooks()
	if err != nil {
		respondInternalError(ctx, err, "list books")
		return
	}
	if books == nil {
		books = []entities.BookSummary{}
	}
	ctx.JSON(http.StatusOK, gin.H{"books": books})
}

// bookNotes resolves the slug parameter and loads the book's notes. It
// responds itself and returns false on failure.
func (c *BooksController) bookNotes(ctx *gin.Context, slug string) (string, []entities.TolinoNote, bool) {
	title, err := c.store.FindBookBySlug(slug)
	if err == nil {
		var bookNotes []entities.TolinoNote
		bookNotes, err = c.store.NotesForBook(title)
		if err == nil {
			return title, bookNotes, true
		}
	}

	if errors.Is(err, notes.ErrBookNotFound) {
		respondNotFound(ctx, "book")
	} else {
		respondInternalError(ctx, err, "load book")
	}
	return "", nil, false
}

// Notes returns the JSON rendering of a book's notes.
func (c *BooksController) Notes(ctx *gin.Context) {
	_, bookNotes, ok := c.bookNotes(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	data, err := exporters.RenderJSON(bookNotes)
	if err != nil {
		respondInternalError(ctx, err, "render json")
		return
	}
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// Show renders a book as HTML, or as Markdown when the slug ends in ".md".
func (c *BooksController) Show(ctx *gin.Context) {
	slug, markdown := strings.CutSuffix(ctx.Param("slug"), ".md")

	title, bookNotes, ok := c.bookNotes(ctx, slug)
	if !ok {
		return
	}

	if markdown {
		text, ok := exporters.RenderMarkdown(bookNotes)
		if !ok {
			respondNotFound(ctx, "readable note")
			return
		}
		ctx.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(text))
		return
	}

	body, ok, err := c.html.Render(bookNotes)
	if err != nil {
		respondInternalError(ctx, err, "render html")
		return
	}
	if !ok {
		respondNotFound(ctx, "readable note")
		return
	}

	ctx.HTML(http.StatusOK, bookTemplateName, bookPage{
		Title: title,
		Body:  template.HTML(body),
	})
}
