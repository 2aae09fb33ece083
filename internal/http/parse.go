package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/mrlokans/tolino-notes/internal/entities"
	"github.com/mrlokans/tolino-notes/internal/exporters"
	"github.com/mrlokans/tolino-notes/internal/services"
	"github.com/mrlokans/tolino-notes/internal/tolino"
	"github.com/mrlokans/tolino-notes/internal/utils"
)

const (
	maxNotesFileSize = 10 * 1024 * 1024 // 10 MB
	notesFileField   = "notes_file"
)

var (
	errFileTooLarge = fmt.Errorf("file too large (max %d MB)", maxNotesFileSize/(1024*1024))
	errMissingFile  = errors.New("notes file not provided")
	errEmptyUpload  = errors.New("notes file is empty")
)

type ParseController struct {
	converter *services.ConvertService
	store     exporters.NoteStore
}

func NewParseController(converter *services.ConvertService, store exporters.NoteStore) *ParseController {
	return &ParseController{
		converter: converter,
		store:     store,
	}
}

type BookPayload struct {
	Title string                `json:"title"`
	Slug  string                `json:"slug"`
	Notes []entities.TolinoNote `json:"notes"`
}

type BlockFailure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type ParseResponse struct {
	Blocks   int            `json:"blocks"`
	Notes    int            `json:"notes"`
	Skipped  int            `json:"skipped"`
	Failures []BlockFailure `json:"failures,omitempty"`
	Books    []BookPayload  `json:"books"`
}

type ImportResponse struct {
	ParseResponse
	Session *entities.ImportSession `json:"session"`
}

func newParseResponse(parsed *tolino.ExportResult) ParseResponse {
	return ParseResponse{
		Blocks:  parsed.Blocks,
		Notes:   len(parsed.Notes),
		Skipped: parsed.Skipped,
		Failures: lo.Map(parsed.Failures, func(failure *tolino.BlockError, _ int) BlockFailure {
			return BlockFailure{Index: failure.Index, Error: failure.Err.Error()}
		}),
		Books: lo.Map(parsed.Books, func(book entities.BookNotes, _ int) BookPayload {
			return BookPayload{
				Title: book.Title,
				Slug:  utils.BookSlug(book.Title),
				Notes: exporters.SortNotes(book.Notes),
			}
		}),
	}
}

// readExport returns the uploaded export, taken from the notes_file form
// field for multipart requests and from the raw body otherwise.
func readExport(ctx *gin.Context) ([]byte, string, error) {
	var (
		src  io.Reader = ctx.Request.Body
		name           = "upload.txt"
	)

	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		file, header, err := ctx.Request.FormFile(notesFileField)
		if err != nil {
			return nil, "", errMissingFile
		}
		defer file.Close()

		if header.Size > maxNotesFileSize {
			return nil, "", errFileTooLarge
		}
		src = file
		name = header.Filename
	}

	data, err := io.ReadAll(io.LimitReader(src, maxNotesFileSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > maxNotesFileSize {
		return nil, "", errFileTooLarge
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, "", errEmptyUpload
	}
	return data, name, nil
}

func respondUploadError(ctx *gin.Context, err error) {
	if errors.Is(err, errFileTooLarge) {
		respondError(ctx, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	respondBadRequest(ctx, err.Error())
}

// Parse parses an uploaded export and returns the notes grouped by book
// without storing anything.
func (c *ParseController) Parse(ctx *gin.Context) {
	data, _, err := readExport(ctx)
	if err != nil {
		respondUploadError(ctx, err)
		return
	}

	parsed, err := c.converter.Parse(bytes.NewReader(data))
	if err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, newParseResponse(parsed))
}

// Import parses an uploaded export and stores it as a new import session.
func (c *ParseController) Import(ctx *gin.Context) {
	data, name, err := readExport(ctx)
	if err != nil {
		respondUploadError(ctx, err)
		return
	}

	parsed, err := c.converter.Parse(bytes.NewReader(data))
	if err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	exporter := exporters.NewDatabaseExporter(c.store, name, services.StatsFor(parsed))
	if _, err := c.converter.Export(parsed, exporter); err != nil {
		respondInternalError(ctx, err, "import notes")
		return
	}

	ctx.JSON(http.StatusOK, ImportResponse{
		ParseResponse: newParseResponse(parsed),
		Session:       exporter.Session,
	})
}
