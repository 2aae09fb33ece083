package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(bookTemplate)

	health := NewHealthController(cfg.Database, cfg.Stats, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	if cfg.Converter != nil {
		parseController := NewParseController(cfg.Converter, cfg.NoteStore)
		router.POST("/api/parse", parseController.Parse)
		if cfg.NoteStore != nil {
			router.POST("/api/import", parseController.Import)
		}
	}

	if cfg.Books != nil {
		booksController := NewBooksController(cfg.Books)
		router.GET("/api/books", booksController.ListBooks)
		router.GET("/api/books/:slug/notes", booksController.Notes)
		router.GET("/books/:slug", booksController.Show)
	}

	if cfg.Imports != nil {
		importsController := NewImportsController(cfg.Imports)
		router.GET("/api/imports", importsController.List)
	}

	return router
}
