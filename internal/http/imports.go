package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/tolino-notes/internal/entities"
)

const (
	defaultImportsLimit = 20
	maxImportsLimit     = 100
)

type ImportsController struct {
	history ImportHistory
}

func NewImportsController(history ImportHistory) *ImportsController {
	return &ImportsController{history: history}
}

// List returns recent import sessions, newest first.
func (c *ImportsController) List(ctx *gin.Context) {
	limit := defaultImportsLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondBadRequest(ctx, "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxImportsLimit)
	}

	sessions, err := c.history.ListImportSessions(limit)
	if err != nil {
		respondInternalError(ctx, err, "list imports")
		return
	}
	if sessions == nil {
		sessions = []entities.ImportSession{}
	}
	ctx.JSON(http.StatusOK, gin.H{"imports": sessions})
}
