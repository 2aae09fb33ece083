package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/tolino-notes/internal/database"
	"github.com/mrlokans/tolino-notes/internal/entities"
)

// NoteStats reports what the database currently holds.
type NoteStats interface {
	CountNotes() (int64, error)
	ListImportSessions(limit int) ([]entities.ImportSession, error)
}

type LastImport struct {
	BatchID       string                `json:"batch_id"`
	SourceFile    string                `json:"source_file"`
	Status        entities.ImportStatus `json:"status"`
	NotesImported int                   `json:"notes_imported"`
	StartedAt     time.Time             `json:"started_at"`
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Time       string            `json:"time"`
	Version    string            `json:"version,omitempty"`
	Checks     map[string]string `json:"checks"`
	NoteCount  *int64            `json:"note_count,omitempty"`
	LastImport *LastImport       `json:"last_import,omitempty"`
}

type HealthController struct {
	db      *database.Database
	stats   NoteStats
	version string
}

func NewHealthController(db *database.Database, stats NoteStats, version string) *HealthController {
	return &HealthController{
		db:      db,
		stats:   stats,
		version: version,
	}
}

// Status pings the database and, when it answers, adds the stored note count
// and the most recent import.
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  make(map[string]string),
	}

	if h.db == nil {
		health.Checks["database"] = "not configured"
	} else if err := h.db.Ping(); err != nil {
		health.Checks["database"] = "error: " + err.Error()
		health.Status = "unhealthy"
	} else {
		health.Checks["database"] = "ok"
		h.addNoteStats(&health)
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) addNoteStats(health *HealthResponse) {
	if h.stats == nil {
		return
	}

	count, err := h.stats.CountNotes()
	if err != nil {
		health.Checks["notes"] = "error: " + err.Error()
		health.Status = "unhealthy"
		return
	}
	health.NoteCount = &count
	health.Checks["notes"] = "ok"

	sessions, err := h.stats.ListImportSessions(1)
	if err != nil {
		health.Checks["last_import"] = "error: " + err.Error()
		health.Status = "unhealthy"
		return
	}
	if len(sessions) == 0 {
		health.Checks["last_import"] = "none"
		return
	}

	last := sessions[0]
	health.Checks["last_import"] = string(last.Status)
	health.LastImport = &LastImport{
		BatchID:       last.BatchID,
		SourceFile:    last.SourceFile,
		Status:        last.Status,
		NotesImported: last.NotesImported,
		StartedAt:     last.StartedAt,
	}
}
