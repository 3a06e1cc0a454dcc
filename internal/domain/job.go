package domain

import (
	"time"

	"github.com/google/uuid"
)

// Export strategies.
const (
	StrategyStructured = "structured"
	StrategyRaster     = "raster"
)

// Export job statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ExportJob tracks one PDF export from request to completed file. Export
// never touches the document itself; a failed job leaves nothing behind but
// its status.
type ExportJob struct {
	ID         uuid.UUID              `json:"id"`
	Strategy   string                 `json:"strategy"`
	Filename   string                 `json:"filename"`
	Status     string                 `json:"status"`
	Error      string                 `json:"error,omitempty"`
	OutputPath string                 `json:"output_path,omitempty"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}
