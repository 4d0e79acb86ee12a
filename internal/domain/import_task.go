package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ImportTaskStatus string

const (
	ImportQueued     ImportTaskStatus = "queued"
	ImportProcessing ImportTaskStatus = "processing"
	ImportCompleted  ImportTaskStatus = "completed"
	ImportFailed     ImportTaskStatus = "failed"
)

// ImportTask tracks one asynchronous daily-menu import from Google Sheets.
type ImportTask struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Status        ImportTaskStatus    `bson:"status" json:"status"`
	SpreadsheetID string              `bson:"spreadsheet_id" json:"spreadsheet_id"`
	MenuDate      string              `bson:"menu_date" json:"menu_date"`
	ConfigID      *primitive.ObjectID `bson:"config_id,omitempty" json:"config_id,omitempty"`
	ErrorMessage  string              `bson:"error_message,omitempty" json:"error_message,omitempty"`
	RetryCount    int                 `bson:"retry_count" json:"retry_count"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}
