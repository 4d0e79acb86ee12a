package domain

import "time"

// MenuImportMessage asks the import worker to parse one spreadsheet into a
// daily menu configuration.
type MenuImportMessage struct {
	TaskID        string `json:"task_id"`
	SpreadsheetID string `json:"spreadsheet_id"`
	MenuDate      string `json:"menu_date"`
}

// OrderOutcomeEvent is emitted once per settled draft submission, success or
// failure, and consumed by the audit worker.
type OrderOutcomeEvent struct {
	EventType    string    `json:"event_type"`
	SessionID    string    `json:"session_id"`
	DraftID      string    `json:"draft_id"`
	OrderType    OrderType `json:"order_type"`
	TableID      string    `json:"table_id,omitempty"`
	OrderID      string    `json:"order_id,omitempty"`
	Total        float64   `json:"total"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

const (
	EventOrderSubmitted = "order.submitted"
	EventOrderFailed    = "order.failed"
)
