package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionRecord is the persisted audit trail entry for one settled draft
// submission. Written by the outcome worker, never by the request path.
type SubmissionRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID    string             `bson:"session_id" json:"session_id"`
	DraftID      string             `bson:"draft_id" json:"draft_id"`
	EventType    string             `bson:"event_type" json:"event_type"`
	OrderType    OrderType          `bson:"order_type" json:"order_type"`
	TableID      string             `bson:"table_id,omitempty" json:"table_id,omitempty"`
	OrderID      string             `bson:"order_id,omitempty" json:"order_id,omitempty"`
	Total        float64            `bson:"total" json:"total"`
	ErrorMessage string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
}
