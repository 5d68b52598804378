package amqp

import (
	"encoding/json"
	"time"
)

// Ledger event actions.
const (
	ActionCreated      = "created"
	ActionDeleted      = "deleted"
	ActionImported     = "imported"
	ActionMaterialized = "materialized"
)

// LedgerEventMessage is a lightweight notification that one ledger entry
// changed. It carries only the entry ID and the action; consumers fetch the
// entry from storage themselves.
type LedgerEventMessage struct {
	EntryID   string    `json:"entry_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates an event for the given entry and action.
func NewLedgerEventMessage(entryID, action string) *LedgerEventMessage {
	return &LedgerEventMessage{
		EntryID:   entryID,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON decodes a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
