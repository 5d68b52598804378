package amqp

import (
	"testing"
	"time"
)

func TestLedgerEventMessage_RoundTrip(t *testing.T) {
	msg := NewLedgerEventMessage("sched-r1-2024-03", ActionMaterialized)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	back, err := LedgerEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("LedgerEventMessageFromJSON() error = %v", err)
	}
	if back.EntryID != msg.EntryID {
		t.Errorf("EntryID = %s, want %s", back.EntryID, msg.EntryID)
	}
	if back.Action != ActionMaterialized {
		t.Errorf("Action = %s, want %s", back.Action, ActionMaterialized)
	}
	if back.Timestamp.IsZero() {
		t.Error("Timestamp lost in round trip")
	}
}

func TestLedgerEventMessageFromJSON_Invalid(t *testing.T) {
	if _, err := LedgerEventMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid payload")
	}
}

func TestNewLedgerEventMessage_StampsTime(t *testing.T) {
	before := time.Now().Add(-time.Second)
	msg := NewLedgerEventMessage("e1", ActionCreated)
	if msg.Timestamp.Before(before) {
		t.Errorf("Timestamp = %v, want recent", msg.Timestamp)
	}
}
