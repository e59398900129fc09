package events

import (
	"encoding/json"
	"time"

	"financeflow/internal/core"
)

// Ledger mutation actions carried on the wire.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerEvent announces a ledger mutation. It carries the full transaction
// snapshot so consumers never need to read the ledger back.
type LedgerEvent struct {
	Action      string           `json:"action"`
	Transaction core.Transaction `json:"transaction"`
	Timestamp   time.Time        `json:"timestamp"`
}

// NewLedgerEvent builds an event for the given action and snapshot.
func NewLedgerEvent(action string, tx core.Transaction) *LedgerEvent {
	return &LedgerEvent{
		Action:      action,
		Transaction: tx,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON creates an event from JSON bytes
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var event LedgerEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
