// Package events publishes ledger changes to interested consumers.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types, also used as AMQP routing keys.
const (
	GroupAdded       = "group.added"
	UserAdded        = "user.added"
	UserRemoved      = "user.removed"
	TransactionAdded = "transaction.added"
)

// Event describes one committed ledger mutation.
type Event struct {
	Type                string    `json:"type"`
	Group               string    `json:"group"`
	User                string    `json:"user,omitempty"`
	TransactionID       string    `json:"transaction_id,omitempty"`
	Amount              float64   `json:"amount,omitempty"`
	RemovedTransactions int       `json:"removed_transactions,omitempty"`
	OccurredAt          time.Time `json:"occurred_at"`
}

// ToJSON encodes the event as the message body.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events. Publishing happens after the mutation is
// committed, so a failure never rolls the ledger back.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
