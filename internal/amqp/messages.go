package amqp

import (
	"encoding/json"
	"time"
)

// Actions carried by a ledger-changed message.
const (
	ActionSaved   = "saved"
	ActionDeleted = "deleted"
)

// LedgerChangedMessage tells the projection worker that a payment changed.
// It carries only the id and action; consumers re-read the ledger before
// recomputing.
type LedgerChangedMessage struct {
	PaymentID int64     `json:"payment_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerChangedMessage creates a change notification for a payment.
func NewLedgerChangedMessage(paymentID int64, action string) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		PaymentID: paymentID,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangedMessageFromJSON creates a message from JSON bytes.
func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
