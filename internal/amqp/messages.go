package amqp

import (
	"encoding/json"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MovementIngestMessage carries one movement draft published by an external
// producer (statement importer, bank webhook bridge). The external id makes
// ingestion idempotent: redelivery of the same message is a no-op.
type MovementIngestMessage struct {
	OwnerID     string              `json:"ownerID"`
	AccountID   string              `json:"accountID"`
	ExternalID  string              `json:"externalID"`
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount"`
	Date        time.Time           `json:"date"`
	Kind        domain.MovementKind `json:"kind"`
	Notes       string              `json:"notes,omitempty"`

	// AutoCategorize asks the rule matcher to classify the movement on ingest.
	AutoCategorize bool `json:"autoCategorize"`

	Timestamp time.Time `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes
func (m *MovementIngestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MovementIngestMessageFromJSON creates a message from JSON bytes
func MovementIngestMessageFromJSON(data []byte) (*MovementIngestMessage, error) {
	var msg MovementIngestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
