package amqp

import (
	"encoding/json"
	"time"
)

// RecordCreatedMessage is the lightweight notification published whenever a
// ledger-worthy record is written. It carries only the record kind and id;
// the worker fetches the full row from the database.
type RecordCreatedMessage struct {
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// Record kinds the ledger worker understands.
const (
	KindIncome   = "income"
	KindPurchase = "purchase"
	KindOwner    = "owner"
	KindCutoff   = "cutoff"
)

func NewRecordCreatedMessage(kind string, id int64) *RecordCreatedMessage {
	return &RecordCreatedMessage{
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *RecordCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordCreatedMessageFromJSON(data []byte) (*RecordCreatedMessage, error) {
	var msg RecordCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
