package amqp

import (
	"encoding/json"
	"time"
)

// Backup operations carried on the wire.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// BackupMessage asks the backup worker to mirror one record. It carries
// only the collection name, record id and operation; the worker re-reads
// the record from the store, so a stale message mirrors the latest state.
type BackupMessage struct {
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Op         string    `json:"op"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewBackupMessage(collection, id, op string) *BackupMessage {
	return &BackupMessage{
		Collection: collection,
		ID:         id,
		Op:         op,
		Timestamp:  time.Now(),
	}
}

func (m *BackupMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BackupMessageFromJSON(data []byte) (*BackupMessage, error) {
	var msg BackupMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
