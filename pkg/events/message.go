package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Header keys stamped on every published event.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

const (
	EventTypeBookingCreated = "booking.created"

	sourceService = "carcloud"
)

// Message is a single event bound for the booking topic. Key is the
// partition key; events for the same car land on the same partition so
// consumers observe per-car ordering.
type Message struct {
	Key     string
	Value   []byte
	Headers map[string]string
}

// NewMessage builds a message with a fresh event id and the standard
// headers. The payload is JSON-encoded.
func NewMessage(eventType, key string, payload any) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			HeaderEventID:   uuid.NewString(),
			HeaderEventType: eventType,
			HeaderSource:    sourceService,
			HeaderTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
