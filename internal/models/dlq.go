package models

import (
	"time"
)

// FailedMessage is a payload that could not be delivered to a sink.
type FailedMessage struct {
	Sink       string    `json:"sink"`
	BatchID    string    `json:"batch_id"`
	Payload    []byte    `json:"payload"`
	Timestamp  time.Time `json:"timestamp"`
	CauseError error     `json:"-"`

	// Error is a string representation of CauseError
	Error string `json:"error"`
}
