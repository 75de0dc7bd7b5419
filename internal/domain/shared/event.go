package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact about an aggregate, published after the write that produced it
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() int64
	AggregateType() string
}

// BaseDomainEvent is embedded by every concrete event
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggID     int64     `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
}

// NewBaseDomainEvent stamps a new event with a random id and the current time
func NewBaseDomainEvent(eventType, aggType string, aggID int64) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		AggID:     aggID,
		AggType:   aggType,
	}
}

func (e *BaseDomainEvent) EventID() uuid.UUID { return e.ID }
func (e *BaseDomainEvent) EventType() string { return e.Type }
func (e *BaseDomainEvent) OccurredAt() time.Time { return e.Timestamp }
func (e *BaseDomainEvent) AggregateID() int64 { return e.AggID }
func (e *BaseDomainEvent) AggregateType() string { return e.AggType }
