package shared

import "time"

// BaseEntity carries identity and timestamps.
// ID is zero until the entity has been persisted; ids come from the database sequence.
type BaseEntity struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a new, not yet persisted base entity
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{CreatedAt: now, UpdatedAt: now}
}

// IsNew reports whether the entity has not been persisted yet
func (e *BaseEntity) IsNew() bool {
	return e.ID == 0
}

// Touch sets the modification timestamp to now
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}
