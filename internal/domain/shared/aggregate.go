package shared

// BaseAggregateRoot is embedded by aggregates that are written with an
// optimistic version check. Version starts at 1 and the repository bumps it
// on every guarded write.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// NewBaseAggregateRoot creates a new, not yet persisted aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// NextVersion is the version a guarded write will store
func (a *BaseAggregateRoot) NextVersion() int {
	return a.Version + 1
}
