package identity

import "github.com/tshirtshop/backend/internal/domain/shared"

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserSignedUp = "user.signed_up"
	EventTypeUserLoggedIn = "user.logged_in"
)

// UserSignedUpEvent is published when an account is registered
type UserSignedUpEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserSignedUpEvent creates a new UserSignedUpEvent
func NewUserSignedUpEvent(user *User) *UserSignedUpEvent {
	return &UserSignedUpEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserSignedUp, AggregateTypeUser, user.ID),
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserLoggedInEvent is published after a successful login
type UserLoggedInEvent struct {
	shared.BaseDomainEvent
	Role Role `json:"role"`
}

// NewUserLoggedInEvent creates a new UserLoggedInEvent
func NewUserLoggedInEvent(user *User) *UserLoggedInEvent {
	return &UserLoggedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLoggedIn, AggregateTypeUser, user.ID),
		Role:            user.Role,
	}
}
