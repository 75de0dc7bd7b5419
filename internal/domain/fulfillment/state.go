package fulfillment

import (
	"fmt"
	"strings"

	"github.com/tshirtshop/backend/internal/domain/shared"
)

// State represents the fulfillment state of a placed order
type State string

const (
	StatePending    State = "PENDING"
	StateProcessing State = "PROCESSING"
	StateShipped    State = "SHIPPED"
	StateDelivered  State = "DELIVERED"
	StateCancelled  State = "CANCELLED"
)

// AllStates returns every state in lifecycle order
func AllStates() []State {
	return []State{StatePending, StateProcessing, StateShipped, StateDelivered, StateCancelled}
}

// ParseState parses a state name, case-insensitively
func ParseState(s string) (State, error) {
	st := State(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Invalid state: %q", s))
	}
	return st, nil
}

// IsValid checks if the state is a valid value
func (s State) IsValid() bool {
	switch s {
	case StatePending, StateProcessing, StateShipped, StateDelivered, StateCancelled:
		return true
	}
	return false
}

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether no transition leaves this state
func (s State) IsTerminal() bool {
	return s == StateDelivered || s == StateCancelled
}

// CanTransitionTo checks if the state can transition to the target state.
// A transition to the same state is never allowed.
func (s State) CanTransitionTo(target State) bool {
	switch s {
	case StatePending:
		return target == StateProcessing || target == StateCancelled
	case StateProcessing:
		return target == StateShipped || target == StateCancelled
	case StateShipped:
		return target == StateDelivered
	case StateDelivered, StateCancelled:
		return false
	}
	return false
}

// AllowedTransitions returns the states reachable from s in one step
func (s State) AllowedTransitions() []State {
	allowed := make([]State, 0, 2)
	for _, target := range AllStates() {
		if s.CanTransitionTo(target) {
			allowed = append(allowed, target)
		}
	}
	return allowed
}
