package delivery

import "github.com/pkg/errors"

// Status is a delivery lifecycle state.
type Status string

const (
	StatusAssigned       Status = "ASSIGNED"
	StatusPicked         Status = "PICKED"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

// transitions is the allowed-successor set per state. DELIVERED and
// CANCELLED are absorbing; every other state can always be cancelled.
var transitions = map[Status][]Status{
	StatusAssigned:       {StatusPicked, StatusCancelled},
	StatusPicked:         {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether a delivery currently in from may move to
// to. A no-op transition (to == from) is never allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a descriptive error when the transition is
// not allowed. Checked before any status-update call reaches the backend.
func ValidateTransition(from, to Status) error {
	if !from.Valid() {
		return errors.Errorf("unknown delivery status %q", from)
	}
	if !to.Valid() {
		return errors.Errorf("unknown delivery status %q", to)
	}
	if from == to {
		return errors.Errorf("delivery is already %s", from)
	}
	if from.Terminal() {
		return errors.Errorf("delivery is %s and cannot change status", from)
	}
	if !CanTransition(from, to) {
		return errors.Errorf("cannot move delivery from %s to %s", from, to)
	}
	return nil
}
