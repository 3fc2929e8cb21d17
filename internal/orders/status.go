package orders

import "fmt"

// Order statuses. The progression is strictly linear:
// awaiting_payment -> pending -> confirmed -> fulfilled.
const (
	StatusAwaitingPayment = "awaiting_payment"
	StatusPending         = "pending"
	StatusConfirmed       = "confirmed"
	StatusFulfilled       = "fulfilled"
)

// Actors allowed to move an order forward.
const (
	ActorBuyer  = "buyer"
	ActorVendor = "vendor"
	ActorAdmin  = "admin"
)

// IsValidStatus reports whether s is one of the four defined order statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusAwaitingPayment, StatusPending, StatusConfirmed, StatusFulfilled:
		return true
	}
	return false
}

// NextStatus returns the single forward step from the given status,
// or "" when the order is already fulfilled.
func NextStatus(from string) string {
	switch from {
	case StatusAwaitingPayment:
		return StatusPending
	case StatusPending:
		return StatusConfirmed
	case StatusConfirmed:
		return StatusFulfilled
	}
	return ""
}

// CanTransition enforces the transition authority table:
// the buyer may only confirm payment (awaiting_payment -> pending);
// the vendor may only advance pending -> confirmed -> fulfilled;
// the admin holds the vendor's authority everywhere.
// Every transition must be exactly one forward step.
func CanTransition(actor, from, to string) error {
	if !IsValidStatus(from) {
		return fmt.Errorf("unknown order status %q", from)
	}
	if !IsValidStatus(to) {
		return fmt.Errorf("unknown order status %q", to)
	}
	if NextStatus(from) != to {
		return fmt.Errorf("cannot move order from %s to %s", from, to)
	}

	switch actor {
	case ActorBuyer:
		if from != StatusAwaitingPayment {
			return fmt.Errorf("buyer cannot move order from %s", from)
		}
	case ActorVendor, ActorAdmin:
		if from == StatusAwaitingPayment {
			return fmt.Errorf("only the buyer can confirm payment")
		}
	default:
		return fmt.Errorf("unknown actor %q", actor)
	}
	return nil
}
