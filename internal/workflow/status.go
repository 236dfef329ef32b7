// Package workflow contains the purchase-order status engine: the fixed
// lifecycle graph, per-actor permission checks and the rules that reduce
// line-item statuses to a single order-level status.
//
// Every function here is pure and synchronous. Persistence, atomicity of
// the read-check-write cycle and notification dispatch are the caller's
// responsibility (see internal/services).
package workflow

import "fmt"

// Status is the lifecycle state of an order or a single line item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInReview   Status = "in_review"
	StatusInProgress Status = "in_progress"
	StatusCanceled   Status = "canceled"
	StatusDelivered  Status = "delivered"
)

// AllStatuses lists every valid status in presentation order.
var AllStatuses = []Status{
	StatusPending,
	StatusInReview,
	StatusInProgress,
	StatusCanceled,
	StatusDelivered,
}

// ParseStatus converts raw input (DB column, request body) into a Status.
// Anything outside the five-member set is rejected with ErrInvalidState.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate reports whether the value belongs to the closed enumeration.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusInReview, StatusInProgress, StatusCanceled, StatusDelivered:
		return nil
	}
	return fmt.Errorf("%w: %q is not a known status", ErrInvalidState, string(s))
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCanceled || s == StatusDelivered
}

func (s Status) String() string {
	return string(s)
}

// transitions is the static lifecycle graph. canceled and delivered are
// terminal for everyone, primary admins included.
var transitions = map[Status]map[Status]bool{
	StatusPending:    {StatusInReview: true, StatusCanceled: true},
	StatusInReview:   {StatusInProgress: true, StatusPending: true, StatusCanceled: true},
	StatusInProgress: {StatusDelivered: true, StatusCanceled: true},
	StatusCanceled:   {},
	StatusDelivered:  {},
}

// GraphAllows reports whether from->to is an edge of the lifecycle graph,
// ignoring actor permissions.
func GraphAllows(from, to Status) bool {
	next := transitions[from]
	return next != nil && next[to]
}

// NextStatuses returns the direct successors of from in presentation
// order. Empty for terminal and unknown statuses.
func NextStatuses(from Status) []Status {
	out := make([]Status, 0, len(transitions[from]))
	for _, s := range AllStatuses {
		if transitions[from][s] {
			out = append(out, s)
		}
	}
	return out
}
