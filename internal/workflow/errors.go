package workflow

import "errors"

var (
	// ErrNotFound means the referenced line item does not exist in the
	// given order aggregate.
	ErrNotFound = errors.New("line item not found in order")

	// ErrForbidden means the proposed transition fails the legality
	// check: the target status is outside the actor's allow-list or the
	// lifecycle graph has no such edge.
	ErrForbidden = errors.New("status transition is not allowed")

	// ErrInvalidState means a status value outside the enumeration
	// reached the engine. Inputs are expected to be parsed at the
	// boundary, so this is a defensive rejection, never a coercion.
	ErrInvalidState = errors.New("invalid status value")
)
