package workflow

// Actor is the already-resolved permission record of the user attempting
// a transition. It is threaded explicitly into every check; the engine
// never looks permissions up on its own.
type Actor struct {
	UserID          uint64
	IsPrimaryAdmin  bool
	AllowedStatuses map[Status]bool
}

// NewActor builds an Actor from a resolved permission record.
func NewActor(userID uint64, isPrimaryAdmin bool, allowed ...Status) Actor {
	set := make(map[Status]bool, len(allowed))
	for _, s := range allowed {
		set[s] = true
	}
	return Actor{UserID: userID, IsPrimaryAdmin: isPrimaryAdmin, AllowedStatuses: set}
}

// CanSetStatus is the coarse, graph-agnostic check used by read-only
// "what can this user ever touch" views. A primary admin may set any
// status; everyone else is limited to their allow-list. An empty
// allow-list denies everything.
func CanSetStatus(actor Actor, status Status) bool {
	if status.Validate() != nil {
		return false
	}
	if actor.IsPrimaryAdmin {
		return true
	}
	return actor.AllowedStatuses[status]
}

// CanTransition reports whether actor may move an order or line item
// from one status to another. A primary admin bypasses the allow-list
// but never the lifecycle graph: terminal states stay terminal.
func CanTransition(actor Actor, from, to Status) bool {
	if from.Validate() != nil || to.Validate() != nil {
		return false
	}
	if !GraphAllows(from, to) {
		return false
	}
	return actor.IsPrimaryAdmin || actor.AllowedStatuses[to]
}

// AllowedNextStatuses returns the successors of from that actor may
// actually set. Always empty when from is terminal, whoever asks.
func AllowedNextStatuses(actor Actor, from Status) []Status {
	var out []Status
	for _, s := range NextStatuses(from) {
		if actor.IsPrimaryAdmin || actor.AllowedStatuses[s] {
			out = append(out, s)
		}
	}
	return out
}
