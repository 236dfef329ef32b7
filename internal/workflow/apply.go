package workflow

import "time"

// Extra is the optional payload merged onto items during a transition.
// Fields are applied when present; the engine does not interpret them.
type Extra struct {
	DeliveryEstimate *time.Time
	CancelReason     *string
}

func (e Extra) mergeInto(item *Item) {
	if e.DeliveryEstimate != nil {
		est := *e.DeliveryEstimate
		item.DeliveryEstimate = &est
	}
	if e.CancelReason != nil {
		reason := *e.CancelReason
		item.CancelReason = &reason
	}
}

func stamp(item *Item, actor Actor, now time.Time) {
	item.UpdatedBy = actor.UserID
	item.UpdatedAt = now
}

// ApplyItemStatus transitions exactly one line item to newStatus.
// The order aggregate is left untouched on any failure: ErrNotFound when
// the item is not part of the order, ErrForbidden when the transition is
// not legal for actor, ErrInvalidState when a status value is outside
// the enumeration.
func ApplyItemStatus(order *Order, itemID uint64, newStatus Status, extra Extra, actor Actor) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	item := order.Item(itemID)
	if item == nil {
		return ErrNotFound
	}
	if err := item.Status.Validate(); err != nil {
		return err
	}
	if !CanTransition(actor, item.Status, newStatus) {
		return ErrForbidden
	}

	item.Status = newStatus
	extra.mergeInto(item)
	stamp(item, actor, time.Now().UTC())
	return nil
}

// ApplyOrderStatus force-sets every line item to newStatus in one
// administrative action. Legality is checked once, against the order's
// derived status only — deliberately not against each item, so the bulk
// override can push an individual item through an edge the graph does
// not have for that item's own prior status. Compatibility behavior;
// see DESIGN.md before "fixing" it.
//
// All-or-nothing: on ErrForbidden or ErrInvalidState no item is touched.
func ApplyOrderStatus(order *Order, newStatus Status, extra Extra, actor Actor) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if !CanTransition(actor, DeriveOrderStatus(*order), newStatus) {
		return ErrForbidden
	}

	now := time.Now().UTC()
	for i := range order.Items {
		order.Items[i].Status = newStatus
		extra.mergeInto(&order.Items[i])
		stamp(&order.Items[i], actor, now)
	}
	order.Status = newStatus
	return nil
}

// CancelOrder unconditionally cancels every line item and the order
// itself, attaching reason to each item. It bypasses both the lifecycle
// graph and the allow-list: cancellation must remain possible even from
// states the graph would otherwise seal. Restricting this escape hatch
// to primary admins is the caller's responsibility, kept out of the
// engine on purpose (a distinct operation, not a variant of
// ApplyOrderStatus).
func CancelOrder(order *Order, reason string, actor Actor) {
	now := time.Now().UTC()
	for i := range order.Items {
		order.Items[i].Status = StatusCanceled
		r := reason
		order.Items[i].CancelReason = &r
		stamp(&order.Items[i], actor, now)
	}
	order.Status = StatusCanceled
}
