package workflow

import "time"

// Item is one requested product inside an Order, with its own lifecycle
// status. Items are created together with their order and are never
// deleted on their own.
type Item struct {
	ID       uint64
	Name     string
	Quantity int
	Spec     string
	Reason   string

	Status Status

	// DeliveryEstimate is meaningful only in in_progress, CancelReason
	// only in canceled. Both are carried opaquely: the engine merges
	// them when present and never validates their contents.
	DeliveryEstimate *time.Time
	CancelReason     *string

	UpdatedBy uint64
	UpdatedAt time.Time
}

// Order aggregates one or more line items. The stored Status field is
// authoritative only for the degenerate case of an order without items;
// otherwise the effective status is derived from the items.
type Order struct {
	ID     uint64
	Status Status
	Items  []Item
}

// Item returns a pointer to the line item with the given id, or nil.
func (o *Order) Item(itemID uint64) *Item {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// DeriveOrderStatus reduces the statuses of an order's line items to one
// order-level status. The result depends only on the multiset of item
// statuses, not on their order.
//
// Rules, in precedence order:
//   - no items: the stored order status (pending when unset/invalid)
//   - all items share one status: that status
//   - every item canceled: canceled; every item delivered: delivered
//   - otherwise, looking only at non-canceled items: any delivered or
//     in_progress item means the order is still being fulfilled
//     (in_progress); failing that, any in_review item wins; failing
//     that, pending.
func DeriveOrderStatus(order Order) Status {
	if len(order.Items) == 0 {
		if order.Status.Validate() != nil {
			return StatusPending
		}
		return order.Status
	}

	counts := make(map[Status]int, len(AllStatuses))
	for _, item := range order.Items {
		counts[item.Status]++
	}
	if len(counts) == 1 {
		for s := range counts {
			return s
		}
	}

	total := len(order.Items)
	if counts[StatusCanceled] == total {
		return StatusCanceled
	}
	if counts[StatusDelivered] == total {
		return StatusDelivered
	}

	// Mixed bag: canceled items no longer count toward the order's
	// progress.
	remaining := total - counts[StatusCanceled]
	switch {
	case remaining == 0:
		return StatusCanceled
	case counts[StatusDelivered] > 0 || counts[StatusInProgress] > 0:
		return StatusInProgress
	case counts[StatusInReview] > 0:
		return StatusInReview
	default:
		return StatusPending
	}
}
