package workflow_test

import (
	"testing"

	"procurement-system/internal/workflow"

	"github.com/stretchr/testify/assert"
)

func orderWith(statuses ...workflow.Status) workflow.Order {
	items := make([]workflow.Item, len(statuses))
	for i, s := range statuses {
		items[i] = workflow.Item{ID: uint64(i + 1), Name: "item", Quantity: 1, Status: s}
	}
	return workflow.Order{ID: 42, Status: workflow.StatusPending, Items: items}
}

func TestDeriveOrderStatus(t *testing.T) {
	t.Run("no items falls back to the stored order status", func(t *testing.T) {
		order := workflow.Order{ID: 1, Status: workflow.StatusInReview}
		assert.Equal(t, workflow.StatusInReview, workflow.DeriveOrderStatus(order))
	})

	t.Run("no items and no stored status defaults to pending", func(t *testing.T) {
		order := workflow.Order{ID: 1}
		assert.Equal(t, workflow.StatusPending, workflow.DeriveOrderStatus(order))
	})

	t.Run("uniform items return their shared status", func(t *testing.T) {
		for _, s := range workflow.AllStatuses {
			assert.Equal(t, s, workflow.DeriveOrderStatus(orderWith(s, s, s)), "uniform %s", s)
		}
	})

	t.Run("all canceled derives canceled", func(t *testing.T) {
		order := orderWith(workflow.StatusCanceled, workflow.StatusCanceled)
		assert.Equal(t, workflow.StatusCanceled, workflow.DeriveOrderStatus(order))
	})

	t.Run("all delivered derives delivered", func(t *testing.T) {
		order := orderWith(workflow.StatusDelivered, workflow.StatusDelivered)
		assert.Equal(t, workflow.StatusDelivered, workflow.DeriveOrderStatus(order))
	})

	t.Run("mixed cases", func(t *testing.T) {
		testCases := []struct {
			name     string
			statuses []workflow.Status
			want     workflow.Status
		}{
			{"delivered+pending still being fulfilled", []workflow.Status{workflow.StatusDelivered, workflow.StatusPending}, workflow.StatusInProgress},
			{"delivered+canceled", []workflow.Status{workflow.StatusDelivered, workflow.StatusCanceled}, workflow.StatusInProgress},
			{"in_progress+pending", []workflow.Status{workflow.StatusInProgress, workflow.StatusPending}, workflow.StatusInProgress},
			{"in_review+pending", []workflow.Status{workflow.StatusInReview, workflow.StatusPending}, workflow.StatusInReview},
			{"in_review+canceled", []workflow.Status{workflow.StatusInReview, workflow.StatusCanceled}, workflow.StatusInReview},
			{"pending+canceled", []workflow.Status{workflow.StatusPending, workflow.StatusCanceled}, workflow.StatusPending},
			{"delivered+in_review+canceled", []workflow.Status{workflow.StatusDelivered, workflow.StatusInReview, workflow.StatusCanceled}, workflow.StatusInProgress},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, workflow.DeriveOrderStatus(orderWith(tc.statuses...)))
			})
		}
	})

	t.Run("result does not depend on item order", func(t *testing.T) {
		a := orderWith(workflow.StatusDelivered, workflow.StatusPending, workflow.StatusCanceled)
		b := orderWith(workflow.StatusCanceled, workflow.StatusDelivered, workflow.StatusPending)
		c := orderWith(workflow.StatusPending, workflow.StatusCanceled, workflow.StatusDelivered)

		assert.Equal(t, workflow.DeriveOrderStatus(a), workflow.DeriveOrderStatus(b))
		assert.Equal(t, workflow.DeriveOrderStatus(b), workflow.DeriveOrderStatus(c))
	})

	t.Run("single item orders derive that item's status", func(t *testing.T) {
		for _, s := range workflow.AllStatuses {
			assert.Equal(t, s, workflow.DeriveOrderStatus(orderWith(s)))
		}
	})
}
