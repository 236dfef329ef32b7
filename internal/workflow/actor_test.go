package workflow_test

import (
	"testing"

	"procurement-system/internal/workflow"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("primary admin bypasses the allow-list but not the graph", func(t *testing.T) {
		admin := workflow.NewActor(1, true) // empty allow-list on purpose

		assert.True(t, workflow.CanTransition(admin, workflow.StatusPending, workflow.StatusInReview))
		assert.False(t, workflow.CanTransition(admin, workflow.StatusPending, workflow.StatusDelivered))
	})

	t.Run("non-admin needs both the graph edge and the allow-list entry", func(t *testing.T) {
		reviewer := workflow.NewActor(2, false, workflow.StatusInReview)

		assert.True(t, workflow.CanTransition(reviewer, workflow.StatusPending, workflow.StatusInReview))
		// graph edge exists, but canceled is not in the allow-list
		assert.False(t, workflow.CanTransition(reviewer, workflow.StatusPending, workflow.StatusCanceled))
		// allow-list entry exists, but there is no in_progress -> in_review edge
		assert.False(t, workflow.CanTransition(reviewer, workflow.StatusInProgress, workflow.StatusInReview))
	})

	t.Run("non-admin with empty allow-list is denied every pair", func(t *testing.T) {
		nobody := workflow.NewActor(3, false)

		for _, from := range workflow.AllStatuses {
			for _, to := range workflow.AllStatuses {
				assert.False(t, workflow.CanTransition(nobody, from, to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("terminal states are terminal for everyone", func(t *testing.T) {
		admin := workflow.NewActor(1, true)

		for _, from := range []workflow.Status{workflow.StatusCanceled, workflow.StatusDelivered} {
			for _, to := range workflow.AllStatuses {
				assert.False(t, workflow.CanTransition(admin, from, to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("invalid statuses never pass", func(t *testing.T) {
		admin := workflow.NewActor(1, true)

		assert.False(t, workflow.CanTransition(admin, workflow.Status("bogus"), workflow.StatusInReview))
		assert.False(t, workflow.CanTransition(admin, workflow.StatusPending, workflow.Status("bogus")))
	})
}

func TestCanSetStatus(t *testing.T) {
	admin := workflow.NewActor(1, true)
	clerk := workflow.NewActor(2, false, workflow.StatusInReview, workflow.StatusCanceled)

	for _, s := range workflow.AllStatuses {
		assert.True(t, workflow.CanSetStatus(admin, s), "admin should be able to set %s", s)
	}

	assert.True(t, workflow.CanSetStatus(clerk, workflow.StatusInReview))
	assert.True(t, workflow.CanSetStatus(clerk, workflow.StatusCanceled))
	assert.False(t, workflow.CanSetStatus(clerk, workflow.StatusDelivered))
	assert.False(t, workflow.CanSetStatus(admin, workflow.Status("bogus")))
}

func TestAllowedNextStatuses(t *testing.T) {
	t.Run("terminal gives the empty set regardless of actor", func(t *testing.T) {
		admin := workflow.NewActor(1, true)
		clerk := workflow.NewActor(2, false, workflow.StatusInReview)

		assert.Empty(t, workflow.AllowedNextStatuses(admin, workflow.StatusCanceled))
		assert.Empty(t, workflow.AllowedNextStatuses(admin, workflow.StatusDelivered))
		assert.Empty(t, workflow.AllowedNextStatuses(clerk, workflow.StatusCanceled))
		assert.Empty(t, workflow.AllowedNextStatuses(clerk, workflow.StatusDelivered))
	})

	t.Run("non-admin sees the intersection of graph and allow-list", func(t *testing.T) {
		clerk := workflow.NewActor(2, false, workflow.StatusInReview, workflow.StatusDelivered)

		assert.Equal(t,
			[]workflow.Status{workflow.StatusInReview},
			workflow.AllowedNextStatuses(clerk, workflow.StatusPending))
		assert.Equal(t,
			[]workflow.Status{workflow.StatusDelivered},
			workflow.AllowedNextStatuses(clerk, workflow.StatusInProgress))
	})

	t.Run("admin sees the full graph row", func(t *testing.T) {
		admin := workflow.NewActor(1, true)

		assert.ElementsMatch(t,
			[]workflow.Status{workflow.StatusPending, workflow.StatusInProgress, workflow.StatusCanceled},
			workflow.AllowedNextStatuses(admin, workflow.StatusInReview))
	})

	t.Run("default deny for an empty allow-list", func(t *testing.T) {
		nobody := workflow.NewActor(3, false)

		for _, from := range workflow.AllStatuses {
			assert.Empty(t, workflow.AllowedNextStatuses(nobody, from), "from %s", from)
		}
	})
}
