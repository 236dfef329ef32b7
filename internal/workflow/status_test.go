package workflow_test

import (
	"testing"

	"procurement-system/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("accepts every member of the enumeration", func(t *testing.T) {
		for _, s := range workflow.AllStatuses {
			parsed, err := workflow.ParseStatus(string(s))
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		for _, raw := range []string{"", "PENDING", "done", "in-review", "cancelled"} {
			_, err := workflow.ParseStatus(raw)
			require.Error(t, err, "value %q", raw)
			assert.ErrorIs(t, err, workflow.ErrInvalidState)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, workflow.StatusCanceled.IsTerminal())
	assert.True(t, workflow.StatusDelivered.IsTerminal())
	assert.False(t, workflow.StatusPending.IsTerminal())
	assert.False(t, workflow.StatusInReview.IsTerminal())
	assert.False(t, workflow.StatusInProgress.IsTerminal())
}

func TestNextStatuses(t *testing.T) {
	testCases := []struct {
		from workflow.Status
		want []workflow.Status
	}{
		{workflow.StatusPending, []workflow.Status{workflow.StatusInReview, workflow.StatusCanceled}},
		{workflow.StatusInReview, []workflow.Status{workflow.StatusPending, workflow.StatusInProgress, workflow.StatusCanceled}},
		{workflow.StatusInProgress, []workflow.Status{workflow.StatusCanceled, workflow.StatusDelivered}},
		{workflow.StatusCanceled, []workflow.Status{}},
		{workflow.StatusDelivered, []workflow.Status{}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from), func(t *testing.T) {
			assert.ElementsMatch(t, tc.want, workflow.NextStatuses(tc.from))
		})
	}
}

func TestGraphAllows(t *testing.T) {
	t.Run("no edge skips review", func(t *testing.T) {
		assert.False(t, workflow.GraphAllows(workflow.StatusPending, workflow.StatusDelivered))
		assert.False(t, workflow.GraphAllows(workflow.StatusPending, workflow.StatusInProgress))
	})

	t.Run("review can be sent back", func(t *testing.T) {
		assert.True(t, workflow.GraphAllows(workflow.StatusInReview, workflow.StatusPending))
	})

	t.Run("terminal states have no outgoing edges at all", func(t *testing.T) {
		for _, from := range []workflow.Status{workflow.StatusCanceled, workflow.StatusDelivered} {
			for _, to := range workflow.AllStatuses {
				assert.False(t, workflow.GraphAllows(from, to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("unknown statuses have no edges", func(t *testing.T) {
		assert.False(t, workflow.GraphAllows(workflow.Status("bogus"), workflow.StatusPending))
		assert.False(t, workflow.GraphAllows(workflow.StatusPending, workflow.Status("bogus")))
	})
}
