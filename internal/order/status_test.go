package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreepawar22/quickserve/internal/order"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current order.Status
		want    order.Status
	}{
		{name: "pending_advances_to_preparing", current: order.StatusPending, want: order.StatusPreparing},
		{name: "preparing_advances_to_completed", current: order.StatusPreparing, want: order.StatusCompleted},
		{name: "completed_is_terminal", current: order.StatusCompleted, want: order.StatusCompleted},
		{name: "cancelled_is_terminal", current: order.StatusCancelled, want: order.StatusCancelled},
		{name: "delivered_is_terminal", current: order.StatusDelivered, want: order.StatusDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.NextStatus(tt.current))
		})
	}
}

func TestAdvance_FullProgression(t *testing.T) {
	o := order.Order{
		ID:        "order_1716000000000",
		Status:    order.StatusPending,
		OrderDate: time.Date(2025, 5, 18, 12, 0, 0, 0, time.UTC),
	}

	first := time.Date(2025, 5, 18, 12, 5, 0, 0, time.UTC)
	order.Advance(&o, first)
	assert.Equal(t, order.StatusPreparing, o.Status, "first advance should reach preparing")
	assert.Nil(t, o.CompletionTime, "completion time must stay unset before completed")

	second := time.Date(2025, 5, 18, 12, 20, 0, 0, time.UTC)
	order.Advance(&o, second)
	assert.Equal(t, order.StatusCompleted, o.Status, "second advance should reach completed")
	require.NotNil(t, o.CompletionTime)
	assert.Equal(t, second, *o.CompletionTime, "completion time should be the time of the completing call")

	third := time.Date(2025, 5, 18, 12, 45, 0, 0, time.UTC)
	order.Advance(&o, third)
	assert.Equal(t, order.StatusCompleted, o.Status, "advancing a completed order is a no-op")
	require.NotNil(t, o.CompletionTime)
	assert.Equal(t, second, *o.CompletionTime, "completion time must never be re-stamped")
}

func TestAdvance_TerminalStatusesUntouched(t *testing.T) {
	now := time.Now()
	for _, status := range []order.Status{order.StatusCancelled, order.StatusDelivered} {
		o := order.Order{ID: "order_1", Status: status}
		order.Advance(&o, now)
		assert.Equal(t, status, o.Status)
		assert.Nil(t, o.CompletionTime)
	}
}

func TestAdvance_EmptyStatusTreatedAsPending(t *testing.T) {
	o := order.Order{ID: "order_legacy"}
	order.Advance(&o, time.Now())
	assert.Equal(t, order.StatusPreparing, o.Status)
}
