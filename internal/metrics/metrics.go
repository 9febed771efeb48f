// Package metrics derives the dashboard counters from the order
// collections. Every value is recomputed from scratch on each read;
// nothing here is stored, so the counters can never drift from the
// underlying records.
package metrics

import (
	"time"

	"github.com/shreepawar22/quickserve/internal/order"
)

// Metrics are the dashboard counters.
type Metrics struct {
	ActiveOrders  int     `json:"activeOrders"`
	TodaysRevenue float64 `json:"todaysRevenue"`
	TotalOrders   int     `json:"totalOrders"`
	TodaysOrders  int     `json:"todaysOrders"`
}

// Snapshot computes the counters from the active and history
// collections as of now. Active counts only pending/preparing orders
// and ignores history entirely; the today figures use the union of both
// collections, comparing calendar days in now's location; cancelled
// orders never contribute revenue.
func Snapshot(active, history []order.Order, now time.Time) Metrics {
	m := Metrics{
		TotalOrders: len(active) + len(history),
	}

	for _, o := range active {
		if o.Status == order.StatusPending || o.Status == order.StatusPreparing {
			m.ActiveOrders++
		}
	}

	y, mo, d := now.Date()
	countToday := func(orders []order.Order) {
		for _, o := range orders {
			oy, omo, od := o.OrderDate.In(now.Location()).Date()
			if oy != y || omo != mo || od != d {
				continue
			}
			m.TodaysOrders++
			if o.Status != order.StatusCancelled {
				m.TodaysRevenue += o.TotalAmount
			}
		}
	}
	countToday(active)
	countToday(history)

	return m
}
