package order

import "time"

// DefaultRetentionWindow is how long a completed order stays on the
// operational dashboard before it is moved to the history collection.
const DefaultRetentionWindow = 60 * time.Second

// Sweep partitions active orders into those to keep on the dashboard
// and those old enough to archive. An order is archived when it is
// completed and its completion time (falling back to the order date for
// legacy records without one) is at least window before now. The two
// result slices always add up to the input; no order is dropped or
// duplicated.
func Sweep(active []Order, now time.Time, window time.Duration) (keep, toArchive []Order) {
	keep = make([]Order, 0, len(active))
	for _, o := range active {
		if o.Status == StatusCompleted && now.Sub(completedAt(o)) >= window {
			toArchive = append(toArchive, o)
			continue
		}
		keep = append(keep, o)
	}
	return keep, toArchive
}

func completedAt(o Order) time.Time {
	if o.CompletionTime != nil {
		return *o.CompletionTime
	}
	return o.OrderDate
}
