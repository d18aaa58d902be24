package view

import (
	"time"

	"notifeed/internal/model"
)

// Bucket names a display time range for grouped notifications.
type Bucket string

const (
	BucketToday     Bucket = "today"
	BucketYesterday Bucket = "yesterday"
	BucketThisWeek  Bucket = "this_week"
	BucketEarlier   Bucket = "earlier"
)

// bucketOrder fixes the display order of groups.
var bucketOrder = []Bucket{
	BucketToday,
	BucketYesterday,
	BucketThisWeek,
	BucketEarlier,
}

// Title returns the header text shown above a bucket's records.
func (b Bucket) Title() string {
	switch b {
	case BucketToday:
		return "Today"
	case BucketYesterday:
		return "Yesterday"
	case BucketThisWeek:
		return "This week"
	default:
		return "Earlier"
	}
}

// Group is one non-empty bucket with its records.
type Group struct {
	Bucket  Bucket
	Records []model.Notification
}

// Projection is the derived view of the store under a filter: ordered
// time groups plus locally computed aggregate counts.
type Projection struct {
	Groups []Group
	Stats  model.Stats
}

// Flatten returns the grouped records as one slice in display order.
func (p Projection) Flatten() []model.Notification {
	var out []model.Notification
	for _, g := range p.Groups {
		out = append(out, g.Records...)
	}
	return out
}

// Project derives the filtered, time-grouped view of records at the
// given instant. It is a pure function of its inputs.
//
// Bucket boundaries are local calendar days computed at call time:
// today, yesterday, then the five calendar days before yesterday as
// "this week"; anything on or before the seventh calendar day back
// lands in "earlier". Empty buckets are omitted. Within a bucket the
// input order is preserved; no sort is applied, so if the backend
// returns an unsorted page the output is not globally time-sorted.
func Project(
	records []model.Notification,
	filter model.Filter,
	now time.Time,
) Projection {
	todayStart := dayStart(now)
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayStart.AddDate(0, 0, -6)

	buckets := make(map[Bucket][]model.Notification, len(bucketOrder))
	stats := model.Stats{
		ByUser: make(map[string]int),
		Origin: model.StatsLocal,
	}

	for _, n := range records {
		if !filter.Matches(n) {
			continue
		}

		b := bucketFor(n.Timestamp, todayStart, yesterdayStart, weekStart)
		buckets[b] = append(buckets[b], n)

		stats.Total++
		if !n.Read {
			stats.Unread++
		}
		if b == BucketToday {
			stats.Today++
		}
		stats.ByUser[n.UserID]++
	}

	groups := make([]Group, 0, len(bucketOrder))
	for _, b := range bucketOrder {
		if len(buckets[b]) == 0 {
			continue
		}
		groups = append(groups, Group{Bucket: b, Records: buckets[b]})
	}

	return Projection{Groups: groups, Stats: stats}
}

// bucketFor assigns a timestamp to its display bucket.
func bucketFor(ts time.Time, todayStart, yesterdayStart, weekStart time.Time) Bucket {
	switch {
	case !ts.Before(todayStart):
		return BucketToday
	case !ts.Before(yesterdayStart):
		return BucketYesterday
	case !ts.Before(weekStart):
		return BucketThisWeek
	default:
		return BucketEarlier
	}
}

// dayStart returns local midnight of the day containing t.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
