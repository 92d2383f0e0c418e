package moneybook

import (
	"encoding/json"
	"iter"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// History stores a chronological series of observed values, each associated
// with a specific calendar day. It ensures that days are unique and the
// series is always sorted: there is at most one snapshot per distinct date.
type History struct {
	days   []Date
	values []decimal.Decimal
}

// Len returns the number of snapshots in the history.
func (h *History) Len() int { return len(h.days) }

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History) Latest() (day Date, value decimal.Decimal) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, decimal.Decimal{}
	}
	return h.days[last], h.values[last]
}

// chronological is a private implementation to make this history chronologically sorted.
type chronological struct{ *History }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// Append adds a snapshot to the history.
//
// An existing value at that exact date is overwritten in place, so
// re-recording a value for the same day never grows the log. The last
// write for a given day wins.
func (h *History) Append(on Date, v decimal.Decimal) *History {
	if i := slices.Index(h.days, on); i >= 0 {
		h.values[i] = v
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, v)
	sort.Sort(chronological{h})
	return h
}

// Get returns the value at exactly 'day', or false if no snapshot exists for it.
func (h *History) Get(day Date) (decimal.Decimal, bool) {
	if i := slices.Index(h.days, day); i >= 0 {
		return h.values[i], true
	}
	return decimal.Decimal{}, false
}

// ValueAsOf returns the value on a given day, or the most recent value
// before it. It returns the value and true if found, otherwise the zero
// value and false.
func (h *History) ValueAsOf(day Date) (decimal.Decimal, bool) {
	// The days slice is sorted, so we can use binary search.
	i, found := slices.BinarySearchFunc(h.days, day, func(d, t Date) int {
		if d.After(t) {
			return 1
		}
		if d.Before(t) {
			return -1
		}
		return 0
	})

	if found {
		return h.values[i], true
	}

	// Not found. `i` is the index where `day` would be inserted.
	// The value we want is at `i-1`, the last snapshot before the target date.
	if i == 0 {
		return decimal.Decimal{}, false // No snapshot on or before the given day.
	}
	return h.values[i-1], true
}

// Values returns an iterator over all date/value pairs in chronological order.
func (h *History) Values() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// snapshot is the persisted form of one history entry.
type snapshot struct {
	Date  Date            `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// MarshalJSON encodes the history as an array of {date, value} snapshots.
func (h History) MarshalJSON() ([]byte, error) {
	list := make([]snapshot, 0, len(h.days))
	for i, on := range h.days {
		list = append(list, snapshot{Date: on, Value: h.values[i]})
	}
	return json.Marshal(list)
}

// UnmarshalJSON decodes an array of {date, value} snapshots. Entries are
// appended one by one so ordering and the one-per-date invariant are
// restored even from a malformed file.
func (h *History) UnmarshalJSON(data []byte) error {
	var list []snapshot
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	h.days, h.values = nil, nil
	for _, s := range list {
		h.Append(s.Date, s.Value)
	}
	return nil
}

var _ json.Marshaler = (*History)(nil)
var _ json.Unmarshaler = (*History)(nil)
