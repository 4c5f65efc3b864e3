// Package timeseries stores irregular per-asset price samples keyed by
// instants rather than calendar days, so it can hold the 5-minute and hourly
// granularities market data providers return for short day ranges.
package timeseries

import (
	"iter"
	"sort"
	"time"
)

// Series stores a chronological series of values, each associated with a
// specific instant. It ensures that instants are unique and the series is
// always sorted.
type Series struct {
	times  []time.Time
	values []float64
}

// Len returns the number of samples in the series.
func (s *Series) Len() int { return len(s.times) }

// Clear removes all samples from the series.
func (s *Series) Clear() {
	s.times = s.times[:0]
	s.values = s.values[:0]
}

// First returns the earliest instant and value in the series.
// If the series is empty, it returns zero values.
func (s *Series) First() (on time.Time, value float64) {
	if len(s.times) == 0 {
		return time.Time{}, 0
	}
	return s.times[0], s.values[0]
}

// Latest returns the latest instant and value in the series.
// If the series is empty, it returns zero values.
func (s *Series) Latest() (on time.Time, value float64) {
	last := len(s.times) - 1
	if last < 0 {
		return time.Time{}, 0
	}
	return s.times[last], s.values[last]
}

// chronological is a private implementation to make this series chronologically sorted.
type chronological struct{ *Series }

func (c chronological) Len() int           { return len(c.times) }
func (c chronological) Less(i, j int) bool { return c.times[i].Before(c.times[j]) }

func (c chronological) Swap(i, j int) {
	c.times[i], c.times[j] = c.times[j], c.times[i]
	c.values[i], c.values[j] = c.values[j], c.values[i]
}

func (s *Series) sort() { sort.Sort(chronological{s}) }

// index returns the position of an exact instant, or -1.
func (s *Series) index(on time.Time) int {
	for i, t := range s.times {
		if t.Equal(on) {
			return i
		}
	}
	return -1
}

// Append adds a sample to the series.
//
// An existing value at that exact instant is overwritten, giving higher
// priority to the last data.
func (s *Series) Append(on time.Time, v float64) *Series {
	if i := s.index(on); i >= 0 {
		s.values[i] = v
		return s
	}
	s.times, s.values = append(s.times, on), append(s.values, v)
	s.sort()
	return s
}

// Get returns the value at the exact instant 'on' and true, or zero and false.
func (s *Series) Get(on time.Time) (float64, bool) {
	if i := s.index(on); i >= 0 {
		return s.values[i], true
	}
	return 0, false
}

// OnOrAfter returns the first sample at or after the given instant.
// It returns the value and true if found, otherwise zero values and false.
func (s *Series) OnOrAfter(on time.Time) (float64, bool) {
	// The times slice is sorted, so we can use binary search.
	i := sort.Search(len(s.times), func(i int) bool {
		return !s.times[i].Before(on)
	})
	if i == len(s.times) {
		return 0, false // No sample on or after the given instant.
	}
	return s.values[i], true
}

// ValueAsOf returns the value at the given instant, or the most recent value
// before it. It returns the value and true if found, otherwise zero values
// and false.
func (s *Series) ValueAsOf(on time.Time) (float64, bool) {
	i := sort.Search(len(s.times), func(i int) bool {
		return s.times[i].After(on)
	})
	// `i` is the first sample strictly after 'on'; the value we want is at i-1.
	if i == 0 {
		return 0, false // No sample on or before the given instant.
	}
	return s.values[i-1], true
}

// Values returns an iterator over all instant/value pairs in the series, in
// chronological order.
func (s *Series) Values() iter.Seq2[time.Time, float64] {
	return func(yield func(time.Time, float64) bool) {
		for i, on := range s.times {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}
