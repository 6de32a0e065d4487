// Package panel holds the screen-local state machines shared by the Users and
// Posts screens: the in-memory entity store, the search filter, the edit
// session, the delete-confirmation gate, and the toast queue. Each screen owns
// its own instances; nothing here is shared across screens.
package panel

import "strings"

// Record is the common surface of the entity types the panel manages.
type Record interface {
	// Key is the record id; unique within a store.
	Key() int
	// Label names the record in toast messages.
	Label() string
	// SearchFields are the values the search filter matches against.
	SearchFields() []string
}

// Store is an ordered in-memory sequence of records. It is seeded once from a
// remote fetch and thereafter mutated only locally; nothing is ever written
// back to the source.
type Store[R Record] struct {
	records []R
}

// SetAll replaces the store contents (initial load).
func (s *Store[R]) SetAll(records []R) {
	s.records = records
}

// Records returns the backing slice. Callers must not mutate it.
func (s *Store[R]) Records() []R { return s.records }

func (s *Store[R]) Len() int { return len(s.records) }

// NextID returns max(existing ids)+1, or 1 for an empty store. Gaps in the id
// sequence are not reused: [1,3] yields 4.
func (s *Store[R]) NextID() int {
	max := 0
	for _, r := range s.records {
		if r.Key() > max {
			max = r.Key()
		}
	}
	return max + 1
}

// Append adds a record to the tail. Validation and id assignment are the
// caller's job.
func (s *Store[R]) Append(r R) {
	s.records = append(s.records, r)
}

// Replace swaps the stored record sharing r's id. Reports whether a record
// was found.
func (s *Store[R]) Replace(r R) bool {
	for i := range s.records {
		if s.records[i].Key() == r.Key() {
			s.records[i] = r
			return true
		}
	}
	return false
}

// Remove deletes the record with the given id, preserving order, and returns
// it. The zero R and false when absent.
func (s *Store[R]) Remove(id int) (R, bool) {
	for i := range s.records {
		if s.records[i].Key() == id {
			removed := s.records[i]
			s.records = append(s.records[:i], s.records[i+1:]...)
			return removed, true
		}
	}
	var zero R
	return zero, false
}

// Find returns the record with the given id.
func (s *Store[R]) Find(id int) (R, bool) {
	for _, r := range s.records {
		if r.Key() == id {
			return r, true
		}
	}
	var zero R
	return zero, false
}

// Filter returns the ordered subsequence of records where at least one search
// field contains the query, case-insensitively. An empty query returns the
// input unchanged. Pure; holds no state.
func Filter[R Record](records []R, query string) []R {
	query = strings.ToLower(query)
	if query == "" {
		return records
	}
	var out []R
	for _, r := range records {
		for _, f := range r.SearchFields() {
			if strings.Contains(strings.ToLower(f), query) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
