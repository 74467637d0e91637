package progress

import (
	"encoding/json"
	"sort"
)

// StringSet is an unordered set of strings. It serializes as a sorted JSON
// array and deserializes back into a set, so identity is not preserved
// across a save/load cycle.
type StringSet map[string]struct{}

// NewStringSet builds a set from items.
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s StringSet) Add(v string) { s[v] = struct{}{} }

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *StringSet) UnmarshalJSON(b []byte) error {
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*s = NewStringSet(items...)
	return nil
}
