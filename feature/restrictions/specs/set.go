package specs

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// Set is a set of specializations. The zero value is the empty set.
type Set uint64

// Of builds a set from individual specializations.
func Of(list ...Specialization) Set {
	var out Set
	for _, s := range list {
		out |= s.Set()
	}
	return out
}

func (s Set) Has(sp Specialization) bool {
	return sp.Valid() && s&sp.Set() != 0
}

// Contains reports whether every member of other is in s.
func (s Set) Contains(other Set) bool {
	return s&other == other
}

func (s Set) Overlaps(other Set) bool {
	return s&other != 0
}

func (s Set) Union(other Set) Set {
	return s | other
}

func (s Set) Intersect(other Set) Set {
	return s & other
}

func (s Set) Without(other Set) Set {
	return s &^ other
}

func (s Set) IsEmpty() bool {
	return s == 0
}

func (s Set) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Single returns the only member of s. Group sets and the empty set are not
// single specializations.
func (s Set) Single() (Specialization, bool) {
	if s.Len() != 1 {
		return 0, false
	}
	sp := Specialization(bits.TrailingZeros64(uint64(s)))
	return sp, sp.Valid()
}

// All yields the members of s in ascending order.
func (s Set) All() iter.Seq[Specialization] {
	return func(yield func(Specialization) bool) {
		rest := uint64(s & All)
		for rest != 0 {
			sp := Specialization(bits.TrailingZeros64(rest))
			if !yield(sp) {
				return
			}
			rest &= rest - 1
		}
	}
}

// Slice returns the members of s in ascending order.
func (s Set) Slice() []Specialization {
	out := make([]Specialization, 0, s.Len())
	for sp := range s.All() {
		out = append(out, sp)
	}
	return out
}

func (s Set) String() string {
	if s.IsEmpty() {
		return "None"
	}
	if s == All {
		return "All"
	}
	names := make([]string, 0, s.Len())
	for sp := range s.All() {
		names = append(names, sp.String())
	}
	return strings.Join(names, ", ")
}

// Keys returns the member keys in ascending order.
func (s Set) Keys() []string {
	keys := make([]string, 0, s.Len())
	for sp := range s.All() {
		keys = append(keys, sp.Key())
	}
	return keys
}

func (s Set) MarshalText() ([]byte, error) {
	return []byte(strings.Join(s.Keys(), ",")), nil
}

func (s *Set) UnmarshalText(text []byte) error {
	parsed, err := ParseSet(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSet parses a comma separated list of specialization keys or group names.
func ParseSet(value string) (Set, error) {
	var out Set
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if group, ok := groupNames[strings.ToLower(part)]; ok {
			out |= group
			continue
		}
		sp, err := ParseSpecialization(part)
		if err != nil {
			return 0, fmt.Errorf("parse set: %w", err)
		}
		out |= sp.Set()
	}
	return out, nil
}
