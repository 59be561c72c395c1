package models

// BadgeSet holds a member's badge identifiers in insertion order with
// set semantics: each identifier appears at most once. It serializes to a
// plain JSON array, which is how the profiles table stores badges.
type BadgeSet []string

func (s BadgeSet) Has(badge string) bool {
	for _, b := range s {
		if b == badge {
			return true
		}
	}
	return false
}

// Add appends badge unless it is already present. It reports whether the
// set changed, so callers can skip the write-back on a duplicate grant.
func (s *BadgeSet) Add(badge string) bool {
	if s.Has(badge) {
		return false
	}
	*s = append(*s, badge)
	return true
}
