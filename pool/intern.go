package pool

import "github.com/armon/go-radix"

// ID is a dense, positive identifier for an interned string (a package
// name, an EVR, an architecture, a vendor, or a dependency expression).
// Zero is reserved as "empty"/"none", matching the C pool's ID_EMPTY == 0
// convention used throughout policy.c (e.g. a missing vendor is ID_EMPTY).
type ID int32

// EmptyID is the reserved zero identifier.
const EmptyID ID = 0

// interner assigns dense IDs to strings and back, the same shape as the
// teacher's typed_radix.go trie wrapper, adapted from path-deducer lookups
// to plain string interning: a radix tree for string->ID plus a slice for
// the reverse ID->string direction.
type interner struct {
	byString *radix.Tree
	byID     []string // byID[0] is unused (ID 0 == empty)
}

func newInterner() *interner {
	return &interner{
		byString: radix.New(),
		byID:     []string{""},
	}
}

// intern returns the ID for s, allocating a new one if s hasn't been seen.
func (in *interner) intern(s string) ID {
	if s == "" {
		return EmptyID
	}
	if v, ok := in.byString.Get(s); ok {
		return v.(ID)
	}
	id := ID(len(in.byID))
	in.byID = append(in.byID, s)
	in.byString.Insert(s, id)
	return id
}

// lookup returns the ID for s without allocating, reporting false if s was
// never interned.
func (in *interner) lookup(s string) (ID, bool) {
	if s == "" {
		return EmptyID, true
	}
	v, ok := in.byString.Get(s)
	if !ok {
		return 0, false
	}
	return v.(ID), true
}

// str returns the string for id; the empty string for EmptyID or an
// out-of-range id.
func (in *interner) str(id ID) string {
	if id <= 0 || int(id) >= len(in.byID) {
		return ""
	}
	return in.byID[id]
}
