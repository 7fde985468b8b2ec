package policy

import (
	"fmt"

	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/solver"
)

// IllegalKind is a bitmask of the ways a proposed replacement can violate
// policy (spec.md §4.11).
type IllegalKind uint32

const (
	IllegalDowngrade IllegalKind = 1 << iota
	IllegalNameChange
	IllegalArchChange
	IllegalVendorChange
)

// PolicyIllegalArchChange reports whether replacing s1 with s2 is an
// illegal architecture change: equal archs, either side being noarch, or
// a missing arch table all make it legal; otherwise legal iff both
// scores share the same high-16-bit class (spec.md §4.11).
func PolicyIllegalArchChange(p *pool.Pool, s1, s2 *pool.Solvable) bool {
	if s1.Arch == s2.Arch {
		return false
	}
	if p.NoarchID != pool.EmptyID && (s1.Arch == p.NoarchID || s2.Arch == p.NoarchID) {
		return false
	}
	if p.ArchTable == nil {
		return false
	}
	a1, a2 := p.ArchScore(s1.Arch), p.ArchScore(s2.Arch)
	return pool.ArchClass(a1) != pool.ArchClass(a2)
}

// PolicyIllegalVendorChange reports whether replacing s1 with s2 is an
// illegal vendor change. A configured CustomVendorCheck entirely replaces
// mask-based comparison; otherwise two vendors are compatible iff their
// masks intersect, with an empty vendor treated as ID_EMPTY (spec.md
// §4.11).
func PolicyIllegalVendorChange(p *pool.Pool, s1, s2 *pool.Solvable) bool {
	if p.CustomVendorCheck != nil {
		return !p.CustomVendorCheck(s1.Vendor, s2.Vendor)
	}
	if s1.Vendor == s2.Vendor {
		return false
	}
	m1, m2 := p.VendorMask(s1.Vendor), p.VendorMask(s2.Vendor)
	return m1&m2 == 0
}

// PolicyIsIllegal reports, as an IllegalKind bitmask, every way replacing
// an installed solvable is with candidate s is illegal, gated on is's
// effective policy flags (dup-mode variant when is is dup-involved) and
// with ignoreMask bits suppressed (spec.md §4.11).
func PolicyIsIllegal(sv *solver.Solver, is, s *pool.Solvable, ignoreMask IllegalKind) IllegalKind {
	p := sv.Pool
	flags := sv.EffectiveFlags(is.ID)
	var illegal IllegalKind

	if !flags.AllowDowngrade && ignoreMask&IllegalDowngrade == 0 {
		if is.Name == s.Name && p.EVRCmp(s.EVR, is.EVR, pool.EVRCompare) < 0 {
			illegal |= IllegalDowngrade
		}
	}
	if !flags.AllowNameChange && ignoreMask&IllegalNameChange == 0 {
		if is.Name != s.Name {
			illegal |= IllegalNameChange
		}
	}
	if !flags.AllowArchChange && ignoreMask&IllegalArchChange == 0 {
		if PolicyIllegalArchChange(p, is, s) {
			illegal |= IllegalArchChange
		}
	}
	if !flags.AllowVendorChange && ignoreMask&IllegalVendorChange == 0 {
		if PolicyIllegalVendorChange(p, is, s) {
			illegal |= IllegalVendorChange
		}
	}
	return illegal
}

// PolicyIllegal2Str renders one IllegalKind bit (illegal must be a single
// bit, not a combined mask) as a human-readable explanation naming both
// solvables, for diagnostics.
func PolicyIllegal2Str(p *pool.Pool, illegal IllegalKind, is, s *pool.Solvable) string {
	isName := fmt.Sprintf("%s-%s.%s", p.Name(is.Name), p.EVRString(is.EVR), p.ArchString(is.Arch))
	sName := fmt.Sprintf("%s-%s.%s", p.Name(s.Name), p.EVRString(s.EVR), p.ArchString(s.Arch))
	switch illegal {
	case IllegalDowngrade:
		return fmt.Sprintf("%s would be downgraded to %s", isName, sName)
	case IllegalNameChange:
		return fmt.Sprintf("%s would be replaced by a package of a different name %s", isName, sName)
	case IllegalArchChange:
		return fmt.Sprintf("%s would change architecture to %s", isName, sName)
	case IllegalVendorChange:
		return fmt.Sprintf("%s would change vendor from %q to %q", isName, p.VendorString(is.Vendor), p.VendorString(s.Vendor))
	default:
		return fmt.Sprintf("%s vs %s is illegal for unknown reasons (mask %#x)", isName, sName, uint32(illegal))
	}
}
