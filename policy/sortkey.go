package policy

import (
	"sort"

	"github.com/baszalmstra/libsolv/pool"
)

// canonicalLess implements the canonical sort key (spec.md §4.1), grounded
// on original_source/src/policy.c's prune_to_best_version_sortcmp: compare
// by interned name string (not by ID, so the order doesn't depend on
// allocation order), then by architecture score when both sides score
// above 1, then installed-first, then by repo subpriority descending,
// finally by raw ID ascending.
func canonicalLess(p *pool.Pool, a, b pool.SolvableID) bool {
	sa, sb := p.Solvable(a), p.Solvable(b)

	if sa.Name != sb.Name {
		return p.Name(sa.Name) < p.Name(sb.Name)
	}

	if sa.Arch != sb.Arch {
		aa, ab := p.ArchScore(sa.Arch), p.ArchScore(sb.Arch)
		if aa != ab && aa > 1 && ab > 1 {
			return aa < ab // lowest score first
		}
	}

	if p.Installed != nil {
		aInst := sa.Repo == p.Installed
		bInst := sb.Repo == p.Installed
		if aInst != bInst {
			return aInst
		}
	}

	subA, subB := 0, 0
	if sa.Repo != nil {
		subA = sa.Repo.Subpriority
	}
	if sb.Repo != nil {
		subB = sb.Repo.Subpriority
	}
	if subA != subB {
		return subA > subB // descending
	}

	return a < b
}

// sortCanonical sorts q in place by the canonical sort key. It is not a
// stable sort (neither is the C's solv_sort), matching
// prune_to_best_version_sortcmp's use.
func sortCanonical(p *pool.Pool, q Queue) {
	sort.Slice(q, func(i, j int) bool { return canonicalLess(p, q[i], q[j]) })
}
