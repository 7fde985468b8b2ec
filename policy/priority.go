package policy

import (
	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/solver"
)

// pruneToHighestPrio reduces q to the non-installed elements sharing the
// maximum repo.Priority, keeping every installed element regardless
// (spec.md §4.2). If every element is installed, no best priority is ever
// set and q is returned unchanged — this is load-bearing for the dup
// identicals path (spec.md §9).
func pruneToHighestPrio(p *pool.Pool, q Queue) Queue {
	bestPrio := 0
	bestSet := false
	for _, id := range q {
		s := p.Solvable(id)
		if p.IsInstalled(s) {
			continue
		}
		if !bestSet || s.Repo.Priority > bestPrio {
			bestPrio = s.Repo.Priority
			bestSet = true
		}
	}
	if !bestSet {
		return q
	}
	j := 0
	for _, id := range q {
		s := p.Solvable(id)
		if s.Repo.Priority == bestPrio || p.IsInstalled(s) {
			q[j] = id
			j++
		}
	}
	return q[:j]
}

// solvableIdentical reports whether two solvables are byte-identical
// package content, the predicate solver_prune_installed_dup_packages
// relies on (spec.md §4.2). The policy engine doesn't itself parse
// package payloads (that's the repository-parser collaborator's job), so
// this compares name, EVR, arch, vendor and the provides, obsoletes and
// requires lists. Recommends, suggests and the Conda fields are not
// compared.
func solvableIdentical(p *pool.Pool, a, b *pool.Solvable) bool {
	if a.Name != b.Name || a.EVR != b.EVR || a.Arch != b.Arch || a.Vendor != b.Vendor {
		return false
	}
	return idSliceEqual(a.Provides, b.Provides) &&
		idSliceEqual(a.Obsoletes, b.Obsoletes) &&
		idSliceEqual(a.Requires, b.Requires)
}

func idSliceEqual(a, b []pool.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// pruneInstalledDupPackages drops installed elements dup-involved in the
// current operation unless a non-installed, identical, priority-eligible
// replacement exists (spec.md §4.2). If such a replacement exists at a
// strictly higher priority than the current best, that priority becomes
// the new best and previously-kept elements are dropped.
func pruneInstalledDupPackages(sv *solver.Solver, q Queue) Queue {
	p := sv.Pool
	bestPrio := 0
	foundNonInstalled := false
	for _, id := range q {
		s := p.Solvable(id)
		if !p.IsInstalled(s) {
			bestPrio = s.Repo.Priority
			foundNonInstalled = true
			break
		}
	}
	if !foundNonInstalled {
		return q
	}

	j := 0
	for _, id := range q {
		s := p.Solvable(id)
		if !p.IsInstalled(s) && s.Repo.Priority < bestPrio {
			continue
		}
		if p.IsInstalled(s) && sv.IsDupInvolved(id) {
			keep := false
			for _, p2 := range p.WhatProvides(s.Name) {
				s2 := p.Solvable(p2)
				if p.IsInstalled(s2) || s2.EVR != s.EVR || s2.Repo.Priority < bestPrio {
					continue
				}
				if !solvableIdentical(p, s, s2) {
					continue
				}
				keep = true
				if s2.Repo.Priority > bestPrio {
					bestPrio = s2.Repo.Priority
					j = 0
				}
			}
			if !keep {
				continue
			}
		}
		q[j] = id
		j++
	}
	if j == 0 {
		return q
	}
	return q[:j]
}

// solverPruneToHighestPrio is prune_to_highest_prio plus the dup-identicals
// pass, invoked whenever a dup operation is active (spec.md §4.2).
func solverPruneToHighestPrio(sv *solver.Solver, q Queue) Queue {
	p := sv.Pool
	q = pruneToHighestPrio(p, q)
	if len(q) > 1 && p.Installed != nil && (sv.DupInvolvedAll || len(sv.DupInvolved) > 0) {
		q = pruneInstalledDupPackages(sv, q)
	}
	return q
}

// solverPruneToHighestPrioPerName groups q by name (after the canonical
// sort) and applies solverPruneToHighestPrio within each group of more
// than two elements (spec.md §4.2, used by SUGGEST mode).
func solverPruneToHighestPrioPerName(sv *solver.Solver, q Queue) Queue {
	p := sv.Pool
	if len(q) == 0 {
		return q
	}
	sortCanonical(p, q)

	out := make(Queue, 0, len(q))
	start := 0
	name := p.Solvable(q[0]).Name
	for i := 1; i <= len(q); i++ {
		if i == len(q) || p.Solvable(q[i]).Name != name {
			group := q[start:i]
			if len(group) > 2 {
				group = solverPruneToHighestPrio(sv, group)
			}
			out = append(out, group...)
			if i < len(q) {
				name = p.Solvable(q[i]).Name
			}
			start = i
		}
	}
	return out
}
