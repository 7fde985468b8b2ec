package policy

import (
	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/solver"
	"github.com/baszalmstra/libsolv/tracelog"
)

// PolicyCreateObsoleteIndex rebuilds sv.Obsoletes from scratch: for every
// installed solvable, the list of differently-named solvables that
// obsolete it (spec.md §4.12), ascending by ID. Every solvable that has
// obsoletes is considered; none is left out for being uninstallable.
//
// The original is a two-pass counting/prefix-sum/backward-fill build over
// a flat array, chosen there to avoid a growable-list-per-bucket
// allocation pattern. sv.Obsoletes is already a Go map of slices, so a
// single forward pass over solvables in ascending ID order produces the
// same ascending-ID-per-target lists directly — the two-pass shape is an
// array-packing optimization with no separately observable behavior
// (spec.md §9: "the observable behavior is identical provided ... is
// preserved").
func PolicyCreateObsoleteIndex(sv *solver.Solver) {
	p := sv.Pool
	sv.Obsoletes = make(map[pool.SolvableID][]pool.SolvableID)
	if p.Installed == nil {
		return
	}

	for i := 1; i < len(p.Solvables); i++ {
		id := pool.SolvableID(i)
		s := p.Solvable(id)
		if len(s.Obsoletes) == 0 {
			continue
		}
		for _, obs := range s.Obsoletes {
			for _, target := range p.WhatProvides(obs) {
				ts := p.Solvable(target)
				if !p.IsInstalled(ts) {
					continue
				}
				if ts.Name == s.Name {
					continue
				}
				if !p.ObsoleteUsesProvides && !matchNEVR(p, ts, obs) {
					continue
				}
				if p.ObsoleteUsesColors && !colorMatch(p, s, ts) {
					continue
				}
				sv.Obsoletes[target] = append(sv.Obsoletes[target], id)
			}
		}
	}
	sv.Log.Logf(tracelog.LevelStats, "created obsolete index for %d installed packages\n", len(sv.Obsoletes))
}
