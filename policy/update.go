package policy

import (
	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/solver"
)

// AllowAllMode selects which policy flags PolicyFindUpdatePackages
// consults (spec.md §4.10).
type AllowAllMode int

const (
	// AllowAllDefault uses s's effective flags (dup variant iff s is
	// dup-involved).
	AllowAllDefault AllowAllMode = iota
	// AllowAllIgnoreLegality bypasses every allow*change gate.
	AllowAllIgnoreLegality
	// AllowAllDup forces the dup-mode flags regardless of dup-involvement.
	AllowAllDup
)

func flagsForMode(sv *solver.Solver, mode AllowAllMode, id pool.SolvableID) solver.PolicyFlags {
	switch mode {
	case AllowAllIgnoreLegality:
		return solver.PolicyFlags{AllowDowngrade: true, AllowNameChange: true, AllowArchChange: true, AllowVendorChange: true}
	case AllowAllDup:
		return sv.DupFlags
	default:
		return sv.EffectiveFlags(id)
	}
}

// PolicyFindUpdatePackages appends to qs every permissible replacement ID
// for installed solvable s, under the legality policy selected by
// allowAll (spec.md §4.10).
func PolicyFindUpdatePackages(sv *solver.Solver, s *pool.Solvable, qs Queue, allowAll AllowAllMode) Queue {
	p := sv.Pool
	flags := flagsForMode(sv, allowAll, s.ID)

	legal := func(cand *pool.Solvable) bool {
		if !flags.AllowArchChange && PolicyIllegalArchChange(p, s, cand) {
			return false
		}
		if !flags.AllowVendorChange && PolicyIllegalVendorChange(p, s, cand) {
			return false
		}
		return true
	}

	foundCandidate := false
	for _, id := range p.WhatProvides(s.Name) {
		if id == s.ID {
			continue
		}
		cand := p.Solvable(id)

		switch {
		case cand.Name == s.Name:
			if p.ImplicitObsoleteUsesColors && !colorMatch(p, s, cand) {
				continue
			}
			if !flags.AllowDowngrade && p.EVRCmp(cand.EVR, s.EVR, pool.EVRCompare) < 0 {
				continue
			}
		case !flags.AllowNameChange:
			continue
		case len(cand.Obsoletes) > 0 && (!sv.NoUpdateProvide || sv.NeedUpdateProvide):
			if !obsoletesSolvable(p, cand, s) {
				continue
			}
			foundCandidate = true
		default:
			continue
		}

		if !legal(cand) {
			continue
		}
		qs = append(qs, id)
	}

	if flags.AllowNameChange && !foundCandidate && (!sv.NoUpdateProvide || sv.NeedUpdateProvide) {
		for _, id := range sv.Obsoletes[s.ID] {
			cand := p.Solvable(id)
			if !legal(cand) {
				continue
			}
			qs = append(qs, id)
		}
	}

	return qs
}

// obsoletesSolvable reports whether cand's obsoletes list matches s under
// the active provides/color policy, mirroring the gate tarjan.go's
// pruneObsoleted/pruneObsoleted2 already apply to the best-version pass.
func obsoletesSolvable(p *pool.Pool, cand, s *pool.Solvable) bool {
	for _, obs := range cand.Obsoletes {
		for _, target := range p.WhatProvides(obs) {
			if target != s.ID {
				continue
			}
			if !p.ObsoleteUsesProvides && !matchNEVR(p, s, obs) {
				continue
			}
			if p.ObsoleteUsesColors && !colorMatch(p, cand, s) {
				continue
			}
			return true
		}
	}
	return false
}
