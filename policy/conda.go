package policy

import "github.com/baszalmstra/libsolv/pool"

// pruneToBestVersionConda is the Conda variant of the best-version pruner
// (spec.md §4.4.1): fewer track features wins, then EVR, then
// subpriority, then build version, then build flavor. Solvables tied with
// the best on the first four of those (build flavor is not part of the
// tie test) are ordered by pairwise dependency comparison (§4.5) with a
// final fallback to build timestamp.
func pruneToBestVersionConda(p *pool.Pool, q Queue) Queue {
	if len(q) < 2 {
		return q
	}
	sortCanonical(p, q)

	out := make(Queue, 0, len(q))
	var best pool.SolvableID
	haveBest := false
	for _, id := range q {
		if !haveBest {
			best, haveBest = id, true
			continue
		}
		bs, s := p.Solvable(best), p.Solvable(id)
		if bs.Name != s.Name {
			out = append(out, best)
			best = id
			continue
		}
		if condaCmp(p, bs, s) < 0 {
			best = id
		}
	}
	if haveBest {
		out = append(out, best)
	}

	// collect every solvable tied with best on the (a)-(d) chain.
	bestS := p.Solvable(out[len(out)-1])
	tied := Queue{}
	for _, id := range out {
		s := p.Solvable(id)
		if condaTieChainCmp(p, bestS, s) == 0 {
			tied = append(tied, id)
		}
	}
	others := make(Queue, 0, len(out))
	for _, id := range out {
		s := p.Solvable(id)
		if condaTieChainCmp(p, bestS, s) != 0 {
			others = append(others, id)
		}
	}

	if len(tied) > 1 {
		sortCondaDependencies(p, tied)
	}
	return append(tied, others...)
}

// condaTieChainCmp implements chain (a)-(d): track features, EVR,
// subpriority, build version. Build flavor is part of condaCmp's full
// ordering but not of the tie-set membership test (original_source keeps
// it in the comparator yet the tie-set loop re-derives membership off the
// (a)-(d) subset only, matching prune_to_best_version_conda's two
// separate comparison blocks).
func condaTieChainCmp(p *pool.Pool, a, b *pool.Solvable) int {
	if r := featureCountCmp(a, b); r != 0 {
		return r
	}
	if a.EVR != b.EVR {
		if r := p.EVRCmp(a.EVR, b.EVR, pool.EVRCompare); r != 0 {
			return r
		}
	}
	subA, subB := 0, 0
	if a.Repo != nil {
		subA = a.Repo.Subpriority
	}
	if b.Repo != nil {
		subB = b.Repo.Subpriority
	}
	if subA != subB {
		return subA - subB
	}
	return buildVersionCmp(p, a, b)
}

func condaCmp(p *pool.Pool, a, b *pool.Solvable) int {
	if r := condaTieChainCmp(p, a, b); r != 0 {
		return r
	}
	return buildFlavorCmp(p, a, b)
}

func featureCountCmp(a, b *pool.Solvable) int {
	if a.TrackFeatures == b.TrackFeatures {
		return 0
	}
	if a.TrackFeatures > b.TrackFeatures {
		return -1 // fewer features wins
	}
	return 1
}

func buildVersionCmp(p *pool.Pool, a, b *pool.Solvable) int {
	if a.BuildVersion == "" && b.BuildVersion == "" {
		return 0
	}
	return pool.CompareEVR(a.BuildVersion, b.BuildVersion, pool.EVRCompare)
}

func buildFlavorCmp(p *pool.Pool, a, b *pool.Solvable) int {
	if a.BuildFlavor == "" && b.BuildFlavor == "" {
		return 0
	}
	return pool.CompareEVR(a.BuildFlavor, b.BuildFlavor, pool.EVRCompare)
}

// bestMatching returns the EVR of the highest-EVR solvable in the
// intersection of WhatProvides across every Requires entry of s whose
// relational name is name, plus whether every matching provider declares
// track features (spec.md §4.5).
func bestMatching(p *pool.Pool, s *pool.Solvable, name pool.ID) (evr pool.ID, allHaveTrackFeatures bool, ok bool) {
	var selection []pool.SolvableID
	first := true
	for _, dep := range s.Requires {
		if p.RelName(dep) != name {
			continue
		}
		providers := p.WhatProvides(dep)
		if first {
			selection = append(selection, providers...)
			first = false
			continue
		}
		selection = intersectSolvableIDs(selection, providers)
	}
	if len(selection) == 0 {
		return 0, false, false
	}

	allHaveTrackFeatures = true
	for _, id := range selection {
		if p.Solvable(id).TrackFeatures == 0 {
			allHaveTrackFeatures = false
			break
		}
	}

	best := p.Solvable(selection[0])
	for _, id := range selection[1:] {
		s2 := p.Solvable(id)
		if p.EVRCmp(best.EVR, s2.EVR, pool.EVRCompare) < 0 {
			best = s2
		}
	}
	return best.EVR, allHaveTrackFeatures, true
}

func intersectSolvableIDs(a, b []pool.SolvableID) []pool.SolvableID {
	set := make(map[pool.SolvableID]bool, len(b))
	for _, id := range b {
		set[id] = true
	}
	out := a[:0]
	for _, id := range a {
		if set[id] {
			out = append(out, id)
		}
	}
	return out
}

// requireNames returns the distinct relational-dep names appearing in s's
// Requires list, in first-seen order.
func requireNames(p *pool.Pool, s *pool.Solvable) []pool.ID {
	seen := make(map[pool.ID]bool)
	var names []pool.ID
	for _, dep := range s.Requires {
		name := p.RelName(dep)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// requireEntriesFor returns the Requires entries of s with relational
// name == name.
func requireEntriesFor(p *pool.Pool, s *pool.Solvable, name pool.ID) []pool.ID {
	var out []pool.ID
	for _, dep := range s.Requires {
		if p.RelName(dep) == name {
			out = append(out, dep)
		}
	}
	return out
}

func depSetsEqual(a, b []pool.ID) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[pool.ID]int, len(b))
	for _, id := range b {
		set[id]++
	}
	for _, id := range a {
		set[id]--
		if set[id] < 0 {
			return false
		}
	}
	return true
}

// condaCompareDependencies implements conda_compare_dependencies (spec.md
// §4.5): iterate over each distinct relational-dep name present in s1's
// requires that differs between the two requires arrays; accumulate
// evrcmp(best2, best1), plus a ±100 nudge favoring the side whose matches
// aren't all track-features.
func condaCompareDependencies(p *pool.Pool, s1, s2 *pool.Solvable) int {
	score := 0
	for _, name := range requireNames(p, s1) {
		e1 := requireEntriesFor(p, s1, name)
		e2 := requireEntriesFor(p, s2, name)
		if depSetsEqual(e1, e2) {
			continue
		}
		b1, aht1, ok1 := bestMatching(p, s1, name)
		b2, aht2, ok2 := bestMatching(p, s2, name)
		if !ok1 || !ok2 {
			continue
		}
		if aht1 != aht2 {
			if aht1 {
				score += 100
			} else {
				score -= 100
			}
		}
		score += p.EVRCmp(b2, b1, pool.EVRCompare)
	}
	return score
}

// sortCondaDependencies orders a tie set by condaCompareDependencies, with
// a build-timestamp fallback (newer first) that — per spec.md's Open
// Questions — never returns 0 on a tie, preserving the original's
// non-determinism on equal timestamps rather than silently tightening it.
func sortCondaDependencies(p *pool.Pool, q Queue) {
	cmp := func(a, b *pool.Solvable) int {
		if r := condaCompareDependencies(p, a, b); r != 0 {
			return r
		}
		if b.BuildTime > a.BuildTime {
			return 1
		}
		return -1
	}
	less := func(i, j int) bool {
		return cmp(p.Solvable(q[i]), p.Solvable(q[j])) < 0
	}
	insertionSortQueue(q, less)
}

func insertionSortQueue(q Queue, less func(i, j int) bool) {
	for i := 1; i < len(q); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			q[j], q[j-1] = q[j-1], q[j]
		}
	}
}
