package policy

import (
	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/solver"
)

// UpdateRecommendsMap refreshes sv's recommends/suggests bitmaps by
// walking any decisions appended to DecisionQ since the last call
// (spec.md §4.6). A negative RecommendsIndex means "invalidate and
// rebuild": both maps are zeroed and both complex-dep caches dropped
// before the cursor resets to zero.
func UpdateRecommendsMap(sv *solver.Solver) {
	p := sv.Pool

	if sv.RecommendsIndex < 0 {
		sv.RecommendsMap = make(map[pool.SolvableID]bool)
		sv.SuggestsMap = make(map[pool.SolvableID]bool)
		sv.ResetComplexCaches()
		sv.RecommendsIndex = 0
	}

	for sv.RecommendsIndex < len(sv.DecisionQ) {
		signed := sv.DecisionQ[sv.RecommendsIndex]
		sv.RecommendsIndex++
		if signed <= 0 {
			continue
		}
		id := pool.SolvableID(signed)
		s := p.Solvable(id)

		recheckComplexDeps(sv, id, sv.RecommendsMap, sv.RecommendsCplx)
		recheckComplexDeps(sv, id, sv.SuggestsMap, sv.SuggestsCplx)

		for i := range s.Recommends {
			applyDep(sv, &s.Recommends[i], sv.RecommendsMap, sv.RecommendsCplx)
		}
		for i := range s.Suggests {
			applyDep(sv, &s.Suggests[i], sv.SuggestsMap, sv.SuggestsCplx)
		}
	}
}

// applyDep folds one Dep (recommends or suggests entry) into m: a simple
// dep marks every provider; a complex one is handed to checkComplexDep.
func applyDep(sv *solver.Solver, dep *pool.Dep, m map[pool.SolvableID]bool, cache map[pool.SolvableID][]*pool.Dep) {
	if !dep.Complex {
		for _, id := range sv.Pool.WhatProvides(dep.Name) {
			m[id] = true
		}
		return
	}
	checkComplexDep(sv, dep, m, cache)
}

// checkComplexDep normalizes dep's blocks (already expanded by the
// external complex-dep normalizer into the CPLXDEPS_EXPAND shape, spec.md
// §4.6) and either fires each block's effects immediately, drops it
// (a premise is already decided false), or postpones it on every
// still-undecided premise literal it contains.
func checkComplexDep(sv *solver.Solver, dep *pool.Dep, m map[pool.SolvableID]bool, cache map[pool.SolvableID][]*pool.Dep) {
	for _, block := range dep.Blocks {
		dead := false
		var pending []pool.SolvableID
		for _, premise := range block.Premises {
			switch {
			case sv.Decided(premise) < 0:
				dead = true
			case sv.Decided(premise) == 0:
				pending = append(pending, premise)
			}
			if dead {
				break
			}
		}
		if dead {
			continue
		}
		if len(pending) == 0 {
			for _, name := range block.Effects {
				for _, id := range sv.Pool.WhatProvides(name) {
					m[id] = true
				}
			}
			continue
		}
		for _, waitOn := range pending {
			cache[waitOn] = append(cache[waitOn], dep)
		}
	}
}

// recheckComplexDeps re-evaluates every Dep postponed on id now that id
// has been positively decided, per spec.md §4.6's "On revisit when
// decision p becomes positive, every pair with matching p is removed and
// its dep is re-fed to check_complex_dep."
func recheckComplexDeps(sv *solver.Solver, id pool.SolvableID, m map[pool.SolvableID]bool, cache map[pool.SolvableID][]*pool.Dep) {
	deps, ok := cache[id]
	if !ok {
		return
	}
	delete(cache, id)
	for _, dep := range deps {
		checkComplexDep(sv, dep, m, cache)
	}
}

// preferSuggested brings installed, suggested, or "enhancing" packages to
// the front, stably (spec.md §4.7).
func preferSuggested(sv *solver.Solver, q Queue) Queue {
	p := sv.Pool
	if sv.RecommendsIndex < len(sv.DecisionQ) {
		UpdateRecommendsMap(sv)
	}

	good := func(id pool.SolvableID) bool {
		s := p.Solvable(id)
		if p.IsInstalled(s) {
			return true
		}
		if sv.SuggestsMap[id] {
			return true
		}
		return sv.IsEnhancing != nil && sv.IsEnhancing(s)
	}
	return stablePartition(q, good)
}

// preferFavored stable-sorts q by descending favormap value (spec.md
// §4.7, §8 "Favor-group separation").
func preferFavored(sv *solver.Solver, q Queue) {
	if sv.FavorMap == nil || len(q) <= 1 {
		return
	}
	favor := func(id pool.SolvableID) int32 { return sv.FavorMap[id] }
	stableSortDesc(q, favor)
}

// pruneToRecommended keeps installed elements, elements marked recommended,
// and elements the solver's "supplementing" predicate fires on (spec.md
// §4.9). It is a no-op when fewer than two non-installed elements remain.
func pruneToRecommended(sv *solver.Solver, q Queue) Queue {
	p := sv.Pool
	ninst := 0
	if p.Installed != nil {
		for _, id := range q {
			if p.IsInstalled(p.Solvable(id)) {
				ninst++
			}
		}
	}
	if len(q)-ninst < 2 {
		return q
	}

	if sv.RecommendsIndex < len(sv.DecisionQ) {
		UpdateRecommendsMap(sv)
	}

	j := 0
	ninst = 0
	for i, id := range q {
		s := p.Solvable(id)
		if p.IsInstalled(s) {
			ninst++
			if j > 0 {
				q[j] = id
				j++
			}
			continue
		}
		if !sv.RecommendsMap[id] && !(sv.IsSupplementing != nil && sv.IsSupplementing(s)) {
			continue
		}
		if j == 0 && ninst > 0 {
			for k := 0; k < i && j < ninst; k++ {
				s2 := p.Solvable(q[k])
				if p.IsInstalled(s2) {
					q[j] = q[k]
					j++
				}
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
