package policy

import (
	"sort"

	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/solver"
	"github.com/baszalmstra/libsolv/tracelog"
)

// FilterMode selects one of policy_filter_unwanted's five behaviors
// (spec.md §4.8).
type FilterMode int

const (
	ModeChoose FilterMode = iota
	ModeChooseNoReorder
	ModeRecommend
	ModeSuggest
	ModeSupplement
)

// FilterFlags is a bitmask of mode modifiers.
type FilterFlags int

const (
	// FlagFavorRec marks a recursive favor-group call (spec.md §4.8): the
	// caller has already partitioned q into one favor group padded with
	// higher-or-equal groups, so the top-level favor-group recursion
	// itself must not re-trigger.
	FlagFavorRec FilterFlags = 1 << iota
)

// PolicyFilterUnwanted is policy_filter_unwanted: the top-level prune and
// reorder dispatch (spec.md §4.8). It mutates and returns q.
func PolicyFilterUnwanted(sv *solver.Solver, q Queue, mode FilterMode, flags FilterFlags) Queue {
	p := sv.Pool
	if len(q) == 0 {
		return q
	}
	sv.Log.Logf(tracelog.LevelPolicy, "policy_filter_unwanted: mode %d, %d candidates\n", mode, len(q))

	if flags&FlagFavorRec == 0 && sv.FavorMap != nil {
		if grouped, ok := filterByFavorGroups(sv, q, mode); ok {
			return grouped
		}
	}

	if mode == ModeSupplement {
		return supplementReorder(sv, q, false)
	}

	if mode == ModeSuggest {
		q = solverPruneToHighestPrioPerName(sv, q)
	} else {
		q = solverPruneToHighestPrio(sv, q)
	}

	q = pruneToBestArch(p, q)
	q = pruneToBestVersion(p, q)

	if mode == ModeChoose || mode == ModeChooseNoReorder {
		q = pruneToRecommended(sv, q)
	}

	if mode == ModeChoose {
		q = supplementReorder(sv, q, true)
	}

	return q
}

// supplementReorder is the reorder chain shared by SUPPLEMENT mode and
// the tail of CHOOSE mode (spec.md §4.8): dislike-old, common-dep,
// (CHOOSE only) move-installed-to-front, optional urpm locale heuristic,
// prefer-suggested, prefer-favored. moveFront is false for SUPPLEMENT:
// policy_filter_unwanted's SUPPLEMENT branch never calls
// move_installed_to_front, only CHOOSE's fancy-reordering block does, and
// there it runs between sort_by_common_dep and urpm_reorder.
func supplementReorder(sv *solver.Solver, q Queue, moveFront bool) Queue {
	p := sv.Pool
	if len(q) > 1 {
		q = dislikeOldVersions(p, q)
		q = sortByCommonDep(p, q)
		if moveFront {
			q = moveInstalledToFront(p, q)
		}
		if sv.URPMReorder {
			q = urpmReorder(sv, q)
		}
	}
	q = preferSuggested(sv, q)
	preferFavored(sv, q)
	return q
}

// filterByFavorGroups implements the favor-group recursion (spec.md
// §4.8): when q spans more than one distinct favor value, group by favor
// descending and recursively filter each group padded with every
// higher-or-equal-favor element, keeping only the elements whose favor
// equals that group's. Returns ok=false when q is a single favor group
// (so the caller proceeds with the ungrouped pipeline).
func filterByFavorGroups(sv *solver.Solver, q Queue, mode FilterMode) (Queue, bool) {
	favor := sv.FavorMap
	first := favor[q[0]]
	uniform := true
	for _, id := range q[1:] {
		if favor[id] != first {
			uniform = false
			break
		}
	}
	if uniform {
		return q, false
	}

	groupOf := make(map[int32]Queue)
	var values []int32
	for _, id := range q {
		v := favor[id]
		if _, ok := groupOf[v]; !ok {
			values = append(values, v)
		}
		groupOf[v] = append(groupOf[v], id)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] > values[j] })

	var out Queue
	var higherOrEqual Queue
	for _, v := range values {
		members := groupOf[v]
		padded := higherOrEqual.clone()
		padded = append(padded, members...)
		filtered := PolicyFilterUnwanted(sv, padded, mode, FlagFavorRec)
		for _, id := range filtered {
			if favor[id] == v {
				out = append(out, id)
			}
		}
		higherOrEqual = append(higherOrEqual, members...)
	}
	return out, true
}

// PoolBestSolvables is pool_best_solvables: the solver-free variant of
// the filter pipeline (spec.md §6), applying priority -> arch ->
// best-version -> (dislike-old, common-dep, installed-front). It needs
// no decision state, so it is a pool.Pool function rather than taking a
// solver.Solver.
func PoolBestSolvables(p *pool.Pool, q Queue) Queue {
	if len(q) == 0 {
		return q
	}
	q = pruneToHighestPrio(p, q)
	q = pruneToBestArch(p, q)
	q = pruneToBestVersion(p, q)
	if len(q) > 1 {
		q = dislikeOldVersions(p, q)
		q = sortByCommonDep(p, q)
	}
	q = moveInstalledToFront(p, q)
	return q
}
