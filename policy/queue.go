// Package policy implements the SAT resolver's policy engine: the filter
// pipeline that prunes and reorders candidate queues (spec.md §4), the
// recommend/suggest map maintenance, the obsoletes SCC pass, update
// candidate enumeration, and the legality predicates. It is a pure
// function of a pool.Pool and a solver.Solver's current decision state —
// no I/O, no persistent state, no concurrency (spec.md §5).
package policy

import "github.com/baszalmstra/libsolv/pool"

// Queue is the mutable ordered sequence of solvable IDs the pruners and
// reorderers operate on. The exported filter entry points
// (PolicyFilterUnwanted, PoolBestSolvables) take a Queue and return the
// filtered/reordered Queue; pruners never add or
// duplicate an element (spec.md §3 invariants: "Filters are monotonic in
// queue length").
type Queue []pool.SolvableID

// clone returns an independent copy of q. filterByFavorGroups uses it to
// pad each favor group without aliasing the higher-or-equal prefix.
func (q Queue) clone() Queue {
	out := make(Queue, len(q))
	copy(out, q)
	return out
}
