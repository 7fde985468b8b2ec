package policy

import "github.com/baszalmstra/libsolv/pool"

// pruneToBestVersion reduces q to (at most) one solvable per name — the
// highest-EVR one — then eliminates cross-name obsoletes relations among
// the survivors via the Tarjan SCC pass (spec.md §4.4). Conda pools use an
// entirely different comparator chain (spec.md §4.4.1); see conda.go.
func pruneToBestVersion(p *pool.Pool, q Queue) Queue {
	if p.DistType == pool.DistConda {
		return pruneToBestVersionConda(p, q)
	}
	if len(q) < 2 {
		return q
	}

	sortCanonical(p, q)

	out := make(Queue, 0, len(q))
	var best pool.SolvableID
	haveBest := false
	for _, id := range q {
		s := p.Solvable(id)
		if !haveBest {
			best, haveBest = id, true
			continue
		}
		bestS := p.Solvable(best)
		if bestS.Name != s.Name {
			out = append(out, best)
			best = id
			continue
		}
		if bestS.EVR != s.EVR && p.EVRCmp(bestS.EVR, s.EVR, pool.EVRCompare) < 0 {
			best = id
		}
	}
	if haveBest {
		out = append(out, best)
	}

	if len(out) > 1 {
		if len(out) == 2 {
			out = pruneObsoleted2(p, out)
		} else {
			out = pruneObsoleted(p, out)
		}
	}
	return out
}
