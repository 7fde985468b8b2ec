package policy

import "github.com/baszalmstra/libsolv/pool"

// pruneToBestArch keeps only elements whose architecture score shares the
// best 16-bit compatibility class (spec.md §4.3). It is skipped entirely
// when no arch table is configured or the queue has fewer than two
// elements — both defensive, not error, behaviors (spec.md §7).
func pruneToBestArch(p *pool.Pool, q Queue) Queue {
	if p.ArchTable == nil || len(q) < 2 {
		return q
	}

	var bestScore uint32
	for _, id := range q {
		score := p.ArchScore(p.Solvable(id).Arch)
		if score != 0 && score != 1 && (bestScore == 0 || score < bestScore) {
			bestScore = score
		}
	}
	if bestScore == 0 {
		return q
	}

	j := 0
	for _, id := range q {
		score := p.ArchScore(p.Solvable(id).Arch)
		if score == 0 {
			continue
		}
		if score != 1 && pool.ArchClass(score^bestScore) != 0 {
			continue
		}
		q[j] = id
		j++
	}
	if j == 0 {
		return q
	}
	return q[:j]
}
