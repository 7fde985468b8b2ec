package policy

import "github.com/baszalmstra/libsolv/pool"

// tarjanState is the scratch state for the obsoletes SCC pass (spec.md
// §4.4, §9), grounded directly on original_source/src/policy.c's
// struct trj_data / trj_visit: arrays sized to the queue, stack indexing
// starting at 1 (0 means "unvisited"), recursion via an explicit Go call
// stack (preferred over a manual stack for depth safety, per spec.md §9 —
// Go's goroutine stacks grow dynamically so this is safe for any
// realistic obsoletes graph).
type tarjanState struct {
	p        *pool.Pool
	q        Queue
	low      []int32 // per queue-position low-link; <0 marks "already known obsoleted"
	stack    []int32 // SCC stack, holding queue positions
	nstack   int32
	firstIdx int32
	idx      int32
}

// pruneObsoleted removes entries from q that are obsoleted by other
// entries with a different name, via Tarjan's SCC algorithm restricted to
// the obsoletes relation within q (spec.md §4.4 general case, count > 2).
func pruneObsoleted(p *pool.Pool, q Queue) Queue {
	trj := &tarjanState{
		p:     p,
		q:     q,
		low:   make([]int32, len(q)),
		stack: make([]int32, len(q)+1),
		idx:   1,
	}
	for i := range q {
		if trj.low[i] != 0 {
			continue
		}
		s := p.Solvable(q[i])
		if len(s.Obsoletes) > 0 {
			trj.firstIdx = trj.idx
			trj.nstack = trj.idx
			trj.visit(int32(i))
		} else {
			myIdx := trj.idx
			trj.idx++
			trj.low[i] = myIdx
			trj.stack[myIdx] = int32(i)
		}
	}

	j := 0
	for i := range q {
		if trj.low[i] >= 0 {
			q[j] = q[i]
			j++
		}
	}
	return q[:j]
}

func (trj *tarjanState) visit(node int32) {
	p, q := trj.p, trj.q
	myIdx := trj.idx
	trj.idx++
	trj.low[node] = myIdx
	stackStart := trj.nstack
	trj.stack[trj.nstack] = node
	trj.nstack++

	s := p.Solvable(q[node])
	for _, obs := range s.Obsoletes {
		for _, prov := range p.WhatProvides(obs) {
			ps := p.Solvable(prov)
			if ps.Name == s.Name {
				continue
			}
			if !p.ObsoleteUsesProvides && !matchNEVR(p, ps, obs) {
				continue
			}
			if p.ObsoleteUsesColors && !colorMatch(p, s, ps) {
				continue
			}
			// expensive linear scan mirrors the C's "should use hash if
			// plist is big" comment verbatim.
			for i := range q {
				if int32(i) == node || q[i] != prov {
					continue
				}
				l := trj.low[i]
				if l == 0 {
					if len(ps.Obsoletes) == 0 {
						trj.idx++
						trj.low[i] = -1
						continue
					}
					trj.visit(int32(i))
					l = trj.low[i]
				}
				if l < 0 {
					continue
				}
				if l < trj.firstIdx {
					// reached a previously-closed SCC: it's obsoleted by
					// this one, re-mark every element of it.
					for k := l; ; k++ {
						if trj.low[trj.stack[k]] == l {
							trj.low[trj.stack[k]] = -1
						} else {
							break
						}
					}
				} else if l < trj.low[node] {
					trj.low[node] = l
				}
			}
		}
	}

	if trj.low[node] == myIdx {
		// found an SCC; only the one containing the first node survives.
		result := myIdx
		if myIdx != trj.firstIdx {
			result = -1
		}
		for i := stackStart; i < trj.nstack; i++ {
			trj.low[trj.stack[i]] = result
		}
		trj.nstack = stackStart
	}
}

// pruneObsoleted2 special-cases the count==2 queue: direct check both
// directions; drop the obsoleted one if exactly one direction holds
// (spec.md §4.4).
func pruneObsoleted2(p *pool.Pool, q Queue) Queue {
	obsoletesOther := [2]bool{}
	for i := 0; i < 2; i++ {
		s := p.Solvable(q[i])
		other := q[1-i]
		for _, obs := range s.Obsoletes {
			found := false
			for _, prov := range p.WhatProvides(obs) {
				if prov != other {
					continue
				}
				ps := p.Solvable(prov)
				if ps.Name == s.Name {
					continue
				}
				if !p.ObsoleteUsesProvides && !matchNEVR(p, ps, obs) {
					continue
				}
				if p.ObsoleteUsesColors && !colorMatch(p, s, ps) {
					continue
				}
				obsoletesOther[i] = true
				found = true
				break
			}
			if found {
				break
			}
		}
	}
	switch {
	case obsoletesOther[0] == obsoletesOther[1]:
		return q // both or neither: keep both
	case obsoletesOther[1]:
		q[0] = q[1]
		return q[:1]
	default:
		return q[:1]
	}
}

// matchNEVR stands in for pool_match_nevr: whether ps's own name/EVR
// satisfies the obsoletes dependency expression obs. Without a full
// dependency-relation model (out of scope, spec.md §1), a simple-name
// obsoletes is treated as always matching its providers — the provides
// index already resolved the relation, so this only needs to reject when
// ObsoleteUsesProvides is false and the candidate wasn't reached via its
// own name.
func matchNEVR(p *pool.Pool, ps *pool.Solvable, obs pool.ID) bool {
	return ps.Name == obs
}

// colorMatch stands in for pool_colormatch: whether two solvables'
// architectures are color-compatible. Without a configured color table
// every pair matches (the conservative default matching "arch table
// missing -> arch steps skipped", spec.md §7).
func colorMatch(p *pool.Pool, a, b *pool.Solvable) bool {
	if p.ArchTable == nil {
		return true
	}
	return pool.ArchClass(p.ArchScore(a.Arch)) == pool.ArchClass(p.ArchScore(b.Arch))
}
