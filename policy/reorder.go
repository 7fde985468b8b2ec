package policy

import (
	"sort"
	"strings"

	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/solver"
)

// stablePartition moves every element satisfying keep to the front,
// preserving relative order on both sides — the shape shared by
// move_installed_to_front and prefer_suggested in the original (spec.md
// §4.7: "Stable-reorder: every reorderer is a permutation of its input").
func stablePartition(q Queue, keep func(pool.SolvableID) bool) Queue {
	out := make(Queue, 0, len(q))
	var rest Queue
	for _, id := range q {
		if keep(id) {
			out = append(out, id)
		} else {
			rest = append(rest, id)
		}
	}
	out = append(out, rest...)
	copy(q, out)
	return q
}

// stableSortDesc stably sorts q by descending key(id).
func stableSortDesc(q Queue, key func(pool.SolvableID) int32) {
	sort.SliceStable(q, func(i, j int) bool { return key(q[i]) > key(q[j]) })
}

// dislikeOldVersions moves a non-installed element to the back when
// another element in the queue shares its name and arch, has strictly
// higher repo priority (or equal priority and a higher EVR), per spec.md
// §4.7.
func dislikeOldVersions(p *pool.Pool, q Queue) Queue {
	count := len(q)
	for i := 0; i < count; i++ {
		id := q[i]
		s := p.Solvable(id)
		if s.Repo == nil || p.IsInstalled(s) {
			continue
		}
		bad := false
		for _, other := range q {
			if other == id {
				continue
			}
			qs := p.Solvable(other)
			if qs.Name != s.Name || qs.Arch != s.Arch {
				continue
			}
			if s.Repo.Priority != qs.Repo.Priority {
				if s.Repo.Priority > qs.Repo.Priority {
					continue
				}
				bad = true
				break
			}
			if p.EVRCmp(qs.EVR, s.EVR, pool.EVRCompare) > 0 {
				bad = true
				break
			}
		}
		if !bad {
			continue
		}
		copy(q[i:count-1], q[i+1:count])
		q[count-1] = id
		i--
		count--
	}
	return q
}

// isHashLike reports whether s looks like a hash suffix (>=4 chars, all
// [0-9a-f]) — sort_by_common_dep ignores REL_EQ provides with such an EVR
// (spec.md §4.7).
func isHashLike(s string) bool {
	if len(s) < 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

type commonDepEntry struct {
	elemIdx int
	name    pool.ID
	evr     pool.ID
}

// sortByCommonDep reorders q by ascending "badness": how often an
// element's provided EVR is older than another element's for the same
// dep-name (spec.md §4.7). Installed packages are forced to badness 0.
//
// The pool's Provides entries carry no relation operator or compound EVR
// of their own (spec.md places the reldep table's "=" / "<" / "<="
// encoding out of scope; Solvable.Provides in pool/types.go is a list of
// bare name IDs): a provides
// name is implicitly a self-provide at the solvable's own EVR, the same
// simplification bare RPM "Provides: foo" (no version clause) resolves
// to. condaCompareDependencies (policy/conda.go) is the one comparator
// that still needs true per-name relational grouping, which is why
// Pool.InternRelDep/RelName exist for Requires; Provides here only ever
// needs the provider's own EVR.
func sortByCommonDep(p *pool.Pool, q Queue) Queue {
	count := len(q)
	var entries []commonDepEntry
	for i, id := range q {
		s := p.Solvable(id)
		if isHashLike(p.EVRString(s.EVR)) {
			continue
		}
		for _, name := range s.Provides {
			entries = append(entries, commonDepEntry{elemIdx: i, name: name, evr: s.EVR})
		}
	}
	return sortByNameEVRArray(p, q, count, entries)
}

// sortByNameEVRArray is the common tail of sort_by_common_dep: sort the
// (elemIdx, name, evr) triples, accumulate a badness count per element
// whenever it is strictly older than a neighbor sharing the same name,
// then stably insertion-sort the original count-length queue by ascending
// badness (spec.md §4.7, §9's open question about duplicate IDs — this
// implementation assumes distinct elements, as the invariant requires).
func sortByNameEVRArray(p *pool.Pool, q Queue, count int, entries []commonDepEntry) Queue {
	if len(entries) < 2 {
		return q
	}
	sort.Slice(entries, func(i, j int) bool {
		return nameEVRLess(p, entries[i], entries[j])
	})

	badness := make([]int, count)
	var lastName pool.ID
	bad := 0
	for i := range entries {
		e := &entries[i]
		if lastName != 0 && e.name == lastName {
			if i > 0 && entries[i-1].elemIdx != e.elemIdx && nameEVRLess(p, entries[i-1], *e) {
				bad++
			}
		} else {
			bad = 0
			lastName = e.name
		}
		badness[e.elemIdx] += bad
	}

	if p.Installed != nil {
		for i, id := range q {
			if p.IsInstalled(p.Solvable(id)) {
				badness[i] = 0
			}
		}
	}

	// stable insertion sort of q by badness
	for i := 1; i < count; i++ {
		for j := i; j > 0 && badness[j-1] > badness[j]; j-- {
			badness[j-1], badness[j] = badness[j], badness[j-1]
			q[j-1], q[j] = q[j], q[j-1]
		}
	}
	return q[:count]
}

// nameEVRLess orders two commonDepEntry pairs by name, then by descending
// EVR (newer first — mirrors sort_by_name_evr_sortcmp's
// `pool_evrcmp(pool, b, a, ...)`).
func nameEVRLess(p *pool.Pool, a, b commonDepEntry) bool {
	if a.name != b.name {
		return p.Name(a.name) < p.Name(b.name)
	}
	if a.evr == b.evr {
		return false
	}
	return p.EVRCmp(b.evr, a.evr, pool.EVRMatchRelease) < 0
}

// moveInstalledToFront brings to the front every element that either is
// installed, or whose name has an installed provider (spec.md §4.7).
func moveInstalledToFront(p *pool.Pool, q Queue) Queue {
	if p.Installed == nil {
		return q
	}
	installed := func(id pool.SolvableID) bool {
		s := p.Solvable(id)
		if p.IsInstalled(s) {
			return true
		}
		for _, other := range p.WhatProvides(s.Name) {
			os := p.Solvable(other)
			if os.Name == s.Name && p.IsInstalled(os) {
				return true
			}
		}
		return false
	}
	return stablePartition(q, installed)
}

// urpmReorder is the urpm locale heuristic (spec.md §4.7): a per-element
// score in {0..4}, stable-sorted descending.
func urpmReorder(sv *solver.Solver, q Queue) Queue {
	p := sv.Pool
	scores := make([]int, len(q))
	for i, id := range q {
		scores[i] = urpmScore(sv, p.Solvable(id))
	}
	idx := make([]int, len(q))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	out := make(Queue, len(q))
	for i, k := range idx {
		out[i] = q[k]
	}
	copy(q, out)
	return q
}

// kernelVariantName extracts the base "kernel"-family name a package name
// is a variant of: "kernel-<variant>" collapses to "kernel", and
// "<foo>-kernel-<ver>-<flavor>-<rel>" collapses to "<foo>-kernel". Both
// shapes let a -devel/-debuginfo/-headers companion package find its
// matching kernel solvable by name.
func kernelVariantName(name string) (string, bool) {
	if strings.HasPrefix(name, "kernel-") {
		return "kernel", true
	}
	if idx := strings.Index(name, "-kernel-"); idx >= 0 {
		return name[:idx+len("-kernel")], true
	}
	return "", false
}

func urpmScore(sv *solver.Solver, s *pool.Solvable) int {
	p := sv.Pool
	name := p.Name(s.Name)

	if base, ok := kernelVariantName(name); ok {
		if knID, ok := p.LookupName(base); ok {
			return kernelSiblingScore(sv, knID)
		}
		return 1
	}

	for _, dep := range s.Requires {
		depName := p.Name(p.RelName(dep))
		i := strings.Index(depName, "locales-")
		if i < 0 {
			continue
		}
		suffix := depName[i+len("locales-"):]
		if strings.HasPrefix(suffix, "en") {
			return 2
		}
		return nonEnglishLocaleScore(sv, p.RelName(dep))
	}
	return 1
}

func kernelSiblingScore(sv *solver.Solver, name pool.ID) int {
	p := sv.Pool
	score := 1
	for _, id := range p.WhatProvides(name) {
		if sv.Decided(id) > 0 {
			return 4
		}
		if p.IsInstalled(p.Solvable(id)) {
			score = 3
		}
	}
	return score
}

func nonEnglishLocaleScore(sv *solver.Solver, name pool.ID) int {
	p := sv.Pool
	score := 0
	for _, id := range p.WhatProvides(name) {
		if sv.Decided(id) > 0 {
			return 4
		}
		if p.IsInstalled(p.Solvable(id)) {
			score = 3
		}
	}
	return score
}
