package policy

import (
	"testing"

	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/solver"
)

func TestPoolBestSolvablesPriorityAndVersion(t *testing.T) {
	p, installed, repoA, repoB := newTestPool()
	a := addFoo(p, repoA, "2.0")
	_ = addFoo(p, repoB, "2.1")
	i := addFoo(p, installed, "1.0")

	q := Queue{a, i}
	got := PoolBestSolvables(p, q)
	if len(got) != 1 || got[0] != a {
		t.Fatalf("PoolBestSolvables = %v, want [A/foo-2.0]", got)
	}
}

func TestPolicyFilterUnwantedChooseMovesInstalledToFront(t *testing.T) {
	// Distinct names so neither prune_to_best_version nor the priority
	// pruner collapses the two to one survivor before the reorder tail
	// runs; only then does move_installed_to_front have anything to do.
	p, installed, repoA, _ := newTestPool()

	notInstalled := p.AddSolvable(pool.Solvable{Name: p.InternName("zzz"), EVR: p.InternEVR("1.0"), Repo: repoA})
	inst := p.AddSolvable(pool.Solvable{Name: p.InternName("aaa"), EVR: p.InternEVR("1.0"), Repo: installed})

	sv := solver.New(p)
	q := Queue{notInstalled, inst}
	got := PolicyFilterUnwanted(sv, q, ModeChoose, 0)
	if len(got) != 2 || got[0] != inst {
		t.Fatalf("PolicyFilterUnwanted(ModeChoose) = %v, want installed element first", got)
	}
}

// TestPolicyFilterUnwantedChooseFavoredBeatsInstalled covers the ordering
// bug fixed in policy_filter_unwanted's CHOOSE branch: move_installed_to_front
// must run before prefer_suggested/policy_prefer_favored, not after, so that
// an explicitly favored non-installed element keeps its lead rather than
// being shoved behind an unfavored installed sibling at the very end.
// FlagFavorRec skips the favor-group split, which would otherwise put the
// favored element first on its own, so the reorder chain alone decides.
func TestPolicyFilterUnwantedChooseFavoredBeatsInstalled(t *testing.T) {
	p, installed, repoA, _ := newTestPool()

	favored := p.AddSolvable(pool.Solvable{Name: p.InternName("zzz"), EVR: p.InternEVR("1.0"), Repo: repoA})
	inst := p.AddSolvable(pool.Solvable{Name: p.InternName("aaa"), EVR: p.InternEVR("1.0"), Repo: installed})

	sv := solver.New(p)
	sv.FavorMap = map[pool.SolvableID]int32{favored: 10, inst: 0}

	q := Queue{inst, favored}
	got := PolicyFilterUnwanted(sv, q, ModeChoose, FlagFavorRec)
	if len(got) != 2 || got[0] != favored {
		t.Fatalf("PolicyFilterUnwanted(ModeChoose) = %v, want favored element first despite unfavored installed sibling", got)
	}
}

func TestFilterByFavorGroupsSplitsByValue(t *testing.T) {
	p, _, repoA, _ := newTestPool()

	low := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.0"), Repo: repoA})
	high := p.AddSolvable(pool.Solvable{Name: p.InternName("bar"), EVR: p.InternEVR("1.0"), Repo: repoA})

	sv := solver.New(p)
	sv.FavorMap = map[pool.SolvableID]int32{low: 1, high: 5}

	q := Queue{low, high}
	got, ok := filterByFavorGroups(sv, q, ModeChoose)
	if !ok {
		t.Fatal("filterByFavorGroups returned ok=false for a non-uniform favor set")
	}
	if len(got) != 2 || got[0] != high || got[1] != low {
		t.Fatalf("filterByFavorGroups = %v, want higher-favor element first", got)
	}
}

func TestFilterByFavorGroupsUniformIsNoop(t *testing.T) {
	p, _, repoA, _ := newTestPool()

	a := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.0"), Repo: repoA})
	b := p.AddSolvable(pool.Solvable{Name: p.InternName("bar"), EVR: p.InternEVR("1.0"), Repo: repoA})

	sv := solver.New(p)
	sv.FavorMap = map[pool.SolvableID]int32{a: 3, b: 3}

	q := Queue{a, b}
	_, ok := filterByFavorGroups(sv, q, ModeChoose)
	if ok {
		t.Fatal("filterByFavorGroups returned ok=true for a uniform favor set")
	}
}
