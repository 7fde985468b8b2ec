package policy

import (
	"testing"

	"github.com/baszalmstra/libsolv/pool"
)

func TestPruneToBestVersionCondaFeatureCount(t *testing.T) {
	p, _, repoA, _ := newTestPool()

	fewer := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.0"), Repo: repoA, TrackFeatures: 1})
	more := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.0"), Repo: repoA, TrackFeatures: 2})

	q := Queue{more, fewer}
	q = pruneToBestVersionConda(p, q)
	if len(q) != 1 || q[0] != fewer {
		t.Fatalf("prune_to_best_version_conda = %v, want [fewer] (fewer track features wins)", q)
	}
}

func TestPruneToBestVersionCondaEVR(t *testing.T) {
	p, _, repoA, _ := newTestPool()

	old := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.0"), Repo: repoA})
	new_ := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("2.0"), Repo: repoA})

	q := Queue{old, new_}
	q = pruneToBestVersionConda(p, q)
	if len(q) != 1 || q[0] != new_ {
		t.Fatalf("prune_to_best_version_conda = %v, want [new] (higher EVR wins)", q)
	}
}

func TestPruneToBestVersionCondaSubpriority(t *testing.T) {
	p, _, _, _ := newTestPool()
	lowSub := &pool.Repo{Name: "lowsub", Subpriority: 1}
	highSub := &pool.Repo{Name: "highsub", Subpriority: 5}

	low := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.0"), Repo: lowSub})
	high := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.0"), Repo: highSub})

	q := Queue{low, high}
	q = pruneToBestVersionConda(p, q)
	if len(q) != 1 || q[0] != high {
		t.Fatalf("prune_to_best_version_conda = %v, want [high] (higher subpriority wins on an otherwise-tied EVR)", q)
	}
}

func TestCondaCompareDependenciesIdenticalRequiresScoreZero(t *testing.T) {
	p, _, _, _ := newTestPool()

	depPlain := p.InternRelDep("lib", "lib")
	depFeatured := p.InternRelDep("lib", "lib")

	s1 := &pool.Solvable{Requires: []pool.ID{depPlain}}
	s2 := &pool.Solvable{Requires: []pool.ID{depFeatured}}

	// condaCompareDependencies needs differing require sets to score at
	// all; with identical single-entry requires for the same name,
	// depSetsEqual short-circuits to a 0 score. This smoke-tests that
	// identical requires produce no score rather than a false nudge.
	if got := condaCompareDependencies(p, s1, s2); got != 0 {
		t.Errorf("condaCompareDependencies with identical requires = %d, want 0", got)
	}
}

func TestBuildVersionCmp(t *testing.T) {
	p, _, _, _ := newTestPool()
	a := &pool.Solvable{BuildVersion: "1"}
	b := &pool.Solvable{BuildVersion: "2"}
	if r := buildVersionCmp(p, a, b); r >= 0 {
		t.Errorf("buildVersionCmp(1, 2) = %d, want negative", r)
	}
	empty := &pool.Solvable{}
	if r := buildVersionCmp(p, empty, empty); r != 0 {
		t.Errorf("buildVersionCmp(empty, empty) = %d, want 0", r)
	}
}

func TestSortCondaDependenciesBuildTimeFallbackNeverTies(t *testing.T) {
	p, _, repoA, _ := newTestPool()
	a := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.0"), Repo: repoA, BuildTime: 100})
	b := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.0"), Repo: repoA, BuildTime: 100})

	q := Queue{a, b}
	sortCondaDependencies(p, q)
	if len(q) != 2 {
		t.Fatalf("sortCondaDependencies changed queue length: %v", q)
	}
}
