package policy

import (
	"testing"

	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/solver"
)

// The six end-to-end scenarios from spec.md §8, using its own canonical
// setup: EVR order 1.0 < 2.0 < 2.1, one installed repo I, two regular
// repos A (priority 20) and B (priority 10).

func newTestPool() (*pool.Pool, *pool.Repo, *pool.Repo, *pool.Repo) {
	p := pool.NewPool()
	installed := &pool.Repo{Name: "I", Installed: true}
	repoA := &pool.Repo{Name: "A", Priority: 20}
	repoB := &pool.Repo{Name: "B", Priority: 10}
	p.Installed = installed
	return p, installed, repoA, repoB
}

func addFoo(p *pool.Pool, repo *pool.Repo, evr string) pool.SolvableID {
	return p.AddSolvable(pool.Solvable{
		Name: p.InternName("foo"),
		EVR:  p.InternEVR(evr),
		Repo: repo,
	})
}

func TestScenario1PriorityPrune(t *testing.T) {
	p, installed, repoA, repoB := newTestPool()
	a := addFoo(p, repoA, "2.0")
	b := addFoo(p, repoB, "2.1")
	i := addFoo(p, installed, "1.0")

	q := Queue{a, b, i}
	q = pruneToHighestPrio(p, q)
	if len(q) != 2 || q[0] != a || q[1] != i {
		t.Fatalf("prune_to_highest_prio = %v, want [A/foo-2.0, I/foo-1.0]", q)
	}

	q = pruneToBestVersion(p, q)
	if len(q) != 1 || q[0] != a {
		t.Fatalf("prune_to_best_version = %v, want [A/foo-2.0]", q)
	}
}

func TestScenario2ArchClass(t *testing.T) {
	p, _, repoA, _ := newTestPool()
	p.NoarchID = p.InternArch("noarch")
	x8664 := p.InternArch("x86_64")
	i686 := p.InternArch("i686")
	p.ArchTable = map[pool.ID]uint32{
		x8664: 0x00010001,
		i686:  0x00020001,
	}

	mk := func(arch pool.ID) pool.SolvableID {
		return p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.0"), Arch: arch, Repo: repoA})
	}
	x := mk(x8664)
	ix := mk(i686)
	na := mk(p.NoarchID)

	q := Queue{x, ix, na}
	q = pruneToBestArch(p, q)
	if len(q) != 2 || q[0] != x || q[1] != na {
		t.Fatalf("prune_to_best_arch = %v, want [x86_64, noarch]", q)
	}
}

// TestScenario3ObsoletesSCC exercises the Tarjan pass on a pure 3-cycle (a
// obsoletes b, b obsoletes c, c obsoletes a, all different names). Tracing
// trj_visit (original_source/src/policy.c) directly: the whole cycle forms
// a single SCC rooted at the entry node (a), and since that SCC's low
// value equals firstidx, every member of it is marked non-negative and
// survives — the "drop everything but the entry node" outcome only
// happens for a *nested* SCC discovered deeper in the same DFS tree,
// not for one pure mutual cycle. All three therefore survive here.
func TestScenario3ObsoletesSCC(t *testing.T) {
	p, _, repoA, _ := newTestPool()

	nameA := p.InternName("a")
	nameB := p.InternName("b")
	nameC := p.InternName("c")

	aID := p.AddSolvable(pool.Solvable{Name: nameA, EVR: p.InternEVR("1"), Repo: repoA, Obsoletes: []pool.ID{nameB}})
	bID := p.AddSolvable(pool.Solvable{Name: nameB, EVR: p.InternEVR("1"), Repo: repoA, Obsoletes: []pool.ID{nameC}})
	cID := p.AddSolvable(pool.Solvable{Name: nameC, EVR: p.InternEVR("1"), Repo: repoA, Obsoletes: []pool.ID{nameA}})

	q := Queue{aID, bID, cID}
	q = pruneObsoleted(p, q)
	if len(q) != 3 {
		t.Fatalf("Tarjan obsoletes pass on a pure mutual cycle = %v, want all three to survive as one SCC", q)
	}
}

// TestScenario3ObsoletedLeafDropped covers a straight-line obsoletes edge
// with no cycle: a obsoletes b, and b has no obsoletes of its own, so
// trj_visit's "don't bother" shortcut marks b obsoleted without visiting
// it, and only a survives.
func TestScenario3ObsoletedLeafDropped(t *testing.T) {
	p, _, repoA, _ := newTestPool()

	nameA := p.InternName("a")
	nameB := p.InternName("b")

	aID := p.AddSolvable(pool.Solvable{Name: nameA, EVR: p.InternEVR("1"), Repo: repoA, Obsoletes: []pool.ID{nameB}})
	bID := p.AddSolvable(pool.Solvable{Name: nameB, EVR: p.InternEVR("1"), Repo: repoA})

	q := Queue{aID, bID}
	q = pruneObsoleted(p, q)
	if len(q) != 1 || q[0] != aID {
		t.Fatalf("a obsoletes b (no cycle back) = %v, want [a] only", q)
	}
}

func TestScenario4ComplexRecommend(t *testing.T) {
	p, _, repoA, _ := newTestPool()

	libx := p.AddSolvable(pool.Solvable{Name: p.InternName("libx"), EVR: p.InternEVR("1"), Repo: repoA})
	liby := p.AddSolvable(pool.Solvable{Name: p.InternName("liby"), EVR: p.InternEVR("1"), Repo: repoA})
	libz := p.AddSolvable(pool.Solvable{Name: p.InternName("libz"), EVR: p.InternEVR("1"), Repo: repoA})

	libyName := p.Solvable(liby).Name
	libzName := p.Solvable(libz).Name

	parent := p.AddSolvable(pool.Solvable{
		Name: p.InternName("parent"),
		EVR:  p.InternEVR("1"),
		Repo: repoA,
		Recommends: []pool.Dep{
			{
				Complex: true,
				Blocks: []pool.ComplexBlock{
					{Premises: []pool.SolvableID{libx}, Effects: []pool.ID{libyName, libzName}},
				},
			},
		},
	})

	sv := solver.New(p)
	sv.DecisionMap[parent] = 1
	sv.DecisionQ = append(sv.DecisionQ, int32(parent))
	UpdateRecommendsMap(sv)

	if sv.RecommendsMap[liby] || sv.RecommendsMap[libz] {
		t.Fatal("recommends map populated before libx was decided")
	}

	sv.DecisionMap[libx] = 2
	sv.DecisionQ = append(sv.DecisionQ, int32(libx))
	UpdateRecommendsMap(sv)

	if !sv.RecommendsMap[liby] || !sv.RecommendsMap[libz] {
		t.Fatal("recommends map not populated after libx was positively decided")
	}
}

func TestScenario5UpdateCandidatesDupMode(t *testing.T) {
	p, installed, repoA, repoB := newTestPool()

	x8664 := p.InternArch("x86_64")
	i686 := p.InternArch("i686")
	p.ArchTable = map[pool.ID]uint32{x8664: 0x00010001, i686: 0x00020001}

	installedFoo := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("2.0"), Arch: x8664, Repo: installed})
	downgrade := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("1.5"), Arch: x8664, Repo: repoA})
	archChange := p.AddSolvable(pool.Solvable{Name: p.InternName("foo"), EVR: p.InternEVR("2.0"), Arch: i686, Repo: repoB})

	sv := solver.New(p)
	sv.DupInvolvedAll = true
	sv.DupFlags = solver.PolicyFlags{AllowDowngrade: false, AllowArchChange: false}

	s := p.Solvable(installedFoo)
	got := PolicyFindUpdatePackages(sv, s, nil, AllowAllDup)
	if len(got) != 0 {
		t.Fatalf("with both dup flags false, want no candidates, got %v", got)
	}

	sv.DupFlags = solver.PolicyFlags{AllowDowngrade: true, AllowArchChange: true}
	got = PolicyFindUpdatePackages(sv, s, nil, AllowAllDup)
	if len(got) != 2 {
		t.Fatalf("with both dup flags true, want both candidates, got %v", got)
	}
	seen := map[pool.SolvableID]bool{}
	for _, id := range got {
		seen[id] = true
	}
	if !seen[downgrade] || !seen[archChange] {
		t.Fatalf("expected both %d and %d in %v", downgrade, archChange, got)
	}
}

func TestScenario6VendorMask(t *testing.T) {
	p, _, _, _ := newTestPool()
	openSUSE := p.InternVendor("OpenSUSE")
	suseLLC := p.InternVendor("SUSE LLC")
	redHat := p.InternVendor("RedHat")

	p.VendorMasks = map[pool.ID]uint32{
		openSUSE: 0b011,
		suseLLC:  0b001,
	}

	s1 := &pool.Solvable{Vendor: openSUSE}
	s2 := &pool.Solvable{Vendor: suseLLC}
	s3 := &pool.Solvable{Vendor: redHat}

	if PolicyIllegalVendorChange(p, s1, s2) {
		t.Error("OpenSUSE -> SUSE LLC should be legal (masks intersect)")
	}
	if !PolicyIllegalVendorChange(p, s1, s3) {
		t.Error("OpenSUSE -> RedHat should be illegal (masks don't intersect)")
	}
}
