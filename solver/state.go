// Package solver holds the mutable state the policy engine reads and, in
// the case of the recommends/suggests caches, incrementally updates
// (spec.md §3, §5). The SAT core proper — clause database, unit
// propagation, learning, backtracking — is an external collaborator; this
// package only models the slice of its state the policy engine touches:
// the decision map/queue, dup-involvement, favor groups, and the
// recommend/suggest caches.
package solver

import (
	"github.com/baszalmstra/libsolv/pool"
	"github.com/baszalmstra/libsolv/tracelog"
)

// PolicyFlags are the per-mode legality knobs spec.md §3 lists under
// "Policy flags (per normal / per dup)".
type PolicyFlags struct {
	AllowDowngrade    bool
	AllowNameChange   bool
	AllowArchChange   bool
	AllowVendorChange bool
}

// pendingComplex is one postponed complex-dependency block, keyed by the
// still-undecided solvable it is waiting on. Caching by a map from
// waiting-on ID to its pending entries is the hash-map alternative
// spec.md's Design Notes explicitly sanctions in place of the original
// 256-word bit hash ("the observable behavior is identical provided
// rebuild-on-firing is preserved").
type pendingComplex struct {
	waitingOn pool.SolvableID
	dep       *pool.Dep
}

// Solver is the slice of SAT-solver state the policy engine consumes and
// mutates, per spec.md §3.
type Solver struct {
	Pool *pool.Pool

	// DecisionMap is indexed by solvable ID; sign = polarity (positive =
	// chosen, negative = rejected, zero = undecided), magnitude = level.
	DecisionMap []int32

	// DecisionQ is the decision history in order: a positive entry p
	// means solvable p was decided true at that point.
	DecisionQ []int32

	DupInvolvedAll bool
	DupInvolved    map[pool.SolvableID]bool

	// FavorMap is nil when no favor groups are configured.
	FavorMap map[pool.SolvableID]int32

	// Obsoletes is the reverse-obsoletes index built by
	// policy.PolicyCreateObsoleteIndex (spec.md §4.12): for each installed
	// solvable, the differently-named solvables that obsolete it.
	Obsoletes map[pool.SolvableID][]pool.SolvableID

	RecommendsMap map[pool.SolvableID]bool
	SuggestsMap   map[pool.SolvableID]bool

	// RecommendsIndex is the cursor into DecisionQ already folded into
	// RecommendsMap/SuggestsMap. A negative value means "invalidate and
	// rebuild from scratch".
	RecommendsIndex int

	// RecommendsCplx/SuggestsCplx are the postponed complex-dependency
	// caches, keyed by the still-undecided solvable a block is waiting
	// on (the hash-map alternative to the original's 256-word bit hash
	// that spec.md's Design Notes explicitly sanctions).
	RecommendsCplx map[pool.SolvableID][]*pool.Dep
	SuggestsCplx   map[pool.SolvableID][]*pool.Dep

	Flags    PolicyFlags
	DupFlags PolicyFlags

	NoUpdateProvide   bool
	NeedUpdateProvide bool
	URPMReorder       bool

	// IsEnhancing/IsSupplementing are the external solver predicates
	// spec.md §4.7/§4.9 reference ("an external solver predicate",
	// "the solver's 'supplementing' predicate"); nil means "never".
	IsEnhancing     func(s *pool.Solvable) bool
	IsSupplementing func(s *pool.Solvable) bool

	Log *tracelog.Logger
}

// New creates a Solver over p with an empty decision state.
func New(p *pool.Pool) *Solver {
	return &Solver{
		Pool:          p,
		DecisionMap:   make([]int32, len(p.Solvables)),
		RecommendsMap:  make(map[pool.SolvableID]bool),
		SuggestsMap:    make(map[pool.SolvableID]bool),
		RecommendsCplx: make(map[pool.SolvableID][]*pool.Dep),
		SuggestsCplx:   make(map[pool.SolvableID][]*pool.Dep),
		Obsoletes:      make(map[pool.SolvableID][]pool.SolvableID),
		Log:            tracelog.New(nil, 0),
	}
}

// ResetComplexCaches drops both postponed complex-dependency caches,
// called when RecommendsIndex goes negative (spec.md §4.6).
func (s *Solver) ResetComplexCaches() {
	s.RecommendsCplx = make(map[pool.SolvableID][]*pool.Dep)
	s.SuggestsCplx = make(map[pool.SolvableID][]*pool.Dep)
}

// IsDupInvolved reports whether s participates in the current dup
// operation, folding together DupInvolvedAll and the per-solvable map the
// way every call site in policy.c does:
// `solv->dupinvolvedmap_all || (solv->dupinvolvedmap.size && MAPTST(...))`.
func (s *Solver) IsDupInvolved(id pool.SolvableID) bool {
	if s.DupInvolvedAll {
		return true
	}
	return s.DupInvolved != nil && s.DupInvolved[id]
}

// EffectiveFlags returns the policy flags that apply to installed
// solvable id: the dup variant when it's dup-involved, the normal one
// otherwise.
func (s *Solver) EffectiveFlags(id pool.SolvableID) PolicyFlags {
	if s.IsDupInvolved(id) {
		return s.DupFlags
	}
	return s.Flags
}

// Decided reports the decision polarity of a solvable: >0 positively
// decided, <0 rejected, 0 undecided.
func (s *Solver) Decided(id pool.SolvableID) int32 {
	if int(id) >= len(s.DecisionMap) {
		return 0
	}
	return s.DecisionMap[id]
}
