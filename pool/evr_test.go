package pool

import "testing"

func TestCompareEVR(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0", "2.0", -1},
		{"2.0", "2.1", -1},
		{"2.1", "2.0", 1},
		{"2.0", "2.0", 0},
		{"1:1.0", "2:0.1", -1},
		{"1.0-1", "1.0-2", -1},
	}
	for _, c := range cases {
		got := CompareEVR(c.a, c.b, EVRCompare)
		if sign(got) != sign(c.want) {
			t.Errorf("CompareEVR(%q, %q) = %d, want sign %d", c.a, c.b, got, c.want)
		}
	}
}

func TestCompareEVRMatchRelease(t *testing.T) {
	// a missing release segment on either side is "don't care".
	if got := CompareEVR("1.0", "1.0-1", EVRMatchRelease); got != 0 {
		t.Errorf("CompareEVR(1.0, 1.0-1, MatchRelease) = %d, want 0", got)
	}
	if got := CompareEVR("1.0-1", "1.0-2", EVRCompare); got == 0 {
		t.Errorf("CompareEVR(1.0-1, 1.0-2, Compare) = 0, want nonzero")
	}
}

func TestEVRCmpFuncOverride(t *testing.T) {
	p := NewPool()
	called := false
	p.EVRCmpFunc = func(a, b string, mode EVRCmpMode) int {
		called = true
		return 0
	}
	a, b := p.InternEVR("1.0"), p.InternEVR("2.0")
	if got := p.EVRCmp(a, b, EVRCompare); got != 0 {
		t.Errorf("EVRCmp with override = %d, want 0", got)
	}
	if !called {
		t.Error("EVRCmpFunc override was never invoked")
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
