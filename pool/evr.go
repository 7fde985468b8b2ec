package pool

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver"
)

// EVRCmpMode selects between libsolv's EVRCMP_COMPARE (strict) and
// EVRCMP_MATCH_RELEASE (release-segment-optional) comparators, used by
// prune_to_best_version (strict) and sort_by_name_evr_sortcmp
// (release-optional) respectively, per spec.md §4.4 and §4.7.
type EVRCmpMode int

const (
	// EVRCompare is the strict epoch/version/release comparator.
	EVRCompare EVRCmpMode = iota
	// EVRMatchRelease treats a missing release segment on either side as
	// "don't care", per original_source's sort_by_name_evr_sortcmp.
	EVRMatchRelease
)

// EVRCmp compares two interned EVR strings, returning <0, 0 or >0 the way
// strcmp-family comparators do. This is the concrete default for the EVR
// comparison spec.md places out of scope as an external collaborator: any
// caller needing a different ordering (e.g. a distro with its own epoch
// rules) supplies its own by wrapping Pool.EVRCmpFunc instead.
func (p *Pool) EVRCmp(a, b ID, mode EVRCmpMode) int {
	if p.EVRCmpFunc != nil {
		return p.EVRCmpFunc(p.EVRString(a), p.EVRString(b), mode)
	}
	return CompareEVR(p.EVRString(a), p.EVRString(b), mode)
}

// CompareEVR implements the default epoch:version-release ordering. It
// splits both sides into epoch, version and release, compares the epochs
// numerically, then compares the versions and then the releases with
// compareVersionString (semver when both segments parse as one, rpm-style
// segment-wise comparison otherwise).
func CompareEVR(a, b string, mode EVRCmpMode) int {
	if a == b {
		return 0
	}
	ea, va, ra := splitEVR(a)
	eb, vb, rb := splitEVR(b)

	if ea != eb {
		if ea < eb {
			return -1
		}
		return 1
	}

	if r := compareVersionString(va, vb); r != 0 {
		return r
	}

	if mode == EVRMatchRelease && (ra == "" || rb == "") {
		return 0
	}
	return compareVersionString(ra, rb)
}

// splitEVR splits "epoch:version-release" into its three parts. Epoch
// defaults to 0 when absent; release defaults to "" when absent.
func splitEVR(evr string) (epoch int, version, release string) {
	rest := evr
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		if n, err := strconv.Atoi(rest[:i]); err == nil {
			epoch = n
		}
		rest = rest[i+1:]
	}
	if i := strings.LastIndexByte(rest, '-'); i >= 0 {
		return epoch, rest[:i], rest[i+1:]
	}
	return epoch, rest, ""
}

// compareVersionString compares two version/release segments. It first
// tries semver (covers the "1.2.3" / "v1.2.3" shape cleanly, including
// prerelease ordering), then falls back to a segment-wise rpm-style
// comparator for everything else (plain integers, dotted integers
// without three components, alpha segments, etc).
func compareVersionString(a, b string) int {
	if a == b {
		return 0
	}
	if va, errA := semver.NewVersion(a); errA == nil {
		if vb, errB := semver.NewVersion(b); errB == nil {
			return va.Compare(vb)
		}
	}
	return compareRPMStyle(a, b)
}

// compareRPMStyle walks both strings comparing alternating runs of digits
// and non-digits, the traditional rpm/dpkg version-compare algorithm:
// numeric runs compare numerically, alpha runs compare byte-wise, and a
// numeric run always outranks a missing one.
func compareRPMStyle(a, b string) int {
	for len(a) > 0 || len(b) > 0 {
		// skip non-alnum separators on both sides in lockstep
		a = strings.TrimLeft(a, ".+~_")
		b = strings.TrimLeft(b, ".+~_")

		if len(a) == 0 || len(b) == 0 {
			break
		}

		aDigit := isDigit(a[0])
		bDigit := isDigit(b[0])

		if aDigit != bDigit {
			// a numeric segment always beats an alpha one
			if aDigit {
				return 1
			}
			return -1
		}

		var aSeg, bSeg string
		if aDigit {
			aSeg, a = takeWhile(a, isDigit)
			bSeg, b = takeWhile(b, isDigit)
			aSeg = strings.TrimLeft(aSeg, "0")
			bSeg = strings.TrimLeft(bSeg, "0")
			if len(aSeg) != len(bSeg) {
				if len(aSeg) < len(bSeg) {
					return -1
				}
				return 1
			}
		} else {
			aSeg, a = takeWhile(a, func(c byte) bool { return !isDigit(c) && c != '.' && c != '+' && c != '~' && c != '_' })
			bSeg, b = takeWhile(b, func(c byte) bool { return !isDigit(c) && c != '.' && c != '+' && c != '~' && c != '_' })
		}
		if aSeg != bSeg {
			if aSeg < bSeg {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return -1
	default:
		return 1
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func takeWhile(s string, pred func(byte) bool) (taken, rest string) {
	i := 0
	for i < len(s) && pred(s[i]) {
		i++
	}
	return s[:i], s[i:]
}
