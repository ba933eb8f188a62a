// Package geom implements the geometric kernel primitives: the float binary
// search helper, polar cut curves, and their shared scalar math. Higher-level
// packages (rack, gearcut, envelope, biarc) build on top of this package.
package geom

import "math"

// Predicate is a monotone function over floating-point values: there is a
// single transition point x* such that Predicate(x) is true for all x < x*
// and false for all x >= x* (within the search range).
type Predicate func(x float64) bool

// FloatBinarySearch returns the tightest representable bracketing pair (l, h)
// with lo <= l < h <= hi, pred(l) == true and pred(h) == false.
//
// The caller must ensure lo < hi and pred(lo) == true; behavior for a
// non-monotone pred is unspecified but the search always terminates, since
// every iteration either strictly contracts the bracket or exits.
//
// If the search range straddles zero, FloatBinarySearch evaluates pred(0) to
// decide which side holds the transition — the caller must ensure pred is
// defined at zero whenever lo < 0 < hi.
func FloatBinarySearch(lo, hi float64, pred Predicate) (float64, float64) {
	if lo >= hi {
		return lo, hi
	}

	if lo < 0 && hi > 0 {
		// The transition is in one half or the other; pred(0) tells us
		// which, and we recurse into that half alone.
		if pred(0) {
			return FloatBinarySearch(0, hi, pred)
		}
		return FloatBinarySearch(lo, 0, pred)
	}

	if hi <= 0 {
		// Mirror the non-positive range through the origin so the magnitude
		// contraction below only ever has to deal with values >= 0.
		l, h := floatBinarySearchNonNegative(-hi, -lo, func(n float64) bool { return !pred(-n) })
		return -h, -l
	}

	return floatBinarySearchNonNegative(lo, hi, pred)
}

// floatBinarySearchNonNegative handles 0 <= lo < hi, pred(lo) == true,
// pred(hi) == false.
func floatBinarySearchNonNegative(lo, hi float64, pred Predicate) (float64, float64) {
	if lo == 0 {
		// The logarithmic contraction needs a nonzero ratio to work with;
		// a zero lower bound has no order of magnitude to contract against,
		// so go straight to bisection.
		return bisect(0, hi, pred)
	}
	lo, hi = contractRatio(lo, hi, pred)
	return bisect(lo, hi, pred)
}

// contractRatio repeatedly probes hi * 0.25^(2^k), for increasing k, to bring
// lo/hi up to a ratio >= 0.25 before handing off to midpoint bisection. This
// avoids wasting bisection steps on ranges that span many orders of
// magnitude near zero: each accepted probe shrinks the remaining ratio
// quadratically rather than by a constant factor.
func contractRatio(lo, hi float64, pred Predicate) (float64, float64) {
	for lo/hi < 0.25 {
		exp := 1
		candidate := hi
		for {
			probe := hi * math.Pow(0.25, float64(exp))
			if probe <= lo || probe == candidate {
				break
			}
			candidate = probe
			exp *= 2
		}
		if candidate <= lo || candidate >= hi {
			break
		}
		if pred(candidate) {
			lo = candidate
		} else {
			hi = candidate
		}
	}
	return lo, hi
}

// bisect performs ordinary midpoint bisection until the midpoint collapses
// onto one of the endpoints (the representable floating-point limit).
func bisect(lo, hi float64, pred Predicate) (float64, float64) {
	for {
		mid := lo + (hi-lo)/2
		if mid == lo || mid == hi {
			return lo, hi
		}
		if pred(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
}
