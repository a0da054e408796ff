// Package binsearch turns any O(1)-rank engine into select via binary
// search over its monotone rank function, at O(log n) per query.
package binsearch

// RankEngine is the minimal surface a rank index must expose to gain
// select support through binary search.
type RankEngine interface {
	// Rank1 returns the number of 1 bits in [0, i), exclusive of i.
	Rank1(i uint64) uint64
	// Rank0 returns the number of 0 bits in [0, i), exclusive of i.
	Rank0(i uint64) uint64
	// Limit returns the number of bits in the underlying sequence.
	Limit() uint64
	// NumOnes returns the total number of set bits.
	NumOnes() uint64
	// NumZeros returns the total number of unset bits.
	NumZeros() uint64
}

// Select1 returns the position of the k'th set bit (0-indexed), or
// false if the sequence has k or fewer set bits.
//
// The search looks for the smallest d with rank1(d+1) >= k+1, i.e. the
// smallest d whose inclusive count of 1 bits through d reaches k+1. Rank1
// itself is exclusive of its argument and most engines panic when asked
// for rank at the full Limit(), so the one case that would otherwise need
// Rank1(Limit()) is answered from NumOnes() instead.
func Select1[R RankEngine](r R, k uint64) (uint64, bool) {
	n := r.Limit()
	inclusiveRank := func(d uint64) uint64 {
		if d == n-1 {
			return r.NumOnes()
		}
		return r.Rank1(d + 1)
	}
	return binarySearchFunction(0, n, k+1, inclusiveRank)
}

// Select0 returns the position of the k'th unset bit (0-indexed), or
// false if the sequence has k or fewer unset bits. See Select1 for how
// the exclusive Rank0 contract is adapted to the search.
func Select0[R RankEngine](r R, k uint64) (uint64, bool) {
	n := r.Limit()
	inclusiveRank := func(d uint64) uint64 {
		if d == n-1 {
			return r.NumZeros()
		}
		return r.Rank0(d + 1)
	}
	return binarySearchFunction(0, n, k+1, inclusiveRank)
}

// binarySearchFunction finds the smallest d in [start, limit) such that
// f(d) >= value, given f is non-decreasing over that range. It reports
// false if no such d exists.
func binarySearchFunction(start, limit, value uint64, f func(uint64) uint64) (uint64, bool) {
	lo, hi := start, limit
	for lo < hi {
		mid := average(lo, hi)
		if f(mid) >= value {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo < limit {
		return lo, true
	}
	return 0, false
}

// average computes (x+y)/2 without the overflow a naive (x+y)/2 would
// hit near the top of the uint64 range.
func average(x, y uint64) uint64 {
	return (x >> 1) + (y >> 1) + (((x & 1) + (y & 1)) >> 1)
}
