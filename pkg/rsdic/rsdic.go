// Package rsdic implements RsDic, a compressed bitmap (Raman-Raman-Rao
// enumerative coding, as described by Navarro and Providel in "Fast,
// Small, Simple Rank/Select on Bitmaps") that answers rank in O(1)
// amortized time and select in sublinear time, using space close to the
// binary entropy of the bit sequence rather than one bit per input bit.
package rsdic

import (
	"fmt"
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitword"
	"github.com/xflash-panda/succinct/pkg/broadword"
)

// OutOfRangeError is raised by GetBit/Rank1/Rank0/BitAndRank1 when the
// queried position is past the end of the sequence (rank1/rank0 permit
// exactly one position past the end, returning the running total; see
// Rank1/Rank0).
type OutOfRangeError struct {
	Index, Limit uint64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("rsdic: index %d out of range for length %d", e.Index, e.Limit)
}

// RsDic is an immutable, built rank/select index over a compressed bit
// sequence. Construct one with Builder.
type RsDic struct {
	len     uint64
	numOnes uint64

	sbClasses   []uint8
	sbIndices   codeStream
	largeBlocks []largeBlock

	selectOneSamples  []selectSample
	selectZeroSamples []selectSample
	selectStride      uint64
}

// Len returns the number of bits in the sequence.
func (r *RsDic) Len() uint64 { return r.len }

// Limit is an alias for Len, satisfying the same RankEngine surface
// Rank9 and JacobsonRank expose.
func (r *RsDic) Limit() uint64 { return r.len }

// NumOnes returns the total number of set bits.
func (r *RsDic) NumOnes() uint64 { return r.numOnes }

// NumZeros returns the total number of unset bits.
func (r *RsDic) NumZeros() uint64 { return r.len - r.numOnes }

// scanTo locates the small block containing position i and decodes it,
// returning the rank immediately before that block, the block's
// decoded 64-bit pattern, and i's bit offset within it.
func (r *RsDic) scanTo(i uint64) (rankBefore uint64, pattern uint64, bitOffset int) {
	largeIdx := i / largeBlockBits
	lb := r.largeBlocks[largeIdx]

	sbStart := largeIdx * smallBlocksPerLarge
	sbTarget := i / smallBlockBits
	bitOffset = int(i % smallBlockBits)

	rank := lb.rank
	offset := lb.codeOffset
	for sb := sbStart; sb < sbTarget; sb++ {
		c := r.sbClasses[sb]
		rank += uint64(c)
		offset += uint64(enumCodeLength[c])
	}

	class := int(r.sbClasses[sbTarget])
	length := int(enumCodeLength[class])
	code := r.sbIndices.GetBits(offset, length)
	pattern = decode(code, class)

	return rank, pattern, bitOffset
}

// GetBit returns the bit at position i, 0 <= i < Len().
func (r *RsDic) GetBit(i uint64) bool {
	if i >= r.len {
		panic(&OutOfRangeError{Index: i, Limit: r.len})
	}
	_, pattern, bitOffset := r.scanTo(i)
	return bitword.GetBit(pattern, bitOffset)
}

// BitAndRank1 returns both the bit at position i and the number of 1
// bits in [0, i), exclusive of i, in a single pass. 0 <= i < Len().
func (r *RsDic) BitAndRank1(i uint64) (bool, uint64) {
	if i >= r.len {
		panic(&OutOfRangeError{Index: i, Limit: r.len})
	}
	rankBefore, pattern, bitOffset := r.scanTo(i)
	bit := bitword.GetBit(pattern, bitOffset)
	rank := rankBefore + uint64(bits.OnesCount64(pattern&bitword.LowMask[uint64](bitOffset)))
	return bit, rank
}

// Rank1 returns the number of 1 bits in [0, i), exclusive of i, for i < Len().
// As a special case, Rank1(Len()) returns NumOnes(); any larger i panics.
func (r *RsDic) Rank1(i uint64) uint64 {
	if i == r.len {
		return r.numOnes
	}
	if i > r.len {
		panic(&OutOfRangeError{Index: i, Limit: r.len})
	}
	rankBefore, pattern, bitOffset := r.scanTo(i)
	return rankBefore + uint64(bits.OnesCount64(pattern&bitword.LowMask[uint64](bitOffset)))
}

// Rank0 returns the number of 0 bits in [0, i), exclusive of i, for i < Len().
// As a special case, Rank0(Len()) returns NumZeros(); any larger i panics.
func (r *RsDic) Rank0(i uint64) uint64 {
	if i == r.len {
		return r.NumZeros()
	}
	return i - r.Rank1(i)
}

// Select1 returns the position of the k'th set bit (0-indexed), or
// false if the sequence has k or fewer set bits.
func (r *RsDic) Select1(k uint64) (uint64, bool) {
	if k >= r.numOnes {
		return 0, false
	}
	return r.selectIn(k, r.selectOneSamples, func(class uint8) uint64 { return uint64(class) }, true), true
}

// Select0 returns the position of the k'th unset bit (0-indexed), or
// false if the sequence has k or fewer unset bits.
func (r *RsDic) Select0(k uint64) (uint64, bool) {
	if k >= r.NumZeros() {
		return 0, false
	}
	return r.selectIn(k, r.selectZeroSamples, func(class uint8) uint64 { return smallBlockBits - uint64(class) }, false), true
}

// selectIn walks small-block classes starting from the sample covering
// k, accumulating each block's contribution of the queried bit value
// (via countOf) until the target block is found, then finishes with a
// broadword select inside that block's decoded pattern.
func (r *RsDic) selectIn(k uint64, samples []selectSample, countOf func(uint8) uint64, ones bool) uint64 {
	var sbIdx uint64
	var before uint64
	if len(samples) > 0 {
		sampleIdx := k / r.selectStride
		if sampleIdx == 0 {
			sbIdx, before = 0, 0
		} else if int(sampleIdx-1) < len(samples) {
			s := samples[sampleIdx-1]
			sbIdx, before = s.smallBlockIdx, s.rankBefore
		} else {
			s := samples[len(samples)-1]
			sbIdx, before = s.smallBlockIdx, s.rankBefore
		}
	}

	for before+countOf(r.sbClasses[sbIdx]) <= k {
		before += countOf(r.sbClasses[sbIdx])
		sbIdx++
	}

	class := int(r.sbClasses[sbIdx])
	offset := r.codeOffsetOf(sbIdx)
	length := int(enumCodeLength[class])
	code := r.sbIndices.GetBits(offset, length)
	pattern := decode(code, class)

	within := int(k - before)
	var bitPos int
	if ones {
		bitPos = broadword.Select1Raw(pattern, within)
	} else {
		bitPos = broadword.Select1Raw(^pattern, within)
	}

	return sbIdx*smallBlockBits + uint64(bitPos)
}

// codeOffsetOf returns the bit offset into the code stream of small
// block sbIdx's code, by walking forward from its large block's anchor.
func (r *RsDic) codeOffsetOf(sbIdx uint64) uint64 {
	largeIdx := sbIdx / smallBlocksPerLarge
	lb := r.largeBlocks[largeIdx]
	offset := lb.codeOffset
	for sb := largeIdx * smallBlocksPerLarge; sb < sbIdx; sb++ {
		offset += uint64(enumCodeLength[r.sbClasses[sb]])
	}
	return offset
}
