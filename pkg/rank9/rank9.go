// Package rank9 implements the Rank9 succinct rank index (Vigna,
// "Broadword Implementation of Rank/Select Queries"): O(1) rank over a
// packed bit sequence with roughly 25% space overhead, built from two
// packed counters per 512-bit basic block.
package rank9

import (
	"fmt"
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitvector"
	"github.com/xflash-panda/succinct/pkg/bitword"
)

const (
	wordsPerBlock = 8
	bitsPerBlock  = wordsPerBlock * 64
)

// OutOfRangeError is raised by Rank1/Rank0 when the queried position is
// not less than the sequence's bit length.
type OutOfRangeError struct {
	Index, Limit uint64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("rank9: index %d out of range for length %d", e.Index, e.Limit)
}

// level2 packs the seven running word-popcount subtotals of one basic
// block (for word offsets 1..7; offset 0 is always zero) into 63 of its
// 64 bits, nine bits per subtotal.
type level2 uint64

func (l level2) get(wordOffset int) uint64 {
	if wordOffset == 0 {
		return 0
	}
	shift := uint((wordOffset - 1) * 9)
	return uint64(l) >> shift & 0x1FF
}

func (l level2) set(wordOffset int, value uint64) level2 {
	if wordOffset == 0 {
		return l
	}
	shift := uint((wordOffset - 1) * 9)
	mask := uint64(0x1FF) << shift
	return level2((uint64(l) &^ mask) | ((value & 0x1FF) << shift))
}

type cell struct {
	level1 uint64
	level2 level2
}

// Rank9 answers rank1/rank0 queries over a bitvector.Sequence in O(1).
type Rank9 struct {
	seq     bitvector.Sequence
	cells   []cell
	numOnes uint64
}

// New builds a Rank9 index over seq. seq is retained, not copied.
func New(seq bitvector.Sequence) *Rank9 {
	blockLen := seq.BlockLen()
	numBlocks := (blockLen + wordsPerBlock - 1) / wordsPerBlock
	cells := make([]cell, numBlocks)

	var total uint64
	for blk := 0; blk < numBlocks; blk++ {
		var l2 level2
		var within uint64
		for offset := 0; offset < wordsPerBlock; offset++ {
			wordIdx := blk*wordsPerBlock + offset
			if offset > 0 {
				l2 = l2.set(offset, within)
			}
			if wordIdx < blockLen {
				within += uint64(bits.OnesCount64(seq.GetBlock(wordIdx)))
			}
		}
		cells[blk] = cell{level1: total, level2: l2}
		total += within
	}

	return &Rank9{seq: seq, cells: cells, numOnes: total}
}

// Limit returns the number of bits in the underlying sequence.
func (r *Rank9) Limit() uint64 { return r.seq.BitLen() }

// Inner returns the underlying bit sequence.
func (r *Rank9) Inner() bitvector.Sequence { return r.seq }

// NumOnes returns the total number of set bits in the sequence.
func (r *Rank9) NumOnes() uint64 { return r.numOnes }

// NumZeros returns the total number of unset bits in the sequence.
func (r *Rank9) NumZeros() uint64 { return r.seq.BitLen() - r.numOnes }

// Rank1 returns the number of 1 bits in positions [0, i), exclusive of i.
// It panics with *OutOfRangeError if i >= Limit().
func (r *Rank9) Rank1(i uint64) uint64 {
	n := r.seq.BitLen()
	if i >= n {
		panic(&OutOfRangeError{Index: i, Limit: n})
	}

	blockIdx := i / bitsPerBlock
	wordIdx := i / 64
	wordOffset := int(wordIdx % wordsPerBlock)
	bitOffset := int(i % 64)

	c := r.cells[blockIdx]
	word := r.seq.GetBlock(int(wordIdx))
	inWord := bits.OnesCount64(word & bitword.LowMask[uint64](bitOffset))

	return c.level1 + c.level2.get(wordOffset) + uint64(inWord)
}

// Rank0 returns the number of 0 bits in positions [0, i), exclusive of i.
// It panics with *OutOfRangeError if i >= Limit().
func (r *Rank9) Rank0(i uint64) uint64 {
	return i - r.Rank1(i)
}

// Rank returns Rank1(i) if v is true and Rank0(i) otherwise.
// It panics with *OutOfRangeError if i >= Limit().
func (r *Rank9) Rank(i uint64, v bool) uint64 {
	if v {
		return r.Rank1(i)
	}
	return r.Rank0(i)
}
