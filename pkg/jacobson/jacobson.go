// Package jacobson implements the classical two-level Jacobson rank
// index, parameterized over a small-block word width W: large blocks of
// ceil(lg(n)^2 / w) words each hold an absolute rank, small blocks of w
// bits each hold a rank relative to their large block, and the final
// step is a popcount over the bits preceding the query position within
// its small block.
package jacobson

import (
	"fmt"
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/bitvector"
	"github.com/xflash-panda/succinct/pkg/bitword"
)

// OutOfRangeError is raised by Rank1/Rank0 when the queried position is
// not less than the sequence's bit length.
type OutOfRangeError struct {
	Index, Limit uint64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("jacobson: index %d out of range for length %d", e.Index, e.Limit)
}

// JacobsonRank answers rank1/rank0 queries over a bitvector.Sequence in
// O(1), using W as the small-block width (8, 16, 32 or 64 bits): wider
// W trades a larger large-block span (and hence less large-block table
// overhead) for more per-query work scanning inside a small block.
type JacobsonRank[W bitword.Unsigned] struct {
	seq bitvector.Sequence

	smallBlockSize int // bits per small block, == bitword.NBits[W]()
	smallPerLarge  int // small blocks per large block
	largeBlockSize int // bits per large block, == smallBlockSize*smallPerLarge

	largeBlockRanks *packedInts
	smallBlockRanks *packedInts

	numOnes uint64
}

// New builds a JacobsonRank[W] index over seq. seq is retained, not
// copied.
func New[W bitword.Unsigned](seq bitvector.Sequence) *JacobsonRank[W] {
	n := seq.BitLen()
	smallBlockSize := bitword.NBits[W]()

	if n == 0 {
		return &JacobsonRank[W]{
			seq:             seq,
			smallBlockSize:  smallBlockSize,
			smallPerLarge:   1,
			largeBlockSize:  smallBlockSize,
			largeBlockRanks: newPackedInts(0, 0),
			smallBlockRanks: newPackedInts(0, 0),
		}
	}

	lgN := bitword.CeilLog2(n + 1)
	lg2N := lgN * lgN
	smallPerLarge := ceilDivInt(lg2N, smallBlockSize)
	if smallPerLarge < 1 {
		smallPerLarge = 1
	}
	largeBlockSize := smallBlockSize * smallPerLarge

	numSmallBlocks := ceilDivU64(n, uint64(smallBlockSize))
	numLargeBlocks := ceilDivU64(numSmallBlocks, uint64(smallPerLarge))

	largeWidth := bitword.CeilLog2(n + 1)
	smallWidth := bitword.CeilLog2(uint64(largeBlockSize) + 1)

	j := &JacobsonRank[W]{
		seq:             seq,
		smallBlockSize:  smallBlockSize,
		smallPerLarge:   smallPerLarge,
		largeBlockSize:  largeBlockSize,
		largeBlockRanks: newPackedInts(int(numLargeBlocks), largeWidth),
		smallBlockRanks: newPackedInts(int(numSmallBlocks), smallWidth),
	}

	var total uint64
	var withinLarge uint64
	for sbIdx := uint64(0); sbIdx < numSmallBlocks; sbIdx++ {
		s := int(sbIdx) % smallPerLarge
		if s == 0 {
			l := int(sbIdx) / smallPerLarge
			j.largeBlockRanks.Set(l, total)
			withinLarge = 0
		}
		j.smallBlockRanks.Set(int(sbIdx), withinLarge)

		start := sbIdx * uint64(smallBlockSize)
		length := smallBlockSize
		if start+uint64(length) > n {
			length = int(n - start)
		}
		count := bits.OnesCount64(seq.GetBits(start, length))
		withinLarge += uint64(count)
		total += uint64(count)
	}
	j.numOnes = total

	return j
}

// Limit returns the number of bits in the underlying sequence.
func (j *JacobsonRank[W]) Limit() uint64 { return j.seq.BitLen() }

// Inner returns the underlying bit sequence.
func (j *JacobsonRank[W]) Inner() bitvector.Sequence { return j.seq }

// NumOnes returns the total number of set bits in the sequence.
func (j *JacobsonRank[W]) NumOnes() uint64 { return j.numOnes }

// NumZeros returns the total number of unset bits in the sequence.
func (j *JacobsonRank[W]) NumZeros() uint64 { return j.seq.BitLen() - j.numOnes }

// Rank1 returns the number of 1 bits in positions [0, i), exclusive of i.
// It panics with *OutOfRangeError if i >= Limit().
func (j *JacobsonRank[W]) Rank1(i uint64) uint64 {
	n := j.seq.BitLen()
	if i >= n {
		panic(&OutOfRangeError{Index: i, Limit: n})
	}

	largeIdx := i / uint64(j.largeBlockSize)
	smallIdx := i / uint64(j.smallBlockSize)
	bitOffset := int(i % uint64(j.smallBlockSize))

	largeRank := j.largeBlockRanks.Get(int(largeIdx))
	smallRank := j.smallBlockRanks.Get(int(smallIdx))

	smallStart := smallIdx * uint64(j.smallBlockSize)
	inner := bits.OnesCount64(j.seq.GetBits(smallStart, bitOffset))

	return largeRank + smallRank + uint64(inner)
}

// Rank0 returns the number of 0 bits in positions [0, i), exclusive of i.
// It panics with *OutOfRangeError if i >= Limit().
func (j *JacobsonRank[W]) Rank0(i uint64) uint64 {
	return i - j.Rank1(i)
}

func ceilDivInt(a, b int) int { return (a + b - 1) / b }

func ceilDivU64(a, b uint64) uint64 { return (a + b - 1) / b }
