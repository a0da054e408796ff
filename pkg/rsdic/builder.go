package rsdic

import "math/bits"

const (
	smallBlockBits      = 64
	smallBlocksPerLarge = 64
	largeBlockBits      = smallBlockBits * smallBlocksPerLarge

	defaultSelectSampleStride = 2048
)

// largeBlock anchors one 4096-bit large block: the cumulative number of
// set bits before it, and the bit offset into the code stream where its
// small blocks' enumerative codes begin.
type largeBlock struct {
	rank       uint64
	codeOffset uint64
}

// selectSample anchors a periodic sample of the select1/select0 index:
// the small block index containing the stride'th set (or unset) bit in
// that sample's range, and the cumulative rank immediately before it.
type selectSample struct {
	smallBlockIdx uint64
	rankBefore    uint64
}

// BuilderOption configures a Builder at construction time.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	capacityBits       uint64
	selectSampleStride uint64
}

// WithCapacity preallocates space for at least capacityBits bits, an
// optimization hint only.
func WithCapacity(capacityBits uint64) BuilderOption {
	return func(o *builderOptions) { o.capacityBits = capacityBits }
}

// WithSelectSampleStride overrides the default period (2048) at which
// Select1/Select0 acceleration samples are recorded. A smaller stride
// speeds up Select1/Select0 at the cost of more sample memory.
func WithSelectSampleStride(stride uint64) BuilderOption {
	return func(o *builderOptions) {
		if stride > 0 {
			o.selectSampleStride = stride
		}
	}
}

// Builder constructs an RsDic by accepting bits (or whole 64-bit blocks)
// one at a time, in order, then finalizing them with Build.
type Builder struct {
	len     uint64
	numOnes uint64

	sbClasses   []uint8
	sbIndices   codeStream
	largeBlocks []largeBlock

	selectOneSamples  []selectSample
	selectZeroSamples []selectSample
	selectStride      uint64

	last    uint64
	lastLen int
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	o := builderOptions{selectSampleStride: defaultSelectSampleStride}
	for _, opt := range opts {
		opt(&o)
	}
	b := &Builder{selectStride: o.selectSampleStride}
	if o.capacityBits > 0 {
		b.sbClasses = make([]uint8, 0, (o.capacityBits+smallBlockBits-1)/smallBlockBits)
	}
	return b
}

// Push appends a single bit.
func (b *Builder) Push(bit bool) {
	if bit {
		b.last |= uint64(1) << uint(b.lastLen)
		b.numOnes++
	}
	b.lastLen++
	b.len++
	if b.lastLen == smallBlockBits {
		b.flushLastBlock()
	}
}

// PushBlock appends a full 64-bit word as a single small block. If a
// partial block is already pending, it falls back to pushing bit by bit
// so the stream stays correctly aligned.
func (b *Builder) PushBlock(word uint64) {
	if b.lastLen != 0 {
		for i := 0; i < smallBlockBits; i++ {
			b.Push(word&(uint64(1)<<uint(i)) != 0)
		}
		return
	}
	b.last = word
	b.lastLen = smallBlockBits
	b.numOnes += uint64(bits.OnesCount64(word))
	b.len += smallBlockBits
	b.flushLastBlock()
}

// flushLastBlock encodes the pending 64-bit small block, appends its
// class and code, and records large-block and select-sample anchors.
func (b *Builder) flushLastBlock() {
	class := bits.OnesCount64(b.last)
	length, code := encode(b.last, class)

	sbIdx := uint64(len(b.sbClasses))
	beforeOnes := b.numOnes - uint64(class)
	totalBitsBefore := sbIdx * smallBlockBits
	beforeZeros := totalBitsBefore - beforeOnes

	if sbIdx%smallBlocksPerLarge == 0 {
		b.largeBlocks = append(b.largeBlocks, largeBlock{
			rank:       beforeOnes,
			codeOffset: b.sbIndices.Len(),
		})
	}

	b.sbClasses = append(b.sbClasses, uint8(class))
	b.sbIndices.PushBits(code, length)

	afterOnes := b.numOnes
	afterZeros := beforeZeros + smallBlockBits - uint64(class)

	for (uint64(len(b.selectOneSamples))+1)*b.selectStride <= afterOnes {
		b.selectOneSamples = append(b.selectOneSamples, selectSample{smallBlockIdx: sbIdx, rankBefore: beforeOnes})
	}
	for (uint64(len(b.selectZeroSamples))+1)*b.selectStride <= afterZeros {
		b.selectZeroSamples = append(b.selectZeroSamples, selectSample{smallBlockIdx: sbIdx, rankBefore: beforeZeros})
	}

	b.last = 0
	b.lastLen = 0
}

// Build finalizes the Builder into an immutable RsDic, flushing any
// partially filled trailing small block.
func (b *Builder) Build() *RsDic {
	if b.lastLen > 0 {
		// Pad the trailing partial block with zero bits so it encodes
		// like any other small block; GetBit/Rank never read past len.
		class := bits.OnesCount64(b.last)
		length, code := encode(b.last, class)

		sbIdx := uint64(len(b.sbClasses))
		beforeOnes := b.numOnes - uint64(class)
		if sbIdx%smallBlocksPerLarge == 0 {
			b.largeBlocks = append(b.largeBlocks, largeBlock{
				rank:       beforeOnes,
				codeOffset: b.sbIndices.Len(),
			})
		}
		b.sbClasses = append(b.sbClasses, uint8(class))
		b.sbIndices.PushBits(code, length)
		b.last = 0
		b.lastLen = 0
	}

	return &RsDic{
		len:               b.len,
		numOnes:           b.numOnes,
		sbClasses:         b.sbClasses,
		sbIndices:         b.sbIndices,
		largeBlocks:       b.largeBlocks,
		selectOneSamples:  b.selectOneSamples,
		selectZeroSamples: b.selectZeroSamples,
		selectStride:      b.selectStride,
	}
}
