package jacobson

import "github.com/xflash-panda/succinct/pkg/bitword"

// packedInts is a fixed-width packed array of uint64 values, each
// truncated to width bits and tightly packed (no padding between
// entries), used for Jacobson's large-block and small-block rank
// tables. Mirrors the role of an IntVector in the original design.
type packedInts struct {
	words []uint64
	width int
	count int
}

func newPackedInts(count, width int) *packedInts {
	if width == 0 || count == 0 {
		return &packedInts{width: width, count: count}
	}
	totalBits := uint64(count) * uint64(width)
	numWords := (totalBits + 63) / 64
	return &packedInts{words: make([]uint64, numWords), width: width, count: count}
}

func (p *packedInts) Get(i int) uint64 {
	if p.width == 0 {
		return 0
	}
	start := uint64(i) * uint64(p.width)
	wordIdx := start / 64
	bitOff := start % 64
	lo := p.words[wordIdx] >> bitOff

	bitsFromLo := 64 - bitOff
	if uint64(p.width) <= bitsFromLo {
		return lo & bitword.LowMask[uint64](p.width)
	}

	var hi uint64
	if int(wordIdx)+1 < len(p.words) {
		hi = p.words[wordIdx+1]
	}
	combined := lo | (hi << bitsFromLo)
	return combined & bitword.LowMask[uint64](p.width)
}

func (p *packedInts) Set(i int, value uint64) {
	if p.width == 0 {
		return
	}
	value &= bitword.LowMask[uint64](p.width)

	start := uint64(i) * uint64(p.width)
	wordIdx := start / 64
	bitOff := start % 64
	bitsFromLo := 64 - bitOff

	if uint64(p.width) <= bitsFromLo {
		mask := bitword.LowMask[uint64](p.width) << bitOff
		p.words[wordIdx] = (p.words[wordIdx] &^ mask) | (value << bitOff)
		return
	}

	loBits := int(bitsFromLo)
	loMask := bitword.LowMask[uint64](loBits) << bitOff
	p.words[wordIdx] = (p.words[wordIdx] &^ loMask) | ((value << bitOff) & loMask)

	hiBits := p.width - loBits
	hiMask := bitword.LowMask[uint64](hiBits)
	p.words[wordIdx+1] = (p.words[wordIdx+1] &^ hiMask) | (value >> uint(loBits))
}
