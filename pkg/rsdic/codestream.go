package rsdic

import "github.com/xflash-panda/succinct/pkg/bitword"

// codeStream is an append-only little-endian bit buffer holding the
// concatenated variable-length enumerative codes of every small block
// RsDic has built so far.
type codeStream struct {
	words []uint64
	len   uint64
}

// PushBits appends the low `length` bits of value, 0 <= length <= 64.
func (s *codeStream) PushBits(value uint64, length int) {
	if length <= 0 {
		return
	}
	value &= bitword.LowMask[uint64](length)

	start := s.len
	wordIdx := start / 64
	bitOff := int(start % 64)

	for uint64(len(s.words)) <= wordIdx {
		s.words = append(s.words, 0)
	}
	s.words[wordIdx] |= value << uint(bitOff)

	bitsInFirstWord := 64 - bitOff
	if length > bitsInFirstWord {
		for uint64(len(s.words)) <= wordIdx+1 {
			s.words = append(s.words, 0)
		}
		s.words[wordIdx+1] |= value >> uint(bitsInFirstWord)
	}

	s.len += uint64(length)
}

// GetBits reads `length` bits starting at bit offset start, 0 <= length <= 64.
func (s *codeStream) GetBits(start uint64, length int) uint64 {
	if length <= 0 {
		return 0
	}
	wordIdx := start / 64
	bitOff := start % 64
	lo := s.words[wordIdx] >> bitOff

	bitsFromLo := 64 - bitOff
	if uint64(length) <= bitsFromLo {
		return lo & bitword.LowMask[uint64](length)
	}

	var hi uint64
	if int(wordIdx)+1 < len(s.words) {
		hi = s.words[wordIdx+1]
	}
	combined := lo | (hi << bitsFromLo)
	return combined & bitword.LowMask[uint64](length)
}

// Len returns the number of bits pushed so far.
func (s *codeStream) Len() uint64 { return s.len }
