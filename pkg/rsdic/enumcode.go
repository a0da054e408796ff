package rsdic

import "github.com/xflash-panda/succinct/pkg/bitword"

// binomial[n][k] is the binomial coefficient C(n, k) for 0 <= k <= n <= 64.
// It is computed once at package initialization via Pascal's triangle
// rather than hand-transcribed as a literal: a 65x65 table copied by hand
// cannot be checked for transcription errors without running the code, and
// an init-time computation gives the same O(1) lookup behavior afterwards.
var binomial [65][65]uint64

// enumCodeLength[class] is the number of bits needed to enumerate all
// 64-bit patterns with exactly `class` set bits: ceil(log2(C(64, class))),
// except that any class whose natural length would exceed 46 bits instead
// takes the 64-bit raw fast path (see encode/decode) and stores the word
// itself as its code.
var enumCodeLength [65]uint8

func init() {
	for n := 0; n <= 64; n++ {
		binomial[n][0] = 1
		for k := 1; k <= n; k++ {
			if k == n {
				binomial[n][k] = 1
			} else {
				binomial[n][k] = binomial[n-1][k-1] + binomial[n-1][k]
			}
		}
	}
	for class := 0; class <= 64; class++ {
		l := bitword.CeilLog2(binomial[64][class])
		if l > 46 {
			l = 64
		}
		enumCodeLength[class] = uint8(l)
	}
}

// encode returns the length in bits and the enumerative code of value,
// a 64-bit pattern with exactly class set bits. When enumCodeLength[class]
// is 64 (the raw fast path), value is returned unchanged as its own code.
func encode(value uint64, class int) (int, uint64) {
	length := int(enumCodeLength[class])
	if length == 64 {
		return 64, value
	}

	var code uint64
	r := class
	for n := 63; n >= 0 && r > 0; n-- {
		if (value>>uint(n))&1 == 1 {
			r--
		} else {
			code += binomial[n][r-1]
		}
	}
	return length, code
}

// decode is the inverse of encode: given a code and its class, it
// reconstructs the original 64-bit pattern.
func decode(code uint64, class int) uint64 {
	if int(enumCodeLength[class]) == 64 {
		return code
	}

	var value uint64
	r := class
	c := code
	for n := 63; n >= 0 && r > 0; n-- {
		threshold := binomial[n][r-1]
		if c < threshold {
			value |= uint64(1) << uint(n)
			r--
		} else {
			c -= threshold
		}
	}
	return value
}
