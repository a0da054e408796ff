package rank9

import (
	"math/bits"
	"testing"

	"github.com/xflash-panda/succinct/pkg/bitvector"
)

func TestLevel2GetSet(t *testing.T) {
	var l level2
	if got := l.get(0); got != 0 {
		t.Fatalf("zero-value level2.get(0) = %d, want 0", got)
	}

	for t2 := 1; t2 < wordsPerBlock; t2++ {
		l = l.set(t2, uint64(t2*10))
	}
	if got := l.get(0); got != 0 {
		t.Errorf("level2.get(0) = %d, want 0 (always)", got)
	}
	for t2 := 1; t2 < wordsPerBlock; t2++ {
		want := uint64(t2 * 10)
		if got := l.get(t2); got != want {
			t.Errorf("level2.get(%d) = %d, want %d", t2, got, want)
		}
	}
}

func TestLevel2MaxSubtotal(t *testing.T) {
	// Each word can contribute at most 64 set bits, so subtotals up to
	// 7*64 = 448 must round-trip through the 9-bit field.
	var l level2
	l = l.set(7, 448)
	if got := l.get(7); got != 448 {
		t.Errorf("level2.get(7) = %d, want 448", got)
	}
}

// bruteRank1 returns the number of 1 bits in [0, i), exclusive of i.
func bruteRank1(words []uint64, bitLen uint64, i uint64) uint64 {
	var count uint64
	for p := uint64(0); p < i; p++ {
		if words[p/64]&(uint64(1)<<uint(p%64)) != 0 {
			count++
		}
	}
	return count
}

func TestRank1AgainstBruteForce(t *testing.T) {
	words := make([]uint64, 20)
	for i := range words {
		// an arbitrary, non-trivial bit pattern
		words[i] = uint64(i)*0x9E3779B97F4A7C15 + 1
	}
	bitLen := uint64(len(words))*64 - 37 // exercise a partial last word
	seq := bitvector.NewDense(words, bitLen)
	r := New(seq)

	var wantOnes uint64
	for _, w := range words {
		wantOnes += uint64(bits.OnesCount64(w))
	}
	// the trailing partial word's out-of-range high bits must not be
	// counted, so recompute the expected total directly against bitLen.
	wantOnes = bruteRank1(words, bitLen, bitLen)

	if r.NumOnes() != wantOnes {
		t.Fatalf("NumOnes() = %d, want %d", r.NumOnes(), wantOnes)
	}

	for _, i := range []uint64{0, 1, 63, 64, 65, 511, 512, 513, bitLen - 1} {
		want := bruteRank1(words, bitLen, i)
		if got := r.Rank1(i); got != want {
			t.Errorf("Rank1(%d) = %d, want %d", i, got, want)
		}
		if got := r.Rank0(i); got != i-want {
			t.Errorf("Rank0(%d) = %d, want %d", i, got, i-want)
		}
	}
}

func TestRank1OutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range Rank1")
		}
	}()
	seq := bitvector.NewDense([]uint64{0}, 10)
	r := New(seq)
	r.Rank1(10)
}

func TestRank1SmallExact(t *testing.T) {
	// 0b...1011_0110, bit 0 is the least significant bit.
	seq := bitvector.NewDense([]uint64{0b1011_0110}, 8)
	r := New(seq)
	cases := []struct {
		i    uint64
		want uint64
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{7, 4},
	}
	for _, c := range cases {
		if got := r.Rank1(c.i); got != c.want {
			t.Errorf("Rank1(%d) = %d, want %d", c.i, got, c.want)
		}
	}
}

func TestLimitAndInner(t *testing.T) {
	seq := bitvector.NewDense([]uint64{0xFF}, 8)
	r := New(seq)
	if r.Limit() != 8 {
		t.Errorf("Limit() = %d, want 8", r.Limit())
	}
	if r.Inner() != seq {
		t.Error("Inner() did not return the original sequence")
	}
}
