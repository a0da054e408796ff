package jacobson

import (
	"testing"

	"github.com/xflash-panda/succinct/pkg/bitvector"
)

// bruteRank1 returns the number of 1 bits in [0, i), exclusive of i.
func bruteRank1(words []uint64, i uint64) uint64 {
	var count uint64
	for p := uint64(0); p < i; p++ {
		if words[p/64]&(uint64(1)<<uint(p%64)) != 0 {
			count++
		}
	}
	return count
}

func TestRank1AgainstBruteForceAllWidths(t *testing.T) {
	words := make([]uint64, 30)
	for i := range words {
		words[i] = uint64(i)*0x2545F4914F6CDD1D + 3
	}
	bitLen := uint64(len(words))*64 - 11
	seq := bitvector.NewDense(words, bitLen)

	check := func(name string, rank1 func(uint64) uint64, numOnes uint64) {
		t.Run(name, func(t *testing.T) {
			want := bruteRank1(words, bitLen)
			if numOnes != want {
				t.Fatalf("NumOnes() = %d, want %d", numOnes, want)
			}
			for _, i := range []uint64{0, 1, 63, 64, 65, 127, 128, 1000, bitLen - 1} {
				want := bruteRank1(words, i)
				if got := rank1(i); got != want {
					t.Errorf("Rank1(%d) = %d, want %d", i, got, want)
				}
			}
		})
	}

	r8 := New[uint8](seq)
	check("uint8", r8.Rank1, r8.NumOnes())

	r16 := New[uint16](seq)
	check("uint16", r16.Rank1, r16.NumOnes())

	r32 := New[uint32](seq)
	check("uint32", r32.Rank1, r32.NumOnes())

	r64 := New[uint64](seq)
	check("uint64", r64.Rank1, r64.NumOnes())
}

func TestRank0(t *testing.T) {
	seq := bitvector.NewDense([]uint64{0b1011_0110}, 8)
	r := New[uint32](seq)
	for i := uint64(0); i < 8; i++ {
		ones := r.Rank1(i)
		if got := r.Rank0(i); got != i-ones {
			t.Errorf("Rank0(%d) = %d, want %d", i, got, i-ones)
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
	r := New[uint32](seq)
	r.Rank1(10)
}

func TestEmptySequence(t *testing.T) {
	seq := bitvector.NewDense(nil, 0)
	r := New[uint32](seq)
	if r.NumOnes() != 0 || r.Limit() != 0 {
		t.Fatalf("expected empty index, got NumOnes=%d Limit=%d", r.NumOnes(), r.Limit())
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Rank1 on an empty sequence")
		}
	}()
	r.Rank1(0)
}
