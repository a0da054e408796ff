package rank9

import (
	"testing"

	"github.com/xflash-panda/succinct/pkg/binsearch"
	"github.com/xflash-panda/succinct/pkg/bitvector"
)

// repeatWord builds a dense bit sequence of count*64 bits by repeating
// word count times.
func repeatWord(word uint64, count int) *bitvector.Dense {
	words := make([]uint64, count)
	for i := range words {
		words[i] = word
	}
	return bitvector.NewDense(words, uint64(count)*64)
}

// Expected rank/select values below are derived directly from each
// scenario's stated word pattern under the exclusive rank convention
// (rank1(i) counts set bits in [0, i)), not copied as opaque constants.

// TestSeedScenarioS1 checks a single low bit set in every 64-bit word.
func TestSeedScenarioS1(t *testing.T) {
	seq := repeatWord(0x0000_0000_0000_0001, 512)
	r := New(seq)

	cases := []struct {
		i    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{64, 1},
		{65, 2},
	}
	for _, c := range cases {
		if got := r.Rank1(c.i); got != c.want {
			t.Errorf("Rank1(%d) = %d, want %d", c.i, got, c.want)
		}
	}

	selectCases := []struct {
		k    uint64
		want uint64
	}{
		{0, 0},
		{1, 64},
		{511, 32_704},
	}
	for _, c := range selectCases {
		got, ok := binsearch.Select1(r, c.k)
		if !ok || got != c.want {
			t.Errorf("Select1(%d) = (%d, %v), want (%d, true)", c.k, got, ok, c.want)
		}
	}
}

// TestSeedScenarioS2 checks three low bits set (0x0E, bits 1-3) in every
// 64-bit word.
func TestSeedScenarioS2(t *testing.T) {
	seq := repeatWord(0x0000_0000_0000_000E, 1024)
	r := New(seq)

	cases := []struct {
		i    uint64
		want uint64
	}{
		{1, 0},
		{2, 1},
		{4, 3},
		{5, 3},
	}
	for _, c := range cases {
		if got := r.Rank1(c.i); got != c.want {
			t.Errorf("Rank1(%d) = %d, want %d", c.i, got, c.want)
		}
	}

	selectCases := []struct {
		k    uint64
		want uint64
	}{
		{0, 1},
		{1, 2},
		{2, 3},
		{3, 65},
		{2047, 43_650},
	}
	for _, c := range selectCases {
		got, ok := binsearch.Select1(r, c.k)
		if !ok || got != c.want {
			t.Errorf("Select1(%d) = (%d, %v), want (%d, true)", c.k, got, ok, c.want)
		}
	}
}

// TestSeedScenarioS3 checks the alternating 0xAAAA... pattern (odd bits set).
func TestSeedScenarioS3(t *testing.T) {
	seq := repeatWord(0xAAAA_AAAA_AAAA_AAAA, 1024)
	r := New(seq)

	cases := []struct {
		i    uint64
		want uint64
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
	}
	for _, c := range cases {
		if got := r.Rank1(c.i); got != c.want {
			t.Errorf("Rank1(%d) = %d, want %d", c.i, got, c.want)
		}
	}

	selectCases := []struct {
		k    uint64
		want uint64
	}{
		{0, 1},
		{1, 3},
		{459, 919},
	}
	for _, c := range selectCases {
		got, ok := binsearch.Select1(r, c.k)
		if !ok || got != c.want {
			t.Errorf("Select1(%d) = (%d, %v), want (%d, true)", c.k, got, ok, c.want)
		}
	}
}
