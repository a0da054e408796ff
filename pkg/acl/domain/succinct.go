package domain

import (
	"unicode/utf8"

	"github.com/xflash-panda/succinct/pkg/binsearch"
	"github.com/xflash-panda/succinct/pkg/bitvector"
	"github.com/xflash-panda/succinct/pkg/rank9"
)

// succinctSet is a memory-efficient trie implementation using bitmaps.
// Navigation over the node-boundary bitmap uses a rank9.Rank9 index for
// constant-time rank and the binsearch.Select1 adapter (a binary search
// over that rank, O(log n)) for select.
type succinctSet struct {
	leaves      []uint64      // bitmap marking leaf nodes (domain terminations)
	labelBitmap *bitvector.Dense
	labelRank   *rank9.Rank9 // rank index over labelBitmap
	labels      []byte       // character labels for trie edges
}

// newSuccinctSet constructs a succinct trie from a sorted list of keys.
func newSuccinctSet(keys []string) *succinctSet {
	if len(keys) == 0 {
		return &succinctSet{}
	}

	var bmWords []uint64
	bmLen := 0
	var leaves []uint64
	var labels []byte
	lIdx := 0

	// Queue element: start index, end index, column position.
	type qElt struct{ s, e, col int }
	queue := []qElt{{0, len(keys), 0}}

	// Build trie using BFS.
	for i := 0; i < len(queue); i++ {
		elt := queue[i]

		// Check if this is a leaf node (key ends at this column).
		if elt.col == len(keys[elt.s]) {
			elt.s++
			setBit(&leaves, i, 1)
		}

		// Process all children with same prefix.
		for j := elt.s; j < elt.e; {
			frm := j
			// Find range of keys with same character at this column.
			for ; j < elt.e && keys[j][elt.col] == keys[frm][elt.col]; j++ {
			}
			// Add child node to queue.
			queue = append(queue, qElt{frm, j, elt.col + 1})
			labels = append(labels, keys[frm][elt.col])
			setBit(&bmWords, lIdx, 0) // 0 = edge, 1 = node end
			lIdx++
			bmLen++
		}
		setBit(&bmWords, lIdx, 1) // mark end of this node's edges
		lIdx++
		bmLen++
	}

	labelBitmap := bitvector.NewDense(bmWords, uint64(bmLen))
	return &succinctSet{
		leaves:      leaves,
		labelBitmap: labelBitmap,
		labelRank:   rank9.New(labelBitmap),
		labels:      labels,
	}
}

// setBit ORs v (0 or 1) into the i-th bit of the bitmap, growing it as
// needed; v == 0 never clears a bit that is already set.
func setBit(bm *[]uint64, i int, v int) {
	for i>>6 >= len(*bm) {
		*bm = append(*bm, 0)
	}
	(*bm)[i>>6] |= uint64(v) << (i & 63) // #nosec G115 -- i&63 is always 0-63
}

// getBit returns the i-th bit from a plain bitmap, 0 outside its range.
func getBit(bm []uint64, i int) uint64 {
	if i>>6 >= len(bm) {
		return 0
	}
	return bm[i>>6] & (1 << (i & 63)) // #nosec G115 -- i&63 is always 0-63
}

// labelBit returns the i-th bit of the node-boundary bitmap, false
// outside its range.
func (ss *succinctSet) labelBit(i int) bool {
	if i < 0 || uint64(i) >= ss.labelBitmap.BitLen() {
		return false
	}
	return ss.labelBitmap.GetBit(uint64(i))
}

// countZeros counts the number of 0 bits in the node-boundary bitmap
// before position i, exclusive.
func (ss *succinctSet) countZeros(i int) int {
	n := ss.labelRank.Limit()
	if n == 0 || i <= 0 {
		return 0
	}
	var ones uint64
	if uint64(i) < n {
		ones = ss.labelRank.Rank1(uint64(i))
	} else {
		ones = ss.labelRank.NumOnes()
	}
	return i - int(ones)
}

// selectIthOne finds the position of the i-th 1 bit (0-indexed) in the
// node-boundary bitmap, or one past its end if there is no such bit.
func (ss *succinctSet) selectIthOne(i int) int {
	if i < 0 {
		return int(ss.labelRank.Limit())
	}
	pos, ok := binsearch.Select1(ss.labelRank, uint64(i))
	if !ok {
		return int(ss.labelRank.Limit())
	}
	return int(pos)
}

// reverseDomain reverses a domain string for trie storage.
// Example: "google.com" -> "moc.elgoog"
func reverseDomain(domain string) string {
	l := len(domain)
	b := make([]byte, l)
	for i := 0; i < l; {
		r, n := utf8.DecodeRuneInString(domain[i:])
		i += n
		utf8.EncodeRune(b[l-i:], r)
	}
	return string(b)
}
