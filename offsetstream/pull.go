// Package offsetstream bridges the bitio streams to the PDF writer/parser's
// dictionary-visit order. On encode, dictionaries are visited in document
// order and bits can be pulled on demand. On decode, dictionaries are visited
// in parse order (not necessarily ascending source-byte order), so the
// recovered (rank, k) tuples must be buffered and flushed by ascending
// dictionary offset to reconstruct the original bit order.
package offsetstream

import (
	"github.com/benedoc-inc/pdfsteg/bitio"
	"github.com/benedoc-inc/pdfsteg/rankperm"
)

// PullInteger reads exactly k bits from src and returns them as a big
// integer whose bit i equals the i-th bit read. If src runs out mid-pull the
// remaining high bits are left 0 — the returned integer is still guaranteed
// valid for the requesting dictionary because k was chosen as
// rankperm.AvailableBits(n) for that dictionary.
func PullInteger(src *bitio.Source, k int) *rankperm.Int {
	result := rankperm.Zero()
	for i := 0; i < k; i++ {
		bit, ok := src.Next()
		if !ok {
			break
		}
		if bit != 0 {
			result.SetBit(i)
		}
	}
	return result
}
