package offsetstream

import (
	"fmt"
	"sort"

	"github.com/benedoc-inc/pdfsteg/bitio"
	"github.com/benedoc-inc/pdfsteg/rankperm"
)

type entry struct {
	rank *rankperm.Int
	k    int
}

// Collector accumulates (offset, rank, k) tuples discovered while parsing a
// PDF in whatever order its dictionaries happen to be visited, then flushes
// them to a bitio.Sink in ascending offset order so the recovered bitstream
// matches the order the encoder originally pulled bits in.
type Collector struct {
	byOffset map[int64]entry
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{byOffset: make(map[int64]entry)}
}

// Record stores the rank observed for the dictionary starting at offset.
// offset must be unique per parse; a duplicate is an internal invariant
// violation (a parser bug, not a malformed-PDF condition) and panics.
func (c *Collector) Record(offset int64, rank *rankperm.Int, k int) {
	if _, exists := c.byOffset[offset]; exists {
		panic(fmt.Sprintf("offsetstream: duplicate dictionary offset %d recorded twice", offset))
	}
	c.byOffset[offset] = entry{rank: rank, k: k}
}

// Len returns the number of recorded tuples.
func (c *Collector) Len() int {
	return len(c.byOffset)
}

// Flush writes bits 0..k-1 of each recorded rank, LSB-first, to sink, visiting
// tuples in ascending offset order, then pads and emits the trailing byte.
func (c *Collector) Flush(sink *bitio.Sink) error {
	offsets := make([]int64, 0, len(c.byOffset))
	for off := range c.byOffset {
		offsets = append(offsets, off)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	for _, off := range offsets {
		e := c.byOffset[off]
		for i := 0; i < e.k; i++ {
			bit := byte(0)
			if e.rank.TestBit(i) {
				bit = 1
			}
			if err := sink.PushBit(bit); err != nil {
				return err
			}
		}
	}
	return sink.FlushByte()
}
