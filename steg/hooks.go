package steg

import (
	"log"
	"sort"

	"github.com/benedoc-inc/pdfsteg/bitio"
	"github.com/benedoc-inc/pdfsteg/offsetstream"
	"github.com/benedoc-inc/pdfsteg/pdfval"
	"github.com/benedoc-inc/pdfsteg/rankperm"
)

// splitType separates a dictionary's /Type entry, if present at any index,
// from the rest. typeIdx is -1 if /Type is absent, 0 if present and correctly
// pinned first, or the entry's actual index otherwise (malformed input).
func splitType(entries []pdfval.DictEntry) (typeIdx int, typeEntry pdfval.DictEntry, rest []pdfval.DictEntry) {
	typeIdx = -1
	for i, e := range entries {
		if e.Key == pdfval.KeyTypeName {
			typeIdx = i
			break
		}
	}
	if typeIdx < 0 {
		return -1, pdfval.DictEntry{}, entries
	}
	rest = make([]pdfval.DictEntry, 0, len(entries)-1)
	for i, e := range entries {
		if i != typeIdx {
			rest = append(rest, e)
		}
	}
	return typeIdx, entries[typeIdx], rest
}

func sortedNames(entries []pdfval.DictEntry) []pdfval.Name {
	names := make([]pdfval.Name, len(entries))
	for i, e := range entries {
		names[i] = e.Key
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func entryNames(entries []pdfval.DictEntry) []pdfval.Name {
	names := make([]pdfval.Name, len(entries))
	for i, e := range entries {
		names[i] = e.Key
	}
	return names
}

// encoder drives pwrite's EncodeHook, pulling k bits per eligible dictionary
// from a shared bit source in document-write order.
type encoder struct {
	src     *bitio.Source
	verbose bool
}

func (e *encoder) hook(d *pdfval.Dictionary) []pdfval.DictEntry {
	_, typeEntry, rest := splitType(d.Entries)
	hasType := len(rest) < len(d.Entries)

	byName := make(map[pdfval.Name]pdfval.DictEntry, len(rest))
	for _, e2 := range rest {
		byName[e2.Key] = e2
	}
	ref := sortedNames(rest)

	m := len(ref)
	k := rankperm.AvailableBits(m)

	var permutedNames []pdfval.Name
	if k <= 0 {
		permutedNames = ref
	} else {
		rank := offsetstream.PullInteger(e.src, k)
		permutedNames = rankperm.Unrank(ref, rank)
		if e.verbose {
			log.Printf("wrote %d offset %d bits %s", d.Offset, k, rank.String())
		}
	}

	permuted := make([]pdfval.DictEntry, len(permutedNames))
	for i, n := range permutedNames {
		permuted[i] = byName[n]
	}

	if !hasType {
		return permuted
	}
	out := make([]pdfval.DictEntry, 0, len(permuted)+1)
	out = append(out, typeEntry)
	out = append(out, permuted...)
	return out
}

// decoder drives lex's DictHook, recording the rank observed for every
// eligible dictionary into a Collector keyed by source offset.
type decoder struct {
	col      *offsetstream.Collector
	warnings []*Warning
}

func (d *decoder) hook(dict *pdfval.Dictionary) {
	typeIdx, _, rest := splitType(dict.Entries)
	if typeIdx > 0 {
		d.warnings = append(d.warnings, &Warning{
			Offset:  dict.Offset,
			Message: "/Type key present but not first; dictionary excluded from the hidden channel",
		})
		return
	}

	m := len(rest)
	k := rankperm.AvailableBits(m)
	if k <= 0 {
		return
	}

	ref := sortedNames(rest)
	observed := entryNames(rest)
	rank := rankperm.Rank(ref, observed)
	d.col.Record(dict.Offset, rank, k)
}
