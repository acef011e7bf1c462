// Package pwrite serializes a pdfval.Document back to bytes, regenerating a
// classic cross-reference table and trailer. It never attempts an
// incremental update: every object is rewritten into a single fresh
// revision, which keeps the cross-reference machinery simple and matches
// this tool's single-pass, single-threaded operating model.
package pwrite

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/benedoc-inc/pdfsteg/pdfval"
)

// EncodeHook is invoked once per dictionary, immediately before its body is
// emitted, and returns the entries to write in the order they should appear
// on the page. The writer does not re-sort or otherwise second-guess the
// returned order. A nil hook emits entries in their existing order.
type EncodeHook func(d *pdfval.Dictionary) []pdfval.DictEntry

// Mode selects how dictionary bodies are laid out on the page. It has no
// bearing on the hidden channel — only on the surrounding whitespace.
type Mode int

const (
	// ModeCompact packs every entry onto the same line, single-space
	// separated. This is the default.
	ModeCompact Mode = iota
	// ModeClean lays one entry per line, indented by nesting depth, the way
	// a human-edited PDF tends to look.
	ModeClean
)

type writer struct {
	out  *bytes.Buffer
	hook EncodeHook
	mode Mode
}

// Write serializes doc in ModeCompact. See WriteMode for ModeClean.
func Write(doc *pdfval.Document, hook EncodeHook) ([]byte, error) {
	return WriteMode(doc, hook, ModeCompact)
}

// WriteMode serializes doc, visiting objects in ascending object number and,
// within each object, dictionaries in the order they are written — i.e.
// depth-first, so a dictionary's EncodeHook always fires before any
// dictionary nested inside one of its values.
func WriteMode(doc *pdfval.Document, hook EncodeHook, mode Mode) ([]byte, error) {
	w := &writer{out: &bytes.Buffer{}, hook: hook, mode: mode}
	fmt.Fprintf(w.out, "%%PDF-%s\n%%\xE2\xE3\xCF\xD3\n", doc.Version)

	offsets := make(map[int]int64, len(doc.Objects))
	order := append([]int(nil), doc.Order...)
	sort.Ints(order)

	for _, num := range order {
		obj, ok := doc.Objects[num]
		if !ok {
			continue
		}
		offsets[num] = int64(w.out.Len())
		fmt.Fprintf(w.out, "%d %d obj\n", obj.Num, obj.Gen)
		w.writeValue(obj.Value, 0)
		w.out.WriteByte('\n')
		if obj.IsStream {
			w.out.WriteString("stream\n")
			w.out.Write(obj.Stream)
			w.out.WriteString("\nendstream\n")
		}
		w.out.WriteString("endobj\n")
	}

	xrefOffset := int64(w.out.Len())
	maxNum := 0
	for _, n := range order {
		if n > maxNum {
			maxNum = n
		}
	}
	writeXref(w.out, order, offsets, maxNum)

	w.out.WriteString("trailer\n<<")
	fmt.Fprintf(w.out, " /Size %d", maxNum+1)
	if len(doc.Root) > 0 {
		w.out.WriteString(" /Root ")
		w.out.Write(doc.Root)
	}
	if len(doc.Info) > 0 {
		w.out.WriteString(" /Info ")
		w.out.Write(doc.Info)
	}
	if len(doc.Encrypt) > 0 {
		w.out.WriteString(" /Encrypt ")
		w.out.Write(doc.Encrypt)
	}
	if len(doc.ID) > 0 {
		w.out.WriteString(" /ID ")
		w.out.Write(doc.ID)
	}
	w.out.WriteString(" >>\n")
	fmt.Fprintf(w.out, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	return w.out.Bytes(), nil
}

func (w *writer) writeValue(v pdfval.Value, depth int) {
	switch v.Kind {
	case pdfval.KindRaw:
		w.out.Write(v.Raw)
	case pdfval.KindArray:
		w.out.WriteByte('[')
		for i, item := range v.Array {
			if i > 0 {
				w.out.WriteByte(' ')
			}
			w.writeValue(item, depth)
		}
		w.out.WriteByte(']')
	case pdfval.KindDict:
		w.writeDict(v.Dict, depth)
	}
}

func (w *writer) writeDict(d *pdfval.Dictionary, depth int) {
	entries := d.Entries
	if w.hook != nil {
		entries = w.hook(d)
	}

	w.out.WriteString("<<")
	if w.mode == ModeClean && len(entries) > 0 {
		for _, e := range entries {
			w.out.WriteByte('\n')
			w.indent(depth + 1)
			w.out.WriteString(string(e.Key))
			w.out.WriteByte(' ')
			w.writeValue(e.Val, depth+1)
		}
		w.out.WriteByte('\n')
		w.indent(depth)
		w.out.WriteString(">>")
		return
	}

	for _, e := range entries {
		w.out.WriteByte(' ')
		w.out.WriteString(string(e.Key))
		w.out.WriteByte(' ')
		w.writeValue(e.Val, depth)
	}
	w.out.WriteString(" >>")
}

func (w *writer) indent(depth int) {
	for i := 0; i < depth; i++ {
		w.out.WriteString("  ")
	}
}

// writeXref emits a classic cross-reference table covering object 0 (the
// free-list head) plus one subsection per contiguous run of present,
// ascending object numbers — valid even when the object table has gaps.
func writeXref(out *bytes.Buffer, order []int, offsets map[int]int64, maxNum int) {
	out.WriteString("xref\n")
	out.WriteString("0 1\n0000000000 65535 f \n")

	i := 0
	for i < len(order) {
		lo := order[i]
		j := i
		for j+1 < len(order) && order[j+1] == order[j]+1 {
			j++
		}
		fmt.Fprintf(out, "%d %d\n", lo, j-i+1)
		for k := i; k <= j; k++ {
			fmt.Fprintf(out, "%010d 00000 n \n", offsets[order[k]])
		}
		i = j + 1
	}
}
