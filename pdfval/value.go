// Package pdfval is the minimal PDF object model this repository parses and
// serializes documents through. It is deliberately thin: every scalar value
// (numbers, strings, names-as-values, booleans, null, indirect references) is
// kept as the exact raw bytes read from the source, since the steganography
// codec never needs to interpret them — only dictionaries and arrays need
// structure, so their entries/elements can be found, reordered (dictionaries)
// or recursed into (arrays) during encode/decode.
package pdfval

// Kind discriminates the shape of a Value.
type Kind int

const (
	KindRaw Kind = iota
	KindDict
	KindArray
)

// Name is a PDF name token, stored with its leading slash and any internal
// #xx escapes exactly as read from the source (e.g. "/Type", "/Name#20X").
type Name string

// Value is a parsed PDF value. For KindRaw, Raw holds the exact source bytes
// (a number, boolean, null, bare name-as-value, string literal/hex string, or
// an indirect reference "N G R") and is emitted unchanged. For KindDict and
// KindArray, the structured fields are populated and Raw is unused.
type Value struct {
	Kind  Kind
	Raw   []byte
	Dict  *Dictionary
	Array []Value
}

// DictEntry is one key/value pair of a dictionary, in parsed (source) order.
type DictEntry struct {
	Key Name
	Val Value
}

// Dictionary is an ordered PDF dictionary. Entries preserves the order keys
// were encountered in the source; Offset is the byte offset, in the document
// that produced this Dictionary, of its opening "<<" (meaningful only for
// dictionaries obtained by parsing — dictionaries built programmatically
// leave it at 0).
type Dictionary struct {
	Entries []DictEntry
	Offset  int64
}

// Get returns the value for key and whether it was present.
func (d *Dictionary) Get(key Name) (Value, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e.Val, true
		}
	}
	return Value{}, false
}

// KeyTypeName is the distinguished /Type key PDF convention pins first.
const KeyTypeName Name = "/Type"

// IndirectObject is one "N G obj ... endobj" body.
type IndirectObject struct {
	Num, Gen int
	Value    Value
	IsStream bool
	Stream   []byte // raw bytes between "stream\n" and "endstream", untouched
}

// Document is a fully parsed PDF: the merged (latest-revision-wins) object
// table plus the trailer references needed to rewrite a valid file.
type Document struct {
	Version string // e.g. "1.7", from the %PDF- header
	Objects map[int]*IndirectObject
	Order   []int // object numbers, ascending, the order objects are (re)written in

	Root    []byte // raw "N G R" trailer /Root value, if present
	Info    []byte // raw "N G R" trailer /Info value, if present
	Encrypt []byte // raw "N G R" trailer /Encrypt value, if present
	ID      []byte // raw trailer /ID array value, if present
}
