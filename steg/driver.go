// Package steg implements the PDF dictionary-order steganography codec:
// hiding payload bits in the key order of PDF dictionaries, which the format
// leaves semantically unordered. Capacity, Write and Read are the three
// entry points a caller (the cmd/pdfsteg CLI) needs.
package steg

import (
	"bytes"

	"github.com/benedoc-inc/pdfsteg/bitio"
	"github.com/benedoc-inc/pdfsteg/offsetstream"
	"github.com/benedoc-inc/pdfsteg/pdfval/lex"
	"github.com/benedoc-inc/pdfsteg/pdfval/pwrite"
)

// Capacity reports how many whole bytes of payload pdfBytes can carry.
func Capacity(pdfBytes []byte) (int64, error) {
	doc, err := lex.ParseDocument(pdfBytes)
	if err != nil {
		return 0, parseErr("failed to parse PDF", err)
	}

	src := bitio.NullSource()
	enc := &encoder{src: src}
	if _, err := pwrite.Write(doc, enc.hook); err != nil {
		return 0, ioErr("failed to walk document for capacity probe", err)
	}
	return src.Consumed() / 8, nil
}

// Options configures WriteWithOptions beyond what Write and WriteMode expose:
// a PDF version override for the rewritten header, and a verbose encode trace.
type Options struct {
	// Mode selects the whitespace layout of every dictionary; it does not
	// affect the entry order that carries the hidden channel.
	Mode pwrite.Mode
	// Version overrides the "%PDF-X.Y" header stamped on the output. Empty
	// keeps whatever version the input document declared.
	Version string
	// Verbose logs one trace line per dictionary that carries payload bits:
	// its source offset, bit count, and the rank written, mirroring the
	// original tool's write-time trace.
	Verbose bool
}

// Write hides payload in pdfBytes's dictionary key order in pwrite.ModeCompact,
// returning the rewritten document. It fails with an ErrCodeCapacity
// StegError if payload does not fit.
func Write(pdfBytes []byte, payload []byte) ([]byte, error) {
	return WriteWithOptions(pdfBytes, payload, Options{Mode: pwrite.ModeCompact})
}

// WriteMode is Write with an explicit dictionary layout mode.
func WriteMode(pdfBytes []byte, payload []byte, mode pwrite.Mode) ([]byte, error) {
	return WriteWithOptions(pdfBytes, payload, Options{Mode: mode})
}

// WriteWithOptions is Write with full control over dictionary layout, a PDF
// version override, and verbose encode tracing.
func WriteWithOptions(pdfBytes []byte, payload []byte, opts Options) ([]byte, error) {
	capacityBytes, err := Capacity(pdfBytes)
	if err != nil {
		return nil, err
	}
	if int64(len(payload)) > capacityBytes {
		return nil, capacityErr(int64(len(payload)), capacityBytes)
	}

	doc, err := lex.ParseDocument(pdfBytes)
	if err != nil {
		return nil, parseErr("failed to parse PDF", err)
	}
	if opts.Version != "" {
		doc.Version = opts.Version
	}

	src := bitio.NewSource(bytes.NewReader(payload), int64(len(payload)))
	enc := &encoder{src: src, verbose: opts.Verbose}
	out, err := pwrite.WriteMode(doc, enc.hook, opts.Mode)
	if err != nil {
		return nil, ioErr("failed to serialize document", err)
	}
	return out, nil
}

// Read recovers a payload previously hidden by Write. Warnings about
// malformed (not steganography-participating) dictionaries are returned
// alongside the payload rather than failing the read.
func Read(pdfBytes []byte) (payload []byte, warnings []*Warning, err error) {
	col := offsetstream.NewCollector()
	dec := &decoder{col: col}

	_, perr := lex.ParseDocumentWithHook(pdfBytes, dec.hook)
	if perr != nil {
		return nil, nil, parseErr("failed to parse PDF", perr)
	}

	var buf bytes.Buffer
	sink := bitio.NewSink(&buf)
	if err := col.Flush(sink); err != nil {
		return nil, nil, ioErr("failed to assemble recovered payload", err)
	}

	return buf.Bytes(), dec.warnings, nil
}
