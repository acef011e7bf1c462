package lex

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/benedoc-inc/pdfsteg/pdfval"
)

const fixturePDF = "%PDF-1.4\n" +
	"1 0 obj\n<< /Type /A /K1 1 /K2 2 >>\nendobj\n" +
	"2 0 obj\n<< /Type /B /K1 1 /K2 2 /K3 3 >>\nendobj\n" +
	"trailer\n<< /Root 1 0 R /Size 3 >>\n%%EOF\n"

func TestParseDocumentFindsAllObjects(t *testing.T) {
	doc, err := ParseDocument([]byte(fixturePDF))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.Objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(doc.Objects))
	}
	if doc.Objects[1].Value.Kind != pdfval.KindDict {
		t.Fatalf("object 1 value is not a dictionary")
	}
	if len(doc.Objects[1].Value.Dict.Entries) != 3 {
		t.Fatalf("object 1 has %d entries, want 3", len(doc.Objects[1].Value.Dict.Entries))
	}
	if len(doc.Objects[2].Value.Dict.Entries) != 4 {
		t.Fatalf("object 2 has %d entries, want 4", len(doc.Objects[2].Value.Dict.Entries))
	}
	if string(doc.Root) != "1 0 R" {
		t.Fatalf("Root = %q, want %q", doc.Root, "1 0 R")
	}
}

func TestParseDocumentRecordsDictOffsets(t *testing.T) {
	buf := []byte(fixturePDF)
	doc, err := ParseDocument(buf)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	off := doc.Objects[1].Value.Dict.Offset
	if buf[off] != '<' || buf[off+1] != '<' {
		t.Fatalf("offset %d does not point at '<<': %q", off, buf[off:off+2])
	}
}

func TestParseDocumentDictHookFiresForNestedDicts(t *testing.T) {
	src := "%PDF-1.4\n1 0 obj\n<< /Type /Page /Resources << /Font << /F1 2 0 R >> >> >>\nendobj\n" +
		"trailer\n<< /Root 1 0 R /Size 2 >>\n%%EOF\n"

	var offsets []int64
	_, err := ParseDocumentWithHook([]byte(src), func(d *pdfval.Dictionary) {
		offsets = append(offsets, d.Offset)
	})
	if err != nil {
		t.Fatalf("ParseDocumentWithHook: %v", err)
	}
	// the top dict plus /Resources and /Font nested dicts: three hook firings.
	if len(offsets) != 3 {
		t.Fatalf("got %d dict hook firings, want 3: %v", len(offsets), offsets)
	}
}

func TestParseDocumentEntryKeysInSourceOrder(t *testing.T) {
	doc, err := ParseDocument([]byte(fixturePDF))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	var gotKeys []pdfval.Name
	for _, e := range doc.Objects[2].Value.Dict.Entries {
		gotKeys = append(gotKeys, e.Key)
	}
	wantKeys := []pdfval.Name{"/Type", "/K1", "/K2", "/K3"}
	if diff := cmp.Diff(wantKeys, gotKeys); diff != "" {
		t.Fatalf("entry key order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValueIndirectReference(t *testing.T) {
	v, pos := ParseValue([]byte("12 0 R rest"), 0, 0, nil)
	if v.Kind != pdfval.KindRaw || string(v.Raw) != "12 0 R" {
		t.Fatalf("got %q, want %q", v.Raw, "12 0 R")
	}
	if pos != len("12 0 R") {
		t.Fatalf("pos = %d, want %d", pos, len("12 0 R"))
	}
}

func TestParseValuePlainNumberIsNotAReference(t *testing.T) {
	v, _ := ParseValue([]byte("12 0 obj"), 0, 0, nil)
	if string(v.Raw) != "12" {
		t.Fatalf("got %q, want %q", v.Raw, "12")
	}
}
