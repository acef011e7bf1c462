package lex

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"

	"github.com/benedoc-inc/pdfsteg/pdfval"
)

var (
	headerPat = regexp.MustCompile(`%PDF-(\d\.\d)`)
	objPat    = regexp.MustCompile(`(\d+)[ \t\r\n]+(\d+)[ \t\r\n]+obj\b`)
	trailerRe = regexp.MustCompile(`trailer`)
)

// ParseDocument parses the whole of buf by locating every "N G obj" body via
// a forward scan (rather than trusting the cross-reference table, which this
// package does not chase), so later-in-file redefinitions of an object
// number — the ordinary result of an incremental update — naturally replace
// earlier ones as the scan proceeds. Streams are located by byte search for
// the literal "stream"/"endstream" keywords rather than by resolving
// /Length, since /Length may itself be an indirect reference to an object
// not yet parsed.
func ParseDocument(buf []byte) (*pdfval.Document, error) {
	return ParseDocumentWithHook(buf, nil)
}

// ParseDocumentWithHook is ParseDocument plus a hook invoked for every
// dictionary found while parsing each indirect object's body (not for the
// trailer dictionary, which is never a steganography carrier). Used by the
// decode path to recover permutation ranks as dictionaries are encountered.
func ParseDocumentWithHook(buf []byte, onDict DictHook) (*pdfval.Document, error) {
	doc := &pdfval.Document{
		Version: "1.7",
		Objects: make(map[int]*pdfval.IndirectObject),
	}

	if m := headerPat.FindSubmatch(buf); m != nil {
		doc.Version = string(m[1])
	}

	cursor := 0
	seen := make(map[int]bool)
	for cursor < len(buf) {
		loc := objPat.FindSubmatchIndex(buf[cursor:])
		if loc == nil {
			break
		}
		numStr := buf[cursor+loc[2] : cursor+loc[3]]
		genStr := buf[cursor+loc[4] : cursor+loc[5]]
		objKeywordEnd := cursor + loc[1]

		num := atoiDigits(numStr)
		gen := atoiDigits(genStr)

		endIdx := bytes.Index(buf[objKeywordEnd:], []byte("endobj"))
		var bodyEnd int
		if endIdx < 0 {
			bodyEnd = len(buf)
		} else {
			bodyEnd = objKeywordEnd + endIdx
		}
		body := buf[objKeywordEnd:bodyEnd]

		obj, err := parseObjectBody(body, int64(objKeywordEnd), num, gen, onDict)
		if err != nil {
			cursor = bodyEnd + len("endobj")
			continue
		}

		doc.Objects[num] = obj
		if !seen[num] {
			seen[num] = true
			doc.Order = append(doc.Order, num)
		}

		if endIdx < 0 {
			break
		}
		cursor = bodyEnd + len("endobj")
	}

	if len(doc.Objects) == 0 {
		return nil, fmt.Errorf("pdfval/lex: no indirect objects found")
	}

	sort.Ints(doc.Order)

	if err := parseTrailer(buf, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// parseObjectBody parses the region between "N G obj" and "endobj". If a
// "stream" keyword follows the dictionary/value, the raw stream bytes are
// carved out by locating the matching "endstream" keyword.
func parseObjectBody(body []byte, base int64, num, gen int, onDict DictHook) (*pdfval.IndirectObject, error) {
	val, pos := ParseValue(body, 0, base, onDict)

	rest := skipWhitespace(body, pos)
	const streamKw = "stream"
	if rest+len(streamKw) <= len(body) && string(body[rest:rest+len(streamKw)]) == streamKw {
		dataStart := rest + len(streamKw)
		if dataStart < len(body) && body[dataStart] == '\r' {
			dataStart++
		}
		if dataStart < len(body) && body[dataStart] == '\n' {
			dataStart++
		}
		endIdx := bytes.Index(body[dataStart:], []byte("endstream"))
		var dataEnd int
		if endIdx < 0 {
			dataEnd = len(body)
		} else {
			dataEnd = dataStart + endIdx
		}
		raw := body[dataStart:dataEnd]
		raw = bytes.TrimSuffix(raw, []byte("\r\n"))
		raw = bytes.TrimSuffix(raw, []byte("\n"))
		raw = bytes.TrimSuffix(raw, []byte("\r"))

		return &pdfval.IndirectObject{Num: num, Gen: gen, Value: val, IsStream: true, Stream: raw}, nil
	}

	return &pdfval.IndirectObject{Num: num, Gen: gen, Value: val}, nil
}

// parseTrailer locates the last classic "trailer << ... >>" section in buf
// and extracts the /Root, /Info, /Encrypt and /ID references the rewritten
// document needs. Cross-reference-stream-only files (no classic trailer
// keyword) are not supported; see the pdfval/lex entry in DESIGN.md.
func parseTrailer(buf []byte, doc *pdfval.Document) error {
	matches := trailerRe.FindAllIndex(buf, -1)
	if len(matches) == 0 {
		return fmt.Errorf("pdfval/lex: no trailer found (cross-reference-stream-only files are not supported)")
	}
	last := matches[len(matches)-1]
	pos := skipWhitespace(buf, last[1])
	if pos >= len(buf) || buf[pos] != '<' || pos+1 >= len(buf) || buf[pos+1] != '<' {
		return fmt.Errorf("pdfval/lex: malformed trailer")
	}
	val, _ := ParseValue(buf, pos, 0, nil)
	if val.Kind != pdfval.KindDict {
		return fmt.Errorf("pdfval/lex: trailer is not a dictionary")
	}

	if v, ok := val.Dict.Get("/Root"); ok {
		doc.Root = v.Raw
	} else {
		return fmt.Errorf("pdfval/lex: trailer missing /Root")
	}
	if v, ok := val.Dict.Get("/Info"); ok {
		doc.Info = v.Raw
	}
	if v, ok := val.Dict.Get("/Encrypt"); ok {
		doc.Encrypt = v.Raw
	}
	if v, ok := val.Dict.Get("/ID"); ok {
		doc.ID = rawSpanOfArray(buf, v)
	}
	return nil
}

// rawSpanOfArray re-renders an already-parsed array value back to raw bytes
// for the handful of trailer fields (/ID) that are copied through verbatim
// rather than walked for nested dictionaries.
func rawSpanOfArray(buf []byte, v pdfval.Value) []byte {
	if v.Kind == pdfval.KindRaw {
		return v.Raw
	}
	if v.Kind != pdfval.KindArray {
		return nil
	}
	var out bytes.Buffer
	out.WriteByte('[')
	for i, item := range v.Array {
		if i > 0 {
			out.WriteByte(' ')
		}
		if item.Kind == pdfval.KindRaw {
			out.Write(item.Raw)
		}
	}
	out.WriteByte(']')
	return out.Bytes()
}

func atoiDigits(b []byte) int {
	n := 0
	for _, c := range b {
		n = n*10 + int(c-'0')
	}
	return n
}
