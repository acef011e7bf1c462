package lex

import "github.com/benedoc-inc/pdfsteg/pdfval"

// DictHook is invoked once a dictionary's entries have been fully parsed,
// immediately before ParseValue returns it to its caller — so an enclosing
// dictionary's hook always fires after every dictionary nested inside it.
// It is the decode-side counterpart of pwrite's EncodeHook.
type DictHook func(d *pdfval.Dictionary)

// ParseValue parses one value starting at pos (after leading whitespace) and
// returns it along with the position just past it. base is added to every
// recorded dictionary offset, letting callers parse a sub-slice of a larger
// buffer while still recording offsets relative to that larger buffer. onDict,
// if non-nil, fires for every dictionary found anywhere in the value,
// including nested ones.
func ParseValue(buf []byte, pos int, base int64, onDict DictHook) (pdfval.Value, int) {
	pos = skipWhitespace(buf, pos)
	if pos >= len(buf) {
		return pdfval.Value{Kind: pdfval.KindRaw, Raw: nil}, pos
	}

	switch buf[pos] {
	case '<':
		if pos+1 < len(buf) && buf[pos+1] == '<' {
			return parseDict(buf, pos, base, onDict)
		}
		end := scanHexString(buf, pos)
		return pdfval.Value{Kind: pdfval.KindRaw, Raw: buf[pos:end]}, end
	case '[':
		return parseArray(buf, pos, base, onDict)
	case '(':
		end := scanLiteralString(buf, pos)
		return pdfval.Value{Kind: pdfval.KindRaw, Raw: buf[pos:end]}, end
	case '/':
		end := scanName(buf, pos)
		return pdfval.Value{Kind: pdfval.KindRaw, Raw: buf[pos:end]}, end
	default:
		return parseBareOrReference(buf, pos)
	}
}

// parseBareOrReference parses a number/keyword token, then looks ahead for
// the "G R" suffix of an indirect reference, folding all three tokens into a
// single raw span when present.
func parseBareOrReference(buf []byte, pos int) (pdfval.Value, int) {
	end := scanBareToken(buf, pos)
	first := buf[pos:end]
	if !isDigits(first) {
		return pdfval.Value{Kind: pdfval.KindRaw, Raw: first}, end
	}

	p2 := skipWhitespace(buf, end)
	end2 := scanBareToken(buf, p2)
	if end2 == p2 || !isDigits(buf[p2:end2]) {
		return pdfval.Value{Kind: pdfval.KindRaw, Raw: first}, end
	}

	p3 := skipWhitespace(buf, end2)
	if p3 >= len(buf) || buf[p3] != 'R' {
		return pdfval.Value{Kind: pdfval.KindRaw, Raw: first}, end
	}
	end3 := p3 + 1
	if end3 < len(buf) && !isWhitespace(buf[end3]) && !isDelimiter(buf[end3]) {
		// "R" was actually the prefix of a longer bare token (e.g. "Root") —
		// not a reference.
		return pdfval.Value{Kind: pdfval.KindRaw, Raw: first}, end
	}

	return pdfval.Value{Kind: pdfval.KindRaw, Raw: buf[pos:end3]}, end3
}

func parseArray(buf []byte, pos int, base int64, onDict DictHook) (pdfval.Value, int) {
	pos++ // consume '['
	var items []pdfval.Value
	for {
		pos = skipWhitespace(buf, pos)
		if pos >= len(buf) {
			break
		}
		if buf[pos] == ']' {
			pos++
			break
		}
		var v pdfval.Value
		v, pos = ParseValue(buf, pos, base, onDict)
		items = append(items, v)
	}
	return pdfval.Value{Kind: pdfval.KindArray, Array: items}, pos
}

// parseDict parses a "<< ... >>" body starting at the first '<'. Offset is
// recorded as base+pos.
func parseDict(buf []byte, pos int, base int64, onDict DictHook) (pdfval.Value, int) {
	offset := base + int64(pos)
	pos += 2 // consume '<<'
	var entries []pdfval.DictEntry
	for {
		pos = skipWhitespace(buf, pos)
		if pos >= len(buf) {
			break
		}
		if buf[pos] == '>' && pos+1 < len(buf) && buf[pos+1] == '>' {
			pos += 2
			break
		}
		if buf[pos] != '/' {
			// Tolerant mode: skip one unexpected token rather than aborting
			// the whole parse.
			next := scanBareToken(buf, pos)
			if next == pos {
				pos++
			} else {
				pos = next
			}
			continue
		}
		keyEnd := scanName(buf, pos)
		key := pdfval.Name(buf[pos:keyEnd])
		pos = keyEnd

		var val pdfval.Value
		val, pos = ParseValue(buf, pos, base, onDict)
		entries = append(entries, pdfval.DictEntry{Key: key, Val: val})
	}

	dict := &pdfval.Dictionary{Entries: entries, Offset: offset}
	if onDict != nil {
		onDict(dict)
	}
	return pdfval.Value{Kind: pdfval.KindDict, Dict: dict}, pos
}
