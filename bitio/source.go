package bitio

import "io"

// Source reads bits LSB-first from an underlying byte reader: bit i of byte b
// read is the (8*b + i)-th bit of the stream. Source tracks how many bits it
// has handed out and whether it has been exhausted.
type Source struct {
	in       io.Reader
	buf      [1]byte
	curByte  byte
	bitIndex uint // next bit to hand out within curByte, 8 means "need a new byte"
	consumed int64
	size     int64 // total bits available; negative means unbounded
	atEOF    bool
}

// unboundedSize marks a Source whose BitSize is not known up front (e.g. an
// os.Stdin payload source on write, per spec's "possibly infinite" bit_size).
const unboundedSize = -1

// NewSource wraps a byte reader of known total length in bytes. Pass -1 for
// totalBytes when the length is not known ahead of time (e.g. a pipe).
func NewSource(in io.Reader, totalBytes int64) *Source {
	size := int64(unboundedSize)
	if totalBytes >= 0 {
		size = totalBytes * 8
	}
	return &Source{in: in, bitIndex: 8, size: size}
}

// NullSource returns a Source that never runs out, yielding a 0 bit for every
// request — used by the capacity probe, which cares only about how many bits
// get requested (via Consumed), not about any actual payload content.
func NullSource() *Source {
	return &Source{bitIndex: 8, size: unboundedSize}
}

// BitSize reports the total number of bits available and whether that total
// is known (false means unbounded/unknown).
func (s *Source) BitSize() (n int64, bounded bool) {
	if s.size < 0 {
		return 0, false
	}
	return s.size, true
}

// EOF reports whether the source is exhausted: it has yielded io.EOF and no
// buffered bits remain.
func (s *Source) EOF() bool {
	return s.atEOF && s.bitIndex == 8
}

// Next returns the next bit (0 or 1) and true, or (0, false) at end of
// stream.
func (s *Source) Next() (bit int, ok bool) {
	if s.in == nil {
		// A nil reader (NullSource) never runs out: every request yields a 0
		// bit, and only Consumed's running count matters to the caller.
		s.consumed++
		return 0, true
	}
	if s.bitIndex == 8 {
		if s.atEOF {
			return 0, false
		}
		n, err := s.in.Read(s.buf[:])
		if n == 0 {
			s.atEOF = true
			return 0, false
		}
		s.curByte = s.buf[0]
		s.bitIndex = 0
		if err == io.EOF {
			// n==1 and EOF reported together by some readers; byte is still
			// valid, just mark subsequent reads exhausted.
			s.atEOF = true
		}
	}

	bit = int((s.curByte >> s.bitIndex) & 1)
	s.bitIndex++
	s.consumed++
	return bit, true
}

// Consumed returns the number of bits handed out so far.
func (s *Source) Consumed() int64 {
	return s.consumed
}
