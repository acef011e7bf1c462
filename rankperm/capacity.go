package rankperm

// AvailableBits returns k(n), the number of payload bits a dictionary with n
// permutable entries can carry: floor(log2(n!)) for n >= 2, else 0.
//
// The -1 (bit_length(n!) - 1 rather than a rounded ceil(log2)) is not an
// approximation: it guarantees every k-bit value is strictly below n!, so
// every pulled integer is a valid rank regardless of payload content. Table:
// n=2..8 -> 1,2,4,6,9,12,15.
func AvailableBits(n int) int {
	if n < 2 {
		return 0
	}
	if n > MaxDictSize {
		// Capacity for oversized dictionaries is reported as 0; callers that
		// care about why should consult Oversized.
		return 0
	}
	bl := Factorial(n).BitLen()
	if bl == 0 {
		return 0
	}
	return bl - 1
}

// Oversized reports whether n exceeds the implementation's dictionary-size
// cap, i.e. whether AvailableBits(n) == 0 for a reason other than n < 2.
func Oversized(n int) bool {
	return n > MaxDictSize
}
