package rankperm

import "testing"

func factorialInt(n int) int64 {
	r := int64(1)
	for i := int64(2); i <= int64(n); i++ {
		r *= i
	}
	return r
}

func TestRankUnrankRoundTrip(t *testing.T) {
	for n := 1; n <= 7; n++ {
		ref := make([]int, n)
		for i := range ref {
			ref[i] = i
		}
		nFact := factorialInt(n)
		for r := int64(0); r < nFact; r++ {
			perm := Unrank(ref, FromUint64(uint64(r)))
			if len(perm) != n {
				t.Fatalf("n=%d r=%d: unrank returned %d items, want %d", n, r, len(perm), n)
			}
			seen := make(map[int]bool, n)
			for _, v := range perm {
				if seen[v] {
					t.Fatalf("n=%d r=%d: unrank produced duplicate %d: %v", n, r, v, perm)
				}
				seen[v] = true
			}

			got := Rank(ref, perm)
			if got.Cmp(FromUint64(uint64(r))) != 0 {
				t.Fatalf("n=%d r=%d: rank(unrank(r))=%s, want %d", n, r, got.String(), r)
			}
		}
	}
}

func TestRankOfIdentityIsZero(t *testing.T) {
	ref := []string{"a", "b", "c", "d"}
	if got := Rank(ref, ref); got.Cmp(Zero()) != 0 {
		t.Fatalf("rank(ref, ref) = %s, want 0", got.String())
	}
}

func TestUnrankZeroIsReference(t *testing.T) {
	ref := []string{"a", "b", "c", "d", "e"}
	got := Unrank(ref, Zero())
	for i := range ref {
		if got[i] != ref[i] {
			t.Fatalf("unrank(ref, 0) = %v, want %v", got, ref)
		}
	}
}

func TestAvailableBitsTable(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 0},
		{2, 1}, {3, 2}, {4, 4}, {5, 6}, {6, 9}, {7, 12}, {8, 15},
	}
	for _, c := range cases {
		if got := AvailableBits(c.n); got != c.want {
			t.Errorf("AvailableBits(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestAvailableBitsOversized(t *testing.T) {
	if !Oversized(MaxDictSize + 1) {
		t.Fatalf("Oversized(%d) = false, want true", MaxDictSize+1)
	}
	if AvailableBits(MaxDictSize+1) != 0 {
		t.Fatalf("AvailableBits(%d) != 0 for an oversized dictionary", MaxDictSize+1)
	}
}

func TestBigIntBitOps(t *testing.T) {
	x := Zero()
	x = x.SetBit(0).SetBit(3)
	if !x.TestBit(0) || !x.TestBit(3) {
		t.Fatalf("expected bits 0 and 3 set, got %s", x.String())
	}
	if x.TestBit(1) || x.TestBit(2) {
		t.Fatalf("unexpected bits set: %s", x.String())
	}
	if x.Uint64() != 9 {
		t.Fatalf("x = %s, want 9", x.String())
	}
}

func TestFactorial(t *testing.T) {
	cases := map[int]uint64{0: 1, 1: 1, 2: 2, 3: 6, 4: 24, 5: 120, 6: 720, 7: 5040, 8: 40320}
	for n, want := range cases {
		if got := Factorial(n); got.Uint64() != want {
			t.Errorf("Factorial(%d) = %s, want %d", n, got.String(), want)
		}
	}
}
