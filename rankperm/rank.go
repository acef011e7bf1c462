package rankperm

// Unrank applies rank r to the sorted reference ref, returning the
// permutation of ref that Rank(ref, Unrank(ref, r)) maps back to r. Rank 0
// yields ref itself. It implements the swap-based Myrvold-Ruskey scheme in
// factorial base with each digit mirrored so that rank 0 is the identity:
// for n from len(v) down to 1, swap v[n-1] with v[n-1-(r mod n)], then r /= n.
//
// ref is never mutated; the returned slice is a fresh permutation.
func Unrank[T any](ref []T, r *Int) []T {
	v := make([]T, len(ref))
	copy(v, ref)

	cur := r.clone()
	for n := len(v); n > 0; n-- {
		var j uint
		cur, j = cur.DivModSmall(uint(n))
		i := n - 1 - int(j)
		v[n-1], v[i] = v[i], v[n-1]
	}
	return v
}

// Rank computes the rank r such that Unrank(ref, r) equals observed, where
// observed is some permutation of ref. ref and observed must contain the same
// elements (by equality); behavior is undefined otherwise, per spec.
func Rank[T comparable](ref []T, observed []T) *Int {
	pos := make(map[T]int, len(ref))
	for i, item := range ref {
		pos[item] = i
	}

	idx := make([]int, len(observed))
	for i, item := range observed {
		idx[i] = pos[item]
	}

	return rankIndices(idx)
}

// rankIndices ranks a permutation of [0, len(v)) against the identity
// reference, following the recursive rank1(n, v, v_i) scheme with the digit
// mirrored to match Unrank (so the identity permutation ranks to 0):
//
//	rank1(n, v, v_i):
//	  if n == 1: return 0
//	  s = v[n-1]
//	  swap(v[n-1], v[v_i[n-1]]); swap(v_i[s], v_i[n-1])
//	  return (n-1-s) + n * rank1(n-1, v, v_i)
func rankIndices(v []int) *Int {
	n := len(v)
	vi := make([]int, n)
	for i, x := range v {
		vi[x] = i
	}

	v = append([]int(nil), v...) // work on a private copy

	// The recursion f(m) = (m-1-s_m) + m*f(m-1) nests smallest-first, but the
	// swap that exposes s_m only makes sense peeling from m=n down to 2 (each
	// step shrinks the live prefix by one). So collect the digits descending,
	// then fold them back up ascending to match the recurrence's nesting order.
	digits := make([]int, 0, n-1)
	weights := make([]int, 0, n-1)
	for m := n; m > 1; m-- {
		s := v[m-1]
		v[m-1], v[vi[m-1]] = v[vi[m-1]], v[m-1]
		vi[s], vi[m-1] = vi[m-1], vi[s]
		digits = append(digits, m-1-s)
		weights = append(weights, m)
	}

	rank := Zero()
	for i := len(digits) - 1; i >= 0; i-- {
		rank = rank.MulSmall(uint(weights[i])).AddSmall(uint(digits[i]))
	}
	return rank
}
