// Package suffixarray builds a suffix array and LCP array over a slice of
// uint32 tokens using prefix-doubling with counting-sort ranking in every
// doubling round, so that construction stays O(n log n) at the 10^5-token
// scale. Only the initial single-token ranking uses a comparison sort.
package suffixarray

import "sort"

// Build returns the suffix array and LCP array of t. sa[i] is the starting
// position of the i-th suffix in sorted order; lcp[i] is the length of the
// longest common prefix between the suffixes at sa[i-1] and sa[i] (lcp[0] is
// always 0).
func Build(t []uint32) (sa []int, lcp []int) {
	n := len(t)
	if n == 0 {
		return []int{}, []int{}
	}
	if n == 1 {
		return []int{0}, []int{0}
	}
	sa = buildSuffixArray(t)
	lcp = buildLCP(t, sa)
	return sa, lcp
}

// buildSuffixArray runs prefix doubling: rank[i] after round k identifies
// each suffix's rank by its first 2^k tokens. Each round re-ranks by the
// pair (rank[i], rank[i+k]) using two counting-sort passes (radix sort on
// the pair), avoiding an n*log^2(n) comparison sort.
func buildSuffixArray(t []uint32) []int {
	n := len(t)
	sa := make([]int, n)
	rank := make([]int, n)
	tmp := make([]int, n)

	// Initial ranks: order positions by raw token value. Token values span
	// the full uint32 range, too wide for one counting-sort bucket per value,
	// so this single ranking step uses a comparison sort.
	sa = sa0(n)
	sort.Slice(sa, func(a, b int) bool { return t[sa[a]] < t[sa[b]] })
	r := 0
	rank[sa[0]] = 0
	for i := 1; i < n; i++ {
		if t[sa[i]] != t[sa[i-1]] {
			r++
		}
		rank[sa[i]] = r
	}

	for k := 1; r < n-1; k *= 2 {
		secondKey := func(i int) int {
			if i+k < n {
				return rank[i+k] + 1
			}
			return 0
		}
		sa = countingSortByKey(sa0(n), secondKey, n+1)
		sa = countingSortByKeyStable(sa, func(i int) int { return rank[i] }, n)

		tmp[sa[0]] = 0
		r = 0
		for i := 1; i < n; i++ {
			prev, cur := sa[i-1], sa[i]
			if rank[cur] != rank[prev] || secondKey(cur) != secondKey(prev) {
				r++
			}
			tmp[cur] = r
		}
		copy(rank, tmp)
		if r == n-1 {
			break
		}
	}
	return sa
}

func sa0(n int) []int {
	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	return sa
}

// countingSortByKey stable-sorts idx by key(i) in [0,bound) using counting
// sort, O(n+bound).
func countingSortByKey(idx []int, key func(int) int, bound int) []int {
	count := make([]int, bound+1)
	for _, i := range idx {
		count[key(i)+1]++
	}
	for i := 0; i < bound; i++ {
		count[i+1] += count[i]
	}
	out := make([]int, len(idx))
	for _, i := range idx {
		k := key(i)
		out[count[k]] = i
		count[k]++
	}
	return out
}

// countingSortByKeyStable is countingSortByKey over an already-ordered
// index slice, preserving relative order of equal keys (used for the
// second radix pass, keyed by the primary rank).
func countingSortByKeyStable(idx []int, key func(int) int, bound int) []int {
	return countingSortByKey(idx, key, bound)
}

// buildLCP runs Kasai's algorithm: O(n) given the suffix array and its
// inverse (rank) array.
func buildLCP(t []uint32, sa []int) []int {
	n := len(t)
	lcp := make([]int, n)
	rank := make([]int, n)
	for i, s := range sa {
		rank[s] = i
	}
	h := 0
	for i := 0; i < n; i++ {
		if rank[i] == 0 {
			h = 0
			continue
		}
		j := sa[rank[i]-1]
		for i+h < n && j+h < n && t[i+h] == t[j+h] {
			h++
		}
		lcp[rank[i]] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}
