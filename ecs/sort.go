package ecs

// SortStable returns a copy of items ordered by beforeOrEqual using a
// bottom-up merge sort. beforeOrEqual(a, b) must report whether a may be
// placed before b; elements it treats as equal keep their input order.
// items is not modified.
func SortStable[T any](items []T, beforeOrEqual func(a, b T) bool) []T {
	n := len(items)
	src := make([]T, n)
	copy(src, items)
	if n < 2 {
		return src
	}

	dst := make([]T, n)
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRuns(dst, src, lo, mid, hi, beforeOrEqual)
		}
		src, dst = dst, src
	}

	return src
}

// mergeRuns merges src[lo:mid] and src[mid:hi] into dst[lo:hi], taking from
// the left run whenever it is not strictly after the right run.
func mergeRuns[T any](dst, src []T, lo, mid, hi int, beforeOrEqual func(a, b T) bool) {
	i, j := lo, mid
	for k := lo; k < hi; k++ {
		if i < mid && (j >= hi || beforeOrEqual(src[i], src[j])) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
	}
}
