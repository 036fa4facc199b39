package util

import "golang.org/x/exp/rand"

func generateRandomInt(min, max int) int {
	return min + rand.Intn(max-min)
}

// QuickSelect partially reorders arr in place so that arr[k] holds the
// element that would occupy position k under compare, every element
// before it compares <= it, and every element after it compares >= it.
func QuickSelect[T any](arr []T, k int, compare func(a, b T) int) {
	lo, hi := 0, len(arr)-1
	for lo < hi {
		p := partition(arr, lo, hi, compare)
		switch {
		case k == p:
			return
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
}

func partition[T any](arr []T, lo, hi int, compare func(a, b T) int) int {
	pivotIndex := generateRandomInt(lo, hi+1)
	pivotValue := arr[pivotIndex]
	arr[pivotIndex], arr[hi] = arr[hi], arr[pivotIndex]

	i := lo - 1
	for j := lo; j < hi; j++ {
		if compare(arr[j], pivotValue) < 0 {
			i++
			arr[i], arr[j] = arr[j], arr[i]
		}
	}
	arr[i+1], arr[hi] = arr[hi], arr[i+1]
	return i + 1
}
