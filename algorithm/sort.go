package algorithm

func bubbleSort(v []int64) {
	for i := 0; i+1 < len(v); i++ {
		swapped := false
		for j := 0; j+1 < len(v)-i; j++ {
			if v[j] > v[j+1] {
				v[j], v[j+1] = v[j+1], v[j]
				swapped = true
			}
		}

		if !swapped {
			break
		}
	}
}

func selectionSort(v []int64) {
	for i := 0; i+1 < len(v); i++ {
		minIdx := i
		for j := i + 1; j < len(v); j++ {
			if v[j] < v[minIdx] {
				minIdx = j
			}
		}
		v[i], v[minIdx] = v[minIdx], v[i]
	}
}

func insertionSort(v []int64) {
	for i := 1; i < len(v); i++ {
		cur := v[i]
		pos := i
		for pos > 0 && v[pos-1] > cur {
			v[pos] = v[pos-1]
			pos--
		}
		v[pos] = cur
	}
}

func mergeSort(v []int64) {
	if len(v) < 2 {
		return
	}

	tmp := make([]int64, len(v))
	mergeRange(v, tmp, 0, len(v))
}

// mergeRange sorts v[lo:hi] using tmp[lo:hi] as scratch space.
func mergeRange(v, tmp []int64, lo, hi int) {
	if hi-lo <= 1 {
		return
	}

	mid := lo + (hi-lo)/2
	mergeRange(v, tmp, lo, mid)
	mergeRange(v, tmp, mid, hi)

	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if v[i] <= v[j] {
			tmp[k] = v[i]
			i++
		} else {
			tmp[k] = v[j]
			j++
		}
		k++
	}

	k += copy(tmp[k:], v[i:mid])
	copy(tmp[k:], v[j:hi])
	copy(v[lo:hi], tmp[lo:hi])
}

func quickSort(v []int64) {
	lo, hi := 0, len(v)-1

	// Recurse into the smaller partition, loop on the larger one.
	for lo < hi {
		i, j := partition(v, lo, hi)
		if j-lo < hi-i {
			quickRange(v, lo, j)
			lo = i
		} else {
			quickRange(v, i, hi)
			hi = j
		}
	}
}

func quickRange(v []int64, lo, hi int) {
	if lo < hi {
		quickSort(v[lo : hi+1])
	}
}

// partition performs a Hoare partition of v[lo..hi] around the middle
// element. On return every element of v[lo..j] is <= every element of
// v[i..hi] and j < i.
func partition(v []int64, lo, hi int) (int, int) {
	pivot := v[lo+(hi-lo)/2]
	i, j := lo, hi

	for i <= j {
		for v[i] < pivot {
			i++
		}
		for v[j] > pivot {
			j--
		}

		if i <= j {
			v[i], v[j] = v[j], v[i]
			i++
			j--
		}
	}

	return i, j
}

func heapSort(v []int64) {
	n := len(v)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(v, i, n)
	}

	for end := n - 1; end > 0; end-- {
		v[0], v[end] = v[end], v[0]
		siftDown(v, 0, end)
	}
}

// siftDown restores the max-heap property for the subtree rooted at root,
// considering only v[:n].
func siftDown(v []int64, root, n int) {
	for {
		child := 2*root + 1
		if child >= n {
			return
		}

		if child+1 < n && v[child+1] > v[child] {
			child++
		}

		if v[root] >= v[child] {
			return
		}

		v[root], v[child] = v[child], v[root]
		root = child
	}
}
