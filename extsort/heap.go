package extsort

// head is the current smallest record of one run.
type head[T any] struct {
	value T
	run   int
}

// mergeHeap is a value-based min-heap of run heads. Equal values are ordered
// by run index so the merge stays stable.
type mergeHeap[T any] struct {
	cmp   func(a, b T) int
	items []head[T]
}

func newMergeHeap[T any](cmp func(a, b T) int, capacity int) *mergeHeap[T] {
	return &mergeHeap[T]{cmp: cmp, items: make([]head[T], 0, capacity)}
}

func (h *mergeHeap[T]) Len() int { return len(h.items) }

func (h *mergeHeap[T]) less(i, j int) bool {
	if c := h.cmp(h.items[i].value, h.items[j].value); c != 0 {
		return c < 0
	}
	return h.items[i].run < h.items[j].run
}

// push inserts an item while maintaining the heap invariant.
func (h *mergeHeap[T]) push(item head[T]) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// top returns the smallest head.
func (h *mergeHeap[T]) top() (head[T], bool) {
	if len(h.items) == 0 {
		return head[T]{}, false
	}
	return h.items[0], true
}

// replaceTop swaps the smallest head for the next value of the same run.
func (h *mergeHeap[T]) replaceTop(v T) {
	h.items[0].value = v
	h.siftDown(0)
}

// pop removes the smallest head.
func (h *mergeHeap[T]) pop() {
	n := len(h.items)
	if n == 0 {
		return
	}
	last := h.items[n-1]
	h.items[n-1] = head[T]{} // release references for GC
	h.items = h.items[:n-1]
	if n-1 > 0 {
		h.items[0] = last
		h.siftDown(0)
	}
}

func (h *mergeHeap[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *mergeHeap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}
