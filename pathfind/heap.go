package pathfind

import "errors"

var (
	ErrEmptyHeap   = errors.New("pathfind: pop from empty heap")
	ErrNoHeapIndex = errors.New("pathfind: item has no heap index")
)

// Item is anything the Heap can order. CompareTo returns a positive value
// when the receiver should be closer to the root than other.
type Item[T any] interface {
	comparable
	CompareTo(other T) int
	HeapIndex() int
	SetHeapIndex(i int)
}

// Heap is a binary heap where the root is the item with the highest
// priority according to CompareTo. Every item records its own slot so
// Contains and Update do not scan.
type Heap[T Item[T]] struct {
	items []T
}

func NewHeap[T Item[T]](capacity int) *Heap[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Heap[T]{items: make([]T, 0, capacity)}
}

func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Add inserts item and sifts it towards the root.
func (h *Heap[T]) Add(item T) {
	mustHaveItem(item)
	item.SetHeapIndex(len(h.items))
	h.items = append(h.items, item)
	h.sortUp(item)
}

// Peek returns the root without removing it.
func (h *Heap[T]) Peek() T {
	if len(h.items) == 0 {
		panic(ErrEmptyHeap)
	}
	return h.items[0]
}

// PopFirst removes and returns the root.
func (h *Heap[T]) PopFirst() T {
	n := len(h.items)
	if n == 0 {
		panic(ErrEmptyHeap)
	}

	first := h.items[0]
	last := h.items[n-1]
	var zero T
	h.items[n-1] = zero
	h.items = h.items[:n-1]
	first.SetHeapIndex(notInHeap)

	if n == 1 {
		return first
	}

	last.SetHeapIndex(0)
	h.items[0] = last
	h.sortDown(last)
	return first
}

// Contains reports whether item currently occupies the slot it recorded.
func (h *Heap[T]) Contains(item T) bool {
	mustHaveItem(item)
	i := item.HeapIndex()
	if i < 0 || i >= len(h.items) {
		return false
	}
	return h.items[i] == item
}

// Update restores heap order after item's priority changed. The direction
// of the change is not known, so both directions are tried.
func (h *Heap[T]) Update(item T) {
	if !h.Contains(item) {
		return
	}
	h.sortUp(item)
	h.sortDown(item)
}

func (h *Heap[T]) sortUp(item T) {
	for {
		i := item.HeapIndex()
		if i == 0 {
			return
		}
		parent := h.items[(i-1)/2]
		if item.CompareTo(parent) <= 0 {
			return
		}
		h.swap(item, parent)
	}
}

func (h *Heap[T]) sortDown(item T) {
	for {
		i := item.HeapIndex()
		left := 2*i + 1
		right := 2*i + 2
		if left >= len(h.items) {
			return
		}

		swapIndex := left
		if right < len(h.items) && h.items[left].CompareTo(h.items[right]) < 0 {
			swapIndex = right
		}

		if item.CompareTo(h.items[swapIndex]) >= 0 {
			return
		}
		h.swap(item, h.items[swapIndex])
	}
}

func (h *Heap[T]) swap(a, b T) {
	ai := a.HeapIndex()
	bi := b.HeapIndex()
	h.items[ai] = b
	h.items[bi] = a
	a.SetHeapIndex(bi)
	b.SetHeapIndex(ai)
}

func mustHaveItem[T Item[T]](item T) {
	var zero T
	if item == zero {
		panic(ErrNoHeapIndex)
	}
}
