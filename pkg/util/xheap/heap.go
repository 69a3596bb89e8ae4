package xheap

import (
	"cmp"
	"iter"
	"slices"
)

// Heap 是由三路比较函数定义顺序的泛型二叉最小堆。
// 堆顶（索引 0）始终是 cmp 意义下的最小元素。
// 必须通过 [New]、[NewFunc]、[FromSlice] 或 [FromSliceFunc] 创建，
// 零值不可用（比较函数为 nil，方法调用会 panic）。
// 非并发安全。
type Heap[T any] struct {
	cmp   func(a, b T) int
	items []T
}

// New 创建按自然序排列的空最小堆。
func New[T cmp.Ordered]() *Heap[T] {
	return NewFunc(cmp.Compare[T])
}

// NewFunc 创建按自定义比较函数排列的空最小堆。
// cmp(a, b) 返回负数表示 a 排在 b 前（a 更小）。
// 如果 cmp 为 nil，会 panic。
func NewFunc[T any](cmp func(a, b T) int) *Heap[T] {
	if cmp == nil {
		panic("xheap: cmp cannot be nil")
	}
	return &Heap[T]{cmp: cmp}
}

// FromSlice 接管给定切片并原地堆化，按自然序排列。
// 调用后切片归堆所有，调用方不应再使用。堆化复杂度 O(n)。
func FromSlice[T cmp.Ordered](items []T) *Heap[T] {
	return FromSliceFunc(items, cmp.Compare[T])
}

// FromSliceFunc 接管给定切片并原地堆化，按自定义比较函数排列。
// 如果 cmp 为 nil，会 panic。堆化复杂度 O(n)。
func FromSliceFunc[T any](items []T, cmp func(a, b T) int) *Heap[T] {
	h := NewFunc(cmp)
	h.items = items
	// 自底向上堆化：叶子节点天然满足堆序，从最后一个内部节点开始下沉
	for i := len(items)/2 - 1; i >= 0; i-- {
		h.down(i)
	}
	return h
}

// Push 插入元素。O(log n)。
func (h *Heap[T]) Push(x T) {
	h.items = append(h.items, x)
	h.up(len(h.items) - 1)
}

// Pop 移除并返回堆顶（最小元素）。
// 堆为空时返回零值和 false。O(log n)。
func (h *Heap[T]) Pop() (T, bool) {
	var zero T
	n := len(h.items)
	if n == 0 {
		return zero, false
	}
	root := h.items[0]
	h.items[0] = h.items[n-1]
	h.items[n-1] = zero // 释放尾槽引用，帮助 GC
	h.items = h.items[:n-1]
	if n > 1 {
		h.down(0)
	}
	return root, true
}

// Peek 返回堆顶但不移除。
// 堆为空时返回零值和 false。O(1)。
func (h *Heap[T]) Peek() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// Replace 用 x 替换堆顶并返回原堆顶。
// 等价于 Pop 后 Push，但只做一次下沉。
// 堆为空时会 panic（程序员错误：调用前应检查 Len）。O(log n)。
func (h *Heap[T]) Replace(x T) T {
	if len(h.items) == 0 {
		panic("xheap: Replace on empty heap")
	}
	old := h.items[0]
	h.items[0] = x
	h.down(0)
	return old
}

// Len 返回当前元素数。
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Grow 确保堆还能容纳 n 个元素而无需重新分配。
// n <= 0 时无操作。
func (h *Heap[T]) Grow(n int) {
	if n <= 0 {
		return
	}
	h.items = slices.Grow(h.items, n)
}

// Clear 清空堆但保留底层容量。
// 元素槽会被置零以释放引用。
func (h *Heap[T]) Clear() {
	clear(h.items)
	h.items = h.items[:0]
}

// Take 取走底层切片并清空堆，元素顺序未定义（内部堆序）。
// 返回的切片归调用方所有，堆随后可继续使用（从空开始）。
// 这是批量抽取的零拷贝路径，避免逐个 Pop 的 O(n log n) 开销。
func (h *Heap[T]) Take() []T {
	out := h.items
	h.items = nil
	return out
}

// All 返回所有元素的迭代器，顺序未定义（内部堆序）。
// 不修改堆，每次调用可重新迭代。迭代期间不可修改堆。
func (h *Heap[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range h.items {
			if !yield(v) {
				return
			}
		}
	}
}

// up 将索引 i 处的元素上浮到堆序位置。
func (h *Heap[T]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.cmp(h.items[i], h.items[parent]) >= 0 {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

// down 将索引 i 处的元素下沉到堆序位置。
func (h *Heap[T]) down(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		least := left
		if right := left + 1; right < n && h.cmp(h.items[right], h.items[least]) < 0 {
			least = right
		}
		if h.cmp(h.items[least], h.items[i]) >= 0 {
			return
		}
		h.items[i], h.items[least] = h.items[least], h.items[i]
		i = least
	}
}
