package xtopn

import (
	"cmp"
	"iter"
	"slices"

	"github.com/omeyang/topkit/pkg/util/xheap"
)

// TopN 是固定容量的 Top-N 选择容器。
// 任意时刻保留的都是已 Push 的元素中比较意义下最大的至多 capacity 个。
// 必须通过 [New]、[NewFunc]、[Collect] 或 [CollectFunc] 创建，零值不可用。
// 非并发安全。
type TopN[T any] struct {
	heap     *xheap.Heap[T]
	cmp      func(a, b T) int
	capacity int
}

// New 创建按自然序选择的 Top-N 容器，保留最大的 capacity 个元素。
// 如果 capacity < 1，会 panic。
func New[T cmp.Ordered](capacity int) *TopN[T] {
	return NewFunc(capacity, cmp.Compare[T])
}

// NewFunc 创建按自定义比较函数选择的 Top-N 容器。
// cmp(a, b) > 0 表示 a 优于 b，保留的是 cmp 意义下最大的 capacity 个元素。
// cmp 必须是严格全序且在容器生命周期内保持一致。
// 如果 capacity < 1 或 cmp 为 nil，会 panic。
func NewFunc[T any](capacity int, cmp func(a, b T) int) *TopN[T] {
	if capacity < 1 {
		panic("xtopn: capacity must be at least 1")
	}
	if cmp == nil {
		panic("xtopn: cmp cannot be nil")
	}
	// 正向比较的最小堆：堆顶即当前最差保留元素
	h := xheap.NewFunc(cmp)
	h.Grow(capacity)
	return &TopN[T]{
		heap:     h,
		cmp:      cmp,
		capacity: capacity,
	}
}

// Collect 创建按自然序选择的 Top-N 容器，并把 seq 的所有元素依次 Push 进去。
// 结果与先 [New] 再逐个 Push 完全一致。
func Collect[T cmp.Ordered](capacity int, seq iter.Seq[T]) *TopN[T] {
	t := New[T](capacity)
	t.PushSeq(seq)
	return t
}

// CollectFunc 创建按自定义比较函数选择的 Top-N 容器，
// 并把 seq 的所有元素依次 Push 进去。
func CollectFunc[T any](capacity int, cmp func(a, b T) int, seq iter.Seq[T]) *TopN[T] {
	t := NewFunc(capacity, cmp)
	t.PushSeq(seq)
	return t
}

// Push 插入元素，必要时淘汰当前最差的保留元素。
//
// 未满时无条件插入；已满时与堆顶（当前最差保留元素）比较，
// 严格优于堆顶则换根淘汰，否则静默丢弃 item——丢弃是正常结果，
// 不是错误。与堆顶相等时丢弃 item（先到者优先保留）。
// O(log capacity)；丢弃路径只比较堆顶，O(1)。
func (t *TopN[T]) Push(item T) {
	if t.heap.Len() < t.capacity {
		t.heap.Push(item)
		return
	}
	worst, _ := t.heap.Peek()
	if t.cmp(item, worst) > 0 {
		t.heap.Replace(item)
	}
}

// PushSeq 按序把 seq 的每个元素经由 [TopN.Push] 插入。
// 等价于手工循环 Push，包含全部淘汰/丢弃语义。
func (t *TopN[T]) PushSeq(seq iter.Seq[T]) {
	for v := range seq {
		t.Push(v)
	}
}

// Pop 移除并返回当前最差的保留元素。
// 容器为空时返回零值和 false。O(log capacity)。
func (t *TopN[T]) Pop() (T, bool) {
	return t.heap.Pop()
}

// Peek 返回当前最差的保留元素但不移除。
// 容器为空时返回零值和 false。O(1)。
func (t *TopN[T]) Peek() (T, bool) {
	return t.heap.Peek()
}

// Len 返回当前保留的元素数，始终 ≤ [TopN.Cap]。
func (t *TopN[T]) Len() int {
	return t.heap.Len()
}

// Cap 返回构造时设定的容量。
func (t *TopN[T]) Cap() int {
	return t.capacity
}

// Clear 清空保留集合，容量不变，容器可继续使用。
func (t *TopN[T]) Clear() {
	t.heap.Clear()
}

// All 返回所有保留元素的迭代器，顺序未定义（内部堆序）。
// 不修改容器，每次调用可重新迭代。迭代期间不可修改容器。
func (t *TopN[T]) All() iter.Seq[T] {
	return t.heap.All()
}

// Drain 清空容器并返回所有被取出元素的迭代器，顺序未定义。
//
// 元素在调用 Drain 的瞬间即脱离容器（Len 立刻为 0），
// 迭代器每个元素只产出一次；提前 break 后未消费的元素随迭代器
// 丢弃，不会回到容器。返回的迭代器是一次性的。
func (t *TopN[T]) Drain() iter.Seq[T] {
	items := t.heap.Take()
	next := 0
	return func(yield func(T) bool) {
		var zero T
		for next < len(items) {
			v := items[next]
			items[next] = zero // 产出后释放槽位引用
			next++
			if !yield(v) {
				return
			}
		}
	}
}

// PopSorted 清空容器并返回所有保留元素，最优在前。
//
// 排序方向是比较函数的正向语义：自然序时最大元素在前；
// 自定义比较函数时 cmp 认为最大的元素在前。
// 使用不稳定排序，相等元素之间的相对顺序未定义。
func (t *TopN[T]) PopSorted() []T {
	items := t.heap.Take()
	slices.SortFunc(items, func(a, b T) int { return t.cmp(b, a) })
	return items
}

// PeekSorted 返回所有保留元素的有序副本，最优在前，容器不变。
// 排序语义与 [TopN.PopSorted] 一致。O(n log n)，分配一个新切片。
func (t *TopN[T]) PeekSorted() []T {
	items := slices.Collect(t.heap.All())
	slices.SortFunc(items, func(a, b T) int { return t.cmp(b, a) })
	return items
}

// Largest 返回 seq 中自然序最大的 n 个元素，最大在前。
// 元素不足 n 个时返回全部，仍然有序。n < 1 时返回 nil。
func Largest[T cmp.Ordered](n int, seq iter.Seq[T]) []T {
	if n < 1 {
		return nil
	}
	return Collect(n, seq).PopSorted()
}

// Smallest 返回 seq 中自然序最小的 n 个元素，最小在前。
// 元素不足 n 个时返回全部，仍然有序。n < 1 时返回 nil。
func Smallest[T cmp.Ordered](n int, seq iter.Seq[T]) []T {
	if n < 1 {
		return nil
	}
	return CollectFunc(n, func(a, b T) int { return cmp.Compare(b, a) }, seq).PopSorted()
}
