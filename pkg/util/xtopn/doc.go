// Package xtopn 提供固定容量的 Top-N 选择容器。
//
// xtopn 在任意长度的输入流上只保留比较意义下最优的 N 个元素，
// 其余元素在到达时即被丢弃。典型场景：Top-K 搜索结果、Top-K 分数、
// 慢查询榜单等"只要最好的 K 个"的选择逻辑。
//
// # 核心特性
//
//   - 泛型支持：自然序类型用 [New]，任意类型配比较函数用 [NewFunc]
//   - 有界内存：无论输入多长，内存占用固定为 O(capacity)
//   - O(log capacity) 插入：满容量时先与当前最差保留元素比较，
//     劣于（或等于）它的新元素 O(1) 直接丢弃
//   - 双序抽取：[TopN.PopSorted] 最优在前的有序抽取，
//     [TopN.Drain]/[TopN.All] 无序抽取/遍历
//
// # 快速示例
//
//	top := xtopn.New[int](3)
//	for _, v := range []int{5, 1, 9, 3, 7} {
//	    top.Push(v)
//	}
//	fmt.Println(top.PopSorted()) // [9 7 5]
//
// 自定义比较函数（分数最高的 3 条记录）：
//
//	top := xtopn.NewFunc(3, func(a, b Result) int {
//	    return cmp.Compare(a.Score, b.Score)
//	})
//
// # 设计决策
//
// 内部是按正向比较函数排列的最小堆（[xheap.Heap]）：比较意义下
// 越大越优，堆顶恰好是当前保留集合中最差的元素，淘汰判断只看堆顶。
// 自然序与自定义比较函数共用同一条淘汰算法——两种策略的差异
// 仅在于比较函数的取值，不在控制流。
//
// 平局归属：新元素与当前最差保留元素相等时丢弃新元素
// （严格优于才淘汰，先到者优先保留）。
//
// 容量 < 1 是程序员错误，构造时直接 panic 而非返回 error：
// 容量为 0 的 Top-N 容器没有意义。
//
// # 注意事项
//
//   - 非并发安全：多 goroutine 分片选择时应每个 goroutine 持有
//     独立实例，最后用 PushSeq(Drain()) 合并
//   - 比较函数必须是严格全序且在容器生命周期内保持一致
//   - [TopN.All] 与 [TopN.Drain] 的元素顺序是内部堆序，未定义，
//     不应对其断言
//   - [TopN.PopSorted] 使用不稳定排序，相等元素之间的相对顺序未定义
//
// # 平台要求
//
// 需要 Go 1.25+（iter.Seq 迭代器）。
package xtopn
