// Package xheap 提供泛型二叉最小堆实现。
//
// xheap 直接在切片上做 sift-up/sift-down，不经过 container/heap 的
// 接口装箱，比较逻辑由三路比较函数 func(a, b T) int 注入，
// 堆顶始终是比较函数意义下的最小元素。
//
// # 核心特性
//
//   - 泛型支持：任意元素类型，自然序类型可用 [New] 免写比较函数
//   - 三路比较：cmp(a, b) < 0 表示 a 排在 b 前，与 [cmp.Compare] 约定一致
//   - 零装箱：元素直接存储在切片中，无 interface 转换开销
//   - Replace：换根单次下沉，为"淘汰最差、放入更优"场景提供 O(log n) 原语
//   - Take：零拷贝取走底层切片，为批量抽取场景避免逐个 Pop
//
// # 快速示例
//
//	h := xheap.New[int]()
//	h.Push(3)
//	h.Push(1)
//	h.Push(2)
//	v, _ := h.Pop() // v == 1
//
// # 设计决策
//
// 不复用 container/heap：该接口要求元素经由 any 装箱且 Less/Swap
// 定义在容器整体上，泛型直写切片版本更快也更易读。
// 比较函数为 nil 是程序员错误，构造时直接 panic 而非返回 error。
//
// # 注意事项
//
//   - 非并发安全：多 goroutine 访问需要外部加锁
//   - 比较函数必须是严格全序且在堆的生命周期内保持一致，
//     否则堆序未定义（但不会崩溃或越界）
//   - [Heap.All] 迭代期间不可修改堆
//
// # 平台要求
//
// 需要 Go 1.25+（iter.Seq 迭代器）。
package xheap
