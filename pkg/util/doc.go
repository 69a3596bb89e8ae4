// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xheap: 泛型二叉最小堆，三路比较函数定义顺序，换根单次下沉
//   - xtopn: 固定容量 Top-N 选择容器，有界内存保留最优 N 个元素
//
// 设计原则：
//   - 泛型优先，避免 interface{} 装箱
//   - 非并发安全的容器明确声明，由调用方决定同步策略
//   - 程序员错误（非法容量、nil 比较函数）直接 panic，不返回 error
package util
