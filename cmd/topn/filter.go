package main

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/omeyang/topkit/pkg/util/xtopn"
)

// maxLineBytes 单行最大字节数，超长行报错而非静默截断。
const maxLineBytes = 1 << 20

// filterOptions 是过滤器的全部配置。
type filterOptions struct {
	count    int
	field    int
	numeric  bool
	smallest bool
}

// validate 校验用户输入。
// 库层面 capacity < 1 是 panic（程序员错误），CLI 层面提前拦截
// 并转为参数错误，保持退出码契约。
func (o filterOptions) validate() error {
	if o.count < 1 {
		return &usageError{msg: fmt.Sprintf("--count 必须至少为 1，当前值: %d", o.count)}
	}
	if o.field < 0 {
		return &usageError{msg: fmt.Sprintf("--field 不能为负数，当前值: %d", o.field)}
	}
	return nil
}

// naturalMode 报告是否可走字符串自然序路径（整行、字典序、取最大）。
func (o filterOptions) naturalMode() bool {
	return o.field == 0 && !o.numeric && !o.smallest
}

// rankedLine 是携带排序键的输入行。
type rankedLine struct {
	key string
	num float64
	raw string
}

// compare 按配置返回两行的三路比较结果，正数表示 a 更优。
func (o filterOptions) compare(a, b rankedLine) int {
	var c int
	if o.numeric {
		c = cmp.Compare(a.num, b.num)
	} else {
		c = cmp.Compare(a.key, b.key)
	}
	if o.smallest {
		return -c
	}
	return c
}

// rank 提取一行的排序键。
// 行缺少指定字段或数值解析失败时返回 false（该行跳过）。
func (o filterOptions) rank(line string) (rankedLine, bool) {
	key := line
	if o.field > 0 {
		fields := strings.Fields(line)
		if o.field > len(fields) {
			return rankedLine{}, false
		}
		key = fields[o.field-1]
	}
	rl := rankedLine{key: key, raw: line}
	if o.numeric {
		n, err := strconv.ParseFloat(key, 64)
		// NaN 会破坏比较函数的严格全序约定，按解析失败处理
		if err != nil || math.IsNaN(n) {
			return rankedLine{}, false
		}
		rl.num = n
	}
	return rl, true
}

// lineSelector 在输入行上做有界 Top-N 选择。
//
// 设计决策: 字典序取最大的默认模式走 xtopn.New 的自然序路径，
// 其余模式构建比较函数走 xtopn.NewFunc——两条构造路径共享同一套
// 淘汰算法，这里只是策略选择。
type lineSelector struct {
	opts    filterOptions
	natural *xtopn.TopN[string]
	ranked  *xtopn.TopN[rankedLine]
	skipped int
}

// newLineSelector 创建行选择器，opts 必须已通过 validate。
func newLineSelector(opts filterOptions) *lineSelector {
	s := &lineSelector{opts: opts}
	if opts.naturalMode() {
		s.natural = xtopn.New[string](opts.count)
	} else {
		s.ranked = xtopn.NewFunc(opts.count, opts.compare)
	}
	return s
}

// Add 送入一行。无法提取排序键的行计入 skipped。
func (s *lineSelector) Add(line string) {
	if s.natural != nil {
		s.natural.Push(line)
		return
	}
	rl, ok := s.opts.rank(line)
	if !ok {
		s.skipped++
		return
	}
	s.ranked.Push(rl)
}

// Result 抽取保留的行，最优在前。选择器随之清空。
func (s *lineSelector) Result() []string {
	if s.natural != nil {
		return s.natural.PopSorted()
	}
	ranked := s.ranked.PopSorted()
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.raw
	}
	return out
}

// cmdFilter 读取所有输入行，保留最优 count 行并写出到 stdout。
// paths 为空时从 stdin 读取。
func cmdFilter(ctx context.Context, opts filterOptions, paths []string, stdin io.Reader, stdout io.Writer) error {
	if err := opts.validate(); err != nil {
		return err
	}

	sel := newLineSelector(opts)

	if len(paths) == 0 {
		if err := addLines(ctx, sel, stdin); err != nil {
			return fmt.Errorf("读取标准输入失败: %w", err)
		}
	}
	for _, path := range paths {
		if err := addFile(ctx, sel, path); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(stdout)
	for _, line := range sel.Result() {
		fmt.Fprintln(bw, line)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("写出结果失败: %w", err)
	}

	if sel.skipped > 0 {
		slog.Warn("topn: lines skipped", "count", sel.skipped)
	}
	return nil
}

// addFile 打开文件并把所有行送入选择器。
func addFile(ctx context.Context, sel *lineSelector, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()

	if err := addLines(ctx, sel, f); err != nil {
		return fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	return nil
}

// addLines 逐行送入选择器，每行检查一次取消信号。
func addLines(ctx context.Context, sel *lineSelector, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		sel.Add(sc.Text())
	}
	return sc.Err()
}
