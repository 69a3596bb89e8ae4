// topn 是保留输入中最优 N 行的命令行过滤器。
//
// 用法:
//
//	topn [选项] [文件...]
//
// 不指定文件时从标准输入读取。
//
// 选项:
//
//	-n, --count    保留的行数 (默认: 10)
//	-f, --field    按第 K 个空白分隔字段排序，0 表示整行 (默认: 0)
//	-g, --numeric  按数值大小排序
//	-s, --smallest 保留最小而非最大的 N 行
//
// 排序与输出:
//
//	输出按最优在前排列。默认按字典序保留最大的 N 行；
//	--numeric 改为按数值比较；--smallest 反转优劣方向。
//	--field K 时缺少该字段的行、--numeric 时排序键无法解析为数值的行
//	会被跳过并计数，处理结束后经 slog 汇报到标准错误。
//
// 退出码:
//
//	0: 成功
//	1: 运行错误（文件不可读等）
//	2: 参数错误（--count < 1、--field < 0、未知选项等）
//
// 示例:
//
//	topn -n 5 access.log             # 字典序最大的 5 行
//	topn -n 3 -g -f 2 latency.txt    # 第 2 字段数值最大的 3 行
//	du -s * | topn -g                # 占用最大的 10 项
//	topn -n 3 -g -s latency.txt      # 数值最小的 3 行
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
)

// defaultCount 默认保留行数。
const defaultCount = 10

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:      "topn",
		Usage:     "保留输入中最优 N 行的过滤器",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		ArgsUsage: "[文件...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "保留的行数",
				Value:   defaultCount,
			},
			&cli.IntFlag{
				Name:    "field",
				Aliases: []string{"f"},
				Usage:   "按第 K 个空白分隔字段排序，0 表示整行",
			},
			&cli.BoolFlag{
				Name:    "numeric",
				Aliases: []string{"g"},
				Usage:   "按数值大小排序",
			},
			&cli.BoolFlag{
				Name:    "smallest",
				Aliases: []string{"s"},
				Usage:   "保留最小而非最大的 N 行",
			},
		},
		Authors: []any{
			"XKit Team",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := filterOptions{
				count:    cmd.Int("count"),
				field:    cmd.Int("field"),
				numeric:  cmd.Bool("numeric"),
				smallest: cmd.Bool("smallest"),
			}
			return cmdFilter(ctx, opts, cmd.Args().Slice(), os.Stdin, os.Stdout)
		},
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 设置信号处理
	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag）也返回退出码 2，
		// 与文档契约"参数错误 → 退出码 2"保持一致。
		if isCLIUsageError(err) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}

// usageError 表示调用方参数错误（退出码 2）。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// isCLIUsageError 判断是否为 CLI 框架产生的参数解析错误。
// urfave/cli 的 flag 解析错误没有导出的错误类型，按消息特征识别。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"flag provided but not defined",
		"flag needs an argument",
		"invalid value",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消（逐行处理循环会检测到并中止），
// 第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel() // 第一次信号: 优雅取消

		<-sigCh
		signal.Stop(sigCh) // 回收订阅
		os.Exit(130)       // 第二次信号: 强制退出
	}()
}
