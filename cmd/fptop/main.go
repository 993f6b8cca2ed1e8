package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// exitError 把错误映射为进程退出码：2 表示参数错误，1 表示运行失败。
// quiet=true 表示错误已经通过 logger 输出过，不再重复打印。
type exitError struct {
	code  int
	err   error
	quiet bool
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageError(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

func runError(err error) error {
	return &exitError{code: 1, err: err}
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.quiet {
			fmt.Fprintf(stderr, "%v\n", ee.err)
		}
		return ee.code
	}
	// cobra 自身的参数错误（未知 flag、缺少必填 flag 等）。
	fmt.Fprintf(stderr, "参数错误：%v\n", err)
	return 2
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "fptop",
		Short:         "抓取 FlixPatrol 排行榜并解析为 TMDB ID",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认读取当前目录下的 fptop.toml，可选）")

	root.AddCommand(newTop10Command(&configPath))
	root.AddCommand(newLocationsCommand())
	root.AddCommand(newPlatformsCommand())
	root.AddCommand(newConfigCommand())
	return root
}
