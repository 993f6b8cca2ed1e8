// Package logx 负责构造 logrus logger（级别、格式、输出位置）。
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options 描述 logger 的构造参数；零值等价于 info + text + stderr。
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New 构造独立的 logger（不修改 logrus 全局状态）。
// 级别无法解析时回退为 info；格式只接受 text/json。
func New(opts Options) (*logrus.Logger, error) {
	l := logrus.New()

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatText:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("log format 只能是 text 或 json，实际是 %q", opts.Format)
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l, nil
}
