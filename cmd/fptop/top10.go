package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/John-Robertt/fptop/internal/config"
	"github.com/John-Robertt/fptop/internal/domain"
	"github.com/John-Robertt/fptop/internal/infra/fsx"
	"github.com/John-Robertt/fptop/internal/infra/httpx"
	"github.com/John-Robertt/fptop/internal/logx"
	providerx "github.com/John-Robertt/fptop/internal/provider"
	"github.com/John-Robertt/fptop/internal/provider/flixpatrol"
)

type top10Args struct {
	Type     string
	Platform string
	Location string
	Format   string
	Output   string

	cli config.CLIArgs
}

func newTop10Command(configPath *string) *cobra.Command {
	var a top10Args

	cmd := &cobra.Command{
		Use:   "top10",
		Short: "获取某平台某地区的 top10，并输出 TMDB ID",
		Example: `  fptop top10 --type movies --platform netflix --location world
  fptop top10 --type tv --platform hbo --location france --fallback world --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			a.cli.ConfigPath = *configPath
			a.cli.BaseURLSet = f.Changed("base-url")
			a.cli.UserAgentSet = f.Changed("user-agent")
			a.cli.ProxySet = f.Changed("proxy")
			a.cli.FallbackSet = f.Changed("fallback")
			a.cli.LogLevelSet = f.Changed("log-level")
			a.cli.LogFormatSet = f.Changed("log-format")
			return runTop10(cmd, a)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&a.Type, "type", "t", "", "榜单类型：movies|tv")
	f.StringVarP(&a.Platform, "platform", "p", "", "平台 slug（见 fptop platforms）")
	f.StringVarP(&a.Location, "location", "l", string(domain.LocationWorld), "地区 slug（见 fptop locations）")
	f.StringVar(&a.cli.Fallback, "fallback", config.DefaultFallback, "榜单为空时回退的地区；none 表示不回退")
	f.StringVar(&a.cli.BaseURL, "base-url", "", "FlixPatrol 站点地址（覆盖配置）")
	f.StringVar(&a.cli.UserAgent, "user-agent", "", "请求使用的 User-Agent（覆盖配置）")
	f.StringVar(&a.cli.ProxyURL, "proxy", "", "HTTP 代理地址（覆盖配置）")
	f.StringVar(&a.cli.LogLevel, "log-level", "", "日志级别：trace|debug|info|warn|error")
	f.StringVar(&a.cli.LogFormat, "log-format", "", "日志格式：text|json")
	f.StringVar(&a.Format, "format", formatAuto, "输出格式：auto|json|text（auto：终端输出表格，否则输出 JSON）")
	f.StringVarP(&a.Output, "output", "o", "", "同时把 JSON 报告写入该文件")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

func runTop10(cmd *cobra.Command, a top10Args) error {
	ct, err := domain.ParseContentType(a.Type)
	if err != nil {
		return usageError("--type：%v", err)
	}
	if !domain.IsPlatform(a.Platform) {
		return usageError("--platform 不是已知平台：%q（见 fptop platforms）", a.Platform)
	}
	if !domain.IsLocation(a.Location) {
		return usageError("--location 不是已知地区：%q（见 fptop locations）", a.Location)
	}
	format, err := parseFormat(a.Format)
	if err != nil {
		return usageError("--format：%v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return runError(fmt.Errorf("读取当前目录失败：%w", err))
	}
	eff, err := config.LoadEffective(cwd, a.cli)
	if err != nil {
		if config.Code(err) == config.ErrCodeInvalid && a.cli.FallbackSet {
			return usageError("%v", err)
		}
		return runError(err)
	}

	logger, err := logx.New(logx.Options{Level: eff.LogLevel, Format: eff.LogFormat, Output: cmd.ErrOrStderr()})
	if err != nil {
		return runError(err)
	}
	runID := uuid.NewString()
	log := logger.WithFields(logrus.Fields{"run_id": runID})
	if eff.ConfigFile != "" {
		log.WithField("config", eff.ConfigFile).Debug("已加载配置文件")
	}

	client, err := httpx.NewClient(httpx.Options{UserAgent: eff.UserAgent, ProxyURL: eff.ProxyURL})
	if err != nil {
		return runError(fmt.Errorf("初始化 HTTP client 失败：%w", err))
	}
	resolver, err := flixpatrol.New(flixpatrol.Options{
		BaseURL:   eff.BaseURL,
		UserAgent: eff.UserAgent,
		Client:    client,
		Logger:    log,
	})
	if err != nil {
		return runError(err)
	}

	var src providerx.Source = resolver
	platform := domain.Platform(a.Platform)
	location := domain.Location(a.Location)

	started := time.Now()
	tr, err := src.GetTop10Trace(cmd.Context(), ct, platform, location, eff.Fallback)
	if err != nil {
		// 抓取失败已由 resolver 以 error 级别记录；这里只负责以非零状态退出。
		return &exitError{code: 1, err: err, quiet: providerx.IsFatal(err)}
	}

	rr := reportFromTrace(runID, ct, platform, eff.Fallback, tr)
	rr.StartedAt = started
	rr.FinishedAt = time.Now()
	rr.Finalize()

	if strings.TrimSpace(a.Output) != "" {
		if err := writeReportFile(a.Output, rr); err != nil {
			return runError(fmt.Errorf("写入 %s 失败：%w", a.Output, err))
		}
	}

	emitReport(cmd.OutOrStdout(), format, rr)
	return nil
}

func reportFromTrace(runID string, ct domain.ContentType, platform domain.Platform, fallback domain.Location, tr providerx.Trace) domain.Top10Report {
	rr := domain.Top10Report{
		RunID:        runID,
		Type:         ct,
		Platform:     platform,
		Location:     tr.Requested,
		Fallback:     fallback,
		LocationUsed: tr.Used,
		FellBack:     tr.FellBack,
		Items:        make([]domain.ReportItem, 0, len(tr.Matches)),
	}
	for i, m := range tr.Matches {
		it := domain.ReportItem{Rank: i + 1, Path: m, Status: domain.ItemStatusMissed}
		if i < len(tr.Resolved) && tr.Resolved[i] != "" {
			it.ID = tr.Resolved[i]
			it.Status = domain.ItemStatusResolved
		}
		rr.Items = append(rr.Items, it)
	}
	return rr
}

func writeReportFile(path string, rr domain.Top10Report) error {
	b, err := json.MarshalIndent(rr, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return fsx.WriteFileAtomic(filepath.Dir(abs), filepath.Base(abs), b)
}
