package flixpatrol

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/John-Robertt/fptop/internal/domain"
	"github.com/John-Robertt/fptop/internal/infra/httpx"
	providerx "github.com/John-Robertt/fptop/internal/provider"
)

// DefaultBaseURL 是 FlixPatrol 的生产站点。
const DefaultBaseURL = "https://flixpatrol.com"

var (
	ErrUnknownContentType = errors.New("未知类型")
	ErrUnknownPlatform    = errors.New("未知平台")
	ErrUnknownLocation    = errors.New("未知地区")
)

var _ providerx.Source = (*Resolver)(nil)

// Options 是 Resolver 的构造参数；零值字段使用默认值。
type Options struct {
	// BaseURL 允许指向镜像站或测试服务器；为空时使用 DefaultBaseURL。
	BaseURL string
	// UserAgent 为空时使用 httpx.DefaultUserAgent。
	UserAgent string
	// Client 为空时使用 httpx.NewClient 构造（无代理、无总超时）。
	Client *http.Client
	// Logger 为空时使用 logrus 标准 logger。
	Logger logrus.FieldLogger
}

// Resolver 抓取排行榜页并把每条匹配解析为 TMDB ID。
//
// 约束：
// - 构造后字段不再修改，可被多个 goroutine 共享
// - 单次请求内严格串行：同一时刻最多一个出站请求
// - 不做缓存/重试/限速；唯一的“补救”是一次地区回退（由空结果触发，而不是抓取失败）
type Resolver struct {
	baseURL   string
	userAgent string
	client    *http.Client
	log       logrus.FieldLogger
}

func New(opts Options) (*Resolver, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url 无效：%q", opts.BaseURL)
	}

	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = httpx.DefaultUserAgent
	}

	c := opts.Client
	if c == nil {
		c, err = httpx.NewClient(httpx.Options{UserAgent: ua})
		if err != nil {
			return nil, err
		}
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Resolver{
		baseURL:   base,
		userAgent: ua,
		client:    c,
		log:       log,
	}, nil
}

func (r *Resolver) BaseURL() string { return r.baseURL }

func (r *Resolver) pageURL(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return r.baseURL + "/" + strings.TrimLeft(path, "/")
}

// fetchPage 只在 HTTP 200 时返回 body；其它状态码返回 *HTTPStatusError。
func (r *Resolver) fetchPage(ctx context.Context, path string) ([]byte, error) {
	u := r.pageURL(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &providerx.HTTPStatusError{URL: u, StatusCode: resp.StatusCode, Location: resp.Header.Get("Location")}
	}
	return io.ReadAll(resp.Body)
}

// ResolveOneID 抓取详情页并提取 TMDB ID。
//
// 返回值：
// - ok=false, err=nil：页面正常但没有可识别的 TMDB 链接（上层应跳过该条）
// - err!=nil：抓取失败（*FetchError），整次请求应终止
func (r *Resolver) ResolveOneID(ctx context.Context, m domain.MatchResult) (domain.ExternalID, bool, error) {
	page, err := r.fetchPage(ctx, string(m))
	if err != nil {
		r.log.WithFields(logrus.Fields{"stage": providerx.StageDetail, "path": string(m)}).
			Errorf("FlixPatrol 错误：无法获取详情页：%v", err)
		return "", false, &providerx.FetchError{Stage: providerx.StageDetail, URL: r.pageURL(string(m)), Err: err}
	}
	id, ok := ParseDetail(page)
	if !ok {
		r.log.WithField("path", string(m)).Debug("详情页未找到 TMDB ID，跳过")
	}
	return id, ok, nil
}

// GetTop10 返回排行榜对应的 TMDB ID 序列（保持榜单顺序，缺失项被剔除）。
//
// fallback 为 domain.NoFallback 时不回退；否则当 location 的榜单为空时改用 fallback 重新抓取一次（最多一跳）。
func (r *Resolver) GetTop10(ctx context.Context, t domain.ContentType, platform domain.Platform, location, fallback domain.Location) ([]domain.ExternalID, error) {
	tr, err := r.GetTop10Trace(ctx, t, platform, location, fallback)
	if err != nil {
		return nil, err
	}
	return tr.IDs(), nil
}

// GetTop10Trace 与 GetTop10 相同，但额外返回执行轨迹（用于解释回退与缺失）。
func (r *Resolver) GetTop10Trace(ctx context.Context, t domain.ContentType, platform domain.Platform, location, fallback domain.Location) (providerx.Trace, error) {
	if !t.Valid() {
		return providerx.Trace{}, fmt.Errorf("%w：%q", ErrUnknownContentType, t)
	}
	if !domain.IsPlatform(string(platform)) {
		return providerx.Trace{}, fmt.Errorf("%w：%q", ErrUnknownPlatform, platform)
	}
	if !domain.IsLocation(string(location)) {
		return providerx.Trace{}, fmt.Errorf("%w：%q", ErrUnknownLocation, location)
	}
	if fallback != domain.NoFallback && !domain.IsLocation(string(fallback)) {
		return providerx.Trace{}, fmt.Errorf("%w（fallback）：%q", ErrUnknownLocation, fallback)
	}
	return r.top10(ctx, t, platform, location, fallback, providerx.Trace{Requested: location})
}

func (r *Resolver) top10(ctx context.Context, t domain.ContentType, platform domain.Platform, location, fallback domain.Location, tr providerx.Trace) (providerx.Trace, error) {
	path := "/top10/" + string(platform) + "/" + string(location)
	page, err := r.fetchPage(ctx, path)
	if err != nil {
		tr.Attempts = append(tr.Attempts, providerx.Attempt{Location: location, Stage: "fetch"})
		r.log.WithFields(logrus.Fields{"stage": providerx.StageRanking, "platform": string(platform), "location": string(location)}).
			Errorf("FlixPatrol 错误：无法获取 top10 页：%v", err)
		return tr, &providerx.FetchError{Stage: providerx.StageRanking, URL: r.pageURL(path), Err: err}
	}

	matches := ExtractMatches(t, location, platform, page)
	if fallback != domain.NoFallback && len(matches) == 0 {
		tr.Attempts = append(tr.Attempts, providerx.Attempt{Location: location, Stage: "empty"})
		r.log.Warnf("No %s found for %s, falling back to %s search", t, platform, fallback)
		tr.FellBack = true
		return r.top10(ctx, t, platform, fallback, domain.NoFallback, tr)
	}

	stage := "ok"
	if len(matches) == 0 {
		stage = "empty"
	}
	tr.Attempts = append(tr.Attempts, providerx.Attempt{Location: location, Stage: stage, Matches: len(matches)})
	tr.Used = location
	tr.Matches = matches
	tr.Resolved = make([]domain.ExternalID, len(matches))

	// 逐条串行解析：一次只发一个请求，且输出顺序与榜单一致。
	for i, m := range matches {
		if err := ctx.Err(); err != nil {
			return tr, err
		}
		id, ok, err := r.ResolveOneID(ctx, m)
		if err != nil {
			return tr, err
		}
		if ok {
			tr.Resolved[i] = id
		}
	}
	return tr, nil
}
