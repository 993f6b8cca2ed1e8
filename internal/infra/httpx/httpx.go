package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultUserAgent 是未配置 UA 时使用的桌面浏览器 UA。
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36"

// Transport 把“固定 UA + 代理 + keep-alive 策略”固化为统一策略。
//
// 约束：不做重试、不做限速、不做缓存；失败直接交给上层（排行榜只有一次地区回退）。
type Transport struct {
	Base *http.Transport

	// UserAgent 只在请求本身没有设置 User-Agent 时注入。
	UserAgent string

	// DisableKeepAlives 决定是否对 Request 设置 Close=true。
	// 真正禁用 keep-alive 依赖 Base.DisableKeepAlives。
	DisableKeepAlives bool
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.Base == nil {
		return nil, errors.New("nil base transport")
	}

	r := req
	if (r.Header.Get("User-Agent") == "" && t.UserAgent != "") || t.DisableKeepAlives {
		// Clone 会复制 Header 等，避免在 RoundTripper 内部“污染”调用方的 request。
		r = req.Clone(req.Context())
		if r.Header.Get("User-Agent") == "" && t.UserAgent != "" {
			r.Header.Set("User-Agent", t.UserAgent)
		}
		if t.DisableKeepAlives {
			r.Close = true
		}
	}
	return t.Base.RoundTrip(r)
}

// Options 描述 client 的构造参数。
type Options struct {
	UserAgent string
	ProxyURL  string
}

// NewClient 构造用于 FlixPatrol 页面抓取的 HTTP client。
//
// 规则：
// - proxyURL 非空：必须走代理，且禁用 keep-alive（每请求新连接）
// - 不设置 client 总超时；取消依赖调用方的 ctx
func NewClient(opts Options) (*http.Client, error) {
	base := &http.Transport{
		Proxy:               nil,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	disableKeepAlives := false
	if proxyURL := strings.TrimSpace(opts.ProxyURL); proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("proxy url 缺少 scheme 或 host：" + proxyURL)
		}
		base.Proxy = http.ProxyURL(u)
		// proxy 模式强制每请求新连接（代理池轮换依赖该行为）。
		base.DisableKeepAlives = true
		disableKeepAlives = true
	}

	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &http.Client{
		Transport: &Transport{
			Base:              base,
			UserAgent:         ua,
			DisableKeepAlives: disableKeepAlives,
		},
	}, nil
}
