package provider

import (
	"errors"
	"fmt"
	"strings"
)

// HTTPStatusError 表示站点返回了非 200 的 HTTP 状态码。
// 排行榜/详情页只接受 200；3xx/204 等一律视为抓取失败。
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Location   string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	loc := strings.TrimSpace(e.Location)
	if loc == "" {
		return fmt.Sprintf("HTTP %d url=%s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("HTTP %d url=%s location=%s", e.StatusCode, e.URL, loc)
}

const (
	StageRanking = "ranking"
	StageDetail  = "detail"
)

// FetchError 是抓取阶段的致命错误：排行榜页或任一详情页拿不到内容时，整次请求失败。
// 库本身不退出进程；由最外层（CLI）决定如何收尾。
type FetchError struct {
	Stage string // "ranking" 或 "detail"
	URL   string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("stage=%s url=%s: %v", e.Stage, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFatal 判断 err 是否为需要终止整次请求的抓取失败。
func IsFatal(err error) bool {
	var e *FetchError
	return errors.As(err, &e)
}

// StatusCode 从 err 链中提取 HTTP 状态码；不是 HTTPStatusError 时返回 0。
func StatusCode(err error) int {
	var e *HTTPStatusError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
