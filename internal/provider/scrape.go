package provider

import (
	"github.com/John-Robertt/fptop/internal/domain"
)

// Attempt 记录一次排行榜抓取尝试（用于解释 fallback 原因）。
type Attempt struct {
	Location domain.Location
	Stage    string // "fetch" / "empty" / "ok"
	Matches  int
}

// Trace 是一次 top10 请求的执行轨迹：请求了哪个地区、最终用了哪个、每条匹配的解析结果。
// 注意：这是内部执行轨迹，由上层决定如何呈现（CLI 会把它转成 Top10Report）。
type Trace struct {
	Requested domain.Location
	Used      domain.Location
	FellBack  bool

	Attempts []Attempt

	// Matches 为最终使用地区的匹配序列（文档顺序）；Resolved 与其一一对应，未解析出 ID 的位置为空串。
	Matches  []domain.MatchResult
	Resolved []domain.ExternalID
}

// IDs 返回按匹配顺序排列、已剔除缺失项的 ID 序列。
func (t Trace) IDs() []domain.ExternalID {
	out := make([]domain.ExternalID, 0, len(t.Resolved))
	for _, id := range t.Resolved {
		if id == "" {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Missed 返回未能解析出 ID 的匹配（保持顺序）。
func (t Trace) Missed() []domain.MatchResult {
	var out []domain.MatchResult
	for i, m := range t.Matches {
		if i < len(t.Resolved) && t.Resolved[i] != "" {
			continue
		}
		out = append(out, m)
	}
	return out
}
