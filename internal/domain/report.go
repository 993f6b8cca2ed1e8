package domain

import (
	"encoding/json"
	"time"
)

const (
	ItemStatusResolved = "resolved"
	ItemStatusMissed   = "missed"
)

// Top10Report 是 CLI 对外稳定输出（stdout JSON / --output 文件）的结构。
type Top10Report struct {
	RunID string `json:"run_id"`

	Type         ContentType `json:"type"`
	Platform     Platform    `json:"platform"`
	Location     Location    `json:"location"`
	Fallback     Location    `json:"fallback"`
	LocationUsed Location    `json:"location_used"`
	FellBack     bool        `json:"fell_back"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary `json:"summary"`
	Items   []ReportItem  `json:"items"`
	IDs     []ExternalID  `json:"ids"`
}

type ReportSummary struct {
	Matches  int `json:"matches"`
	Resolved int `json:"resolved"`
	Missed   int `json:"missed"`
}

// ReportItem 对应排行榜中的一条匹配（Rank 从 1 开始，按文档顺序）。
type ReportItem struct {
	Rank   int         `json:"rank"`
	Path   MatchResult `json:"path"`
	ID     ExternalID  `json:"id"`
	Status string      `json:"status"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) summary 由 items 计算得出
// 3) ids 由 resolved items 按 rank 顺序重建（nil 归一为空数组）
func (r *Top10Report) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	if r.Items == nil {
		r.Items = []ReportItem{}
	}

	s := ReportSummary{Matches: len(r.Items)}
	ids := make([]ExternalID, 0, len(r.Items))
	for _, it := range r.Items {
		switch it.Status {
		case ItemStatusResolved:
			s.Resolved++
			ids = append(ids, it.ID)
		case ItemStatusMissed:
			s.Missed++
		}
	}
	r.Summary = s
	r.IDs = ids
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
func (r Top10Report) MarshalJSON() ([]byte, error) {
	type Alias Top10Report
	return json.Marshal(Alias(r))
}
