package domain

// MatchResult 是从排行榜页提取出的详情页相对路径（例如 "/title/the-matrix/"）。
// 序列保持文档顺序，不去重。
type MatchResult string

// ExternalID 是 TMDB 的数字 ID（字符串形式，例如 "603"）。
type ExternalID string
