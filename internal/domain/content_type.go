package domain

import (
	"fmt"
	"strings"
)

// ContentType 决定查询哪个榜单区块：电影或剧集。
// 取值同时也是国家榜单标题 "TOP 10 <ContentType>" 的后半段，不能随意改写。
type ContentType string

const (
	Movies  ContentType = "Movies"
	TVShows ContentType = "TV Shows"
)

func (t ContentType) String() string { return string(t) }

// Discriminant 是 world 榜单容器 id 的数字后缀（<platform>-1 / <platform>-2）。
func (t ContentType) Discriminant() int {
	if t == Movies {
		return 1
	}
	return 2
}

func (t ContentType) Valid() bool { return t == Movies || t == TVShows }

// ParseContentType 把 CLI/配置里的写法规范化为 ContentType。
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "movies", "movie", "film", "films":
		return Movies, nil
	case "tv shows", "tv-shows", "tv", "shows", "show", "series":
		return TVShows, nil
	default:
		return "", fmt.Errorf("未知类型：%q（可选 movies 或 tv）", s)
	}
}
