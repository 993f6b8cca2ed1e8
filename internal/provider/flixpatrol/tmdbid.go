package flixpatrol

import (
	"bytes"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/John-Robertt/fptop/internal/domain"
)

// themoviedb.org 之后跟任意非数字，再跟一段数字；数字段即 TMDB ID。
// 兼容 JSON 里转义过的斜杠（https:\/\/www.themoviedb.org\/movie\/603）。
var tmdbIDRE = regexp.MustCompile(`(?i)(themoviedb\.org)(\D*)(\d+)`)

// ExtractExternalID 从结构化数据文本中提取 TMDB ID（纯函数）。
func ExtractExternalID(text string) (domain.ExternalID, bool) {
	m := tmdbIDRE.FindStringSubmatch(text)
	if len(m) < 4 {
		return "", false
	}
	return domain.ExternalID(m[3]), true
}

// structuredData 返回详情页第一个 application/ld+json 脚本的文本内容。
func structuredData(page []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", false
	}
	s := doc.Find(`script[type="application/ld+json"]`).First()
	if s.Length() == 0 {
		return "", false
	}
	return s.Text(), true
}

// ParseDetail 从详情页 HTML 中提取 TMDB ID；结构化数据块缺失或不含 TMDB 链接时返回 false。
func ParseDetail(page []byte) (domain.ExternalID, bool) {
	text, ok := structuredData(page)
	if !ok {
		return "", false
	}
	return ExtractExternalID(text)
}
