package flixpatrol

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/John-Robertt/fptop/internal/domain"
)

var (
	// world 榜单：class 中包含 hover:underline。
	underlinedLinkContains = cascadia.MustCompile(`a[class*="hover:underline"]`)
	// 国家榜单：class 必须恰好等于 hover:underline。
	underlinedLinkExact = cascadia.MustCompile(`a[class="hover:underline"]`)
)

// matchExtractor 从已解析的排行榜文档中按文档顺序提取详情页链接。
type matchExtractor interface {
	extract(doc *goquery.Document) []domain.MatchResult
}

// containerStrategy 对应 world 榜单：电影/剧集是同级的两个容器，
// 只靠 id 后缀区分：<platform>-1（Movies）与 <platform>-2（TV Shows）。
type containerStrategy struct {
	containerID string
}

func (s containerStrategy) extract(doc *goquery.Document) []domain.MatchResult {
	container := doc.Find("div").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		id, ok := sel.Attr("id")
		return ok && id == s.containerID
	})
	return hrefs(container.FindMatcher(underlinedLinkContains))
}

// headingStrategy 对应国家榜单：定位文本恰好为 "TOP 10 <type>" 的 h3，
// 再在其后续同级 div 内收集链接。
type headingStrategy struct {
	heading string
}

func (s headingStrategy) extract(doc *goquery.Document) []domain.MatchResult {
	headings := doc.Find("h3").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return hasOwnText(sel.Get(0), s.heading)
	})
	return hrefs(headings.NextAllFiltered("div").FindMatcher(underlinedLinkExact))
}

func selectExtractor(t domain.ContentType, loc domain.Location, platform domain.Platform) matchExtractor {
	if loc.IsWorld() {
		return containerStrategy{containerID: fmt.Sprintf("%s-%d", platform, t.Discriminant())}
	}
	return headingStrategy{heading: "TOP 10 " + string(t)}
}

// ExtractMatches 从排行榜 HTML 中提取详情页链接（纯函数，不做 I/O）。
//
// 约束：
// - 结果保持文档顺序，不去重，不截断
// - 找不到容器/标题或其中没有链接时返回空切片（不是错误，由上层决定是否回退）
func ExtractMatches(t domain.ContentType, loc domain.Location, platform domain.Platform, page []byte) []domain.MatchResult {
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return []domain.MatchResult{}
	}
	doc := goquery.NewDocumentFromNode(root)
	return selectExtractor(t, loc, platform).extract(doc)
}

func hrefs(sel *goquery.Selection) []domain.MatchResult {
	out := make([]domain.MatchResult, 0, sel.Length())
	sel.Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			out = append(out, domain.MatchResult(href))
		}
	})
	return out
}

// hasOwnText 判断 n 的某个直接子文本节点是否恰好等于 want（不 trim、不合并子元素文本）。
func hasOwnText(n *html.Node, want string) bool {
	if n == nil {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && c.Data == want {
			return true
		}
	}
	return false
}
