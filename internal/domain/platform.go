package domain

import (
	"sort"

	"github.com/samber/lo"
)

// Platform 是流媒体平台 slug（例如 "netflix"、"hbo"）。
type Platform string

func (p Platform) String() string { return string(p) }

var platformSlugs = []string{
	"netflix", "hbo", "disney", "amazon", "amazon-prime", "apple-tv", "chili", "freevee", "google",
	"hulu", "itunes", "osn", "paramount-plus", "rakuten-tv", "shahid", "star-plus", "starz", "viaplay", "vudu",
}

var knownPlatforms = lo.SliceToMap(platformSlugs, func(s string) (string, struct{}) {
	return s, struct{}{}
})

// IsPlatform 判断 s 是否为已知平台 slug（大小写敏感）。
func IsPlatform(s string) bool {
	_, ok := knownPlatforms[s]
	return ok
}

// Platforms 返回全部已知平台（字典序）。
func Platforms() []Platform {
	out := lo.Map(platformSlugs, func(s string, _ int) Platform { return Platform(s) })
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
