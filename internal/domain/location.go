package domain

import (
	"sort"

	"github.com/samber/lo"
)

// Location 是排行榜的地区 slug（例如 "france"、"united-states"）。
// "world" 是聚合榜单（全球），页面结构与国家榜单不同。
type Location string

const (
	// LocationWorld 表示全球聚合榜单。
	LocationWorld Location = "world"
	// NoFallback 表示不做地区回退。
	NoFallback Location = ""
)

func (l Location) IsWorld() bool { return l == LocationWorld }

func (l Location) String() string { return string(l) }

var locationSlugs = []string{
	"world", "afghanistan", "albania", "algeria", "andorra", "angola", "antigua-and-barbuda",
	"argentina", "armenia", "australia", "austria", "azerbaijan", "bahamas", "bahrain", "bangladesh", "barbados",
	"belarus", "belgium", "belize", "benin", "bhutan", "bolivia", "bosnia-and-herzegovina", "botswana", "brazil",
	"brunei", "bulgaria", "burkina-faso", "burundi", "cambodia", "cameroon", "canada", "cape-verde",
	"central-african-republic", "chad", "chile", "china", "colombia", "comoros", "costa-rica", "croatia", "cyprus",
	"czech-republic", "democratic-republic-of-the-congo", "denmark", "djibouti", "dominica", "dominican-republic",
	"east-timor", "ecuador", "egypt", "equatorial-guinea", "eritrea", "estonia", "ethiopia", "fiji", "finland",
	"france", "gabon", "gambia", "georgia", "germany", "ghana", "greece", "grenada", "guadeloupe", "guatemala",
	"guinea", "guinea-bissau", "guyana", "haiti", "honduras", "hong-kong", "hungary", "iceland", "india",
	"indonesia", "iraq", "ireland", "israel", "italy", "ivory-coast", "jamaica", "japan", "jordan", "kazakhstan",
	"kenya", "kiribati", "kosovo", "kuwait", "kyrgyzstan", "laos", "latvia", "lebanon", "lesotho", "liberia",
	"libya", "liechtenstein", "lithuania", "luxembourg", "madagascar", "malawi", "malaysia", "maldives", "mali",
	"malta", "marshall-islands", "martinique", "mauritania", "mauritius", "mexico", "micronesia", "moldova",
	"monaco", "mongolia", "montenegro", "morocco", "mozambique", "myanmar", "namibia", "nauru", "nepal",
	"netherlands", "new-caledonia", "new-zealand", "nicaragua", "niger", "nigeria", "north-macedonia", "norway",
	"oman", "pakistan", "palau", "palestine", "panama", "papua-new-guinea", "paraguay", "peru", "philippines",
	"poland", "portugal", "qatar", "republic-of-the-congo", "reunion", "romania", "russia", "rwanda",
	"saint-kitts-and-nevis", "saint-lucia", "saint-vincent-and-the-grenadines", "salvador", "samoa", "san-marino",
	"sao-tome-and-principe", "saudi-arabia", "senegal", "serbia", "seychelles", "sierra-leone", "singapore",
	"slovakia", "slovenia", "solomon-islands", "somalia", "south-africa", "south-korea", "south-sudan", "spain",
	"sri-lanka", "sudan", "suriname", "swaziland", "sweden", "switzerland", "taiwan", "tajikistan", "tanzania",
	"thailand", "togo", "tonga", "trinidad-and-tobago", "tunisia", "turkey", "turkmenistan", "tuvalu", "uganda",
	"ukraine", "united-arab-emirates", "united-kingdom", "united-states", "uruguay", "uzbekistan", "vanuatu",
	"vatican-city", "venezuela", "vietnam", "yemen", "zambia", "zimbabwe",
}

// knownLocations 是只读集合；用 map 做 O(1) 成员判断。
var knownLocations = lo.SliceToMap(locationSlugs, func(s string) (string, struct{}) {
	return s, struct{}{}
})

// IsLocation 判断 s 是否为已知地区 slug（大小写敏感，不做任何规范化）。
func IsLocation(s string) bool {
	_, ok := knownLocations[s]
	return ok
}

// Locations 返回全部已知地区（字典序，world 也在其中）。
func Locations() []Location {
	out := lo.Map(locationSlugs, func(s string, _ int) Location { return Location(s) })
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
