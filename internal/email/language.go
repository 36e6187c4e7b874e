package email

import (
	"regexp"
	"strings"
	"sync"
)

// languageRule maps address keywords to an output language for the draft.
type languageRule struct {
	code     string
	name     string
	keywords []string
}

// Ordered. First matching rule wins, so English-speaking regions are
// checked before country codes that collide with other words.
var languageRules = []languageRule{
	{"en", "English", []string{
		"usa", "united states", "uk", "united kingdom", "britain", "england",
		"scotland", "wales", "australia", "new zealand", "singapore",
		"canada", "south africa", "ireland", "india", "philippines",
		"london", "new york", "los angeles", "chicago", "sydney",
		"melbourne", "toronto", "vancouver", "dublin", "auckland",
	}},
	{"zh", "Chinese", []string{
		"china", "中国", "beijing", "北京", "shanghai", "上海", "guangzhou",
		"广州", "shenzhen", "深圳", "hangzhou", "杭州", "chengdu", "成都",
		"hong kong", "香港", "taiwan", "台湾", "taipei", "台北",
	}},
	{"ja", "Japanese", []string{
		"japan", "日本", "tokyo", "東京", "osaka", "大阪", "kyoto", "京都",
		"nagoya", "yokohama", "sapporo", "fukuoka",
	}},
	{"ko", "Korean", []string{
		"korea", "韩国", "seoul", "서울", "busan", "부산", "incheon", "daegu",
	}},
	{"de", "German", []string{
		"germany", "deutschland", "berlin", "munich", "münchen", "hamburg",
		"frankfurt", "cologne", "köln", "stuttgart", "düsseldorf",
		"austria", "wien", "vienna", "zürich", "zurich",
	}},
	{"fr", "French", []string{
		"france", "paris", "marseille", "lyon", "nice", "toulouse",
		"nantes", "strasbourg", "bordeaux", "lille",
	}},
	{"es", "Spanish", []string{
		"spain", "españa", "madrid", "barcelona", "valencia", "sevilla",
		"málaga", "mexico", "méxico", "argentina", "colombia", "peru",
		"chile", "buenos aires", "bogotá", "lima", "santiago",
	}},
	{"it", "Italian", []string{
		"italy", "italia", "rome", "roma", "milan", "milano", "naples",
		"napoli", "turin", "torino", "bologna", "florence", "firenze",
		"venice", "venezia",
	}},
	{"pt", "Portuguese", []string{
		"portugal", "lisbon", "lisboa", "porto", "brazil", "brasil",
		"são paulo", "rio de janeiro", "belo horizonte", "brasília",
	}},
	{"nl", "Dutch", []string{
		"netherlands", "nederland", "amsterdam", "rotterdam", "the hague",
		"den haag", "utrecht", "eindhoven",
	}},
	{"sv", "Swedish", []string{
		"sweden", "sverige", "stockholm", "gothenburg", "göteborg", "malmö",
		"uppsala",
	}},
	{"da", "Danish", []string{
		"denmark", "danmark", "copenhagen", "københavn", "aarhus", "odense",
	}},
	{"fi", "Finnish", []string{
		"finland", "suomi", "helsinki", "espoo", "tampere", "turku", "oulu",
	}},
	{"pl", "Polish", []string{
		"poland", "polska", "warsaw", "warszawa", "kraków", "cracow",
		"wrocław", "poznań", "gdansk", "katowice",
	}},
	{"tr", "Turkish", []string{
		"turkey", "türkiye", "istanbul", "ankara", "izmir", "bursa",
		"antalya",
	}},
	{"ru", "Russian", []string{
		"russia", "россия", "moscow", "москва", "saint petersburg",
		"novosibirsk", "yekaterinburg", "kazan",
	}},
	{"vi", "Vietnamese", []string{
		"vietnam", "hanoi", "hà nội", "ho chi minh", "da nang", "đà nẵng",
		"nha trang",
	}},
	{"th", "Thai", []string{
		"thailand", "bangkok", "กรุงเทพมหานคร", "phuket", "chiang mai",
		"pattaya",
	}},
	{"id", "Indonesian", []string{
		"indonesia", "jakarta", "surabaya", "bandung", "medan", "bali",
	}},
	{"ar", "Arabic", []string{
		"saudi arabia", "السعودية", "riyadh", "jeddah", "uae", "dubai",
		"abu dhabi", "qatar", "doha", "kuwait", "bahrain", "oman", "muscat",
	}},
}

// DefaultLanguage is used when no keyword matches the address.
const DefaultLanguage = "zh"

var (
	keywordRegexOnce sync.Once
	keywordRegexes   map[string]*regexp.Regexp
)

func compileKeywordRegexes() {
	keywordRegexes = make(map[string]*regexp.Regexp)
	for _, rule := range languageRules {
		for _, kw := range rule.keywords {
			if isASCII(kw) {
				keywordRegexes[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			}
		}
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// DetectLanguage guesses the email language from a merchant address.
// ASCII keywords match on word boundaries so "us" does not fire inside
// "austria"; non-Latin keywords match as substrings.
func DetectLanguage(address string) string {
	if address == "" {
		return DefaultLanguage
	}
	keywordRegexOnce.Do(compileKeywordRegexes)

	addr := strings.ToLower(address)
	for _, rule := range languageRules {
		for _, kw := range rule.keywords {
			if re, ok := keywordRegexes[kw]; ok {
				if re.MatchString(addr) {
					return rule.code
				}
			} else if strings.Contains(addr, kw) {
				return rule.code
			}
		}
	}
	return DefaultLanguage
}

// LanguageName returns the human-readable name for a language code,
// falling back to the default language's name.
func LanguageName(code string) string {
	for _, rule := range languageRules {
		if rule.code == code {
			return rule.name
		}
	}
	return "Chinese"
}
