// Package geo handles address extraction, geocoding and nearby-location
// lookup for the support-service point directory.
package geo

import (
	"regexp"
	"strings"
)

// MinAddressRunes is the shortest remainder accepted as an address after
// trimming conversational phrases.
const MinAddressRunes = 4

var (
	clinicWords      = []string{"心據點", "門診", "看診"}
	locativePrefixes = []string{"我住在", "我住", "家在", "家住", "住在", "住", "在"}
	tailWords        = []string{"有沒有", "有嗎", "嗎", "呢", "啊", "啦"}

	// Taiwan administrative regions, both 臺 and 台 spellings.
	cityNames = []string{
		"台北市", "臺北市", "新北市", "桃園市", "臺中市", "台中市", "臺南市", "台南市",
		"高雄市", "基隆市", "新竹市", "嘉義市", "新竹縣", "苗栗縣", "彰化縣", "南投縣",
		"雲林縣", "嘉義縣", "屏東縣", "宜蘭縣", "花蓮縣", "臺東縣", "台東縣", "澎湖縣",
		"金門縣", "連江縣",
	}

	cityDistrictRe = regexp.MustCompile(
		"^(" + strings.Join(cityNames, "|") + ")(.+?(區|市|鎮|鄉))")
)

// ExtractAddress pulls a candidate address out of a conversational query
// like 我住在台南市東區大學路1號附近有心據點嗎. It cuts at the proximity
// word and clinic words, strips locative prefixes and question tails, and
// rejects remainders shorter than MinAddressRunes.
func ExtractAddress(query string) string {
	q := query

	if i := strings.Index(q, "附近"); i >= 0 {
		q = q[:i]
	}
	for _, kw := range clinicWords {
		if i := strings.Index(q, kw); i >= 0 {
			q = q[:i]
		}
	}

	q = strings.TrimSpace(q)
	for _, p := range locativePrefixes {
		if strings.HasPrefix(q, p) {
			q = strings.TrimSpace(strings.TrimPrefix(q, p))
			break
		}
	}

	for _, t := range tailWords {
		if strings.HasSuffix(q, t) {
			q = strings.TrimSpace(strings.TrimSuffix(q, t))
		}
	}

	q = strings.Trim(q, " ?？!")

	if len([]rune(q)) < MinAddressRunes {
		return ""
	}
	return q
}

// IsDirectAddress reports whether a query starts with a recognized city or
// county name followed by a district/township, so it can be treated as a
// bare address even without a proximity word.
func IsDirectAddress(query string) bool {
	return cityDistrictRe.MatchString(strings.TrimSpace(query))
}

// cityDistrict returns the city+district prefix of an address, if any.
func cityDistrict(address string) (string, bool) {
	m := cityDistrictRe.FindStringSubmatch(address)
	if m == nil {
		return "", false
	}
	return m[1] + m[2], true
}
