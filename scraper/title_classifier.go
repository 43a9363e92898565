package scraper

import (
	"regexp"
	"sort"
	"strings"

	"scentbase/models"
)

// factoryPatterns recognize a known factory suffix, optionally followed by a
// production article code. Order matters: more specific factory names come
// first so "Givaudan Premium" is never reduced to a bare word match.
var factoryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i),\s*(Givaudan Premium|Givaudan SuperLux)\s*$`),
	regexp.MustCompile(`(?i),\s*(Givaudan)\s*$`),
	regexp.MustCompile(`(?i),\s*(SELUZ)\s*$`),
	regexp.MustCompile(`(?i),\s*(Argeville)\s*$`),
	regexp.MustCompile(`(?i),\s*(Lz)\s+(\d+[\d\-T]*)\s*$`),
	regexp.MustCompile(`(?i),\s*(Lz)\s+(\d+[\d\-/\s]*)\s*$`),
	regexp.MustCompile(`(?i),\s*(Lz)\s*$`),
	regexp.MustCompile(`(?i),\s*(Bin Tammam|EPS|Hamidi|Iberchem|LZ AG|MG Gulcicek|Reiha|LUZI)\s*([^,]*?)\s*$`),
}

var (
	motifMarker   = regexp.MustCompile(`(?i)\s*\((?:мотив|tester|тестер)[^)]*\)\s*`)
	batchCode     = regexp.MustCompile(`,\s*[A-ZА-Я]{2,}\d*\s*$`)
	spaceCollapse = regexp.MustCompile(`\s+`)
)

// TitleClassifier splits raw listing titles into brand, product name,
// factory and article using an ordered list of strategies.
type TitleClassifier struct {
	brands        []string
	brandPatterns map[string]*regexp.Regexp
}

// NewTitleClassifier creates a classifier over the given known-brand list.
// Brands are matched longest first so a two-word brand always wins over a
// prefix of itself.
func NewTitleClassifier(knownBrands []string) *TitleClassifier {
	brands := make([]string, len(knownBrands))
	copy(brands, knownBrands)
	sort.SliceStable(brands, func(i, j int) bool {
		return len(brands[i]) > len(brands[j])
	})

	patterns := make(map[string]*regexp.Regexp, len(brands))
	for _, brand := range brands {
		patterns[brand] = regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(brand) + `\s+`)
	}

	return &TitleClassifier{brands: brands, brandPatterns: patterns}
}

// Classify never fails: at minimum the whole cleaned title becomes the name.
func (c *TitleClassifier) Classify(title string) models.ClassifiedTitle {
	clean, factory, article := extractFactory(title)

	clean = motifMarker.ReplaceAllString(clean, " ")
	clean = batchCode.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(spaceCollapse.ReplaceAllString(clean, " "))

	brand, name := c.splitBrand(clean)

	return models.ClassifiedTitle{
		Brand:   brand,
		Name:    name,
		Factory: factory,
		Article: article,
	}
}

// extractFactory tries the factory suffix patterns in order; the first match
// wins and is removed from the working title.
func extractFactory(title string) (clean, factory, article string) {
	for _, pattern := range factoryPatterns {
		match := pattern.FindStringSubmatch(title)
		if match == nil {
			continue
		}
		factory = match[1]
		if len(match) > 2 {
			article = strings.TrimSpace(match[2])
		}
		clean = strings.TrimSpace(pattern.ReplaceAllString(title, ""))
		return clean, factory, article
	}
	return title, "", ""
}

// splitBrand applies the brand strategies in priority order: known brands
// (longest first), then "Brand - Name", then leading capitalized words.
func (c *TitleClassifier) splitBrand(clean string) (brand, name string) {
	for _, known := range c.brands {
		pattern := c.brandPatterns[known]
		if pattern.MatchString(clean) {
			return known, strings.TrimSpace(pattern.ReplaceAllString(clean, ""))
		}
	}

	if brand, name, ok := splitOnDash(clean); ok && len(name) >= 2 {
		return brand, name
	}
	if brand, name, ok := splitOnCapitalizedWords(clean); ok && len(name) >= 2 {
		return brand, name
	}

	return "", clean
}

var dashSplit = regexp.MustCompile(`^([^-]+?)\s*-\s*(.+)$`)

// splitOnDash handles "Brand - Name" titles when the left side is short
// enough to plausibly be a brand.
func splitOnDash(clean string) (brand, name string, ok bool) {
	match := dashSplit.FindStringSubmatch(clean)
	if match == nil {
		return "", "", false
	}
	left := strings.TrimSpace(match[1])
	if len(strings.Fields(left)) > 3 {
		return "", "", false
	}
	return left, strings.TrimSpace(match[2]), true
}

// splitOnCapitalizedWords treats the first one or two words as the brand
// when they carry an uppercase letter.
func splitOnCapitalizedWords(clean string) (brand, name string, ok bool) {
	words := strings.Fields(clean)
	if len(words) < 2 {
		return "", "", false
	}

	lead := strings.Join(words[:2], " ")
	if strings.ToLower(lead) == lead {
		return "", "", false
	}
	if len(words) > 2 {
		return lead, strings.Join(words[2:], " "), true
	}
	return words[0], words[1], true
}
