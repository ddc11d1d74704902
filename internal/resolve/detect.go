package resolve

import (
	"regexp"
	"strings"

	"github.com/caliber-ui/quotation-app/internal/standards"
	"github.com/caliber-ui/quotation-app/internal/util"
)

type categoryKeywords struct {
	category string
	keywords []string
}

// keyword tables are checked in this order so that multi-category
// descriptions ("stud with 2 nuts") list stud first.
var categoryTable = []categoryKeywords{
	{"stud", []string{"STUD", "STUDS"}},
	{"nut", []string{"NUT", "NUTS"}},
	{"bolt", []string{"BOLT", "BOLTS", "CAPSCREW", "HEXHD", "HEX HEAD", "SOCKET", "GRUB"}},
	{"washer", []string{"WASHER", "WASHERS", "FLAT WASHER", "SPRING WASHER", "TOOTH"}},
	{"screw", []string{"SCREW", "SCREWS"}},
}

// DetectCategories returns the fastener categories a description mentions,
// keyword table first, then any index category whose name appears verbatim.
// Order of first detection is preserved, duplicates removed.
func DetectCategories(desc string, idx *standards.Index) []string {
	descNorm := util.NormalizePreserveSpace(desc)
	var detected []string
	for _, ck := range categoryTable {
		for _, kw := range ck.keywords {
			if strings.Contains(descNorm, kw) {
				detected = append(detected, ck.category)
				break
			}
		}
	}
	if idx != nil {
		for _, cat := range idx.CategoryOrder {
			if cat != "" && strings.Contains(descNorm, strings.ToUpper(cat)) {
				detected = append(detected, cat)
			}
		}
	}
	return util.Dedupe(detected)
}

var (
	reMetricDia   = regexp.MustCompile(`\bM\s*\d+(\.\d+)?\b`)
	reMetricMM    = regexp.MustCompile(`\b\d+\s*MM\b`)
	reMetricPitch = regexp.MustCompile(`\bM\d+\s*X`)

	reInchFraction = regexp.MustCompile(`\d+\s*/\s*\d+\s*(?:"|''|INCH|\bIN\b)`)
	reInchMixed    = regexp.MustCompile(`\d+\s*-\s*\d+\s*/\s*\d+\s*(?:"|''|INCH|\bIN\b)`)
	reInchPlain    = regexp.MustCompile(`\d+\s*(?:"|''|\bINCH|\bIN\b)\b`)
)

// DetectUnit classifies a description as "metric" or "inch" from its
// dimension notation, or returns "" when nothing decisive appears. Metric
// markers are checked first, so "M10 X 1/2" reads metric.
func DetectUnit(desc string) string {
	if desc == "" {
		return ""
	}
	d := strings.ReplaceAll(strings.ToUpper(desc), "×", "X")

	if reMetricDia.MatchString(d) || reMetricMM.MatchString(d) || reMetricPitch.MatchString(d) {
		return "metric"
	}
	for _, tok := range []string{" DIN", " ISO", " METRIC"} {
		if strings.Contains(d, tok) {
			return "metric"
		}
	}

	if reInchFraction.MatchString(d) || reInchMixed.MatchString(d) || reInchPlain.MatchString(d) {
		return "inch"
	}
	for _, tok := range []string{"UNC", "UNF", "#", " INCH THREAD"} {
		if strings.Contains(d, tok) {
			return "inch"
		}
	}
	return ""
}
