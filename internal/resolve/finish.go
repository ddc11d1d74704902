package resolve

import (
	"regexp"
	"strings"

	"github.com/caliber-ui/quotation-app/internal/util"
)

// supplementary finish tokens matched even when absent from the standards
// vocabulary.
var finishSupplements = []string{"ZINC", "HDG", "BLACK", "PLATED", "GALVANIZED", "PASSIVATED"}

var reNonAlnumSpace = regexp.MustCompile(`[^A-Z0-9\s]`)

// FinishesFromDescription matches the finish vocabulary against a
// description: word-boundary hits first, then fuzzy matches at the
// threshold, then the supplementary tokens by plain containment. Vocabulary
// order is preserved.
func FinishesFromDescription(desc string, vocabulary []string, threshold int) []string {
	descUp := " " + reNonAlnumSpace.ReplaceAllString(strings.ToUpper(desc), " ") + " "
	var matched []string
	for _, finish := range vocabulary {
		fin := strings.TrimSpace(strings.ToUpper(finish))
		if fin == "" {
			continue
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(fin) + `\b`)
		if err != nil {
			if strings.Contains(descUp, fin) {
				matched = append(matched, fin)
			}
			continue
		}
		if re.MatchString(descUp) {
			matched = append(matched, fin)
		} else if util.PartialRatio(fin, descUp) >= threshold {
			matched = append(matched, fin)
		}
	}
	for _, tok := range finishSupplements {
		if strings.Contains(descUp, tok) {
			matched = append(matched, tok)
		}
	}
	return util.Dedupe(matched)
}
