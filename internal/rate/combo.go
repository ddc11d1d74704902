package rate

import (
	"regexp"
	"strings"

	"github.com/caliber-ui/quotation-app/internal"
	"github.com/caliber-ui/quotation-app/internal/util"
)

var comboWord = regexp.MustCompile(`[A-Za-z]+|\d+`)

var comboTypes = map[string]struct{}{
	"stud": {}, "nut": {}, "washer": {}, "bolt": {}, "screw": {},
}

// ParseCombo reads an assembly phrase like "1 stud 2 nut 2 washer" into
// typed components. A number sets the count for the next recognized type
// word; the count resets to 1 after each component.
func ParseCombo(input string) []internal.ComboComponent {
	words := comboWord.FindAllString(strings.ToLower(input), -1)
	var combo []internal.ComboComponent
	qty := 1
	for _, w := range words {
		if n, isNum := atoi(w); isNum {
			qty = n
			continue
		}
		if _, ok := comboTypes[w]; ok {
			combo = append(combo, internal.ComboComponent{Type: w, Count: qty})
			qty = 1
		}
	}
	return combo
}

func atoi(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

var primaryKeywords = []string{"STUD", "NUT", "BOLT", "WASHER", "SCREW"}

// tokens that imply a primary category without naming it
var categoryTokenMap = []struct {
	token    string
	category string
}{
	{"CAPSCREW", "SCREW"},
	{"CAP SCREW", "SCREW"},
	{"ALLEN", "SCREW"},
	{"ALLENCAP", "SCREW"},
	{"ALLEN CAP", "SCREW"},
	{"HEX HD", "BOLT"},
	{"HEX HEAD", "BOLT"},
	{"HEX", "BOLT"},
	{"FLAT WASHER", "WASHER"},
	{"SPRING WASHER", "WASHER"},
}

// DetectPrimaryCategories finds the fastener categories a free description
// names, directly or through implying tokens.
func DetectPrimaryCategories(description string) []string {
	desc := strings.ToUpper(strings.TrimSpace(description))
	var found []string
	for _, kw := range primaryKeywords {
		if strings.Contains(desc, kw) {
			found = append(found, kw)
		}
	}
	for _, tm := range categoryTokenMap {
		if strings.Contains(desc, tm.token) {
			found = append(found, tm.category)
		}
	}
	if strings.Contains(desc, "WASHER") {
		found = append(found, "WASHER")
	}
	return util.Dedupe(found)
}

// TypesForCategory returns the catalog screw types belonging to a primary
// category: substring containment first, then a whole-token fallback.
func TypesForCategory(category string, entries []internal.CatalogEntry) []string {
	catLower := strings.ToLower(category)
	var labels []string
	for _, e := range entries {
		if e.ScrewType == "" {
			continue
		}
		if strings.Contains(strings.ToLower(e.ScrewType), catLower) {
			labels = append(labels, e.ScrewType)
		}
	}
	if len(labels) == 0 && catLower != "washer" {
		for _, e := range entries {
			if e.ScrewType == "" {
				continue
			}
			cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(e.ScrewType)
			for _, tok := range strings.Fields(strings.ToLower(cleaned)) {
				if tok == catLower {
					labels = append(labels, e.ScrewType)
					break
				}
			}
		}
	}
	return util.Dedupe(labels)
}

// TypeMatch is a catalog type scored against a description.
type TypeMatch struct {
	ScrewType string
	Score     float64
}

// MatchTypes ranks catalog screw types against a description. A type named
// verbatim wins outright; otherwise types scoring at or above the threshold
// are returned, or the top three as a fallback.
func MatchTypes(description string, entries []internal.CatalogEntry, threshold float64) []TypeMatch {
	descLower := strings.ToLower(description)
	var types []string
	seen := map[string]struct{}{}
	for _, e := range entries {
		if e.ScrewType == "" {
			continue
		}
		if _, ok := seen[e.ScrewType]; ok {
			continue
		}
		seen[e.ScrewType] = struct{}{}
		types = append(types, e.ScrewType)
	}

	for _, t := range types {
		if strings.Contains(descLower, strings.ToLower(t)) {
			return []TypeMatch{{ScrewType: t, Score: 100}}
		}
	}

	var scored []TypeMatch
	for _, t := range types {
		score := float64(util.PartialRatio(
			util.NormalizePreserveSpace(description),
			util.NormalizePreserveSpace(t),
		))
		scored = append(scored, TypeMatch{ScrewType: t, Score: score})
	}
	// stable: equal scores keep catalog order
	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].Score > scored[j-1].Score; j-- {
			scored[j], scored[j-1] = scored[j-1], scored[j]
		}
	}
	var good []TypeMatch
	for _, m := range scored {
		if m.Score >= threshold {
			good = append(good, m)
		}
	}
	if len(good) > 0 {
		return good
	}
	if len(scored) > 3 {
		scored = scored[:3]
	}
	return scored
}

// BaseName strips the sub-type suffix from an exploded screw type, so
// "Hex Nuts - BSW" groups with its siblings.
func BaseName(screwType string) string {
	return strings.ToLower(strings.TrimSpace(strings.SplitN(screwType, " - ", 2)[0]))
}

// EntriesForType returns the catalog entries whose base name matches the
// chosen type's base name.
func EntriesForType(screwType string, entries []internal.CatalogEntry) []internal.CatalogEntry {
	base := BaseName(screwType)
	var out []internal.CatalogEntry
	for _, e := range entries {
		if BaseName(e.ScrewType) == base {
			out = append(out, e)
		}
	}
	return out
}
