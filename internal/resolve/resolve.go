package resolve

import (
	"strings"

	"github.com/caliber-ui/quotation-app/internal"
	"github.com/caliber-ui/quotation-app/internal/standards"
	"github.com/caliber-ui/quotation-app/internal/util"
)

// Resolver turns a free-text enquiry line into suggested fastener
// attributes against a standards index.
type Resolver struct {
	Index           *standards.Index
	Synonyms        *Synonyms
	Grades          *GradeVocabulary
	GradeThreshold  int
	FinishThreshold int
}

// CategorySlot is one detected category of a row with its suggested or
// confirmed attributes. Once Overridden is set, suggestion passes leave the
// slot alone.
type CategorySlot struct {
	Category    string
	TypeOptions []string
	Attrs       internal.ResolvedAttributes
}

// ApplySuggestion writes suggested attributes unless the slot has been
// confirmed by the user.
func (s *CategorySlot) ApplySuggestion(attrs internal.ResolvedAttributes) {
	if s.Attrs.Overridden {
		return
	}
	attrs.Overridden = false
	s.Attrs = attrs
}

// Override applies a user edit and marks the slot confirmed.
func (s *CategorySlot) Override(mutate func(*internal.ResolvedAttributes)) {
	mutate(&s.Attrs)
	s.Attrs.Overridden = true
}

// RowResolution is the full resolution of one description row.
type RowResolution struct {
	Description string
	// MatchText is the description with synonym phrases replaced by their
	// main type names; all downstream matching runs against it.
	MatchText string
	Matches   []SynonymMatch
	Slots     []*CategorySlot
}

// ResolveRow detects categories and fills a suggestion slot for each.
func (r *Resolver) ResolveRow(desc string) *RowResolution {
	matches := r.Synonyms.Match(desc)
	matchText := Rewrite(desc, matches)

	row := &RowResolution{
		Description: desc,
		MatchText:   matchText,
		Matches:     matches,
	}

	categories := DetectCategories(desc, r.Index)
	categories = append(categories, inferredCategories(matches)...)
	categories = util.Dedupe(categories)
	if len(categories) == 0 {
		categories = []string{""}
	}

	preferred := preferredTypes(matches, r.Index)

	for _, cat := range categories {
		slot := &CategorySlot{Category: cat}
		slot.TypeOptions = r.typeOptions(cat, preferred[cat])
		r.SuggestSlot(slot, matchText, preferred[cat])
		row.Slots = append(row.Slots, slot)
	}
	return row
}

// SuggestSlot recomputes a slot's suggested attributes from the match text.
// Overridden slots are untouched.
func (r *Resolver) SuggestSlot(slot *CategorySlot, matchText string, preferred []string) {
	if slot.Attrs.Overridden {
		return
	}
	attrs := internal.ResolvedAttributes{}

	attrs.Type = r.pickType(slot.Category, slot.TypeOptions, preferred)
	attrs.StandardFamily = r.pickFamily(attrs.Type, matchText)
	attrs.Unit = pickUnit(matchText)

	dims := DimensionOptions(r.Index, attrs.Type, attrs.StandardFamily, attrs.Unit)
	if len(dims) > 0 {
		attrs.DimensionStandard = dims[0]
	}
	if grades := r.Grades.GradesFromDescription(matchText, r.GradeThreshold); len(grades) > 0 {
		attrs.Grade = grades[0]
	}
	finishes := FinishesFromDescription(matchText, r.Index.GlobalFinishes, r.FinishThreshold)
	attrs.Finish = strings.Join(finishes, " / ")

	slot.ApplySuggestion(attrs)
}

func (r *Resolver) typeOptions(category string, preferred []string) []string {
	var opts []string
	if category != "" {
		opts = r.Index.TypesForCategory(category)
	}
	if len(opts) == 0 {
		opts = r.Index.AllTypes()
	}
	// preferred names absent from the options are prepended so a synonym
	// main stays selectable even when the index lacks it
	for _, cand := range preferred {
		found := false
		for _, o := range opts {
			if util.Normalize(o) == util.Normalize(cand) {
				found = true
				break
			}
		}
		if !found && cand != "" {
			opts = append([]string{cand}, opts...)
		}
	}
	return opts
}

func (r *Resolver) pickType(category string, options, preferred []string) string {
	for _, cand := range preferred {
		for _, o := range options {
			if util.Normalize(o) == util.Normalize(cand) {
				return o
			}
		}
	}
	var def string
	switch category {
	case "bolt":
		def = "HEX BOLT"
	case "nut":
		def = "HEX NUT"
	}
	if def != "" {
		for _, o := range options {
			if strings.ToUpper(o) == def {
				return o
			}
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return ""
}

func (r *Resolver) pickFamily(typeName, matchText string) string {
	var fams []string
	if typeName != "" {
		fams = r.Index.FamiliesForType(typeName)
	}
	if len(fams) == 0 {
		fams = r.Index.Families()
	}
	up := strings.ToUpper(matchText)
	for _, f := range fams {
		if f != "" && strings.Contains(up, f) {
			return f
		}
	}
	if len(fams) == 1 {
		return fams[0]
	}
	return ""
}

func pickUnit(matchText string) string {
	if u := DetectUnit(matchText); u != "" {
		return u
	}
	up := strings.ToUpper(matchText)
	if strings.Contains(up, "M") || strings.Contains(up, "MM") {
		return "metric"
	}
	if strings.Contains(matchText, "#") || strings.Contains(up, "INCH") {
		return "inch"
	}
	return "metric"
}

func inferredCategories(matches []SynonymMatch) []string {
	var out []string
	for _, m := range matches {
		up := strings.ToUpper(m.Main)
		for _, cat := range []string{"nut", "bolt", "screw", "washer", "stud"} {
			if strings.Contains(up, strings.ToUpper(cat)) {
				out = append(out, cat)
			}
		}
	}
	return util.Dedupe(out)
}

// preferredTypes buckets synonym mains by the category their name implies,
// falling back to a normalized lookup against the index types.
func preferredTypes(matches []SynonymMatch, idx *standards.Index) map[string][]string {
	out := map[string][]string{}
	for _, m := range matches {
		up := strings.ToUpper(m.Main)
		placed := false
		for _, cat := range []string{"nut", "bolt", "screw", "washer", "stud"} {
			if strings.Contains(up, strings.ToUpper(cat)) {
				out[cat] = append(out[cat], strings.TrimSpace(m.Main))
				placed = true
				break
			}
		}
		if placed {
			continue
		}
		for _, cat := range idx.CategoryOrder {
			for _, t := range idx.TypesForCategory(cat) {
				if util.Normalize(t) == util.Normalize(m.Main) {
					out[cat] = append(out[cat], strings.TrimSpace(m.Main))
				}
			}
		}
	}
	return out
}
