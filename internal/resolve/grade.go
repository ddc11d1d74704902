package resolve

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/caliber-ui/quotation-app/internal/util"
)

// gradeTerm is one scalar value from the material-grades reference, tagged
// with the title of its enclosing section and the key it sat under.
type gradeTerm struct {
	Value string
	Title string
	Key   string
}

// GradeVocabulary is the flattened material-grades reference. Every scalar
// leaf is a potential grade designation.
type GradeVocabulary struct {
	terms []gradeTerm
}

// LoadGradeVocabulary flattens a material-grades JSON document of arbitrary
// nesting into the term list, preserving document order.
func LoadGradeVocabulary(raw []byte) (*GradeVocabulary, error) {
	var msg json.RawMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("material grades file: %w", err)
	}
	v := &GradeVocabulary{}
	v.collect(msg, "")
	return v, nil
}

func (v *GradeVocabulary) collect(raw json.RawMessage, title string) {
	switch {
	case util.IsObject(raw):
		var obj util.OrderedObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return
		}
		localTitle := title
		if t, ok := obj.Get("title"); ok {
			if s, ok2 := util.DecodeString(t); ok2 && s != "" {
				localTitle = s
			}
		}
		for _, k := range obj.Keys {
			val := obj.Values[k]
			if util.IsObject(val) || util.IsArray(val) {
				v.collect(val, localTitle)
				continue
			}
			if s, ok := util.DecodeString(val); ok {
				s = strings.TrimSpace(s)
				if s != "" {
					v.terms = append(v.terms, gradeTerm{Value: s, Title: localTitle, Key: k})
				}
			}
		}
	case util.IsArray(raw):
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return
		}
		for _, item := range items {
			v.collect(item, title)
		}
	}
}

// Len reports the number of flattened terms.
func (v *GradeVocabulary) Len() int { return len(v.terms) }

// candidate patterns, tried in order. They cover ASTM/ASME designations,
// nickel alloys, fit classes and decimal property classes.
var candidatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`SA\d{3,4}\s*GR\s*[A-Z0-9]+`),
	regexp.MustCompile(`A\d{3,4}\s*[A-Z0-9]+`),
	regexp.MustCompile(`\b[A-Z]{1,3}\d{2,4}[A-Z0-9\-]*\b`),
	regexp.MustCompile(`HASTELLOY\s*[A-Z0-9]*`),
	regexp.MustCompile(`INCONEL\s*[A-Z0-9]*`),
	regexp.MustCompile(`ALLOY\s*[0-9A-Z\-]*`),
	regexp.MustCompile(`MONEL\s*[0-9A-Z]*`),
	regexp.MustCompile(`TI[A-Z0-9.\-]+`),
	regexp.MustCompile(`F\d{2,3}`),
	regexp.MustCompile(`\bCL\s*\d+(\.\d+)?\b`),
	regexp.MustCompile(`\b\d+\.\d+\b`),
	regexp.MustCompile(`ASTM\s*[A-Z]?\d{1,4}[A-Z0-9\-]*`),
}

// CandidateTerms extracts the grade-looking fragments of a description, in
// pattern order, deduplicated.
func CandidateTerms(desc string) []string {
	descUp := strings.ToUpper(desc)
	var found []string
	for _, pat := range candidatePatterns {
		for _, m := range pat.FindAllString(descUp, -1) {
			m = strings.TrimSpace(m)
			if m == "" {
				continue
			}
			dup := false
			for _, f := range found {
				if f == m {
					dup = true
					break
				}
			}
			if !dup {
				found = append(found, m)
			}
		}
	}
	return found
}

// GradesFromDescription matches candidate fragments against the vocabulary.
// Containment either way counts, then fuzzy matching at the threshold; when
// no candidate matches anything the whole description is fuzzily compared
// against every term. A grade whose normalized form appears verbatim in the
// description is promoted to the front.
func (v *GradeVocabulary) GradesFromDescription(desc string, threshold int) []string {
	if v == nil {
		return nil
	}
	descUp := strings.ToUpper(desc)
	descNorm := util.Normalize(descUp)
	candidates := CandidateTerms(desc)

	var matches []string
	exact := ""
	for _, cand := range candidates {
		candNorm := util.Normalize(cand)
		for _, term := range v.terms {
			termNorm := util.Normalize(term.Value)
			if termNorm == "" {
				continue
			}
			if strings.Contains(descNorm, termNorm) {
				exact = term.Value
			}
			if strings.Contains(candNorm, termNorm) || strings.Contains(termNorm, candNorm) {
				matches = append(matches, term.Value)
			} else if util.PartialRatio(termNorm, candNorm) >= threshold {
				matches = append(matches, term.Value)
			}
		}
	}
	if len(matches) == 0 {
		for _, term := range v.terms {
			if util.PartialRatio(util.Normalize(term.Value), descUp) >= threshold {
				matches = append(matches, term.Value)
			}
		}
	}
	if exact != "" {
		front := []string{}
		rest := []string{}
		for _, m := range matches {
			if m == exact {
				front = append(front, m)
			} else {
				rest = append(rest, m)
			}
		}
		matches = append(front, rest...)
	}
	return util.Dedupe(matches)
}
