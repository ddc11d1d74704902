package util

import (
	"regexp"
	"strings"
)

var (
	reStrict    = regexp.MustCompile(`[^A-Z0-9]`)
	reKeepWS    = regexp.MustCompile(`[^A-Z0-9\s]`)
	reSpaces    = regexp.MustCompile(`\s+`)
	reListSep   = regexp.MustCompile(`[;,]`)
	rePrintable = regexp.MustCompile(`[^\x20-\x7E]`)
)

// Normalize uppercases and strips every character outside [A-Z0-9], so that
// "M 10", "M-10" and "m10" all collapse to "M10".
func Normalize(input string) string {
	s := strings.ToUpper(input)
	return reStrict.ReplaceAllString(s, "")
}

// NormalizePreserveSpace uppercases, replaces characters outside [A-Z0-9\s]
// with a space and trims. Word boundaries survive, punctuation does not.
func NormalizePreserveSpace(input string) string {
	s := strings.ToUpper(input)
	s = reKeepWS.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeSpaces collapses runs of whitespace and strips non-printable
// characters without touching case or punctuation.
func NormalizeSpaces(input string) string {
	s := rePrintable.ReplaceAllString(input, "")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// TokenInText reports whether token occurs in text under the two-tier rule:
// strict-normalized substring containment first, then a word-boundary match
// of the space-preserving forms. The first tier lets "M10" match "M-10";
// the second catches tokens that the strict collapse would glue onto
// neighbouring characters.
func TokenInText(token, text string) bool {
	if token == "" || text == "" {
		return false
	}
	tnorm := Normalize(token)
	if tnorm == "" {
		return false
	}
	if strings.Contains(Normalize(text), tnorm) {
		return true
	}
	tokenWS := NormalizePreserveSpace(token)
	textWS := NormalizePreserveSpace(text)
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(tokenWS) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(textWS)
}

// SplitList splits a comma/semicolon-joined value into trimmed non-empty
// parts.
func SplitList(input string) []string {
	parts := reListSep.Split(input, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Dedupe removes duplicates preserving first-seen order.
func Dedupe(values []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }
