package rate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/caliber-ui/quotation-app/internal"
)

// FindRate scans entries for the first row whose length matches (or which
// carries no length at all) and holds a rate for the diameter. Zero-rate
// cells count as absent. Any dimension token other than "metric" selects the
// inch table, so "inch" and "inches" both work.
func FindRate(entries []internal.CatalogEntry, length *string, diameter, dimType string) (float64, bool) {
	for _, e := range entries {
		rows := e.Metric
		if dimType != "metric" {
			rows = e.Inches
		}
		for _, row := range rows {
			if !lengthMatches(row.Length, length) {
				continue
			}
			for _, d := range row.Diameters {
				if d.Label == diameter && d.Rate != 0 {
					return d.Rate, true
				}
			}
		}
	}
	return 0, false
}

func lengthMatches(rowLength, want *string) bool {
	if rowLength == nil {
		return true
	}
	if want == nil {
		return false
	}
	return *rowLength == *want
}

// WeightPerPiece converts a catalog rate to a per-piece weight in kg
// according to the entry's unit phrasing. Count-per-50kg tables invert; so
// does the catch-all, since the legacy count tables carry no unit label.
func WeightPerPiece(rateValue float64, unit string) float64 {
	u := strings.ToLower(unit)
	switch {
	case strings.Contains(u, "price per piece"):
		return rateValue
	case strings.Contains(u, "approx. weight per 100"), strings.Contains(u, "100 nos"):
		return rateValue / 100
	case strings.Contains(u, "approx. count per 50"):
		if rateValue == 0 {
			return 0
		}
		return 50.0 / rateValue
	default:
		if rateValue == 0 {
			return 0
		}
		return 50.0 / rateValue
	}
}

// Quote totals a component: per-piece weight times piece count and
// quantity, priced per kg.
func Quote(perPieceWeight float64, count, qty int, ratePerKg float64) internal.RateQuote {
	totalWeight := perPieceWeight * float64(count) * float64(qty)
	return internal.RateQuote{
		WeightPerPiece: perPieceWeight,
		TotalWeight:    totalWeight,
		TotalPrice:     totalWeight * ratePerKg,
	}
}

// Diameters collects the distinct diameter labels across entries for a
// dimension system.
func Diameters(entries []internal.CatalogEntry, dimType string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, e := range entries {
		rows := e.Metric
		if dimType != "metric" {
			rows = e.Inches
		}
		for _, row := range rows {
			for _, d := range row.Diameters {
				if _, ok := seen[d.Label]; ok {
					continue
				}
				seen[d.Label] = struct{}{}
				out = append(out, d.Label)
			}
		}
	}
	return out
}

// LengthsForDiameter lists canonical lengths carrying a rate for the
// diameter, preserving table order.
func LengthsForDiameter(entries []internal.CatalogEntry, diameter, dimType string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, e := range entries {
		rows := e.Metric
		if dimType != "metric" {
			rows = e.Inches
		}
		for _, row := range rows {
			if row.Length == nil {
				continue
			}
			for _, d := range row.Diameters {
				if d.Label != diameter || d.Rate == 0 {
					continue
				}
				if _, ok := seen[*row.Length]; !ok {
					seen[*row.Length] = struct{}{}
					out = append(out, *row.Length)
				}
			}
		}
	}
	return out
}

const unsortableKey = 9999

// SortDiameters orders diameter labels numerically: metric labels by their
// concatenated digits, inch labels by fraction value. Unparseable labels
// sort last with a stable sentinel. Duplicates are removed first.
func SortDiameters(labels []string, dimType string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	key := metricKey
	if dimType != "metric" {
		key = inchKey
	}
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) < key(out[j])
	})
	return out
}

func metricKey(label string) float64 {
	var digits strings.Builder
	for _, r := range label {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return unsortableKey
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return unsortableKey
	}
	return float64(n)
}

func inchKey(label string) float64 {
	v := strings.ReplaceAll(label, `"`, "")
	v = strings.TrimSpace(v)
	if strings.Contains(v, "/") {
		parts := strings.SplitN(v, "/", 2)
		n, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		d, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil || d == 0 {
			return unsortableKey
		}
		return n / d
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return unsortableKey
	}
	return f
}
