package resolve

import (
	"regexp"
	"strings"

	"github.com/caliber-ui/quotation-app/internal"
	"github.com/caliber-ui/quotation-app/internal/standards"
	"github.com/caliber-ui/quotation-app/internal/util"
)

var (
	reLeadingDigit = regexp.MustCompile(`^\d`)
	reMetricStd    = regexp.MustCompile(`\bDIN\b|\bISO\b|\d`)
	reInchStd      = regexp.MustCompile(`INCH|['"]`)
)

// DimensionOptions lists the dimension-standard choices for a resolved
// (type, family, unit) triple. Three passes relax the filter until
// something matches: the full filter, family-only, then everything. A
// bare-numeric standard under the wrong family with no metric sizes is
// synthesized into "<family> <standard>" rather than discarded, so a DIN
// row can still surface an unlabelled 931-style designation.
func DimensionOptions(idx *standards.Index, typeName, family, unit string) []string {
	var opts []string

	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		for _, o := range opts {
			if o == v {
				return
			}
		}
		opts = append(opts, v)
	}

	forEachEntry := func(fn func(e internal.StandardsEntry)) {
		for _, cat := range idx.CategoryOrder {
			for _, e := range idx.Categories[cat] {
				fn(e)
			}
		}
	}

	// pass 1: type, family and unit all applied
	forEachEntry(func(e internal.StandardsEntry) {
		if e.TypeName == "" {
			return
		}
		if typeName != "" && strings.TrimSpace(e.TypeName) != strings.TrimSpace(typeName) {
			return
		}
		std := strings.TrimSpace(e.Standard)
		metricsJoined := strings.Join(e.Metrics, ", ")
		inches := strings.TrimSpace(e.Inches)

		if family != "" && standards.Family(std) != family {
			if std != "" && reLeadingDigit.MatchString(std) && metricsJoined == "" {
				add(family + " " + std)
			} else {
				return
			}
		}

		switch unit {
		case "metric":
			if metricsJoined != "" {
				for _, p := range e.Metrics {
					add(p)
				}
			} else if std != "" && reMetricStd.MatchString(std) {
				add(std)
			}
		case "inch":
			if inches != "" {
				add(inches)
			} else if std != "" && reInchStd.MatchString(strings.ToUpper(std)) {
				add(std)
			}
		default:
			if metricsJoined != "" {
				for _, p := range e.Metrics {
					add(p)
				}
			} else if std != "" {
				add(std)
			}
		}
	})

	// pass 2: family only
	if len(opts) == 0 && family != "" {
		forEachEntry(func(e internal.StandardsEntry) {
			std := strings.TrimSpace(e.Standard)
			if standards.Family(std) != family {
				return
			}
			metricsJoined := strings.Join(e.Metrics, ", ")
			inches := strings.TrimSpace(e.Inches)
			switch unit {
			case "metric":
				for _, p := range e.Metrics {
					add(p)
				}
			case "inch":
				add(inches)
			default:
				if metricsJoined != "" {
					add(metricsJoined)
				} else if std != "" {
					add(std)
				} else {
					add(inches)
				}
			}
		})
	}

	// pass 3: anything in the index
	if len(opts) == 0 {
		forEachEntry(func(e internal.StandardsEntry) {
			std := strings.TrimSpace(e.Standard)
			metricsJoined := strings.Join(e.Metrics, ", ")
			inches := strings.TrimSpace(e.Inches)
			switch {
			case unit == "metric" && metricsJoined != "":
				for _, p := range e.Metrics {
					add(p)
				}
			case unit == "inch" && inches != "":
				add(inches)
			default:
				add(metricsJoined)
				add(std)
				add(inches)
			}
		})
	}

	return util.Dedupe(opts)
}
