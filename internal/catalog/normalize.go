package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/caliber-ui/quotation-app/internal"
	"github.com/caliber-ui/quotation-app/internal/util"
)

// shapeRule pairs a predicate with a transform. Rules are tried in order and
// the first match wins, so the order below is part of the contract: a raw
// entry carrying both "screw_type" and "title" is handled as structured,
// never as flat.
type shapeRule struct {
	name  string
	match func(*util.OrderedObject) bool
	apply func(*util.OrderedObject) []internal.CatalogEntry
}

var shapeRules = []shapeRule{
	{name: "structured", match: isStructured, apply: applyStructured},
	{name: "flat", match: isFlat, apply: applyFlat},
	{name: "nut", match: isNut, apply: applyNut},
	{name: "keyed", match: isKeyed, apply: applyKeyed},
}

// Normalize decodes a raw catalog file (a JSON array of heterogeneous
// entries) into the uniform CatalogEntry form. Entries matching no shape
// rule are dropped.
func Normalize(raw []byte) ([]internal.CatalogEntry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("catalog file is not a JSON array: %w", err)
	}
	var out []internal.CatalogEntry
	for i, item := range items {
		if !util.IsObject(item) {
			continue
		}
		var obj util.OrderedObject
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		for _, rule := range shapeRules {
			if rule.match(&obj) {
				out = append(out, rule.apply(&obj)...)
				break
			}
		}
	}
	return out, nil
}

func has(obj *util.OrderedObject, key string) bool {
	_, ok := obj.Get(key)
	return ok
}

func getString(obj *util.OrderedObject, key string) string {
	raw, ok := obj.Get(key)
	if !ok {
		return ""
	}
	s, _ := util.DecodeString(raw)
	return s
}

// Shape 1: already structured, with screw_type plus metric/inch dimension
// tables. Stud price tables additionally get their diameter labels cleaned
// and a canonical type name.
func isStructured(obj *util.OrderedObject) bool {
	return has(obj, "screw_type")
}

func applyStructured(obj *util.OrderedObject) []internal.CatalogEntry {
	entry := internal.CatalogEntry{
		ScrewType: getString(obj, "screw_type"),
		Standard:  getStringDefault(obj, "standard", "N/A"),
		Unit:      getStringDefault(obj, "unit", "N/A"),
	}
	studPrice := strings.Contains(strings.ToLower(entry.ScrewType), "stud price")
	if studPrice {
		entry.ScrewType = "Stud Screw"
	}
	if raw, ok := obj.Get("dimensions_in_metric"); ok {
		entry.Metric = decodeDimensionRows(raw, "length_mm", func(label string) string {
			if studPrice {
				return strings.ReplaceAll(label, " ", "")
			}
			return label
		})
	}
	if raw, ok := obj.Get("dimensions_in_inches"); ok {
		entry.Inches = decodeDimensionRows(raw, "length", func(label string) string {
			if studPrice {
				return strings.TrimSpace(label)
			}
			return label
		})
	}
	return []internal.CatalogEntry{entry}
}

// Shape 2: flat rivet-style tables with a title and a data array whose
// diameter_* columns carry the rates.
func isFlat(obj *util.OrderedObject) bool {
	return has(obj, "title") && (has(obj, "dimensions_unit") || has(obj, "data"))
}

func applyFlat(obj *util.OrderedObject) []internal.CatalogEntry {
	screwType := getString(obj, "title")
	if strings.Contains(strings.ToLower(screwType), "stud") {
		screwType = "Stud Screw"
	}
	entry := internal.CatalogEntry{
		ScrewType: screwType,
		Standard:  "N/A",
		Unit:      getStringDefault(obj, "approx_count_unit", "N/A"),
	}
	dimUnit := strings.ToLower(getString(obj, "dimensions_unit"))
	rawData, _ := obj.Get("data")
	rows := decodeObjectList(rawData)
	for _, row := range rows {
		var dr internal.DimensionRow
		var lengthKey string
		inch := strings.HasPrefix(dimUnit, "inch")
		if inch {
			lengthKey = "length"
		} else {
			lengthKey = "length_mm"
		}
		if raw, ok := row.Get(lengthKey); ok {
			if s, ok2 := util.DecodeString(raw); ok2 {
				dr.Length = util.StringPtr(s)
			}
		}
		for _, k := range row.Keys {
			if !strings.HasPrefix(k, "diameter_") {
				continue
			}
			label := strings.TrimPrefix(k, "diameter_")
			if inch {
				label = strings.TrimSpace(label)
			} else {
				label = strings.ReplaceAll(label, " ", "")
			}
			if rate, ok := util.DecodeFloat(row.Values[k]); ok {
				dr.Diameters = append(dr.Diameters, internal.DiameterRate{Label: label, Rate: rate})
			}
		}
		if len(dr.Diameters) == 0 {
			continue
		}
		if strings.HasPrefix(dimUnit, "inch") {
			entry.Inches = append(entry.Inches, dr)
		} else if strings.HasPrefix(dimUnit, "metric") {
			entry.Metric = append(entry.Metric, dr)
		}
	}
	return []internal.CatalogEntry{entry}
}

// Shape 3: nut tables keyed by sub-type. Each sub-type becomes its own
// entry named "<title> - <sub-type>". Sizes containing a quote mark, a
// slash or "ba" are inch sizes.
func isNut(obj *util.OrderedObject) bool {
	return has(obj, "approx_count_per_50_kgs") || has(obj, "hex_locknuts_bsw_bsf_approx_weight_per_100_pcs")
}

func applyNut(obj *util.OrderedObject) []internal.CatalogEntry {
	title := getStringDefault(obj, "title", "Nut")
	var out []internal.CatalogEntry
	if raw, ok := obj.Get("approx_count_per_50_kgs"); ok {
		out = append(out, explodeNutGroups(raw, title, "Approx. Count per 50 kgs.",
			[]string{"specification", "height_d", "count"})...)
	}
	if raw, ok := obj.Get("hex_locknuts_bsw_bsf_approx_weight_per_100_pcs"); ok {
		out = append(out, explodeNutGroups(raw, title, "Approx. Weight per 100 pcs.",
			[]string{"weight", "count"})...)
	}
	return out
}

func explodeNutGroups(raw json.RawMessage, title, unit string, valueKeys []string) []internal.CatalogEntry {
	var groups util.OrderedObject
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil
	}
	var out []internal.CatalogEntry
	for _, nutType := range groups.Keys {
		entry := internal.CatalogEntry{
			ScrewType: fmt.Sprintf("%s - %s", title, nutType),
			Standard:  "N/A",
			Unit:      unit,
		}
		for _, row := range decodeObjectList(groups.Values[nutType]) {
			size := getString(row, "size")
			if size == "" {
				continue
			}
			rate, ok := firstFloat(row, valueKeys)
			if !ok {
				continue
			}
			dr := internal.DimensionRow{
				Diameters: []internal.DiameterRate{{Label: size, Rate: rate}},
			}
			if looksLikeInches(size) {
				entry.Inches = append(entry.Inches, dr)
			} else {
				entry.Metric = append(entry.Metric, dr)
			}
		}
		out = append(out, entry)
	}
	return out
}

// Shape 4: washer-style entries where every key besides title and unit is a
// fastener type with its own size/weight list. All sizes land in the metric
// table.
func isKeyed(obj *util.OrderedObject) bool {
	return has(obj, "title") && has(obj, "unit")
}

func applyKeyed(obj *util.OrderedObject) []internal.CatalogEntry {
	unit := getStringDefault(obj, "unit", "N/A")
	var out []internal.CatalogEntry
	for _, key := range obj.Keys {
		if key == "title" || key == "unit" {
			continue
		}
		entry := internal.CatalogEntry{ScrewType: key, Standard: "N/A", Unit: unit}
		for _, row := range decodeObjectList(obj.Values[key]) {
			size := getString(row, "size")
			if size == "" {
				continue
			}
			rate, ok := firstFloat(row, []string{"weight"})
			if !ok {
				continue
			}
			entry.Metric = append(entry.Metric, internal.DimensionRow{
				Diameters: []internal.DiameterRate{{Label: size, Rate: rate}},
			})
		}
		out = append(out, entry)
	}
	return out
}

func looksLikeInches(size string) bool {
	return strings.Contains(size, `"`) || strings.Contains(size, "/") ||
		strings.Contains(strings.ToLower(size), "ba")
}

func getStringDefault(obj *util.OrderedObject, key, def string) string {
	if s := getString(obj, key); s != "" {
		return s
	}
	return def
}

func firstFloat(obj *util.OrderedObject, keys []string) (float64, bool) {
	for _, k := range keys {
		raw, ok := obj.Get(k)
		if !ok {
			continue
		}
		if f, ok := util.DecodeFloat(raw); ok && f != 0 {
			return f, true
		}
	}
	return 0, false
}

func decodeObjectList(raw json.RawMessage) []*util.OrderedObject {
	if raw == nil || !util.IsArray(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]*util.OrderedObject, 0, len(items))
	for _, item := range items {
		if !util.IsObject(item) {
			continue
		}
		var obj util.OrderedObject
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		out = append(out, &obj)
	}
	return out
}

func decodeDimensionRows(raw json.RawMessage, lengthKey string, cleanLabel func(string) string) []internal.DimensionRow {
	var out []internal.DimensionRow
	for _, row := range decodeObjectList(raw) {
		var dr internal.DimensionRow
		if lraw, ok := row.Get(lengthKey); ok && string(lraw) != "null" {
			if s, ok2 := util.DecodeString(lraw); ok2 {
				dr.Length = util.StringPtr(s)
			}
		}
		draw, ok := row.Get("diameter")
		if !ok || !util.IsObject(draw) {
			continue
		}
		var diams util.OrderedObject
		if err := json.Unmarshal(draw, &diams); err != nil {
			continue
		}
		for _, label := range diams.Keys {
			rate, ok := util.DecodeFloat(diams.Values[label])
			if !ok || rate == 0 {
				continue
			}
			dr.Diameters = append(dr.Diameters, internal.DiameterRate{
				Label: cleanLabel(label),
				Rate:  rate,
			})
		}
		if len(dr.Diameters) > 0 || dr.Length != nil {
			out = append(out, dr)
		}
	}
	return out
}
