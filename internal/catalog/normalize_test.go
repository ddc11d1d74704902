package catalog

import (
	"testing"
)

func TestNormalizeStructuredStudPrice(t *testing.T) {
	raw := []byte(`[
		{
			"screw_type": "Stud Price XYZ",
			"standard": "DIN 976",
			"unit": "Approx. Weight per 100 Nos. in Kgs.",
			"dimensions_in_metric": [
				{"length_mm": 50, "diameter": {"M 10": 4.5, "M 12": 6.2}}
			],
			"dimensions_in_inches": [
				{"length": "2\"", "diameter": {" 3/8\" ": 3.1}}
			]
		}
	]`)
	entries, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: got %d", len(entries))
	}
	e := entries[0]
	if e.ScrewType != "Stud Screw" {
		t.Errorf("screw type = %q, want Stud Screw", e.ScrewType)
	}
	if e.Standard != "DIN 976" {
		t.Errorf("standard = %q", e.Standard)
	}
	if len(e.Metric) != 1 || len(e.Metric[0].Diameters) != 2 {
		t.Fatalf("metric rows: %+v", e.Metric)
	}
	if e.Metric[0].Diameters[0].Label != "M10" {
		t.Errorf("metric label = %q, want M10", e.Metric[0].Diameters[0].Label)
	}
	if e.Metric[0].Length == nil || *e.Metric[0].Length != "50" {
		t.Errorf("metric length = %v", e.Metric[0].Length)
	}
	if len(e.Inches) != 1 || e.Inches[0].Diameters[0].Label != `3/8"` {
		t.Errorf("inch rows: %+v", e.Inches)
	}
}

func TestNormalizeFlatInch(t *testing.T) {
	raw := []byte(`[
		{
			"title": "Round Head Rivets",
			"dimensions_unit": "inches",
			"approx_count_unit": "Approx. Count per 50 kgs.",
			"data": [
				{"length": "1/2\"", "diameter_1/8\"": 920, "diameter_3/16\"": 410}
			]
		}
	]`)
	entries, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: got %d", len(entries))
	}
	e := entries[0]
	if e.ScrewType != "Round Head Rivets" {
		t.Errorf("screw type = %q", e.ScrewType)
	}
	if len(e.Inches) != 1 || len(e.Inches[0].Diameters) != 2 {
		t.Fatalf("inch rows: %+v", e.Inches)
	}
	if e.Inches[0].Diameters[0].Label != `1/8"` {
		t.Errorf("first diameter = %q", e.Inches[0].Diameters[0].Label)
	}
	if len(e.Metric) != 0 {
		t.Errorf("metric rows present: %+v", e.Metric)
	}
}

func TestNormalizeNutExplode(t *testing.T) {
	raw := []byte(`[
		{
			"title": "Hex Nuts",
			"approx_count_per_50_kgs": {
				"BSW": [
					{"size": "1/4\"", "count": 4200},
					{"size": "M6", "count": 3900}
				],
				"Metric": [
					{"size": "M8", "count": 2100}
				]
			}
		}
	]`)
	entries, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}
	if entries[0].ScrewType != "Hex Nuts - BSW" {
		t.Errorf("first sub-type = %q", entries[0].ScrewType)
	}
	if entries[1].ScrewType != "Hex Nuts - Metric" {
		t.Errorf("second sub-type = %q", entries[1].ScrewType)
	}
	bsw := entries[0]
	if len(bsw.Inches) != 1 || len(bsw.Metric) != 1 {
		t.Fatalf("size split: inches %d metric %d", len(bsw.Inches), len(bsw.Metric))
	}
	if bsw.Unit != "Approx. Count per 50 kgs." {
		t.Errorf("unit = %q", bsw.Unit)
	}
}

func TestNormalizeKeyedWasher(t *testing.T) {
	raw := []byte(`[
		{
			"title": "Washers",
			"unit": "Approx. Weight per 100 Nos. in Kgs.",
			"Plain Washer": [{"size": "M10", "weight": 0.45}],
			"Spring Washer": [{"size": "M10", "weight": 0.31}]
		}
	]`)
	entries, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}
	if entries[0].ScrewType != "Plain Washer" || entries[1].ScrewType != "Spring Washer" {
		t.Errorf("types: %q, %q", entries[0].ScrewType, entries[1].ScrewType)
	}
	if len(entries[0].Metric) != 1 || entries[0].Metric[0].Diameters[0].Rate != 0.45 {
		t.Errorf("metric rows: %+v", entries[0].Metric)
	}
}

func TestNormalizeUnmatchedDropped(t *testing.T) {
	raw := []byte(`[{"mystery": true}, 42]`)
	entries, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries: got %d, want 0", len(entries))
	}
}

func TestCacheReuse(t *testing.T) {
	raw := []byte(`[{"screw_type": "Hex Bolt", "standard": "DIN 933", "unit": "u",
		"dimensions_in_metric": [{"length_mm": 50, "diameter": {"M10": 4.5}}]}]`)
	c := NewCache()
	first, err := c.Load(raw)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := c.Load(raw)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if &first[0] != &second[0] {
		t.Error("cache rebuilt entries for identical content")
	}
	changed, err := c.Load([]byte(`[]`))
	if err != nil {
		t.Fatalf("changed load: %v", err)
	}
	if len(changed) != 0 {
		t.Errorf("changed content not re-normalized: %+v", changed)
	}
}
