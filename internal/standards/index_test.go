package standards

import "testing"

const sampleStandards = `{
	"Bolts": [
		{
			"Bolt Type": "Hex Bolt",
			"Standard": "DIN 933",
			"Metrics": "M6, M8; M10",
			"Inches": "1/4\" - 1\"",
			"Grades": ["8.8, 10.9", 12.9],
			"Finish": "Zinc Plated, HDG"
		},
		{
			"Bolt Type": "Allen Cap Screw",
			"Standard": "DIN 912",
			"Metrics": ["M5", "M6, M8"],
			"Grades": "12.9",
			"Surface Finish": ["Black Oxide"]
		}
	],
	"Nuts": [
		{"Nut Type": "Hex Nut", "Standard": "DIN 934", "Metrics": "M6", "Grades": "8"}
	],
	"Finishes": ["Zinc Plated", ["Passivated", "zinc plated"]]
}`

func TestBuildFromObject(t *testing.T) {
	idx, err := Build([]byte(sampleStandards))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(idx.CategoryOrder) != 2 {
		t.Fatalf("categories: %v", idx.CategoryOrder)
	}
	if idx.CategoryOrder[0] != "bolt" || idx.CategoryOrder[1] != "nut" {
		t.Errorf("category order: %v", idx.CategoryOrder)
	}

	bolts := idx.Categories["bolt"]
	if len(bolts) != 2 {
		t.Fatalf("bolt entries: %d", len(bolts))
	}
	hex := bolts[0]
	if hex.TypeName != "Hex Bolt" || hex.Standard != "DIN 933" {
		t.Errorf("entry: %+v", hex)
	}
	wantMetrics := []string{"M6", "M8", "M10"}
	if len(hex.Metrics) != len(wantMetrics) {
		t.Fatalf("metrics: %v", hex.Metrics)
	}
	for i := range wantMetrics {
		if hex.Metrics[i] != wantMetrics[i] {
			t.Errorf("metrics[%d] = %q", i, hex.Metrics[i])
		}
	}
	wantGrades := []string{"8.8", "10.9", "12.9"}
	if len(hex.Grades) != len(wantGrades) {
		t.Fatalf("grades: %v", hex.Grades)
	}
	for i := range wantGrades {
		if hex.Grades[i] != wantGrades[i] {
			t.Errorf("grades[%d] = %q", i, hex.Grades[i])
		}
	}
}

func TestGlobalFinishVocabulary(t *testing.T) {
	idx, err := Build([]byte(sampleStandards))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// entry finishes come first, then the top-level list; duplicates keep
	// first occurrence
	want := []string{"ZINC PLATED", "HDG", "BLACK OXIDE", "PASSIVATED"}
	if len(idx.GlobalFinishes) != len(want) {
		t.Fatalf("finishes: %v", idx.GlobalFinishes)
	}
	for i := range want {
		if idx.GlobalFinishes[i] != want[i] {
			t.Errorf("finish[%d] = %q, want %q", i, idx.GlobalFinishes[i], want[i])
		}
	}
}

func TestEntryFinishesUpperCased(t *testing.T) {
	idx, err := Build([]byte(sampleStandards))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	hex := idx.Categories["bolt"][0]
	if len(hex.Finishes) != 2 || hex.Finishes[0] != "ZINC PLATED" || hex.Finishes[1] != "HDG" {
		t.Errorf("entry finishes: %v", hex.Finishes)
	}
	if got := idx.FinishesForType("Allen Cap Screw"); len(got) != 1 || got[0] != "BLACK OXIDE" {
		t.Errorf("finishes for type: %v", got)
	}
}

func TestBuildFromList(t *testing.T) {
	raw := `[
		{"Washer Type": "Spring Washer", "Standard": "DIN 127", "Metrics": "M6"},
		{"nut size": "x", "name": "Dome Nut", "Standard": "DIN 1587"}
	]`
	idx, err := Build([]byte(raw))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(idx.Categories["washer"]) != 1 {
		t.Errorf("washer entries: %+v", idx.Categories["washer"])
	}
	if len(idx.Categories["nut"]) != 1 {
		t.Errorf("nut entries: %+v", idx.Categories["nut"])
	}
	if idx.Categories["nut"][0].TypeName != "Dome Nut" {
		t.Errorf("type name fallback: %q", idx.Categories["nut"][0].TypeName)
	}
}

func TestIndexHelpers(t *testing.T) {
	idx, err := Build([]byte(sampleStandards))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	types := idx.TypesForCategory("bolt")
	if len(types) != 2 || types[0] != "Allen Cap Screw" || types[1] != "Hex Bolt" {
		t.Errorf("types: %v", types)
	}
	fams := idx.Families()
	if len(fams) != 1 || fams[0] != "DIN" {
		t.Errorf("families: %v", fams)
	}
	if got := idx.FamiliesForType("Hex Nut"); len(got) != 1 || got[0] != "DIN" {
		t.Errorf("families for type: %v", got)
	}
	if got := idx.GradesForType("Allen Cap Screw"); len(got) != 1 || got[0] != "12.9" {
		t.Errorf("grades for type: %v", got)
	}
	if Family("  ISO 4762 ") != "ISO" {
		t.Error("family extraction")
	}
	if Family("") != "" {
		t.Error("empty family")
	}
}

func TestBuildEmpty(t *testing.T) {
	idx, err := Build([]byte(`{}`))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(idx.Categories) != 0 || len(idx.GlobalFinishes) != 0 {
		t.Errorf("expected empty index: %+v", idx)
	}
	if _, err := Build([]byte(`"nope"`)); err == nil {
		t.Error("scalar input accepted")
	}
}
