package rate

import (
	"math"
	"testing"

	"github.com/caliber-ui/quotation-app/internal"
)

func TestParseCombo(t *testing.T) {
	combo := ParseCombo("1 stud with 2 nuts and 2 washers")
	// plural forms are not type words; only exact tokens count
	if len(combo) != 1 || combo[0].Type != "stud" || combo[0].Count != 1 {
		t.Fatalf("combo: %+v", combo)
	}

	combo = ParseCombo("1 stud 2 nut 2 washer")
	want := []internal.ComboComponent{
		{Type: "stud", Count: 1},
		{Type: "nut", Count: 2},
		{Type: "washer", Count: 2},
	}
	if len(combo) != len(want) {
		t.Fatalf("combo: %+v", combo)
	}
	for i := range want {
		if combo[i] != want[i] {
			t.Errorf("combo[%d] = %+v, want %+v", i, combo[i], want[i])
		}
	}

	// count resets to 1 after each component
	combo = ParseCombo("3 bolt washer")
	if len(combo) != 2 || combo[0].Count != 3 || combo[1].Count != 1 {
		t.Errorf("count reset: %+v", combo)
	}
}

func TestDetectPrimaryCategories(t *testing.T) {
	got := DetectPrimaryCategories("HEX HD CAPSCREW WITH FLAT WASHER")
	wantHas := map[string]bool{"SCREW": false, "BOLT": false, "WASHER": false}
	for _, c := range got {
		if _, ok := wantHas[c]; ok {
			wantHas[c] = true
		}
	}
	for cat, seen := range wantHas {
		if !seen {
			t.Errorf("category %s not detected in %v", cat, got)
		}
	}
}

func TestTypesForCategory(t *testing.T) {
	entries := testEntries()
	nuts := TypesForCategory("NUT", entries)
	if len(nuts) != 1 || nuts[0] != "Hex Nuts - BSW" {
		t.Errorf("nuts: %v", nuts)
	}
	bolts := TypesForCategory("BOLT", entries)
	if len(bolts) != 1 || bolts[0] != "Hex Bolt" {
		t.Errorf("bolts: %v", bolts)
	}
	if got := TypesForCategory("WASHER", entries); len(got) != 0 {
		t.Errorf("washers: %v", got)
	}
}

func TestMatchTypesVerbatimWins(t *testing.T) {
	entries := testEntries()
	matches := MatchTypes("need hex bolt m10 x 50", entries, 70)
	if len(matches) != 1 || matches[0].ScrewType != "Hex Bolt" || matches[0].Score != 100 {
		t.Fatalf("matches: %+v", matches)
	}
}

func TestEntriesForTypeBaseName(t *testing.T) {
	entries := []internal.CatalogEntry{
		{ScrewType: "Hex Nuts - BSW"},
		{ScrewType: "Hex Nuts - Metric"},
		{ScrewType: "Hex Bolt"},
	}
	got := EntriesForType("Hex Nuts - BSW", entries)
	if len(got) != 2 {
		t.Errorf("grouped entries: %+v", got)
	}
	if BaseName("Hex Nuts - BSW") != "hex nuts" {
		t.Errorf("base name: %q", BaseName("Hex Nuts - BSW"))
	}
}

func TestGrossWeight(t *testing.T) {
	rows := []GrossRow{
		{Dia: 10, Length: 50, AddedMM: 8},
		{Dia: 12, Length: 60, AddedMM: 10},
	}
	row, ok := FindGrossRow(rows, 10, 50)
	if !ok {
		t.Fatal("row not found")
	}
	got := GrossWeight("hex bolt", row.Dia, row.AddedMM)
	want := (10.0 * 10.0 * 0.0019 / 304) * (10.0*3 + 8)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("gross weight: %v, want %v", got, want)
	}
	// csk head uses the 3.5 multiplier
	csk := GrossWeight("allen csk cap", 10, 8)
	wantCsk := (10.0 * 10.0 * 0.0019 / 304) * (10.0*3.5 + 8)
	if math.Abs(csk-wantCsk) > 1e-12 {
		t.Errorf("csk gross weight: %v, want %v", csk, wantCsk)
	}
	// unknown types fall back to the hex multiplier
	if GrossWeight("mystery", 10, 8) != got {
		t.Error("fallback multiplier")
	}
	if _, ok := FindGrossRow(rows, 10, 60); ok {
		t.Error("mismatched pair found")
	}
}
