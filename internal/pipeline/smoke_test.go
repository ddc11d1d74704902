package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/caliber-ui/quotation-app/internal"
	"github.com/caliber-ui/quotation-app/internal/resolve"
	"github.com/caliber-ui/quotation-app/internal/standards"
	"github.com/caliber-ui/quotation-app/internal/storage"
)

const smokeStandards = `{
	"Bolts": [
		{"Bolt Type": "HEX BOLT", "Standard": "DIN 933", "Metrics": "M6, M8, M10", "Grades": "8.8, 10.9", "Finish": "Zinc Plated"}
	],
	"Nuts": [
		{"Nut Type": "HEX NUT", "Standard": "DIN 934", "Metrics": "M6, M8, M10", "Grades": "8"}
	]
}`

func newSmokeProcessor(t *testing.T) *Processor {
	t.Helper()
	idx, err := standards.Build([]byte(smokeStandards))
	if err != nil {
		t.Fatalf("standards: %v", err)
	}
	syn, err := resolve.LoadSynonyms([]byte(`{"HEX BOLT": ["hexagon bolt"]}`))
	if err != nil {
		t.Fatalf("synonyms: %v", err)
	}
	grades, err := resolve.LoadGradeVocabulary([]byte(`{"carbon": {"g1": "8.8", "g2": "10.9"}}`))
	if err != nil {
		t.Fatalf("grades: %v", err)
	}
	db, err := storage.Open(filepath.Join(t.TempDir(), "smoke.db"))
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &Processor{
		DB: db,
		Resolver: &resolve.Resolver{
			Index:           idx,
			Synonyms:        syn,
			Grades:          grades,
			GradeThreshold:  85,
			FinishThreshold: 85,
		},
	}
}

func TestProcessFileEndToEnd(t *testing.T) {
	p := newSmokeProcessor(t)
	content := mkXLSX(t, [][]string{
		{"Sr", "Item Code", "Description", "Qty"},
		{"1", "FAST-01", "HEXAGON BOLT DIN 933 M10 X 50 GR 8.8", "100"},
		{"2", "FAST-02", "HEX NUT M10", "200"},
	})

	res, err := p.ProcessFile("rfq.xlsx", content)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Lines != 2 || res.Resolved != 2 {
		t.Fatalf("result: %+v", res)
	}

	rows, err := p.DB.GetQuoteRows(res.EnquiryID)
	if err != nil {
		t.Fatalf("quote rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: %+v", rows)
	}
	if rows[0].ItemCode != "FAST-01" {
		t.Errorf("first row: %+v", rows[0])
	}
	if !strings.Contains(rows[0].DimensionStandards, "M") && rows[0].DimensionStandards == "" {
		t.Errorf("no dimension standard: %+v", rows[0])
	}
	if rows[0].Grades == "" {
		t.Errorf("no grade: %+v", rows[0])
	}

	// re-processing the same bytes replaces lines instead of duplicating
	res2, err := p.ProcessFile("rfq.xlsx", content)
	if err != nil {
		t.Fatalf("reprocess: %v", err)
	}
	if res2.EnquiryID != res.EnquiryID {
		t.Errorf("enquiry id changed: %d vs %d", res2.EnquiryID, res.EnquiryID)
	}
	rows, _ = p.DB.GetQuoteRows(res.EnquiryID)
	if len(rows) != 2 {
		t.Errorf("duplicated rows: %d", len(rows))
	}
}

func TestExportQuoteXLSX(t *testing.T) {
	p := newSmokeProcessor(t)
	number, err := p.DB.NextQuotationNumber(time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("number: %v", err)
	}

	q := Quotation{
		Number: number,
		Date:   "02/06/2025",
		Header: []HeaderField{{Label: "Customer", Value: "Acme Fasteners"}},
		Intro:  "Thank you for your enquiry.",
		Rows: []internal.QuoteRow{
			{Sequence: 1, ItemCode: "FAST-01", Description: "HEX BOLT M10 x 50",
				DimensionStandards: "DIN 933", Grades: "8.8", Finishes: "ZINC PLATED", Qty: "100"},
		},
		MainNote: "Prices valid 30 days.",
		SubNotes: []string{"GST extra", "Delivery ex-works"},
	}

	path := filepath.Join(t.TempDir(), "quote.xlsx")
	if err := ExportQuoteXLSX(q, path); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Quotation")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	flat := ""
	for _, r := range rows {
		flat += strings.Join(r, " ") + "\n"
	}
	for _, want := range []string{"QUOTATION", number, "Acme Fasteners", "FAST-01", "DIN 933", "Prices valid 30 days."} {
		if !strings.Contains(flat, want) {
			t.Errorf("workbook missing %q", want)
		}
	}
}
