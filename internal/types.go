package internal

import "encoding/json"

type LineSource string

const (
	SourceText      LineSource = "text"
	SourceHTMLTable LineSource = "html_table"
	SourceXLSX      LineSource = "xlsx"
	SourcePDF       LineSource = "pdf"
	SourceJSON      LineSource = "json"
)

// EnquiryLine is one parsed description row from an uploaded file or pasted
// text, before any attribute resolution.
type EnquiryLine struct {
	LineNo      int
	Source      LineSource
	RawLine     string
	ItemCode    string
	Description string
	Qty         string
}

// DiameterRate is one diameter-label → rate pair. Kept as a slice element
// rather than a map entry so that the source file's key order survives.
type DiameterRate struct {
	Label string
	Rate  float64
}

// DimensionRow is one row of a catalog rate table. A nil Length marks a
// length-agnostic row that matches any requested length.
type DimensionRow struct {
	Length    *string
	Diameters []DiameterRate
}

// CatalogEntry is the uniform per-part-family rate table produced by
// catalog.Normalize regardless of the raw record's shape.
type CatalogEntry struct {
	ScrewType string
	Standard  string
	Unit      string
	Metric    []DimensionRow
	Inches    []DimensionRow
}

// StandardsEntry is one indexed part record from a standards file.
type StandardsEntry struct {
	Category string
	TypeName string
	Standard string
	Inches   string
	Metrics  []string
	Grades   []string
	Finishes []string
	Raw      json.RawMessage
}

type ComboComponent struct {
	Type  string
	Count int
}

// ResolvedAttributes holds the chosen attribute set for one (line, category)
// slot. Once a user confirms a value the Overridden flag is set and the
// suggestion path must never write to the slot again.
type ResolvedAttributes struct {
	Type              string
	StandardFamily    string
	DimensionStandard string
	Grade             string
	Finish            string
	Unit              string
	Overridden        bool
}

// QuoteRow is one row of the final merged quotation table, consumed by the
// XLSX exporter and any other rendering sink.
type QuoteRow struct {
	Sequence           int
	ItemCode           string
	Description        string
	DimensionStandards string
	Grades             string
	Finishes           string
	Qty                string
	Rate               string
}

// RateQuote is the result of a rate/weight calculation for one selection.
type RateQuote struct {
	WeightPerPiece float64
	TotalWeight    float64
	TotalPrice     float64
}

type EnquiryRow struct {
	ID        int
	Source    string
	Filename  string
	Hash      string
	Status    string
	CreatedAt string
}
