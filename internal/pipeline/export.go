package pipeline

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/caliber-ui/quotation-app/internal"
)

// HeaderField is one label/value pair of the quotation header block, kept
// as a slice so the rendered order matches entry order.
type HeaderField struct {
	Label string
	Value string
}

// Quotation is everything the XLSX renderer needs.
type Quotation struct {
	Number   string
	Date     string
	Header   []HeaderField
	Intro    string
	Rows     []internal.QuoteRow
	MainNote string
	SubNotes []string
}

var quoteColumns = []string{
	"Sr. No.", "Item Code", "Material Description", "Dimension\nStandard",
	"Material\nGrade", "Finish", "Qty/MOQ", "Rate",
}

// ExportQuoteXLSX renders a quotation workbook to path: header block,
// intro, items table, notes.
func ExportQuoteXLSX(q Quotation, path string) error {
	f, err := buildQuoteWorkbook(q)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func buildQuoteWorkbook(q Quotation) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Quotation"
	f.SetSheetName("Sheet1", sheet)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, err
	}
	boldWrap, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, err
	}

	row := 1
	setCell := func(col, r int, value string, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, r)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, value); err != nil {
			return err
		}
		if style != 0 {
			return f.SetCellStyle(sheet, cell, cell, style)
		}
		return nil
	}

	if err := setCell(1, row, "QUOTATION", bold); err != nil {
		return nil, err
	}
	row += 2

	fields := q.Header
	if q.Number != "" {
		fields = append([]HeaderField{{Label: "Quotation No", Value: q.Number}}, fields...)
	}
	if q.Date != "" {
		fields = append(fields, HeaderField{Label: "Date", Value: q.Date})
	}
	for _, hf := range fields {
		if err := setCell(1, row, hf.Label+":", bold); err != nil {
			return nil, err
		}
		if err := setCell(2, row, hf.Value, 0); err != nil {
			return nil, err
		}
		row++
	}
	row++

	if q.Intro != "" {
		if err := setCell(1, row, "Introduction:", bold); err != nil {
			return nil, err
		}
		if err := setCell(1, row+1, q.Intro, wrap); err != nil {
			return nil, err
		}
		row += 3
	}

	for col, h := range quoteColumns {
		if err := setCell(col+1, row, h, boldWrap); err != nil {
			return nil, err
		}
	}
	row++

	for _, item := range q.Rows {
		cells := []string{
			fmt.Sprintf("%d", item.Sequence),
			item.ItemCode,
			item.Description,
			item.DimensionStandards,
			item.Grades,
			item.Finishes,
			item.Qty,
			item.Rate,
		}
		for col, v := range cells {
			if err := setCell(col+1, row, v, wrap); err != nil {
				return nil, err
			}
		}
		row++
	}
	row += 2

	if q.MainNote != "" {
		if err := setCell(1, row, "Main Note:", bold); err != nil {
			return nil, err
		}
		if err := setCell(1, row+1, q.MainNote, wrap); err != nil {
			return nil, err
		}
		row += 3
	}
	if len(q.SubNotes) > 0 {
		if err := setCell(1, row, "Sub Notes:", bold); err != nil {
			return nil, err
		}
		row++
		for _, n := range q.SubNotes {
			if err := setCell(1, row, "• "+n, wrap); err != nil {
				return nil, err
			}
			row++
		}
	}

	if err := f.SetColWidth(sheet, "C", "C", 48); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "B", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "D", "H", 16); err != nil {
		return nil, err
	}
	return f, nil
}
