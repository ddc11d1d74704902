package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/caliber-ui/quotation-app/internal"
	"github.com/caliber-ui/quotation-app/internal/util"
)

var (
	reLeadingSerial = regexp.MustCompile(`^\s*\d+(\s|$)`)
	reItemCode      = regexp.MustCompile(`^[A-Z0-9]+(?:[-/_.]?[A-Z0-9]+){0,3}$`)
	rePartWord      = regexp.MustCompile(`(?i)^(WASHER|NUT|BOLT|CAPSCREW|SCREW|STUD|PIN|ROD|HEAD|HEX)$`)
	reTrailingQty   = regexp.MustCompile(`(\b\d+(?:\.\d+)?\b\s*)$`)
	reNumber        = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	reDimSeparator  = regexp.MustCompile(`(?i)(\d)\s*x\s*(\d)`)
	reDigit         = regexp.MustCompile(`\d`)
	reHeaderSquash  = regexp.MustCompile(`[\s_.]+`)
)

var headerKeywords = []string{
	"material", "description", "sr", "qty", "moq", "rate",
	"item", "code", "finish", "grade", "standard", "dimension",
}

func isHeaderLine(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range headerKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func cleanLine(text string) string {
	text = reLeadingSerial.ReplaceAllString(text, " ")
	return util.NormalizeSpaces(text)
}

// CleanDescription collapses whitespace and canonicalizes dimension
// separators so "M10x50" and "M10 X 50" render the same. The separator
// must sit between digits, which keeps the X of HEX alone. Two passes
// handle chained dimensions like 3x4x5.
func CleanDescription(desc string) string {
	desc = util.NormalizeSpaces(desc)
	desc = reDimSeparator.ReplaceAllString(desc, "$1 x $2")
	desc = reDimSeparator.ReplaceAllString(desc, "$1 x $2")
	return strings.TrimSpace(desc)
}

// ParseTextLine turns one free-text line into an enquiry line: the leading
// serial number is dropped, header rows are skipped, an item-code-looking
// token is split off, and a trailing number is read as the quantity.
// Returns nil for lines that carry nothing usable.
func ParseTextLine(line string) *internal.EnquiryLine {
	text := cleanLine(line)
	if text == "" || isHeaderLine(text) {
		return nil
	}

	itemCode := ""
	for _, tok := range strings.Fields(text) {
		if len(tok) < 3 {
			continue
		}
		if reItemCode.MatchString(strings.ToUpper(tok)) && !rePartWord.MatchString(tok) {
			itemCode = tok
			break
		}
	}

	descPart := text
	if itemCode != "" {
		descPart = strings.TrimSpace(strings.Replace(text, itemCode, "", 1))
	}

	qty := ""
	if nums := reNumber.FindAllString(descPart, -1); len(nums) > 0 {
		qty = nums[len(nums)-1]
	}
	desc := CleanDescription(reTrailingQty.ReplaceAllString(descPart, ""))

	return &internal.EnquiryLine{
		Source:      internal.SourceText,
		RawLine:     text,
		ItemCode:    itemCode,
		Description: desc,
		Qty:         qty,
	}
}

// ExtractText parses pasted or emailed plain text line by line.
func ExtractText(text string) []internal.EnquiryLine {
	var out []internal.EnquiryLine
	for _, line := range splitLines(text) {
		item := ParseTextLine(line)
		if item == nil {
			continue
		}
		item.LineNo = len(out) + 1
		out = append(out, *item)
	}
	return out
}

// ExtractXLSX reads every sheet of a workbook. When a header row naming an
// item-code column is found, code and quantity come from their columns;
// otherwise each row is handled as joined free text.
func ExtractXLSX(content []byte) ([]internal.EnquiryLine, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []internal.EnquiryLine
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}

		headerIdx, codeCol, qtyCol := findXLSXHeader(rows)
		for i, row := range rows {
			if headerIdx >= 0 && i <= headerIdx {
				continue
			}
			cells := normalizeCells(row)
			joined := strings.Join(nonEmpty(cells), " ")
			item := ParseTextLine(joined)
			if item == nil {
				continue
			}
			item.Source = internal.SourceXLSX
			if codeCol >= 0 && codeCol < len(cells) {
				item.ItemCode = cells[codeCol]
			}
			if qtyCol >= 0 && qtyCol < len(cells) && cells[qtyCol] != "" {
				item.Qty = cells[qtyCol]
			}
			item.LineNo = len(out) + 1
			out = append(out, *item)
		}
	}
	return out, nil
}

func findXLSXHeader(rows [][]string) (headerIdx, codeCol, qtyCol int) {
	headerIdx, codeCol, qtyCol = -1, -1, -1
	for i, row := range rows {
		join := squashHeader(strings.Join(row, " "))
		if !containsAny(join, []string{"itemcode", "itemnumber", "itemno", "item", "code"}) {
			continue
		}
		headerIdx = i
		for ci, cell := range row {
			norm := squashHeader(cell)
			if codeCol < 0 && containsAny(norm, []string{"itemcode", "itemnumber", "itemno", "item", "code"}) {
				codeCol = ci
			}
			if qtyCol < 0 && containsAny(norm, []string{"qty", "quantity", "moq", "set"}) {
				qtyCol = ci
			}
		}
		return
	}
	return
}

// ExtractPDF pulls plain text from each page and parses it line by line.
func ExtractPDF(content []byte) ([]internal.EnquiryLine, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	var out []internal.EnquiryLine
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range splitLines(text) {
			item := ParseTextLine(line)
			if item == nil {
				continue
			}
			item.Source = internal.SourcePDF
			item.LineNo = len(out) + 1
			out = append(out, *item)
		}
	}
	return out, nil
}

// ExtractHTML reads enquiry tables out of an HTML document, mapping columns
// by header text. Tables without a recognizable header contribute their
// rows as joined free text.
func ExtractHTML(html string) ([]internal.EnquiryLine, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var out []internal.EnquiryLine
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		var headers []string
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, squashHeader(cell.Text()))
		})
		descIdx := findHeaderIndex(headers, []string{"description", "materialdesc", "itemdesc", "material"})
		codeIdx := findHeaderIndex(headers, []string{"itemcode", "itemnumber", "itemno", "code"})
		qtyIdx := findHeaderIndex(headers, []string{"qty", "quantity", "moq", "set"})

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			var cells []string
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeSpaces(cell.Text()))
			})
			if len(cells) == 0 {
				return
			}

			if descIdx < 0 {
				item := ParseTextLine(strings.Join(nonEmpty(cells), " "))
				if item == nil {
					return
				}
				item.Source = internal.SourceHTMLTable
				item.LineNo = len(out) + 1
				out = append(out, *item)
				return
			}

			desc := pickCell(cells, descIdx)
			if desc == "" || !reDigit.MatchString(strings.Join(cells, " ")) {
				return
			}
			out = append(out, internal.EnquiryLine{
				LineNo:      len(out) + 1,
				Source:      internal.SourceHTMLTable,
				RawLine:     strings.Join(cells, " | "),
				ItemCode:    pickCell(cells, codeIdx),
				Description: CleanDescription(desc),
				Qty:         pickCell(cells, qtyIdx),
			})
		})
	})
	return out, nil
}

// ExtractJSON pretty-prints arbitrary JSON and parses the rendered lines,
// so loosely structured enquiry dumps still yield rows.
func ExtractJSON(raw []byte) ([]internal.EnquiryLine, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("enquiry JSON: %w", err)
	}
	rendered, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	var out []internal.EnquiryLine
	for _, line := range splitLines(string(rendered)) {
		line = strings.Trim(line, `{}[],"`)
		item := ParseTextLine(line)
		if item == nil {
			continue
		}
		item.Source = internal.SourceJSON
		item.LineNo = len(out) + 1
		out = append(out, *item)
	}
	return out, nil
}

// Extract dispatches on the filename extension.
func Extract(filename string, content []byte) ([]internal.EnquiryLine, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return ExtractXLSX(content)
	case strings.HasSuffix(lower, ".pdf"):
		return ExtractPDF(content)
	case strings.HasSuffix(lower, ".html"), strings.HasSuffix(lower, ".htm"):
		return ExtractHTML(string(content))
	case strings.HasSuffix(lower, ".json"):
		return ExtractJSON(content)
	case strings.HasSuffix(lower, ".txt"):
		return ExtractText(string(content)), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func squashHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return reHeaderSquash.ReplaceAllString(h, "")
}

func containsAny(s string, probes []string) bool {
	for _, p := range probes {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx int) string {
	if idx >= 0 && idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	return ""
}

func normalizeCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, util.NormalizeSpaces(c))
	}
	return out
}

func nonEmpty(cells []string) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
