package rate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GrossRow is one diameter/length row from the gross-weight reference,
// carrying the millimetres added to the threaded length for that size.
type GrossRow struct {
	Dia     float64 `json:"DIA"`
	Length  float64 `json:"LENGTH"`
	AddedMM float64 `json:"Added mm"`
}

// length multiplier per head style
var lengthMultipliers = map[string]float64{
	"hex bolt":       3,
	"heavy hex bolt": 4,
	"allen cap":      3,
	"allen csk cap":  3.5,
	"carriage bolt":  3,
	"button bolt":    3,
	"dome bolt":      5,
	"cheese bolt":    2.5,
}

// GrossBoltTypes lists the head styles the gross formula knows, in menu
// order.
var GrossBoltTypes = []string{
	"hex bolt", "heavy hex bolt", "allen cap", "allen csk cap",
	"carriage bolt", "button bolt", "dome bolt", "cheese bolt",
}

// LoadGrossRows parses the gross-weight reference file.
func LoadGrossRows(raw []byte) ([]GrossRow, error) {
	var rows []GrossRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("gross weight file: %w", err)
	}
	return rows, nil
}

// FindGrossRow locates the row for a diameter and length pair.
func FindGrossRow(rows []GrossRow, dia, length float64) (GrossRow, bool) {
	for _, r := range rows {
		if r.Dia == dia && r.Length == length {
			return r, true
		}
	}
	return GrossRow{}, false
}

// GrossWeight computes the raw-material weight of one bolt:
// (dia^2 * 0.0019 / 304) * (dia * multiplier + added). Unknown bolt types
// use the hex-bolt multiplier.
func GrossWeight(boltType string, dia, addedMM float64) float64 {
	mult, ok := lengthMultipliers[strings.ToLower(strings.TrimSpace(boltType))]
	if !ok {
		mult = 3
	}
	return (dia * dia * 0.0019 / 304) * (dia*mult + addedMM)
}
