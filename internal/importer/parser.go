// Package importer reads repair requests from CSV exports of older systems.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/fixnet/internal/encoding"
	"github.com/MrJamesThe3rd/fixnet/internal/pricing"
	"github.com/MrJamesThe3rd/fixnet/internal/repair"
)

var ErrNoHeader = errors.New("no repair request header found")

// Parser reads semicolon-separated exports in UTF-8 or a legacy Cyrillic
// code page. The header row may be preceded by arbitrary preamble lines.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]repair.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoHeader
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps lowercased column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips blank rows and fails on the first row missing a
// required value. Rows without a price are quoted by the estimator.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]repair.CreateParams, error) {
	priceIdx := -1
	if idx, ok := cols[p.PriceCol]; ok {
		priceIdx = idx
	}

	var out []repair.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		if blank(row) {
			continue
		}

		params := repair.CreateParams{
			Name:               cellValue(row, cols[p.NameCol]),
			Contact:            cellValue(row, cols[p.ContactCol]),
			DeviceBrand:        cellValue(row, cols[p.BrandCol]),
			DeviceModel:        cellValue(row, cols[p.ModelCol]),
			ProblemDescription: cellValue(row, cols[p.ProblemCol]),
			EstimatedPrice:     normalizePrice(cellValue(row, priceIdx)),
		}

		if missing := missingFields(p, params); len(missing) > 0 {
			return nil, fmt.Errorf("row %d: missing %s", rowNum, strings.Join(missing, ", "))
		}

		if params.EstimatedPrice == "" {
			params.EstimatedPrice = pricing.Estimate(params.DeviceBrand, params.DeviceModel, params.ProblemDescription).EstimatedPrice
		}

		out = append(out, params)
	}

	return out, nil
}

func missingFields(p *Profile, params repair.CreateParams) []string {
	fields := []struct {
		col   string
		value string
	}{
		{p.NameCol, params.Name},
		{p.ContactCol, params.Contact},
		{p.BrandCol, params.DeviceBrand},
		{p.ModelCol, params.DeviceModel},
		{p.ProblemCol, params.ProblemDescription},
	}

	var missing []string

	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.col)
		}
	}

	return missing
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
