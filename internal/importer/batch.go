// Package importer reads external files into the generator: DXF drawings
// become extra panels to cut alongside a box, and CSV/Excel batch lists
// become box orders. Tabular import supports automatic delimiter
// detection, flexible column mapping, and case-insensitive headers.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds panels recovered from a vector file plus any
// diagnostics raised along the way.
type ImportResult struct {
	Panels   []model.Panel
	Errors   []string
	Warnings []string
}

// BatchSpec is one box order parsed from a batch import row.
type BatchSpec struct {
	Name     string
	Quantity int
	Params   model.BoxParameters
}

// BatchResult holds the outcome of a batch import.
type BatchResult struct {
	Specs    []BatchSpec
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name      int
	X         int
	Y         int
	H         int
	Thickness int
	Quantity  int
	Type      int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":      {"name", "label", "box", "item", "description", "desc"},
	"x":         {"x", "width", "w"},
	"y":         {"y", "depth", "d", "length", "len"},
	"h":         {"h", "height", "z"},
	"thickness": {"thickness", "t", "stock", "material"},
	"quantity":  {"quantity", "qty", "count", "num", "pcs", "pieces"},
	"type":      {"type", "box type", "boxtype", "style", "form"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row.
		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:      -1,
		X:         -1,
		Y:         -1,
		H:         -1,
		Thickness: -1,
		Quantity:  -1,
		Type:      -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "name":
						if mapping.Name == -1 {
							mapping.Name = i
						}
					case "x":
						if mapping.X == -1 {
							mapping.X = i
						}
					case "y":
						if mapping.Y == -1 {
							mapping.Y = i
						}
					case "h":
						if mapping.H == -1 {
							mapping.H = i
						}
					case "thickness":
						if mapping.Thickness == -1 {
							mapping.Thickness = i
						}
					case "quantity":
						if mapping.Quantity == -1 {
							mapping.Quantity = i
						}
					case "type":
						if mapping.Type == -1 {
							mapping.Type = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Name, X, Y, H, Thickness, Quantity, Type
		return ColumnMapping{
			Name:      0,
			X:         1,
			Y:         2,
			H:         3,
			Thickness: 4,
			Quantity:  5,
			Type:      6,
		}, false
	}

	return mapping, true
}

// parseBoxType converts a box type cell to a model.BoxType. Numeric codes
// and display-name variants are both accepted. Returns the type and a
// boolean indicating whether the string was recognized.
func parseBoxType(s string) (model.BoxType, bool) {
	trimmed := strings.TrimSpace(s)
	if code, err := strconv.Atoi(trimmed); err == nil {
		bt, err := model.BoxTypeFromCode(code)
		if err != nil {
			return model.FullBox, false
		}
		return bt, true
	}

	switch strings.ToLower(trimmed) {
	case "", "full", "full box", "closed":
		return model.FullBox, true
	case "open top", "no top", "open", "tray":
		return model.NoTop, true
	case "no left/right", "no leftright", "channel x":
		return model.NoLeftRight, true
	case "no front/back", "no frontback", "channel y":
		return model.NoFrontBack, true
	default:
		return model.FullBox, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDim reads a required dimension cell as a float.
func parseDim(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts a BatchSpec from a row using the given column mapping.
// Returns the spec, any error message, and any warning message. Dimensions
// run through the same validation as interactive generation, so a batch
// row cannot smuggle in parameters the generator would reject.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, specCount int) (BatchSpec, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Box %d", specCount+1)
	}

	x, errMsg := parseDim(row, mapping.X, "width", rowLabel)
	if errMsg != "" {
		return BatchSpec{}, errMsg, ""
	}
	y, errMsg := parseDim(row, mapping.Y, "depth", rowLabel)
	if errMsg != "" {
		return BatchSpec{}, errMsg, ""
	}
	h, errMsg := parseDim(row, mapping.H, "height", rowLabel)
	if errMsg != "" {
		return BatchSpec{}, errMsg, ""
	}

	params := model.DefaultBoxParameters()
	params.X = x
	params.Y = y
	params.H = h

	if ts := getCell(row, mapping.Thickness); ts != "" {
		tv, err := strconv.ParseFloat(ts, 64)
		if err != nil {
			return BatchSpec{}, fmt.Sprintf("%s: Invalid thickness '%s'", rowLabel, ts), ""
		}
		params.Thickness = tv
	}

	qty := 1
	if qs := getCell(row, mapping.Quantity); qs != "" {
		q, err := strconv.Atoi(qs)
		if err != nil || q <= 0 {
			return BatchSpec{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qs), ""
		}
		qty = q
	}

	// Optional box type
	var warning string
	if bs := getCell(row, mapping.Type); bs != "" {
		bt, ok := parseBoxType(bs)
		if ok {
			params.BoxType = bt
		} else {
			warning = fmt.Sprintf("%s: Unknown box type '%s', defaulting to Full Box", rowLabel, bs)
		}
	}

	if err := params.Validate(); err != nil {
		return BatchSpec{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	return BatchSpec{Name: name, Quantity: qty, Params: params}, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportBatchCSV imports box specs from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportBatchCSV(path string) BatchResult {
	result := BatchResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportBatchCSVFromReader imports box specs from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
func ImportBatchCSVFromReader(reader io.Reader, delimiter rune) BatchResult {
	result := BatchResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportBatchXLSX imports box specs from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportBatchXLSX(path string) BatchResult {
	result := BatchResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into box specs.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) BatchResult {
	result := BatchResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.X == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Depth")
		}
		if mapping.H == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if first row is numeric (positional mapping)
		if len(rows[0]) >= 4 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
				// First column after the name is not numeric: might be an
				// unrecognized header. Skip it but keep positional mapping.
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		spec, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Specs))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Specs = append(result.Specs, spec)
	}

	return result
}
