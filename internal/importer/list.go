package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ListEntry is one sprite named in a sprite list.
type ListEntry struct {
	Path string
	Name string
}

// ListResult holds the results of reading a sprite list.
type ListResult struct {
	Entries  []ListEntry
	Errors   []string
	Warnings []string
}

// Paths returns the entry paths in list order.
func (r ListResult) Paths() []string {
	paths := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		paths[i] = e.Path
	}
	return paths
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	File int
	Name int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"file": {"file", "path", "image", "filename", "sprite", "source"},
	"name": {"name", "label", "id", "key", "alias"},
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
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

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

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive. Without a recognised header the mapping is
// positional: file first, then name.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{File: -1, Name: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "file":
					if mapping.File == -1 {
						mapping.File = i
					}
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{File: 0, Name: 1}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
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

// ImportList reads a sprite list, choosing the parser by extension: .xlsx
// and .xls are read as Excel workbooks, anything else as CSV. Relative paths
// in the list are resolved against the list's directory.
func ImportList(path string) ListResult {
	var result ListResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		result = ImportListExcel(path)
	default:
		result = ImportListCSV(path)
	}

	dir := filepath.Dir(path)
	for i, e := range result.Entries {
		if !filepath.IsAbs(e.Path) {
			result.Entries[i].Path = filepath.Join(dir, e.Path)
		}
	}
	return result
}

// ImportListCSV reads a sprite list from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportListCSV(path string) ListResult {
	result := ListResult{}

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

	listResult := ImportListFromReader(bytes.NewReader(data), delimiter)
	listResult.Warnings = append(result.Warnings, listResult.Warnings...)
	return listResult
}

// ImportListFromReader reads a sprite list from a CSV reader with a known delimiter.
func ImportListFromReader(reader io.Reader, delimiter rune) ListResult {
	result := ListResult{}

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

	return listFromRows(records, "Line")
}

// ImportListExcel reads a sprite list from the first sheet of an Excel workbook.
func ImportListExcel(path string) ListResult {
	result := ListResult{}

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

	return listFromRows(rows, "Row")
}

// listFromRows is the shared logic for CSV and Excel lists.
func listFromRows(rows [][]string, rowPrefix string) ListResult {
	result := ListResult{}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.File == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: File")
			return result
		}
	}

	seen := make(map[string]string)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		file := getCell(row, mapping.File)
		if file == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing file value", rowLabel))
			continue
		}

		name := getCell(row, mapping.Name)
		if name == "" {
			name = SpriteName(file)
		}
		if prev, ok := seen[name]; ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Name '%s' already used by %s", rowLabel, name, prev))
		} else {
			seen[name] = rowLabel
		}

		result.Entries = append(result.Entries, ListEntry{Path: file, Name: name})
	}

	if len(result.Entries) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No sprites listed")
	}
	return result
}

// ImportListImages decodes every entry of a list, keeping the list's names.
func ImportListImages(list ListResult, scale float64) ImportResult {
	result := ImportImages(list.Paths(), scale)
	if len(result.Errors) == 0 {
		for i := range result.Names {
			result.Names[i] = list.Entries[i].Name
		}
		return result
	}

	// Some entries failed; map names through the sources that survived.
	byPath := make(map[string]string, len(list.Entries))
	for _, e := range list.Entries {
		if _, ok := byPath[e.Path]; !ok {
			byPath[e.Path] = e.Name
		}
	}
	for i, src := range result.Sources {
		if name, ok := byPath[src]; ok {
			result.Names[i] = name
		}
	}
	return result
}
