package stringdb

import (
	"fmt"
	"strings"
)

// ParseTSV parses a tab-separated body with a header row into one map per
// data row, keyed by the header columns. Rows whose column count differs
// from the header produce a ParseError.
func ParseTSV(body []byte) ([]map[string]string, error) {
	lines := tsvLines(body)
	if len(lines) == 0 {
		return nil, &ParseError{Format: FormatTSV, Reason: "empty body"}
	}
	header := strings.Split(lines[0], "\t")
	records := make([]map[string]string, 0, len(lines)-1)
	for i, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		if len(fields) != len(header) {
			return nil, &ParseError{
				Format: FormatTSV,
				Reason: fmt.Sprintf("row %d has %d columns, header has %d", i+1, len(fields), len(header)),
			}
		}
		rec := make(map[string]string, len(header))
		for j, col := range header {
			rec[col] = fields[j]
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseTSVNoHeader parses a headerless tab-separated body into rows of
// fields.
func ParseTSVNoHeader(body []byte) ([][]string, error) {
	lines := tsvLines(body)
	if len(lines) == 0 {
		return nil, &ParseError{Format: FormatTSVNoHeader, Reason: "empty body"}
	}
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows, nil
}

// tsvLines splits a body into lines, tolerating CRLF endings. Only
// trailing blank lines are stripped; an interior blank line is a real
// (malformed) row and must reach the column-count check.
func tsvLines(body []byte) []string {
	lines := strings.Split(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
