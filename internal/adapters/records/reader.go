// Package records reads the dispatcher's stop list from a spreadsheet and
// writes the ordered route back out.
package records

import (
	"bufio"
	"bytes"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/refdata"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported spreadsheet extension %q", filepath.Ext(path))
}

type column int

const (
	colLabel column = iota
	colLat
	colLon
	colCode
	colAddress
)

// Header cells are folded (upper case, no accents) and stripped of spaces and
// underscores before lookup, so "Dirección", "direccion" and "DIRECCION" agree.
var headerColumns = map[string]column{
	"CLIENTE":        colLabel,
	"LATITUDMANUAL":  colLat,
	"LONGITUDMANUAL": colLon,
	"PLUSCODE":       colCode,
	"DIRECCION":      colAddress,
}

func headerKey(s string) string {
	s = refdata.Fold(s)
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// Read parses stop records from r. The first row is the header; a Cliente
// column is required. Rows with a blank Cliente are skipped.
func Read(r io.Reader, format Format) ([]domain.StopRecord, error) {
	var (
		rows [][]string
		err  error
	)

	switch format {
	case FormatXLSX:
		rows, err = readXLSX(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("read records: unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	recs, err := mapRows(rows)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return recs, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	// Spanish locale exports use ';' because ',' is the decimal separator.
	first, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("peek csv: %w", err)
	}
	header := first
	if i := bytes.IndexByte(first, '\n'); i >= 0 {
		header = first[:i]
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if bytes.Count(header, []byte{';'}) > bytes.Count(header, []byte{','}) {
		cr.Comma = ';'
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	// Drop a UTF-8 byte order mark left by spreadsheet exports.
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func mapRows(rows [][]string) ([]domain.StopRecord, error) {
	if len(rows) == 0 {
		return nil, errors.New("spreadsheet is empty")
	}

	index := map[column]int{}
	for i, h := range rows[0] {
		if c, ok := headerColumns[headerKey(h)]; ok {
			if _, dup := index[c]; !dup {
				index[c] = i
			}
		}
	}
	if _, ok := index[colLabel]; !ok {
		return nil, errors.New("missing Cliente column")
	}

	cell := func(row []string, c column) string {
		i, ok := index[c]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]domain.StopRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		label := cell(row, colLabel)
		if label == "" {
			continue
		}
		out = append(out, domain.StopRecord{
			Label:           label,
			ManualLatitude:  cell(row, colLat),
			ManualLongitude: cell(row, colLon),
			CompactCode:     cell(row, colCode),
			Address:         cell(row, colAddress),
		})
	}
	return out, nil
}
