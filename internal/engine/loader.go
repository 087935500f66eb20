package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// --- 1. CELL PARSERS ---

// dateLayouts are tried in order. The two-digit-year layouts match what
// excelize renders for the built-in date number formats.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"01-02-06",
	"1/2/06",
	"1/2/06 15:04",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// parseNumber parses "$1,234.50" -> 1234.5. NaN and Inf are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return 0, false
	}
	if strings.ContainsRune(s, ',') {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferKind classifies a column from its cells. Dates win over numbers; a
// column with no non-empty cells is text.
func inferKind(raw []string) Kind {
	seen := 0
	isDate, isNum := true, true
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		seen++
		if isDate {
			if _, ok := parseDate(s); !ok {
				isDate = false
			}
		}
		if isNum {
			if _, ok := parseNumber(s); !ok {
				isNum = false
			}
		}
		if !isDate && !isNum {
			return KindText
		}
	}
	switch {
	case seen == 0:
		return KindText
	case isDate:
		return KindDate
	case isNum:
		return KindNumeric
	}
	return KindText
}

// --- 2. MAIN LOADER ---

type fileFormat int

const (
	formatCSV fileFormat = iota
	formatXLSX
	formatLegacyXLS
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte("\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1")
)

func detectFormat(name string, data []byte) fileFormat {
	if bytes.HasPrefix(data, oleMagic) {
		return formatLegacyXLS
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx":
		return formatXLSX
	case ".xls":
		return formatLegacyXLS
	case ".csv", ".txt":
		return formatCSV
	}
	if bytes.HasPrefix(data, zipMagic) {
		return formatXLSX
	}
	return formatCSV
}

// Load parses a whole uploaded file into a Table.
func Load(name string, data []byte) (*Table, error) {
	return load(name, data, -1)
}

// LoadPreview parses the header and at most n data rows.
func LoadPreview(name string, data []byte, n int) (*Table, error) {
	if n < 0 {
		n = 0
	}
	return load(name, data, n)
}

// load reads the header plus up to limit rows; limit < 0 reads everything.
// Every failure is reported as a *ReadError.
func load(name string, data []byte, limit int) (*Table, error) {
	var (
		records [][]string
		err     error
	)
	switch detectFormat(name, data) {
	case formatXLSX:
		records, err = readWorkbook(data, limit)
	case formatLegacyXLS:
		err = ErrUnsupportedFormat
	default:
		records, err = readCSV(data, limit)
	}
	if err != nil {
		return nil, &ReadError{File: name, Err: err}
	}
	if len(records) == 0 {
		return nil, &ReadError{File: name, Err: ErrEmptyFile}
	}
	return NewTable(headerNames(records[0]), records[1:]), nil
}

func headerNames(row []string) []string {
	names := make([]string, len(row))
	for j, h := range row {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", j)
		}
		names[j] = h
	}
	return names
}

func readCSV(data []byte, limit int) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !isText(data) {
		return nil, errors.New("not a delimited text file")
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var records [][]string
	for limit < 0 || len(records) < limit+1 {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// isText rejects binary payloads (NUL bytes in the first KiB) that
// encoding/csv would otherwise accept as a single odd column.
func isText(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.IndexByte(head, 0) == -1
}

func readWorkbook(data []byte, limit int) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("xlsx: workbook has no sheets")
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	cells := newSheetCells(f, sheet)
	var records [][]string
	for row := 1; rows.Next(); row++ {
		if limit >= 0 && len(records) >= limit+1 {
			break
		}
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
		}
		if len(cols) == 0 {
			continue
		}
		for j := range cols {
			cols[j] = cells.value(row, j+1, cols[j])
		}
		records = append(records, cols)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
	}
	return records, nil
}

// sheetCells swaps the display text of date-formatted cells for the ISO form
// of their serial value, so "05/01/2024" under dd/mm/yyyy reads as
// 2024-01-05 whatever the workbook locale.
type sheetCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	dates    map[int]bool // style ID -> has a date number format
}

func newSheetCells(f *excelize.File, sheet string) *sheetCells {
	c := &sheetCells{f: f, sheet: sheet, dates: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		c.date1904 = *props.Date1904
	}
	return c
}

func (c *sheetCells) value(row, col int, shown string) string {
	if strings.TrimSpace(shown) == "" {
		return shown
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return shown
	}
	style, err := c.f.GetCellStyle(c.sheet, axis)
	if err != nil || !c.isDateStyle(style) {
		return shown
	}
	raw, err := c.f.GetCellValue(c.sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return shown
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		// Text typed into a date-formatted cell.
		return shown
	}
	t, err := excelize.ExcelDateToTime(serial, c.date1904)
	if err != nil {
		return shown
	}
	t = t.Round(time.Second)
	if t.Equal(truncateDay(t)) {
		return t.Format(dayLayout)
	}
	return t.Format("2006-01-02 15:04:05")
}

func (c *sheetCells) isDateStyle(id int) bool {
	if v, ok := c.dates[id]; ok {
		return v
	}
	v := false
	if st, err := c.f.GetStyle(id); err == nil && st != nil {
		v = isDateFormat(st.NumFmt, st.CustomNumFmt)
	}
	c.dates[id] = v
	return v
}

// isDateFormat reports whether a built-in number format ID or a custom format
// code renders dates or times.
func isDateFormat(id int, custom *string) bool {
	if custom != nil {
		return isDateCode(*custom)
	}
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateCode looks for d, m, y, h or s tokens outside quoted literals,
// escaped characters and bracketed sections such as [$-409] or [Red].
func isDateCode(code string) bool {
	var quoted, bracket bool
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case quoted:
			quoted = ch != '"'
		case bracket:
			bracket = ch != ']'
		case ch == '"':
			quoted = true
		case ch == '[':
			bracket = true
		case ch == '\\', ch == '_', ch == '*':
			i++
		default:
			switch ch {
			case 'd', 'D', 'm', 'M', 'y', 'Y', 'h', 'H', 's', 'S':
				return true
			}
		}
	}
	return false
}
