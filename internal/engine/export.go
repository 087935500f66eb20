package engine

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ExportFileName is the download name of a filtered export.
const ExportFileName = "filtered_data.csv"

// WriteCSV writes t as comma-separated UTF-8 text: a header row with the
// source column names, then the raw cells of every row.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Row(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
