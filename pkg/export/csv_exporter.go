package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Dataset is one table. Each row holds one cell per header, in order.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

const ContentTypeCSV = "text/csv; charset=utf-8"

// utf8BOM makes spreadsheet apps read accented student names correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter writes datasets as RFC 4180 CSV. Cells that a spreadsheet would
// evaluate as a formula are prefixed with a quote.
type CSVExporter struct {
	BOM bool
}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{BOM: true}
}

func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams data to w. Short rows are padded, long rows truncated to the header width.
func (e *CSVExporter) Write(w io.Writer, data Dataset) error {
	if len(data.Headers) == 0 {
		return errors.New("csv requires at least one header")
	}
	if e.BOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("write csv bom: %w", err)
		}
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(data.Headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for i, row := range data.Rows {
		record := fit(row, len(data.Headers))
		for j := range record {
			record[j] = defuse(record[j])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// fit returns a copy of row with exactly width cells.
func fit(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

func defuse(cell string) string {
	if cell == "" {
		return cell
	}
	if strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
		return "'" + cell
	}
	return cell
}
