package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

const sectionColumn = "Unidad Operativa"

// CSVExporter renders Dataset records into CSV bytes, prepending the
// section name to every row.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	headers := append([]string{sectionColumn}, data.Headers...)
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, section := range data.Sections {
		for _, row := range section.Rows {
			record := make([]string, 0, len(headers))
			record = append(record, section.Name)
			for _, header := range data.Headers {
				record = append(record, row[header])
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
