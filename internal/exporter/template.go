package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"acxroyalty/pkg/contracts/domain"
)

// TemplateExporter writes merged royalty records in the Amazon template layout
type TemplateExporter struct {
	writer    *CSVWriter
	bomPrefix bool
}

// NewTemplateExporter creates an exporter writing under outputDir
func NewTemplateExporter(outputDir string, bomPrefix bool, logger *slog.Logger) *TemplateExporter {
	return &TemplateExporter{
		writer:    NewCSVWriter(outputDir, logger),
		bomPrefix: bomPrefix,
	}
}

// Export writes records to fileName and returns the full path written
func (e *TemplateExporter) Export(fileName string, records []domain.RoyaltyRecord) (string, error) {
	return e.writer.WriteCSV(fileName, WriteOptions{
		Headers:   domain.Headers(),
		Records:   TemplateRows(records),
		BOMPrefix: e.bomPrefix,
	})
}

// TemplateRows renders records as CSV rows in schema column order
func TemplateRows(records []domain.RoyaltyRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for i := range records {
		row := make([]string, len(domain.Schema))
		for c, col := range domain.Schema {
			row[c] = formatColumn(col, &records[i])
		}
		rows = append(rows, row)
	}
	return rows
}

// previewColumns are the columns shown in the console preview
var previewColumns = []string{
	domain.HeaderTitle,
	domain.HeaderAudiobooks,
	domain.HeaderGrossRoyalties,
	domain.HeaderNetRoyalties,
}

// WritePreview prints the first n records as an aligned table
func WritePreview(w io.Writer, records []domain.RoyaltyRecord, n int) error {
	if n > len(records) {
		n = len(records)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, h := range previewColumns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)

	for i := 0; i < n; i++ {
		for c, h := range previewColumns {
			col, _ := domain.ColumnByHeader(h)
			if c > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, formatColumn(col, &records[i]))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
