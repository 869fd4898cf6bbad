// Package exporter writes the merged royalty table.
//
// CSVWriter is the low-level writer: headers, rows and an optional UTF-8 BOM
// for Excel, written to a temporary file and renamed into place.
// TemplateExporter renders domain records in the Amazon template column order,
// money with two decimals and counts as exact values. WritePreview prints the
// top rows for the console summary.
//
// Example usage:
//
//	exp := exporter.NewTemplateExporter("data/acx", true, logger)
//	path, err := exp.Export("ACX_to_Amazon_Template.csv", table)
//	_ = exporter.WritePreview(os.Stdout, table, 5)
package exporter
