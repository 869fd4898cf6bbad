// Package dataprocessing turns ACX royalty workbooks into one merged table.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Layout detection: Classify maps a workbook's sheet names to a Layout
// 2. Adapters: one Adapter per Layout extracts canonical records, then the
// shared cleaning pass coerces money and unit cells
// 3. Aggregation: Aggregate merges records per title and sorts the result
//
// Pipeline ties them together for a list of discovered files, fanning out
// across a bounded worker pool and fanning the record sets back in using the
// discovery order.
//
// # Usage
//
//	pipeline := dataprocessing.NewPipeline(logger, telemetry, dataprocessing.PipelineConfig{Workers: 1})
//	result, err := pipeline.Run(ctx, reports)
//	if errors.Is(err, dataprocessing.ErrNoDataExtracted) {
//	    // nothing to write
//	}
//	table := dataprocessing.Aggregate(result.Records)
//
// # Data Flow
//
//	xlsx → Classify → Adapter → clean → []RoyaltyRecord (per file) → Aggregate → template rows
//
// # Error Handling
//
// A file that cannot be read, or whose adapter fails, contributes no records
// and is reported in its FileOutcome; the run continues. Workbooks matching no
// known layout fail with ErrUnrecognizedLayout. Only a run that extracts no
// record at all ends with ErrNoDataExtracted.
package dataprocessing
