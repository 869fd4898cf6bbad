// Package shared holds helpers used across acxmerge packages that belong to
// no single layer.
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler and NewTestLogger for asserting on structured logs
//   - WorkbookFixtures, CurrentEraSheet and LegacyEraSheet for generating
//     ACX report workbooks in t.TempDir()
package shared
