// Package files provides file discovery utilities for acxmerge.
//
// Discovery walks an input tree and returns the report workbooks in a stable
// (path) order; Fingerprint hashes a file for the run ledger.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	reports, err := discovery.FindReportFiles("data/acx/incoming", []string{".xlsx"})
package files
