// Package config provides centralized configuration management for acxmerge.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Command line flags (applied by cmd/acxmerge)
//	2. Environment variables, also read from a .env file
//	3. A YAML file (acxmerge.yaml or configs/acxmerge.yaml)
//	4. Default values
//
// # Environment Variables
//
// All environment variables follow the pattern ACX_<SECTION>_<FIELD>:
//
//	ACX_PIPELINE_INPUT_DIR=/data/acx/incoming
//	ACX_PIPELINE_WORKERS=4
//	ACX_LOGGING_LEVEL=debug
//	ACX_STORAGE_SQLITE_PATH=runs.db
//	ACX_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/acxmerge.prom
//
// # Validation
//
// Load validates the result with go-playground/validator struct tags. Callers
// that override fields afterwards should call Validate again.
package config
