package config

import "acxroyalty/pkg/contracts"

// Application constants
const (
	AppName    = "acxmerge"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable (ACX_PIPELINE_WORKERS, ...)
	EnvPrefix = "ACX"

	DefaultInputDir    = "data/acx/incoming"
	DefaultOutputFile  = "ACX_to_Amazon_Template.csv"
	DefaultLogFile     = "logs/acxmerge.log"
	DefaultPreviewRows = 5
)
