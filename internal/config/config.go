package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "acxroyalty/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Storage   StorageConfig   `yaml:"storage" envconfig:"STORAGE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PipelineConfig controls discovery, processing and the output artifact
type PipelineConfig struct {
	InputDir    string   `yaml:"input_dir" envconfig:"INPUT_DIR" validate:"required"`
	OutputDir   string   `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	OutputFile  string   `yaml:"output_file" envconfig:"OUTPUT_FILE" validate:"required"`
	Extensions  []string `yaml:"extensions" envconfig:"EXTENSIONS" validate:"min=1,dive,startswith=."`
	Workers     int      `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
	PreviewRows int      `yaml:"preview_rows" envconfig:"PREVIEW_ROWS" validate:"min=0"`
	BOMPrefix   bool     `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
}

// StorageConfig contains the optional run ledger settings
type StorageConfig struct {
	SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
}

// TelemetryConfig contains optional run metrics and trace export settings
type TelemetryConfig struct {
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
}

// OutputPath returns the full path of the merged CSV.
func (p PipelineConfig) OutputPath() string {
	if filepath.IsAbs(p.OutputFile) {
		return p.OutputFile
	}
	return filepath.Join(p.OutputDir, p.OutputFile)
}

// Load builds the configuration from defaults, an optional YAML file and
// ACX_* environment variables, in increasing order of precedence.
// An empty configFile searches the default locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).WithContext("file", configFile)
		}
	}

	// No default tags on the structs: envconfig leaves unset variables alone,
	// so file values survive unless the environment overrides them.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

var validate = validator.New()

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"acxmerge.yaml",
		"configs/acxmerge.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Pipeline: PipelineConfig{
			InputDir:    DefaultInputDir,
			OutputDir:   ".",
			OutputFile:  DefaultOutputFile,
			Extensions:  []string{".xlsx"},
			Workers:     1,
			PreviewRows: DefaultPreviewRows,
		},
		Telemetry: TelemetryConfig{
			ServiceName: AppName,
		},
	}
}
