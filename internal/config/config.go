// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Ingest   IngestConfig   `toml:"ingest"`
	Scale    ScaleConfig    `toml:"scale"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// IngestConfig controls the batch import itself.
type IngestConfig struct {
	// Folder is the directory scanned recursively for OBJ files.
	Folder string `toml:"folder"`

	// UpAxis is the source convention of the files: X, Y, Z, -X, -Y or -Z.
	UpAxis string `toml:"up_axis"`

	CenterPivots      bool `toml:"center_pivots"`
	ReplaceExisting   bool `toml:"replace_existing"`
	DiffuseAsEmissive bool `toml:"diffuse_as_emissive"`

	// IntervalMS is the tick cadence of the batch driver in milliseconds.
	IntervalMS int `toml:"interval_ms"`
}

// ScaleConfig controls matching imports against a reference mesh.
type ScaleConfig struct {
	Enabled bool `toml:"enabled"`

	// Reference is the OBJ file whose longest axis sets the target size.
	Reference string `toml:"reference"`

	// Apply bakes the computed factor into vertex data.
	Apply bool `toml:"apply"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration defaults applied before decoding, so
// keys absent from the file keep their documented values.
func Default() *Config {
	return &Config{
		Ingest: IngestConfig{
			UpAxis:       "Y",
			CenterPivots: true,
			IntervalMS:   10,
		},
		Scale: ScaleConfig{
			Apply: true,
		},
		Database: DatabaseConfig{
			Path: "./data/autoingest.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads and parses the configuration file. Unresolved ${VAR}
// references are reported as a ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	cfg := Default()
	if _, err := toml.Decode(content, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
// and collects the names that are not set.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		missing = append(missing, varName)
		return match
	})
	return out, missing
}
