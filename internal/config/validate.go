package config

import (
	"fmt"
	"os"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validUpAxes = map[string]bool{
	"X": true, "Y": true, "Z": true, "-X": true, "-Y": true, "-Z": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Ingest.Folder == "" {
		errs = append(errs, "ingest.folder: required")
	} else if _, err := os.Stat(c.Ingest.Folder); os.IsNotExist(err) {
		errs = append(errs, fmt.Sprintf("ingest.folder: directory %q does not exist", c.Ingest.Folder))
	}

	if !validUpAxes[c.Ingest.UpAxis] {
		errs = append(errs, fmt.Sprintf("ingest.up_axis: must be one of X, Y, Z, -X, -Y, -Z; got %q", c.Ingest.UpAxis))
	}

	if c.Ingest.IntervalMS <= 0 {
		errs = append(errs, fmt.Sprintf("ingest.interval_ms: must be positive, got %d", c.Ingest.IntervalMS))
	}

	if c.Scale.Enabled {
		if c.Scale.Reference == "" {
			errs = append(errs, "scale.reference: required when scale matching is enabled")
		} else if _, err := os.Stat(c.Scale.Reference); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("scale.reference: file %q does not exist", c.Scale.Reference))
		}
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}
