package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports configuration values that cannot be worked around.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		problems = append(problems, "paths.data_dir must not be empty")
	}
	if c.Fit.ExpSeed <= 0 {
		problems = append(problems, fmt.Sprintf("fit.exp_seed must be > 0, got %g", c.Fit.ExpSeed))
	}
	if c.Fit.FlatSeed < 0 || c.Fit.FlatSeed > 1 {
		problems = append(problems, fmt.Sprintf("fit.flat_seed must be in [0, 1], got %g", c.Fit.FlatSeed))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
