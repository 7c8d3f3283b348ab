package config

import "strings"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFit()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	expanded, err := ExpandPath(c.Paths.DataDir)
	if err != nil {
		return err
	}
	if expanded == "" {
		expanded = defaultDataDir
	}
	c.Paths.DataDir = expanded

	if c.Paths.PreviewDir, err = ExpandPath(c.Paths.PreviewDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeFit() {
	if c.Fit.ExpSeed == 0 {
		c.Fit.ExpSeed = defaultExpSeed
	}
	if c.Fit.FlatSeed == 0 {
		c.Fit.FlatSeed = defaultFlatSeed
	}
	if c.Fit.SmoothSigma <= 0 {
		c.Fit.SmoothSigma = defaultSmoothSigma
	}
	if c.Fit.ClipSigma <= 0 {
		c.Fit.ClipSigma = defaultClipSigma
	}
	if c.Fit.ClipIters <= 0 {
		c.Fit.ClipIters = defaultClipIters
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
