package config

const (
	defaultDataDir    = "."
	defaultPreviewDir = "~/.local/share/uvotsl/previews"
	defaultLogDir     = "~/.local/share/uvotsl/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"

	// Seed parameters for a first-time fit.
	defaultExpSeed  = 1.2
	defaultFlatSeed = 0.4

	// Display statistics for the preview stretch.
	defaultSmoothSigma = 8.0
	defaultClipSigma   = 2.0
	defaultClipIters   = 3
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			PreviewDir: defaultPreviewDir,
			LogDir:     defaultLogDir,
		},
		Fit: Fit{
			ExpSeed:     defaultExpSeed,
			FlatSeed:    defaultFlatSeed,
			SmoothSigma: defaultSmoothSigma,
			ClipSigma:   defaultClipSigma,
			ClipIters:   defaultClipIters,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
