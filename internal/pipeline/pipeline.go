package pipeline

import (
	"log/slog"

	"uvotsl/internal/discovery"
	"uvotsl/internal/fitloop"
	"uvotsl/internal/runledger"
	"uvotsl/internal/sltransform"
)

// Driver holds the collaborators shared by the fit, apply, and batch steps.
type Driver struct {
	// Prompter carries the operator dialogue for interactive fits. One
	// prompter serves the whole batch so queued input is never lost
	// between snapshots.
	Prompter *fitloop.Prompter
	// NewRenderer builds the preview renderer for one pair's fit session.
	NewRenderer func(pair discovery.Pair) fitloop.Renderer
	// Defaults seed first-time fits.
	Defaults sltransform.Params
	// Settings control preview smoothing and stretch.
	Settings fitloop.Settings
	// Ledger, when non-nil, records every pair outcome.
	Ledger *runledger.Ledger
	Logger *slog.Logger
}
