// Package params persists the per-snapshot scattered-light fit parameters.
//
// Each (observation, filter) pair owns one plain-text table with columns
// tstart, exp_param, and flat_param, one row per snapshot, keyed by the
// snapshot's start time. The format is deliberately hand-editable: a fit can
// be touched up in any editor and re-applied without refitting.
//
// The package also owns the skip/redo policy: a snapshot with an existing
// record is skipped unless a redo is requested, in which case the existing
// parameters seed the refit.
package params
