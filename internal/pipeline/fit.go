package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/gofrs/flock"

	"uvotsl/internal/discovery"
	"uvotsl/internal/fitloop"
	"uvotsl/internal/fitstack"
	"uvotsl/internal/logging"
	"uvotsl/internal/params"
)

// FitPair walks every snapshot of the pair's counts stack, fitting the ones
// the skip/redo policy selects. The parameter table is saved to disk after
// each individual fit, so an interrupted session loses at most the fit in
// progress. Returns the number of snapshots in the stack.
func (d *Driver) FitPair(pair discovery.Pair, redo bool) (int, error) {
	logger := logging.NewComponentLogger(d.Logger, "fit").With(
		logging.Observation(pair.Observation),
		logging.Filter(pair.Filter))

	// One fit session per parameter file: a second operator racing this
	// one would interleave whole-file saves and lose rows.
	lock := flock.New(pair.ParamsPath() + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("acquire fit lock: %w", err)
	}
	if !locked {
		return 0, fmt.Errorf("another fit session holds %s", pair.ParamsPath())
	}
	defer func() { _ = lock.Unlock() }()

	table, err := params.Load(pair.ParamsPath())
	if err != nil {
		return 0, err
	}

	counts, err := fitstack.Load(pair.CountsPath())
	if err != nil {
		return 0, err
	}
	template, err := fitstack.Load(pair.TemplatePath())
	if err != nil {
		return 0, err
	}
	if counts.Len() != template.Len() {
		return counts.Len(), fmt.Errorf("counts stack has %d extensions, template has %d",
			counts.Len(), template.Len())
	}

	loop := &fitloop.Loop{
		Prompter: d.Prompter,
		Renderer: d.NewRenderer(pair),
		Logger:   d.Logger,
		Settings: d.Settings,
	}
	for i, snap := range counts.Snapshots {
		if math.IsNaN(snap.TStart) {
			return counts.Len(), fmt.Errorf("extension %d has no TSTART", snap.Index)
		}

		decision := table.Decide(snap.TStart, redo, d.Defaults)
		if decision.Action == params.ActionSkip {
			logger.Info("skipping manual corrections", logging.Extension(snap.Index))
			continue
		}

		logger.Info("starting manual corrections", logging.Extension(snap.Index))
		fitted, err := loop.Run(snap.Data, template.Snapshots[i].Data, decision.Seed, snap.Index)
		if err != nil {
			return counts.Len(), fmt.Errorf("fit extension %d: %w", snap.Index, err)
		}

		table.Upsert(params.Record{TStart: snap.TStart, Params: fitted})
		if err := table.Save(pair.ParamsPath()); err != nil {
			return counts.Len(), fmt.Errorf("persist fit for extension %d: %w", snap.Index, err)
		}
		logger.Info("fit saved",
			logging.Extension(snap.Index),
			logging.Float64("exp_param", fitted.Exp),
			logging.Float64("flat_param", fitted.Flat))
	}
	return counts.Len(), nil
}

// ErrNoTemplate reports a pair whose scattered-light template image does not
// exist on disk.
var ErrNoTemplate = errors.New("no scattered light template image")
