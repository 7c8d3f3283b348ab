package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"uvotsl/internal/discovery"
	"uvotsl/internal/logging"
	"uvotsl/internal/runledger"
)

// Run is the batch driver: discover which filters each observation carries,
// then for every requested filter and every observation having it, fit and
// apply the correction. Missing inputs are diagnostics, not failures; a
// failing pair is reported and the batch continues. Run returns an error
// only when at least one pair actually failed.
func (d *Driver) Run(ctx context.Context, dataDir string, observations, filters []string, redo bool) error {
	logger := logging.NewComponentLogger(d.Logger, "driver")
	runID := uuid.NewString()

	for _, f := range filters {
		if !discovery.IsSupportedFilter(f) {
			return fmt.Errorf("unsupported filter code %q", f)
		}
	}

	filterExist := make(map[string][]string, len(observations))
	for _, obs := range observations {
		found, err := discovery.FindFilters(dataDir, obs, filters)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			logger.Warn("no images found for input folder", logging.Observation(obs))
			d.record(ctx, logger, runledger.Entry{
				RunID:       runID,
				Observation: obs,
				Status:      runledger.StatusNoImages,
			})
			continue
		}
		filterExist[obs] = found
	}

	var failed int
	for _, filt := range filters {
		var obsList []string
		for _, obs := range observations {
			for _, f := range filterExist[obs] {
				if f == filt {
					obsList = append(obsList, obs)
					break
				}
			}
		}
		if len(obsList) == 0 {
			logger.Warn("no images found for filter", logging.Filter(filt))
			continue
		}

		for _, obs := range obsList {
			pair := discovery.Pair{DataDir: dataDir, Observation: obs, Filter: filt}
			pairLogger := logger.With(logging.Observation(obs), logging.Filter(filt))
			pairLogger.Info("processing observation")

			if _, err := os.Stat(pair.TemplatePath()); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					pairLogger.Warn("no scattered light template image")
					d.record(ctx, pairLogger, runledger.Entry{
						RunID:       runID,
						Observation: obs,
						Filter:      filt,
						Status:      runledger.StatusSkippedNoTemplate,
						Detail:      ErrNoTemplate.Error(),
					})
					continue
				}
				return fmt.Errorf("stat template %s: %w", pair.TemplatePath(), err)
			}

			snapshots, err := d.processPair(pair, redo)
			if err != nil {
				failed++
				pairLogger.Error("pair processing failed", logging.Error(err))
				d.record(ctx, pairLogger, runledger.Entry{
					RunID:       runID,
					Observation: obs,
					Filter:      filt,
					Status:      runledger.StatusFailed,
					Snapshots:   snapshots,
					Detail:      err.Error(),
				})
				continue
			}

			d.record(ctx, pairLogger, runledger.Entry{
				RunID:       runID,
				Observation: obs,
				Filter:      filt,
				Status:      runledger.StatusProcessed,
				Snapshots:   snapshots,
			})
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d pair(s) failed", failed)
	}
	return nil
}

func (d *Driver) processPair(pair discovery.Pair, redo bool) (int, error) {
	snapshots, err := d.FitPair(pair, redo)
	if err != nil {
		return snapshots, err
	}
	return snapshots, d.ApplyPair(pair)
}

func (d *Driver) record(ctx context.Context, logger *slog.Logger, entry runledger.Entry) {
	if d.Ledger == nil {
		return
	}
	if err := d.Ledger.Record(ctx, entry); err != nil {
		logger.Warn("failed to record ledger entry", logging.Error(err))
	}
}
