package pipeline

import (
	"fmt"
	"math"

	"uvotsl/internal/discovery"
	"uvotsl/internal/fitstack"
	"uvotsl/internal/grid"
	"uvotsl/internal/logging"
	"uvotsl/internal/params"
	"uvotsl/internal/sltransform"
)

// ApplyPair re-reads the pair's parameter table and corrects every extension
// of the counts stack, writing the corrected output stack next to the input.
// Rows map to extensions positionally: row i-1 corrects extension i. A row
// whose tstart disagrees with its extension is applied anyway but flagged
// loudly, since it usually means the table and the stack have diverged.
func (d *Driver) ApplyPair(pair discovery.Pair) error {
	logger := logging.NewComponentLogger(d.Logger, "apply").With(
		logging.Observation(pair.Observation),
		logging.Filter(pair.Filter))

	table, err := params.Load(pair.ParamsPath())
	if err != nil {
		return err
	}

	counts, err := fitstack.Load(pair.CountsPath())
	if err != nil {
		return err
	}
	template, err := fitstack.Load(pair.TemplatePath())
	if err != nil {
		return err
	}
	if counts.Len() != template.Len() {
		return fmt.Errorf("counts stack has %d extensions, template has %d",
			counts.Len(), template.Len())
	}
	if table.Len() != counts.Len() {
		return fmt.Errorf("parameter table has %d rows but stack has %d extensions",
			table.Len(), counts.Len())
	}

	logger.Info("applying scattered light corrections to sky image")

	corrected := make([]*grid.Grid, 0, counts.Len())
	for i, snap := range counts.Snapshots {
		row := table.Row(i)
		if !math.IsNaN(snap.TStart) && row.TStart != snap.TStart {
			logger.Warn("parameter row tstart does not match extension, applying positionally",
				logging.Extension(snap.Index),
				logging.Float64("row_tstart", row.TStart),
				logging.Float64(logging.FieldTStart, snap.TStart))
		}

		img, err := sltransform.Correct(snap.Data, template.Snapshots[i].Data, row.Params)
		if err != nil {
			return fmt.Errorf("correct extension %d: %w", snap.Index, err)
		}
		corrected = append(corrected, img)
	}

	if err := fitstack.WriteCorrected(pair.CountsPath(), pair.CorrectedPath(), corrected); err != nil {
		return err
	}
	logger.Info("corrected stack written", logging.String("path", pair.CorrectedPath()))
	return nil
}
