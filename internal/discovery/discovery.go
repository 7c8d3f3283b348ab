package discovery

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Filters is the closed set of supported band codes, in the fixed order the
// batch driver iterates them.
var Filters = []string{"w2", "m2", "w1", "uu", "bb", "vv"}

// IsSupportedFilter reports whether code names one of the six UVOT bands.
func IsSupportedFilter(code string) bool {
	for _, f := range Filters {
		if f == code {
			return true
		}
	}
	return false
}

// Pair identifies one (observation, filter) unit of work and derives every
// path the pipeline needs for it.
type Pair struct {
	DataDir     string
	Observation string
	Filter      string
}

// ImageDir returns the observation's UVOT image directory.
func (p Pair) ImageDir() string {
	return filepath.Join(p.DataDir, p.Observation, "uvot", "image")
}

func (p Pair) stem() string {
	return "sw" + p.Observation + "u" + p.Filter
}

// TemplatePath is the scattered-light template image.
func (p Pair) TemplatePath() string {
	return filepath.Join(p.ImageDir(), p.stem()+".sl")
}

// CountsPath is the LSS-corrected sky counts image.
func (p Pair) CountsPath() string {
	return filepath.Join(p.ImageDir(), p.stem()+"_sk_corr.img")
}

// ParamsPath is the pair's scattered-light parameter file.
func (p Pair) ParamsPath() string {
	return filepath.Join(p.ImageDir(), p.stem()+"_sl.info")
}

// CorrectedPath is the output stack, derived from the counts image name by
// suffix substitution.
func (p Pair) CorrectedPath() string {
	return strings.Replace(p.CountsPath(), "_corr.img", "_corr_sl.img", 1)
}

// String renders the pair for diagnostics.
func (p Pair) String() string {
	return p.Observation + "/" + p.Filter
}

// FindFilters returns the subset of requested band codes that have a sky
// image on disk for the observation, in requested order. An observation with
// no sky images at all returns an empty slice; the caller decides how loudly
// to report that.
func FindFilters(dataDir, obs string, requested []string) ([]string, error) {
	pattern := filepath.Join(dataDir, obs, "uvot", "image", "*_sk.img")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob sky images for %s: %w", obs, err)
	}

	present := make(map[string]bool, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		stem := strings.TrimSuffix(base, "_sk.img")
		if len(stem) < 2 {
			continue
		}
		present[stem[len(stem)-2:]] = true
	}

	var found []string
	for _, f := range requested {
		if present[f] {
			found = append(found, f)
		}
	}
	return found, nil
}
