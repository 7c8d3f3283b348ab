package fitloop

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"uvotsl/internal/grid"
	"uvotsl/internal/logging"
	"uvotsl/internal/sltransform"
)

// DisplayRange is the stretch applied to both previews so they stay visually
// comparable across iterations.
type DisplayRange struct {
	Min float64
	Max float64
}

// Renderer presents the two previews to the operator. Implementations decide
// the medium (PNG files, terminal graphics, a GUI); the loop only guarantees
// that original and corrected share the same shape and display range.
type Renderer interface {
	Render(original, corrected *grid.Grid, rng DisplayRange, p sltransform.Params, extension int) error
}

// Settings control preview smoothing and the display stretch.
type Settings struct {
	// SmoothSigma is the Gaussian sigma for preview smoothing.
	SmoothSigma float64
	// ClipSigma and ClipIters drive the sigma clipping behind the lower
	// display bound.
	ClipSigma float64
	ClipIters int
}

// Prompter owns the operator dialogue. One Prompter serves an entire batch
// session: it holds a single buffered scanner over the input stream, so
// input queued for later snapshots is never lost between fits.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter wraps the operator's input and output streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// ask prints the current parameters and blocks for one line of input. The
// second return is false when the input stream has ended.
func (p *Prompter) ask(current sltransform.Params) (string, bool, error) {
	fmt.Fprintf(p.out, "current exp_param and flat_param: %g, %g\n", current.Exp, current.Flat)
	fmt.Fprint(p.out, "new exp/flat, or one value if done: ")
	if !p.scanner.Scan() {
		return "", false, p.scanner.Err()
	}
	return p.scanner.Text(), true, nil
}

// Loop runs interactive fits for one batch session.
type Loop struct {
	Prompter *Prompter
	Renderer Renderer
	Logger   *slog.Logger
	Settings Settings
}

// Run fits one snapshot. It blocks on operator input between iterations and
// returns the last-confirmed parameters. The counts and template grids are
// never mutated.
func (l *Loop) Run(counts, template *grid.Grid, seed sltransform.Params, extension int) (sltransform.Params, error) {
	logger := logging.NewComponentLogger(l.Logger, "fitloop")

	// Smoothed original and its stretch are computed once per snapshot and
	// reused for every iteration, so the two panels stay comparable.
	smoothed := counts.Smooth(l.Settings.SmoothSigma)
	rng := displayRange(smoothed, l.Settings)

	p := seed
	for {
		corrected, err := sltransform.Correct(counts, template, p)
		if err != nil {
			return p, err
		}

		if err := l.Renderer.Render(smoothed, corrected.Smooth(l.Settings.SmoothSigma), rng, p, extension); err != nil {
			return p, fmt.Errorf("render previews: %w", err)
		}

		line, ok, err := l.Prompter.ask(p)
		if err != nil {
			return p, fmt.Errorf("read operator input: %w", err)
		}
		if !ok {
			logger.Warn("operator input ended without confirmation, keeping current parameters",
				logging.Extension(extension),
				logging.Float64("exp_param", p.Exp),
				logging.Float64("flat_param", p.Flat))
			return p, nil
		}

		next, action := parseInput(line)
		switch action {
		case actionDone:
			return p, nil
		case actionUpdate:
			p = next
		case actionContinue:
			// Malformed input: re-render with unchanged parameters.
		}
	}
}

type inputAction int

const (
	actionContinue inputAction = iota
	actionUpdate
	actionDone
)

// parseInput interprets one operator line. Two numeric tokens (comma or
// space separated) update the parameters; exactly one token of any content
// confirms and terminates; everything else re-renders unchanged.
func parseInput(line string) (sltransform.Params, inputAction) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	switch len(fields) {
	case 1:
		return sltransform.Params{}, actionDone
	case 2:
		exp, errExp := strconv.ParseFloat(fields[0], 64)
		flat, errFlat := strconv.ParseFloat(fields[1], 64)
		if errExp != nil || errFlat != nil {
			return sltransform.Params{}, actionContinue
		}
		return sltransform.Params{Exp: exp, Flat: flat}, actionUpdate
	default:
		return sltransform.Params{}, actionContinue
	}
}

// displayRange derives the shared preview stretch from the smoothed original
// counts: sigma-clipped statistics set the floor, the 99th percentile of
// positive pixels sets the ceiling.
func displayRange(smoothed *grid.Grid, s Settings) DisplayRange {
	positive := grid.Positive(smoothed)
	mean, std := grid.SigmaClippedStats(positive, s.ClipSigma, s.ClipIters)
	return DisplayRange{
		Min: mean - 3*std,
		Max: grid.Percentile(positive, 99),
	}
}
