package preview

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"uvotsl/internal/fitloop"
	"uvotsl/internal/grid"
	"uvotsl/internal/logging"
	"uvotsl/internal/sltransform"
)

// gap separates the two panels, in pixels.
const gap = 8

// PNGRenderer writes side-by-side preview PNGs into Dir. It implements
// fitloop.Renderer.
type PNGRenderer struct {
	Dir         string
	Observation string
	Filter      string
	Logger      *slog.Logger
}

// Render draws both panels with the shared display range and overwrites the
// snapshot's preview file.
func (r *PNGRenderer) Render(original, corrected *grid.Grid, rng fitloop.DisplayRange, p sltransform.Params, extension int) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("ensure preview directory: %w", err)
	}

	w, h := original.Width(), original.Height()
	img := image.NewRGBA(image.Rect(0, 0, 2*w+gap, h))
	drawPanel(img, original, rng, 0)
	drawPanel(img, corrected, rng, w+gap)

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(p.String(), 10, 16)

	path := r.path(extension)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save preview %s: %w", path, err)
	}

	logger := logging.NewComponentLogger(r.Logger, "preview")
	logger.Info("preview updated",
		logging.Extension(extension),
		logging.String("path", path))
	return nil
}

func (r *PNGRenderer) path(extension int) string {
	name := fmt.Sprintf("preview_%s_%s_ext%02d.png", r.Observation, r.Filter, extension)
	return filepath.Join(r.Dir, name)
}

func drawPanel(img *image.RGBA, g *grid.Grid, rng fitloop.DisplayRange, xOffset int) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			level := stretch(g.At(x, y), rng)
			gray := uint8(level * 255)
			// FITS row order puts the image origin at the bottom.
			img.SetRGBA(xOffset+x, g.Height()-1-y, color.RGBA{gray, gray, gray, 255})
		}
	}
}

// stretch maps a pixel value into [0, 1] with a logarithmic scale over the
// display range, the same shape as the viewer's log stretch. Non-finite
// pixels render as black.
func stretch(v float64, rng fitloop.DisplayRange) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if rng.Max <= rng.Min {
		return 0
	}
	t := (v - rng.Min) / (rng.Max - rng.Min)
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	const a = 1000
	return math.Log1p(a*t) / math.Log1p(a)
}
