package fitstack

import (
	"fmt"
	"math"
	"os"

	"github.com/astrogo/fitsio"

	"uvotsl/internal/grid"
)

// Snapshot is one exposure extension of a stack.
type Snapshot struct {
	// Index is the 1-based extension index within the stack.
	Index int
	// TStart is the exposure start time from the TSTART header card, or
	// NaN when the extension carries none (template stacks often do not).
	TStart float64
	// Data holds the extension's pixel array.
	Data *grid.Grid
}

// Stack is a fully loaded multi-extension image.
type Stack struct {
	Path      string
	Snapshots []Snapshot
}

// Load reads every extension of the stack at path into memory. Extension 0
// is treated as the primary placeholder and skipped.
func Load(path string) (*Stack, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stack: %w", err)
	}
	defer file.Close()

	fits, err := fitsio.Open(file)
	if err != nil {
		return nil, fmt.Errorf("parse stack %s: %w", path, err)
	}
	defer fits.Close()

	hdus := fits.HDUs()
	stack := &Stack{Path: path}
	for i := 1; i < len(hdus); i++ {
		img, ok := hdus[i].(fitsio.Image)
		if !ok {
			return nil, fmt.Errorf("stack %s extension %d is not an image", path, i)
		}
		data, err := readImage(img)
		if err != nil {
			return nil, fmt.Errorf("stack %s extension %d: %w", path, i, err)
		}
		stack.Snapshots = append(stack.Snapshots, Snapshot{
			Index:  i,
			TStart: headerFloat(img.Header(), "TSTART"),
			Data:   data,
		})
	}
	return stack, nil
}

// Len returns the number of exposure extensions.
func (s *Stack) Len() int { return len(s.Snapshots) }

func readImage(img fitsio.Image) (*grid.Grid, error) {
	hdr := img.Header()
	axes := hdr.Axes()
	if len(axes) != 2 {
		return nil, fmt.Errorf("expected 2-D image, got %d axes", len(axes))
	}
	width, height := axes[0], axes[1]
	n := width * height

	values := make([]float64, 0, n)
	switch hdr.Bitpix() {
	case -64:
		var raw []float64
		if err := img.Read(&raw); err != nil {
			return nil, fmt.Errorf("read pixels: %w", err)
		}
		values = raw
	case -32:
		var raw []float32
		if err := img.Read(&raw); err != nil {
			return nil, fmt.Errorf("read pixels: %w", err)
		}
		for _, v := range raw {
			values = append(values, float64(v))
		}
	case 16:
		var raw []int16
		if err := img.Read(&raw); err != nil {
			return nil, fmt.Errorf("read pixels: %w", err)
		}
		for _, v := range raw {
			values = append(values, float64(v))
		}
	case 32:
		var raw []int32
		if err := img.Read(&raw); err != nil {
			return nil, fmt.Errorf("read pixels: %w", err)
		}
		for _, v := range raw {
			values = append(values, float64(v))
		}
	default:
		return nil, fmt.Errorf("unsupported BITPIX %d", hdr.Bitpix())
	}
	if len(values) != n {
		return nil, fmt.Errorf("pixel count %d does not fill %dx%d", len(values), width, height)
	}
	return grid.FromValues(width, height, values)
}

func headerFloat(hdr *fitsio.Header, key string) float64 {
	card := hdr.Get(key)
	if card == nil {
		return math.NaN()
	}
	switch v := card.Value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return math.NaN()
	}
}
