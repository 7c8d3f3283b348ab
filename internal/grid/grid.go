package grid

import (
	"fmt"
	"math"
)

// Grid is a dense row-major 2-D array of float64 pixel values.
type Grid struct {
	width  int
	height int
	values []float64
}

// New returns a zero-filled grid of the given dimensions.
func New(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		values: make([]float64, width*height),
	}
}

// FromValues wraps an existing row-major slice. The slice is owned by the
// returned grid afterwards.
func FromValues(width, height int, values []float64) (*Grid, error) {
	if len(values) != width*height {
		return nil, fmt.Errorf("grid: %d values do not fill %dx%d", len(values), width, height)
	}
	return &Grid{width: width, height: height, values: values}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// At returns the pixel at column x, row y.
func (g *Grid) At(x, y int) float64 { return g.values[y*g.width+x] }

// Set stores v at column x, row y.
func (g *Grid) Set(x, y int, v float64) { g.values[y*g.width+x] = v }

// Values exposes the backing slice. Mutating it mutates the grid.
func (g *Grid) Values() []float64 { return g.values }

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	dup := make([]float64, len(g.values))
	copy(dup, g.values)
	return &Grid{width: g.width, height: g.height, values: dup}
}

// SameShape reports whether other has identical dimensions.
func (g *Grid) SameShape(other *Grid) bool {
	return other != nil && g.width == other.width && g.height == other.height
}

// Smooth convolves the grid with a Gaussian kernel of the given sigma and
// returns a new grid. The convolution is separable and renormalizes by the
// in-bounds kernel weight at the edges, so borders are not darkened.
// Non-finite pixels are treated as missing: they contribute nothing to
// their neighbors and smooth to whatever their finite neighborhood gives.
func (g *Grid) Smooth(sigma float64) *Grid {
	if sigma <= 0 {
		return g.Clone()
	}
	kernel := gaussianKernel(sigma)
	half := len(kernel) / 2

	tmp := New(g.width, g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			var sum, weight float64
			for k := -half; k <= half; k++ {
				xx := x + k
				if xx < 0 || xx >= g.width {
					continue
				}
				v := g.At(xx, y)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					continue
				}
				w := kernel[k+half]
				sum += w * v
				weight += w
			}
			if weight > 0 {
				tmp.Set(x, y, sum/weight)
			}
		}
	}

	out := New(g.width, g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			var sum, weight float64
			for k := -half; k <= half; k++ {
				yy := y + k
				if yy < 0 || yy >= g.height {
					continue
				}
				w := kernel[k+half]
				sum += w * tmp.At(x, yy)
				weight += w
			}
			if weight > 0 {
				out.Set(x, y, sum/weight)
			}
		}
	}
	return out
}

// gaussianKernel builds a normalized 1-D kernel truncated at 4 sigma.
func gaussianKernel(sigma float64) []float64 {
	half := int(math.Ceil(4 * sigma))
	kernel := make([]float64, 2*half+1)
	var total float64
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		total += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= total
	}
	return kernel
}
