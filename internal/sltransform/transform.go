package sltransform

import (
	"errors"
	"fmt"
	"math"

	"uvotsl/internal/grid"
)

// ErrEmptyFOV reports a template with no positive pixels. The field of view
// is defined by template > 0, so an all-zero template leaves the transform
// statistics undefined. This is a data problem the operator has to look at,
// not a condition the pipeline recovers from.
var ErrEmptyFOV = errors.New("scattered light template has no positive pixels")

// Params are the two tunable scalars of the scattered-light transform.
type Params struct {
	// Exp sharpens the template's contrast: every in-FOV pixel v becomes
	// Exp**v. Conceptually > 0.
	Exp float64
	// Flat scales the template's deviation from its mean. 1 leaves the
	// template unchanged, 0 flattens it completely. Conceptually in [0, 1].
	Flat float64
}

func (p Params) String() string {
	return fmt.Sprintf("exp_param=%g, flat_param=%g", p.Exp, p.Flat)
}

// Correct divides the transformed scattered-light template out of the counts
// image and returns the corrected image.
//
// The template is cloned internally; neither input grid is mutated. The
// transform, applied to the clone:
//
//  1. FOV = pixels where template > 0 (the zero border is outside the FOV)
//  2. shift the FOV so its minimum is 0
//  3. v = Exp**v over the FOV
//  4. divide the whole array by the FOV mean
//  5. flatten around the FOV mean m: v = m + Flat*(v - m)
//  6. corrected = counts / template, elementwise over the full shape
//
// Pixels outside the FOV divide by whatever the border arithmetic leaves
// there; non-finite results pass through unchanged, matching regions with no
// template signal. The caller discards out-of-FOV pixels by convention.
func Correct(counts, template *grid.Grid, p Params) (*grid.Grid, error) {
	if !counts.SameShape(template) {
		return nil, fmt.Errorf("counts %dx%d and template %dx%d differ in shape",
			counts.Width(), counts.Height(), template.Width(), template.Height())
	}

	work := template.Clone()
	values := work.Values()

	fov := make([]int, 0, len(values))
	for i, v := range values {
		if v > 0 {
			fov = append(fov, i)
		}
	}
	if len(fov) == 0 {
		return nil, ErrEmptyFOV
	}

	minFOV := math.Inf(1)
	for _, i := range fov {
		if values[i] < minFOV {
			minFOV = values[i]
		}
	}
	for _, i := range fov {
		values[i] = math.Pow(p.Exp, values[i]-minFOV)
	}

	mean := fovMean(values, fov)
	for i := range values {
		values[i] /= mean
	}

	m := fovMean(values, fov)
	for i := range values {
		values[i] = m + p.Flat*(values[i]-m)
	}

	corrected := counts.Clone()
	out := corrected.Values()
	for i := range out {
		out[i] /= values[i]
	}
	return corrected, nil
}

func fovMean(values []float64, fov []int) float64 {
	var sum float64
	for _, i := range fov {
		sum += values[i]
	}
	return sum / float64(len(fov))
}
