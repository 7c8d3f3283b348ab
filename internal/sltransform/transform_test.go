package sltransform

import (
	"errors"
	"math"
	"testing"

	"uvotsl/internal/grid"
)

func mustGrid(t *testing.T, w, h int, values []float64) *grid.Grid {
	t.Helper()
	g, err := grid.FromValues(w, h, values)
	if err != nil {
		t.Fatalf("grid construction failed: %v", err)
	}
	return g
}

// templateWithBorder builds a 4x4 template with a zero border and a 2x2
// positive field of view.
func templateWithBorder(t *testing.T) *grid.Grid {
	return mustGrid(t, 4, 4, []float64{
		0, 0, 0, 0,
		0, 1.0, 2.0, 0,
		0, 3.0, 4.0, 0,
		0, 0, 0, 0,
	})
}

func constantGrid(t *testing.T, w, h int, v float64) *grid.Grid {
	values := make([]float64, w*h)
	for i := range values {
		values[i] = v
	}
	return mustGrid(t, w, h, values)
}

func TestCorrectIsDeterministic(t *testing.T) {
	counts := constantGrid(t, 4, 4, 10)
	p := Params{Exp: 1.2, Flat: 0.4}

	first, err := Correct(counts, templateWithBorder(t), p)
	if err != nil {
		t.Fatalf("Correct failed: %v", err)
	}
	second, err := Correct(counts, templateWithBorder(t), p)
	if err != nil {
		t.Fatalf("Correct failed: %v", err)
	}

	for i, v := range first.Values() {
		if v != second.Values()[i] {
			t.Fatalf("outputs differ at %d: %g vs %g", i, v, second.Values()[i])
		}
	}
}

func TestCorrectDoesNotMutateInputs(t *testing.T) {
	counts := constantGrid(t, 4, 4, 10)
	template := templateWithBorder(t)
	wantCounts := counts.Clone()
	wantTemplate := template.Clone()

	if _, err := Correct(counts, template, Params{Exp: 1.2, Flat: 0.4}); err != nil {
		t.Fatalf("Correct failed: %v", err)
	}

	for i := range counts.Values() {
		if counts.Values()[i] != wantCounts.Values()[i] {
			t.Fatal("counts array was mutated")
		}
		if template.Values()[i] != wantTemplate.Values()[i] {
			t.Fatal("template array was mutated")
		}
	}
}

func TestCorrectPreservesShape(t *testing.T) {
	counts := constantGrid(t, 5, 3, 2)
	template := constantGrid(t, 5, 3, 1)

	out, err := Correct(counts, template, Params{Exp: 2.0, Flat: 0.5})
	if err != nil {
		t.Fatalf("Correct failed: %v", err)
	}
	if out.Width() != 5 || out.Height() != 3 {
		t.Errorf("shape changed: %dx%d", out.Width(), out.Height())
	}
}

func TestCorrectRejectsShapeMismatch(t *testing.T) {
	counts := constantGrid(t, 4, 4, 1)
	template := constantGrid(t, 3, 3, 1)
	if _, err := Correct(counts, template, Params{Exp: 1.2, Flat: 0.4}); err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestCorrectEmptyFOV(t *testing.T) {
	counts := constantGrid(t, 4, 4, 1)
	template := constantGrid(t, 4, 4, 0)

	_, err := Correct(counts, template, Params{Exp: 1.2, Flat: 0.4})
	if !errors.Is(err, ErrEmptyFOV) {
		t.Fatalf("expected ErrEmptyFOV, got %v", err)
	}
}

// A template that is uniformly 1 across the full array transforms to exactly
// 1 for any exponent when flat=1, so the corrected image equals the counts.
func TestCorrectIdentityForUniformTemplate(t *testing.T) {
	counts := mustGrid(t, 3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	template := constantGrid(t, 3, 3, 1)

	out, err := Correct(counts, template, Params{Exp: 1.0, Flat: 1.0})
	if err != nil {
		t.Fatalf("Correct failed: %v", err)
	}
	for i, v := range out.Values() {
		if math.Abs(v-counts.Values()[i]) > 1e-12 {
			t.Fatalf("identity violated at %d: got %g, want %g", i, v, counts.Values()[i])
		}
	}
}

// With flat=1 the flatten step is the identity, so the FOV mean stays at the
// post-normalization value of exactly 1. Smaller flat factors keep the mean
// pinned while shrinking the spread.
func TestFlattenPreservesFOVMean(t *testing.T) {
	counts := constantGrid(t, 4, 4, 1)

	for _, flat := range []float64{1.0, 0.5, 0.1} {
		out, err := Correct(counts, templateWithBorder(t), Params{Exp: 1.7, Flat: flat})
		if err != nil {
			t.Fatalf("Correct failed: %v", err)
		}

		// Recover the transformed template from counts/result with counts=1.
		var sum float64
		var n int
		ref := templateWithBorder(t)
		for i, v := range out.Values() {
			if ref.Values()[i] > 0 {
				sum += 1 / v
				n++
			}
		}
		mean := sum / float64(n)
		if math.Abs(mean-1) > 1e-9 {
			t.Errorf("flat=%g: FOV mean drifted to %g", flat, mean)
		}
	}
}

// Flattening toward the mean shrinks the template's in-FOV spread, so the
// corrected image varies less across the FOV as flat approaches 0.
func TestFlatteningReducesSpread(t *testing.T) {
	counts := constantGrid(t, 4, 4, 1)

	spread := func(flat float64) float64 {
		out, err := Correct(counts, templateWithBorder(t), Params{Exp: 1.7, Flat: flat})
		if err != nil {
			t.Fatalf("Correct failed: %v", err)
		}
		ref := templateWithBorder(t)
		lo, hi := math.Inf(1), math.Inf(-1)
		for i, v := range out.Values() {
			if ref.Values()[i] > 0 {
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
		}
		return hi - lo
	}

	if spread(0.2) >= spread(1.0) {
		t.Errorf("spread should shrink as flat decreases: flat=0.2 gives %g, flat=1.0 gives %g",
			spread(0.2), spread(1.0))
	}
}

func TestNonFinitePassThrough(t *testing.T) {
	counts := constantGrid(t, 4, 4, 1)

	out, err := Correct(counts, templateWithBorder(t), Params{Exp: 1.2, Flat: 1.0})
	if err != nil {
		t.Fatalf("Correct failed: %v", err)
	}

	// Outside the FOV the flattened template is 0 (flat=1 keeps the shifted
	// border at zero), so the division produces +Inf. That is passed through.
	if !math.IsInf(out.At(0, 0), 1) {
		t.Errorf("expected +Inf outside FOV, got %g", out.At(0, 0))
	}
}
