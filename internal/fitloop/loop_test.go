package fitloop

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"uvotsl/internal/grid"
	"uvotsl/internal/sltransform"
)

type recordingRenderer struct {
	calls  int
	params []sltransform.Params
	ranges []DisplayRange
	err    error
}

func (r *recordingRenderer) Render(original, corrected *grid.Grid, rng DisplayRange, p sltransform.Params, ext int) error {
	r.calls++
	r.params = append(r.params, p)
	r.ranges = append(r.ranges, rng)
	return r.err
}

func testGrids(t *testing.T) (*grid.Grid, *grid.Grid) {
	t.Helper()
	counts := grid.New(8, 8)
	template := grid.New(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			counts.Set(x, y, float64(x+y)+1)
			if x > 0 && x < 7 && y > 0 && y < 7 {
				template.Set(x, y, 1+0.1*float64(x))
			}
		}
	}
	return counts, template
}

func newLoop(input string, r Renderer) *Loop {
	return &Loop{
		Prompter: NewPrompter(strings.NewReader(input), &bytes.Buffer{}),
		Renderer: r,
		Settings: Settings{SmoothSigma: 1, ClipSigma: 2, ClipIters: 3},
	}
}

func TestPrompterSurvivesAcrossRuns(t *testing.T) {
	counts, template := testGrids(t)
	renderer := &recordingRenderer{}
	prompter := NewPrompter(strings.NewReader("1.5 0.3\nq\ndone\n"), &bytes.Buffer{})
	loop := &Loop{
		Prompter: prompter,
		Renderer: renderer,
		Settings: Settings{SmoothSigma: 1, ClipSigma: 2, ClipIters: 3},
	}

	first, err := loop.Run(counts, template, sltransform.Params{Exp: 1.2, Flat: 0.4}, 1)
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if first != (sltransform.Params{Exp: 1.5, Flat: 0.3}) {
		t.Errorf("first fit = %+v", first)
	}

	second, err := loop.Run(counts, template, sltransform.Params{Exp: 1.2, Flat: 0.4}, 2)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if second != (sltransform.Params{Exp: 1.2, Flat: 0.4}) {
		t.Errorf("second fit should keep its seed, got %+v", second)
	}
}

func TestRunTerminatesOnSingleToken(t *testing.T) {
	counts, template := testGrids(t)
	renderer := &recordingRenderer{}
	loop := newLoop("done\n", renderer)

	seed := sltransform.Params{Exp: 1.2, Flat: 0.4}
	got, err := loop.Run(counts, template, seed, 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got != seed {
		t.Errorf("immediate confirmation should keep the seed, got %+v", got)
	}
	if renderer.calls != 1 {
		t.Errorf("expected exactly one render, got %d", renderer.calls)
	}
}

func TestRunUpdatesParamsAndRerenders(t *testing.T) {
	counts, template := testGrids(t)
	renderer := &recordingRenderer{}
	loop := newLoop("1.5 0.3\n1.4,0.25\nq\n", renderer)

	got, err := loop.Run(counts, template, sltransform.Params{Exp: 1.2, Flat: 0.4}, 2)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := sltransform.Params{Exp: 1.4, Flat: 0.25}
	if got != want {
		t.Errorf("final params = %+v, want %+v", got, want)
	}
	if renderer.calls != 3 {
		t.Fatalf("expected 3 renders, got %d", renderer.calls)
	}
	if renderer.params[1] != (sltransform.Params{Exp: 1.5, Flat: 0.3}) {
		t.Errorf("second render should use the first update, got %+v", renderer.params[1])
	}
}

func TestRunDisplayRangeComputedOnce(t *testing.T) {
	counts, template := testGrids(t)
	renderer := &recordingRenderer{}
	loop := newLoop("1.5 0.3\nok\n", renderer)

	if _, err := loop.Run(counts, template, sltransform.Params{Exp: 1.2, Flat: 0.4}, 1); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(renderer.ranges) != 2 {
		t.Fatalf("expected 2 renders, got %d", len(renderer.ranges))
	}
	if renderer.ranges[0] != renderer.ranges[1] {
		t.Errorf("display range must not change between iterations: %+v vs %+v",
			renderer.ranges[0], renderer.ranges[1])
	}
}

func TestRunKeepsParamsOnEOF(t *testing.T) {
	counts, template := testGrids(t)
	renderer := &recordingRenderer{}
	loop := newLoop("1.5 0.3\n", renderer)

	got, err := loop.Run(counts, template, sltransform.Params{Exp: 1.2, Flat: 0.4}, 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got != (sltransform.Params{Exp: 1.5, Flat: 0.3}) {
		t.Errorf("EOF should keep the last parameters, got %+v", got)
	}
}

func TestRunPropagatesRendererError(t *testing.T) {
	counts, template := testGrids(t)
	renderer := &recordingRenderer{err: errors.New("no display")}
	loop := newLoop("done\n", renderer)

	if _, err := loop.Run(counts, template, sltransform.Params{Exp: 1.2, Flat: 0.4}, 1); err == nil {
		t.Fatal("expected renderer error to propagate")
	}
}

func TestRunPropagatesEmptyFOV(t *testing.T) {
	counts := grid.New(4, 4)
	template := grid.New(4, 4) // all zero: no FOV
	renderer := &recordingRenderer{}
	loop := newLoop("done\n", renderer)

	_, err := loop.Run(counts, template, sltransform.Params{Exp: 1.2, Flat: 0.4}, 1)
	if !errors.Is(err, sltransform.ErrEmptyFOV) {
		t.Fatalf("expected ErrEmptyFOV, got %v", err)
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		action inputAction
		want   sltransform.Params
	}{
		{"space separated pair", "1.5 0.3", actionUpdate, sltransform.Params{Exp: 1.5, Flat: 0.3}},
		{"comma separated pair", "1.5,0.3", actionUpdate, sltransform.Params{Exp: 1.5, Flat: 0.3}},
		{"comma with spaces", " 1.5 , 0.3 ", actionUpdate, sltransform.Params{Exp: 1.5, Flat: 0.3}},
		{"single numeric token", "1.5", actionDone, sltransform.Params{}},
		{"single word", "done", actionDone, sltransform.Params{}},
		{"empty line", "", actionContinue, sltransform.Params{}},
		{"three tokens", "1 2 3", actionContinue, sltransform.Params{}},
		{"non-numeric pair", "abc def", actionContinue, sltransform.Params{}},
		{"half numeric pair", "1.5 xyz", actionContinue, sltransform.Params{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, action := parseInput(tc.line)
			if action != tc.action {
				t.Fatalf("action = %v, want %v", action, tc.action)
			}
			if action == actionUpdate && got != tc.want {
				t.Errorf("params = %+v, want %+v", got, tc.want)
			}
		})
	}
}
