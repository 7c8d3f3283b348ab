package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
)

// Extension describes one exposure extension of a test stack.
type Extension struct {
	TStart float64
	Width  int
	Height int
	Values []float64
}

// UniformExtension builds an extension filled with a single value.
func UniformExtension(tstart float64, width, height int, value float64) Extension {
	values := make([]float64, width*height)
	for i := range values {
		values[i] = value
	}
	return Extension{TStart: tstart, Width: width, Height: height, Values: values}
}

// WriteStack creates a multi-extension FITS file at path: an empty primary
// HDU followed by one float64 image extension per entry, each carrying a
// TSTART card.
func WriteStack(t testing.TB, path string, exts []Extension) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	fits, err := fitsio.Create(file)
	if err != nil {
		t.Fatalf("initialize FITS %s: %v", path, err)
	}
	defer fits.Close()

	primary, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		t.Fatalf("build primary HDU: %v", err)
	}
	defer primary.Close()
	if err := fits.Write(primary); err != nil {
		t.Fatalf("write primary HDU: %v", err)
	}

	for i, ext := range exts {
		img := fitsio.NewImage(-64, []int{ext.Width, ext.Height})
		err := img.Header().Append(fitsio.Card{
			Name:    "TSTART",
			Value:   ext.TStart,
			Comment: "exposure start time",
		})
		if err != nil {
			t.Fatalf("extension %d header: %v", i+1, err)
		}
		values := append([]float64(nil), ext.Values...)
		if err := img.Write(&values); err != nil {
			t.Fatalf("extension %d pixels: %v", i+1, err)
		}
		if err := fits.Write(img); err != nil {
			t.Fatalf("extension %d write: %v", i+1, err)
		}
		if err := img.Close(); err != nil {
			t.Fatalf("extension %d close: %v", i+1, err)
		}
	}

	if err := fits.Close(); err != nil {
		t.Fatalf("finalize FITS %s: %v", path, err)
	}
}
