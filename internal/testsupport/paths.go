package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// ImageDir creates and returns the UVOT image directory for an observation
// folder, matching the archive layout <root>/<obs>/uvot/image.
func ImageDir(t testing.TB, root, obs string) string {
	t.Helper()
	dir := filepath.Join(root, obs, "uvot", "image")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	return dir
}
