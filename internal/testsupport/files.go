package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"matchmill/internal/sample"
)

// WriteSamples writes samples to path as newline-delimited JSON.
func WriteSamples(t testing.TB, path string, samples []sample.Sample) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, s := range samples {
		if err := enc.Encode(s); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}
