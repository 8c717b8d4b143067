package batch

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mid"))
	touch(t, filepath.Join(dir, "sub", "b.MIDI"))
	touch(t, filepath.Join(dir, "sub", "deep", "c.midi"))
	touch(t, filepath.Join(dir, "notes.txt"))
	loose := filepath.Join(dir, "loose.bin")
	touch(t, loose)

	// A directory is filtered by extension; an explicit file is taken as-is.
	paths, err := Discover([]string{dir, loose})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(paths)

	want := 4 // a.mid, b.MIDI, c.midi, loose.bin
	if len(paths) != want {
		t.Fatalf("Discover found %d paths, want %d: %v", len(paths), want, paths)
	}
	for _, p := range paths {
		if strings.HasSuffix(p, "notes.txt") {
			t.Errorf("non-MIDI file discovered in directory walk: %s", p)
		}
	}
}

func TestDiscoverMissingName(t *testing.T) {
	if _, err := Discover([]string{filepath.Join(t.TempDir(), "absent")}); err == nil {
		t.Error("expected an error for a missing name")
	}
}

func TestRunCollectsErrorsAndContinues(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e"}
	var (
		mu   sync.Mutex
		seen []string
	)
	errs := Run(paths, 3, func(p string) error {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
		if p == "b" || p == "d" {
			return errors.New(p + " failed")
		}
		return nil
	})

	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if len(seen) != len(paths) {
		t.Errorf("a failing file must not stop the batch: ran %d of %d", len(seen), len(paths))
	}
}

func TestRunZeroWorkers(t *testing.T) {
	// Worker count is clamped, never deadlocks.
	errs := Run([]string{"a"}, 0, func(string) error { return nil })
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if DefaultWorkers() < 1 {
		t.Error("DefaultWorkers must be at least 1")
	}
}
