// Package batch discovers MIDI files under a set of paths and fans the
// per-file work out over a bounded worker pool. Files are independent, so
// workers share nothing but the job channel.
package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/essandess/midi-yamaha-modus-converter/midifile"
)

// DefaultWorkers leaves two cores for the rest of the system.
func DefaultWorkers() int {
	n := runtime.NumCPU() - 2
	if n < 1 {
		n = 1
	}
	return n
}

// Discover expands names into a flat list of MIDI file paths. Plain files
// are taken as given; directories are walked recursively and filtered by
// extension.
func Discover(names []string) ([]string, error) {
	var paths []string
	for _, name := range names {
		st, err := os.Stat(name)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			paths = append(paths, name)
			continue
		}
		err = filepath.WalkDir(name, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && midifile.IsMIDIPath(d.Name()) {
				paths = append(paths, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// Run applies fn to every path using the given number of workers and returns
// the per-file errors. A failing file never stops the batch.
func Run(paths []string, workers int, fn func(path string) error) []error {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan string)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				if err := fn(p); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}
	for _, p := range paths {
		jobs <- p
	}
	close(jobs)
	wg.Wait()
	return errs
}
