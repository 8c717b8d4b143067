// Command midiheader lists the descriptive metadata of MIDI files (track
// name, instrument name, text, copyright) as TSV, or as a bordered table
// with -pretty. It never modifies the files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/essandess/midi-yamaha-modus-converter/batch"
	"github.com/essandess/midi-yamaha-modus-converter/header"
)

func main() {
	pretty := flag.Bool("pretty", false, "render a bordered table instead of TSV")
	sep := flag.String("sep", "\t", "field separator for TSV output")
	jobs := flag.Int("jobs", 0, "parallel file reads (0 = auto)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: midiheader [flags] file-or-dir ...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	paths, err := batch.Discover(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	headers, failed := extractAll(paths, *jobs)
	if *pretty {
		printTable(headers)
	} else {
		printTSV(headers, *sep)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// extractAll reads the headers in parallel but keeps rows in discovery order.
func extractAll(paths []string, jobs int) ([]header.Header, int) {
	if jobs <= 0 {
		jobs = batch.DefaultWorkers()
	}
	headers := make([]header.Header, len(paths))
	errs := make([]error, len(paths))
	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				headers[i], errs[i] = header.Extract(paths[i])
			}
		}()
	}
	for i := range paths {
		idx <- i
	}
	close(idx)
	wg.Wait()

	out := headers[:0]
	failed := 0
	for i, h := range headers {
		if errs[i] != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", paths[i], errs[i])
			failed++
			continue
		}
		out = append(out, h)
	}
	return out, failed
}

func printTSV(headers []header.Header, sep string) {
	fmt.Println(strings.Join(header.Columns(), sep))
	for _, h := range headers {
		fmt.Println(strings.Join(h.Fields(), sep))
	}
}

func printTable(headers []header.Header) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(header.Columns()...)
	for _, h := range headers {
		t.Row(h.Fields()...)
	}
	fmt.Println(t.Render())
}
