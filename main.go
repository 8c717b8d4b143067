// Command midi-yamaha-modus-converter rewrites Standard MIDI Files for
// playback on a Yamaha Modus / Clavinova piano. It accepts files and
// directories; directories are searched recursively and converted in
// parallel.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/essandess/midi-yamaha-modus-converter/batch"
	"github.com/essandess/midi-yamaha-modus-converter/config"
	"github.com/essandess/midi-yamaha-modus-converter/convert"
	"github.com/essandess/midi-yamaha-modus-converter/debug"
	"github.com/essandess/midi-yamaha-modus-converter/profile"
)

// textFlags collects repeated -t flags in order.
type textFlags []string

func (t *textFlags) String() string { return fmt.Sprint(*t) }

func (t *textFlags) Set(v string) error {
	*t = append(*t, v)
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var texts textFlags
	flag.Var(&texts, "t", "text annotation to inject (repeatable)")
	flag.Var(&texts, "text", "text annotation to inject (repeatable)")
	suffix := flag.String("suffix", cfg.Suffix, "output filename infix")
	copyright := flag.String("copyright", cfg.Copyright, "copyright to inject when the file has none")
	jobs := flag.Int("jobs", cfg.Jobs, "parallel conversions (0 = auto)")
	dbg := flag.Bool("debug", cfg.Debug, "log dropped messages to stderr")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: midi-yamaha-modus-converter [flags] file-or-dir ...")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *dbg {
		debug.Enable()
	}

	conv := convert.New(profile.Modus, convert.Options{
		Suffix:    *suffix,
		Text:      append(cfg.Text, texts...),
		Copyright: *copyright,
	})

	// Single existing file: convert inline, no pool.
	if flag.NArg() == 1 {
		if st, err := os.Stat(flag.Arg(0)); err == nil && !st.IsDir() {
			if err := conv.ConvertFile(flag.Arg(0)); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}

	paths, err := batch.Discover(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	workers := *jobs
	if workers <= 0 {
		workers = batch.DefaultWorkers()
	}
	errs := batch.Run(paths, workers, conv.ConvertFile)
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, err)
	}
	fmt.Printf("converted %d of %d files\n", len(paths)-len(errs), len(paths))
	if len(errs) > 0 {
		os.Exit(1)
	}
}
