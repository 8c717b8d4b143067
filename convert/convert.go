// Package convert rewrites a multi-track song into a single hardware-safe
// track: events are validated against a capability profile, header-phase
// events are reordered into the order the instrument requires, and the
// hardware-mandated preamble is inserted before the first performance
// message.
package convert

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/essandess/midi-yamaha-modus-converter/debug"
	"github.com/essandess/midi-yamaha-modus-converter/midifile"
	"github.com/essandess/midi-yamaha-modus-converter/profile"
)

// Options configure one converter instance.
type Options struct {
	// Suffix is inserted before the output file extension.
	Suffix string
	// Text strings are injected as text meta messages at the track head.
	Text []string
	// Copyright, if set, is injected when the input carries no copyright.
	Copyright string
}

// Converter runs the compatibility transform against one capability profile.
// It holds no per-file state and may be shared across goroutines.
type Converter struct {
	prof *profile.Profile
	opts Options
}

// New returns a converter for the given profile. A zero Suffix falls back to
// midifile.DefaultSuffix.
func New(prof *profile.Profile, opts Options) *Converter {
	if opts.Suffix == "" {
		opts.Suffix = midifile.DefaultSuffix
	}
	return &Converter{prof: prof, opts: opts}
}

// ConvertFile transforms one file and writes the result next to it, with the
// suffix inserted before the extension. Codec errors are returned as-is;
// rejected events are dropped, never fatal.
func (c *Converter) ConvertFile(path string) error {
	song, err := midifile.Parse(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	merged := midifile.MergeTracks(song)
	track := c.Convert(merged, midifile.BaseName(path))
	out := midifile.OutputPath(path, c.opts.Suffix)
	if err := midifile.Write(out, track, song.TimeFormat); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}

// engine states: every pass starts in the preamble and switches to streaming
// on the first performance message, for good.
type state int

const (
	statePreamble state = iota
	stateStreaming
)

// Convert runs the single reordering pass over a merged track. name is used
// to synthesize a track name when the input has none.
//
// Rerunning Convert on its own output inserts the preamble again; the
// transform is deliberately not idempotent.
func (c *Converter) Convert(in smf.Track, name string) smf.Track {
	var out smf.Track

	// Hardware default tempo and time signature, always first.
	out = append(out, c.prof.InitialTiming...)
	if !hasMeta(in, smf.MetaTrackNameMsg) {
		out = emit(out, 0, smf.MetaTrackSequenceName(name))
	}
	if c.opts.Copyright != "" && !hasMeta(in, smf.MetaCopyrightMsg) {
		out = emit(out, 0, smf.MetaCopyright(c.opts.Copyright))
	}
	for _, text := range c.opts.Text {
		out = emit(out, 0, smf.MetaText(text))
	}

	st := statePreamble
	var deferredTiming []smf.Event // tempo and time signature
	var deferredSetup []smf.Event  // control/program change and sysex

	for _, ev := range in {
		msg := ev.Message
		if st == statePreamble {
			switch {
			case msg.Is(smf.MetaSeqDataMsg):
				// Only the hardware-mandated blocks may carry
				// sequencer-specific data; input copies never
				// reach the output.
				debug.Dropped("preamble", msg)
				continue
			case isTiming(msg):
				deferredTiming = append(deferredTiming, ev)
				continue
			case isSetup(msg):
				deferredSetup = append(deferredSetup, ev)
				continue
			case isPerformance(msg):
				st = stateStreaming
				out = c.flushPreamble(out, deferredTiming, deferredSetup)
			}
		}
		if c.prof.IsValid(msg) {
			out = append(out, ev)
		} else {
			debug.Dropped("stream", msg)
		}
	}
	return out
}

// flushPreamble emits the hardware-mandated blocks in their fixed order,
// then replays the deferred events, each re-validated individually.
func (c *Converter) flushPreamble(out smf.Track, timing, setup []smf.Event) smf.Track {
	out = append(out, c.prof.SequencerSpecific...)
	out = append(out, c.prof.HandInsertedSysex...)
	out = append(out, c.prof.PresetChanges...)
	for _, ev := range timing {
		if c.prof.IsValid(ev.Message) {
			out = append(out, ev)
		} else {
			debug.Dropped("timing", ev.Message)
		}
	}
	for _, ev := range setup {
		if c.prof.IsValid(ev.Message) {
			out = append(out, ev)
		} else {
			debug.Dropped("setup", ev.Message)
		}
	}
	return out
}

// isTiming matches the meta messages deferred to the first flush bucket.
func isTiming(msg smf.Message) bool {
	return msg.IsOneOf(smf.MetaTempoMsg, smf.MetaTimeSigMsg)
}

// isSetup matches the messages deferred to the second flush bucket.
func isSetup(msg smf.Message) bool {
	return msg.IsOneOf(midi.ControlChangeMsg, midi.ProgramChangeMsg, midi.SysExMsg)
}

// isPerformance reports whether msg ends the preamble: any message carrying
// a channel attribute that is not a control or program change. That includes
// the channel-prefix meta, which addresses a channel like a voice message
// does.
func isPerformance(msg smf.Message) bool {
	var ch uint8
	return msg.GetChannel(&ch) || msg.Is(smf.MetaChannelMsg)
}

func hasMeta(t smf.Track, typ midi.Type) bool {
	for _, ev := range t {
		if ev.Message.Is(typ) {
			return true
		}
	}
	return false
}

func emit(t smf.Track, delta uint32, msg smf.Message) smf.Track {
	return append(t, smf.Event{Delta: delta, Message: msg})
}
