package header

import (
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeSong(t *testing.T, path string, track smf.Track) {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	s.Add(track)
	if err := s.WriteFile(path); err != nil {
		t.Fatal(err)
	}
}

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mid")
	var tr smf.Track
	tr = append(tr,
		smf.Event{Delta: 0, Message: smf.MetaTrackSequenceName("Aria")},
		smf.Event{Delta: 0, Message: smf.MetaInstrument("Piano")},
		smf.Event{Delta: 0, Message: smf.MetaText("first")},
		smf.Event{Delta: 0, Message: smf.MetaCopyright("2020")},
		// Control and program changes do not end the header scan.
		smf.Event{Delta: 0, Message: smf.Message(midi.ControlChange(0, 7, 100))},
		smf.Event{Delta: 0, Message: smf.MetaText("second")},
		smf.Event{Delta: 0, Message: smf.Message(midi.NoteOn(0, 60, 100))},
		// Past the first note, metadata no longer counts as header.
		smf.Event{Delta: 10, Message: smf.MetaText("ignored")},
		smf.Event{Delta: 0, Message: smf.EOT},
	)
	writeSong(t, path, tr)

	h, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if h.Filename != path {
		t.Errorf("Filename = %q, want %q", h.Filename, path)
	}
	if h.TrackName != "Aria" {
		t.Errorf("TrackName = %q, want Aria", h.TrackName)
	}
	if h.InstrumentName != "Piano" {
		t.Errorf("InstrumentName = %q, want Piano", h.InstrumentName)
	}
	if h.Text != "first; second" {
		t.Errorf("Text = %q, want joined values", h.Text)
	}
	if h.Copyright != "2020" {
		t.Errorf("Copyright = %q, want 2020", h.Copyright)
	}
}

func TestExtractEmptyHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.mid")
	var tr smf.Track
	tr = append(tr,
		smf.Event{Delta: 0, Message: smf.Message(midi.NoteOn(0, 60, 100))},
		smf.Event{Delta: 10, Message: smf.Message(midi.NoteOff(0, 60))},
		smf.Event{Delta: 0, Message: smf.EOT},
	)
	writeSong(t, path, tr)

	h, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if h.TrackName != "" || h.InstrumentName != "" || h.Text != "" || h.Copyright != "" {
		t.Errorf("expected empty header fields, got %+v", h)
	}
}

func TestExtractStopsAtChannelPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefixed.mid")
	var tr smf.Track
	tr = append(tr,
		smf.Event{Delta: 0, Message: smf.MetaText("front")},
		smf.Event{Delta: 0, Message: smf.MetaChannel(3)},
		smf.Event{Delta: 0, Message: smf.MetaText("after")},
		smf.Event{Delta: 0, Message: smf.Message(midi.NoteOn(3, 60, 100))},
		smf.Event{Delta: 0, Message: smf.EOT},
	)
	writeSong(t, path, tr)

	h, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if h.Text != "front" {
		t.Errorf("Text = %q, want front only", h.Text)
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := Extract(filepath.Join(t.TempDir(), "absent.mid")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestColumnsMatchFields(t *testing.T) {
	h := Header{}
	if len(Columns()) != len(h.Fields()) {
		t.Errorf("Columns (%d) and Fields (%d) disagree", len(Columns()), len(h.Fields()))
	}
}
