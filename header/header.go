// Package header projects the descriptive metadata of a MIDI file for
// tabular display. It reuses the codec's merged event view but performs no
// validation or mutation.
package header

import (
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/essandess/midi-yamaha-modus-converter/midifile"
)

// MultiSep joins repeated values of the same field.
const MultiSep = "; "

// Header holds the projected fields of one file.
type Header struct {
	Filename       string
	TrackName      string
	InstrumentName string
	Text           string
	Copyright      string
}

// Fields returns the projection in column order.
func (h Header) Fields() []string {
	return []string{h.Filename, h.TrackName, h.InstrumentName, h.Text, h.Copyright}
}

// Columns returns the column names, matching Fields.
func Columns() []string {
	return []string{"filename", "track_name", "instrument_name", "text", "copyright"}
}

// Extract reads the file and collects its header metadata. The scan stops at
// the first performance message (any channel message other than a control or
// program change), which by convention ends the header portion of a track.
func Extract(path string) (Header, error) {
	song, err := midifile.Parse(path)
	if err != nil {
		return Header{}, err
	}
	h := Header{Filename: path}
	var trackNames, instruments, texts, copyrights []string
	for _, ev := range midifile.MergeTracks(song) {
		msg := ev.Message
		var ch uint8
		// Like the converter's preamble, the header ends at the first
		// channel-addressed message other than a control or program
		// change; the channel-prefix meta counts.
		if msg.Is(smf.MetaChannelMsg) ||
			(msg.GetChannel(&ch) &&
				!msg.IsOneOf(midi.ControlChangeMsg, midi.ProgramChangeMsg)) {
			break
		}
		var s string
		switch msg.Type() {
		case smf.MetaTrackNameMsg:
			if msg.GetMetaTrackName(&s) {
				trackNames = append(trackNames, s)
			}
		case smf.MetaInstrumentMsg:
			if msg.GetMetaInstrument(&s) {
				instruments = append(instruments, s)
			}
		case smf.MetaTextMsg:
			if msg.GetMetaText(&s) {
				texts = append(texts, s)
			}
		case smf.MetaCopyrightMsg:
			if msg.GetMetaCopyright(&s) {
				copyrights = append(copyrights, s)
			}
		}
	}
	h.TrackName = strings.Join(trackNames, MultiSep)
	h.InstrumentName = strings.Join(instruments, MultiSep)
	h.Text = strings.Join(texts, MultiSep)
	h.Copyright = strings.Join(copyrights, MultiSep)
	return h, nil
}
