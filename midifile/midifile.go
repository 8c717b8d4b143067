// Package midifile wraps reading, merging and writing of Standard MIDI Files
// on top of gitlab.com/gomidi/midi/v2/smf.
package midifile

import (
	"path/filepath"
	"regexp"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultSuffix is inserted before the file extension of converted files.
const DefaultSuffix = "_modus"

// midiRe matches a MIDI filename and captures the stem and the extension.
var midiRe = regexp.MustCompile(`(?i)^(.+)(\.midi?)$`)

// Parse reads a Standard MIDI File from disk.
func Parse(path string) (*smf.SMF, error) {
	return smf.ReadFile(path)
}

// Write serializes a single track to a type 0 file at path.
func Write(path string, track smf.Track, tf smf.TimeFormat) error {
	track.Close(0)
	out := smf.New()
	out.TimeFormat = tf
	out.Add(track)
	return out.WriteFile(path)
}

// IsMIDIPath reports whether name looks like a MIDI file (.mid or .midi,
// case-insensitive).
func IsMIDIPath(name string) bool {
	return midiRe.MatchString(name)
}

// OutputPath derives the converted filename: the suffix is inserted between
// the stem and the extension (song.mid -> song_modus.mid). A name without a
// MIDI extension gets the suffix appended so the input is never overwritten.
func OutputPath(path, suffix string) string {
	if m := midiRe.FindStringSubmatch(path); m != nil {
		return m[1] + suffix + m[2]
	}
	return path + suffix
}

// BaseName returns the filename without directory and MIDI extension,
// used to synthesize a track name for files that lack one.
func BaseName(path string) string {
	base := filepath.Base(path)
	if m := midiRe.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	return base
}

// timedEvent is an event stamped with its absolute tick for merging.
type timedEvent struct {
	tick int64
	msg  smf.Message
}

// MergeTracks flattens all tracks of a song into one delta-timed track,
// ordered by absolute tick. Ties keep track order, then event order, so the
// merge is deterministic. Interior end-of-track markers are dropped and a
// single end-of-track is appended at the latest tick seen in any track.
func MergeTracks(s *smf.SMF) smf.Track {
	var events []timedEvent
	var endTick int64
	for _, tr := range s.Tracks {
		var tick int64
		for _, ev := range tr {
			tick += int64(ev.Delta)
			if tick > endTick {
				endTick = tick
			}
			if ev.Message.Is(smf.MetaEndOfTrackMsg) {
				continue
			}
			events = append(events, timedEvent{tick: tick, msg: ev.Message})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	var merged smf.Track
	var last int64
	for _, te := range events {
		merged = append(merged, smf.Event{
			Delta:   uint32(te.tick - last),
			Message: te.msg,
		})
		last = te.tick
	}
	merged = append(merged, smf.Event{
		Delta:   uint32(endTick - last),
		Message: smf.EOT,
	})
	return merged
}
