// Package profile holds the capability profile of the target instrument: the
// message subset the hardware accepts, as declarative tables derived from its
// published MIDI implementation chart. The engine consults a Profile for every
// event; swapping target hardware means swapping the tables, not the engine.
package profile

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// sysexTerminator is the reserved end-of-exclusive byte. A mask template
// ending in it anchors the match to the exact message length.
const sysexTerminator = 0xF7

// ByteMask is a system-exclusive mask template. Each byte is a bitmask; a
// candidate byte matches when it is a bitwise subset of the mask byte.
type ByteMask []byte

// Matches reports whether data matches the template. A terminator-anchored
// template requires equal length and a subset match on every byte. Any other
// template matches on the overlapping prefix only, so it accepts whole
// message families that share a header.
func (m ByteMask) Matches(data []byte) bool {
	if len(m) == 0 {
		return false
	}
	if m[len(m)-1] == sysexTerminator {
		if len(data) != len(m) {
			return false
		}
		return subset(data, m)
	}
	n := len(m)
	if len(data) < n {
		n = len(data)
	}
	return subset(data[:n], m[:n])
}

func subset(data, mask []byte) bool {
	for i, d := range data {
		if d&^mask[i] != 0 {
			return false
		}
	}
	return true
}

// MatchesAny reports whether data matches at least one template in masks.
func MatchesAny(data []byte, masks []ByteMask) bool {
	for _, m := range masks {
		if m.Matches(data) {
			return true
		}
	}
	return false
}

// Profile describes which MIDI messages a target instrument accepts.
// It is read-only after construction and safe for concurrent use.
type Profile struct {
	// ProgramChange holds the legal program numbers.
	ProgramChange map[uint8]bool
	// ControlChange maps a controller number to its legal value set.
	// Controllers absent from the map are rejected outright.
	ControlChange map[uint8]map[uint8]bool
	// PolyAftertouch and PitchBend gate the respective channel messages.
	PolyAftertouch bool
	PitchBend      bool
	// Meta flags each meta message type the instrument tolerates.
	// Types absent from the map are rejected.
	Meta map[midi.Type]bool
	// SysexAccepted lists the mask templates of device-acceptable
	// system-exclusive messages.
	SysexAccepted []ByteMask
	// SysexHandInserted lists templates of messages the converter inserts
	// verbatim itself; matching input messages are rejected so the inserted
	// copy is never duplicated.
	SysexHandInserted []ByteMask

	// InitialTiming is emitted unconditionally at the head of every
	// converted track (default tempo and time signature).
	InitialTiming []smf.Event
	// SequencerSpecific, HandInsertedSysex and PresetChanges form the
	// hardware-mandated preamble, emitted in that order just before the
	// first performance message.
	SequencerSpecific []smf.Event
	HandInsertedSysex []smf.Event
	PresetChanges     []smf.Event
}

// IsValid reports whether the instrument accepts msg. It is a pure predicate
// over the profile tables and the message fields.
func (p *Profile) IsValid(msg smf.Message) bool {
	if msg.IsMeta() {
		return p.Meta[msg.Type()]
	}

	var ch, key, vel, ctl, val, prog, press uint8
	switch {
	case msg.GetNoteOn(&ch, &key, &vel), msg.GetNoteOff(&ch, &key, &vel):
		return key < 0x80 && vel < 0x80
	case msg.GetPolyAfterTouch(&ch, &key, &press):
		return p.PolyAftertouch
	case msg.GetControlChange(&ch, &ctl, &val):
		vals, ok := p.ControlChange[ctl]
		return ok && vals[val]
	case msg.GetProgramChange(&ch, &prog):
		return p.ProgramChange[prog]
	case msg.GetAfterTouch(&ch, &press):
		return ch < 16
	case isPitchBend(msg):
		return p.PitchBend
	case msg.Is(midi.SysExMsg):
		frame := SysexFrame(msg)
		return !MatchesAny(frame, p.SysexHandInserted) &&
			MatchesAny(frame, p.SysexAccepted)
	}
	return false
}

func isPitchBend(msg smf.Message) bool {
	var ch uint8
	var rel int16
	var abs uint16
	return msg.GetPitchBend(&ch, &rel, &abs)
}

// SysexFrame returns the full wire frame of a system-exclusive message,
// including the F0 start and F7 end bytes, which is what the mask templates
// are written against.
func SysexFrame(msg smf.Message) []byte {
	var data []byte
	if !msg.GetSysEx(&data) {
		return nil
	}
	frame := make([]byte, 0, len(data)+2)
	frame = append(frame, 0xF0)
	frame = append(frame, data...)
	frame = append(frame, sysexTerminator)
	return frame
}
