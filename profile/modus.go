package profile

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Modus is the capability profile of the Yamaha Modus / Clavinova F and H
// series pianos, transcribed from the F11/F01 Data List,
// https://usa.yamaha.com/files/download/other_assets/4/335434/f11_en_de_fr_es_dl_a0_v100.pdf
//
// It is constructed once and never mutated; every conversion in the process
// shares it.
var Modus = newModus()

// Sysex mask templates from the Data List, pages 18-21 and 25. Templates
// ending in F7 match whole messages; the rest match message-family prefixes.
var (
	maskMasterVolume         = ByteMask{0xF0, 0x7F, 0x7F, 0x04, 0x01, 0x7F, 0xF7}
	maskMasterFineTuning     = ByteMask{0xF0, 0x7F, 0x7F, 0x04, 0x03, 0x7F, 0x7F, 0xF7}
	maskMasterCoarseTuning   = ByteMask{0xF0, 0x7F, 0x7F, 0x04, 0x04, 0x00, 0x7F, 0xF7}
	maskReverbParameter      = ByteMask{0xF0, 0x7F, 0x7F, 0x04, 0x05, 0x01, 0x01, 0x01, 0x01, 0x02, 0x7F}
	maskChorusParameter      = ByteMask{0xF0, 0x7F, 0x7F, 0x09, 0x01, 0x0F, 0x7F}
	maskChannelPressure      = ByteMask{0xF0, 0x7F, 0x7F, 0x09, 0x03, 0x0F}
	maskController           = ByteMask{0xF0, 0x7F, 0x7F, 0x0A, 0x01, 0x0F, 0x7F}
	maskKeyBasedInstrument   = ByteMask{0xF0, 0x7E, 0x7F, 0x09, 0x01, 0xF7}
	maskGMSystemOff          = ByteMask{0xF0, 0x7E, 0x7F, 0x09, 0x02, 0xF7}
	maskScaleOctaveTuning    = ByteMask{0xF0, 0x7E, 0x7F, 0x08, 0x08}
	maskInternalClock        = ByteMask{0xF0, 0x43, 0x73, 0x01, 0x02, 0xF7}
	maskExternalClock        = ByteMask{0xF0, 0x43, 0x73, 0x01, 0x03, 0xF7}
	maskStringResonanceDepth = ByteMask{0xF0, 0x43, 0x73, 0x01, 0x50, 0x11, 0x0F, 0x02, 0x3F, 0xF7}
	maskSustainSampleDepth   = ByteMask{0xF0, 0x43, 0x73, 0x01, 0x50, 0x11, 0x0F, 0x03, 0x3F, 0xF7}
	maskKeyOffSamplingDepth  = ByteMask{0xF0, 0x43, 0x73, 0x01, 0x50, 0x11, 0x0F, 0x04, 0x3F, 0xF7}
	maskSoftPedalDepth       = ByteMask{0xF0, 0x43, 0x73, 0x01, 0x50, 0x11, 0x0F, 0x05, 0x3F, 0xF7}
	maskMIDIMasterTuning     = ByteMask{0xF0, 0x43, 0x1F, 0x27, 0x30, 0x00, 0x00, 0x0F, 0x0F, 0x7F, 0xF7}
	maskPanelDataTransmit    = ByteMask{0xF0, 0x43, 0x0F, 0x7C}
	maskUniversalRealtime    = ByteMask{0xF0, 0x7F, 0x7F, 0x04, 0x01, 0x7F, 0x7F, 0xF7}
	maskGMModeOn             = ByteMask{0xF0, 0x7E, 0x7F, 0x09, 0x01, 0xF7}
	maskXGNativeBulkData     = ByteMask{0xF0, 0x43, 0x0F, 0x4C, 0x7F, 0x7F, 0x7F, 0x7F, 0x7F}

	// Inserted verbatim by the converter, never passed through from input.
	maskGM1SystemOn         = ByteMask{0xF0, 0x7E, 0x7F, 0x09, 0x01, 0xF7}
	maskGM2SystemOn         = ByteMask{0xF0, 0x7E, 0x7F, 0x09, 0x03, 0xF7}
	maskXGNativeParamChange = ByteMask{0xF0, 0x43, 0x1F, 0x4C, 0x7F, 0x7F, 0x7F, 0x7F, 0xF7}
)

// gm1SystemOn and xgMasterTune are the handshake payloads (without frame
// bytes) the converter writes into every track before the first note.
var (
	gm1SystemOn  = []byte{0x7E, 0x7F, 0x09, 0x01}
	xgMasterTune = []byte{0x43, 0x10, 0x4C, 0x00, 0x00, 0x7E, 0x00}
)

func newModus() *Profile {
	p := &Profile{
		// Data List page 9.
		ProgramChange: boolSet(0, 1, 4, 5, 6, 11, 16, 19, 24, 32, 33, 48, 49, 88),
		// Data List page 10. Mode and channel-mode controllers accept
		// only the listed values.
		ControlChange: map[uint8]map[uint8]bool{
			0:   boolSet(0, 8, 64, 118, 119, 120, 121, 126, 127),
			120: boolSet(0),
			121: boolSet(0),
			122: boolSet(0, 127),
			123: boolSet(0),
			124: boolSet(0),
			125: boolSet(0),
			126: rangeSet(0, 17),
			127: boolSet(0),
		},
		PolyAftertouch: true,
		PitchBend:      true,
		Meta: map[midi.Type]bool{
			smf.MetaSeqNumberMsg:   true,
			smf.MetaTextMsg:        true,
			smf.MetaCopyrightMsg:   true,
			smf.MetaTrackNameMsg:   true,
			smf.MetaInstrumentMsg:  true,
			smf.MetaLyricMsg:       true,
			smf.MetaMarkerMsg:      true,
			smf.MetaCuepointMsg:    false,
			smf.MetaDeviceMsg:      true,
			smf.MetaChannelMsg:     true,
			smf.MetaPortMsg:        true,
			smf.MetaEndOfTrackMsg:  true,
			smf.MetaTempoMsg:       true,
			smf.MetaSMPTEOffsetMsg: true,
			smf.MetaTimeSigMsg:     true,
			smf.MetaKeySigMsg:      true,
			smf.MetaSeqDataMsg:     false,
		},
		SysexAccepted: []ByteMask{
			maskMasterVolume,
			maskMasterFineTuning,
			maskMasterCoarseTuning,
			maskReverbParameter,
			maskChorusParameter,
			maskChannelPressure,
			maskController,
			maskKeyBasedInstrument,
			maskGMSystemOff,
			maskScaleOctaveTuning,
			maskInternalClock,
			maskExternalClock,
			maskStringResonanceDepth,
			maskSustainSampleDepth,
			maskKeyOffSamplingDepth,
			maskSoftPedalDepth,
			maskMIDIMasterTuning,
			maskPanelDataTransmit,
			maskUniversalRealtime,
			maskGMModeOn,
			maskXGNativeBulkData,
		},
		SysexHandInserted: []ByteMask{
			maskGM1SystemOn,
			maskGM2SystemOn,
			maskXGNativeParamChange,
		},

		// Hardware defaults: 100 bpm (600000 us per beat) in 4/4.
		InitialTiming: []smf.Event{
			{Delta: 0, Message: smf.MetaTempo(100)},
			{Delta: 0, Message: smf.MetaTimeSig(4, 4, 24, 8)},
		},
		SequencerSpecific: []smf.Event{
			{Delta: 0, Message: smf.MetaSequencerData([]byte{67, 123, 0, 88, 70, 48, 50, 0, 27})},
			{Delta: 0, Message: smf.MetaSequencerData([]byte{67, 113, 0, 1, 0, 1, 0})},
			{Delta: 0, Message: smf.MetaSequencerData([]byte{67, 113, 0, 0, 0, 65})},
			{Delta: 0, Message: smf.MetaSequencerData([]byte{67, 123, 12, 1, 0})},
		},
		// GM System On immediately, then the XG master tune handshake after
		// a beat so the instrument has time to reset.
		HandInsertedSysex: []smf.Event{
			{Delta: 0, Message: smf.Message(midi.SysEx(gm1SystemOn))},
			{Delta: 960, Message: smf.Message(midi.SysEx(xgMasterTune))},
		},
		PresetChanges: []smf.Event{
			{Delta: 960, Message: smf.Message(midi.ControlChange(0, 0, 0))},
			{Delta: 10, Message: smf.Message(midi.ControlChange(0, 32, 0))},
			{Delta: 10, Message: smf.Message(midi.ProgramChange(0, 0))},
			{Delta: 10, Message: smf.Message(midi.ControlChange(0, 7, 127))},
			{Delta: 10, Message: smf.Message(midi.ControlChange(0, 11, 127))},
			{Delta: 10, Message: smf.Message(midi.ControlChange(0, 10, 64))},
			{Delta: 10, Message: smf.Message(midi.ControlChange(0, 91, 22))},
			{Delta: 10, Message: smf.Message(midi.ControlChange(0, 93, 0))},
		},
	}

	// Continuous controllers take the full 0-127 range.
	for _, ctl := range []uint8{
		1, 5, 6, 7, 10, 11, 32, 38, 64, 65, 66, 67, 71, 72, 73, 74, 75,
		76, 77, 78, 84, 91, 93, 94, 96, 97, 98, 99, 100, 101,
	} {
		p.ControlChange[ctl] = rangeSet(0, 128)
	}
	return p
}

func boolSet(vals ...uint8) map[uint8]bool {
	s := make(map[uint8]bool, len(vals))
	for _, v := range vals {
		s[v] = true
	}
	return s
}

// rangeSet returns the set of values in [lo, hi).
func rangeSet(lo, hi int) map[uint8]bool {
	s := make(map[uint8]bool, hi-lo)
	for v := lo; v < hi; v++ {
		s[uint8(v)] = true
	}
	return s
}
