// Package playback renders the chords of a song as a Standard MIDI File so a
// progression can be auditioned before it is played.
package playback

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/chordbook-api/internal/chordpro"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// DefaultTempo is used when neither the caller nor the song sets one
	DefaultTempo = 100

	ticksPerQuarter = 960
	chordChannel    = 0
	chordVelocity   = 90
	pianoProgram    = 0
)

// ErrNoChords is returned when a song has nothing to render
var ErrNoChords = errors.New("song has no chords")

// Progression returns every chord of the song in document order
func Progression(song chordpro.ParsedSong) []chordpro.Chord {
	var chords []chordpro.Chord
	for _, section := range song.Sections {
		for _, line := range section.Lines {
			for _, pc := range line.Chords {
				chords = append(chords, pc.Chord)
			}
		}
	}
	return chords
}

// WriteProgression writes a format 1 SMF holding a conductor track (meter, tempo)
// and a chord track with one bar per chord. A tempo <= 0 falls back to the
// song's tempo directive, then DefaultTempo.
func WriteProgression(w io.Writer, song chordpro.ParsedSong, tempo int) error {
	chords := Progression(song)
	if len(chords) == 0 {
		return ErrNoChords
	}

	if tempo <= 0 && song.Tempo != nil && *song.Tempo > 0 {
		tempo = *song.Tempo
	}
	if tempo <= 0 {
		tempo = DefaultTempo
	}

	num, denom := parseMeter(song.TimeSignature)
	resolution := smf.MetricTicks(ticksPerQuarter)
	barTicks := uint32(num) * resolution.Ticks4th() * 4 / uint32(denom)

	file := smf.NewSMF1()
	file.TimeFormat = resolution

	var conductor smf.Track
	if song.Title != nil {
		conductor.Add(0, smf.MetaTrackSequenceName(*song.Title))
	}
	conductor.Add(0, smf.MetaMeter(num, denom))
	conductor.Add(0, smf.MetaTempo(float64(tempo)))
	conductor.Close(0)

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("Chords"))
	track.Add(0, midi.ProgramChange(chordChannel, pianoProgram))

	var rest uint32
	for _, chord := range chords {
		notes, err := ChordToMIDI(chord, DefaultOctave)
		if err != nil {
			// a skipped chord leaves a silent bar
			rest += barTicks
			continue
		}

		for i, n := range notes {
			delta := uint32(0)
			if i == 0 {
				delta = rest
			}
			track.Add(delta, midi.NoteOn(chordChannel, uint8(n), chordVelocity))
		}
		for i, n := range notes {
			delta := uint32(0)
			if i == 0 {
				delta = barTicks
			}
			track.Add(delta, midi.NoteOff(chordChannel, uint8(n)))
		}
		rest = 0
	}
	track.Close(rest)

	if err := file.Add(conductor); err != nil {
		return fmt.Errorf("failed to add conductor track: %w", err)
	}
	if err := file.Add(track); err != nil {
		return fmt.Errorf("failed to add chord track: %w", err)
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return nil
}

// parseMeter reads "3/4" style signatures, defaulting to 4/4
func parseMeter(signature *string) (uint8, uint8) {
	if signature == nil {
		return 4, 4
	}

	parts := strings.SplitN(*signature, "/", 2)
	if len(parts) != 2 {
		return 4, 4
	}
	num, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 8)
	if err != nil || num == 0 {
		return 4, 4
	}
	denom, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 8)
	if err != nil || !isPowerOfTwo(denom) || denom > 32 {
		return 4, 4
	}
	return uint8(num), uint8(denom)
}

func isPowerOfTwo(n uint64) bool {
	return n > 0 && n&(n-1) == 0
}
