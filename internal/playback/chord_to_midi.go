package playback

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Conceptual-Machines/chordbook-api/internal/chordpro"
)

// DefaultOctave places chord roots around middle C
const DefaultOctave = 4

const (
	midiMin = 0
	midiMax = 127
)

// qualityIntervals maps a chord quality prefix to semitone offsets from the root.
// Lookup tries the longest prefix first so "m7b5" wins over "m7" and "m".
var qualityIntervals = map[string][]int{
	"":      {0, 4, 7},
	"maj":   {0, 4, 7},
	"M":     {0, 4, 7},
	"m":     {0, 3, 7},
	"min":   {0, 3, 7},
	"-":     {0, 3, 7},
	"dim":   {0, 3, 6},
	"o":     {0, 3, 6},
	"aug":   {0, 4, 8},
	"+":     {0, 4, 8},
	"sus2":  {0, 2, 7},
	"sus":   {0, 5, 7},
	"sus4":  {0, 5, 7},
	"5":     {0, 7},
	"6":     {0, 4, 7, 9},
	"m6":    {0, 3, 7, 9},
	"7":     {0, 4, 7, 10},
	"7sus4": {0, 5, 7, 10},
	"maj7":  {0, 4, 7, 11},
	"M7":    {0, 4, 7, 11},
	"m7":    {0, 3, 7, 10},
	"min7":  {0, 3, 7, 10},
	"mmaj7": {0, 3, 7, 11},
	"dim7":  {0, 3, 6, 9},
	"o7":    {0, 3, 6, 9},
	"m7b5":  {0, 3, 6, 10},
	"9":     {0, 4, 7, 10, 14},
	"maj9":  {0, 4, 7, 11, 14},
	"m9":    {0, 3, 7, 10, 14},
	"add9":  {0, 4, 7, 14},
	"madd9": {0, 3, 7, 14},
	"11":    {0, 4, 7, 10, 14, 17},
	"13":    {0, 4, 7, 10, 14, 21},
}

var qualityPrefixes = sortedPrefixes()

func sortedPrefixes() []string {
	prefixes := make([]string, 0, len(qualityIntervals))
	for p := range qualityIntervals {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	return prefixes
}

// Intervals returns the semitone offsets for a chord quality such as "m7" or "sus4".
// Unknown qualities fall back to a major triad.
func Intervals(quality string) []int {
	for _, prefix := range qualityPrefixes {
		if strings.HasPrefix(quality, prefix) {
			return qualityIntervals[prefix]
		}
	}
	return qualityIntervals[""]
}

// ChordToMIDI converts a chord to MIDI note numbers (C4 = 60).
// Slash chords get their bass note prepended one octave below the root.
func ChordToMIDI(chord chordpro.Chord, octave int) ([]int, error) {
	root, _, ok := chordpro.ParseNote(chord.Root)
	if !ok {
		return nil, fmt.Errorf("invalid chord root: %q", chord.Root)
	}

	rootMIDI := noteToMIDI(root, octave)
	intervals := Intervals(chord.Quality)

	notes := make([]int, 0, len(intervals)+1)
	if chord.HasBass() {
		if bass, _, ok := chordpro.ParseNote(chord.Bass); ok {
			if bassMIDI := noteToMIDI(bass, octave-1); inRange(bassMIDI) {
				notes = append(notes, bassMIDI)
			}
		}
	}

	for _, interval := range intervals {
		if n := rootMIDI + interval; inRange(n) {
			notes = append(notes, n)
		}
	}

	if len(notes) == 0 {
		return nil, fmt.Errorf("no valid MIDI notes generated for chord: %s", chord)
	}
	return notes, nil
}

func noteToMIDI(note chordpro.Note, octave int) int {
	return (octave+1)*12 + note.Semitone()
}

func inRange(n int) bool {
	return n >= midiMin && n <= midiMax
}
