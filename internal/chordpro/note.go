package chordpro

import "strings"

// Note is one of the twelve pitch classes
type Note int

const (
	NoteC Note = iota
	NoteCSharp
	NoteD
	NoteDSharp
	NoteE
	NoteF
	NoteFSharp
	NoteG
	NoteGSharp
	NoteA
	NoteASharp
	NoteB
)

const semitonesPerOctave = 12

var sharpNames = [semitonesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flatNames = [semitonesPerOctave]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// ParseNote parses a note name such as "C", "F#", "Bb" or "H".
// Only the first two runes are inspected, so "Am7" parses as A.
// isFlat reports whether the spelling used a flat.
func ParseNote(s string) (note Note, isFlat bool, ok bool) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) == 0 {
		return 0, false, false
	}

	base := upperASCII(runes[0])
	var modifier rune
	if len(runes) > 1 {
		modifier = runes[1]
	}

	switch base {
	case 'C':
		return withModifier(modifier, NoteCSharp, NoteC, NoteB)
	case 'D':
		return withModifier(modifier, NoteDSharp, NoteD, NoteCSharp)
	case 'E':
		return withModifier(modifier, NoteF, NoteE, NoteDSharp)
	case 'F':
		return withModifier(modifier, NoteFSharp, NoteF, NoteE)
	case 'G':
		return withModifier(modifier, NoteGSharp, NoteG, NoteFSharp)
	case 'A':
		return withModifier(modifier, NoteASharp, NoteA, NoteGSharp)
	case 'B':
		return withModifier(modifier, NoteC, NoteB, NoteASharp)
	case 'H':
		// German notation: H is B natural and takes no accidentals
		return NoteB, false, true
	default:
		return 0, false, false
	}
}

func withModifier(modifier rune, sharp, natural, flat Note) (Note, bool, bool) {
	switch modifier {
	case '#':
		return sharp, false, true
	case 'b':
		return flat, true, true
	default:
		return natural, false, true
	}
}

func upperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// NoteFromSemitone maps a semitone index to a note, wrapping modulo 12
func NoteFromSemitone(semitone int) Note {
	return Note(euclidMod(semitone, semitonesPerOctave))
}

// Semitone returns the index of the note above C (0-11)
func (n Note) Semitone() int {
	return euclidMod(int(n), semitonesPerOctave)
}

// Transpose shifts the note by the given number of semitones in either direction
func (n Note) Transpose(semitones int) Note {
	return NoteFromSemitone(n.Semitone() + semitones)
}

// Sharp returns the sharp spelling (C#, D#, ...)
func (n Note) Sharp() string {
	return sharpNames[n.Semitone()]
}

// Flat returns the flat spelling (Db, Eb, ...)
func (n Note) Flat() string {
	return flatNames[n.Semitone()]
}

// Spell renders the note with flats or sharps
func (n Note) Spell(useFlats bool) string {
	if useFlats {
		return n.Flat()
	}
	return n.Sharp()
}

func (n Note) String() string {
	return n.Sharp()
}

func euclidMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
