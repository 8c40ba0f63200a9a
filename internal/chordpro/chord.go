package chordpro

import "strings"

// Chord is a chord symbol split into root, quality and optional bass note.
// Root and Bass keep their source spelling; Bass is empty when absent.
type Chord struct {
	Root    string `json:"root"`
	Quality string `json:"quality"`
	Bass    string `json:"bass,omitempty"`
}

// PositionedChord is a chord anchored at a rune offset of the owning line's text
type PositionedChord struct {
	Position int   `json:"position"`
	Chord    Chord `json:"chord"`
}

// ParseChord parses chord symbols like "Am7", "C#dim" or "G/B".
// A slash only separates a bass note when the text after the last slash is a note,
// so "Am/X" keeps "/X" in the quality.
func ParseChord(s string) (Chord, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Chord{}, false
	}

	main, bass := s, ""
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		if _, _, ok := ParseNote(s[idx+1:]); ok {
			main, bass = s[:idx], s[idx+1:]
		}
	}

	runes := []rune(main)
	if len(runes) == 0 {
		return Chord{}, false
	}

	n := rootLength(runes)
	root := string(runes[:n])
	if _, _, ok := ParseNote(root); !ok {
		return Chord{}, false
	}

	return Chord{
		Root:    root,
		Quality: string(runes[n:]),
		Bass:    bass,
	}, true
}

// rootLength returns how many leading runes form the root note: two when an
// accidental follows the letter, otherwise one.
func rootLength(runes []rune) int {
	if len(runes) >= 2 && (runes[1] == '#' || runes[1] == 'b') {
		return 2
	}
	return 1
}

// HasBass reports whether the chord is a slash chord
func (c Chord) HasBass() bool {
	return c.Bass != ""
}

// Transpose returns the chord shifted by semitones. Root and bass are
// transposed independently; the quality is kept verbatim.
func (c Chord) Transpose(semitones int, useFlats bool) Chord {
	out := Chord{
		Root:    transposeNoteName(c.Root, semitones, useFlats),
		Quality: c.Quality,
	}
	if c.HasBass() {
		out.Bass = transposeNoteName(c.Bass, semitones, useFlats)
	}
	return out
}

func transposeNoteName(name string, semitones int, useFlats bool) string {
	note, _, ok := ParseNote(name)
	if !ok {
		return name
	}
	return note.Transpose(semitones).Spell(useFlats)
}

func (c Chord) String() string {
	if c.HasBass() {
		return c.Root + c.Quality + "/" + c.Bass
	}
	return c.Root + c.Quality
}
