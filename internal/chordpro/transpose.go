package chordpro

import (
	"regexp"
	"strings"
)

// keyDirectiveRe matches {key: X}; only the first occurrence is rewritten
var keyDirectiveRe = regexp.MustCompile(`(?i)\{key:\s*([^}]+)\}`)

// CommonKeys lists the keys offered for quick transposition
var CommonKeys = []string{
	"C", "C#", "Db", "D", "D#", "Eb", "E", "F", "F#", "Gb", "G", "G#", "Ab", "A", "A#", "Bb", "B",
	"Cm", "C#m", "Dm", "D#m", "Ebm", "Em", "Fm", "F#m", "Gm", "G#m", "Am", "A#m", "Bbm", "Bm",
}

// TransposeContent shifts the key directive and every bracketed chord by semitones
// (positive is up). The text is rewritten in place so everything else is preserved
// byte for byte. Tokens that do not start with a note are left alone.
func TransposeContent(content string, semitones int) string {
	return TransposeContentSpelled(content, semitones, ShouldUseFlats(content, semitones))
}

// TransposeContentSpelled is TransposeContent with the sharp/flat spelling chosen by the caller
func TransposeContentSpelled(content string, semitones int, useFlats bool) string {
	if semitones == 0 {
		return content
	}

	if m := keyDirectiveRe.FindStringSubmatchIndex(content); m != nil {
		key := strings.TrimSpace(content[m[2]:m[3]])
		content = content[:m[0]] + "{key: " + TransposeKey(key, semitones, useFlats) + "}" + content[m[1]:]
	}

	return chordTokenRe.ReplaceAllStringFunc(content, func(token string) string {
		inner := token[1 : len(token)-1]
		return "[" + transposeChordText(inner, semitones, useFlats) + "]"
	})
}

// TransposeKey transposes a key such as "G" or "F#m", keeping any suffix
func TransposeKey(key string, semitones int, useFlats bool) string {
	return transposeChordText(key, semitones, useFlats)
}

// transposeChordText works on the raw token text so that qualities and bass suffixes survive untouched
func transposeChordText(chord string, semitones int, useFlats bool) string {
	chord = strings.TrimSpace(chord)
	if chord == "" {
		return chord
	}

	if idx := strings.LastIndex(chord, "/"); idx >= 0 {
		main := transposeLeadingNote(chord[:idx], semitones, useFlats)
		bass := transposeLeadingNote(strings.TrimSpace(chord[idx+1:]), semitones, useFlats)
		return main + "/" + bass
	}

	return transposeLeadingNote(chord, semitones, useFlats)
}

// transposeLeadingNote replaces the root note at the start of s and keeps the rest verbatim
func transposeLeadingNote(s string, semitones int, useFlats bool) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}

	n := rootLength(runes)
	note, _, ok := ParseNote(string(runes[:n]))
	if !ok {
		return s
	}

	return note.Transpose(semitones).Spell(useFlats) + string(runes[n:])
}

// ShouldUseFlats decides the spelling for a transposition from the content's
// first key directive. Without a parseable key directive sharps are used.
func ShouldUseFlats(content string, semitones int) bool {
	m := keyDirectiveRe.FindStringSubmatch(content)
	if m == nil {
		return false
	}
	useFlats, _ := KeyUsesFlats(m[1], semitones)
	return useFlats
}

// KeyUsesFlats reports whether shifting key by semitones should be spelled with
// flats. A flat key keeps flats; otherwise flats are used only when the new key
// lands on D#, G# or A#. ok is false when key does not start with a note.
func KeyUsesFlats(key string, semitones int) (useFlats, ok bool) {
	note, isFlat, ok := ParseNote(strings.TrimSpace(key))
	if !ok {
		return false, false
	}
	if isFlat {
		return true, true
	}

	switch note.Transpose(semitones) {
	case NoteDSharp, NoteGSharp, NoteASharp:
		return true, true
	default:
		return false, true
	}
}

// SemitonesBetween returns the upward distance (0-11) from one key to another.
// Only the root of each key is considered.
func SemitonesBetween(from, to string) (int, bool) {
	fromNote, _, ok := ParseNote(from)
	if !ok {
		return 0, false
	}
	toNote, _, ok := ParseNote(to)
	if !ok {
		return 0, false
	}
	return euclidMod(toNote.Semitone()-fromNote.Semitone(), semitonesPerOctave), true
}
