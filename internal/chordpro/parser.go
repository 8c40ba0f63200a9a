// Package chordpro parses ChordPro songs into a structured document and transposes
// their chords between keys.
package chordpro

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Patterns are compiled once and only read afterwards, so they are safe for concurrent use.
var (
	// {name} or {name: value}
	directiveRe = regexp.MustCompile(`\{([\p{L}\p{N}_]+)(?::\s*([^}]*))?\}`)

	// [chord]; the first closing bracket ends the token
	chordTokenRe = regexp.MustCompile(`\[([^\]]+)\]`)

	sectionStartRe = regexp.MustCompile(
		`(?i)\{(?:start_of_|so\s*)(verse|chorus|bridge|tab|grid|abc|ly|textblock)(?::\s*([^}]*))?\}`,
	)

	sectionEndRe = regexp.MustCompile(`(?i)\{(?:end_of_|eo\s*)(verse|chorus|bridge|tab|grid|abc|ly|textblock)\}`)
)

// directive is the closed set of metadata directives understood by the parser
type directive int

const (
	directiveUnknown directive = iota
	directiveTitle
	directiveSubtitle
	directiveArtist
	directiveComposer
	directiveKey
	directiveTempo
	directiveTime
	directiveCapo
	directiveComment
)

func lookupDirective(name string) directive {
	switch strings.ToLower(name) {
	case "title", "t":
		return directiveTitle
	case "subtitle", "st":
		return directiveSubtitle
	case "artist", "a":
		return directiveArtist
	case "composer":
		return directiveComposer
	case "key":
		return directiveKey
	case "tempo":
		return directiveTempo
	case "time":
		return directiveTime
	case "capo":
		return directiveCapo
	case "c", "comment":
		return directiveComment
	default:
		return directiveUnknown
	}
}

type directiveMatch struct {
	kind  directive
	value *string
}

// matchDirective finds the first {name[: value]} on the line
func matchDirective(line string) (directiveMatch, bool) {
	m := directiveRe.FindStringSubmatchIndex(line)
	if m == nil {
		return directiveMatch{}, false
	}
	return directiveMatch{
		kind:  lookupDirective(line[m[2]:m[3]]),
		value: optionalGroup(line, m, 2),
	}, true
}

// optionalGroup returns the trimmed text of a capture group, or nil when the group did not participate
func optionalGroup(s string, m []int, group int) *string {
	start, end := m[2*group], m[2*group+1]
	if start < 0 {
		return nil
	}
	v := strings.TrimSpace(s[start:end])
	return &v
}

// Parse converts ChordPro content into a ParsedSong. It never fails:
// unknown directives are ignored and malformed chord tokens are dropped.
func Parse(content string) ParsedSong {
	song := ParsedSong{Sections: []SongSection{}}

	// open is the section currently being filled; nil when none is open
	var open *SongSection
	for _, raw := range splitLines(content) {
		open = song.applyLine(open, strings.TrimSpace(raw))
	}
	song.flush(open)

	return song
}

// applyLine folds one trimmed line into the song and returns the section left open afterwards
func (s *ParsedSong) applyLine(open *SongSection, line string) *SongSection {
	if line == "" {
		if open != nil {
			open.Lines = append(open.Lines, SongLine{Chords: []PositionedChord{}})
		}
		return open
	}

	if m := sectionStartRe.FindStringSubmatchIndex(line); m != nil {
		s.flush(open)
		return &SongSection{
			Type:  ParseSectionType(line[m[2]:m[3]]),
			Label: optionalGroup(line, m, 2),
			Lines: []SongLine{},
		}
	}

	if sectionEndRe.MatchString(line) {
		s.flush(open)
		return nil
	}

	if d, ok := matchDirective(line); ok {
		s.applyDirective(open, d)
		return open
	}

	songLine := parseLine(line)
	if open != nil {
		open.Lines = append(open.Lines, songLine)
		return open
	}
	if songLine.Text != "" || len(songLine.Chords) > 0 {
		return &SongSection{
			Type:  SectionVerse,
			Lines: []SongLine{songLine},
		}
	}
	return nil
}

func (s *ParsedSong) applyDirective(open *SongSection, d directiveMatch) {
	switch d.kind {
	case directiveTitle:
		s.Title = d.value
	case directiveSubtitle:
		s.Subtitle = d.value
	case directiveArtist:
		s.Artist = d.value
	case directiveComposer:
		s.Composer = d.value
	case directiveKey:
		s.Key = d.value
	case directiveTempo:
		s.Tempo = parseOptionalInt(d.value)
	case directiveTime:
		s.TimeSignature = d.value
	case directiveCapo:
		s.Capo = parseOptionalInt(d.value)
	case directiveComment:
		if open != nil && d.value != nil {
			open.Lines = append(open.Lines, SongLine{Text: *d.value, Chords: []PositionedChord{}})
		}
	case directiveUnknown:
		// unsupported directives are ignored
	}
}

// flush keeps a section only if it has at least one line
func (s *ParsedSong) flush(section *SongSection) {
	if section != nil && len(section.Lines) > 0 {
		s.Sections = append(s.Sections, *section)
	}
}

func parseOptionalInt(value *string) *int {
	if value == nil {
		return nil
	}
	n, err := strconv.ParseInt(*value, 10, 32)
	if err != nil {
		return nil
	}
	v := int(n)
	return &v
}

// parseLine strips chord tokens from a line and positions the parsed chords over the remaining text
func parseLine(line string) SongLine {
	out := SongLine{Chords: []PositionedChord{}}

	var text strings.Builder
	position, last := 0, 0
	for _, m := range chordTokenRe.FindAllStringSubmatchIndex(line, -1) {
		segment := line[last:m[0]]
		text.WriteString(segment)
		position += utf8.RuneCountInString(segment)

		if chord, ok := ParseChord(line[m[2]:m[3]]); ok {
			out.Chords = append(out.Chords, PositionedChord{Position: position, Chord: chord})
		}
		last = m[1]
	}
	text.WriteString(line[last:])
	out.Text = text.String()

	return out
}

// StripChords returns the lyrics as plain text: directive lines are dropped except
// comments, chord tokens are removed and empty lines are skipped.
func StripChords(content string) string {
	var b strings.Builder
	for _, raw := range splitLines(content) {
		line := strings.TrimSpace(raw)

		if isDirectiveLine(line) {
			if d, ok := matchDirective(line); ok && d.kind == directiveComment && d.value != nil && *d.value != "" {
				b.WriteString(*d.value)
				b.WriteByte('\n')
			}
			continue
		}

		if plain := strings.TrimSpace(removeChordTokens(line)); plain != "" {
			b.WriteString(plain)
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}

// ExtractFirstLine returns the first lyric line without chords, or "" when there is none
func ExtractFirstLine(content string) string {
	for _, raw := range splitLines(content) {
		line := strings.TrimSpace(raw)
		if line == "" || isDirectiveLine(line) {
			continue
		}
		if plain := strings.TrimSpace(removeChordTokens(line)); plain != "" {
			return plain
		}
	}
	return ""
}

// ExtractTitle returns the value of the first title directive
func ExtractTitle(content string) (string, bool) {
	return extractDirective(content, directiveTitle)
}

// ExtractKey returns the value of the first key directive
func ExtractKey(content string) (string, bool) {
	return extractDirective(content, directiveKey)
}

// extractDirective stops at the first directive of the requested kind, even if it has no value
func extractDirective(content string, kind directive) (string, bool) {
	for _, raw := range splitLines(content) {
		d, ok := matchDirective(strings.TrimSpace(raw))
		if !ok || d.kind != kind {
			continue
		}
		if d.value == nil {
			return "", false
		}
		return *d.value, true
	}
	return "", false
}

// HasChords reports whether any lyric line carries a parseable chord token
func HasChords(content string) bool {
	for _, raw := range splitLines(content) {
		line := strings.TrimSpace(raw)
		if isDirectiveLine(line) {
			continue
		}
		for _, m := range chordTokenRe.FindAllStringSubmatch(line, -1) {
			if _, ok := ParseChord(m[1]); ok {
				return true
			}
		}
	}
	return false
}

func isDirectiveLine(line string) bool {
	return strings.HasPrefix(line, "{") && strings.HasSuffix(line, "}")
}

func removeChordTokens(line string) string {
	return chordTokenRe.ReplaceAllLiteralString(line, "")
}

// splitLines splits on \n and drops a trailing \r from each line. A final
// newline does not produce an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
