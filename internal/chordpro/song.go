package chordpro

import "strings"

// ParsedSong is the structured form of a ChordPro document
type ParsedSong struct {
	Title         *string       `json:"title"`
	Subtitle      *string       `json:"subtitle"`
	Artist        *string       `json:"artist"`
	Composer      *string       `json:"composer"`
	Key           *string       `json:"key"`
	Tempo         *int          `json:"tempo"`
	TimeSignature *string       `json:"time_signature"`
	Capo          *int          `json:"capo"`
	Sections      []SongSection `json:"sections"`
}

// SongSection is a block of lines such as a verse or chorus
type SongSection struct {
	Type  SectionType `json:"section_type"`
	Label *string     `json:"label"`
	Lines []SongLine  `json:"lines"`
}

// SongLine is a lyric line with chord brackets removed and the chords positioned over it
type SongLine struct {
	Text   string            `json:"text"`
	Chords []PositionedChord `json:"chords"`
}

// SectionType identifies the role of a section
type SectionType string

const (
	SectionVerse     SectionType = "verse"
	SectionChorus    SectionType = "chorus"
	SectionBridge    SectionType = "bridge"
	SectionPreChorus SectionType = "pre_chorus"
	SectionIntro     SectionType = "intro"
	SectionOutro     SectionType = "outro"
	SectionInterlude SectionType = "interlude"
	SectionTag       SectionType = "tag"
	SectionEnding    SectionType = "ending"
	SectionOther     SectionType = "other"
)

// ParseSectionType maps a section keyword or one of its aliases to a SectionType.
// Matching is case-insensitive; unknown keywords map to SectionOther.
func ParseSectionType(s string) SectionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verse", "v":
		return SectionVerse
	case "chorus", "c":
		return SectionChorus
	case "bridge", "b":
		return SectionBridge
	case "prechorus", "pre-chorus", "pc":
		return SectionPreChorus
	case "intro":
		return SectionIntro
	case "outro":
		return SectionOutro
	case "interlude":
		return SectionInterlude
	case "tag":
		return SectionTag
	case "ending", "coda":
		return SectionEnding
	default:
		return SectionOther
	}
}

// DisplayName returns a human readable section heading
func (t SectionType) DisplayName() string {
	switch t {
	case SectionVerse:
		return "Verse"
	case SectionChorus:
		return "Chorus"
	case SectionBridge:
		return "Bridge"
	case SectionPreChorus:
		return "Pre-Chorus"
	case SectionIntro:
		return "Intro"
	case SectionOutro:
		return "Outro"
	case SectionInterlude:
		return "Interlude"
	case SectionTag:
		return "Tag"
	case SectionEnding:
		return "Ending"
	default:
		return ""
	}
}

// ChordNames returns the distinct chord symbols of a song in order of first appearance
func ChordNames(song ParsedSong) []string {
	seen := make(map[string]bool)
	var names []string
	for _, section := range song.Sections {
		for _, line := range section.Lines {
			for _, pc := range line.Chords {
				name := pc.Chord.String()
				if seen[name] {
					continue
				}
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
