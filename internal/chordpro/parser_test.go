package chordpro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const amazingGrace = `
{title: Amazing Grace}
{key: G}

{start_of_verse: 1}
[G]Amazing [G7]grace, how [C]sweet the [G]sound
That [G]saved a [Em]wretch like [D]me
{end_of_verse}

{start_of_chorus}
[G]I once was [C]lost, but [G]now am [D]found
Was [G]blind but [C]now I [G]see
{end_of_chorus}
`

func TestParse_SimpleSong(t *testing.T) {
	song := Parse(amazingGrace)

	require.NotNil(t, song.Title)
	assert.Equal(t, "Amazing Grace", *song.Title)
	require.NotNil(t, song.Key)
	assert.Equal(t, "G", *song.Key)
	require.Len(t, song.Sections, 2)

	verse := song.Sections[0]
	assert.Equal(t, SectionVerse, verse.Type)
	require.NotNil(t, verse.Label)
	assert.Equal(t, "1", *verse.Label)
	require.Len(t, verse.Lines, 2)

	first := verse.Lines[0]
	assert.Equal(t, "Amazing grace, how sweet the sound", first.Text)
	require.Len(t, first.Chords, 4)
	assert.Equal(t, "G", first.Chords[0].Chord.Root)
	assert.Equal(t, 0, first.Chords[0].Position)
	assert.Equal(t, "G7", first.Chords[1].Chord.String())
	assert.Equal(t, len("Amazing "), first.Chords[1].Position)

	chorus := song.Sections[1]
	assert.Equal(t, SectionChorus, chorus.Type)
	assert.Nil(t, chorus.Label)
}

func TestParse_AllDirectives(t *testing.T) {
	content := `
{title: Test}
{subtitle: Subtitle}
{artist: Artist Name}
{composer: Composer Name}
{key: Am}
{tempo: 120}
{time: 4/4}
{capo: 2}
`
	song := Parse(content)

	assert.Equal(t, "Test", *song.Title)
	assert.Equal(t, "Subtitle", *song.Subtitle)
	assert.Equal(t, "Artist Name", *song.Artist)
	assert.Equal(t, "Composer Name", *song.Composer)
	assert.Equal(t, "Am", *song.Key)
	assert.Equal(t, 120, *song.Tempo)
	assert.Equal(t, "4/4", *song.TimeSignature)
	assert.Equal(t, 2, *song.Capo)
	assert.Empty(t, song.Sections)
}

func TestParse_ShortDirectives(t *testing.T) {
	song := Parse("{t: Title}\n{st: Sub}\n{a: Artist}")

	assert.Equal(t, "Title", *song.Title)
	assert.Equal(t, "Sub", *song.Subtitle)
	assert.Equal(t, "Artist", *song.Artist)
}

func TestParse_DirectivesAreCaseInsensitiveAndLastWins(t *testing.T) {
	song := Parse("{TITLE: First}\n{Title: Second}\n{KEY: C}")

	assert.Equal(t, "Second", *song.Title)
	assert.Equal(t, "C", *song.Key)
}

func TestParse_InvalidNumbersLeaveFieldsUnset(t *testing.T) {
	song := Parse("{tempo: not_a_number}\n{capo: abc}")
	assert.Nil(t, song.Tempo)
	assert.Nil(t, song.Capo)

	song = Parse("{tempo}\n{capo:}")
	assert.Nil(t, song.Tempo)
	assert.Nil(t, song.Capo)
}

func TestParse_UnknownDirectiveIgnored(t *testing.T) {
	song := Parse("{x_custom: whatever}\n{define: Am base-fret 1}\nHello")

	require.Len(t, song.Sections, 1)
	require.Len(t, song.Sections[0].Lines, 1)
	assert.Equal(t, "Hello", song.Sections[0].Lines[0].Text)
}

func TestParse_CommentDirective(t *testing.T) {
	content := `
{start_of_verse}
[Am]First line
{c: This is a comment}
{comment: Another comment}
{end_of_verse}
`
	song := Parse(content)

	require.Len(t, song.Sections, 1)
	lines := song.Sections[0].Lines
	require.Len(t, lines, 3)
	assert.Equal(t, "This is a comment", lines[1].Text)
	assert.Empty(t, lines[1].Chords)
	assert.Equal(t, "Another comment", lines[2].Text)
}

func TestParse_CommentOutsideSectionIsDropped(t *testing.T) {
	song := Parse("{c: Intro comment}\n[C]Hello")

	require.Len(t, song.Sections, 1)
	require.Len(t, song.Sections[0].Lines, 1)
	assert.Equal(t, "Hello", song.Sections[0].Lines[0].Text)
}

func TestParse_SectionTypes(t *testing.T) {
	content := `
{start_of_chorus}
Chorus line
{end_of_chorus}
{start_of_bridge}
Bridge line
{end_of_bridge}
{start_of_tab}
e|---0---|
{end_of_tab}
`
	song := Parse(content)

	require.Len(t, song.Sections, 3)
	assert.Equal(t, SectionChorus, song.Sections[0].Type)
	assert.Equal(t, SectionBridge, song.Sections[1].Type)
	assert.Equal(t, SectionOther, song.Sections[2].Type)
}

func TestParse_ShortSectionMarkers(t *testing.T) {
	song := Parse("{so chorus: Refrain}\nSing\n{eo chorus}\n{SOVERSE}\nLine\n{EOVERSE}")

	require.Len(t, song.Sections, 2)
	assert.Equal(t, SectionChorus, song.Sections[0].Type)
	assert.Equal(t, "Refrain", *song.Sections[0].Label)
	assert.Equal(t, SectionVerse, song.Sections[1].Type)
}

func TestParse_AbbreviatedMarkersAreUnknownDirectives(t *testing.T) {
	song := Parse("{soc}\nSing\n{eoc}")

	require.Len(t, song.Sections, 1)
	assert.Equal(t, SectionVerse, song.Sections[0].Type)
	assert.Nil(t, song.Sections[0].Label)
	require.Len(t, song.Sections[0].Lines, 1)
	assert.Equal(t, "Sing", song.Sections[0].Lines[0].Text)
}

func TestParse_EndMarkerNeedNotMatchStart(t *testing.T) {
	song := Parse("{start_of_verse}\nLine\n{end_of_chorus}\nAfter")

	require.Len(t, song.Sections, 2)
	assert.Equal(t, SectionVerse, song.Sections[0].Type)
	// content after the close opens an implicit verse
	assert.Equal(t, SectionVerse, song.Sections[1].Type)
	assert.Equal(t, "After", song.Sections[1].Lines[0].Text)
}

func TestParse_EmptySectionIsDiscarded(t *testing.T) {
	song := Parse("{start_of_verse}\n{end_of_verse}")
	assert.Empty(t, song.Sections)

	song = Parse("{start_of_verse}\n{start_of_chorus}\nLine\n{end_of_chorus}")
	require.Len(t, song.Sections, 1)
	assert.Equal(t, SectionChorus, song.Sections[0].Type)
}

func TestParse_WithoutSectionMarkers(t *testing.T) {
	song := Parse("[Am]Just some [G]chords")

	require.Len(t, song.Sections, 1)
	section := song.Sections[0]
	assert.Equal(t, SectionVerse, section.Type)
	assert.Nil(t, section.Label)
	assert.Equal(t, "Just some chords", section.Lines[0].Text)
}

func TestParse_EmptyLinesInsideSection(t *testing.T) {
	content := `
{start_of_verse}
First line

Second line
{end_of_verse}
`
	song := Parse(content)

	require.Len(t, song.Sections[0].Lines, 3)
	assert.Empty(t, song.Sections[0].Lines[1].Text)
	assert.Empty(t, song.Sections[0].Lines[1].Chords)
}

func TestParse_UnclosedSectionIsFlushed(t *testing.T) {
	song := Parse("{start_of_chorus}\n[C]La la\n")

	require.Len(t, song.Sections, 1)
	assert.Equal(t, SectionChorus, song.Sections[0].Type)
	// the trailing newline does not add an empty line
	assert.Len(t, song.Sections[0].Lines, 1)
}

func TestParse_InvalidChordTokenIsDropped(t *testing.T) {
	song := Parse("Hello [X7]world [N.C.]again [G]end")

	line := song.Sections[0].Lines[0]
	assert.Equal(t, "Hello world again end", line.Text)
	require.Len(t, line.Chords, 1)
	assert.Equal(t, "G", line.Chords[0].Chord.Root)
	assert.Equal(t, len("Hello world again "), line.Chords[0].Position)
}

func TestParse_PositionsCountRunes(t *testing.T) {
	song := Parse("[Am]Первая строка [G]песни")

	line := song.Sections[0].Lines[0]
	assert.Equal(t, "Первая строка песни", line.Text)
	require.Len(t, line.Chords, 2)
	assert.Equal(t, 0, line.Chords[0].Position)
	assert.Equal(t, 14, line.Chords[1].Position)
}

func TestParse_PositionsAreWithinTextAndNonDecreasing(t *testing.T) {
	song := Parse("[C][G]Hi [Am]there[F]")

	line := song.Sections[0].Lines[0]
	require.Len(t, line.Chords, 4)
	previous := 0
	for _, pc := range line.Chords {
		assert.GreaterOrEqual(t, pc.Position, previous)
		assert.LessOrEqual(t, pc.Position, len([]rune(line.Text)))
		previous = pc.Position
	}
	assert.Equal(t, len("Hi there"), line.Chords[3].Position)
}

func TestParse_DirectiveOnlyDocument(t *testing.T) {
	content := "{title: Test}\n{key: Am}"

	assert.Empty(t, Parse(content).Sections)
	assert.Equal(t, "", ExtractFirstLine(content))
}

func TestParse_CRLF(t *testing.T) {
	song := Parse("{title: Windows}\r\n[C]Line one\r\n[G]Line two\r\n")

	assert.Equal(t, "Windows", *song.Title)
	require.Len(t, song.Sections, 1)
	assert.Equal(t, "Line two", song.Sections[0].Lines[1].Text)
}

func TestParseSectionType(t *testing.T) {
	tests := map[string]SectionType{
		"verse":      SectionVerse,
		"v":          SectionVerse,
		"Verse":      SectionVerse,
		"chorus":     SectionChorus,
		"c":          SectionChorus,
		"bridge":     SectionBridge,
		"b":          SectionBridge,
		"prechorus":  SectionPreChorus,
		"pre-chorus": SectionPreChorus,
		"pc":         SectionPreChorus,
		"intro":      SectionIntro,
		"outro":      SectionOutro,
		"interlude":  SectionInterlude,
		"tag":        SectionTag,
		"ending":     SectionEnding,
		"coda":       SectionEnding,
		"unknown":    SectionOther,
		"tab":        SectionOther,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseSectionType(input), input)
	}
}

func TestSectionType_DisplayName(t *testing.T) {
	assert.Equal(t, "Pre-Chorus", SectionPreChorus.DisplayName())
	assert.Equal(t, "Verse", SectionVerse.DisplayName())
	assert.Equal(t, "", SectionOther.DisplayName())
}

func TestStripChords(t *testing.T) {
	content := `
{title: Test Song}
[Am]Hello [G]world
[C]Second line
`
	assert.Equal(t, "Hello world\nSecond line", StripChords(content))
}

func TestStripChords_WithComment(t *testing.T) {
	assert.Equal(t, "Comment text\nHello", StripChords("{c: Comment text}\n[Am]Hello"))
}

func TestStripChords_DropsSectionMarkersAndEmptyLines(t *testing.T) {
	content := "{start_of_verse}\n[C]\n\nOne\n{c:}\n{end_of_verse}\n[G] Two [Xyz]"
	assert.Equal(t, "One\nTwo", StripChords(content))
}

func TestExtractFirstLine(t *testing.T) {
	content := `
{title: Test Song}
{key: Am}

[Am]Первая строка [G]песни
[C]Вторая строка
`
	assert.Equal(t, "Первая строка песни", ExtractFirstLine(content))
	assert.Equal(t, "Words", ExtractFirstLine("[C] [G]\n  [Am]Words"))
}

func TestExtractTitle(t *testing.T) {
	title, ok := ExtractTitle("{title: My Song}\n[Am]Hello")
	require.True(t, ok)
	assert.Equal(t, "My Song", title)

	title, ok = ExtractTitle("{t: Short Title}")
	require.True(t, ok)
	assert.Equal(t, "Short Title", title)

	_, ok = ExtractTitle("[Am]No title here")
	assert.False(t, ok)
}

func TestExtractKey(t *testing.T) {
	key, ok := ExtractKey("{key: Am}\n[Am]Hello")
	require.True(t, ok)
	assert.Equal(t, "Am", key)

	_, ok = ExtractKey("[Am]No key here")
	assert.False(t, ok)
}

func TestExtractors_AgreeWithParse(t *testing.T) {
	song := Parse(amazingGrace)

	title, ok := ExtractTitle(amazingGrace)
	require.True(t, ok)
	assert.Equal(t, *song.Title, title)

	key, ok := ExtractKey(amazingGrace)
	require.True(t, ok)
	assert.Equal(t, *song.Key, key)

	assert.Equal(t, song.Sections[0].Lines[0].Text, ExtractFirstLine(amazingGrace))
}

func TestHasChords(t *testing.T) {
	assert.True(t, HasChords(amazingGrace))
	assert.False(t, HasChords("{title: Hymn}\nWords only"))
	assert.False(t, HasChords("Words [N.C.] only"))
}

func TestChordNames(t *testing.T) {
	names := ChordNames(Parse(amazingGrace))
	assert.Equal(t, []string{"G", "G7", "C", "Em", "D"}, names)
}
