// Package templates renders the HTML views as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Conceptual-Machines/chordbook-api/internal/chordpro"
	"github.com/Conceptual-Machines/chordbook-api/internal/models"
	"github.com/a-h/templ"
)

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem;color:#222}
.meta{color:#666}.section{margin:1.5rem 0}.section h2{font-size:1rem;text-transform:uppercase;color:#888}
.line{display:flex;flex-wrap:wrap;white-space:pre;min-height:1.2em}.seg{display:inline-flex;flex-direction:column}
.chord{color:#b0306a;font-weight:bold;min-height:1.2em;padding-right:.4em}.legend span{margin-right:.6em}
nav a{margin-right:.8em}`

// SongPage renders a song, already transposed, with chords placed above the lyrics
func SongPage(song *models.TransposedSong, parsed chordpro.ParsedSong) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		fmt.Fprintf(&b, "<title>%s</title><style>%s</style></head><body>", templ.EscapeString(song.Title), pageStyle)

		fmt.Fprintf(&b, "<h1>%s</h1>", templ.EscapeString(song.Title))
		writeMeta(&b, song)
		writeTransposeNav(&b, song)
		writeLegend(&b, chordpro.ChordNames(parsed))

		for _, section := range parsed.Sections {
			writeSection(&b, section)
		}

		b.WriteString("</body></html>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeMeta(b *strings.Builder, song *models.TransposedSong) {
	var parts []string
	if song.AuthorMusic != nil {
		parts = append(parts, "Music: "+*song.AuthorMusic)
	}
	if song.AuthorLyrics != nil {
		parts = append(parts, "Lyrics: "+*song.AuthorLyrics)
	}
	if song.CurrentKey != nil {
		parts = append(parts, "Key: "+*song.CurrentKey)
	}
	if song.Tempo != nil {
		parts = append(parts, fmt.Sprintf("%d bpm", *song.Tempo))
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintf(b, "<p class=\"meta\">%s</p>", templ.EscapeString(strings.Join(parts, " · ")))
}

func writeTransposeNav(b *strings.Builder, song *models.TransposedSong) {
	base := "/songs/" + song.ID.String()
	b.WriteString("<nav>")
	fmt.Fprintf(b, "<a href=\"%s?transpose=%d\">-1</a>", base, song.Semitones-1)
	fmt.Fprintf(b, "<a href=\"%s\">original</a>", base)
	fmt.Fprintf(b, "<a href=\"%s?transpose=%d\">+1</a>", base, song.Semitones+1)
	fmt.Fprintf(b, "<a href=\"/api/v1/songs/%s/midi?transpose=%d\">MIDI</a>", song.ID, song.Semitones)
	b.WriteString("</nav>")
}

func writeLegend(b *strings.Builder, chords []string) {
	if len(chords) == 0 {
		return
	}
	b.WriteString("<p class=\"legend\">")
	for _, name := range chords {
		fmt.Fprintf(b, "<span class=\"chord\">%s</span>", templ.EscapeString(name))
	}
	b.WriteString("</p>")
}

func writeSection(b *strings.Builder, section chordpro.SongSection) {
	heading := section.Type.DisplayName()
	if section.Label != nil && *section.Label != "" {
		heading = *section.Label
	}
	fmt.Fprintf(b, "<div class=\"section %s\"><h2>%s</h2>", section.Type, templ.EscapeString(heading))
	for _, line := range section.Lines {
		writeLine(b, line)
	}
	b.WriteString("</div>")
}

// writeLine splits the lyric at each chord position so the chord sits above the syllable it belongs to
func writeLine(b *strings.Builder, line chordpro.SongLine) {
	b.WriteString("<div class=\"line\">")
	text := []rune(line.Text)

	start := 0
	chord := ""
	flush := func(end int) {
		end = min(end, len(text))
		if end <= start && chord == "" {
			return
		}
		segment := ""
		if end > start {
			segment = string(text[start:end])
		}
		fmt.Fprintf(b, "<span class=\"seg\"><span class=\"chord\">%s</span><span>%s</span></span>",
			templ.EscapeString(chord), templ.EscapeString(segment))
		start = max(start, end)
	}

	for _, pc := range line.Chords {
		flush(pc.Position)
		chord = pc.Chord.String()
	}
	flush(len(text))

	b.WriteString("</div>")
}

// NotFoundPage is shown for unknown songs
func NotFoundPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>Not found</title></head>"+
			"<body><h1>Song not found</h1><p><a href=\"/\">Back</a></p></body></html>")
		return err
	})
}
