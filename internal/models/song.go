package models

import (
	"strings"
	"time"

	"github.com/Conceptual-Machines/chordbook-api/internal/chordpro"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Song is a stored ChordPro document with fields derived from its content
type Song struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	SongbookID    *uuid.UUID     `gorm:"type:uuid;index" json:"songbook_id,omitempty"`
	Songbook      *Songbook      `gorm:"foreignKey:SongbookID" json:"songbook,omitempty"`
	Number        *int           `gorm:"index" json:"number,omitempty"`
	Title         string         `gorm:"not null;index" json:"title"`
	TitleAlt      *string        `json:"title_alt,omitempty"`
	AuthorLyrics  *string        `json:"author_lyrics,omitempty"`
	AuthorMusic   *string        `json:"author_music,omitempty"`
	Copyright     *string        `json:"copyright,omitempty"`
	OriginalKey   *string        `gorm:"size:8;index" json:"original_key,omitempty"`
	Tempo         *int           `json:"tempo,omitempty"`
	TimeSignature *string        `gorm:"size:8" json:"time_signature,omitempty"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	ContentPlain  string         `gorm:"type:text" json:"content_plain"`
	FirstLine     string         `json:"first_line"`
	HasChords     bool           `gorm:"index" json:"has_chords"`
	ViewsCount    int            `json:"views_count"`
}

func (s *Song) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// DeriveFromContent refreshes the search and listing fields from Content.
// Title, key, tempo and time signature are only filled in when unset.
func (s *Song) DeriveFromContent() {
	s.ContentPlain = chordpro.StripChords(s.Content)
	s.FirstLine = chordpro.ExtractFirstLine(s.Content)
	s.HasChords = chordpro.HasChords(s.Content)

	if strings.TrimSpace(s.Title) == "" {
		if title, ok := chordpro.ExtractTitle(s.Content); ok {
			s.Title = title
		}
	}
	if s.OriginalKey == nil {
		if key, ok := chordpro.ExtractKey(s.Content); ok && key != "" {
			s.OriginalKey = &key
		}
	}

	if s.Tempo == nil || s.TimeSignature == nil {
		parsed := chordpro.Parse(s.Content)
		if s.Tempo == nil {
			s.Tempo = parsed.Tempo
		}
		if s.TimeSignature == nil {
			s.TimeSignature = parsed.TimeSignature
		}
	}
}

// TransposedSong is a song rendered in another key
type TransposedSong struct {
	Song
	Semitones  int     `json:"semitones"`
	CurrentKey *string `json:"current_key,omitempty"`
}
