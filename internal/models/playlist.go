package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Playlist is a user's ordered set list
type Playlist struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	UserID      string         `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	IsPublic    bool           `json:"is_public"`
	EventDate   *time.Time     `json:"event_date,omitempty"`
	Items       []PlaylistItem `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (p *Playlist) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PlaylistItem places a song in a playlist, optionally transposed
type PlaylistItem struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	PlaylistID         uuid.UUID `gorm:"type:uuid;not null;index" json:"playlist_id"`
	SongID             uuid.UUID `gorm:"type:uuid;not null;index" json:"song_id"`
	Song               *Song     `gorm:"foreignKey:SongID" json:"song,omitempty"`
	Position           int       `gorm:"not null" json:"position"`
	TransposeSemitones int       `json:"transpose_semitones"`
	Notes              *string   `gorm:"type:text" json:"notes,omitempty"`
}

func (i *PlaylistItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// PlaylistItemView is an item with the song's key after its transposition
type PlaylistItemView struct {
	PlaylistItem
	Key *string `json:"key,omitempty"`
}
