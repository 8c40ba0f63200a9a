package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Songbook is a published collection of numbered songs
type Songbook struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	Code                 string    `gorm:"uniqueIndex;not null" json:"code"`
	Name                 string    `gorm:"not null" json:"name"`
	Description          *string   `gorm:"type:text" json:"description,omitempty"`
	IsPublic             bool      `json:"is_public"`
	SongsCount           int       `json:"songs_count"`
	SongsWithChordsCount int       `json:"songs_with_chords_count"`
}

func (b *Songbook) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
