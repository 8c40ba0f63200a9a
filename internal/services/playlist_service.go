package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/chordbook-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaylistInput carries the fields of a new playlist
type PlaylistInput struct {
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	IsPublic    bool       `json:"is_public"`
	EventDate   *time.Time `json:"event_date"`
}

// PlaylistItemInput adds a song to a playlist
type PlaylistItemInput struct {
	SongID             uuid.UUID `json:"song_id" binding:"required"`
	TransposeSemitones int       `json:"transpose_semitones"`
	Notes              *string   `json:"notes"`
}

type PlaylistService struct {
	db           *gorm.DB
	maxTranspose int
}

func NewPlaylistService(db *gorm.DB, maxTranspose int) *PlaylistService {
	return &PlaylistService{db: db, maxTranspose: maxTranspose}
}

// List returns the user's playlists, most recently changed first
func (s *PlaylistService) List(ctx context.Context, userID string) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&playlists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

func (s *PlaylistService) Create(ctx context.Context, userID string, in PlaylistInput) (*models.Playlist, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	playlist := &models.Playlist{
		UserID:      userID,
		Name:        name,
		Description: in.Description,
		IsPublic:    in.IsPublic,
		EventDate:   in.EventDate,
	}
	if err := s.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	return playlist, nil
}

// Get returns a playlist the user owns or that is public
func (s *PlaylistService) Get(ctx context.Context, userID string, id uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if playlist.UserID != userID && !playlist.IsPublic {
		return nil, ErrForbidden
	}
	return playlist, nil
}

// Items returns the playlist's songs in order, each with its key after transposition
func (s *PlaylistService) Items(ctx context.Context, userID string, id uuid.UUID) ([]models.PlaylistItemView, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}

	var items []models.PlaylistItem
	err := s.db.WithContext(ctx).
		Preload("Song").
		Where("playlist_id = ?", id).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist items: %w", err)
	}

	views := make([]models.PlaylistItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.PlaylistItemView{
			PlaylistItem: item,
			Key:          transposedKey(item.Song, item.TransposeSemitones),
		})
	}
	return views, nil
}

// AddItem appends a song to the end of the user's playlist
func (s *PlaylistService) AddItem(ctx context.Context, userID string, playlistID uuid.UUID, in PlaylistItemInput) (*models.PlaylistItem, error) {
	if err := CheckTranspose(in.TransposeSemitones, s.maxTranspose); err != nil {
		return nil, err
	}

	item := &models.PlaylistItem{
		PlaylistID:         playlistID,
		SongID:             in.SongID,
		TransposeSemitones: in.TransposeSemitones,
		Notes:              in.Notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.owned(tx, userID, playlistID); err != nil {
			return err
		}

		var song models.Song
		if err := tx.First(&song, "id = ?", in.SongID).Error; err != nil {
			return fmt.Errorf("song %s: %w", in.SongID, translate(err))
		}

		var last struct{ Position *int }
		if err := tx.Model(&models.PlaylistItem{}).
			Select("MAX(position) AS position").
			Where("playlist_id = ?", playlistID).
			Scan(&last).Error; err != nil {
			return fmt.Errorf("failed to find last position: %w", err)
		}
		item.Position = 1
		if last.Position != nil {
			item.Position = *last.Position + 1
		}

		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to add playlist item: %w", err)
		}
		item.Song = &song
		return touch(tx, playlistID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes an item and closes the gap in positions
func (s *PlaylistService) RemoveItem(ctx context.Context, userID string, playlistID, itemID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.owned(tx, userID, playlistID); err != nil {
			return err
		}

		var item models.PlaylistItem
		if err := tx.First(&item, "id = ? AND playlist_id = ?", itemID, playlistID).Error; err != nil {
			return translate(err)
		}
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to remove playlist item: %w", err)
		}
		if err := tx.Model(&models.PlaylistItem{}).
			Where("playlist_id = ? AND position > ?", playlistID, item.Position).
			UpdateColumn("position", gorm.Expr("position - ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to renumber playlist: %w", err)
		}
		return touch(tx, playlistID)
	})
}

// Delete removes the user's playlist and its items
func (s *PlaylistService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		playlist, err := s.owned(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete playlist items: %w", err)
		}
		if err := tx.Delete(playlist).Error; err != nil {
			return fmt.Errorf("failed to delete playlist: %w", err)
		}
		return nil
	})
}

func (s *PlaylistService) find(db *gorm.DB, id uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := db.First(&playlist, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &playlist, nil
}

// owned loads a playlist only the owner may change
func (s *PlaylistService) owned(db *gorm.DB, userID string, id uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	if playlist.UserID != userID {
		return nil, ErrForbidden
	}
	return playlist, nil
}

func touch(tx *gorm.DB, playlistID uuid.UUID) error {
	return tx.Model(&models.Playlist{}).Where("id = ?", playlistID).
		UpdateColumn("updated_at", time.Now()).Error
}
