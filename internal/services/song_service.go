package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/chordbook-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// SongInput carries the editable fields of a song
type SongInput struct {
	SongbookID    *uuid.UUID `json:"songbook_id"`
	Number        *int       `json:"number"`
	Title         string     `json:"title"`
	TitleAlt      *string    `json:"title_alt"`
	AuthorLyrics  *string    `json:"author_lyrics"`
	AuthorMusic   *string    `json:"author_music"`
	Copyright     *string    `json:"copyright"`
	OriginalKey   *string    `json:"original_key"`
	Tempo         *int       `json:"tempo"`
	TimeSignature *string    `json:"time_signature"`
	Content       string     `json:"content" binding:"required"`
}

type SongService struct {
	db           *gorm.DB
	maxTranspose int
}

func NewSongService(db *gorm.DB, maxTranspose int) *SongService {
	return &SongService{db: db, maxTranspose: maxTranspose}
}

// MaxTranspose is the largest accepted shift in either direction
func (s *SongService) MaxTranspose() int {
	return s.maxTranspose
}

// Create stores a new song, deriving title, key and search fields from its content
func (s *SongService) Create(ctx context.Context, in SongInput) (*models.Song, error) {
	song := &models.Song{}
	applyInput(song, in)
	if err := validateSong(song); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkSongbook(tx, song.SongbookID); err != nil {
			return err
		}
		if err := tx.Create(song).Error; err != nil {
			return fmt.Errorf("failed to create song: %w", err)
		}
		return refreshSongbookCounters(tx, song.SongbookID)
	})
	if err != nil {
		return nil, err
	}
	return song, nil
}

// Update replaces the editable fields of a song and re-derives its search fields
func (s *SongService) Update(ctx context.Context, id uuid.UUID, in SongInput) (*models.Song, error) {
	var song models.Song
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&song, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		previousBook := song.SongbookID
		applyInput(&song, in)
		if err := validateSong(&song); err != nil {
			return err
		}
		if err := checkSongbook(tx, song.SongbookID); err != nil {
			return err
		}
		if err := tx.Save(&song).Error; err != nil {
			return fmt.Errorf("failed to update song: %w", err)
		}

		if err := refreshSongbookCounters(tx, previousBook); err != nil {
			return err
		}
		if !sameSongbook(previousBook, song.SongbookID) {
			return refreshSongbookCounters(tx, song.SongbookID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// Get returns a song and counts the view
func (s *SongService) Get(ctx context.Context, id uuid.UUID) (*models.Song, error) {
	song, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(song).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error; err != nil {
		return nil, fmt.Errorf("failed to count view: %w", err)
	}
	song.ViewsCount++
	return song, nil
}

// Find returns a song without counting a view
func (s *SongService) Find(ctx context.Context, id uuid.UUID) (*models.Song, error) {
	var song models.Song
	if err := s.db.WithContext(ctx).Preload("Songbook").First(&song, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &song, nil
}

// List returns a page of songs matching the filters and the total number of matches
func (s *SongService) List(ctx context.Context, filters models.SongFilters) ([]models.Song, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Song{})

	if filters.SongbookID != nil {
		query = query.Where("songbook_id = ?", *filters.SongbookID)
	}
	if filters.Key != "" {
		query = query.Where("original_key = ?", filters.Key)
	}
	if filters.HasChords != nil {
		query = query.Where("has_chords = ?", *filters.HasChords)
	}
	if q := strings.TrimSpace(filters.Search); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(first_line) LIKE ? OR LOWER(content_plain) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count songs: %w", err)
	}

	var songs []models.Song
	err := query.
		Order(filters.SortBy.OrderClause()).
		Limit(clampLimit(filters.Limit)).
		Offset(max(filters.Offset, 0)).
		Find(&songs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, total, nil
}

// Search matches the query against title, first line and lyrics
func (s *SongService) Search(ctx context.Context, query string, limit int) ([]models.Song, error) {
	songs, _, err := s.List(ctx, models.SongFilters{Search: query, Limit: limit})
	return songs, err
}

// Delete soft-deletes a song
func (s *SongService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var song models.Song
		if err := tx.First(&song, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Delete(&song).Error; err != nil {
			return fmt.Errorf("failed to delete song: %w", err)
		}
		return refreshSongbookCounters(tx, song.SongbookID)
	})
}

// Transposed returns the song shifted by semitones without counting a view
func (s *SongService) Transposed(ctx context.Context, id uuid.UUID, semitones int) (*models.TransposedSong, error) {
	if err := CheckTranspose(semitones, s.maxTranspose); err != nil {
		return nil, err
	}
	song, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return TransposeSong(song, semitones), nil
}

// TransposeToKey shifts the song from its original key to key along the shortest path
func (s *SongService) TransposeToKey(ctx context.Context, id uuid.UUID, key string) (*models.TransposedSong, error) {
	song, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	semitones, err := SemitonesToKey(song, key)
	if err != nil {
		return nil, err
	}
	if err := CheckTranspose(semitones, s.maxTranspose); err != nil {
		return nil, err
	}
	return TransposeSong(song, semitones), nil
}

// SemitonesToKey returns the shortest shift from the song's key to key
func SemitonesToKey(song *models.Song, key string) (int, error) {
	if song.OriginalKey == nil {
		return 0, fmt.Errorf("%w: song has no key", ErrInvalidTranspose)
	}
	return ShiftBetweenKeys(*song.OriginalKey, key)
}

func applyInput(song *models.Song, in SongInput) {
	song.SongbookID = in.SongbookID
	song.Number = in.Number
	song.Title = strings.TrimSpace(in.Title)
	song.TitleAlt = in.TitleAlt
	song.AuthorLyrics = in.AuthorLyrics
	song.AuthorMusic = in.AuthorMusic
	song.Copyright = in.Copyright
	song.OriginalKey = in.OriginalKey
	song.Tempo = in.Tempo
	song.TimeSignature = in.TimeSignature
	song.Content = in.Content
	song.DeriveFromContent()
}

func validateSong(song *models.Song) error {
	if strings.TrimSpace(song.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if song.Title == "" {
		return fmt.Errorf("%w: title is required (set it or add a {title} directive)", ErrInvalidInput)
	}
	return nil
}

func checkSongbook(tx *gorm.DB, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&models.Songbook{}).Where("id = ?", *id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up songbook: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("songbook %s: %w", id, ErrNotFound)
	}
	return nil
}

// refreshSongbookCounters recomputes the song counters of a songbook
func refreshSongbookCounters(tx *gorm.DB, id *uuid.UUID) error {
	if id == nil {
		return nil
	}

	var total, withChords int64
	if err := tx.Model(&models.Song{}).Where("songbook_id = ?", *id).Count(&total).Error; err != nil {
		return fmt.Errorf("failed to count songs: %w", err)
	}
	if err := tx.Model(&models.Song{}).Where("songbook_id = ? AND has_chords = ?", *id, true).
		Count(&withChords).Error; err != nil {
		return fmt.Errorf("failed to count songs with chords: %w", err)
	}

	return tx.Model(&models.Songbook{}).Where("id = ?", *id).Updates(map[string]any{
		"songs_count":             total,
		"songs_with_chords_count": withChords,
	}).Error
}

func sameSongbook(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}
