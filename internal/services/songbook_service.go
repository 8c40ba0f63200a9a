package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/chordbook-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SongbookInput carries the fields of a new songbook
type SongbookInput struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

type SongbookService struct {
	db *gorm.DB
}

func NewSongbookService(db *gorm.DB) *SongbookService {
	return &SongbookService{db: db}
}

// List returns all songbooks ordered by name
func (s *SongbookService) List(ctx context.Context) ([]models.Songbook, error) {
	var books []models.Songbook
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list songbooks: %w", err)
	}
	return books, nil
}

func (s *SongbookService) Get(ctx context.Context, id uuid.UUID) (*models.Songbook, error) {
	var book models.Songbook
	if err := s.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

// GetByCode looks a songbook up by its short code
func (s *SongbookService) GetByCode(ctx context.Context, code string) (*models.Songbook, error) {
	var book models.Songbook
	if err := s.db.WithContext(ctx).First(&book, "code = ?", code).Error; err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

// Create adds a songbook; codes are unique
func (s *SongbookService) Create(ctx context.Context, in SongbookInput) (*models.Songbook, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name are required", ErrInvalidInput)
	}

	book := &models.Songbook{
		Code:        code,
		Name:        name,
		Description: in.Description,
		IsPublic:    in.IsPublic == nil || *in.IsPublic,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Songbook{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check songbook code: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("songbook %q: %w", code, ErrConflict)
		}
		if err := tx.Create(book).Error; err != nil {
			return fmt.Errorf("failed to create songbook: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Songs returns every song of a songbook ordered by number
func (s *SongbookService) Songs(ctx context.Context, id uuid.UUID) ([]models.Song, error) {
	var songs []models.Song
	err := s.db.WithContext(ctx).
		Where("songbook_id = ?", id).
		Order(models.SortByNumber.OrderClause()).
		Find(&songs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load songbook songs: %w", err)
	}
	return songs, nil
}
