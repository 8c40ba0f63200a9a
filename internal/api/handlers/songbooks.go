package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/chordbook-api/internal/models"
	"github.com/Conceptual-Machines/chordbook-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SongbookHandler struct {
	songbooks *services.SongbookService
}

func NewSongbookHandler(db *gorm.DB) *SongbookHandler {
	return &SongbookHandler{songbooks: services.NewSongbookService(db)}
}

func (h *SongbookHandler) ListSongbooks(c *gin.Context) {
	books, err := h.songbooks.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"songbooks": books})
}

// GetSongbook accepts either the songbook's UUID or its code
func (h *SongbookHandler) GetSongbook(c *gin.Context) {
	book, err := h.lookup(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// ListSongbookSongs returns the songs of a songbook ordered by number
func (h *SongbookHandler) ListSongbookSongs(c *gin.Context) {
	book, err := h.lookup(c)
	if err != nil {
		respondError(c, err)
		return
	}

	songs, err := h.songbooks.Songs(c.Request.Context(), book.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"songbook": book, "songs": songs})
}

func (h *SongbookHandler) CreateSongbook(c *gin.Context) {
	var req services.SongbookInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.songbooks.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *SongbookHandler) lookup(c *gin.Context) (*models.Songbook, error) {
	ref := c.Param("id")
	if id, err := uuid.Parse(ref); err == nil {
		return h.songbooks.Get(c.Request.Context(), id)
	}
	return h.songbooks.GetByCode(c.Request.Context(), ref)
}
