package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/chordbook-api/internal/chordpro"
	"github.com/Conceptual-Machines/chordbook-api/internal/logger"
	"github.com/Conceptual-Machines/chordbook-api/internal/services"
	"github.com/Conceptual-Machines/chordbook-api/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WebHandler struct {
	songs *services.SongService
}

func NewWebHandler(db *gorm.DB, maxTranspose int) *WebHandler {
	return &WebHandler{
		songs: services.NewSongService(db, maxTranspose),
	}
}

// SongPage renders a song as HTML, transposed by ?transpose=n
func (h *WebHandler) SongPage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.render(c, http.StatusNotFound, templates.NotFoundPage())
		return
	}

	semitones := 0
	if raw := c.Query("transpose"); raw != "" {
		semitones, err = strconv.Atoi(raw)
		if err != nil {
			c.String(http.StatusBadRequest, "transpose must be a number")
			return
		}
	}
	if err := services.CheckTranspose(semitones, h.songs.MaxTranspose()); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	song, err := h.songs.Get(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		h.render(c, http.StatusNotFound, templates.NotFoundPage())
		return
	}
	if err != nil {
		logger.Error("Failed to load song page", err, logger.Fields{"song_id": id.String()})
		c.String(http.StatusInternalServerError, "Failed to load song")
		return
	}

	transposed := services.TransposeSong(song, semitones)
	h.render(c, http.StatusOK, templates.SongPage(transposed, chordpro.Parse(transposed.Content)))
}

func (h *WebHandler) render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
	}
}
