package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Conceptual-Machines/chordbook-api/internal/chordpro"
	"github.com/Conceptual-Machines/chordbook-api/internal/logger"
	"github.com/Conceptual-Machines/chordbook-api/internal/metrics"
	"github.com/Conceptual-Machines/chordbook-api/internal/models"
	"github.com/Conceptual-Machines/chordbook-api/internal/playback"
	"github.com/Conceptual-Machines/chordbook-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SongHandler struct {
	songs      *services.SongService
	cloudwatch *metrics.Client
}

func NewSongHandler(db *gorm.DB, maxTranspose int, cloudwatch *metrics.Client) *SongHandler {
	return &SongHandler{
		songs:      services.NewSongService(db, maxTranspose),
		cloudwatch: cloudwatch,
	}
}

// ListSongs returns a page of songs. Supported filters: songbook_id, key, has_chords, q, sort, limit, offset.
func (h *SongHandler) ListSongs(c *gin.Context) {
	filters, err := songFiltersFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	songs, total, err := h.songs.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"songs":  songs,
		"total":  total,
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}

// SearchSongs matches ?q= against titles, first lines and lyrics
func (h *SongHandler) SearchSongs(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	songs, err := h.songs.Search(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs, "query": query})
}

// GetSong returns a song. With ?transpose=n or ?key=X the content is returned transposed.
func (h *SongHandler) GetSong(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	transposed, err := h.transposedFromQuery(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if transposed != nil {
		c.JSON(http.StatusOK, transposed)
		return
	}

	song, err := h.songs.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, song)
}

// GetParsedSong returns the parsed structure of a song, optionally transposed
func (h *SongHandler) GetParsedSong(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	song, err := h.renderedSong(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	start := time.Now()
	parsed := chordpro.Parse(song.Content)
	logger.LogChordProOperation(c.Request.Context(), "parse", time.Since(start), logger.Fields{
		"request_id": c.GetString("request_id"),
		"song_id":    id.String(),
		"sections":   len(parsed.Sections),
	})

	c.JSON(http.StatusOK, gin.H{
		"song_id":   song.ID,
		"semitones": song.Semitones,
		"key":       song.CurrentKey,
		"chords":    chordpro.ChordNames(parsed),
		"parsed":    parsed,
	})
}

// GetSongMIDI renders the chord progression as a Standard MIDI File
func (h *SongHandler) GetSongMIDI(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tempo := 0
	if raw := c.Query("tempo"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxMIDITempo {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("tempo must be between 1 and %d", maxMIDITempo)})
			return
		}
		tempo = n
	}

	song, err := h.renderedSong(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := playback.WriteProgression(&buf, chordpro.Parse(song.Content), tempo); err != nil {
		if errors.Is(err, playback.ErrNoChords) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Song has no chords to play"})
			return
		}
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.mid"`, song.ID))
	c.Data(http.StatusOK, contentTypeMIDI, buf.Bytes())
}

// CreateSong stores a new song
func (h *SongHandler) CreateSong(c *gin.Context) {
	var req services.SongInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	song, err := h.songs.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cloudwatch.RecordSongWrite("create")
	logger.Info("Song created", logger.Fields{
		"request_id": c.GetString("request_id"),
		"song_id":    song.ID.String(),
		"title":      song.Title,
	})
	c.JSON(http.StatusCreated, song)
}

// UpdateSong replaces the editable fields of a song
func (h *SongHandler) UpdateSong(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.SongInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	song, err := h.songs.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cloudwatch.RecordSongWrite("update")
	c.JSON(http.StatusOK, song)
}

// DeleteSong soft-deletes a song
func (h *SongHandler) DeleteSong(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.songs.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.cloudwatch.RecordSongWrite("delete")
	c.JSON(http.StatusOK, gin.H{"message": "Song deleted"})
}

// renderedSong returns the song as requested by the transpose query parameters,
// untransposed when none are given
func (h *SongHandler) renderedSong(c *gin.Context, id uuid.UUID) (*models.TransposedSong, error) {
	transposed, err := h.transposedFromQuery(c, id)
	if err != nil || transposed != nil {
		return transposed, err
	}
	song, err := h.songs.Find(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return services.TransposeSong(song, 0), nil
}

// transposedFromQuery returns nil when neither ?key nor ?transpose is set
func (h *SongHandler) transposedFromQuery(c *gin.Context, id uuid.UUID) (*models.TransposedSong, error) {
	ctx := c.Request.Context()

	if key := c.Query(queryKey); key != "" {
		return h.songs.TransposeToKey(ctx, id, key)
	}

	raw := c.Query(queryTranspose)
	if raw == "" {
		return nil, nil
	}
	semitones, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", services.ErrInvalidTranspose, raw)
	}
	return h.songs.Transposed(ctx, id, semitones)
}

func songFiltersFromQuery(c *gin.Context) (models.SongFilters, error) {
	filters := models.SongFilters{
		Key:    c.Query("key"),
		Search: c.Query("q"),
		SortBy: models.ParseSortBy(c.Query("sort")),
	}

	if raw := c.Query("songbook_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filters, errors.New("invalid songbook_id")
		}
		filters.SongbookID = &id
	}
	if raw := c.Query("has_chords"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, errors.New("invalid has_chords")
		}
		filters.HasChords = &v
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filters, errors.New("invalid limit")
		}
		filters.Limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filters, errors.New("invalid offset")
		}
		filters.Offset = n
	}
	return filters, nil
}
