package handlers

import (
	"net/http"
	"time"

	"github.com/Conceptual-Machines/chordbook-api/internal/chordpro"
	"github.com/Conceptual-Machines/chordbook-api/internal/logger"
	"github.com/Conceptual-Machines/chordbook-api/internal/metrics"
	"github.com/Conceptual-Machines/chordbook-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ChordProHandler exposes the stateless ChordPro tools
type ChordProHandler struct {
	maxTranspose  int
	cloudwatch    *metrics.Client
	sentryMetrics *metrics.SentryMetrics
}

func NewChordProHandler(maxTranspose int, cloudwatch *metrics.Client) *ChordProHandler {
	return &ChordProHandler{
		maxTranspose:  maxTranspose,
		cloudwatch:    cloudwatch,
		sentryMetrics: metrics.NewSentryMetrics(),
	}
}

type contentRequest struct {
	Content string `json:"content" binding:"required"`
}

type transposeRequest struct {
	Content   string  `json:"content" binding:"required"`
	Semitones *int    `json:"semitones"`
	ToKey     *string `json:"to_key"`
}

type transposeResponse struct {
	Content   string  `json:"content"`
	Semitones int     `json:"semitones"`
	Key       *string `json:"key"`
}

type plainResponse struct {
	Text      string  `json:"text"`
	FirstLine string  `json:"first_line"`
	Title     *string `json:"title"`
	Key       *string `json:"key"`
	HasChords bool    `json:"has_chords"`
}

// Keys lists the keys offered for transposition
func (h *ChordProHandler) Keys(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keys": chordpro.CommonKeys})
}

// Parse returns the structured form of a ChordPro document
func (h *ChordProHandler) Parse(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	song := chordpro.Parse(req.Content)
	duration := time.Since(start)

	lines := 0
	for _, section := range song.Sections {
		lines += len(section.Lines)
	}
	h.sentryMetrics.RecordParse(c.Request.Context(), len(song.Sections), lines, duration)
	logger.LogChordProOperation(c.Request.Context(), "parse", duration, logger.Fields{
		"request_id": c.GetString("request_id"),
		"sections":   len(song.Sections),
		"lines":      lines,
	})

	c.JSON(http.StatusOK, song)
}

// Transpose shifts every chord in a document either by a number of semitones or to a target key
func (h *ChordProHandler) Transpose(c *gin.Context) {
	var req transposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	semitones, err := h.resolveShift(req)
	if err != nil {
		respondError(c, err)
		return
	}

	start := time.Now()
	useFlats := chordpro.ShouldUseFlats(req.Content, semitones)
	resp := transposeResponse{
		Content:   chordpro.TransposeContent(req.Content, semitones),
		Semitones: semitones,
	}
	if key, ok := chordpro.ExtractKey(req.Content); ok && key != "" {
		shifted := chordpro.TransposeKey(key, semitones, useFlats)
		resp.Key = &shifted
	}
	duration := time.Since(start)

	h.sentryMetrics.RecordTransposition(c.Request.Context(), semitones, useFlats, duration)
	h.cloudwatch.RecordTransposition(semitones, useFlats)
	logger.LogChordProOperation(c.Request.Context(), "transpose", duration, logger.Fields{
		"request_id": c.GetString("request_id"),
		"semitones":  semitones,
		"use_flats":  useFlats,
	})

	c.JSON(http.StatusOK, resp)
}

func (h *ChordProHandler) resolveShift(req transposeRequest) (int, error) {
	switch {
	case req.ToKey != nil:
		from, ok := chordpro.ExtractKey(req.Content)
		if !ok || from == "" {
			return 0, services.ErrInvalidTranspose
		}
		semitones, err := services.ShiftBetweenKeys(from, *req.ToKey)
		if err != nil {
			return 0, err
		}
		return semitones, services.CheckTranspose(semitones, h.maxTranspose)
	case req.Semitones != nil:
		return *req.Semitones, services.CheckTranspose(*req.Semitones, h.maxTranspose)
	default:
		return 0, services.ErrInvalidInput
	}
}

// Plain returns the lyrics without chords plus the derived listing fields
func (h *ChordProHandler) Plain(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := plainResponse{
		Text:      chordpro.StripChords(req.Content),
		FirstLine: chordpro.ExtractFirstLine(req.Content),
		HasChords: chordpro.HasChords(req.Content),
	}
	if title, ok := chordpro.ExtractTitle(req.Content); ok {
		resp.Title = &title
	}
	if key, ok := chordpro.ExtractKey(req.Content); ok {
		resp.Key = &key
	}

	c.JSON(http.StatusOK, resp)
}
