package handlers

import (
	"net/http"

	authmiddleware "github.com/Conceptual-Machines/chordbook-api/internal/middleware"
	"github.com/Conceptual-Machines/chordbook-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaylistHandler struct {
	playlists *services.PlaylistService
}

func NewPlaylistHandler(db *gorm.DB, maxTranspose int) *PlaylistHandler {
	return &PlaylistHandler{playlists: services.NewPlaylistService(db, maxTranspose)}
}

// ListPlaylists returns the current user's playlists
func (h *PlaylistHandler) ListPlaylists(c *gin.Context) {
	user, exists := authmiddleware.CurrentIdentity(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	playlists, err := h.playlists.List(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlists": playlists})
}

func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	user, exists := authmiddleware.CurrentIdentity(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.PlaylistInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playlist, err := h.playlists.Create(c.Request.Context(), user.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, playlist)
}

// GetPlaylist returns a playlist with its items in order
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	user, exists := authmiddleware.CurrentIdentity(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	playlist, err := h.playlists.Get(c.Request.Context(), user.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	items, err := h.playlists.Items(c.Request.Context(), user.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"playlist": playlist, "items": items})
}

func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	user, exists := authmiddleware.CurrentIdentity(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.playlists.Delete(c.Request.Context(), user.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Playlist deleted"})
}

// AddPlaylistItem appends a song, optionally transposed, to the playlist
func (h *PlaylistHandler) AddPlaylistItem(c *gin.Context) {
	user, exists := authmiddleware.CurrentIdentity(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.PlaylistItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.playlists.AddItem(c.Request.Context(), user.UserID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *PlaylistHandler) RemovePlaylistItem(c *gin.Context) {
	user, exists := authmiddleware.CurrentIdentity(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "item_id")
	if !ok {
		return
	}

	if err := h.playlists.RemoveItem(c.Request.Context(), user.UserID, id, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}
