package api

import (
	"github.com/Conceptual-Machines/chordbook-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/chordbook-api/internal/api/middleware"
	"github.com/Conceptual-Machines/chordbook-api/internal/config"
	"github.com/Conceptual-Machines/chordbook-api/internal/metrics"
	"github.com/Conceptual-Machines/chordbook-api/internal/middleware"
	webhandlers "github.com/Conceptual-Machines/chordbook-api/internal/web/handlers"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires every route. cloudwatch may be nil.
func SetupRouter(db *gorm.DB, cfg *config.Config, version string, cloudwatch *metrics.Client) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cloudwatch))

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, cfg.AuthMode, cfg.MaxTranspose)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Web pages
	webHandler := webhandlers.NewWebHandler(db, cfg.MaxTranspose)
	router.GET("/songs/:id", webHandler.SongPage)

	authenticate := apimiddleware.Authenticate(cfg)

	v1 := router.Group("/api/v1")
	{
		// Stateless ChordPro tools
		chordproHandler := handlers.NewChordProHandler(cfg.MaxTranspose, cloudwatch)
		v1.GET("/keys", chordproHandler.Keys)
		v1.POST("/chordpro/parse", chordproHandler.Parse)
		v1.POST("/chordpro/transpose", chordproHandler.Transpose)
		v1.POST("/chordpro/plain", chordproHandler.Plain)

		// Song catalogue (reads are public, writes need an editor)
		songHandler := handlers.NewSongHandler(db, cfg.MaxTranspose, cloudwatch)
		v1.GET("/songs", songHandler.ListSongs)
		v1.GET("/songs/search", songHandler.SearchSongs)
		v1.GET("/songs/:id", songHandler.GetSong)
		v1.GET("/songs/:id/parsed", songHandler.GetParsedSong)
		v1.GET("/songs/:id/midi", songHandler.GetSongMIDI)
		v1.POST("/songs", authenticate, middleware.EditorRequired(), songHandler.CreateSong)
		v1.PUT("/songs/:id", authenticate, middleware.EditorRequired(), songHandler.UpdateSong)
		v1.DELETE("/songs/:id", authenticate, middleware.EditorRequired(), songHandler.DeleteSong)

		songbookHandler := handlers.NewSongbookHandler(db)
		v1.GET("/songbooks", songbookHandler.ListSongbooks)
		v1.GET("/songbooks/:id", songbookHandler.GetSongbook)
		v1.GET("/songbooks/:id/songs", songbookHandler.ListSongbookSongs)
		v1.POST("/songbooks", authenticate, middleware.EditorRequired(), songbookHandler.CreateSongbook)
	}

	// Playlists belong to the current user
	playlists := v1.Group("/playlists")
	playlists.Use(authenticate, middleware.UserRequired())
	{
		playlistHandler := handlers.NewPlaylistHandler(db, cfg.MaxTranspose)
		playlists.GET("", playlistHandler.ListPlaylists)
		playlists.POST("", playlistHandler.CreatePlaylist)
		playlists.GET("/:id", playlistHandler.GetPlaylist)
		playlists.DELETE("/:id", playlistHandler.DeletePlaylist)
		playlists.POST("/:id/items", playlistHandler.AddPlaylistItem)
		playlists.DELETE("/:id/items/:item_id", playlistHandler.RemovePlaylistItem)
	}

	return router
}
