// Package api serves the team statistics as JSON over HTTP.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pable/go-team-stats/internal/model"
)

// DatasetSource loads the current snapshot. *storage.DB satisfies it.
type DatasetSource interface {
	LoadDataset() (*model.Dataset, error)
}

// Handler holds the dependencies shared by every route.
type Handler struct {
	source            DatasetSource
	defaultTournament string
	now               func() time.Time
}

// NewHandler returns a Handler reading from source. Requests without a tournament
// query parameter use defaultTournament.
func NewHandler(source DatasetSource, defaultTournament string) *Handler {
	return &Handler{
		source:            source,
		defaultTournament: defaultTournament,
		now:               time.Now,
	}
}

// NewRouter builds the gin engine with CORS enabled for read-only access.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/tournaments", h.Tournaments)
		api.GET("/summary", h.Summary)
		api.GET("/rankings", h.Rankings)
		api.GET("/players", h.Players)
		api.GET("/players/:name", h.Player)
		api.GET("/players/:name/trend", h.PlayerTrend)
		api.GET("/trend/monthly", h.MonthlyTrend)
	}
	return r
}
