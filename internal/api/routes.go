package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/youruser/tarotapp/internal/journal"
	"github.com/youruser/tarotapp/internal/meaning"
	"github.com/youruser/tarotapp/internal/observability"
	"github.com/youruser/tarotapp/internal/session"
)

// Server carries what the handlers need. Journal, Metrics and Gatherer are
// optional.
type Server struct {
	Sessions    *session.Manager
	Meanings    *meaning.Reader
	Journal     journal.Store
	Metrics     *observability.Metrics
	Gatherer    prometheus.Gatherer
	AssetsDir   string
	FrontendDir string
	PublicURL   string
	CORSOrigins []string
}

func RegisterRoutes(r *gin.Engine, s *Server) {
	r.Use(corsMiddleware(s.CORSOrigins))
	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware())
	}
	if s.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/cards", listCards)
		api.GET("/cards/:name/thumbnail", s.thumbnail)

		deck := api.Group("", sessionMiddleware())
		{
			deck.POST("/shuffle", s.shuffle)
			deck.POST("/draw", s.draw)
			deck.POST("/reset", s.reset)
			deck.GET("/status", s.status)
			deck.GET("/deck/export", s.export)
		}

		readings := api.Group("/readings")
		{
			readings.GET("", s.listReadings)
			readings.GET("/:id", s.getReading)
			readings.GET("/:id/qr", s.readingQR)
		}
	}

	if s.AssetsDir != "" {
		r.Static("/assets", s.AssetsDir)
	}
	r.NoRoute(s.notFound)
}

// notFound serves the front-end directory for anything outside /api.
// Directories are never listed; one without an index.html is a 404.
func (s *Server) notFound(c *gin.Context) {
	urlPath := c.Request.URL.Path
	if strings.HasPrefix(urlPath, "/api/") || s.FrontendDir == "" || c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	name := filepath.Join(s.FrontendDir, filepath.FromSlash(path.Clean("/"+urlPath)))
	if info, err := os.Stat(name); err == nil && info.IsDir() {
		if _, err := os.Stat(filepath.Join(name, "index.html")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
	}
	c.FileFromFS(urlPath, gin.Dir(s.FrontendDir, false))
}
