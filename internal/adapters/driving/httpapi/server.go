// Package httpapi is the thin HTTP boundary over the core services.
// It owns route wiring, session cookies and multipart parsing; all
// business rules live behind the driving ports it calls.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libris-app/libris/internal/core/ports/driven"
	"github.com/libris-app/libris/internal/core/ports/driving"
)

// SessionCookie is the name of the session token cookie.
const SessionCookie = "libris_session"

// defaultRecentCount matches the home page's "recently added" block.
const defaultRecentCount = 6

// Server wires the HTTP routes to the core services.
type Server struct {
	library    driving.LibraryService
	assistant  driving.AssistantService
	sessions   driven.SessionStore
	artifacts  driven.ArtifactStore
	askTimeout time.Duration
	log        *slog.Logger
	engine     *gin.Engine
}

// NewServer creates the HTTP server. askTimeout bounds every
// language-model call; zero means 60 seconds.
func NewServer(
	library driving.LibraryService,
	assistant driving.AssistantService,
	sessions driven.SessionStore,
	artifacts driven.ArtifactStore,
	askTimeout time.Duration,
	log *slog.Logger,
) *Server {
	if log == nil {
		log = slog.Default()
	}
	if askTimeout == 0 {
		askTimeout = 60 * time.Second
	}

	s := &Server{
		library:    library,
		assistant:  assistant,
		sessions:   sessions,
		artifacts:  artifacts,
		askTimeout: askTimeout,
		log:        log,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	s.engine = engine
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api", s.withSession)

	api.POST("/login", s.login)
	api.POST("/logout", s.logout)
	api.POST("/language", s.setLanguage)

	// The assistant is open to anonymous visitors, like the original
	// AI search page.
	api.POST("/ask", s.ask)

	auth := api.Group("", s.requireLogin)
	auth.GET("/books", s.listBooks)
	auth.GET("/books/recent", s.recentBooks)
	auth.GET("/books/:id", s.getBook)
	auth.POST("/books", s.createBook)
	auth.DELETE("/books/:id", s.deleteBook)
	auth.GET("/books/:id/download", s.downloadBook)
	auth.POST("/books/:id/abstract", s.generateAbstract)
	auth.POST("/books/:id/annotation", s.generateAnnotation)
	auth.GET("/uploads/:key", s.serveUpload)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
