// Package ui serves the incident form and the JSON prediction API.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"crimerisk/app"
	"crimerisk/internal/config"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server hosts the incident form and API on a gin router.
type Server struct {
	router    *gin.Engine
	service   *app.PredictionService
	templates *template.Template
	config    *config.Config
}

// NewServer builds the router, parses the embedded templates, and
// registers all routes.
func NewServer(service *app.PredictionService, cfg *config.Config) (*Server, error) {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	funcMap := template.FuncMap{
		"tierColor": tierColor,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		service:   service,
		templates: templates,
		config:    cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures static file serving.
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes registers the form pages and the API.
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/predict", s.handlePredictForm)
	s.router.GET("/model-card", s.handleModelCard)

	api := s.router.Group("/api")
	api.POST("/predict", s.handlePredictJSON)
	api.GET("/model", s.handleModelInfo)
	api.POST("/batch", s.handleBatch)
	api.GET("/health", s.handleHealth)
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	addr := ":" + s.config.Server.Port
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
