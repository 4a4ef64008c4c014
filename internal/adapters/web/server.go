// Package web exposes the recognition engine over HTTP: a recognize
// endpoint for live highlighting, a small chat API with canned
// analytics answers, and admin endpoints for artifact management.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corey/intentd/internal/app"
	"github.com/corey/intentd/internal/domain/classify"
	"github.com/corey/intentd/internal/domain/entity"
	"github.com/corey/intentd/internal/domain/recognizer"
	"github.com/corey/intentd/internal/ports"
)

// Server serves the HTTP API on top of a running app.
type Server struct {
	app       *app.App
	responder *classify.Responder
	http      *http.Server
}

// New builds the server for addr.
func New(a *app.App, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{app: a, responder: classify.NewResponder()}
	s.routes(r)
	s.http = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.POST("/recognize", s.recognize)

		chat := api.Group("/chat")
		{
			chat.POST("/message", s.chatMessage)
			chat.GET("/keywords", s.keywords)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/artifacts/update", s.artifactsUpdate)
			admin.GET("/artifacts/status", s.artifactsStatus)
			admin.GET("/stats", s.stats)
		}
	}
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	log.Printf("[web] listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	st := s.app.Recognizer.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"loaded":   st.Loaded,
		"patterns": st.Patterns,
	})
}

type recognizeRequest struct {
	Text                string  `json:"text" binding:"required"`
	Mode                string  `json:"mode"`
	FuzzyMatching       bool    `json:"fuzzy_matching"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
}

func (s *Server) recognize(c *gin.Context) {
	var req recognizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if len(req.Text) > recognizer.MaxInputLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("text exceeds %d characters", recognizer.MaxInputLen)})
		return
	}
	opts := recognizer.Options{Fuzzy: req.FuzzyMatching, Threshold: req.ConfidenceThreshold}
	switch req.Mode {
	case "", "longest":
	case "priority":
		opts.Mode = entity.ModePriority
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown mode %q", req.Mode)})
		return
	}
	c.JSON(http.StatusOK, s.app.Recognizer.Recognize(req.Text, opts))
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

type chatResponse struct {
	classify.Response
	Recognition ports.RecognitionResult `json:"recognition"`
}

func (s *Server) chatMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	c.JSON(http.StatusOK, chatResponse{
		Response:    s.responder.Respond(req.Message),
		Recognition: s.app.Recognizer.Recognize(req.Message, recognizer.Options{Fuzzy: true}),
	})
}

// keywords lists the canonical vocabulary per entity type, for client
// side autocomplete.
func (s *Server) keywords(c *gin.Context) {
	types := []ports.EntityType{
		ports.TypeManufacturer, ports.TypeBrand, ports.TypeProduct,
		ports.TypeCategory, ports.TypeMetric, ports.TypeTimePeriod,
		ports.TypeSpecial,
	}
	out := make(map[string][]string, len(types))
	for _, t := range types {
		names := s.app.Recognizer.Vocabulary(t)
		if names == nil {
			names = []string{}
		}
		out[string(t)] = names
	}
	c.JSON(http.StatusOK, gin.H{"keywords": out})
}

func (s *Server) artifactsUpdate(c *gin.Context) {
	rec := s.app.Reload("api")
	status := http.StatusOK
	if rec.Err != "" {
		status = http.StatusBadGateway
	}
	c.JSON(status, rec)
}

func (s *Server) artifactsStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.ArtifactStatus())
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.Recognizer.Stats())
}
