// Package server exposes the profile and both games over HTTP with gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eshginfarzali/eshgin/internal/bugs"
	"github.com/eshginfarzali/eshgin/internal/model"
	"github.com/eshginfarzali/eshgin/internal/profile"
	"github.com/eshginfarzali/eshgin/internal/typing"
)

// ErrUnknownGame is returned when a request names a game the server does not host.
var ErrUnknownGame = errors.New("unknown game")

const shutdownTimeout = 5 * time.Second

// Server hosts one single-player session of each game.
type Server struct {
	profile profile.Profile
	log     zerolog.Logger

	bugs   *bugs.Game
	area   *Area
	typing *typing.Game

	engine    *gin.Engine
	quit      chan struct{}
	closeOnce sync.Once
}

// New builds both games from cfg and the routes serving them.
func New(cfg model.Config, p profile.Profile, snippets []string, logger zerolog.Logger) *Server {
	area := NewArea(cfg.Serve.AreaWidth, cfg.Serve.AreaHeight)
	bugGame := bugs.New(area, bugs.Options{
		SpawnInterval: cfg.Bugs.SpawnInterval,
		MaxTargets:    cfg.Bugs.MaxTargets,
		Margin:        cfg.Bugs.Margin,
		Logger:        &logger,
	})
	typingGame := typing.New(typing.Options{
		RoundSeconds: cfg.Typing.RoundSeconds,
		Snippets:     snippets,
		Logger:       &logger,
	})
	return newServer(p, bugGame, area, typingGame, logger)
}

func newServer(p profile.Profile, bugGame *bugs.Game, area *Area, typingGame *typing.Game, logger zerolog.Logger) *Server {
	s := &Server{
		profile: p,
		log:     logger,
		bugs:    bugGame,
		area:    area,
		typing:  typingGame,
		quit:    make(chan struct{}),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down and closes the games.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Close ends open event streams and stops both games.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
		s.bugs.Close()
		s.typing.Close()
	})
}

// Snapshot returns the current state of the named game.
func (s *Server) Snapshot(name string) (any, error) {
	switch strings.ToLower(name) {
	case "bugs":
		return s.bugs.Snapshot(), nil
	case "typing":
		return s.typing.Snapshot(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	api := r.Group("/api")
	api.GET("/profile", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.profile)
	})
	api.GET("/snippets", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"snippets": s.typing.Snippets()})
	})
	api.GET("/games/:name", s.handleSnapshot)

	b := api.Group("/bugs")
	b.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.bugs.Snapshot())
	})
	b.POST("/start", func(c *gin.Context) {
		s.bugs.Start()
		c.JSON(http.StatusOK, s.bugs.Snapshot())
	})
	b.POST("/stop", func(c *gin.Context) {
		s.bugs.Stop()
		c.JSON(http.StatusOK, s.bugs.Snapshot())
	})
	b.PUT("/area", s.handleArea)
	b.POST("/squash/:id", func(c *gin.Context) {
		ok := s.bugs.Squash(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"squashed": ok, "snapshot": s.bugs.Snapshot()})
	})
	b.GET("/events", func(c *gin.Context) {
		stream(c, s.quit, s.bugs.Snapshot, s.bugs.Subscribe)
	})

	t := api.Group("/typing")
	t.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.typing.Snapshot())
	})
	t.POST("/start", func(c *gin.Context) {
		s.typing.Start()
		c.JSON(http.StatusOK, s.typing.Snapshot())
	})
	t.POST("/stop", func(c *gin.Context) {
		s.typing.Stop()
		c.JSON(http.StatusOK, s.typing.Snapshot())
	})
	t.POST("/input", s.handleInput)
	t.GET("/events", func(c *gin.Context) {
		stream(c, s.quit, s.typing.Snapshot, s.typing.Subscribe)
	})

	return r
}

func (s *Server) handleSnapshot(c *gin.Context) {
	snap, err := s.Snapshot(c.Param("name"))
	if errors.Is(err, ErrUnknownGame) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_game"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

type areaRequest struct {
	Width  float64 `json:"width" binding:"required,gt=0"`
	Height float64 `json:"height" binding:"required,gt=0"`
}

func (s *Server) handleArea(c *gin.Context) {
	var req areaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_area"})
		return
	}
	s.area.Set(req.Width, req.Height)
	c.JSON(http.StatusOK, gin.H{"width": req.Width, "height": req.Height})
}

type inputRequest struct {
	Value *string `json:"value" binding:"required"`
}

func (s *Server) handleInput(c *gin.Context) {
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input"})
		return
	}
	s.typing.Input(*req.Value)
	c.JSON(http.StatusOK, s.typing.Snapshot())
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasSuffix(path, "/events") {
			return
		}
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("http")
	}
}
