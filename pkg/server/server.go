// Package server exposes the pattern compiler and matcher over HTTP:
// compile a pattern once, then match any number of lines against the
// cached recognizer.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"regrep/pkg/grep"
	"regrep/pkg/log"
)

// Server caches one compiled engine per (pattern, ignore_case) pair.
// Matching only reads the immutable DFA, so concurrent requests share
// engines freely; the mutex guards nothing but the cache map itself.
type Server struct {
	echo *echo.Echo
	cfg  *grep.Config

	mu      sync.Mutex
	engines map[string]*grep.Engine
}

func New(cfg *grep.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		cfg:     cfg,
		engines: make(map[string]*grep.Engine),
	}
	e.GET("/healthz", s.handleHealth)
	e.POST("/api/compile", s.handleCompile)
	e.POST("/api/match", s.handleMatch)
	return s
}

// Handler exposes the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) Start() error {
	log.Printf("regrep service listening on %s", s.cfg.ListenAddress)
	return s.echo.Start(s.cfg.ListenAddress)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) engine(pattern string, ignoreCase bool) (*grep.Engine, error) {
	key := fmt.Sprintf("%t\x00%s", ignoreCase, pattern)
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.engines[key]; ok {
		return e, nil
	}
	e, err := grep.Compile(pattern, ignoreCase)
	if err != nil {
		return nil, err
	}
	s.engines[key] = e
	return e, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

type compileRequest struct {
	Pattern    string `json:"pattern"`
	IgnoreCase bool   `json:"ignore_case"`
}

type compileResponse struct {
	Pattern  string `json:"pattern"`
	States   int    `json:"states"`
	Alphabet string `json:"alphabet"`
}

func (s *Server) handleCompile(c echo.Context) error {
	var req compileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	engine, err := s.engine(req.Pattern, req.IgnoreCase)
	if err != nil {
		// Pattern errors are the caller's to fix.
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}
	dfa := engine.DFA()
	return c.JSON(http.StatusOK, compileResponse{
		Pattern:  req.Pattern,
		States:   dfa.Len(),
		Alphabet: string(dfa.Alphabet()),
	})
}

type matchRequest struct {
	Pattern    string   `json:"pattern"`
	IgnoreCase bool     `json:"ignore_case"`
	Lines      []string `json:"lines"`
}

type matchResponse struct {
	Pattern string   `json:"pattern"`
	Results []bool   `json:"results"`
	Matched []string `json:"matched"`
}

func (s *Server) handleMatch(c echo.Context) error {
	var req matchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	engine, err := s.engine(req.Pattern, req.IgnoreCase)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}
	results, err := engine.MatchLines(c.Request().Context(), req.Lines, s.cfg.Workers)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	matched := make([]string, 0, len(req.Lines))
	for i, ok := range results {
		if ok {
			matched = append(matched, req.Lines[i])
		}
	}
	return c.JSON(http.StatusOK, matchResponse{
		Pattern: req.Pattern,
		Results: results,
		Matched: matched,
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
