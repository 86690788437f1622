// internal/server/server.go
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/idfetch"
	"github.com/xkilldash9x/sifminer/internal/miner"
	"github.com/xkilldash9x/sifminer/internal/reporting"
	"github.com/xkilldash9x/sifminer/internal/sif"
)

const requestIDHeader = "X-Request-ID"

// Server answers SIF queries against one loaded model. The model and the
// blacklist are shared read-only between requests.
type Server struct {
	model       *biopax.Model
	blacklist   *blacklist.Blacklist
	fetcher     idfetch.Fetcher
	concurrency int
	log         *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

func WithConcurrency(n int) Option { return func(s *Server) { s.concurrency = n } }

func WithLogger(l *zap.Logger) Option { return func(s *Server) { s.log = l } }

// New creates a server. A nil blacklist disables ubiquitous molecule
// filtering.
func New(model *biopax.Model, bl *blacklist.Blacklist, fetcher idfetch.Fetcher, opts ...Option) *Server {
	s := &Server{model: model, blacklist: bl, fetcher: fetcher, concurrency: 1, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("server")
	return s
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Types  []string `json:"types"`
	Format string   `json:"format"`
}

// TypeInfo describes one interaction type for GET /types.
type TypeInfo struct {
	Tag         string   `json:"tag"`
	Directed    bool     `json:"directed"`
	Description string   `json:"description"`
	Miners      []string `json:"miners"`
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET("/healthz", s.Health)
	r.GET("/types", s.Types)
	r.POST("/search", s.Search)
	return r
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("Request served.",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "elements": s.model.Len(), "blacklisted": s.blacklist.Len()})
}

func (s *Server) Types(c *gin.Context) {
	types := sif.Types()
	out := make([]TypeInfo, 0, len(types))
	for _, t := range types {
		out = append(out, TypeInfo{Tag: t.Tag, Directed: t.Directed, Description: t.Description, Miners: miner.ForType(t)})
	}
	c.JSON(http.StatusOK, gin.H{"types": out})
}

func (s *Server) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Format == "" {
		req.Format = "json"
	}
	types, err := sif.ParseTypes(req.Types)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	encode, err := encoderFor(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	miners := miner.ForTypes(s.blacklist, types...)
	searcher := sif.NewSearcher(s.fetcher, miner.AsSIF(miners),
		sif.WithConcurrency(s.concurrency),
		sif.WithLogger(s.log.With(zap.String("request_id", c.GetString("request_id")))))

	is, err := searcher.SearchSIF(c.Request.Context(), s.model)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away.
			c.Status(499)
			return
		}
		s.log.Error("Search failed.", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search"})
		return
	}

	if encode == nil {
		c.JSON(http.StatusOK, gin.H{
			"request_id":   c.GetString("request_id"),
			"interactions": reporting.Records(is),
		})
		return
	}
	var buf bytes.Buffer
	if err := encode(&buf, is); err != nil {
		s.log.Error("Failed to encode result.", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode result"})
		return
	}
	c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", buf.Bytes())
}

// encoderFor returns the text encoder of a format, or nil for JSON.
func encoderFor(format string) (reporting.EncodeFunc, error) {
	switch format {
	case "json":
		return nil, nil
	case "sif":
		return reporting.WriteSIF, nil
	case "extended":
		return func(w io.Writer, is []*sif.Interaction) error {
			return reporting.WriteExtended(w, is, reporting.DefaultColumns()...)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", reporting.ErrUnsupportedFormat, format)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Listening.", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("Shutting down server.")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}
