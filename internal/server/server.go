// Package server serves the rendered page and its assets over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/preethi-chalasani/portfolio/internal/content"
	"github.com/preethi-chalasani/portfolio/internal/projects"
	"github.com/preethi-chalasani/portfolio/internal/site"
)

const shutdownTimeout = 5 * time.Second

// pages holds the document rendered once per possible first-paint expansion.
type pages struct {
	collapsed []byte
	expanded  map[string][]byte
}

// Server renders the page when content is set and answers every request from
// those bytes.
type Server struct {
	engine  *gin.Engine
	logger  *zap.Logger
	options site.Options
	pages   atomic.Pointer[pages]
}

// New renders s and builds the router.
func New(s *content.Site, opts site.Options, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &Server{logger: logger, options: opts}
	if err := srv.SetContent(s); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.StaticFS("/static", http.FS(site.Static()))
	r.GET("/", srv.index)
	r.HEAD("/", srv.index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	srv.engine = r
	return srv, nil
}

// SetContent re-renders the page for s. On error the previous page is kept.
func (s *Server) SetContent(c *content.Site) error {
	opts := s.options
	opts.Expansion = projects.Expansion{}
	collapsed, err := site.RenderBytes(c, opts)
	if err != nil {
		return err
	}
	p := &pages{collapsed: collapsed, expanded: make(map[string][]byte)}
	if c != nil {
		for _, proj := range c.Work.Projects {
			opts.Expansion = projects.Expanded(proj.ID)
			b, err := site.RenderBytes(c, opts)
			if err != nil {
				return err
			}
			p.expanded[proj.ID] = b
		}
	}
	s.pages.Store(p)
	return nil
}

// Handler exposes the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) index(c *gin.Context) {
	p := s.pages.Load()
	body := p.collapsed
	if id, ok := projects.ParseExpansion(c.Query("open")).Open(); ok {
		if b, found := p.expanded[id]; found {
			body = b
		}
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errc
	return nil
}

// requestLogger logs page requests with zap. Asset requests are skipped.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/favicon") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
