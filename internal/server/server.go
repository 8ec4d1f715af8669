// Package server exposes the compiler over HTTP for editor integrations
// and the web playground.
package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/shapestone/http2java/internal/config"
	"github.com/shapestone/http2java/pkg/http2java"
)

const RequestIDHeader = "X-Request-Id"

const ctxRequestID = "http2java.request_id"

type compileRequest struct {
	Input  string `json:"input"`
	Strict bool   `json:"strict"`
}

type compileResponse struct {
	OK       bool                   `json:"ok"`
	Code     string                 `json:"code,omitempty"`
	Errors   []http2java.Diagnostic `json:"errors"`
	Warnings []http2java.Diagnostic `json:"warnings"`
}

// NewRouter builds the gin engine. A nil logger logs to stdout.
func NewRouter(cfg *config.Config, accessLogger *log.Logger) *gin.Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if accessLogger == nil {
		accessLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	r := gin.New()
	r.Use(requestIDMiddleware())
	r.Use(requestLogger(accessLogger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	v1 := r.Group("/v1")
	v1.POST("/compile", compileHandler(cfg))
	return r
}

func compileHandler(cfg *config.Config) gin.HandlerFunc {
	limit := cfg.Server.MaxBodyBytes
	strictDefault := cfg.Diagnostics.WarningsAsErrors
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "request body too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}

		req := compileRequest{Input: string(body), Strict: strictDefault}
		if strings.HasPrefix(c.ContentType(), "application/json") {
			req = compileRequest{Strict: strictDefault}
			if err := binding.JSON.BindBody(body, &req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid json: " + err.Error()})
				return
			}
		}

		res := http2java.Compile(req.Input)
		ok := res.OK() && !(req.Strict && len(res.Warnings) > 0)
		out := compileResponse{
			OK:       ok,
			Errors:   res.Errors,
			Warnings: res.Warnings,
		}
		if ok {
			out.Code = res.Code
		}
		c.JSON(http.StatusOK, out)
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger(l *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Printf("request_id=%s method=%s path=%q status=%d latency_ms=%d",
			c.GetString(ctxRequestID),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
		)
	}
}

// Run serves on cfg.Server.Listen until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           NewRouter(cfg, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("playground listening: addr=%q", cfg.Server.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("playground shutting down: addr=%q", cfg.Server.Listen)
		return srv.Shutdown(shutdownCtx)
	}
}
