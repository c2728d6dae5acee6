// Package api serves the catalog read-only over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/evdnx/gator/catalog"
	"github.com/evdnx/gator/logger"
	"github.com/evdnx/gator/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter returns an engine exposing c. A nil logger discards request logs.
func NewRouter(c *catalog.Catalog, log logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.Nop()
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	RegisterRoutes(r, c)
	return r
}

func RegisterRoutes(r *gin.Engine, c *catalog.Catalog) {
	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "records": c.Len()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.GET("/params", func(ctx *gin.Context) {
		symbol := ctx.Query("symbol")
		var schema catalog.Schema
		if s := ctx.Query("schema"); s != "" {
			v, err := catalog.ParseSchema(s)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			schema = v
		}
		out := []catalog.Entry{}
		for _, e := range c.Entries() {
			if symbol != "" && e.Key.Symbol != symbol {
				continue
			}
			if schema != "" && e.Key.Schema != schema {
				continue
			}
			out = append(out, e)
		}
		ctx.JSON(http.StatusOK, out)
	})

	// With ?schema= the exact record is returned. Without it the pair must
	// exist under a single schema; otherwise the collision is reported.
	v1.GET("/params/:symbol/:timeframe", func(ctx *gin.Context) {
		symbol := ctx.Param("symbol")
		tf, err := types.ParseTimeframe(ctx.Param("timeframe"))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if s := ctx.Query("schema"); s != "" {
			schema, err := catalog.ParseSchema(s)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			e, ok := c.Lookup(catalog.Key{Symbol: symbol, Timeframe: tf, Schema: schema})
			if !ok {
				ctx.JSON(http.StatusNotFound, gin.H{"error": catalog.ErrNotFound.Error()})
				return
			}
			ctx.JSON(http.StatusOK, e)
			return
		}

		e, err := c.Resolve(symbol, tf)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, catalog.ErrAmbiguous):
			body := gin.H{"error": err.Error()}
			for _, col := range c.Collisions() {
				if col.Symbol == symbol && col.Timeframe == tf {
					body["collision"] = col
				}
			}
			ctx.JSON(http.StatusConflict, body)
		case err != nil:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusOK, e)
		}
	})

	v1.GET("/collisions", func(ctx *gin.Context) {
		out := c.Collisions()
		if out == nil {
			out = []catalog.Collision{}
		}
		ctx.JSON(http.StatusOK, out)
	})
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		log.Info("http_request",
			logger.String("method", ctx.Request.Method),
			logger.String("path", ctx.Request.URL.Path),
			logger.Int("status", ctx.Writer.Status()),
			logger.Any("latency", time.Since(start)),
		)
	}
}

// Serve runs h on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, log logger.Logger) error {
	srv := &http.Server{Addr: addr, Handler: h}
	errc := make(chan error, 1)
	go func() {
		log.Info("http_listen", logger.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
