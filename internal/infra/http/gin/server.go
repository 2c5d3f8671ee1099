package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"revu/internal/infra/config"
	"revu/internal/infra/obs"
)

type CatalogHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
}

type RatingsHTTP interface {
	List(c *gin.Context)
	Submit(c *gin.Context)
}

type PhotoHTTP interface {
	Update(c *gin.Context)
}

type WatchHTTP interface {
	Entities(c *gin.Context)
	Ratings(c *gin.Context)
}

type Handlers struct {
	Catalog        CatalogHTTP
	Ratings        RatingsHTTP
	Photo          PhotoHTTP
	Watch          WatchHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Watch != nil {
		api.GET("/:kind/watch", h.Watch.Entities)
		api.GET("/:kind/:id/ratings/watch", h.Watch.Ratings)
	}
	if h.Catalog != nil {
		api.GET("/:kind", h.Catalog.List)
		api.GET("/:kind/:id", h.Catalog.Get)
	}
	if h.Ratings != nil {
		api.GET("/:kind/:id/ratings", h.Ratings.List)
		api.POST("/:kind/:id/ratings", h.Ratings.Submit)
	}
	if h.Photo != nil {
		api.POST("/:kind/:id/photo", h.Photo.Update)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
