package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roomcast/roomcast/internal/blob"
	"github.com/roomcast/roomcast/internal/config"
	"github.com/roomcast/roomcast/internal/core"
)

// NewServer builds the HTTP server: websocket endpoint, snapshot API,
// uploads, and the static file route backing stored attachments.
func NewServer(hub *core.Hub, blobs blob.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg.WSRateLimit, logger)))

	api := NewAPIHandlers(hub, blobs, cfg.MaxUploadBytes, logger)
	group := router.Group("/api")
	{
		group.GET("/history", api.History)
		group.GET("/users", api.Users)
		group.POST("/upload", api.Upload)
	}

	router.Static("/files", cfg.UploadDir)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
