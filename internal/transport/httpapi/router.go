// Package httpapi mounts the HTTP surface: a health check, and the
// websocket upgrade endpoint that hands every new connection to the
// session dispatcher. Grounded on the pack's gin router layout.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fairychess/internal/session"
	"fairychess/internal/transport/ws"
)

// NewRouter builds the gin engine serving /healthz and the /ws upgrade.
func NewRouter(hub *ws.Hub, dispatcher *session.Dispatcher, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginZapLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ws", func(c *gin.Context) {
		connID, err := hub.Upgrade(c.Writer, c.Request)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		log.Info("websocket connection established", zap.String("connId", connID))
	})

	return r
}

func ginZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
