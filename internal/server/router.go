package server

import (
	"net/http"

	"github.com/d7708945/scammail/internal/config"
	"github.com/d7708945/scammail/internal/metrics"
	"github.com/d7708945/scammail/internal/mw"
	"github.com/d7708945/scammail/internal/notify"
	"github.com/d7708945/scammail/internal/service"
	"github.com/d7708945/scammail/internal/store"
	"github.com/d7708945/scammail/internal/web"
	"github.com/d7708945/scammail/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 统一初始化 Gin 中间件、REST API、信息流 WebSocket 与静态页面。
func SetupRouter(cfg config.Config, st *store.Store, hub *ws.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware())
	r.Use(mw.CORS(cfg.Env))

	notifier := notify.New(cfg.AdminWebhook)
	userSvc := service.NewUserService(st, notifier)
	msgSvc := service.NewMessageService(st, userSvc, hub)
	h := NewHandler(userSvc, msgSvc)

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/verify", h.Verify)
	api.GET("/messages", h.ListMessages)
	api.POST("/messages", h.PostMessage)

	r.GET("/ws", ws.Serve(hub))

	web.Register(r, cfg.FilesDir)
	return r
}
