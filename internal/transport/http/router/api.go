package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-todo-api/internal/core/auth"
	"go-todo-api/internal/core/server"
	"go-todo-api/internal/service"
	"go-todo-api/internal/transport/http/handler"
	mdw "go-todo-api/internal/transport/http/middleware"
)

// NewAPIEngine wires the full HTTP surface: public login, then the
// authenticated task and user modules under /api/v1.
func NewAPIEngine(l *zap.Logger, tasks *service.TaskService, users *service.UserService, jwter *auth.JWTer) *gin.Engine {
	r := server.NewRouter(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	handler.NewAuthHandler(users, jwter).MountPublic(api)

	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))
	MountAll(authed,
		handler.NewTaskHandler(tasks),
		handler.NewUserHandler(users),
	)

	return r
}
