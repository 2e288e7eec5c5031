package server

import (
	"context"
	"ctchen222/Exercise-Tracker/internal/api/controller"
	"ctchen222/Exercise-Tracker/internal/observability"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//go:embed web
var webFS embed.FS

const serviceName = "exercise-tracker"

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
}

type Server struct {
	engine             *gin.Engine
	handler            http.Handler
	store              Pinger
	userController     *controller.UserController
	exerciseController *controller.ExerciseController
}

// NewServer builds the gin engine and registers every route.
func NewServer(store Pinger, uc *controller.UserController, ec *controller.ExerciseController, opts Options) *Server {
	s := &Server{
		engine:             gin.New(),
		store:              store,
		userController:     uc,
		exerciseController: ec,
	}
	s.engine.Use(gin.Recovery(), requestLogger(), observability.GinMiddleware())
	s.RegisterHandlers()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.engine)
	s.handler = otelhttp.NewHandler(corsHandler, serviceName)
	return s
}

// RegisterHandlers wires routes to the engine.
func (s *Server) RegisterHandlers() {
	static := mustSub(webFS, "web")
	s.engine.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(static))
	})
	s.engine.StaticFS("/public", http.FS(mustSub(static, "public")))

	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.POST("/users", s.userController.CreateUser)
	api.GET("/users", s.userController.ListUsers)
	api.POST("/users/:id/exercises", s.exerciseController.AddExercise)
	api.GET("/users/:id/logs", s.exerciseController.GetLogs)
}

// Handler returns the engine wrapped with CORS and tracing.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.PingContext(ctx); err != nil {
		slog.WarnContext(ctx, "health check failed", "error", err)
		c.String(http.StatusServiceUnavailable, "store unavailable")
		return
	}
	c.String(http.StatusOK, "ok")
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "http request",
			"http.method", c.Request.Method,
			"http.path", c.Request.URL.Path,
			"http.status", c.Writer.Status(),
			"http.latency", time.Since(start),
		)
	}
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err) // embedded layout is fixed at build time
	}
	return sub
}
