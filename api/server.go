package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Urjashee/response-formatter/api/responses"
	"github.com/Urjashee/response-formatter/common/auth"
	"github.com/Urjashee/response-formatter/pkg/logger"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Options configures the API server
type Options struct {
	Auth         auth.Config
	AllowOrigins []string
	// Tracing enables otelgin spans; the tracer provider is installed by the caller
	Tracing     bool
	ServiceName string
}

// Server represents the API server
type Server struct {
	router *gin.Engine
	logger *zap.Logger
	opts   Options
	http   *http.Server
}

// NewServer creates a new API server
func NewServer(logger *zap.Logger, opts Options) *Server {
	server := &Server{
		logger: logger,
		opts:   opts,
	}

	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := gin.New()

	router.Use(RequestID())
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(Metrics())
	if opts.Tracing {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	server.router = router
	server.http = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server.registerRoutes()
	return server
}

// Start serves on addr until Shutdown is called. It returns nil once the
// server has been shut down, including when Shutdown ran first.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Starting API server", zap.String("addr", ln.Addr().String()))
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server; later calls to Start return at once
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.http.Shutdown(ctx)
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	public := s.router.Group("/api/v1")
	{
		public.GET("/metrics", gin.WrapH(promhttp.Handler()))
		public.GET("/health", s.healthCheck)
		public.POST("/echo", s.echo)
	}

	protected := public.Group("")
	protected.Use(auth.Middleware(logger.NewSlog(s.logger), s.opts.Auth))
	{
		protected.GET("/me", s.me)
		protected.GET("/admin/ping", auth.RequireRole(auth.RoleAdmin), s.adminPing)
	}
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(c *gin.Context) {
	s.send(c, responses.Success(responses.Gin(c), "Service is healthy.", gin.H{
		"time": time.Now().UTC().Format(time.RFC3339),
	}))
}

// echo answers with whatever JSON value was posted, run through the envelope
func (s *Server) echo(c *gin.Context) {
	var body interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.send(c, responses.Error(responses.Gin(c), "Request body is not valid JSON.", nil))
		return
	}
	s.send(c, responses.Success(responses.Gin(c), "Payload received.", body))
}

func (s *Server) me(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	s.send(c, responses.Success(responses.Gin(c), "", gin.H{
		"subject": claims.Subject,
		"role":    claims.Role,
	}))
}

func (s *Server) adminPing(c *gin.Context) {
	s.send(c, responses.Success(responses.Gin(c), "pong", nil))
}

// send logs a failed envelope write; the response cannot be recovered at this point
func (s *Server) send(c *gin.Context, err error) {
	if err != nil {
		s.logger.Error("Failed to write response",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
	}
}
