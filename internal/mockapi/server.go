// Package mockapi is an in-memory stand-in for the inventory backend. It
// serves the same routes the client consumes so the client can be developed
// and tested without the real server.
package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/suteetoe/productdesk/pkg/jwtutil"
	"github.com/suteetoe/productdesk/pkg/metrics"
)

// Options configures a Server
type Options struct {
	Logger      *zap.Logger
	Registry    *prometheus.Registry
	JWT         *jwtutil.JWTConfig
	RequireAuth bool
	Store       *Store
}

// Server is the mock inventory backend
type Server struct {
	echo     *echo.Echo
	store    *Store
	jwt      *jwtutil.JWTUtil
	log      *zap.Logger
	registry *prometheus.Registry
}

// New wires the routes and middleware
func New(opts Options) *Server {
	s := &Server{
		store:    opts.Store,
		log:      opts.Logger,
		registry: opts.Registry,
	}
	if s.store == nil {
		s.store = NewStore()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	jwtConfig := opts.JWT
	if jwtConfig == nil {
		jwtConfig = &jwtutil.JWTConfig{SigningKey: "mocksecretkey", ExpirationHours: 24}
	}
	s.jwt = jwtutil.NewJWTUtil(jwtConfig)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(s.requestLogger)
	e.Use(metrics.NewHTTPMetrics("mockapi", s.registry).Middleware())

	e.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/register", s.Register)
	e.POST("/login", s.Login)

	var guards []echo.MiddlewareFunc
	if opts.RequireAuth {
		guards = append(guards, s.requireBearer)
	}
	products := e.Group("/products", guards...)
	products.GET("", s.ListProducts)
	products.POST("", s.CreateProduct)
	products.PUT("/:id", s.UpdateProduct)
	products.DELETE("/:id", s.DeleteProduct)

	s.echo = e
	return s
}

// Handler exposes the server for httptest or a custom listener
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Store returns the backing store
func (s *Server) Store() *Store {
	return s.store
}

// Start listens on addr until the server is shut down
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Echo returns the underlying echo instance, mainly for graceful shutdown
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
