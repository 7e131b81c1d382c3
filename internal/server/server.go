// Package server exposes the string operations over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/AdrianWangs/go-jstring/config"
	"github.com/AdrianWangs/go-jstring/internal/intern"
	"github.com/AdrianWangs/go-jstring/pkg/logger"
	"github.com/AdrianWangs/go-jstring/pkg/router"
)

const (
	defaultBasePath        = "/api/"
	defaultShutdownTimeout = 5 * time.Second

	contentTypeJSON     = "application/json"
	contentTypeProtobuf = "application/x-protobuf"
)

// Server serves the string API
type Server struct {
	addr     string
	basePath string
	protocol string
	pool     *intern.Pool
	router   *router.Router

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
	done     chan struct{}
}

// Option configures a Server
type Option func(*Server)

// WithBasePath sets the prefix of the API routes
func WithBasePath(basePath string) Option {
	return func(s *Server) {
		s.basePath = basePath
	}
}

// WithProtocol sets the default response encoding, config.ProtocolJSON or
// config.ProtocolProtobuf. Clients may still ask for protobuf with an Accept header.
func WithProtocol(protocol string) Option {
	return func(s *Server) {
		s.protocol = protocol
	}
}

// WithPool sets the pool every result is interned into
func WithPool(pool *intern.Pool) Option {
	return func(s *Server) {
		s.pool = pool
	}
}

// New creates a server listening on addr once started
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		basePath: defaultBasePath,
		protocol: config.ProtocolJSON,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pool == nil {
		s.pool = intern.New(0, 0)
	}
	s.router = s.routes()
	return s
}

// NewFromConfig creates a server and its intern pool from cfg
func NewFromConfig(cfg *config.Config) *Server {
	return New(cfg.Addr(),
		WithBasePath(cfg.BasePath),
		WithProtocol(cfg.Protocol),
		WithPool(intern.New(cfg.InternCapacity, cfg.InternTTL())),
	)
}

func (s *Server) routes() *router.Router {
	r := router.New()
	r.Use(router.RecoveryMiddleware())
	r.Use(router.LoggingMiddleware())
	r.Use(router.MethodMiddleware(http.MethodGet))

	r.RegisterFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	api := r.Group(s.basePath)

	strRoutes := api.Group("str")
	strRoutes.RegisterFunc("/concat", s.handleConcat)
	strRoutes.RegisterFunc("/substring", s.handleSubstring)
	strRoutes.RegisterFunc("/indexof", s.handleIndexOf)
	strRoutes.RegisterFunc("/fromint", s.handleFromInt)
	strRoutes.RegisterFunc("/parsefloat", s.handleParseFloat)
	strRoutes.RegisterFunc("/hash", s.handleHash)

	api.Group("intern").RegisterFunc("/stats", s.handleInternStats)

	return r
}

// Handler returns the HTTP handler, for embedding or tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the bound address once started, the configured one before
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start binds the listener and serves in the background until Stop
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return errors.New("server already started")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: defaultShutdownTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.listener = ln
	s.cancel = cancel
	s.done = make(chan struct{})

	logger.Infof("API server started on %s, routes: %s", ln.Addr(), strings.Join(s.router.Routes(), " "))

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Errorf("API server error: %v", err)
		}
	}()

	go func(done chan struct{}) {
		defer close(done)
		<-ctx.Done()
		logger.Info("Shutting down API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Error shutting down API server: %v", err)
		}
	}(s.done)

	return nil
}

// Stop shuts the server down and waits for in-flight requests
func (s *Server) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done, s.listener = nil, nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
