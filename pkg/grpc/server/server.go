// Package server hosts the assessment gRPC API: the listener, the interceptor
// chain, per-service health and graceful stop.
package server

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const defaultPort = 50051

type Option func(*config)

type config struct {
	port       int
	logger     *zap.Logger
	reflection bool
	logCalls   bool
	durations  *prometheus.HistogramVec
	extra      []grpc.UnaryServerInterceptor
}

// WithPort sets the TCP port. 0 picks a free one.
func WithPort(port int) Option {
	return func(c *config) { c.port = port }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func WithReflection(enabled bool) Option {
	return func(c *config) { c.reflection = enabled }
}

// WithLogging logs every call with its method, peer and status.
func WithLogging(enabled bool) Option {
	return func(c *config) { c.logCalls = enabled }
}

// WithMetrics records per-call latency on durations.
func WithMetrics(durations *prometheus.HistogramVec) Option {
	return func(c *config) { c.durations = durations }
}

// WithUnaryInterceptors appends interceptors after the built-in ones.
func WithUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) Option {
	return func(c *config) { c.extra = append(c.extra, interceptors...) }
}

// interceptors orders the chain outermost first. Recovery sits inside the
// latency and call-log interceptors so a panicking handler is counted and
// logged as Internal.
func (c config) interceptors(logger *zap.Logger) []grpc.UnaryServerInterceptor {
	var chain []grpc.UnaryServerInterceptor
	if c.durations != nil {
		chain = append(chain, MetricsInterceptor(c.durations))
	}
	if c.logCalls {
		chain = append(chain, LoggingInterceptor(logger))
	}
	chain = append(chain, RecoveryInterceptor(logger))
	return append(chain, c.extra...)
}

// Server serves the registered APIs and reports each under its own name on
// the standard health service.
type Server struct {
	srv      *grpc.Server
	lis      net.Listener
	health   *health.Server
	logger   *zap.Logger
	services []string
	errs     chan error
}

// New listens on the configured port. Nothing is served until Start.
func New(opts ...Option) (*Server, error) {
	cfg := config{port: defaultPort}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.port < 0 || cfg.port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 0 and 65535", cfg.port)
	}

	lis, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(cfg.port)))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", cfg.port, err)
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(cfg.interceptors(cfg.logger)...))
	if cfg.reflection {
		reflection.Register(srv)
	}

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	return &Server{
		srv:    srv,
		lis:    lis,
		health: hs,
		logger: cfg.logger.Named("grpc-server"),
		errs:   make(chan error, 1),
	}, nil
}

// Register installs an API and reports it SERVING under name.
func (s *Server) Register(name string, register func(*grpc.Server)) {
	register(s.srv)
	s.services = append(s.services, name)
	s.health.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	s.logger.Info("service registered", zap.String("service", name))
}

// SetServing flips the overall status and every registered API together.
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	for _, name := range s.services {
		s.health.SetServingStatus(name, st)
	}
}

// Start serves in the background. A failed Serve is reported on Errors.
func (s *Server) Start() {
	s.SetServing(true)
	s.logger.Info("gRPC server starting", zap.String("addr", s.lis.Addr().String()))

	go func() {
		if err := s.srv.Serve(s.lis); err != nil {
			s.logger.Error("gRPC server failed", zap.Error(err))
			s.errs <- err
		}
	}()
}

// Errors delivers at most one Serve failure. It is never closed.
func (s *Server) Errors() <-chan error {
	return s.errs
}

// Shutdown reports NOT_SERVING, then drains in-flight calls until ctx ends
// and stops hard after that.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("gRPC server shutting down")
	s.SetServing(false)

	drained := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(drained)
	}()

	select {
	case <-drained:
		s.logger.Info("gRPC server stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("drain timed out, stopping hard")
		s.srv.Stop()
		return ctx.Err()
	}
}

func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}
