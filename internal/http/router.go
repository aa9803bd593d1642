package http

import (
	"strconv"
	"time"

	nethttp "net/http"

	"github.com/bizcoach/assessment-server/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 30 * time.Second

type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	Checks         map[string]HealthCheck
}

// NewRouter builds the REST and operational routes.
func NewRouter(svc AssessmentService, logger *zap.Logger, opts RouterOptions) nethttp.Handler {
	if svc == nil {
		panic("nil AssessmentService provided to NewRouter")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(logger), middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))
	r.Use(observeDuration)

	r.Get("/healthz", HealthHandler(opts.Checks, logger))
	r.Method(nethttp.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/assessments/score", ScoreHandler())

		v1.Route("/businesses/{businessID}", func(br chi.Router) {
			br.Post("/assessments", SubmitAssessmentHandler(svc, logger))
			br.Put("/assessments/{assessmentID}", SaveAssessmentHandler(svc, logger))
			br.Get("/assessments/latest", LatestAssessmentHandler(svc, logger))
			br.Get("/assessments/score-change", ScoreChangeHandler(svc, logger))
			br.Get("/recommendations", RecommendationsHandler(svc, logger))
			br.Get("/swot/compare", CompareSwotHandler(svc, logger))
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(nethttp.Handler) nethttp.Handler {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

// observeDuration records latency by route pattern so path parameters do not
// explode label cardinality.
func observeDuration(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = nethttp.StatusOK
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(code)).
			Observe(time.Since(start).Seconds())
	})
}
