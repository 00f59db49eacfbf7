package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eugenenazirov/content-studio/internal/metrics"
	"github.com/eugenenazirov/content-studio/internal/settings"
)

// RouterOption configures the behaviour of NewRouter.
type RouterOption func(*routerConfig)

// WithLogging controls whether access logs are emitted.
func WithLogging(enabled bool) RouterOption {
	return func(cfg *routerConfig) {
		cfg.enableLogging = enabled
	}
}

// WithRateLimit configures the token bucket. A zero rate or burst disables limiting.
func WithRateLimit(ratePerSecond float64, burst int) RouterOption {
	return func(cfg *routerConfig) {
		if ratePerSecond <= 0 || burst <= 0 {
			cfg.rateLimiter = nil
			return
		}
		cfg.rateLimiter = newTokenBucketLimiter(ratePerSecond, burst)
	}
}

// WithRateLimiter overrides the default request rate limiter (primarily for tests).
func WithRateLimiter(limiter rateLimiter) RouterOption {
	return func(cfg *routerConfig) {
		cfg.rateLimiter = limiter
	}
}

// WithThresholds enables slow request reporting. Non-positive thresholds are ignored.
func WithThresholds(enabled bool, thresholds settings.Thresholds) RouterOption {
	return func(cfg *routerConfig) {
		cfg.monitoring = enabled
		cfg.thresholds = thresholds
	}
}

type routerConfig struct {
	enableLogging bool
	logger        *zap.Logger
	rateLimiter   rateLimiter
	monitoring    bool
	thresholds    settings.Thresholds
}

// NewRouter creates an HTTP router with standard middleware.
func NewRouter(handler *Handler, logger *zap.Logger, opts ...RouterOption) http.Handler {
	cfg := routerConfig{
		enableLogging: true,
		logger:        logger,
		rateLimiter:   newTokenBucketLimiter(25, 50),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/health", http.HandlerFunc(handler.handleHealth))
	mux.Handle("GET /api/settings", http.HandlerFunc(handler.handleGetSettings))
	mux.Handle("GET /api/settings/{category}", http.HandlerFunc(handler.handleGetCategory))
	mux.Handle("GET /api/settings/{category}/{key}", http.HandlerFunc(handler.handleGetSetting))
	mux.Handle("GET /api/limits", http.HandlerFunc(handler.handleGetLimits))
	mux.Handle("POST /api/assets/validate", http.HandlerFunc(handler.handleValidateAsset))

	var root http.Handler = mux
	root = corsMiddleware(root)
	root = recoveryMiddleware(cfg.logger, root)
	root = monitoringMiddleware(cfg, root)
	root = rateLimitMiddleware(cfg.rateLimiter, root)
	root = requestIDMiddleware(root)

	return root
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Requested-With")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// monitoringMiddleware records request metrics, emits access logs and
// reports requests slower than the monitoring thresholds.
func monitoringMiddleware(cfg routerConfig, next http.Handler) http.Handler {
	logger := cfg.logger
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		route := routeLabel(r)
		metrics.ObserveRequest(r.Method, route, rec.status, duration)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", duration),
			zap.String("request_id", requestIDFromContext(r.Context())),
		}

		switch severity := slowSeverity(cfg, duration); severity {
		case metrics.SeverityAlert:
			metrics.ObserveSlowRequest(route, severity)
			logger.Error("request exceeded alert threshold", append(fields, zap.Duration("threshold", cfg.thresholds.Alert))...)
		case metrics.SeverityPerformance:
			metrics.ObserveSlowRequest(route, severity)
			logger.Warn("request exceeded performance threshold", append(fields, zap.Duration("threshold", cfg.thresholds.Performance))...)
		default:
			if cfg.enableLogging {
				logger.Info("request completed", fields...)
			}
		}
	})
}

// slowSeverity classifies duration against the thresholds; "" means not slow.
func slowSeverity(cfg routerConfig, duration time.Duration) string {
	if !cfg.monitoring {
		return ""
	}
	if cfg.thresholds.Alert > 0 && duration >= cfg.thresholds.Alert {
		return metrics.SeverityAlert
	}
	if cfg.thresholds.Performance > 0 && duration >= cfg.thresholds.Performance {
		return metrics.SeverityPerformance
	}
	return ""
}

// routeLabel prefers the matched mux pattern to keep metric cardinality bounded.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

func recoveryMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", zap.Any("error", rec))
				writeError(w, http.StatusInternalServerError, "Internal error", "unexpected server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := contextWithRequestID(r.Context(), requestID)

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
