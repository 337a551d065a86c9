package middle

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type RequestLogMiddlewareParams struct {
	fx.In

	Logger *zap.Logger
}

// RequestLogMiddleware tags each request with an id and logs it on
// completion with its status and duration.
type RequestLogMiddleware struct {
	logger *zap.Logger
}

type RequestIdKey struct{}

func NewRequestLogMiddleware(p RequestLogMiddlewareParams) *RequestLogMiddleware {
	return &RequestLogMiddleware{logger: p.Logger}
}

func (m *RequestLogMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := uuid.New().String()
		ctx := context.WithValue(r.Context(), RequestIdKey{}, requestId)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r.WithContext(ctx))

		m.logger.Info("handled request",
			zap.String("request_id", requestId),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
