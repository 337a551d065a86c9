package middle

import (
	"net/http"

	"go.uber.org/fx"
)

type CORSMiddlewareParams struct {
	fx.In

	AllowedOrigins []string `name:"allowed_origins"`
}

// CORSMiddleware echoes known origins back and falls back to the
// wildcard for everything else. Preflight requests short-circuit with
// an empty 200.
type CORSMiddleware struct {
	allowed map[string]struct{}
}

func NewCORSMiddleware(p CORSMiddlewareParams) *CORSMiddleware {
	allowed := make(map[string]struct{}, len(p.AllowedOrigins))
	for _, origin := range p.AllowedOrigins {
		allowed[origin] = struct{}{}
	}
	return &CORSMiddleware{allowed: allowed}
}

func (m *CORSMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowOrigin := "*"
		if origin := r.Header.Get("Origin"); origin != "" {
			if _, ok := m.allowed[origin]; ok {
				allowOrigin = origin
			}
		}
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
