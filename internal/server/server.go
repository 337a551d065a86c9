package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"onetask-api/internal/handlers"
	"onetask-api/internal/middle"
)

// ServerParams holds the dependencies needed for the API server
type ServerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *zap.Logger
	Port      int `name:"port"`

	CORS       *middle.CORSMiddleware
	RequestLog *middle.RequestLogMiddleware

	Health       *handlers.HealthHandler
	Tasks        *handlers.TaskHandler
	Goals        *handlers.GoalHandler
	Habits       *handlers.HabitHandler
	Projects     *handlers.ProjectHandler
	Notes        *handlers.NotesHandler
	Profiles     *handlers.ProfileHandler
	Chat         *handlers.ChatHandler
	PreviewCodes *handlers.PreviewCodeHandler
}

// NewRouter assembles the route table with CORS and request logging
// applied to every endpoint.
func NewRouter(p ServerParams) chi.Router {
	r := chi.NewRouter()
	r.Use(p.CORS.Middleware)
	r.Use(p.RequestLog.Middleware)

	p.Health.Register(r)
	p.Tasks.Register(r)
	p.Goals.Register(r)
	p.Habits.Register(r)
	p.Projects.Register(r)
	p.Notes.Register(r)
	p.Profiles.Register(r)
	p.Chat.Register(r)
	p.PreviewCodes.Register(r)

	return r
}

// NewServer provides the HTTP server, started and stopped by the fx
// lifecycle.
func NewServer(p ServerParams) *http.Server {
	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", p.Port),
		Handler: NewRouter(p),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}
			p.Logger.Info("Starting server", zap.Int("port", p.Port), zap.String("host", "0.0.0.0"))
			go func() {
				if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
					p.Logger.Error("server stopped unexpectedly", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("Stopping server")
			return srv.Shutdown(ctx)
		},
	})

	return srv
}
