package docstore

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the document store
var Module = fx.Module("docstore",
	fx.Provide(NewStore),
)

type StoreParams struct {
	fx.In

	Backend     string `name:"store_backend"`
	DatabaseURL string `name:"database_url"`
	Logger      *zap.Logger
}

// NewStore selects the backend by configuration: postgres for real
// deployments, the in-memory store for local development and tests.
func NewStore(p StoreParams) (Store, error) {
	switch p.Backend {
	case "postgres":
		return NewPostgresStore(PostgresParams{DatabaseURL: p.DatabaseURL, Logger: p.Logger})
	case "", "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", p.Backend)
	}
}
