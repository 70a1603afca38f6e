package repository

import (
	"context"

	"github.com/rpggio/workspace-nexus/internal/seed"
)

// SeedRepository loads and stores complete seed snapshots
type SeedRepository interface {
	Load(ctx context.Context) (seed.Data, error)
	Save(ctx context.Context, data seed.Data) error
}
