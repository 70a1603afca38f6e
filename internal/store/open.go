package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/workspace-nexus/internal/seed"
)

// SeedSource supplies the data a store is initialized from.
type SeedSource interface {
	Load(ctx context.Context) (seed.Data, error)
}

// Open loads seed data from src and builds a store from it.
func Open(ctx context.Context, src SeedSource, logger *slog.Logger, opts ...Option) (*Store, error) {
	d, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading seed: %w", err)
	}
	return New(d, logger, opts...)
}
