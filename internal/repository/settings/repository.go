package settings

import (
	"context"

	"boomstore/internal/domain"
)

// Repository reads and writes the single store settings record.
type Repository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, s domain.Settings) (*domain.Settings, error)
}
