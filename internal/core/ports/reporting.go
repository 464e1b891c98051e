package ports

import (
	"context"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, rows []domain.ComparisonRow) error
}
