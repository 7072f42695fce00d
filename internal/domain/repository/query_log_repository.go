package repository

import (
	"context"

	"github.com/medihelp/sally-api/internal/domain/entity"
)

// QueryLogRepository puerto de persistencia de consultas médicas registradas.
type QueryLogRepository interface {
	Create(ctx context.Context, log *entity.QueryLog) error
	List(ctx context.Context) ([]entity.QueryLog, error)
}
