package repo_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type ActorRepository interface {
	Create(ctx context.Context, actor domain.Actor) (domain.Actor, error)
	GetByID(ctx context.Context, id int64) (domain.Actor, error)
	GetByUsername(ctx context.Context, username string) (domain.Actor, error)
}
