package service_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type ActorService interface {
	CreateActor(ctx context.Context, actor domain.Actor, req models.CreateActorRequest) (commons.Response[models.ActorResponse], error)
}

// Authenticator resolves the caller behind a request's credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, actorID int64, pin string) (domain.Actor, error)
}
