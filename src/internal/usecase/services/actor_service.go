package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type ActorService struct {
	actors repo_interfaces.ActorRepository
	audit  *AuditService
	cost   int
}

func NewActorService(actors repo_interfaces.ActorRepository, audit *AuditService, bcryptCost int) *ActorService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &ActorService{actors: actors, audit: audit, cost: bcryptCost}
}

func (s *ActorService) CreateActor(ctx context.Context, actor domain.Actor, req models.CreateActorRequest) (commons.Response[models.ActorResponse], error) {
	const op = "actor service create actor"
	logger.Info(op+" request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})
	fields := logger.Fields{"username": strings.TrimSpace(req.Username)}

	if err := requireAdmin(actor, "create actors"); err != nil {
		return failure[models.ActorResponse](op, err, fields)
	}
	if err := req.Validate(); err != nil {
		return failure[models.ActorResponse](op, err, fields)
	}

	created, err := s.create(ctx, req.Username, domain.Role(strings.ToUpper(strings.TrimSpace(req.Role))), req.PIN)
	if err != nil {
		return failure[models.ActorResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionActorCreate, map[string]any{
		"createdId": created.ID,
		"username":  created.Username,
		"role":      string(created.Role),
	})
	return commons.SuccessResponse("actor created successfully", toActorResponse(created)), nil
}

func (s *ActorService) create(ctx context.Context, username string, role domain.Role, pin string) (domain.Actor, error) {
	hashed, err := s.hashPIN(strings.TrimSpace(pin))
	if err != nil {
		return domain.Actor{}, err
	}
	return s.actors.Create(ctx, domain.Actor{
		Username: strings.TrimSpace(username),
		Role:     role,
		PinHash:  hashed,
		Active:   true,
	})
}

// EnsureAdmin creates the bootstrap admin unless an actor with that username
// already exists.
func (s *ActorService) EnsureAdmin(ctx context.Context, username, pin string) (domain.Actor, error) {
	existing, err := s.actors.GetByUsername(ctx, strings.TrimSpace(username))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, commons.ErrRecordNotFound) {
		return domain.Actor{}, fmt.Errorf("look up admin %q: %w", username, err)
	}

	req := models.CreateActorRequest{Username: username, Role: string(domain.RoleAdmin), PIN: pin}
	if err := req.Validate(); err != nil {
		return domain.Actor{}, err
	}
	created, err := s.create(ctx, username, domain.RoleAdmin, pin)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("create admin %q: %w", username, err)
	}
	logger.Info("actor service bootstrap admin created", logger.Fields{"actorId": created.ID, "username": created.Username})
	return created, nil
}

// Authenticate resolves an actor from its id and PIN. Every failure reads as
// ErrUnauthorized so callers cannot tell which part was wrong.
func (s *ActorService) Authenticate(ctx context.Context, actorID int64, pin string) (domain.Actor, error) {
	actor, err := s.actors.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.Actor{}, commons.UnauthorizedError("invalid credentials")
		}
		return domain.Actor{}, err
	}
	if !actor.Active {
		return domain.Actor{}, commons.UnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(actor.PinHash), []byte(pin)); err != nil {
		return domain.Actor{}, commons.UnauthorizedError("invalid credentials")
	}
	return actor, nil
}

func (s *ActorService) hashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hashed), nil
}
