package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
)

const actorColumns = `id, username, role, pin_hash, active, created_at, updated_at`

func scanActor(row rowScanner) (domain.Actor, error) {
	var actor domain.Actor
	err := row.Scan(&actor.ID, &actor.Username, &actor.Role, &actor.PinHash, &actor.Active, &actor.CreatedAt, &actor.UpdatedAt)
	return actor, err
}

type ActorRepository struct {
	db *sql.DB
}

func NewActorRepository(db *sql.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

func (r *ActorRepository) Create(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	logger.Info("actor repository create", logger.Fields{"username": actor.Username, "role": actor.Role})

	const query = `
INSERT INTO users (username, role, pin_hash, active)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, actor.Username, actor.Role, actor.PinHash, actor.Active).
		Scan(&actor.ID, &actor.CreatedAt, &actor.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Actor{}, fmt.Errorf("username %s: %w", actor.Username, commons.ErrAlreadyExists)
		}
		logger.Error("actor repository create failed", err, logger.Fields{"username": actor.Username})
		return domain.Actor{}, fmt.Errorf("create actor: %w: %v", commons.ErrPersistence, err)
	}
	return actor, nil
}

func (r *ActorRepository) GetByID(ctx context.Context, id int64) (domain.Actor, error) {
	actor, err := scanActor(r.db.QueryRowContext(ctx, `SELECT `+actorColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return domain.Actor{}, notFound(err, "get actor")
	}
	return actor, nil
}

func (r *ActorRepository) GetByUsername(ctx context.Context, username string) (domain.Actor, error) {
	actor, err := scanActor(r.db.QueryRowContext(ctx, `SELECT `+actorColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return domain.Actor{}, notFound(err, "get actor by username")
	}
	return actor, nil
}

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry domain.AuditEntry) error {
	details, err := json.Marshal(logger.SanitizePayload(entry.Details))
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}

	const query = `INSERT INTO audit_log (actor_id, role, action, details) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, entry.ActorID, entry.Role, entry.Action, details); err != nil {
		return fmt.Errorf("write audit entry: %w: %v", commons.ErrPersistence, err)
	}
	return nil
}

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification domain.Notification) error {
	const query = `INSERT INTO notifications (user_id, type, channel, message, status) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, notification.UserID, notification.Type, notification.Channel, notification.Message, notification.Status); err != nil {
		return fmt.Errorf("write notification: %w: %v", commons.ErrPersistence, err)
	}
	return nil
}
