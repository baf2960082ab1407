package repo_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type AuditRepository interface {
	Create(ctx context.Context, entry domain.AuditEntry) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) error
}
