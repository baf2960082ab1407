package services

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
)

// AuditService records who did what. Failures are logged and never reach
// the caller.
type AuditService struct {
	repo repo_interfaces.AuditRepository
}

func NewAuditService(repo repo_interfaces.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Record(ctx context.Context, actor domain.Actor, action string, details map[string]any) {
	if s == nil || s.repo == nil {
		return
	}

	entry := domain.AuditEntry{
		ActorID: actor.ID,
		Role:    actor.Role,
		Action:  action,
		Details: details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("audit record failed", err, logger.Fields{
			"actorId": actor.ID,
			"action":  action,
		})
	}
}

const (
	notificationChannel = "IN_APP"
	notificationQueued  = "QUEUED"
)

type NotificationService struct {
	repo repo_interfaces.NotificationRepository
}

func NewNotificationService(repo repo_interfaces.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Notify(ctx context.Context, userID int64, kind domain.NotificationType, message string) {
	if s == nil || s.repo == nil {
		return
	}

	notification := domain.Notification{
		UserID:  userID,
		Type:    kind,
		Channel: notificationChannel,
		Message: message,
		Status:  notificationQueued,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		logger.Error("notification enqueue failed", err, logger.Fields{
			"userId": userID,
			"type":   kind,
		})
	}
}
