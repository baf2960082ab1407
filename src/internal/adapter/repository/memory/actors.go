package memory

import (
	"context"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

func (r actorRepo) Create(_ context.Context, actor domain.Actor) (domain.Actor, error) {
	var err error
	r.write(func(st *state, now time.Time) {
		for _, existing := range st.actors {
			if existing.Username == actor.Username {
				err = commons.ErrAlreadyExists
				return
			}
		}
		actor.ID = st.next("actors")
		actor.CreatedAt = now
		actor.UpdatedAt = now
		st.actors[actor.ID] = actor
	})
	if err != nil {
		return domain.Actor{}, err
	}
	return actor, nil
}

func (r actorRepo) GetByID(_ context.Context, id int64) (domain.Actor, error) {
	var (
		actor domain.Actor
		ok    bool
	)
	r.read(func(st *state) { actor, ok = st.actors[id] })
	if !ok {
		return domain.Actor{}, commons.ErrRecordNotFound
	}
	return actor, nil
}

func (r actorRepo) GetByUsername(_ context.Context, username string) (domain.Actor, error) {
	var (
		actor domain.Actor
		ok    bool
	)
	r.read(func(st *state) {
		for _, candidate := range st.actors {
			if candidate.Username == username {
				actor, ok = candidate, true
				return
			}
		}
	})
	if !ok {
		return domain.Actor{}, commons.ErrRecordNotFound
	}
	return actor, nil
}

func (r auditRepo) Create(_ context.Context, entry domain.AuditEntry) error {
	r.write(func(st *state, now time.Time) {
		entry.ID = st.next("audit_log")
		entry.CreatedAt = now
		st.audit = append(st.audit, entry)
	})
	return nil
}

func (r notificationRepo) Create(_ context.Context, notification domain.Notification) error {
	r.write(func(st *state, now time.Time) {
		notification.ID = st.next("notifications")
		notification.CreatedAt = now
		st.notifications = append(st.notifications, notification)
	})
	return nil
}

// AuditEntries is a snapshot of the audit log, oldest first.
func (s *Store) AuditEntries() []domain.AuditEntry {
	var entries []domain.AuditEntry
	s.read(func(st *state) { entries = append([]domain.AuditEntry{}, st.audit...) })
	return entries
}

func (s *Store) SentNotifications() []domain.Notification {
	var sent []domain.Notification
	s.read(func(st *state) { sent = append([]domain.Notification{}, st.notifications...) })
	return sent
}
