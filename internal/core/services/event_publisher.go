package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
	"github.com/lorrc/distribution-backend/internal/infrastructure/logging"
)

// EventPublisher turns a committed mutation into a broadcast. It runs on the
// caller's goroutine so events from one request leave in call order; the
// broadcaster itself never blocks.
type EventPublisher struct {
	broadcaster ports.EventBroadcaster
	logger      *slog.Logger
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher creates a publisher on top of a broadcaster.
func NewEventPublisher(broadcaster ports.EventBroadcaster, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		broadcaster: broadcaster,
		logger:      logger.With("component", "event_publisher"),
	}
}

// Publish computes the recipient groups for scope and broadcasts event.
// It never fails: the mutation has already been committed.
func (p *EventPublisher) Publish(ctx context.Context, scope domain.EventScope, event domain.Event) {
	log := logging.LoggerFromContext(ctx, p.logger)

	defer func() {
		if r := recover(); r != nil {
			log.Error("event broadcast panicked", "event_type", event.Type, "panic", r)
		}
	}()

	if scope.TenantID == uuid.Nil {
		if scope.Global {
			p.broadcaster.BroadcastToAll(event)
			return
		}
		log.Debug("event without tenant scope skipped", "event_type", event.Type)
		return
	}

	groups := ScopeGroups(scope)
	p.broadcaster.BroadcastToGroups(event, groups...)
	log.Debug("event published", "event_type", event.Type, "groups", len(groups))
}

// ScopeGroups lists the groups a tenant scoped event is delivered to.
func ScopeGroups(scope domain.EventScope) []domain.GroupKey {
	groups := []domain.GroupKey{domain.TenantGroup(scope.TenantID)}
	if scope.AreaID != uuid.Nil {
		groups = append(groups, domain.SubAreaGroup(scope.AreaID))
	}
	if scope.UserID != uuid.Nil {
		groups = append(groups, domain.UserGroup(scope.UserID))
	}
	return groups
}
