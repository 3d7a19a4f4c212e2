// Package fanout forwards every broadcast to each configured transport.
package fanout

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// Target is a named transport.
type Target struct {
	Name        string
	Broadcaster ports.EventBroadcaster
}

// Broadcaster delivers each call to every target in order. A panic in one
// target is logged and does not stop the others.
type Broadcaster struct {
	targets []Target
	logger  *slog.Logger
}

var _ ports.EventBroadcaster = (*Broadcaster)(nil)

// New creates a composite broadcaster.
func New(logger *slog.Logger, targets ...Target) *Broadcaster {
	return &Broadcaster{
		targets: targets,
		logger:  logger.With("component", "fanout"),
	}
}

func (b *Broadcaster) BroadcastToGroup(group domain.GroupKey, event domain.Event) {
	b.each(event, func(t ports.EventBroadcaster) { t.BroadcastToGroup(group, event) })
}

func (b *Broadcaster) BroadcastToGroups(event domain.Event, groups ...domain.GroupKey) {
	b.each(event, func(t ports.EventBroadcaster) { t.BroadcastToGroups(event, groups...) })
}

func (b *Broadcaster) BroadcastToTenant(tenantID uuid.UUID, event domain.Event) {
	b.each(event, func(t ports.EventBroadcaster) { t.BroadcastToTenant(tenantID, event) })
}

func (b *Broadcaster) BroadcastToAll(event domain.Event) {
	b.each(event, func(t ports.EventBroadcaster) { t.BroadcastToAll(event) })
}

func (b *Broadcaster) each(event domain.Event, call func(ports.EventBroadcaster)) {
	for _, target := range b.targets {
		b.safely(target, event, call)
	}
}

func (b *Broadcaster) safely(target Target, event domain.Event, call func(ports.EventBroadcaster)) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("transport panicked during broadcast",
				"transport", target.Name,
				"event_type", event.Type,
				"panic", fmt.Sprint(r),
			)
		}
	}()
	call(target.Broadcaster)
}
