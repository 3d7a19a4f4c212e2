package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
)

// EventBroadcaster pushes events to live connections. Delivery is best
// effort: per-recipient failures are logged by the implementation and never
// reported to the caller.
type EventBroadcaster interface {
	BroadcastToGroup(group domain.GroupKey, event domain.Event)
	// BroadcastToGroups delivers at most once per connection across all groups.
	BroadcastToGroups(event domain.Event, groups ...domain.GroupKey)
	BroadcastToTenant(tenantID uuid.UUID, event domain.Event)
	BroadcastToAll(event domain.Event)
}

// EventPublisher maps a committed mutation onto broadcast groups.
type EventPublisher interface {
	Publish(ctx context.Context, scope domain.EventScope, event domain.Event)
}

// MembershipMode describes who decides which groups a connection is in.
type MembershipMode string

const (
	// ClientDeclared connections name their own groups with join-room.
	ClientDeclared MembershipMode = "client-declared"
	// ServerDerived connections are placed by the server from their token.
	ServerDerived MembershipMode = "server-derived"
)
