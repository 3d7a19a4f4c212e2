package sse

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
	"github.com/samber/lo"
)

// Options tune the SSE transport. Zero values fall back to the defaults.
type Options struct {
	HeartbeatInterval time.Duration
	SendBuffer        int
}

// Broadcaster is the SSE side of event delivery. Streams are placed in their
// tenant by the server from the validated token; clients cannot name groups.
type Broadcaster struct {
	registry  *Registry
	heartbeat time.Duration
	buffer    int
	logger    *slog.Logger
}

// Ensure Broadcaster implements the EventBroadcaster interface.
var _ ports.EventBroadcaster = (*Broadcaster)(nil)

// NewBroadcaster creates an SSE broadcaster over registry.
func NewBroadcaster(registry *Registry, opts Options, logger *slog.Logger) *Broadcaster {
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = 30 * time.Second
	}
	return &Broadcaster{
		registry:  registry,
		heartbeat: opts.HeartbeatInterval,
		buffer:    opts.SendBuffer,
		logger:    logger.With("component", "sse_broadcaster", "membership", ports.ServerDerived),
	}
}

// Mode reports how connections on this transport get their groups.
func (b *Broadcaster) Mode() ports.MembershipMode {
	return ports.ServerDerived
}

// HeartbeatInterval is the period between heartbeat frames on each stream.
func (b *Broadcaster) HeartbeatInterval() time.Duration {
	return b.heartbeat
}

// Registry exposes the connection registry for health reporting.
func (b *Broadcaster) Registry() *Registry {
	return b.registry
}

// Connections returns the number of open streams.
func (b *Broadcaster) Connections() int {
	return b.registry.Len()
}

// CloseAll closes every open stream, ending their Serve loops.
func (b *Broadcaster) CloseAll() {
	streams := b.registry.All()
	for _, stream := range streams {
		stream.Close()
	}
	b.logger.Info("closed all streams", "count", len(streams))
}

// Open registers a new stream for actor. Closing the stream unregisters it.
func (b *Broadcaster) Open(actor domain.Actor) *Stream {
	stream := NewStream(actor, b.buffer, b.closed, b.logger)
	b.registry.Register(stream)
	stream.logger.Info("stream opened", "total_streams", b.registry.Len())
	return stream
}

func (b *Broadcaster) closed(s *Stream) {
	if b.registry.Unregister(s) {
		s.logger.Info("stream closed", "total_streams", b.registry.Len())
	}
}

// BroadcastToTenant delivers event to every stream of the tenant.
func (b *Broadcaster) BroadcastToTenant(tenantID uuid.UUID, event domain.Event) {
	b.deliver(event, b.registry.AllUnder(tenantID))
}

// BroadcastToGroup delivers event if group is a tenant group. Other group
// kinds have no SSE members.
func (b *Broadcaster) BroadcastToGroup(group domain.GroupKey, event domain.Event) {
	b.BroadcastToGroups(event, group)
}

// BroadcastToGroups delivers event once to every stream in any of the tenant
// groups named.
func (b *Broadcaster) BroadcastToGroups(event domain.Event, groups ...domain.GroupKey) {
	var recipients []*Stream
	for _, group := range lo.Uniq(groups) {
		if group.Kind() != domain.GroupTenant {
			b.logger.Debug("ignoring non-tenant group", "group", group, "event_type", event.Type)
			continue
		}
		tenantID, err := uuid.Parse(group.ID())
		if err != nil {
			b.logger.Debug("ignoring malformed tenant group", "group", group)
			continue
		}
		recipients = append(recipients, b.registry.AllUnder(tenantID)...)
	}
	b.deliver(event, recipients)
}

// BroadcastToAll delivers event to every open stream.
func (b *Broadcaster) BroadcastToAll(event domain.Event) {
	b.deliver(event, b.registry.All())
}

func (b *Broadcaster) deliver(event domain.Event, recipients []*Stream) {
	if len(recipients) == 0 {
		b.logger.Debug("no recipients for event", "event_type", event.Type)
		return
	}

	frame, err := Frame(event)
	if err != nil {
		b.logger.Error("failed to encode event", "event_type", event.Type, "error", err)
		return
	}

	delivered := 0
	for _, stream := range recipients {
		err := stream.Enqueue(frame)
		switch {
		case err == nil:
			delivered++
		case errors.Is(err, ErrBackpressure):
			stream.logger.Warn("stream buffer full, closing", "event_type", event.Type)
			stream.Close()
		default:
			stream.logger.Warn("failed to enqueue event", "event_type", event.Type, "error", err)
		}
	}

	b.logger.Debug("event delivered", "event_type", event.Type,
		"recipients", len(recipients), "delivered", delivered)
}
