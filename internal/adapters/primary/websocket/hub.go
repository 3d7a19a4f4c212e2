package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// Options tune the hub. Zero values fall back to the defaults.
type Options struct {
	// EnforceEntitlement rejects join-room requests for groups the
	// connection's identity is not entitled to. When false such joins are
	// accepted and logged.
	EnforceEntitlement bool
	BroadcastBuffer    int
	ClientConfig       ClientConfig
}

// outbound is one encoded broadcast waiting for the Run loop.
type outbound struct {
	eventType domain.EventType
	groups    []domain.GroupKey
	all       bool
	payload   []byte
}

// Hub maintains the set of active clients and their group memberships and
// fans events out to them. All sends and closes of client channels happen
// on the Run goroutine.
type Hub struct {
	// clients holds every registered connection
	clients map[*Client]struct{}

	members *Membership[*Client]

	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// mu protects clients and serializes joins against unregistration
	mu sync.RWMutex

	enforce      bool
	clientConfig ClientConfig
	logger       *slog.Logger
}

// Ensure Hub implements the EventBroadcaster interface.
var _ ports.EventBroadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(opts Options, logger *slog.Logger) *Hub {
	if opts.BroadcastBuffer <= 0 {
		opts.BroadcastBuffer = 256
	}
	return &Hub{
		clients:      make(map[*Client]struct{}),
		members:      NewMembership[*Client](),
		broadcast:    make(chan outbound, opts.BroadcastBuffer),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		done:         make(chan struct{}),
		enforce:      opts.EnforceEntitlement,
		clientConfig: opts.ClientConfig.withDefaults(),
		logger:       logger.With("component", "websocket_hub", "membership", ports.ClientDeclared),
	}
}

// Mode reports how connections on this transport get their groups.
func (h *Hub) Mode() ports.MembershipMode {
	return ports.ClientDeclared
}

// Run starts the hub's event loop and blocks until ctx is done. On exit
// every client is closed.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case out := <-h.broadcast:
			h.deliver(out)
		}
	}
}

// Register hands a new client to the Run loop. It reports false once the hub
// has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client. Safe to call more than once.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	client.logger.Info("client registered", "total_connections", total)
}

// unregisterClient removes a client from the hub and all groups. Only the
// first call for a client has any effect.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	left := h.members.RemoveAll(client)
	h.mu.Unlock()

	client.CloseSend()

	client.logger.Info("client unregistered", "groups_left", len(left))
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.unregisterClient(client)
	}
}

// join adds a registered client to a group, applying the entitlement policy.
func (h *Hub) join(client *Client, raw string) {
	group, err := domain.ParseGroupKey(raw)
	if err != nil {
		client.logger.Warn("join-room rejected: malformed group", "group", raw)
		return
	}

	if !Entitled(client.Actor, group) {
		if h.enforce {
			client.logger.Warn("join-room rejected: not entitled", "group", group)
			return
		}
		client.logger.Warn("join-room accepted without entitlement", "group", group)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// A client that is already gone must not re-enter the table.
	if _, ok := h.clients[client]; !ok {
		return
	}
	if h.members.Join(client, group) {
		client.logger.Debug("client joined group", "group", group)
	}
}

func (h *Hub) leave(client *Client, raw string) {
	group, err := domain.ParseGroupKey(raw)
	if err != nil {
		client.logger.Warn("leave-room rejected: malformed group", "group", raw)
		return
	}
	if h.members.Leave(client, group) {
		client.logger.Debug("client left group", "group", group)
	}
}

// BroadcastToGroup queues event for the members of one group.
func (h *Hub) BroadcastToGroup(group domain.GroupKey, event domain.Event) {
	h.enqueue(event, false, group)
}

// BroadcastToGroups queues event for the union of groups.
func (h *Hub) BroadcastToGroups(event domain.Event, groups ...domain.GroupKey) {
	if len(groups) == 0 {
		return
	}
	h.enqueue(event, false, groups...)
}

// BroadcastToTenant queues event for the tenant's group.
func (h *Hub) BroadcastToTenant(tenantID uuid.UUID, event domain.Event) {
	h.enqueue(event, false, domain.TenantGroup(tenantID))
}

// BroadcastToAll queues event for every connected client.
func (h *Hub) BroadcastToAll(event domain.Event) {
	h.enqueue(event, true)
}

// enqueue encodes the event once and hands it to the Run loop without
// blocking the caller.
func (h *Hub) enqueue(event domain.Event, all bool, groups ...domain.GroupKey) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode event", "event_type", event.Type, "error", err)
		return
	}

	select {
	case h.broadcast <- outbound{eventType: event.Type, groups: groups, all: all, payload: payload}:
	default:
		h.logger.Warn("broadcast channel full, dropping event", "event_type", event.Type)
	}
}

// deliver runs on the Run goroutine.
func (h *Hub) deliver(out outbound) {
	var recipients []*Client
	if out.all {
		h.mu.RLock()
		recipients = make([]*Client, 0, len(h.clients))
		for client := range h.clients {
			recipients = append(recipients, client)
		}
		h.mu.RUnlock()
	} else {
		recipients = h.members.Members(out.groups...)
	}

	if len(recipients) == 0 {
		h.logger.Debug("no recipients for event", "event_type", out.eventType, "groups", out.groups)
		return
	}

	for _, client := range recipients {
		select {
		case client.Send <- out.payload:
		default:
			// A full buffer means the peer stopped reading.
			client.logger.Warn("client send buffer full, unregistering", "event_type", out.eventType)
			h.unregisterClient(client)
		}
	}

	h.logger.Debug("event delivered", "event_type", out.eventType, "recipients", len(recipients))
}

// ClientCount returns the total number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Connections is ClientCount, named for health reporting.
func (h *Hub) Connections() int {
	return h.ClientCount()
}

// GroupCount returns the number of non-empty groups
func (h *Hub) GroupCount() int {
	return h.members.GroupCount()
}

// GroupSize returns the number of clients in a group
func (h *Hub) GroupSize(group domain.GroupKey) int {
	return h.members.Size(group)
}

// Attach wraps an upgraded connection in a Client, registers it and starts
// its pumps. It reports false, closing conn, if the hub has stopped.
func (h *Hub) Attach(conn *websocket.Conn, actor domain.Actor) (*Client, bool) {
	client := NewClient(h, conn, actor)
	if !h.Register(client) {
		_ = conn.Close()
		return nil, false
	}

	go client.WritePump()
	go client.ReadPump()
	return client, true
}
