package domain

import "github.com/google/uuid"

// EventType names a real-time event. Catalog events follow the
// "<entity>:<action>" pattern.
type EventType string

const (
	EventOrderCreated       EventType = "order:created"
	EventOrderStatusUpdated EventType = "order:status-updated"
	EventOrderDeleted       EventType = "order:deleted"

	EventStockUpdated EventType = "stock:updated"

	EventShopCreated EventType = "shop:created"
	EventShopUpdated EventType = "shop:updated"
	EventShopDeleted EventType = "shop:deleted"

	EventAreaCreated EventType = "area:created"
	EventAreaUpdated EventType = "area:updated"
	EventAreaDeleted EventType = "area:deleted"

	EventProductCreated EventType = "product:created"
	EventProductUpdated EventType = "product:updated"
	EventProductDeleted EventType = "product:deleted"

	EventCategoryCreated EventType = "category:created"
	EventCategoryUpdated EventType = "category:updated"
	EventCategoryDeleted EventType = "category:deleted"

	EventStaffCreated       EventType = "staff:created"
	EventStaffUpdated       EventType = "staff:updated"
	EventStaffDeleted       EventType = "staff:deleted"
	EventStaffStatusUpdated EventType = "staff:status-updated"
)

// Stream control frames. These never carry domain data.
const (
	EventConnected EventType = "connected"
	EventHeartbeat EventType = "heartbeat"
)

var catalog = map[EventType]struct{}{
	EventOrderCreated:       {},
	EventOrderStatusUpdated: {},
	EventOrderDeleted:       {},
	EventStockUpdated:       {},
	EventShopCreated:        {},
	EventShopUpdated:        {},
	EventShopDeleted:        {},
	EventAreaCreated:        {},
	EventAreaUpdated:        {},
	EventAreaDeleted:        {},
	EventProductCreated:     {},
	EventProductUpdated:     {},
	EventProductDeleted:     {},
	EventCategoryCreated:    {},
	EventCategoryUpdated:    {},
	EventCategoryDeleted:    {},
	EventStaffCreated:       {},
	EventStaffUpdated:       {},
	EventStaffDeleted:       {},
	EventStaffStatusUpdated: {},
}

// IsDomain reports whether t belongs to the event catalog.
func (t EventType) IsDomain() bool {
	_, ok := catalog[t]
	return ok
}

// Event is the payload pushed to clients over both transports.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// NewEvent builds an event. Callers must not mutate data afterwards.
func NewEvent(eventType EventType, data any) Event {
	return Event{Type: eventType, Data: data}
}

// EventScope describes who a mutation is visible to. Zero IDs are absent.
type EventScope struct {
	TenantID uuid.UUID
	AreaID   uuid.UUID
	UserID   uuid.UUID
	// Global marks tenantless records that every connection should see.
	Global bool
}

// AreaScope returns uuid.Nil for a nil area.
func AreaScope(areaID *uuid.UUID) uuid.UUID {
	if areaID == nil {
		return uuid.Nil
	}
	return *areaID
}
