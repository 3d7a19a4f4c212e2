package sse

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *Stream) []string {
	var frames []string
	for {
		select {
		case frame := <-s.send:
			frames = append(frames, string(frame))
		default:
			return frames
		}
	}
}

func TestBroadcaster_TenantIsolation(t *testing.T) {
	b := NewBroadcaster(NewRegistry(), Options{}, discardLogger())
	tenantA, tenantB := uuid.New(), uuid.New()

	a := b.Open(domain.Actor{TenantID: tenantA, UserID: uuid.New()})
	other := b.Open(domain.Actor{TenantID: tenantB, UserID: uuid.New()})

	b.BroadcastToTenant(tenantA, domain.NewEvent(domain.EventStockUpdated, domain.StockPayload{
		ProductID: "p1", Quantity: 3, Action: domain.StockDeduct,
	}))

	assert.Equal(t, []string{
		"data: {\"type\":\"stock:updated\",\"data\":{\"productId\":\"p1\",\"quantity\":3,\"action\":\"deduct\"}}\n\n",
	}, drain(a))
	assert.Empty(t, drain(other))
}

func TestBroadcaster_GroupsOnlyResolveTenants(t *testing.T) {
	b := NewBroadcaster(NewRegistry(), Options{}, discardLogger())
	tenantID := uuid.New()
	s := b.Open(domain.Actor{TenantID: tenantID, UserID: uuid.New()})

	b.BroadcastToGroups(domain.NewEvent(domain.EventShopCreated, nil),
		domain.TenantGroup(tenantID), domain.TenantGroup(tenantID), domain.SubAreaGroup(uuid.New()))
	b.BroadcastToGroup(domain.UserGroup(s.UserID), domain.NewEvent(domain.EventStaffUpdated, nil))

	assert.Len(t, drain(s), 1, "one delivery for the tenant, none for the user group")
}

func TestBroadcaster_ZeroRecipients(t *testing.T) {
	b := NewBroadcaster(NewRegistry(), Options{}, discardLogger())

	assert.NotPanics(t, func() {
		b.BroadcastToTenant(uuid.New(), domain.NewEvent(domain.EventOrderCreated, nil))
		b.BroadcastToAll(domain.NewEvent(domain.EventAreaCreated, nil))
	})
}

func TestBroadcaster_SlowStreamIsClosedOthersStillDeliver(t *testing.T) {
	b := NewBroadcaster(NewRegistry(), Options{SendBuffer: 1}, discardLogger())
	tenantID := uuid.New()

	slow := b.Open(domain.Actor{TenantID: tenantID, UserID: uuid.New()})
	fast := b.Open(domain.Actor{TenantID: tenantID, UserID: uuid.New()})

	b.BroadcastToTenant(tenantID, domain.NewEvent(domain.EventOrderCreated, nil))
	require.Len(t, drain(fast), 1)

	b.BroadcastToTenant(tenantID, domain.NewEvent(domain.EventOrderDeleted, nil))

	assert.True(t, slow.Closed())
	assert.Len(t, drain(fast), 1)
	assert.Equal(t, 1, b.Registry().Len())
}

func TestBroadcaster_AllReachesEveryTenant(t *testing.T) {
	b := NewBroadcaster(NewRegistry(), Options{}, discardLogger())
	a := b.Open(domain.Actor{TenantID: uuid.New(), UserID: uuid.New()})
	c := b.Open(domain.Actor{TenantID: uuid.New(), UserID: uuid.New()})

	b.BroadcastToAll(domain.NewEvent(domain.EventAreaCreated, domain.AreaPayload{AreaID: "a1", Name: "North"}))

	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(c), 1)
	assert.Equal(t, ports.ServerDerived, b.Mode())
}

func TestBroadcaster_CloseAllEmptiesRegistry(t *testing.T) {
	b := NewBroadcaster(NewRegistry(), Options{}, discardLogger())
	tenant := uuid.New()

	streams := []*Stream{
		b.Open(domain.Actor{TenantID: tenant, UserID: uuid.New()}),
		b.Open(domain.Actor{TenantID: tenant, UserID: uuid.New()}),
		b.Open(domain.Actor{TenantID: uuid.New(), UserID: uuid.New()}),
	}
	require.Equal(t, 3, b.Connections())

	b.CloseAll()

	assert.Equal(t, 0, b.Connections())
	for _, s := range streams {
		assert.True(t, s.Closed())
	}
}
