package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/mocks"
	"github.com/lorrc/distribution-backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type panickingBroadcaster struct {
	mocks.MockEventBroadcaster
}

func (p *panickingBroadcaster) BroadcastToGroups(domain.Event, ...domain.GroupKey) {
	panic("transport exploded")
}

func TestEventPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	areaID := uuid.New()
	userID := uuid.New()
	event := domain.NewEvent(domain.EventOrderCreated, domain.OrderDeletedPayload{OrderID: "o1"})

	t.Run("tenant only", func(t *testing.T) {
		b := mocks.NewMockEventBroadcaster()
		b.On("BroadcastToGroups", event, []domain.GroupKey{domain.TenantGroup(tenantID)}).Once()

		services.NewEventPublisher(b, discardLogger()).Publish(ctx, domain.EventScope{TenantID: tenantID}, event)

		b.AssertExpectations(t)
	})

	t.Run("tenant, area and user in one call", func(t *testing.T) {
		b := mocks.NewMockEventBroadcaster()
		b.On("BroadcastToGroups", event, []domain.GroupKey{
			domain.TenantGroup(tenantID),
			domain.SubAreaGroup(areaID),
			domain.UserGroup(userID),
		}).Once()

		services.NewEventPublisher(b, discardLogger()).Publish(ctx,
			domain.EventScope{TenantID: tenantID, AreaID: areaID, UserID: userID}, event)

		b.AssertExpectations(t)
	})

	t.Run("global without tenant reaches everyone", func(t *testing.T) {
		b := mocks.NewMockEventBroadcaster()
		b.On("BroadcastToAll", event).Once()

		services.NewEventPublisher(b, discardLogger()).Publish(ctx, domain.EventScope{Global: true}, event)

		b.AssertExpectations(t)
		b.AssertNotCalled(t, "BroadcastToGroups", mock.Anything, mock.Anything)
	})

	t.Run("missing tenant is skipped", func(t *testing.T) {
		b := mocks.NewMockEventBroadcaster()

		services.NewEventPublisher(b, discardLogger()).Publish(ctx, domain.EventScope{AreaID: areaID}, event)

		assert.Empty(t, b.Calls)
	})

	t.Run("broadcaster panic is contained", func(t *testing.T) {
		b := &panickingBroadcaster{}
		publisher := services.NewEventPublisher(b, discardLogger())

		assert.NotPanics(t, func() {
			publisher.Publish(ctx, domain.EventScope{TenantID: tenantID}, event)
		})
	})
}

func TestEventPublisher_LogsEventType(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := mocks.NewMockEventBroadcaster()

	services.NewEventPublisher(b, logger).Publish(context.Background(),
		domain.EventScope{}, domain.NewEvent(domain.EventShopCreated, nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shop:created", entry["event_type"])
	assert.NotContains(t, entry, "event")
	b.AssertNotCalled(t, "BroadcastToGroups", mock.Anything, mock.Anything)
}
