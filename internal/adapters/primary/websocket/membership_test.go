package websocket_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/adapters/primary/websocket"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestMembership_JoinLeave(t *testing.T) {
	m := websocket.NewMembership[string]()
	tenantA := domain.TenantGroup(uuid.New())
	tenantB := domain.TenantGroup(uuid.New())

	assert.True(t, m.Join("c1", tenantA))
	assert.False(t, m.Join("c1", tenantA), "second join is a no-op")
	assert.True(t, m.Join("c2", tenantB))

	assert.ElementsMatch(t, []string{"c1"}, m.Members(tenantA))
	assert.ElementsMatch(t, []string{"c2"}, m.Members(tenantB))
	assert.Equal(t, 2, m.GroupCount())

	assert.True(t, m.Leave("c1", tenantA))
	assert.False(t, m.Leave("c1", tenantA))
	assert.Empty(t, m.Members(tenantA))
	assert.Equal(t, 0, m.Size(tenantA))
	assert.Equal(t, 1, m.GroupCount(), "empty groups are dropped")
}

func TestMembership_MembersDeduplicatesAcrossGroups(t *testing.T) {
	m := websocket.NewMembership[string]()
	tenant := domain.TenantGroup(uuid.New())
	area := domain.SubAreaGroup(uuid.New())

	m.Join("c1", tenant)
	m.Join("c1", area)
	m.Join("c2", area)

	assert.ElementsMatch(t, []string{"c1", "c2"}, m.Members(tenant, area))
}

func TestMembership_RemoveAll(t *testing.T) {
	m := websocket.NewMembership[string]()
	tenant := domain.TenantGroup(uuid.New())
	user := domain.UserGroup(uuid.New())

	m.Join("c1", tenant)
	m.Join("c1", user)
	m.Join("c2", tenant)

	assert.ElementsMatch(t, []domain.GroupKey{tenant, user}, m.RemoveAll("c1"))
	assert.Empty(t, m.Groups("c1"))
	assert.ElementsMatch(t, []string{"c2"}, m.Members(tenant))
	assert.Equal(t, 0, m.Size(user))
	assert.Empty(t, m.RemoveAll("c1"))
}

func TestMembership_UnknownGroupHasNoMembers(t *testing.T) {
	m := websocket.NewMembership[string]()

	assert.Empty(t, m.Members(domain.TenantGroup(uuid.New())))
	assert.Empty(t, m.Members())
}
