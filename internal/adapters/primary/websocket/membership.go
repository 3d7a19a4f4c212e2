package websocket

import (
	"sync"

	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/samber/lo"
)

// Membership is a two-way index between connections and groups. Groups exist
// only while they have members.
type Membership[C comparable] struct {
	mu     sync.RWMutex
	groups map[domain.GroupKey]map[C]struct{}
	conns  map[C]map[domain.GroupKey]struct{}
}

// NewMembership creates an empty membership table.
func NewMembership[C comparable]() *Membership[C] {
	return &Membership[C]{
		groups: make(map[domain.GroupKey]map[C]struct{}),
		conns:  make(map[C]map[domain.GroupKey]struct{}),
	}
}

// Join adds conn to group. It reports false if conn was already a member.
func (m *Membership[C]) Join(conn C, group domain.GroupKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	members, ok := m.groups[group]
	if !ok {
		members = make(map[C]struct{})
		m.groups[group] = members
	}
	if _, exists := members[conn]; exists {
		return false
	}
	members[conn] = struct{}{}

	joined, ok := m.conns[conn]
	if !ok {
		joined = make(map[domain.GroupKey]struct{})
		m.conns[conn] = joined
	}
	joined[group] = struct{}{}
	return true
}

// Leave removes conn from group. It reports false if conn was not a member.
func (m *Membership[C]) Leave(conn C, group domain.GroupKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leave(conn, group)
}

func (m *Membership[C]) leave(conn C, group domain.GroupKey) bool {
	members, ok := m.groups[group]
	if !ok {
		return false
	}
	if _, exists := members[conn]; !exists {
		return false
	}

	delete(members, conn)
	if len(members) == 0 {
		delete(m.groups, group)
	}

	joined := m.conns[conn]
	delete(joined, group)
	if len(joined) == 0 {
		delete(m.conns, conn)
	}
	return true
}

// RemoveAll drops conn from every group and returns the groups it left.
func (m *Membership[C]) RemoveAll(conn C) []domain.GroupKey {
	m.mu.Lock()
	defer m.mu.Unlock()

	left := lo.Keys(m.conns[conn])
	for _, group := range left {
		m.leave(conn, group)
	}
	return left
}

// Members returns the union of the members of groups, each connection once.
func (m *Membership[C]) Members(groups ...domain.GroupKey) []C {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(groups) == 1 {
		return lo.Keys(m.groups[groups[0]])
	}

	union := make(map[C]struct{})
	for _, group := range groups {
		for conn := range m.groups[group] {
			union[conn] = struct{}{}
		}
	}
	return lo.Keys(union)
}

// Groups returns the groups conn belongs to.
func (m *Membership[C]) Groups(conn C) []domain.GroupKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lo.Keys(m.conns[conn])
}

// Size returns the number of members of group.
func (m *Membership[C]) Size(group domain.GroupKey) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.groups[group])
}

// GroupCount returns the number of non-empty groups.
func (m *Membership[C]) GroupCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.groups)
}
