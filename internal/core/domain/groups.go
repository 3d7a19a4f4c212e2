package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidGroupKey is returned when a group key cannot be parsed.
var ErrInvalidGroupKey = errors.New("invalid group key")

// GroupKind is the namespace part of a GroupKey.
type GroupKind string

const (
	GroupTenant  GroupKind = "tenant"
	GroupSubArea GroupKind = "subarea"
	GroupRole    GroupKind = "role"
	GroupUser    GroupKind = "user"
)

// GroupKey identifies a broadcast group, e.g. "tenant:<id>".
type GroupKey string

func newGroupKey(kind GroupKind, id string) GroupKey {
	return GroupKey(string(kind) + ":" + id)
}

// TenantGroup returns the primary partition for a tenant.
func TenantGroup(tenantID uuid.UUID) GroupKey {
	return newGroupKey(GroupTenant, tenantID.String())
}

// SubAreaGroup returns the group for a single sales area.
func SubAreaGroup(areaID uuid.UUID) GroupKey {
	return newGroupKey(GroupSubArea, areaID.String())
}

// RoleGroup returns the group for a staff role.
func RoleGroup(role Role) GroupKey {
	return newGroupKey(GroupRole, string(role))
}

// UserGroup returns the personal group of a user.
func UserGroup(userID uuid.UUID) GroupKey {
	return newGroupKey(GroupUser, userID.String())
}

// ParseGroupKey validates a client supplied key and returns it in the
// canonical form the broadcast side targets.
func ParseGroupKey(raw string) (GroupKey, error) {
	kind, id, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || id == "" {
		return "", ErrInvalidGroupKey
	}

	switch GroupKind(kind) {
	case GroupTenant, GroupSubArea, GroupUser:
		parsed, err := uuid.Parse(id)
		if err != nil {
			return "", ErrInvalidGroupKey
		}
		id = parsed.String()
	case GroupRole:
		if !Role(id).IsValid() {
			return "", ErrInvalidGroupKey
		}
	default:
		return "", ErrInvalidGroupKey
	}

	return newGroupKey(GroupKind(kind), id), nil
}

// Kind returns the namespace of the key.
func (k GroupKey) Kind() GroupKind {
	kind, _, _ := strings.Cut(string(k), ":")
	return GroupKind(kind)
}

// ID returns the identifier part of the key.
func (k GroupKey) ID() string {
	_, id, _ := strings.Cut(string(k), ":")
	return id
}

func (k GroupKey) String() string {
	return string(k)
}
