// Package authz holds the static role policy checked at every entry point.
package authz

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

type Role string

// remember to add new roles to the policy map
const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleStaff     Role = "staff"
	RoleWarehouse Role = "warehouse"
	RoleViewer    Role = "viewer"
)

type Action string

const (
	OrdersCreate    Action = "orders:create"
	OrdersRead      Action = "orders:read"
	OrdersUpdate    Action = "orders:update"
	OrdersDelete    Action = "orders:delete"
	PaymentsCreate  Action = "payments:create"
	PaymentsRead    Action = "payments:read"
	PaymentsUpdate  Action = "payments:update"
	PaymentsDelete  Action = "payments:delete"
	InventoryRead   Action = "inventory:read"
	InventoryUpdate Action = "inventory:update"
	ProductsCreate  Action = "products:create"
	JobsRead        Action = "jobs:read"
	SettingsRead    Action = "settings:read"
	SettingsUpdate  Action = "settings:update"
)

func set(actions ...Action) map[Action]struct{} {
	m := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		m[a] = struct{}{}
	}
	return m
}

var readActions = []Action{OrdersRead, PaymentsRead, InventoryRead, JobsRead, SettingsRead}

// admin is checked separately and may do everything
var policy = map[Role]map[Action]struct{}{
	RoleManager: set(append([]Action{
		OrdersCreate, OrdersUpdate, OrdersDelete,
		PaymentsCreate, PaymentsUpdate, PaymentsDelete,
		InventoryUpdate, ProductsCreate,
	}, readActions...)...),
	RoleStaff: set(append([]Action{
		OrdersCreate, OrdersUpdate,
		PaymentsCreate, PaymentsUpdate,
	}, readActions...)...),
	RoleWarehouse: set(append([]Action{
		InventoryUpdate, OrdersUpdate,
	}, readActions...)...),
	RoleViewer: set(readActions...),
}

func ToRole(s string) (Role, error) {
	role := Role(s)
	if role == RoleAdmin {
		return role, nil
	}
	if _, ok := policy[role]; ok {
		return role, nil
	}

	return "", fmt.Errorf("role[%s]: %w", s, ErrUnauthenticated)
}

type Actor struct {
	ID   uuid.UUID
	Role Role
}

func Authorize(actor Actor, action Action) error {
	if actor.ID == uuid.Nil {
		return ErrUnauthenticated
	}

	if actor.Role == RoleAdmin {
		return nil
	}

	if _, ok := policy[actor.Role][action]; ok {
		return nil
	}

	return fmt.Errorf("%s cannot %s: %w", actor.Role, action, ErrForbidden)
}
