package model

import "strconv"

type Status string

const (
	OrderStatusPending    Status = "pending"
	OrderStatusProcessing Status = "processing"
	OrderStatusShipped    Status = "shipped"
	OrderStatusDelivered  Status = "delivered"
	OrderStatusCancelled  Status = "cancelled"
)

// Statuses lists every known status in lifecycle order.
var Statuses = []Status{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s Status) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

type Role string

const (
	RoleVendor Role = "vendor"
	RoleBuyer  Role = "buyer"
)

func (r Role) IsValid() bool {
	return r == RoleVendor || r == RoleBuyer
}

// Actor is the party requesting an action: a vendor or a buyer with its own id.
type Actor struct {
	ID   int64
	Role Role
}

// String is used as the changed_by value of the status log, e.g. "vendor:12".
func (a Actor) String() string {
	return string(a.Role) + ":" + strconv.FormatInt(a.ID, 10)
}
