package internal

import "github.com/DrGermanius/Storefront/internal/model"

type edge struct {
	to     model.Status
	actors []model.Role
}

// transitions is the only place where allowed status changes are defined.
// Vendor and buyer views both read it, directly or through AllowedTargets.
var transitions = map[model.Status][]edge{
	model.OrderStatusPending: {
		{to: model.OrderStatusProcessing, actors: []model.Role{model.RoleVendor}},
		{to: model.OrderStatusCancelled, actors: []model.Role{model.RoleVendor, model.RoleBuyer}},
	},
	model.OrderStatusProcessing: {
		{to: model.OrderStatusShipped, actors: []model.Role{model.RoleVendor}},
	},
	model.OrderStatusShipped: {
		{to: model.OrderStatusDelivered, actors: []model.Role{model.RoleVendor}},
	},
	model.OrderStatusDelivered: {},
	model.OrderStatusCancelled: {},
}

func IsAllowed(current, target model.Status, actor model.Role) bool {
	for _, e := range transitions[current] {
		if e.to != target {
			continue
		}
		for _, a := range e.actors {
			if a == actor {
				return true
			}
		}
	}
	return false
}

// AllowedTargets returns the statuses actor may move an order in current to.
func AllowedTargets(current model.Status, actor model.Role) []model.Status {
	res := make([]model.Status, 0, 2)
	for _, e := range transitions[current] {
		if IsAllowed(current, e.to, actor) {
			res = append(res, e.to)
		}
	}
	return res
}

// IsReviewAllowed is the delivered/buyer row: not a status change, only an action unlock.
func IsReviewAllowed(current model.Status, actor model.Role) bool {
	return current == model.OrderStatusDelivered && actor == model.RoleBuyer
}

func IsTerminal(s model.Status) bool {
	e, ok := transitions[s]
	return ok && len(e) == 0
}
