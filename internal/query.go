package internal

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/DrGermanius/Storefront/internal/model"
)

type FilterOptions struct {
	Status     model.Status
	SearchTerm string
}

// FilterOrders returns the orders matching every set option, in input order.
// The input slice is never modified and the result never aliases it.
func FilterOrders(orders []model.Order, opts FilterOptions) []model.Order {
	res := make([]model.Order, 0, len(orders))

	// cases.Caser is stateful, one per call
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(opts.SearchTerm))

	for _, o := range orders {
		if opts.Status != "" && o.Status != opts.Status {
			continue
		}
		if term != "" && !matchesTerm(fold, o, term) {
			continue
		}
		res = append(res, o)
	}
	return res
}

func matchesTerm(fold cases.Caser, o model.Order, term string) bool {
	if strings.Contains(fold.String(o.Code), term) {
		return true
	}
	for _, i := range o.Items {
		if strings.Contains(fold.String(i.Name), term) {
			return true
		}
	}
	return false
}

// ScopeOrders keeps the orders the actor owns: vendors by VendorID, buyers by BuyerID.
func ScopeOrders(orders []model.Order, actor model.Actor) []model.Order {
	res := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if owns(actor, o) {
			res = append(res, o)
		}
	}
	return res
}

func CountByStatus(orders []model.Order) map[model.Status]int {
	res := make(map[model.Status]int, len(model.Statuses))
	for _, s := range model.Statuses {
		res[s] = 0
	}
	for _, o := range orders {
		res[o.Status]++
	}
	return res
}

func owns(actor model.Actor, o model.Order) bool {
	switch actor.Role {
	case model.RoleVendor:
		return o.VendorID == actor.ID
	case model.RoleBuyer:
		return o.BuyerID == actor.ID
	}
	return false
}
