package internal

import "github.com/DrGermanius/Storefront/internal/model"

type TransitionResult struct {
	Order   model.Order
	Effects []model.Effect
}

// RequestTransition validates target against the transition table and returns the
// updated order with the effects the caller must apply once the change is persisted.
// On error the returned order is the input order.
func RequestTransition(order model.Order, target model.Status, actor model.Role) (TransitionResult, error) {
	res := TransitionResult{Order: order}

	if !order.Status.IsValid() || !target.IsValid() {
		return res, &TransitionError{Kind: ErrUnknownStatus, From: order.Status, To: target, Actor: actor}
	}

	if !IsAllowed(order.Status, target, actor) {
		return res, &TransitionError{Kind: ErrTransitionNotAllowed, From: order.Status, To: target, Actor: actor}
	}

	next := order
	next.Status = target
	if order.Items != nil {
		next.Items = make([]model.Item, len(order.Items))
		copy(next.Items, order.Items)
	}

	switch target {
	case model.OrderStatusDelivered:
		res.Effects = []model.Effect{model.AccrueRevenue(order), model.UnlockReview(order.ID)}
	case model.OrderStatusCancelled:
		res.Effects = []model.Effect{model.ReleaseNoFurtherAction(order.ID)}
	}

	res.Order = next
	return res, nil
}
