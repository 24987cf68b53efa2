package model

type EffectKind string

const (
	EffectAccrueRevenue          EffectKind = "accrue_revenue"
	EffectUnlockReview           EffectKind = "unlock_review"
	EffectReleaseNoFurtherAction EffectKind = "release_no_further_action"
)

// Effect is a side effect emitted by a successful transition.
// Amount and VendorID are only set for EffectAccrueRevenue.
type Effect struct {
	Kind     EffectKind
	OrderID  int64
	VendorID int64
	Amount   int64
}

func AccrueRevenue(o Order) Effect {
	return Effect{Kind: EffectAccrueRevenue, OrderID: o.ID, VendorID: o.VendorID, Amount: o.Total}
}

func UnlockReview(orderID int64) Effect {
	return Effect{Kind: EffectUnlockReview, OrderID: orderID}
}

func ReleaseNoFurtherAction(orderID int64) Effect {
	return Effect{Kind: EffectReleaseNoFurtherAction, OrderID: orderID}
}

type NotificationKind string

const (
	NotificationSuccess            NotificationKind = "success"
	NotificationNotAllowed         NotificationKind = "not_allowed"
	NotificationUnknownStatus      NotificationKind = "unknown_status"
	NotificationPersistenceFailure NotificationKind = "persistence_failure"
	NotificationForbidden          NotificationKind = "forbidden"
)

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	OrderID int64            `json:"orderID"`
	Code    string           `json:"code,omitempty"`
	Actor   string           `json:"actor"`
	From    Status           `json:"from,omitempty"`
	To      Status           `json:"to,omitempty"`
	Message string           `json:"message"`
}
