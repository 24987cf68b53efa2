package internal

import "github.com/DrGermanius/Storefront/internal/model"

type statusView struct {
	label string
	color string
	step  int
}

var statusViews = map[model.Status]statusView{
	model.OrderStatusPending:    {label: "Chờ xác nhận", color: "yellow", step: 1},
	model.OrderStatusProcessing: {label: "Đang xử lý", color: "blue", step: 2},
	model.OrderStatusShipped:    {label: "Đang giao", color: "purple", step: 3},
	model.OrderStatusDelivered:  {label: "Đã giao", color: "green", step: 4},
	model.OrderStatusCancelled:  {label: "Đã hủy", color: "red", step: 0},
}

var unknownStatusView = statusView{label: "Không xác định", color: "gray", step: 0}

// NewOrderOutput builds the dashboard view of an order for actor.
// Actions come from the transition table so the UI never offers a denied change.
func NewOrderOutput(o model.Order, actor model.Role) model.OrderOutput {
	v, ok := statusViews[o.Status]
	if !ok {
		v = unknownStatusView
	}

	return model.OrderOutput{
		ID:        o.ID,
		Code:      o.Code,
		Status:    o.Status,
		Label:     v.label,
		Color:     v.color,
		Step:      v.step,
		Actions:   AllowedTargets(o.Status, actor),
		Items:     o.Items,
		Total:     o.Total,
		Address:   o.Address,
		Phone:     o.Phone,
		CreatedAt: o.CreatedAt,
	}
}
