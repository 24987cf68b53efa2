package internal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/DrGermanius/Storefront/internal/model"
)

type IService interface {
	GetOrders(context.Context, model.Actor, FilterOptions) ([]model.OrderOutput, error)
	GetOrder(context.Context, model.Actor, int64) (model.OrderOutput, error)
	CountOrders(context.Context, model.Actor) (map[model.Status]int, error)
	UpdateOrderStatus(context.Context, model.Actor, int64, model.Status) (model.OrderOutput, error)
	GetStatusHistory(context.Context, model.Actor, int64) ([]model.StatusLog, error)
	IsReviewEligible(context.Context, model.Actor, int64) (bool, error)
	GetRevenue(context.Context, model.Actor) (model.RevenueOutput, error)
	ReplayLedger(context.Context) error
}

type Service struct {
	repo     IRepository
	notifier INotifier
	ledger   *Ledger
	metrics  *Metrics
	logger   *zap.SugaredLogger

	locks   *orderLocks
	reviews sync.Map
}

func NewService(repo IRepository, notifier INotifier, ledger *Ledger, metrics *Metrics, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		ledger:   ledger,
		metrics:  metrics,
		logger:   logger,
		locks:    newOrderLocks(),
	}
}

func (s *Service) GetOrders(ctx context.Context, actor model.Actor, opts FilterOptions) ([]model.OrderOutput, error) {
	if opts.Status != "" && !opts.Status.IsValid() {
		return nil, ErrUnknownStatus
	}

	orders, err := s.scopedOrders(ctx, actor)
	if err != nil {
		return nil, err
	}

	orders = FilterOrders(orders, opts)
	if len(orders) == 0 {
		return nil, ErrNoRecords
	}

	res := make([]model.OrderOutput, 0, len(orders))
	for _, o := range orders {
		res = append(res, NewOrderOutput(o, actor.Role))
	}
	return res, nil
}

func (s *Service) GetOrder(ctx context.Context, actor model.Actor, id int64) (model.OrderOutput, error) {
	o, err := s.ownedOrder(ctx, actor, id)
	if err != nil {
		return model.OrderOutput{}, err
	}
	return NewOrderOutput(o, actor.Role), nil
}

func (s *Service) CountOrders(ctx context.Context, actor model.Actor) (map[model.Status]int, error) {
	orders, err := s.scopedOrders(ctx, actor)
	if err != nil {
		return nil, err
	}
	return CountByStatus(orders), nil
}

// UpdateOrderStatus runs one transition request end to end. Requests for the same order
// are serialised, and effects are applied only after the store accepted the new status.
func (s *Service) UpdateOrderStatus(ctx context.Context, actor model.Actor, id int64, target model.Status) (model.OrderOutput, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	order, err := s.ownedOrder(ctx, actor, id)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			s.notify(ctx, newNotification(model.NotificationForbidden, model.Order{ID: id}, target, actor))
		}
		return model.OrderOutput{}, err
	}

	if !order.Valid() {
		s.logger.DPanicw("malformed order received from store", "orderID", order.ID, "total", order.Total)
		return model.OrderOutput{}, ErrMalformedOrder
	}

	res, err := RequestTransition(order, target, actor.Role)
	if err != nil {
		return NewOrderOutput(order, actor.Role), s.rejectTransition(ctx, order, target, actor, err)
	}

	err = s.repo.UpdateOrderStatus(ctx, id, order.Status, target, actor.String())
	if err != nil {
		s.logger.Errorf("UpdateOrderStatus error: %s", err.Error())
		s.metrics.observeTransition(order.Status, target, actor.Role, outcomePersistenceFailure)
		s.notify(ctx, newNotification(model.NotificationPersistenceFailure, order, target, actor))
		if errors.Is(err, ErrStatusConflict) {
			return NewOrderOutput(order, actor.Role), err
		}
		return NewOrderOutput(order, actor.Role), fmt.Errorf("%w: %s", ErrPersistenceFailure, err.Error())
	}

	for _, e := range res.Effects {
		s.applyEffect(e)
	}

	s.metrics.observeTransition(order.Status, target, actor.Role, outcomeSuccess)
	s.notify(ctx, newNotification(model.NotificationSuccess, order, target, actor))

	return NewOrderOutput(res.Order, actor.Role), nil
}

func (s *Service) rejectTransition(ctx context.Context, order model.Order, target model.Status, actor model.Actor, err error) error {
	switch {
	case !order.Status.IsValid():
		s.logger.Warnw("order has unknown status, order is frozen", "orderID", order.ID, "status", order.Status)
		s.metrics.observeTransition(order.Status, target, actor.Role, outcomeUnknownStatus)
		s.notify(ctx, newNotification(model.NotificationUnknownStatus, order, target, actor))
	case errors.Is(err, ErrUnknownStatus):
		s.logger.Infof("UpdateOrderStatus rejected: %s", err.Error())
		s.metrics.observeTransition(order.Status, target, actor.Role, outcomeUnknownStatus)
	default:
		s.logger.Infof("UpdateOrderStatus rejected: %s", err.Error())
		s.metrics.observeTransition(order.Status, target, actor.Role, outcomeNotAllowed)
		s.notify(ctx, newNotification(model.NotificationNotAllowed, order, target, actor))
	}
	return err
}

func (s *Service) GetStatusHistory(ctx context.Context, actor model.Actor, id int64) ([]model.StatusLog, error) {
	if _, err := s.ownedOrder(ctx, actor, id); err != nil {
		return nil, err
	}

	h, err := s.repo.GetStatusHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(h) == 0 {
		return nil, ErrNoRecords
	}
	return h, nil
}

// IsReviewEligible reports whether the buyer may review the order:
// the order must be delivered and its UnlockReview effect applied.
func (s *Service) IsReviewEligible(ctx context.Context, actor model.Actor, id int64) (bool, error) {
	o, err := s.ownedOrder(ctx, actor, id)
	if err != nil {
		return false, err
	}

	_, unlocked := s.reviews.Load(id)
	return unlocked && IsReviewAllowed(o.Status, actor.Role), nil
}

func (s *Service) GetRevenue(_ context.Context, actor model.Actor) (model.RevenueOutput, error) {
	if actor.Role != model.RoleVendor {
		return model.RevenueOutput{}, ErrForbidden
	}

	return model.RevenueOutput{
		Total:  s.ledger.TotalRevenue(),
		Vendor: s.ledger.VendorRevenue(actor.ID),
	}, nil
}

// ReplayLedger rebuilds the ledger and the review registry from delivered orders
// by applying the same effects the delivered transition emits.
func (s *Service) ReplayLedger(ctx context.Context) error {
	orders, err := s.repo.GetOrders(ctx, model.OrderFilter{Status: model.OrderStatusDelivered})
	if err != nil {
		return err
	}

	for _, o := range orders {
		if !o.Valid() {
			s.logger.Errorw("skipping malformed delivered order on replay", "orderID", o.ID)
			continue
		}
		s.applyEffect(model.AccrueRevenue(o))
		s.applyEffect(model.UnlockReview(o.ID))
	}

	s.logger.Infof("ledger replayed %d delivered orders, revenue %d", len(orders), s.ledger.TotalRevenue())
	return nil
}

func (s *Service) applyEffect(e model.Effect) {
	if s.ledger.ApplyEffect(e) {
		s.metrics.Revenue.Set(float64(s.ledger.TotalRevenue()))
	}

	if e.Kind == model.EffectUnlockReview {
		s.reviews.Store(e.OrderID, struct{}{})
	}
}

func (s *Service) ownedOrder(ctx context.Context, actor model.Actor, id int64) (model.Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if !owns(actor, o) {
		return model.Order{}, ErrForbidden
	}
	return o, nil
}

// scopedOrders asks the store for the actor's orders and drops anything else it returned.
func (s *Service) scopedOrders(ctx context.Context, actor model.Actor) ([]model.Order, error) {
	f := model.OrderFilter{}
	switch actor.Role {
	case model.RoleVendor:
		f.VendorID = actor.ID
	case model.RoleBuyer:
		f.BuyerID = actor.ID
	default:
		return nil, ErrUnauthorized
	}

	orders, err := s.repo.GetOrders(ctx, f)
	if err != nil {
		return nil, err
	}
	return ScopeOrders(orders, actor), nil
}

func (s *Service) notify(ctx context.Context, n model.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Errorf("Notify error: %s", err.Error())
	}
}
