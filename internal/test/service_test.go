package test

import (
	"context"
	"errors"
	"sync"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/DrGermanius/Storefront/internal"
	mock_internal "github.com/DrGermanius/Storefront/internal/mock"
	"github.com/DrGermanius/Storefront/internal/model"
)

var (
	vendor = model.Actor{ID: 7, Role: model.RoleVendor}
	buyer  = model.Actor{ID: 42, Role: model.RoleBuyer}
)

var _ = Describe("Service", func() {
	var (
		ctrl     *gomock.Controller
		srv      *internal.Service
		rep      *mock_internal.MockIRepository
		ntf      *mock_internal.MockINotifier
		ledger   *internal.Ledger
		metrics  *internal.Metrics
		notified []model.Notification
		ctx      context.Context
	)
	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())

		logger, err := zap.NewDevelopment()
		Expect(err).ShouldNot(HaveOccurred())

		metrics, err = internal.NewMetrics(prometheus.NewRegistry())
		Expect(err).ShouldNot(HaveOccurred())

		rep = mock_internal.NewMockIRepository(ctrl)
		ntf = mock_internal.NewMockINotifier(ctrl)
		ledger = internal.NewLedger()
		notified = nil
		ctx = context.Background()

		ntf.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n model.Notification) error {
			notified = append(notified, n)
			return nil
		}).AnyTimes()

		srv = internal.NewService(rep, ntf, ledger, metrics, logger.Sugar())
	})
	AfterEach(func() {
		ctrl.Finish()
	})

	Context("UpdateOrderStatus", func() {
		It("moves pending to processing without touching the ledger", func() {
			o := newOrder(1, model.OrderStatusPending, 300000)

			rep.EXPECT().GetOrderByID(ctx, int64(1)).Return(o, nil)
			rep.EXPECT().UpdateOrderStatus(ctx, int64(1), model.OrderStatusPending, model.OrderStatusProcessing, "vendor:7").Return(nil)

			out, err := srv.UpdateOrderStatus(ctx, vendor, 1, model.OrderStatusProcessing)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out.Status).To(Equal(model.OrderStatusProcessing))
			Expect(out.Step).To(Equal(2))
			Expect(out.Actions).To(Equal([]model.Status{model.OrderStatusShipped}))
			Expect(ledger.TotalRevenue()).To(BeZero())

			Expect(notified).To(HaveLen(1))
			Expect(notified[0].Kind).To(Equal(model.NotificationSuccess))
			Expect(notified[0].To).To(Equal(model.OrderStatusProcessing))
		})

		It("accrues revenue and unlocks review on delivery", func() {
			o := newOrder(2, model.OrderStatusShipped, 500000)
			delivered := o
			delivered.Status = model.OrderStatusDelivered

			gomock.InOrder(
				rep.EXPECT().GetOrderByID(ctx, int64(2)).Return(o, nil),
				rep.EXPECT().UpdateOrderStatus(ctx, int64(2), model.OrderStatusShipped, model.OrderStatusDelivered, "vendor:7").Return(nil),
				rep.EXPECT().GetOrderByID(ctx, int64(2)).Return(delivered, nil),
			)

			_, err := srv.UpdateOrderStatus(ctx, vendor, 2, model.OrderStatusDelivered)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ledger.TotalRevenue()).To(Equal(int64(500000)))

			ok, err := srv.IsReviewEligible(ctx, buyer, 2)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeTrue())

			Expect(testutil.ToFloat64(metrics.Transitions.WithLabelValues("shipped", "delivered", "vendor", "success"))).To(Equal(1.0))
			Expect(testutil.ToFloat64(metrics.Revenue)).To(Equal(500000.0))
		})

		It("rejects a buyer cancelling a delivered order without persisting", func() {
			o := newOrder(3, model.OrderStatusDelivered, 100000)

			rep.EXPECT().GetOrderByID(ctx, int64(3)).Return(o, nil)

			out, err := srv.UpdateOrderStatus(ctx, buyer, 3, model.OrderStatusCancelled)
			Expect(errors.Is(err, internal.ErrTransitionNotAllowed)).To(BeTrue())
			Expect(out.Status).To(Equal(model.OrderStatusDelivered))
			Expect(ledger.TotalRevenue()).To(BeZero())

			Expect(notified).To(HaveLen(1))
			Expect(notified[0].Kind).To(Equal(model.NotificationNotAllowed))
			Expect(testutil.ToFloat64(metrics.Transitions.WithLabelValues("delivered", "cancelled", "buyer", "not_allowed"))).To(Equal(1.0))
		})

		It("lets a buyer cancel a pending order", func() {
			o := newOrder(4, model.OrderStatusPending, 100000)

			rep.EXPECT().GetOrderByID(ctx, int64(4)).Return(o, nil)
			rep.EXPECT().UpdateOrderStatus(ctx, int64(4), model.OrderStatusPending, model.OrderStatusCancelled, "buyer:42").Return(nil)

			out, err := srv.UpdateOrderStatus(ctx, buyer, 4, model.OrderStatusCancelled)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out.Status).To(Equal(model.OrderStatusCancelled))
			Expect(out.Actions).To(BeEmpty())
		})

		It("does not apply effects when persistence fails", func() {
			o := newOrder(5, model.OrderStatusShipped, 500000)

			rep.EXPECT().GetOrderByID(ctx, int64(5)).Return(o, nil)
			rep.EXPECT().UpdateOrderStatus(ctx, int64(5), model.OrderStatusShipped, model.OrderStatusDelivered, "vendor:7").Return(errors.New("connection reset"))

			out, err := srv.UpdateOrderStatus(ctx, vendor, 5, model.OrderStatusDelivered)
			Expect(errors.Is(err, internal.ErrPersistenceFailure)).To(BeTrue())
			Expect(out.Status).To(Equal(model.OrderStatusShipped))
			Expect(ledger.TotalRevenue()).To(BeZero())
			Expect(notified[0].Kind).To(Equal(model.NotificationPersistenceFailure))
		})

		It("allows retrying after a persistence failure", func() {
			o := newOrder(5, model.OrderStatusShipped, 500000)

			rep.EXPECT().GetOrderByID(ctx, int64(5)).Return(o, nil).Times(2)
			gomock.InOrder(
				rep.EXPECT().UpdateOrderStatus(ctx, int64(5), model.OrderStatusShipped, model.OrderStatusDelivered, "vendor:7").Return(errors.New("timeout")),
				rep.EXPECT().UpdateOrderStatus(ctx, int64(5), model.OrderStatusShipped, model.OrderStatusDelivered, "vendor:7").Return(nil),
			)

			_, err := srv.UpdateOrderStatus(ctx, vendor, 5, model.OrderStatusDelivered)
			Expect(err).Should(HaveOccurred())

			_, err = srv.UpdateOrderStatus(ctx, vendor, 5, model.OrderStatusDelivered)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ledger.TotalRevenue()).To(Equal(int64(500000)))
		})

		It("returns a conflict when the store was advanced elsewhere", func() {
			o := newOrder(6, model.OrderStatusShipped, 500000)

			rep.EXPECT().GetOrderByID(ctx, int64(6)).Return(o, nil)
			rep.EXPECT().UpdateOrderStatus(ctx, int64(6), model.OrderStatusShipped, model.OrderStatusDelivered, "vendor:7").Return(internal.ErrStatusConflict)

			_, err := srv.UpdateOrderStatus(ctx, vendor, 6, model.OrderStatusDelivered)
			Expect(errors.Is(err, internal.ErrStatusConflict)).To(BeTrue())
			Expect(ledger.TotalRevenue()).To(BeZero())
		})

		It("forbids vendors from touching other vendors' orders", func() {
			o := newOrder(7, model.OrderStatusPending, 100000)

			rep.EXPECT().GetOrderByID(ctx, int64(7)).Return(o, nil)

			_, err := srv.UpdateOrderStatus(ctx, model.Actor{ID: 8, Role: model.RoleVendor}, 7, model.OrderStatusProcessing)
			Expect(err).Should(Equal(internal.ErrForbidden))
			Expect(notified[0].Kind).To(Equal(model.NotificationForbidden))
		})

		It("freezes orders with an unknown stored status", func() {
			o := newOrder(8, model.Status("refunded"), 100000)

			rep.EXPECT().GetOrderByID(ctx, int64(8)).Return(o, nil)

			_, err := srv.UpdateOrderStatus(ctx, vendor, 8, model.OrderStatusCancelled)
			Expect(errors.Is(err, internal.ErrUnknownStatus)).To(BeTrue())
			Expect(notified[0].Kind).To(Equal(model.NotificationUnknownStatus))
			Expect(testutil.ToFloat64(metrics.Transitions.WithLabelValues("unknown", "cancelled", "vendor", "unknown_status"))).To(Equal(1.0))
		})

		It("rejects an unknown target without notifying", func() {
			o := newOrder(9, model.OrderStatusPending, 100000)

			rep.EXPECT().GetOrderByID(ctx, int64(9)).Return(o, nil)

			_, err := srv.UpdateOrderStatus(ctx, vendor, 9, model.Status("paid"))
			Expect(errors.Is(err, internal.ErrUnknownStatus)).To(BeTrue())
			Expect(notified).To(BeEmpty())
		})

		It("returns the store error when the order is missing", func() {
			rep.EXPECT().GetOrderByID(ctx, int64(10)).Return(model.Order{}, internal.ErrOrderNotFound)

			_, err := srv.UpdateOrderStatus(ctx, vendor, 10, model.OrderStatusProcessing)
			Expect(err).Should(Equal(internal.ErrOrderNotFound))
		})

		It("aborts loudly on a malformed order in development", func() {
			o := newOrder(11, model.OrderStatusPending, -1)

			rep.EXPECT().GetOrderByID(ctx, int64(11)).Return(o, nil)

			Expect(func() {
				_, _ = srv.UpdateOrderStatus(ctx, vendor, 11, model.OrderStatusProcessing)
			}).To(Panic())
		})

		It("reports a malformed order in production", func() {
			o := newOrder(11, model.OrderStatusPending, 100000)
			o.Items[0].Quantity = 0

			rep.EXPECT().GetOrderByID(ctx, int64(11)).Return(o, nil)

			prod := internal.NewService(rep, ntf, ledger, metrics, zap.NewNop().Sugar())
			_, err := prod.UpdateOrderStatus(ctx, vendor, 11, model.OrderStatusProcessing)
			Expect(err).Should(Equal(internal.ErrMalformedOrder))
		})
	})

	Context("Queries", func() {
		It("GetOrders scopes, filters and renders", func() {
			orders := []model.Order{
				newOrder(1, model.OrderStatusPending, 100000),
				newOrder(2, model.OrderStatusShipped, 200000),
				newOrder(3, model.OrderStatusPending, 300000),
			}
			orders[2].VendorID = 8

			rep.EXPECT().GetOrders(ctx, model.OrderFilter{VendorID: 7}).Return(orders, nil)

			out, err := srv.GetOrders(ctx, vendor, internal.FilterOptions{Status: model.OrderStatusPending})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out).To(HaveLen(1))
			Expect(out[0].ID).To(Equal(int64(1)))
			Expect(out[0].Actions).To(Equal([]model.Status{model.OrderStatusProcessing, model.OrderStatusCancelled}))
		})

		It("GetOrders with no matches", func() {
			rep.EXPECT().GetOrders(ctx, model.OrderFilter{BuyerID: 42}).Return(nil, nil)

			_, err := srv.GetOrders(ctx, buyer, internal.FilterOptions{})
			Expect(err).Should(Equal(internal.ErrNoRecords))
		})

		It("GetOrders with unknown status filter", func() {
			_, err := srv.GetOrders(ctx, buyer, internal.FilterOptions{Status: "lost"})
			Expect(err).Should(Equal(internal.ErrUnknownStatus))
		})

		It("CountOrders", func() {
			rep.EXPECT().GetOrders(ctx, model.OrderFilter{BuyerID: 42}).Return([]model.Order{
				newOrder(1, model.OrderStatusPending, 100000),
				newOrder(2, model.OrderStatusDelivered, 100000),
			}, nil)

			counts, err := srv.CountOrders(ctx, buyer)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(counts[model.OrderStatusPending]).To(Equal(1))
			Expect(counts[model.OrderStatusDelivered]).To(Equal(1))
			Expect(counts[model.OrderStatusShipped]).To(BeZero())
		})

		It("GetStatusHistory", func() {
			rep.EXPECT().GetOrderByID(ctx, int64(1)).Return(newOrder(1, model.OrderStatusProcessing, 100000), nil)
			rep.EXPECT().GetStatusHistory(ctx, int64(1)).Return([]model.StatusLog{
				{ID: 1, OrderID: 1, Status: model.OrderStatusProcessing, ChangedBy: "vendor:7"},
			}, nil)

			h, err := srv.GetStatusHistory(ctx, buyer, 1)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(h).To(HaveLen(1))
		})

		It("GetStatusHistory empty", func() {
			rep.EXPECT().GetOrderByID(ctx, int64(1)).Return(newOrder(1, model.OrderStatusPending, 100000), nil)
			rep.EXPECT().GetStatusHistory(ctx, int64(1)).Return(nil, nil)

			_, err := srv.GetStatusHistory(ctx, buyer, 1)
			Expect(err).Should(Equal(internal.ErrNoRecords))
		})

		It("GetRevenue is vendor only", func() {
			_, err := srv.GetRevenue(ctx, buyer)
			Expect(err).Should(Equal(internal.ErrForbidden))

			r, err := srv.GetRevenue(ctx, vendor)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(r.Total).To(BeZero())
		})

		It("review is not eligible before delivery", func() {
			rep.EXPECT().GetOrderByID(ctx, int64(1)).Return(newOrder(1, model.OrderStatusShipped, 100000), nil)

			ok, err := srv.IsReviewEligible(ctx, buyer, 1)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Context("ReplayLedger", func() {
		It("rebuilds revenue and reviews from delivered orders", func() {
			a := newOrder(1, model.OrderStatusDelivered, 100000)
			b := newOrder(2, model.OrderStatusDelivered, 250000)
			b.VendorID = 8
			bad := newOrder(3, model.OrderStatusDelivered, -5)

			rep.EXPECT().GetOrders(ctx, model.OrderFilter{Status: model.OrderStatusDelivered}).Return([]model.Order{a, b, bad}, nil)
			rep.EXPECT().GetOrderByID(ctx, int64(1)).Return(a, nil)

			Expect(srv.ReplayLedger(ctx)).To(Succeed())
			Expect(ledger.TotalRevenue()).To(Equal(int64(350000)))

			r, err := srv.GetRevenue(ctx, vendor)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(r).To(Equal(model.RevenueOutput{Total: 350000, Vendor: 100000}))

			ok, err := srv.IsReviewEligible(ctx, buyer, 1)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("returns store errors", func() {
			e := errors.New("some error")
			rep.EXPECT().GetOrders(ctx, gomock.Any()).Return(nil, e)

			Expect(srv.ReplayLedger(ctx)).To(Equal(e))
		})
	})
})

var _ = Describe("Service concurrency", func() {
	It("accepts exactly one of two concurrent deliveries", func() {
		store := newMemoryRepository(newOrder(5, model.OrderStatusShipped, 500000))
		ledger := internal.NewLedger()
		metrics, err := internal.NewMetrics(prometheus.NewRegistry())
		Expect(err).ShouldNot(HaveOccurred())

		logger := zap.NewNop().Sugar()
		srv := internal.NewService(store, internal.NewLogNotifier(logger), ledger, metrics, logger)

		const n = 20
		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer GinkgoRecover()
				_, errs[i] = srv.UpdateOrderStatus(context.Background(), vendor, 5, model.OrderStatusDelivered)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			Expect(errors.Is(err, internal.ErrTransitionNotAllowed)).To(BeTrue())
		}
		Expect(succeeded).To(Equal(1))
		Expect(ledger.TotalRevenue()).To(Equal(int64(500000)))

		h, err := store.GetStatusHistory(context.Background(), 5)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(h).To(HaveLen(1))
	})
})

type memoryRepository struct {
	mu      sync.Mutex
	orders  map[int64]model.Order
	history []model.StatusLog
}

func newMemoryRepository(orders ...model.Order) *memoryRepository {
	r := &memoryRepository{orders: make(map[int64]model.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *memoryRepository) GetOrders(_ context.Context, f model.OrderFilter) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []model.Order
	for _, o := range r.orders {
		if (f.VendorID == 0 || o.VendorID == f.VendorID) && (f.BuyerID == 0 || o.BuyerID == f.BuyerID) && (f.Status == "" || o.Status == f.Status) {
			res = append(res, o)
		}
	}
	return res, nil
}

func (r *memoryRepository) GetOrderByID(_ context.Context, id int64) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return model.Order{}, internal.ErrOrderNotFound
	}
	return o, nil
}

func (r *memoryRepository) UpdateOrderStatus(_ context.Context, id int64, from, to model.Status, changedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return internal.ErrStatusConflict
	}
	o.Status = to
	r.orders[id] = o
	r.history = append(r.history, model.StatusLog{ID: int64(len(r.history) + 1), OrderID: id, Status: to, ChangedBy: changedBy})
	return nil
}

func (r *memoryRepository) GetStatusHistory(_ context.Context, id int64) ([]model.StatusLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []model.StatusLog
	for _, l := range r.history {
		if l.OrderID == id {
			res = append(res, l)
		}
	}
	return res, nil
}
