package internal

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DrGermanius/Storefront/internal/model"
)

const (
	outcomeSuccess            = "success"
	outcomeNotAllowed         = "not_allowed"
	outcomeUnknownStatus      = "unknown_status"
	outcomePersistenceFailure = "persistence_failure"
)

type Metrics struct {
	Transitions *prometheus.CounterVec
	Revenue     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "order_transitions_total",
			Help:      "Order status transition requests by outcome.",
		}, []string{"from", "to", "actor", "outcome"}),
		Revenue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storefront",
			Name:      "revenue_total",
			Help:      "Revenue recognised from delivered orders, smallest currency unit.",
		}),
	}

	for _, c := range []prometheus.Collector{m.Transitions, m.Revenue} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeTransition(from, to model.Status, actor model.Role, outcome string) {
	m.Transitions.WithLabelValues(labelStatus(from), labelStatus(to), string(actor), outcome).Inc()
}

// labelStatus keeps label cardinality bounded when the store returns garbage.
func labelStatus(s model.Status) string {
	if !s.IsValid() {
		return "unknown"
	}
	return string(s)
}
