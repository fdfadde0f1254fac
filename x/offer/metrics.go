package offer

import (
	"github.com/iov-one/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the ledger operations. A nil *Metrics records nothing.
type Metrics struct {
	created  prometheus.Counter
	released *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewMetrics creates the offer counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "offer",
			Name:      "created_total",
			Help:      "Number of offers created.",
		}),
		released: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "offer",
			Name:      "released_total",
			Help:      "Number of offers that left the active state, by outcome.",
		}, []string{"outcome"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "offer",
			Name:      "rejected_total",
			Help:      "Number of rejected ledger operations, by operation and reason.",
		}, []string{"operation", "reason"}),
	}
	reg.MustRegister(m.created, m.released, m.rejected)
	return m
}

func (m *Metrics) observeCreated() {
	if m == nil {
		return
	}
	m.created.Inc()
}

func (m *Metrics) observeReleased(status OfferStatus) {
	if m == nil {
		return
	}
	m.released.WithLabelValues(status.String()).Inc()
}

func (m *Metrics) observeRejected(operation string, err error) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(operation, rejectReason(err)).Inc()
}

// rejectReason maps an error to a label value with a bounded set of
// values.
func rejectReason(err error) string {
	switch {
	case errors.ErrInvalidAmount.Is(err):
		return "invalid_amount"
	case ErrSelfDealing.Is(err):
		return "self_dealing"
	case errors.ErrNotFound.Is(err):
		return "not_found"
	case errors.ErrInvalidState.Is(err):
		return "invalid_state"
	case errors.ErrUnauthorized.Is(err):
		return "unauthorized"
	case errors.ErrInsufficientAmount.Is(err):
		return "insufficient_funds"
	case errors.ErrInvalidInput.Is(err):
		return "invalid_input"
	default:
		return "other"
	}
}
