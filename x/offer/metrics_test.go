package offer

import (
	"testing"

	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	f := newFixture(t, WithMetrics(m))

	_, err := f.ledger.Create(f.ctx, f.db, f.user1, f.user2, coin.NewAmount(10))
	require.NoError(t, err)
	_, err = f.ledger.Create(f.ctx, f.db, f.user1, f.user2, coin.NewAmount(20))
	require.NoError(t, err)
	_, err = f.ledger.Create(f.ctx, f.db, f.user1, f.user1, coin.NewAmount(20))
	require.Error(t, err)
	_, err = f.ledger.Accept(f.ctx, f.db, f.user2, 1)
	require.NoError(t, err)
	_, err = f.ledger.Accept(f.ctx, f.db, f.user2, 1)
	require.Error(t, err)
	_, err = f.ledger.Cancel(f.ctx, f.db, f.user1, 2)
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.created))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.released.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.released.WithLabelValues("cancelled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("create", "self_dealing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("accept", "invalid_state")))
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	m.observeCreated()
	m.observeReleased(StatusAccepted)
	m.observeRejected("create", errors.ErrNotFound)
}

func TestRejectReason(t *testing.T) {
	cases := map[string]error{
		"invalid_amount":     errors.Wrap(errors.ErrInvalidAmount, "x"),
		"self_dealing":       ErrSelfDealing,
		"not_found":          errors.ErrNotFound,
		"invalid_state":      errors.ErrInvalidState,
		"unauthorized":       errors.ErrUnauthorized,
		"insufficient_funds": errors.ErrInsufficientAmount,
		"invalid_input":      errors.ErrInvalidInput,
		"other":              errors.ErrDatabase,
	}
	for want, err := range cases {
		assert.Equal(t, want, rejectReason(err))
	}
}
