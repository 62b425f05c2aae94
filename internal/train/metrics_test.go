package train

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/config"
)

// TestMetrics_ObserveEpoch tests the recorded values.
func TestMetrics_ObserveEpoch(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.observeEpoch(0.5, 120, 0.001)
	m.observeEpoch(0.25, 100, 0.002)

	assert.Equal(t, 0.25, testutil.ToFloat64(m.loss))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.epochs))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.tapeNodes))
	assert.Equal(t, 1, testutil.CollectAndCount(m.backward))
}

// TestMetrics_Nil tests that a nil sink is a no-op.
func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observeEpoch(1, 1, 1) })
}

// TestMetrics_Run tests that a run updates the metrics once per epoch.
func TestMetrics_Run(t *testing.T) {
	cfg := config.Default()
	cfg.Training.Epochs = 4

	m := NewMetrics(nil)
	tr, err := New(cfg, WithMetrics(m))
	require.NoError(t, err)

	res, err := tr.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.epochs))
	assert.Equal(t, res.FinalLoss(), testutil.ToFloat64(m.loss))
	assert.Greater(t, testutil.ToFloat64(m.tapeNodes), float64(tr.mark))
}
