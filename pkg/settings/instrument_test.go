package settings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modkit-io/modkit/pkg/settings"
	"github.com/modkit-io/modkit/pkg/settings/backend/memory"
)

type recordingBackendMetrics struct {
	ops    []string
	errors int
}

func (m *recordingBackendMetrics) ObserveOp(op string, _ time.Duration, err error) {
	m.ops = append(m.ops, op)
	if err != nil {
		m.errors++
	}
}

func TestInstrumentBackendRecordsOps(t *testing.T) {
	ctx := context.Background()
	recorder := &recordingBackendMetrics{}
	backend := settings.InstrumentBackend(memory.New(), recorder)

	require.NoError(t, backend.Save(ctx, "blob", map[string]any{"k": "v"}))

	data, err := backend.Load(ctx, "blob")
	require.NoError(t, err)
	assert.Equal(t, "v", data["k"])

	require.NoError(t, backend.Delete(ctx, "blob"))

	assert.Equal(t, []string{"save", "load", "delete"}, recorder.ops)
	assert.Zero(t, recorder.errors)
}

func TestInstrumentBackendCountsErrors(t *testing.T) {
	ctx := context.Background()
	recorder := &recordingBackendMetrics{}
	backend := settings.InstrumentBackend(memory.New(), recorder)

	_, err := backend.Load(ctx, "missing")
	require.ErrorIs(t, err, settings.ErrBlobNotFound)
	assert.Equal(t, 1, recorder.errors)
}

func TestInstrumentBackendNilMetricsPassthrough(t *testing.T) {
	inner := memory.New()
	assert.Same(t, settings.Backend(inner), settings.InstrumentBackend(inner, nil))
}
