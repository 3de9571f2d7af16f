package settings

import (
	"context"
	"time"
)

// BackendMetrics receives timing observations for backend operations.
// A nil BackendMetrics disables instrumentation with zero overhead.
type BackendMetrics interface {
	// ObserveOp records one backend operation. op is "load", "save", or
	// "delete".
	ObserveOp(op string, duration time.Duration, err error)
}

// InstrumentBackend wraps a backend so every operation is reported to m.
// Returns b unchanged when m is nil.
func InstrumentBackend(b Backend, m BackendMetrics) Backend {
	if m == nil {
		return b
	}
	return &instrumentedBackend{backend: b, metrics: m}
}

type instrumentedBackend struct {
	backend Backend
	metrics BackendMetrics
}

func (b *instrumentedBackend) Load(ctx context.Context, name string) (map[string]any, error) {
	start := time.Now()
	data, err := b.backend.Load(ctx, name)
	b.metrics.ObserveOp("load", time.Since(start), err)
	return data, err
}

func (b *instrumentedBackend) Save(ctx context.Context, name string, data map[string]any) error {
	start := time.Now()
	err := b.backend.Save(ctx, name, data)
	b.metrics.ObserveOp("save", time.Since(start), err)
	return err
}

func (b *instrumentedBackend) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := b.backend.Delete(ctx, name)
	b.metrics.ObserveOp("delete", time.Since(start), err)
	return err
}

func (b *instrumentedBackend) Close() error {
	return b.backend.Close()
}
