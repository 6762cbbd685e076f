package fbox

import (
	"context"
	"errors"
	"io"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts descriptor operations and transferred bytes per backend.
type Metrics struct {
	ops   *prometheus.CounterVec
	bytes *prometheus.CounterVec
}

// NewMetrics creates the fbox collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fbox",
			Name:      "operations_total",
			Help:      "File operations by backend, operation and result.",
		}, []string{"backend", "op", "result"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fbox",
			Name:      "bytes_total",
			Help:      "Bytes read or written by backend.",
		}, []string{"backend", "direction"}),
	}
	if reg != nil {
		reg.MustRegister(m.ops, m.bytes)
	}
	return m
}

func (m *Metrics) observe(backend, op string, err error) {
	result := "ok"
	if err != nil && !errors.Is(err, io.EOF) {
		result = "error"
	}
	m.ops.WithLabelValues(backend, op, result).Inc()
}

func (m *Metrics) transferred(backend, direction string, n int) {
	if n > 0 {
		m.bytes.WithLabelValues(backend, direction).Add(float64(n))
	}
}

// Instrument wraps b so that every operation on its descriptors is
// counted in m.
func Instrument(b Backend, m *Metrics) Backend {
	return &instrumentedBackend{Backend: b, m: m}
}

type instrumentedBackend struct {
	Backend
	m *Metrics
}

func (b *instrumentedBackend) Open(ctx context.Context, path string, mode Mode) (Descriptor, error) {
	d, err := b.Backend.Open(ctx, path, mode)
	b.m.observe(b.Name(), "open", err)
	if err != nil {
		return nil, err
	}
	return &instrumentedDescriptor{d: d, name: b.Name(), m: b.m}, nil
}

type instrumentedDescriptor struct {
	d    Descriptor
	name string
	m    *Metrics
}

func (d *instrumentedDescriptor) Read(p []byte) (int, error) {
	n, err := d.d.Read(p)
	d.m.observe(d.name, "read", err)
	d.m.transferred(d.name, "read", n)
	return n, err
}

func (d *instrumentedDescriptor) Write(p []byte) (int, error) {
	n, err := d.d.Write(p)
	d.m.observe(d.name, "write", err)
	d.m.transferred(d.name, "write", n)
	return n, err
}

func (d *instrumentedDescriptor) Seek(offset int64, whence int) (int64, error) {
	off, err := d.d.Seek(offset, whence)
	d.m.observe(d.name, "seek", err)
	return off, err
}

func (d *instrumentedDescriptor) Size() (int64, error) {
	n, err := d.d.Size()
	d.m.observe(d.name, "size", err)
	return n, err
}

func (d *instrumentedDescriptor) Sync() error {
	err := d.d.Sync()
	d.m.observe(d.name, "sync", err)
	return err
}

func (d *instrumentedDescriptor) Close() error {
	err := d.d.Close()
	d.m.observe(d.name, "close", err)
	return err
}
