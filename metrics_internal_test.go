package fbox

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	data []byte
}

func (b *memBackend) Name() string { return "mem" }

func (b *memBackend) Open(_ context.Context, path string, _ Mode) (Descriptor, error) {
	if path == "missing" {
		return nil, ErrNotFound
	}
	return &memDescriptor{r: bytes.NewReader(b.data)}, nil
}

type memDescriptor struct {
	r *bytes.Reader
}

func (d *memDescriptor) Read(p []byte) (int, error) { return d.r.Read(p) }
func (d *memDescriptor) Write(p []byte) (int, error) { return 0, ErrNotSupported }
func (d *memDescriptor) Seek(off int64, whence int) (int64, error) { return d.r.Seek(off, whence) }
func (d *memDescriptor) Size() (int64, error) { return d.r.Size(), nil }
func (d *memDescriptor) Sync() error { return nil }
func (d *memDescriptor) Close() error { return nil }

func TestMetrics_CountsOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	fsys := NewFS(&memBackend{data: []byte("hello")}, WithMetrics(m))
	ctx := context.Background()

	f, err := fsys.Open(ctx, "greeting", ReadOnly)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = f.Write([]byte("x"))
	assert.True(t, errors.Is(err, ErrNotSupported))
	require.NoError(t, f.Close())

	_, err = fsys.Open(ctx, "missing", ReadOnly)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ops.WithLabelValues("mem", "open", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ops.WithLabelValues("mem", "open", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ops.WithLabelValues("mem", "write", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ops.WithLabelValues("mem", "close", "ok")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.bytes.WithLabelValues("mem", "read")))

	// The terminating io.EOF is not a failure.
	assert.Zero(t, testutil.ToFloat64(m.ops.WithLabelValues("mem", "read", "error")))
}

func TestMetrics_KeepsExtensions(t *testing.T) {
	fsys := NewFS(&memBackend{}, WithMetrics(NewMetrics(nil)))
	assert.Equal(t, "mem", fsys.Backend())

	f, err := fsys.Open(context.Background(), "any", ReadOnly)
	require.NoError(t, err)
	assert.Equal(t, "mem", f.Backend())
	require.NoError(t, f.Close())
}
