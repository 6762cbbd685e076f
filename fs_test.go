//go:build unix

package fbox_test

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuln/fbox"
	"github.com/nuln/fbox/driver/unixfd"
	"github.com/nuln/fbox/fboxtest"
)

func newTestFS(t *testing.T) (*fbox.FS, string) {
	t.Helper()
	return fbox.NewFS(unixfd.New("")), t.TempDir()
}

func TestFS_OpenClose(t *testing.T) {
	fsys, dir := newTestFS(t)
	ctx := context.Background()

	f, err := fsys.Open(ctx, filepath.Join(dir, "a.txt"), fbox.WriteOnly|fbox.Create)
	require.NoError(t, err)
	assert.Equal(t, "io", f.Backend())
	assert.Equal(t, filepath.Join(dir, "a.txt"), f.Name())
	require.NoError(t, f.Close())
}

func TestFS_OpenInvalid(t *testing.T) {
	fsys, dir := newTestFS(t)
	ctx := context.Background()

	f, err := fsys.Open(ctx, "", fbox.ReadOnly)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, fbox.ErrInvalid)

	f, err = fsys.Open(ctx, filepath.Join(dir, "a.txt"), fbox.Create)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, fbox.ErrInvalidMode)

	f, err = fsys.Open(ctx, filepath.Join(dir, "missing.txt"), fbox.ReadOnly)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFile_RoundTrip(t *testing.T) {
	fsys, dir := newTestFS(t)
	ctx := context.Background()
	content := fboxtest.RandomBytes(10000, 42)

	f, err := fsys.Create(ctx, filepath.Join(dir, "rt.bin"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	n, err := f.Write(content)
	require.NoError(t, err)
	assert.Equal(t, len(content), n)
	require.NoError(t, f.Sync())

	size, err := f.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)

	off, err := f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	assert.Zero(t, off)

	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(content, got), "read back bytes differ")
}

func TestFile_UseAfterClose(t *testing.T) {
	fsys, dir := newTestFS(t)

	f, err := fsys.Create(context.Background(), filepath.Join(dir, "closed.txt"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = f.Read(make([]byte, 1))
	assert.ErrorIs(t, err, fbox.ErrClosed)
	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, fbox.ErrClosed)
	_, err = f.Seek(0, io.SeekStart)
	assert.ErrorIs(t, err, fbox.ErrClosed)
	_, err = f.Size()
	assert.ErrorIs(t, err, fbox.ErrClosed)
	assert.ErrorIs(t, f.Sync(), fbox.ErrClosed)
	assert.ErrorIs(t, f.Close(), fbox.ErrClosed)
}

func TestFS_GetSize(t *testing.T) {
	fsys, dir := newTestFS(t)
	ctx := context.Background()

	p := fboxtest.WriteFixture(t, dir, "sized.txt", []byte("12345"))
	size, err := fsys.GetSize(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	empty := fboxtest.WriteFixture(t, dir, "empty.txt", nil)
	size, err = fsys.GetSize(ctx, empty)
	require.NoError(t, err)
	assert.Zero(t, size)

	_, err = fsys.GetSize(ctx, filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = fsys.GetSize(ctx, "")
	assert.ErrorIs(t, err, fbox.ErrInvalid)
}

func TestFS_Dump(t *testing.T) {
	fsys, dir := newTestFS(t)
	content := fboxtest.RandomBytes(4096, 7)
	p := fboxtest.WriteFixture(t, dir, "dump.bin", content)

	buf, err := fsys.Dump(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 4096, buf.Len())
	assert.True(t, bytes.Equal(content, buf.Bytes()), "dumped bytes differ")
}

func TestFS_DumpEmptyFile(t *testing.T) {
	fsys, dir := newTestFS(t)
	p := fboxtest.WriteFixture(t, dir, "empty.bin", nil)

	buf, err := fsys.Dump(context.Background(), p)
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, fbox.ErrEmptyFile)
}

func TestFS_DumpMissingFile(t *testing.T) {
	fsys, dir := newTestFS(t)

	buf, err := fsys.Dump(context.Background(), filepath.Join(dir, "missing.bin"))
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, fbox.ErrEmptyFile)
}

func TestFS_DumpShortRead(t *testing.T) {
	dir := t.TempDir()
	p := fboxtest.WriteFixture(t, dir, "short.bin", fboxtest.RandomBytes(4096, 3))

	faulty := fboxtest.NewFaultyBackend(unixfd.New(""))
	faulty.AddRule("short.bin", fboxtest.Fault{ReadLimit: 100})
	fsys := fbox.NewFS(faulty)

	buf, err := fsys.Dump(context.Background(), p)
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, fbox.ErrShortRead)
	assert.Contains(t, err.Error(), "read 100 of 4096 bytes")
	assert.Zero(t, faulty.Opens(), "descriptor leaked")
}

func TestFS_DumpOpenFailure(t *testing.T) {
	dir := t.TempDir()
	p := fboxtest.WriteFixture(t, dir, "locked.bin", []byte("data"))

	faulty := fboxtest.NewFaultyBackend(unixfd.New(""))
	faulty.AddRule("locked", fboxtest.Fault{FailOnOpen: true})

	buf, err := fbox.NewFS(faulty).Dump(context.Background(), p)
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, fboxtest.ErrInjected)
}

func TestFS_DumpCloseFailure(t *testing.T) {
	dir := t.TempDir()
	p := fboxtest.WriteFixture(t, dir, "close.bin", []byte("data"))

	faulty := fboxtest.NewFaultyBackend(unixfd.New(""))
	faulty.AddRule("close.bin", fboxtest.Fault{FailOnClose: true})

	buf, err := fbox.NewFS(faulty).Dump(context.Background(), p)
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, fboxtest.ErrInjected)
	assert.Zero(t, faulty.Opens(), "descriptor leaked")
}

func TestFS_Statfs(t *testing.T) {
	fsys, dir := newTestFS(t)
	ctx := context.Background()

	st, err := fsys.Statfs(ctx, dir)
	require.NoError(t, err)
	assert.NotZero(t, st.TotalBytes)

	_, err = fsys.Statfs(ctx, "")
	assert.ErrorIs(t, err, fbox.ErrInvalid)
}

func TestFS_LogsFailures(t *testing.T) {
	var out bytes.Buffer
	fsys := fbox.NewFS(unixfd.New(""), fbox.WithLogger(zerolog.New(&out)))
	dir := t.TempDir()

	_, err := fsys.Open(context.Background(), filepath.Join(dir, "missing"), fbox.ReadOnly)
	require.Error(t, err)
	assert.Contains(t, out.String(), "open failed")
	assert.Contains(t, out.String(), `"backend":"io"`)

	out.Reset()
	_, err = fsys.GetSize(context.Background(), filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, out.String(), "stat failed")
}

func TestFS_StatFallsBackToOS(t *testing.T) {
	dir := t.TempDir()
	p := fboxtest.WriteFixture(t, dir, "os.txt", []byte("abc"))

	// FaultyBackend does not implement Stater.
	fsys := fbox.NewFS(fboxtest.NewFaultyBackend(unixfd.New("")))
	info, err := fsys.Stat(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)
	assert.Equal(t, "os.txt", info.Name)
	assert.Equal(t, "os.txt", info.ToFileInfo().Name())

	_, err = os.Stat(p)
	require.NoError(t, err)
}

// rootedBackend hides the Stater of the wrapped backend but keeps its
// path resolution.
type rootedBackend struct {
	fbox.Backend
}

func (b rootedBackend) Resolve(path string) (string, error) {
	return b.Backend.(fbox.Resolver).Resolve(path)
}

func TestFS_ResolvesBackendRoot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	fboxtest.WriteFixture(t, dir, "f.txt", []byte("abc"))

	fsys := fbox.NewFS(unixfd.New(dir))

	resolved, err := fsys.Resolve("sub")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub"), resolved)

	size, err := fsys.GetSize(ctx, "f.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)

	st, err := fsys.Statfs(ctx, "sub")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub"), st.Path)
	assert.NotZero(t, st.TotalBytes)

	_, err = fsys.Resolve("")
	assert.ErrorIs(t, err, fbox.ErrInvalid)
}

func TestFS_StatFallbackResolvesBackendRoot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fboxtest.WriteFixture(t, dir, "f.txt", []byte("abcd"))

	fsys := fbox.NewFS(rootedBackend{Backend: unixfd.New(dir)})

	info, err := fsys.Stat(ctx, "f.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size)
	assert.Equal(t, "f.txt", info.Path)

	buf, err := fsys.Dump(ctx, "f.txt")
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(buf.Bytes()))
}
