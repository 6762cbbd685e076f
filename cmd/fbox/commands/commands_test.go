//go:build unix

package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuln/fbox"
	"github.com/nuln/fbox/fboxtest"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(fbox.ConfigJSONEnv, "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBackends(t *testing.T) {
	out, _, err := run(t, "backends")
	require.NoError(t, err)
	assert.Equal(t, []string{"fio", "io", "mmap", "rclone"}, strings.Fields(out))
}

func TestSizeAndDump(t *testing.T) {
	content := fboxtest.RandomBytes(4096, 5)
	p := fboxtest.WriteFixture(t, t.TempDir(), "data.bin", content)

	for _, backend := range []string{"io", "fio", "mmap"} {
		out, _, err := run(t, "--backend", backend, "size", p)
		require.NoError(t, err, backend)
		assert.Equal(t, "4096\n", out, backend)

		out, _, err = run(t, "--backend", backend, "dump", p)
		require.NoError(t, err, backend)
		assert.Equal(t, string(content), out, backend)
	}
}

func TestDumpEmptyFile(t *testing.T) {
	p := fboxtest.WriteFixture(t, t.TempDir(), "empty", nil)

	_, _, err := run(t, "dump", p)
	assert.ErrorIs(t, err, fbox.ErrEmptyFile)
}

func TestCp(t *testing.T) {
	dir := t.TempDir()
	content := fboxtest.RandomBytes(100000, 9)
	src := fboxtest.WriteFixture(t, dir, "src.bin", content)
	dst := filepath.Join(dir, "dst.bin")

	_, errOut, err := run(t, "--backend", "fio", "cp", src, dst, "--sync")
	require.NoError(t, err)
	assert.Contains(t, errOut, "100000 bytes")

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestCpOntoItself(t *testing.T) {
	dir := t.TempDir()
	content := []byte("keep me")
	src := fboxtest.WriteFixture(t, dir, "same.txt", content)
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.Link(src, link))

	for _, dst := range []string{src, dir + "/./same.txt", link} {
		_, _, err := run(t, "cp", src, dst)
		assert.ErrorIs(t, err, errSameFile, dst)
	}

	got, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestStat(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, "stat", "--raw", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Path:       "+dir)
	assert.Contains(t, out, "Total:")

	out, _, err = run(t, "stat", "--json", dir)
	require.NoError(t, err)
	var st fbox.FilesystemStats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, dir, st.Path)
	assert.NotZero(t, st.TotalBytes)
}

func TestErrors(t *testing.T) {
	_, _, err := run(t, "--backend", "nope", "size", "x")
	assert.ErrorIs(t, err, fbox.ErrUnknownBackend)

	_, _, err = run(t, "--log-level", "chatty", "size", "x")
	assert.Error(t, err)

	_, _, err = run(t, "size")
	assert.Error(t, err)
}
