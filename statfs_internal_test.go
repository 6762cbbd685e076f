package fbox

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFilesystemStats_WideArithmetic(t *testing.T) {
	const blocks = uint64(1) << 40
	st := newFilesystemStats("/data", 4096, blocks, blocks/2, blocks/4, 0xEF53)

	assert.Equal(t, uint64(1)<<52, st.TotalBytes)
	assert.Equal(t, uint64(1)<<51, st.AvailableBytes)
	assert.Equal(t, uint64(1)<<50, st.FreeBytes)
	assert.Equal(t, uint64(4096), st.BlockSize)
	assert.Equal(t, "EXT4", st.TypeName)
	assert.Equal(t, []string{"EXT2", "EXT3", "EXT4"}, st.TypeCandidates)
	assert.Equal(t, "EXT4    ", st.PaddedTypeName())
}

func TestNewFilesystemStats_Saturates(t *testing.T) {
	st := newFilesystemStats("/huge", 1<<20, math.MaxUint64/2, 1<<44, 0, 0x01021994)

	assert.Equal(t, uint64(math.MaxUint64), st.TotalBytes)
	assert.Equal(t, uint64(math.MaxUint64), st.AvailableBytes)
	assert.Equal(t, uint64(math.MaxUint64), mulBlocks(1<<32, 1<<32))
	assert.Equal(t, uint64(1)<<63, mulBlocks(1<<31, 1<<32))
	assert.Zero(t, st.FreeBytes)
	assert.Equal(t, "TMPFS", st.TypeName)
}

func TestNewFilesystemStats_UnknownType(t *testing.T) {
	st := newFilesystemStats("/x", 512, 10, 5, 6, 0x12345678)

	assert.Equal(t, uint64(5120), st.TotalBytes)
	assert.Equal(t, uint64(0x12345678), uint64(st.Magic))
	assert.Empty(t, st.TypeName)
	assert.Empty(t, st.TypeCandidates)
	assert.Empty(t, st.PaddedTypeName())
}
