package solana

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMinLiquidity(t *testing.T) {
	b := EncodeMinLiquidity(MinLiquidityLamports)
	require.Len(t, b, 8)

	// 5_000_000_000 == 0x012A05F200
	assert.Equal(t, []byte{0x00, 0xF2, 0x05, 0x2A, 0x01, 0x00, 0x00, 0x00}, b)
}

func TestMinLiquidityRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 256, MinLiquidityLamports, math.MaxUint64} {
		assert.Equal(t, v, DecodeMinLiquidity(EncodeMinLiquidity(v)))
	}
}

func TestPoolFilters(t *testing.T) {
	filters := PoolFilters()
	require.Len(t, filters, 2)

	assert.Equal(t, uint64(PoolAccountSize), filters[0].DataSize)
	assert.Nil(t, filters[0].Memcmp)

	require.NotNil(t, filters[1].Memcmp)
	assert.Equal(t, uint64(MinLiquidityOffset), filters[1].Memcmp.Offset)
	assert.Equal(t, EncodeMinLiquidity(MinLiquidityLamports), []byte(filters[1].Memcmp.Bytes))

	// Building the filters twice yields the same byte pattern.
	assert.Equal(t, filters, PoolFilters())
}
