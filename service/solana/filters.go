package solana

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go/rpc"
)

// Raydium LP account layout assumptions used by the scan filters.
const (
	// PoolAccountSize is the exact data length of a matching account.
	PoolAccountSize = 165

	// MinLiquidityOffset is where the 8 byte little-endian liquidity field starts.
	MinLiquidityOffset = 96

	// MinLiquidityLamports is the value the liquidity field must hold (5 SOL).
	MinLiquidityLamports uint64 = 5_000_000_000
)

// EncodeMinLiquidity returns v as 8 little-endian bytes.
func EncodeMinLiquidity(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// DecodeMinLiquidity reads an 8 byte little-endian value. It panics if b is shorter than 8 bytes.
func DecodeMinLiquidity(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

// PoolFilters returns the getProgramAccounts filters matching new liquidity pools:
// exact data size, and the liquidity field equal to MinLiquidityLamports.
func PoolFilters() []rpc.RPCFilter {
	return []rpc.RPCFilter{
		{DataSize: PoolAccountSize},
		{
			Memcmp: &rpc.RPCFilterMemcmp{
				Offset: MinLiquidityOffset,
				Bytes:  EncodeMinLiquidity(MinLiquidityLamports),
			},
		},
	}
}
