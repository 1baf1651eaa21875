package solana

import (
	"github.com/gagliardetto/solana-go"
)

// Pool is a liquidity pool account returned by a program accounts scan.
// Only lives for the duration of a single poll.
type Pool struct {
	Address solana.PublicKey
	Data    []byte
}

// Liquidity decodes the minimum liquidity field at MinLiquidityOffset.
// ok is false when the account data is too short to hold it.
func (p *Pool) Liquidity() (lamports uint64, ok bool) {
	if len(p.Data) < MinLiquidityOffset+8 {
		return 0, false
	}
	return DecodeMinLiquidity(p.Data[MinLiquidityOffset : MinLiquidityOffset+8]), true
}
