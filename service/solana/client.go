package solana

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brojonat/poolwatch/service/metrics"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// RPCClient is an interface for the Solana RPC operations we need.
// This allows us to mock the RPC layer in tests without hitting real Solana nodes.
type RPCClient interface {
	GetProgramAccountsWithOpts(
		ctx context.Context,
		program solana.PublicKey,
		opts *rpc.GetProgramAccountsOpts,
	) (rpc.GetProgramAccountsResult, error)
}

// Error classes reported by ClassifyError.
const (
	ErrorClassProvider  = "provider"
	ErrorClassTimeout   = "timeout"
	ErrorClassTransport = "transport"
)

// Client provides methods for scanning program accounts.
// It wraps the RPC client with domain-specific operations.
type Client struct {
	rpc        RPCClient
	commitment rpc.CommitmentType
	logger     *slog.Logger
	metrics    *metrics.Metrics
	endpoint   string // RPC endpoint identifier for metrics (e.g., "mainnet", "helius")
}

// NewClient creates a new Solana client.
// The endpoint parameter is used for metrics labeling.
// If metrics is nil, no metrics will be recorded.
func NewClient(rpcClient RPCClient, commitment rpc.CommitmentType, endpoint string, m *metrics.Metrics, logger *slog.Logger) *Client {
	return &Client{
		rpc:        rpcClient,
		commitment: commitment,
		logger:     logger,
		metrics:    m,
		endpoint:   endpoint,
	}
}

// ScanPools fetches every account owned by program that matches PoolFilters.
// Pools are returned in the order the provider sent them.
func (c *Client) ScanPools(ctx context.Context, program solana.PublicKey) ([]*Pool, error) {
	opts := &rpc.GetProgramAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
		Filters:    PoolFilters(),
	}

	c.logger.DebugContext(ctx, "calling GetProgramAccounts",
		"program", program.String(),
		"data_size", PoolAccountSize,
		"memcmp_offset", MinLiquidityOffset,
		"min_liquidity", MinLiquidityLamports,
		"commitment", c.commitment,
	)

	start := time.Now()
	accounts, err := c.rpc.GetProgramAccountsWithOpts(ctx, program, opts)
	duration := time.Since(start).Seconds()

	status := "success"
	if err != nil {
		status = "error"
	}
	if c.metrics != nil {
		c.metrics.RecordRPCCall("GetProgramAccounts", status, c.endpoint, duration)
		if err != nil {
			c.metrics.RecordRPCError("GetProgramAccounts", ClassifyError(err))
		}
	}

	// The caller logs failures.
	if err != nil {
		return nil, fmt.Errorf("get program accounts for %s: %w", program, err)
	}

	pools := make([]*Pool, 0, len(accounts))
	for i, acc := range accounts {
		// A null entry carries no address, so it cannot be reported as a pool.
		if acc == nil {
			c.logger.DebugContext(ctx, "skipping null account in provider result",
				"program", program.String(),
				"index", i,
			)
			continue
		}
		pool := &Pool{Address: acc.Pubkey}
		if acc.Account != nil && acc.Account.Data != nil {
			pool.Data = acc.Account.Data.GetBinary()
		}
		pools = append(pools, pool)
	}

	c.logger.DebugContext(ctx, "fetched program accounts",
		"program", program.String(),
		"count", len(pools),
		"duration_seconds", duration,
	)

	return pools, nil
}

// ClassifyError sorts a scan failure into a coarse class for logs and metrics.
// The scanner treats every class the same way.
func ClassifyError(err error) string {
	var rpcErr *jsonrpc.RPCError
	switch {
	case errors.As(err, &rpcErr):
		return ErrorClassProvider
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrorClassTimeout
	default:
		return ErrorClassTransport
	}
}
