package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/brojonat/poolwatch/service/config"
	"github.com/brojonat/poolwatch/service/solana"
	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// dialFunc builds the RPC client for a validated endpoint URL.
type dialFunc func(rpcURL string) solana.RPCClient

func main() {
	// Variables already in the environment take precedence over .env
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}

	app := newApp(os.Stdout, os.Stderr, solana.NewRPCClient)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout, stderr io.Writer, dial dialFunc) *cli.App {
	return &cli.App{
		Name:  "poolwatch",
		Usage: "Watch a Solana program for new liquidity pool accounts",
		Description: `Polls getProgramAccounts every 5 seconds for accounts owned by the
configured program that are 165 bytes long and hold 5 SOL (little-endian u64)
at byte offset 96, and prints each matching address.

Example:
  RPC_URL=https://api.mainnet-beta.solana.com \
  RAYDIUM_LP_PROGRAM=675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8 \
  poolwatch`,
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rpc-url",
				Usage:   "Solana JSON-RPC endpoint URL",
				EnvVars: []string{"RPC_URL"},
			},
			&cli.StringFlag{
				Name:    "program",
				Usage:   "Base58 address of the program owning the pool accounts",
				EnvVars: []string{"RAYDIUM_LP_PROGRAM"},
			},
			&cli.StringFlag{
				Name:    "commitment",
				Usage:   "Commitment level: processed, confirmed or finalized",
				EnvVars: []string{"COMMITMENT"},
				Value:   "confirmed",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "Address for the Prometheus metrics server (empty to disable)",
				EnvVars: []string{"METRICS_ADDR"},
			},
		},
		Action: func(c *cli.Context) error {
			return runScanner(c, stdout, stderr, dial)
		},
		Commands: []*cli.Command{
			healthCommand(),
			versionCommand(),
		},
	}
}
