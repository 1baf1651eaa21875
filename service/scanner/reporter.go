package scanner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brojonat/poolwatch/service/solana"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// ConsoleReporter writes human-readable scan results, one line per fact.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter returns a reporter writing to out, or stdout if out is nil.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleReporter{out: out}
}

func (r *ConsoleReporter) Banner() {
	fmt.Fprintln(r.out, "Listening for new liquidity pools...")
}

func (r *ConsoleReporter) Found(pools []*solana.Pool) {
	fmt.Fprintf(r.out, "Found %d new liquidity pools!\n", len(pools))
	for _, p := range pools {
		fmt.Fprintf(r.out, "Pool Address: %s\n", p.Address)
	}
}

func (r *ConsoleReporter) Error(err error) {
	fmt.Fprintf(r.out, "Error fetching LP accounts: %s\n", errorLine(err))
}

// errorLine renders err on a single line. JSON-RPC error objects print as
// their code and message; solana-go's own Error() dumps the whole struct.
func errorLine(err error) string {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return fmt.Sprintf("rpc error %d: %s", rpcErr.Code, strings.Join(strings.Fields(rpcErr.Message), " "))
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}
