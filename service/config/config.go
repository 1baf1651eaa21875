package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
)

// DefaultPollInterval is the fixed wait between pool scans.
const DefaultPollInterval = 5 * time.Second

// Config holds all application configuration loaded from environment variables.
// It is built once at startup and never mutated afterwards.
type Config struct {
	// Solana configuration
	RPCURL     string
	ProgramID  solana.PublicKey
	Commitment rpc.CommitmentType

	// Polling configuration
	PollInterval time.Duration

	// Observability configuration
	LogLevel    string
	MetricsAddr string // empty disables the metrics server
}

// MissingEnvError reports a required environment variable that is unset or empty.
type MissingEnvError struct {
	Key string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("%s is required", e.Key)
}

// InvalidProgramIDError reports a program address that is not a valid
// base58-encoded 32 byte public key.
type InvalidProgramIDError struct {
	Value string
	Err   error
}

func (e *InvalidProgramIDError) Error() string {
	return fmt.Sprintf("invalid program id %q: %v", e.Value, e.Err)
}

func (e *InvalidProgramIDError) Unwrap() error {
	return e.Err
}

// LoadDotEnv loads variables from the given files (default ".env") into the
// process environment. Variables that are already set win, and missing files
// are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables and validates all required fields.
// Every problem found is reported in the returned error; individual failures can be
// inspected with errors.As against *MissingEnvError and *InvalidProgramIDError.
func Load() (*Config, error) {
	return FromEnv(os.Getenv)
}

// FromEnv is Load with an explicit lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		PollInterval: DefaultPollInterval,
	}
	var errs []error

	cfg.RPCURL = getenv("RPC_URL")
	if cfg.RPCURL == "" {
		errs = append(errs, &MissingEnvError{Key: "RPC_URL"})
	}

	program := getenv("RAYDIUM_LP_PROGRAM")
	if program == "" {
		errs = append(errs, &MissingEnvError{Key: "RAYDIUM_LP_PROGRAM"})
	} else {
		pk, err := ParseProgramID(program)
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.ProgramID = pk
		}
	}

	commitment, err := parseCommitment(orDefault(getenv("COMMITMENT"), string(rpc.CommitmentConfirmed)))
	if err != nil {
		errs = append(errs, err)
	} else {
		cfg.Commitment = commitment
	}

	cfg.LogLevel = orDefault(getenv("LOG_LEVEL"), "info")
	cfg.MetricsAddr = getenv("METRICS_ADDR")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
// This is useful for testing configuration without loading from env.
func (c *Config) Validate() error {
	var errs []error

	if c.RPCURL == "" {
		errs = append(errs, fmt.Errorf("RPCURL is required"))
	}

	if c.ProgramID.IsZero() {
		errs = append(errs, fmt.Errorf("ProgramID is required"))
	}

	if _, err := parseCommitment(string(c.Commitment)); err != nil {
		errs = append(errs, err)
	}

	if c.PollInterval < time.Second {
		errs = append(errs, fmt.Errorf("PollInterval must be at least 1 second"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

// ParseProgramID decodes a base58 program address, returning *InvalidProgramIDError
// on bad characters or a decoded length other than 32 bytes.
func ParseProgramID(s string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, &InvalidProgramIDError{Value: s, Err: err}
	}
	return pk, nil
}

func parseCommitment(s string) (rpc.CommitmentType, error) {
	switch c := rpc.CommitmentType(s); c {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
		return c, nil
	default:
		return "", fmt.Errorf("COMMITMENT: invalid commitment %q (want processed, confirmed or finalized)", s)
	}
}

// orDefault returns value, or def if value is empty.
func orDefault(value, def string) string {
	if value != "" {
		return value
	}
	return def
}
