package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const raydiumLP = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"

func TestLoad_ValidConfig(t *testing.T) {
	os.Setenv("RPC_URL", "https://api.mainnet-beta.solana.com")
	os.Setenv("RAYDIUM_LP_PROGRAM", raydiumLP)
	defer cleanupEnv()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.RPCURL)
	assert.Equal(t, raydiumLP, cfg.ProgramID.String())
	assert.Equal(t, rpc.CommitmentConfirmed, cfg.Commitment) // Default
	assert.Equal(t, "info", cfg.LogLevel)                    // Default
	assert.Equal(t, "", cfg.MetricsAddr)                     // Disabled by default
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("RPC_URL", "https://api.devnet.solana.com")
	os.Setenv("RAYDIUM_LP_PROGRAM", raydiumLP)
	os.Setenv("COMMITMENT", "finalized")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("METRICS_ADDR", ":9091")
	defer cleanupEnv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, rpc.CommitmentFinalized, cfg.Commitment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9091", cfg.MetricsAddr)
}

func TestLoad_MissingRPCURL(t *testing.T) {
	os.Setenv("RAYDIUM_LP_PROGRAM", raydiumLP)
	defer cleanupEnv()

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "RPC_URL is required")

	var missing *MissingEnvError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "RPC_URL", missing.Key)
}

func TestLoad_MissingProgram(t *testing.T) {
	os.Setenv("RPC_URL", "https://api.mainnet-beta.solana.com")
	defer cleanupEnv()

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "RAYDIUM_LP_PROGRAM is required")
}

func TestFromEnv_ReportsAllMissing(t *testing.T) {
	cfg, err := FromEnv(func(string) string { return "" })
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "RPC_URL is required")
	assert.Contains(t, err.Error(), "RAYDIUM_LP_PROGRAM is required")
}

func TestFromEnv_InvalidProgramID(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "too short", value: "675kPX9MHTjS2zt1qfr1NYHu"},
		{name: "too long", value: raydiumLP + "675kPX9M"},
		{name: "invalid base58 character", value: "0OIl" + raydiumLP[4:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{
				"RPC_URL":            "https://api.mainnet-beta.solana.com",
				"RAYDIUM_LP_PROGRAM": tt.value,
			}
			cfg, err := FromEnv(func(k string) string { return env[k] })
			require.Error(t, err)
			assert.Nil(t, cfg)

			var invalid *InvalidProgramIDError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.value, invalid.Value)
		})
	}
}

func TestFromEnv_InvalidCommitment(t *testing.T) {
	env := map[string]string{
		"RPC_URL":            "https://api.mainnet-beta.solana.com",
		"RAYDIUM_LP_PROGRAM": raydiumLP,
		"COMMITMENT":         "eventually",
	}
	_, err := FromEnv(func(k string) string { return env[k] })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid commitment")
}

func TestValidate(t *testing.T) {
	pk, err := ParseProgramID(raydiumLP)
	require.NoError(t, err)

	valid := Config{
		RPCURL:       "https://api.mainnet-beta.solana.com",
		ProgramID:    pk,
		Commitment:   rpc.CommitmentConfirmed,
		PollInterval: DefaultPollInterval,
	}
	assert.NoError(t, valid.Validate())

	missingProgram := valid
	missingProgram.ProgramID = [32]byte{}
	assert.ErrorContains(t, missingProgram.Validate(), "ProgramID is required")

	fastPoll := valid
	fastPoll.PollInterval = 100 * time.Millisecond
	assert.ErrorContains(t, fastPoll.Validate(), "PollInterval must be at least 1 second")
}

func TestLoadDotEnv(t *testing.T) {
	defer cleanupEnv()

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RPC_URL=http://localhost:8899\nRAYDIUM_LP_PROGRAM="+raydiumLP+"\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8899", cfg.RPCURL)

	// A missing file is not an error.
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func cleanupEnv() {
	os.Unsetenv("RPC_URL")
	os.Unsetenv("RAYDIUM_LP_PROGRAM")
	os.Unsetenv("COMMITMENT")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("METRICS_ADDR")
}
