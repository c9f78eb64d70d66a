package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
	"github.com/tinychain/swap-contract/deploy"
)

func TestLoadConfig(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		c, err := loadConfig("")
		require.NoError(t, err)
		require.Equal(t, "http://localhost:30333", c.RPC.Endpoint)
		require.Equal(t, 15*time.Second, c.RPC.DialTimeout)
		require.Equal(t, "info", c.Logger.Level)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
rpc:
  endpoint: http://10.0.0.1:30333
  request_timeout: 1m
wallet:
  path: /etc/swapctl/wallet.json
  password: one
contracts:
  swap: 0x0102030405060708090a0b0c0d0e0f1011121314
  tokens:
    AAA: NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP
logger:
  level: debug
`), 0o600))

		t.Setenv(passwordEnv, "two")

		c, err := loadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "http://10.0.0.1:30333", c.RPC.Endpoint)
		require.Equal(t, 15*time.Second, c.RPC.DialTimeout)
		require.Equal(t, time.Minute, c.RPC.RequestTimeout)
		require.Equal(t, "/etc/swapctl/wallet.json", c.Wallet.Path)
		require.Equal(t, "two", c.Wallet.Password)
		require.Equal(t, "debug", c.Logger.Level)

		require.Equal(t, "NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP", c.token("AAA"))
		require.Equal(t, "BBB", c.token("BBB"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("rpc:\n  dial_timeout: -1s\n"), 0o600))

		_, err := loadConfig(path)
		require.Error(t, err)

		require.NoError(t, os.WriteFile(path, []byte("rpc: [\n"), 0o600))
		_, err = loadConfig(path)
		require.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug")
	require.NoError(t, err)

	_, err = newLogger("loud")
	require.Error(t, err)
}

func TestDeployedContracts(t *testing.T) {
	var (
		swapAddr = util.Uint160{1, 2, 3}
		aaa      = util.Uint160{4, 5, 6}
	)

	c := defaultConfig()
	c.Contracts.Tokens = map[string]string{
		"AAA": address.Uint160ToString(aaa),
	}

	tokens := []deploy.TokenContractPrm{{Symbol: "AAA"}, {Symbol: "BBB"}}

	res, err := c.deployedContracts(tokens)
	require.NoError(t, err)
	require.Equal(t, util.Uint160{}, res)
	require.Equal(t, aaa, tokens[0].Address)
	require.Equal(t, util.Uint160{}, tokens[1].Address)

	c.Contracts.Swap = "0x" + swapAddr.StringLE()
	res, err = c.deployedContracts(tokens)
	require.NoError(t, err)
	require.Equal(t, swapAddr, res)

	c.Contracts.Tokens["BBB"] = "not an address"
	_, err = c.deployedContracts(tokens)
	require.Error(t, err)
}
