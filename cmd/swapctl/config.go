package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/tinychain/swap-contract/deploy"
	"gopkg.in/yaml.v3"
)

// passwordEnv overrides wallet password from the configuration file.
const passwordEnv = "SWAPCTL_WALLET_PASSWORD"

type config struct {
	RPC struct {
		Endpoint       string        `yaml:"endpoint"`
		DialTimeout    time.Duration `yaml:"dial_timeout"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
	} `yaml:"rpc"`

	Wallet struct {
		Path     string `yaml:"path"`
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
	} `yaml:"wallet"`

	Contracts struct {
		Swap string `yaml:"swap"`
		// Ledger addresses by their symbols.
		Tokens map[string]string `yaml:"tokens"`
	} `yaml:"contracts"`

	Logger struct {
		Level string `yaml:"level"`
	} `yaml:"logger"`
}

func defaultConfig() config {
	var c config
	c.RPC.Endpoint = "http://localhost:30333"
	c.RPC.DialTimeout = 15 * time.Second
	c.RPC.RequestTimeout = 15 * time.Second
	c.Logger.Level = "info"
	return c
}

// loadConfig reads configuration from the YAML file at the given path. Empty
// path means default configuration.
func loadConfig(path string) (config, error) {
	c := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config file: %w", err)
		}

		err = yaml.Unmarshal(data, &c)
		if err != nil {
			return c, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if pass, ok := os.LookupEnv(passwordEnv); ok {
		c.Wallet.Password = pass
	}

	return c, c.validate()
}

func (c config) validate() error {
	switch {
	case c.RPC.Endpoint == "":
		return errors.New("missing Neo RPC endpoint")
	case c.RPC.DialTimeout <= 0:
		return errors.New("non-positive RPC dial timeout")
	case c.RPC.RequestTimeout <= 0:
		return errors.New("non-positive RPC request timeout")
	}
	return nil
}

// token resolves ledger address by its symbol from the configuration. The
// argument is returned as is if it's not a known symbol.
func (c config) token(s string) string {
	if addr, ok := c.Contracts.Tokens[s]; ok {
		return addr
	}
	return s
}

// deployedContracts sets addresses of the configured ledgers for the given
// tokens and returns the configured swap contract address. Zero address is
// used for contracts missing in the configuration.
func (c config) deployedContracts(tokens []deploy.TokenContractPrm) (util.Uint160, error) {
	for i := range tokens {
		addr, ok := c.Contracts.Tokens[tokens[i].Symbol]
		if !ok {
			continue
		}

		h, err := parseAccount(addr)
		if err != nil {
			return util.Uint160{}, fmt.Errorf("token %s: %w", tokens[i].Symbol, err)
		}
		tokens[i].Address = h
	}

	if c.Contracts.Swap == "" {
		return util.Uint160{}, nil
	}
	return swapContract(c)
}
