package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
)

// wrapper over Neo RPC client providing services needed for swapctl commands.
type remoteBlockchain struct {
	rpc *rpcclient.Client
}

// newRemoteBlockchain dials Neo RPC server from the configuration. Connection
// and all requests are done within configured timeouts.
func newRemoteBlockchain(ctx context.Context, cfg config) (*remoteBlockchain, error) {
	c, err := rpcclient.New(ctx, cfg.RPC.Endpoint, rpcclient.Options{
		DialTimeout:    cfg.RPC.DialTimeout,
		RequestTimeout: cfg.RPC.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return &remoteBlockchain{rpc: c}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// invoker returns read-only invoker without signers.
func (x *remoteBlockchain) invoker() *invoker.Invoker {
	return invoker.New(x.rpc, nil)
}

// actor returns transaction sender signing with the given account.
func (x *remoteBlockchain) actor(acc *wallet.Account) (*actor.Actor, error) {
	act, err := actor.NewSimple(x.rpc, acc)
	if err != nil {
		return nil, fmt.Errorf("init actor: %w", err)
	}
	return act, nil
}

// wait waits for the transaction sent by act to be persisted and checks that
// it has been executed successfully.
func wait(ctx context.Context, act *actor.Actor, h util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
	if err != nil {
		return nil, err
	}

	type waitRes struct {
		aer *state.AppExecResult
		err error
	}

	ch := make(chan waitRes, 1)
	go func() {
		aer, err := act.Wait(h, vub, nil)
		ch <- waitRes{aer, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("wait for transaction %s: %w", h.StringLE(), r.err)
		}
		if r.aer.VMState != vmstate.Halt {
			return r.aer, fmt.Errorf("transaction %s failed: %s", h.StringLE(), r.aer.FaultException)
		}
		return r.aer, nil
	}
}

// openAccount opens wallet from the configuration and decrypts account
// selected by the configured address (or the default one).
func openAccount(cfg config) (*wallet.Account, error) {
	if cfg.Wallet.Path == "" {
		return nil, errors.New("missing wallet path")
	}

	w, err := wallet.NewWalletFromFile(cfg.Wallet.Path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	var h util.Uint160
	if cfg.Wallet.Address != "" {
		h, err = address.StringToUint160(cfg.Wallet.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid wallet address: %w", err)
		}
	} else {
		h = w.GetChangeAddress()
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s is missing in the wallet", address.Uint160ToString(h))
	}

	err = acc.Decrypt(cfg.Wallet.Password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account: %w", err)
	}

	return acc, nil
}

// wsEndpoint returns WebSocket endpoint of the configured RPC server.
func wsEndpoint(endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "ws://"), strings.HasPrefix(endpoint, "wss://"):
		return endpoint
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = "wss://" + strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = "ws://" + strings.TrimPrefix(endpoint, "http://")
	}
	return strings.TrimSuffix(endpoint, "/") + "/ws"
}
