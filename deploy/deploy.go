package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/tinychain/swap-contract/contracts"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the swap contracts deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// TokenContractPrm groups deployment parameters of the ledger contract.
type TokenContractPrm struct {
	Name     string
	Symbol   string
	Decimals int64

	// Address of the already deployed ledger. Zero if the ledger has not
	// been deployed yet.
	Address util.Uint160
}

// Prm groups all parameters of the deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy contracts to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	// Owner of deployed contracts. Local account is used if zero.
	Owner util.Uint160

	Contracts contracts.Set

	// Address of the already deployed swap contract. Zero if the contract has
	// not been deployed yet.
	SwapAddress util.Uint160

	// Ledgers to deploy, can be empty to deploy only the swap contract.
	Tokens []TokenContractPrm
}

// Result contains addresses of the deployed contracts.
type Result struct {
	Swap   util.Uint160
	Tokens []util.Uint160
}

// Deploy deploys the swap contract and all requested ledgers to the network
// represented by Prm.Blockchain. Contracts with known addresses must already
// be on the chain: they are skipped if their script is the same and updated
// otherwise. Contracts without an address are deployed unless the chain
// already has the same script deployed by the local account. Deploy can
// therefore be repeated safely as long as the addresses it returned are passed
// back.
//
// Deploy aborts by context or when the first error occurs.
func Deploy(ctx context.Context, prm Prm) (Result, error) {
	var res Result

	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	owner := prm.Owner
	if owner.Equals(util.Uint160{}) {
		owner = prm.LocalAccount.ScriptHash()
	}

	act, err := actor.NewTuned(prm.Blockchain, []actor.SignerAccount{{
		Signer: transaction.Signer{
			Account: prm.LocalAccount.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: prm.LocalAccount,
	}}, actor.Options{
		CheckerModifier: runtimeTransactionModifier(func() (uint32, error) {
			n, err := prm.Blockchain.GetBlockCount()
			if err != nil || n == 0 {
				return 0, err
			}
			return n - 1, nil
		}),
	})
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	d := deployer{
		logger:  prm.Logger,
		states:  prm.Blockchain,
		manager: actorManager{logger: prm.Logger, actor: act},
		sender:  prm.LocalAccount.ScriptHash(),
	}

	prm.Logger.Info("initializing swap contract on the chain...")

	res.Swap, err = d.sync(ctx, prm.Contracts.Swap, prm.SwapAddress, []any{owner})
	if err != nil {
		return res, fmt.Errorf("init swap contract: %w", err)
	}

	prm.Logger.Info("swap contract successfully initialized", zap.Stringer("address", res.Swap))

	for i := range prm.Tokens {
		tok := prm.Tokens[i]
		if tok.Symbol == "" {
			return res, fmt.Errorf("token #%d: empty symbol", i)
		}

		c := prm.Contracts.Token
		c.Manifest.Name = TokenContractName(c.Manifest.Name, tok.Symbol)

		prm.Logger.Info("initializing token contract on the chain...", zap.String("symbol", tok.Symbol))

		h, err := d.sync(ctx, c, tok.Address, []any{owner, tok.Name, tok.Symbol, tok.Decimals})
		if err != nil {
			return res, fmt.Errorf("init token contract %s: %w", tok.Symbol, err)
		}

		prm.Logger.Info("token contract successfully initialized",
			zap.String("symbol", tok.Symbol), zap.Stringer("address", h))

		res.Tokens = append(res.Tokens, h)
	}

	return res, nil
}

// TokenContractName returns manifest name of the ledger with the given symbol.
// Contract address depends on its name, so every ledger deployed by the same
// sender gets its own name.
func TokenContractName(base, symbol string) string {
	return base + " " + symbol
}

// contractStateReader reads contracts from the chain.
type contractStateReader interface {
	// GetContractStateByHash behaves like Blockchain.GetContractStateByHash.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// contractManager changes contracts on the chain. Both methods return after
// the transaction is successfully executed.
type contractManager interface {
	deploy(ctx context.Context, c contracts.Contract, deployArgs []any) error
	update(ctx context.Context, addr util.Uint160, c contracts.Contract) error
}

type deployer struct {
	logger  *zap.Logger
	states  contractStateReader
	manager contractManager
	sender  util.Uint160
}

// sync makes sure the contract is deployed and has the given script. The
// contract is looked up by its known address, if it is zero, the contract is
// expected at the address it would get being deployed by the sender. sync
// returns the contract address.
func (d deployer) sync(ctx context.Context, c contracts.Contract, known util.Uint160, deployArgs []any) (util.Uint160, error) {
	addr := known
	isKnown := !addr.Equals(util.Uint160{})
	if !isKnown {
		addr = state.CreateContractHash(d.sender, c.NEF.Checksum, c.Manifest.Name)
	}

	l := d.logger.With(zap.String("contract", c.Manifest.Name), zap.Stringer("address", addr))

	st, err := d.states.GetContractStateByHash(addr)
	if err != nil {
		if !isErrContractNotFound(err) {
			return addr, fmt.Errorf("get contract state: %w", err)
		}

		if isKnown {
			return addr, fmt.Errorf("contract %s is missing on the chain", addr.StringLE())
		}

		l.Info("contract is missing on the chain, deploying...")

		err = d.manager.deploy(ctx, c, deployArgs)
		if err != nil {
			return addr, fmt.Errorf("deploy contract: %w", err)
		}

		l.Info("contract deployed")

		return addr, nil
	}

	if st.NEF.Checksum == c.NEF.Checksum {
		l.Info("contract is already deployed")
		return addr, nil
	}

	l.Info("contract script differs, updating...")

	err = d.manager.update(ctx, addr, c)
	if err != nil {
		return addr, fmt.Errorf("update contract: %w", err)
	}

	l.Info("contract updated")

	return addr, nil
}

// actorManager is contractManager sending transactions through the actor.
type actorManager struct {
	logger *zap.Logger
	actor  *actor.Actor
}

func (m actorManager) deploy(ctx context.Context, c contracts.Contract, deployArgs []any) error {
	_, err := m.wait(ctx, func() (util.Uint256, uint32, error) {
		return management.New(m.actor).Deploy(&c.NEF, &c.Manifest, deployArgs)
	})
	return err
}

func (m actorManager) update(ctx context.Context, addr util.Uint160, c contracts.Contract) error {
	bNEF, err := c.NEF.Bytes()
	if err != nil {
		return fmt.Errorf("encode NEF: %w", err)
	}

	jManifest, err := json.Marshal(c.Manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	_, err = m.wait(ctx, func() (util.Uint256, uint32, error) {
		return m.actor.SendCall(addr, "update", bNEF, jManifest, nil)
	})
	return err
}

// wait sends transaction and waits until it is persisted. It returns an error
// if the transaction has not been executed successfully.
func (m actorManager) wait(ctx context.Context, send func() (util.Uint256, uint32, error)) (*state.AppExecResult, error) {
	type waitRes struct {
		aer *state.AppExecResult
		err error
	}

	h, vub, err := send()
	if err != nil {
		return nil, err
	}

	m.logger.Debug("transaction sent, waiting...",
		zap.Stringer("tx", h), zap.Uint32("valid until block", vub))

	ch := make(chan waitRes, 1)
	go func() {
		aer, err := m.actor.Wait(h, vub, nil)
		ch <- waitRes{aer, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		if r.aer.VMState != vmstate.Halt {
			return r.aer, fmt.Errorf("transaction %s failed: %s", h.StringLE(), r.aer.FaultException)
		}
		return r.aer, nil
	}
}

func isErrContractNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unknown contract")
}

var errNilInvocationResult = errors.New("nil invocation result")

// returns actor.TransactionCheckerModifier which checks that invocation
// finished with 'HALT' state and, if so, sets transaction's nonce and
// ValidUntilBlock to 100*N and 100*(N+1) correspondingly, where
// 100*N <= current height < 100*(N+1). Repeated deployments within the same
// span therefore produce the same transaction.
func runtimeTransactionModifier(getBlockchainHeight func() (uint32, error)) actor.TransactionCheckerModifier {
	return func(r *result.Invoke, tx *transaction.Transaction) error {
		if r == nil {
			return errNilInvocationResult
		}

		err := actor.DefaultCheckerModifier(r, tx)
		if err != nil {
			return err
		}

		curHeight, err := getBlockchainHeight()
		if err != nil {
			return fmt.Errorf("get blockchain height: %w", err)
		}

		const span = 100
		n := curHeight / span

		tx.Nonce = n * span

		if math.MaxUint32-span > tx.Nonce {
			tx.ValidUntilBlock = tx.Nonce + span
		} else {
			tx.ValidUntilBlock = math.MaxUint32
		}

		return nil
	}
}
