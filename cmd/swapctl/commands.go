package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/tinychain/swap-contract/contracts"
	"github.com/tinychain/swap-contract/deploy"
	"github.com/tinychain/swap-contract/rpc/swap"
	"github.com/tinychain/swap-contract/rpc/token"
	"go.uber.org/zap"
)

func runBuild(_ context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	root := fs.String("root", ".", "Repository root with contract sources")
	out := fs.String("out", "build", "Output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := contracts.CompileAll(*root)
	if err != nil {
		return err
	}

	err = contracts.WriteDir(*out, s)
	if err != nil {
		return err
	}

	e.log.Info("contracts compiled", zap.String("dir", *out))
	return nil
}

func runDeploy(ctx context.Context, e env, args []string) error {
	var tokens tokenList

	fs := flag.NewFlagSet("deploy", flag.ContinueOnError)
	buildDir := fs.String("contracts", "", "Build directory with compiled contracts (compile from -root if empty)")
	root := fs.String("root", ".", "Repository root with contract sources")
	owner := fs.String("owner", "", "Owner of deployed contracts (wallet account if empty)")
	fs.Var(&tokens, "token", "Ledger to deploy in NAME:SYMBOL:DECIMALS form, can be repeated")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		s   contracts.Set
		err error
	)
	if *buildDir != "" {
		s, err = contracts.ReadDir(*buildDir)
	} else {
		s, err = contracts.CompileAll(*root)
	}
	if err != nil {
		return err
	}

	var ownerAcc util.Uint160
	if *owner != "" {
		ownerAcc, err = parseAccount(*owner)
		if err != nil {
			return fmt.Errorf("owner: %w", err)
		}
	}

	swapAddr, err := e.cfg.deployedContracts(tokens)
	if err != nil {
		return err
	}

	acc, err := openAccount(e.cfg)
	if err != nil {
		return err
	}

	b, err := newRemoteBlockchain(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer b.close()

	res, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:       e.log,
		Blockchain:   b.rpc,
		LocalAccount: acc,
		Owner:        ownerAcc,
		Contracts:    s,
		SwapAddress:  swapAddr,
		Tokens:       tokens,
	})
	if err != nil {
		return err
	}

	fmt.Printf("swap: %s\n", res.Swap.StringLE())
	for i := range res.Tokens {
		fmt.Printf("%s: %s\n", tokens[i].Symbol, res.Tokens[i].StringLE())
	}
	return nil
}

func runBalance(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ContinueOnError)
	tok := fs.String("token", "", "Ledger symbol from config or its address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("exactly one account is expected")
	}

	tokenHash, err := parseAccount(e.cfg.token(*tok))
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}

	acc, err := parseAccount(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("account: %w", err)
	}

	b, err := newRemoteBlockchain(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer b.close()

	r := token.NewReader(b.invoker(), tokenHash)

	dec, err := r.Decimals()
	if err != nil {
		return fmt.Errorf("get decimals: %w", err)
	}

	sym, err := r.Symbol()
	if err != nil {
		return fmt.Errorf("get symbol: %w", err)
	}

	balance, err := r.BalanceOf(acc)
	if err != nil {
		return fmt.Errorf("get balance: %w", err)
	}

	fmt.Printf("%s %s\n", fixedn.ToString(balance, dec), sym)
	return nil
}

func runHolders(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("holders", flag.ContinueOnError)
	tok := fs.String("token", "", "Ledger symbol from config or its address")
	batch := fs.Int("batch", token.DefaultHoldersBatch, "Number of holders requested at once")
	expand := fs.Int("expand", 0, "Expand iterator in the VM up to the given number of items (for servers without sessions)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tokenHash, err := parseAccount(e.cfg.token(*tok))
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}

	b, err := newRemoteBlockchain(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer b.close()

	r := token.NewReader(b.invoker(), tokenHash)

	var hs []token.HolderBalance
	if *expand > 0 {
		items, err := r.HoldersExpanded(*expand)
		if err != nil {
			return fmt.Errorf("get holders: %w", err)
		}
		hs, err = token.ParseHolders(items)
		if err != nil {
			return err
		}
	} else {
		hs, err = r.ListHolders(*batch)
		if err != nil {
			return fmt.Errorf("get holders: %w", err)
		}
	}

	for _, h := range hs {
		fmt.Printf("%s\t%s\n", address.Uint160ToString(h.Account), h.Amount)
	}
	return nil
}

func runApprove(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("approve", flag.ContinueOnError)
	tok := fs.String("token", "", "Ledger symbol from config or its address")
	spender := fs.String("spender", "", "Spender address (configured swap contract if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("exactly one amount is expected")
	}

	tokenHash, err := parseAccount(e.cfg.token(*tok))
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}

	if *spender == "" {
		*spender = e.cfg.Contracts.Swap
	}
	spenderHash, err := parseAccount(*spender)
	if err != nil {
		return fmt.Errorf("spender: %w", err)
	}

	amount, err := parseAmount(fs.Arg(0))
	if err != nil {
		return err
	}

	acc, err := openAccount(e.cfg)
	if err != nil {
		return err
	}

	b, err := newRemoteBlockchain(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer b.close()

	act, err := b.actor(acc)
	if err != nil {
		return err
	}

	h, vub, err := token.New(act, tokenHash).Approve(acc.ScriptHash(), spenderHash, amount)
	_, err = wait(ctx, act, h, vub, err)
	if err != nil {
		return fmt.Errorf("approve: %w", err)
	}

	e.log.Info("allowance set",
		zap.Stringer("token", tokenHash),
		zap.String("owner", acc.Address),
		zap.Stringer("spender", spenderHash),
		zap.Stringer("amount", amount))
	return nil
}

// swapRequest is a set of swapToken arguments.
type swapRequest struct {
	ledgerA, holderA util.Uint160
	amountA          *big.Int
	ledgerB, holderB util.Uint160
	amountB          *big.Int
}

func parseSwapRequest(name string, cfg config, args []string) (swapRequest, error) {
	var req swapRequest

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	tokA := fs.String("token-a", "", "First ledger symbol from config or its address")
	holderA := fs.String("holder-a", "", "Holder of the first asset")
	amountA := fs.String("amount-a", "", "Amount of the first asset")
	tokB := fs.String("token-b", "", "Second ledger symbol from config or its address")
	holderB := fs.String("holder-b", "", "Holder of the second asset")
	amountB := fs.String("amount-b", "", "Amount of the second asset")
	if err := fs.Parse(args); err != nil {
		return req, err
	}

	var err error
	for _, f := range []struct {
		name string
		in   string
		out  *util.Uint160
	}{
		{"token-a", cfg.token(*tokA), &req.ledgerA},
		{"holder-a", *holderA, &req.holderA},
		{"token-b", cfg.token(*tokB), &req.ledgerB},
		{"holder-b", *holderB, &req.holderB},
	} {
		*f.out, err = parseAccount(f.in)
		if err != nil {
			return req, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	req.amountA, err = parseAmount(*amountA)
	if err != nil {
		return req, fmt.Errorf("amount-a: %w", err)
	}

	req.amountB, err = parseAmount(*amountB)
	if err != nil {
		return req, fmt.Errorf("amount-b: %w", err)
	}

	return req, nil
}

func swapContract(cfg config) (util.Uint160, error) {
	if cfg.Contracts.Swap == "" {
		return util.Uint160{}, errors.New("swap contract address is not configured")
	}
	h, err := parseAccount(cfg.Contracts.Swap)
	if err != nil {
		return h, fmt.Errorf("swap contract: %w", err)
	}
	return h, nil
}

func runAvailable(ctx context.Context, e env, args []string) error {
	req, err := parseSwapRequest("available", e.cfg, args)
	if err != nil {
		return err
	}

	swapHash, err := swapContract(e.cfg)
	if err != nil {
		return err
	}

	b, err := newRemoteBlockchain(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer b.close()

	ok, err := swap.NewReader(b.invoker(), swapHash).IsSwapAvailable(
		req.ledgerA, req.holderA, req.amountA, req.ledgerB, req.holderB, req.amountB)
	if err != nil {
		fmt.Printf("unavailable: %v\n", err)
		return nil
	}

	fmt.Println("available:", ok)
	return nil
}

func runSwap(ctx context.Context, e env, args []string) error {
	req, err := parseSwapRequest("swap", e.cfg, args)
	if err != nil {
		return err
	}

	swapHash, err := swapContract(e.cfg)
	if err != nil {
		return err
	}

	acc, err := openAccount(e.cfg)
	if err != nil {
		return err
	}

	b, err := newRemoteBlockchain(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer b.close()

	act, err := b.actor(acc)
	if err != nil {
		return err
	}

	h, vub, err := swap.New(act, swapHash).SwapToken(
		req.ledgerA, req.holderA, req.amountA, req.ledgerB, req.holderB, req.amountB)
	aer, err := wait(ctx, act, h, vub, err)
	if err != nil {
		return fmt.Errorf("swap: %w", err)
	}

	res, err := swap.ResultFromStack(aer.Stack)
	if err != nil {
		return fmt.Errorf("decode swap result: %w", err)
	}

	e.log.Info("swap completed",
		zap.Stringer("tx", h),
		zap.String("from", address.Uint160ToString(res.FromAccount)),
		zap.Stringer("from amount", res.FromAmount),
		zap.String("to", address.Uint160ToString(res.ToAccount)),
		zap.Stringer("to amount", res.ToAmount))
	return nil
}
