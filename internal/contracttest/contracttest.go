// Package contracttest deploys repository contracts into an in-memory test
// chain.
package contracttest

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// Decimals of the tokens deployed by DeployToken.
const Decimals = 8

// Paths to contract sources relative to the repository root.
const (
	TokenPath         = "contracts/token"
	SwapPath          = "contracts/swap"
	SecurityTokenPath = "internal/testcontracts/securitytoken"
)

// RootDir returns absolute path to the repository root.
func RootDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// NewExecutor creates single-node test chain and returns executor signing
// transactions by its committee.
func NewExecutor(t testing.TB) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// Compile compiles contract located at path relative to the repository root.
// Non-empty suffix is appended to the manifest name, so the same source can
// be deployed more than once.
func Compile(t testing.TB, e *neotest.Executor, path string, suffix string) *neotest.Contract {
	dir := filepath.Join(RootDir(), path)
	c := neotest.CompileFile(t, e.CommitteeHash, dir, filepath.Join(dir, "config.yml"))
	if suffix == "" {
		return c
	}

	m := *c.Manifest
	m.Name += " " + suffix

	return &neotest.Contract{
		Hash:     state.CreateContractHash(e.CommitteeHash, c.NEF.Checksum, m.Name),
		NEF:      c.NEF,
		Manifest: &m,
	}
}

// DeployToken deploys token contract owned by the committee and returns its
// invoker signed by the committee.
func DeployToken(t testing.TB, e *neotest.Executor, name, symbol string) *neotest.ContractInvoker {
	c := Compile(t, e, TokenPath, symbol)
	e.DeployContract(t, c, []any{e.CommitteeHash, name, symbol, Decimals})
	return e.CommitteeInvoker(c.Hash)
}

// DeploySwap deploys swap contract owned by the committee.
func DeploySwap(t testing.TB, e *neotest.Executor) *neotest.ContractInvoker {
	c := Compile(t, e, SwapPath, "")
	e.DeployContract(t, c, []any{e.CommitteeHash})
	return e.CommitteeInvoker(c.Hash)
}

// DeploySecurityToken deploys restricted token used as a swap counterparty.
func DeploySecurityToken(t testing.TB, e *neotest.Executor) *neotest.ContractInvoker {
	c := Compile(t, e, SecurityTokenPath, "")
	e.DeployContract(t, c, []any{e.CommitteeHash})
	return e.CommitteeInvoker(c.Hash)
}

// Balance returns token balance of the account.
func Balance(t testing.TB, c *neotest.ContractInvoker, acc util.Uint160) int64 {
	return invokeInt(t, c, "balanceOf", acc)
}

// Allowance returns amount spender may transfer from owner.
func Allowance(t testing.TB, c *neotest.ContractInvoker, owner, spender util.Uint160) int64 {
	return invokeInt(t, c, "allowance", owner, spender)
}

// CheckSupply checks that token total supply equals to the sum of all
// balances returned by its holders iterator.
func CheckSupply(t testing.TB, c *neotest.ContractInvoker) {
	s, err := c.TestInvoke(t, "holders")
	require.NoError(t, err)

	iter := s.Pop().Value().(*storage.Iterator)

	var sum int64
	for _, kv := range IteratorToArray(iter) {
		fields := kv.Value().([]stackitem.Item)
		require.Len(t, fields, 2)

		key, err := fields[0].TryBytes()
		require.NoError(t, err)

		v, err := fields[1].TryInteger()
		require.NoError(t, err)
		require.Positive(t, v.Sign(), "zero balance of '%s' holder should be deleted", base58.Encode(key))
		sum += v.Int64()
	}

	require.Equal(t, invokeInt(t, c, "totalSupply"), sum)
}

// IteratorToArray drains the iterator.
func IteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func invokeInt(t testing.TB, c *neotest.ContractInvoker, method string, args ...any) int64 {
	s, err := c.TestInvoke(t, method, args...)
	require.NoError(t, err)

	v, err := s.Pop().Item().TryInteger()
	require.NoError(t, err)
	return v.Int64()
}
