package deploy

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
	"github.com/tinychain/swap-contract/contracts"
	"go.uber.org/zap/zaptest"
)

func TestRuntimeTransactionModifier(t *testing.T) {
	t.Run("invalid invocation result state", func(t *testing.T) {
		var res result.Invoke
		res.State = "FAULT" // any non-HALT

		err := runtimeTransactionModifier(func() (uint32, error) { return 0, nil })(&res, new(transaction.Transaction))
		require.Error(t, err)
	})

	t.Run("nil invocation result", func(t *testing.T) {
		err := runtimeTransactionModifier(func() (uint32, error) { return 0, nil })(nil, new(transaction.Transaction))
		require.ErrorIs(t, err, errNilInvocationResult)
	})

	var validRes result.Invoke
	validRes.State = "HALT"

	t.Run("height failure", func(t *testing.T) {
		err := runtimeTransactionModifier(func() (uint32, error) { return 0, errors.New("any") })(&validRes, new(transaction.Transaction))
		require.Error(t, err)
	})

	for _, tc := range []struct {
		curHeight     uint32
		expectedNonce uint32
		expectedVUB   uint32
	}{
		{curHeight: 0, expectedNonce: 0, expectedVUB: 100},
		{curHeight: 1, expectedNonce: 0, expectedVUB: 100},
		{curHeight: 99, expectedNonce: 0, expectedVUB: 100},
		{curHeight: 100, expectedNonce: 100, expectedVUB: 200},
		{curHeight: 199, expectedNonce: 100, expectedVUB: 200},
		{curHeight: 200, expectedNonce: 200, expectedVUB: 300},
		{curHeight: math.MaxUint32 - 50, expectedNonce: 100 * (math.MaxUint32 / 100), expectedVUB: math.MaxUint32},
	} {
		m := runtimeTransactionModifier(func() (uint32, error) { return tc.curHeight, nil })

		var tx transaction.Transaction

		err := m(&validRes, &tx)
		require.NoError(t, err, tc)
		require.EqualValues(t, tc.expectedNonce, tx.Nonce, tc)
		require.EqualValues(t, tc.expectedVUB, tx.ValidUntilBlock, tc)
	}
}

func TestTokenContractName(t *testing.T) {
	var (
		sender   = util.Uint160{1, 2, 3}
		checksum = uint32(42)
	)

	a := TokenContractName("Token", "AAA")
	b := TokenContractName("Token", "BBB")
	require.Equal(t, "Token AAA", a)
	require.NotEqual(t, state.CreateContractHash(sender, checksum, a), state.CreateContractHash(sender, checksum, b))
}

func TestIsErrContractNotFound(t *testing.T) {
	require.False(t, isErrContractNotFound(nil))
	require.False(t, isErrContractNotFound(errors.New("connection refused")))
	require.True(t, isErrContractNotFound(errors.New("Unknown contract: 0x0102")))
}

type testChain struct {
	contracts map[util.Uint160]*state.Contract
	err       error

	deployed []contracts.Contract
	updated  []util.Uint160
}

func (x *testChain) GetContractStateByHash(h util.Uint160) (*state.Contract, error) {
	if x.err != nil {
		return nil, x.err
	}
	st, ok := x.contracts[h]
	if !ok {
		return nil, errors.New("Unknown contract")
	}
	return st, nil
}

func (x *testChain) deploy(_ context.Context, c contracts.Contract, _ []any) error {
	x.deployed = append(x.deployed, c)
	return nil
}

func (x *testChain) update(_ context.Context, addr util.Uint160, c contracts.Contract) error {
	x.updated = append(x.updated, addr)
	x.contracts[addr].NEF.Checksum = c.NEF.Checksum
	return nil
}

func contractVersion(checksum uint32) contracts.Contract {
	var c contracts.Contract
	c.NEF = nef.File{Checksum: checksum}
	c.Manifest.Name = "Token AAA"
	return c
}

func TestDeployerSync(t *testing.T) {
	var (
		ctx    = context.Background()
		sender = util.Uint160{1, 2, 3}
		v1     = contractVersion(1)
		v2     = contractVersion(2)
		addrV1 = state.CreateContractHash(sender, v1.NEF.Checksum, v1.Manifest.Name)
	)

	newDeployer := func(c *testChain) deployer {
		return deployer{
			logger:  zaptest.NewLogger(t),
			states:  c,
			manager: c,
			sender:  sender,
		}
	}

	t.Run("deploy", func(t *testing.T) {
		c := &testChain{contracts: map[util.Uint160]*state.Contract{}}

		addr, err := newDeployer(c).sync(ctx, v1, util.Uint160{}, nil)
		require.NoError(t, err)
		require.Equal(t, addrV1, addr)
		require.Len(t, c.deployed, 1)
		require.Empty(t, c.updated)
	})

	t.Run("same script", func(t *testing.T) {
		c := &testChain{contracts: map[util.Uint160]*state.Contract{
			addrV1: {ContractBase: state.ContractBase{NEF: v1.NEF}},
		}}
		d := newDeployer(c)

		addr, err := d.sync(ctx, v1, util.Uint160{}, nil)
		require.NoError(t, err)
		require.Equal(t, addrV1, addr)

		addr, err = d.sync(ctx, v1, addrV1, nil)
		require.NoError(t, err)
		require.Equal(t, addrV1, addr)

		require.Empty(t, c.deployed)
		require.Empty(t, c.updated)
	})

	t.Run("changed script", func(t *testing.T) {
		c := &testChain{contracts: map[util.Uint160]*state.Contract{
			addrV1: {ContractBase: state.ContractBase{NEF: v1.NEF}},
		}}
		d := newDeployer(c)

		addr, err := d.sync(ctx, v2, addrV1, nil)
		require.NoError(t, err)
		require.Equal(t, addrV1, addr)
		require.Equal(t, []util.Uint160{addrV1}, c.updated)
		require.Empty(t, c.deployed)

		addr, err = d.sync(ctx, v2, addrV1, nil)
		require.NoError(t, err)
		require.Equal(t, addrV1, addr)
		require.Len(t, c.updated, 1)
	})

	t.Run("known address is missing", func(t *testing.T) {
		c := &testChain{contracts: map[util.Uint160]*state.Contract{}}

		_, err := newDeployer(c).sync(ctx, v1, util.Uint160{9}, nil)
		require.Error(t, err)
		require.Empty(t, c.deployed)
	})

	t.Run("state failure", func(t *testing.T) {
		c := &testChain{err: errors.New("connection refused")}

		_, err := newDeployer(c).sync(ctx, v1, util.Uint160{}, nil)
		require.Error(t, err)
		require.Empty(t, c.deployed)
	})
}
