package token_test

import (
	"encoding/json"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/tinychain/swap-contract/common"
	"github.com/tinychain/swap-contract/internal/contracttest"
)

func newTokenInvoker(t *testing.T) *neotest.ContractInvoker {
	e := contracttest.NewExecutor(t)
	return contracttest.DeployToken(t, e, "Asset A", "AAA")
}

func TestMetadata(t *testing.T) {
	c := newTokenInvoker(t)

	c.Invoke(t, "Asset A", "name")
	c.Invoke(t, "AAA", "symbol")
	c.Invoke(t, contracttest.Decimals, "decimals")
	c.Invoke(t, 0, "totalSupply")
	c.Invoke(t, c.CommitteeHash, "owner")
	c.Invoke(t, false, "paused")
	c.Invoke(t, common.Version, "version")
}

func TestMint(t *testing.T) {
	c := newTokenInvoker(t)

	acc := c.NewAccount(t)
	h := acc.ScriptHash()

	c.WithSigners(acc).InvokeFail(t, common.ErrNotOwner, "mint", h, 100)
	c.InvokeFail(t, common.ErrMintToNull, "mint", util.Uint160{}, 100)
	c.InvokeFail(t, common.ErrMintToNull, "mint", []byte{1, 2, 3}, 100)
	c.InvokeFail(t, common.ErrMintZero, "mint", h, 0)
	c.InvokeFail(t, common.ErrNegativeAmount, "mint", h, -1)

	tx := c.Invoke(t, stackitem.Null{}, "mint", h, 10000)
	aer := c.CheckHalt(t, tx)
	require.Len(t, aer.Events, 2)
	contracttest.CheckEvent(t, aer.Events[0], "Transfer", nil, h, 10000)
	contracttest.CheckEvent(t, aer.Events[1], "Mint", c.CommitteeHash, h, 10000)

	c.Invoke(t, stackitem.Null{}, "mint", h, 5)

	c.Invoke(t, 10005, "balanceOf", h)
	c.Invoke(t, 10005, "totalSupply")
	contracttest.CheckSupply(t, c)
}

func TestTransfer(t *testing.T) {
	c := newTokenInvoker(t)

	acc1, acc2 := c.NewAccount(t), c.NewAccount(t)
	h1, h2 := acc1.ScriptHash(), acc2.ScriptHash()
	c1 := c.WithSigners(acc1)

	c.Invoke(t, stackitem.Null{}, "mint", h1, 10000)

	tx := c1.Invoke(t, true, "transfer", h1, h2, 3000, nil)
	aer := c1.CheckHalt(t, tx)
	require.Len(t, aer.Events, 1)
	contracttest.CheckEvent(t, aer.Events[0], "Transfer", h1, h2, 3000)

	require.EqualValues(t, 7000, contracttest.Balance(t, c, h1))
	require.EqualValues(t, 3000, contracttest.Balance(t, c, h2))
	contracttest.CheckSupply(t, c)

	t.Run("invalid", func(t *testing.T) {
		c1.InvokeFail(t, common.ErrTransferFrom, "transfer", util.Uint160{}, h2, 1, nil)
		c1.InvokeFail(t, common.ErrTransferTo, "transfer", h1, util.Uint160{}, 1, nil)
		c1.InvokeFail(t, common.ErrTransferZero, "transfer", h1, h2, 0, nil)
		c1.InvokeFail(t, common.ErrNegativeAmount, "transfer", h1, h2, -1, nil)
		c1.InvokeFail(t, common.ErrBalance, "transfer", h1, h2, 7001, nil)
		c.InvokeFail(t, common.ErrWitnessFailed, "transfer", h1, h2, 1, nil)

		require.EqualValues(t, 7000, contracttest.Balance(t, c, h1))
		require.EqualValues(t, 3000, contracttest.Balance(t, c, h2))
		contracttest.CheckSupply(t, c)
	})

	t.Run("whole balance", func(t *testing.T) {
		c.WithSigners(acc2).Invoke(t, true, "transfer", h2, h1, 3000, nil)

		require.EqualValues(t, 10000, contracttest.Balance(t, c, h1))
		require.EqualValues(t, 0, contracttest.Balance(t, c, h2))
		contracttest.CheckSupply(t, c)
	})

	t.Run("to self", func(t *testing.T) {
		c1.Invoke(t, true, "transfer", h1, h1, 10000, nil)
		require.EqualValues(t, 10000, contracttest.Balance(t, c, h1))
	})
}

func TestApprove(t *testing.T) {
	c := newTokenInvoker(t)

	acc1, acc2 := c.NewAccount(t), c.NewAccount(t)
	h1, h2 := acc1.ScriptHash(), acc2.ScriptHash()
	c1 := c.WithSigners(acc1)

	c1.InvokeFail(t, common.ErrApproveFrom, "approve", util.Uint160{}, h2, 10)
	c1.InvokeFail(t, common.ErrApproveTo, "approve", h1, util.Uint160{}, 10)
	c1.InvokeFail(t, common.ErrApproveSelf, "approve", h1, h1, 10)
	c1.InvokeFail(t, common.ErrApproveZero, "approve", h1, h2, 0)
	c1.InvokeFail(t, common.ErrNegativeAmount, "approve", h1, h2, -1)
	c.InvokeFail(t, common.ErrWitnessFailed, "approve", h1, h2, 10)

	tx := c1.Invoke(t, true, "approve", h1, h2, 100)
	aer := c1.CheckHalt(t, tx)
	require.Len(t, aer.Events, 1)
	contracttest.CheckEvent(t, aer.Events[0], "Approval", h1, h2, 100)

	// Allowance is replaced, not accumulated.
	c1.Invoke(t, true, "approve", h1, h2, 40)
	c.Invoke(t, 40, "allowance", h1, h2)
	c.Invoke(t, 0, "allowance", h2, h1)

	c1.Invoke(t, true, "approve", h1, h2, 500)
	c.Invoke(t, 500, "allowance", h1, h2)
}

func TestTransferFrom(t *testing.T) {
	c := newTokenInvoker(t)

	acc1, acc2, acc3 := c.NewAccount(t), c.NewAccount(t), c.NewAccount(t)
	h1, h2, h3 := acc1.ScriptHash(), acc2.ScriptHash(), acc3.ScriptHash()
	c1, c2 := c.WithSigners(acc1), c.WithSigners(acc2)

	c.Invoke(t, stackitem.Null{}, "mint", h2, 3000)
	c2.Invoke(t, true, "approve", h2, h1, 1000)

	c1.InvokeFail(t, common.ErrAllowance, "transferFrom", h1, h2, h3, 1001, nil)
	c.WithSigners(acc3).InvokeFail(t, common.ErrWitnessFailed, "transferFrom", h1, h2, h3, 1000, nil)
	c1.InvokeFail(t, common.ErrSpenderNull, "transferFrom", util.Uint160{}, h2, h3, 1, nil)
	c1.InvokeFail(t, common.ErrTransferTo, "transferFrom", h1, h2, util.Uint160{}, 1, nil)
	c1.InvokeFail(t, common.ErrTransferFrom, "transferFrom", h1, util.Uint160{}, h3, 1, nil)
	c1.InvokeFail(t, common.ErrTransferZero, "transferFrom", h1, h2, h3, 0, nil)
	c1.InvokeFail(t, common.ErrNegativeAmount, "transferFrom", h1, h2, h3, -1, nil)

	tx := c1.Invoke(t, true, "transferFrom", h1, h2, h3, 1000, nil)
	aer := c1.CheckHalt(t, tx)
	require.Len(t, aer.Events, 2)
	contracttest.CheckEvent(t, aer.Events[0], "Transfer", h2, h3, 1000)
	contracttest.CheckEvent(t, aer.Events[1], "Approval", h2, h1, 0)

	require.EqualValues(t, 2000, contracttest.Balance(t, c, h2))
	require.EqualValues(t, 1000, contracttest.Balance(t, c, h3))
	require.EqualValues(t, 0, contracttest.Allowance(t, c, h2, h1))
	contracttest.CheckSupply(t, c)

	c1.InvokeFail(t, common.ErrAllowance, "transferFrom", h1, h2, h3, 1, nil)

	t.Run("allowance exceeds balance", func(t *testing.T) {
		c2.Invoke(t, true, "approve", h2, h1, 5000)
		c1.InvokeFail(t, common.ErrBalance, "transferFrom", h1, h2, h3, 2001, nil)

		require.EqualValues(t, 5000, contracttest.Allowance(t, c, h2, h1))
		require.EqualValues(t, 2000, contracttest.Balance(t, c, h2))

		c1.Invoke(t, true, "transferFrom", h1, h2, h3, 2000, nil)
		require.EqualValues(t, 3000, contracttest.Allowance(t, c, h2, h1))
		require.EqualValues(t, 0, contracttest.Balance(t, c, h2))
		require.EqualValues(t, 3000, contracttest.Balance(t, c, h3))
	})
}

func TestBurn(t *testing.T) {
	c := newTokenInvoker(t)
	owner := c.CommitteeHash

	c.InvokeFail(t, common.ErrBurnZero, "burn", 0)
	c.InvokeFail(t, common.ErrBurnBalance, "burn", 1)

	c.Invoke(t, stackitem.Null{}, "mint", owner, 500)

	acc := c.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "mint", acc.ScriptHash(), 500)
	c.WithSigners(acc).InvokeFail(t, common.ErrNotOwner, "burn", 100)

	tx := c.Invoke(t, stackitem.Null{}, "burn", 200)
	aer := c.CheckHalt(t, tx)
	require.Len(t, aer.Events, 2)
	contracttest.CheckEvent(t, aer.Events[0], "Transfer", owner, nil, 200)
	contracttest.CheckEvent(t, aer.Events[1], "Burn", owner, 200)

	require.EqualValues(t, 300, contracttest.Balance(t, c, owner))
	require.EqualValues(t, 500, contracttest.Balance(t, c, acc.ScriptHash()))
	c.Invoke(t, 800, "totalSupply")
	contracttest.CheckSupply(t, c)

	c.InvokeFail(t, common.ErrBurnBalance, "burn", 301)
	c.Invoke(t, stackitem.Null{}, "burn", 300)
	c.Invoke(t, 500, "totalSupply")
	contracttest.CheckSupply(t, c)
}

func TestPause(t *testing.T) {
	c := newTokenInvoker(t)

	acc1, acc2 := c.NewAccount(t), c.NewAccount(t)
	h1, h2 := acc1.ScriptHash(), acc2.ScriptHash()
	c1, c2 := c.WithSigners(acc1), c.WithSigners(acc2)

	c.Invoke(t, stackitem.Null{}, "mint", h1, 1000)
	c1.Invoke(t, true, "approve", h1, h2, 100)

	c1.InvokeFail(t, common.ErrNotOwner, "pause")

	tx := c.Invoke(t, stackitem.Null{}, "pause")
	aer := c.CheckHalt(t, tx)
	require.Len(t, aer.Events, 1)
	contracttest.CheckEvent(t, aer.Events[0], "Paused", c.CommitteeHash)
	c.Invoke(t, true, "paused")

	tx = c.Invoke(t, stackitem.Null{}, "pause")
	require.Empty(t, c.CheckHalt(t, tx).Events)
	c.Invoke(t, true, "paused")

	c1.InvokeFail(t, common.ErrPaused, "transfer", h1, h2, 1, nil)
	c1.InvokeFail(t, common.ErrPaused, "transfer", util.Uint160{}, h2, 0, nil)
	c2.InvokeFail(t, common.ErrPaused, "transferFrom", h2, h1, h2, 1, nil)

	// Only transfers are suspended.
	c1.Invoke(t, true, "approve", h1, h2, 200)
	c.Invoke(t, stackitem.Null{}, "mint", h1, 1)

	c2.InvokeFail(t, common.ErrNotOwner, "unpause")

	tx = c.Invoke(t, stackitem.Null{}, "unpause")
	aer = c.CheckHalt(t, tx)
	require.Len(t, aer.Events, 1)
	contracttest.CheckEvent(t, aer.Events[0], "Unpaused", c.CommitteeHash)
	c.Invoke(t, false, "paused")

	tx = c.Invoke(t, stackitem.Null{}, "unpause")
	require.Empty(t, c.CheckHalt(t, tx).Events)

	c1.Invoke(t, true, "transfer", h1, h2, 1, nil)
	c2.Invoke(t, true, "transferFrom", h2, h1, h2, 200, nil)

	require.EqualValues(t, 800, contracttest.Balance(t, c, h1))
	require.EqualValues(t, 201, contracttest.Balance(t, c, h2))
	contracttest.CheckSupply(t, c)
}

func TestTransferOwnership(t *testing.T) {
	c := newTokenInvoker(t)

	newOwner := c.NewAccount(t)
	h := newOwner.ScriptHash()
	cNew := c.WithSigners(newOwner)

	cNew.InvokeFail(t, common.ErrNotOwner, "transferOwnership", h)
	c.InvokeFail(t, common.ErrNewOwnerNull, "transferOwnership", util.Uint160{})
	c.Invoke(t, c.CommitteeHash, "owner")

	tx := c.Invoke(t, stackitem.Null{}, "transferOwnership", h)
	aer := c.CheckHalt(t, tx)
	require.Len(t, aer.Events, 1)
	contracttest.CheckEvent(t, aer.Events[0], "OwnershipTransferred", c.CommitteeHash, h)
	c.Invoke(t, h, "owner")

	c.InvokeFail(t, common.ErrNotOwner, "mint", h, 1)
	c.InvokeFail(t, common.ErrNotOwner, "pause")
	c.InvokeFail(t, common.ErrNotOwner, "transferOwnership", c.CommitteeHash)

	cNew.Invoke(t, stackitem.Null{}, "mint", h, 1)
	cNew.Invoke(t, stackitem.Null{}, "pause")
	cNew.Invoke(t, stackitem.Null{}, "burn", 1)
	c.Invoke(t, 0, "totalSupply")
}

func TestUpdate(t *testing.T) {
	c := newTokenInvoker(t)

	ctr := contracttest.Compile(t, c.Executor, contracttest.TokenPath, "AAA")
	require.Equal(t, c.Hash, ctr.Hash)

	rawNEF, err := ctr.NEF.Bytes()
	require.NoError(t, err)
	rawManifest, err := json.Marshal(ctr.Manifest)
	require.NoError(t, err)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrUpdateAccess, "update", rawNEF, rawManifest, nil)
	c.InvokeFail(t, common.ErrAlreadyUpdated, "update", rawNEF, rawManifest, nil)
}
