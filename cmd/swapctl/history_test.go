package main

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/block"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
)

type testBlocks struct {
	blocks []*block.Block
	logs   map[util.Uint256]*result.ApplicationLog
}

func (x *testBlocks) GetBlockCount() (uint32, error) {
	return uint32(len(x.blocks)), nil
}

func (x *testBlocks) GetBlockByIndex(i uint32) (*block.Block, error) {
	if int(i) >= len(x.blocks) {
		return nil, errors.New("unknown block")
	}
	return x.blocks[i], nil
}

func (x *testBlocks) GetApplicationLog(h util.Uint256, trig *trigger.Type) (*result.ApplicationLog, error) {
	if trig == nil || *trig != trigger.Application {
		return nil, errors.New("unexpected trigger")
	}
	log, ok := x.logs[h]
	if !ok {
		return nil, errors.New("unknown transaction")
	}
	return log, nil
}

// addBlock appends block with a transaction per execution.
func (x *testBlocks) addBlock(exs ...state.Execution) []util.Uint256 {
	b := &block.Block{Header: block.Header{Index: uint32(len(x.blocks))}}

	var hs []util.Uint256
	for _, ex := range exs {
		tx := transaction.New([]byte{byte(len(x.logs))}, 0)
		tx.Nonce = uint32(len(x.logs))
		b.Transactions = append(b.Transactions, tx)

		h := tx.Hash()
		x.logs[h] = &result.ApplicationLog{
			Container:     h,
			IsTransaction: true,
			Executions:    []state.Execution{ex},
		}
		hs = append(hs, h)
	}

	x.blocks = append(x.blocks, b)
	return hs
}

func swapSuccess(contract, from util.Uint160, fromAmount int64, to util.Uint160, toAmount int64) state.NotificationEvent {
	return state.NotificationEvent{
		ScriptHash: contract,
		Name:       swapSuccessEvent,
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.Make(from.BytesBE()),
			stackitem.Make(fromAmount),
			stackitem.Make(to.BytesBE()),
			stackitem.Make(toAmount),
		}),
	}
}

func TestFindSwaps(t *testing.T) {
	var (
		ctx      = context.Background()
		swapHash = util.Uint160{0xff}
		other    = util.Uint160{0xee}
		h1, h2   = util.Uint160{1}, util.Uint160{2}
		c        = &testBlocks{logs: make(map[util.Uint256]*result.ApplicationLog)}
	)

	c.addBlock()
	first := c.addBlock(state.Execution{
		Trigger: trigger.Application,
		VMState: vmstate.Halt,
		Events: []state.NotificationEvent{
			{ScriptHash: util.Uint160{1}, Name: "Transfer", Item: stackitem.NewArray(nil)},
			swapSuccess(swapHash, h1, 20, h2, 10),
		},
	}, state.Execution{
		Trigger: trigger.Application,
		VMState: vmstate.Halt,
		Events:  []state.NotificationEvent{swapSuccess(other, h1, 1, h2, 1)},
	})
	c.addBlock(state.Execution{
		Trigger: trigger.Application,
		VMState: vmstate.Fault,
		Events:  []state.NotificationEvent{swapSuccess(swapHash, h1, 5, h2, 5)},
	})
	last := c.addBlock(state.Execution{
		Trigger: trigger.Application,
		VMState: vmstate.Halt,
		Events:  []state.NotificationEvent{swapSuccess(swapHash, h2, 3, h1, 4)},
	})

	var res []swapRecord
	collect := func(r swapRecord) { res = append(res, r) }

	require.NoError(t, findSwaps(ctx, c, swapHash, 0, 3, collect))
	require.Len(t, res, 2)

	require.EqualValues(t, 1, res[0].block)
	require.Equal(t, first[0], res[0].tx)
	require.Equal(t, h1, res[0].event.FromAccount)
	require.Equal(t, big.NewInt(20), res[0].event.FromAmount)
	require.Equal(t, h2, res[0].event.ToAccount)
	require.Equal(t, big.NewInt(10), res[0].event.ToAmount)

	require.EqualValues(t, 3, res[1].block)
	require.Equal(t, last[0], res[1].tx)
	require.Equal(t, h2, res[1].event.FromAccount)

	t.Run("range", func(t *testing.T) {
		res = nil
		require.NoError(t, findSwaps(ctx, c, swapHash, 2, 3, collect))
		require.Len(t, res, 1)

		res = nil
		require.NoError(t, findSwaps(ctx, c, swapHash, 1, 1, collect))
		require.Len(t, res, 1)

		require.Error(t, findSwaps(ctx, c, swapHash, 3, 2, collect))
		require.Error(t, findSwaps(ctx, c, swapHash, 0, 10, collect))
	})

	t.Run("canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.ErrorIs(t, findSwaps(cctx, c, swapHash, 0, 3, collect), context.Canceled)
	})

	t.Run("last block", func(t *testing.T) {
		n, err := lastBlock(c, -1)
		require.NoError(t, err)
		require.EqualValues(t, 3, n)

		n, err = lastBlock(c, 2)
		require.NoError(t, err)
		require.EqualValues(t, 2, n)

		_, err = lastBlock(&testBlocks{}, -1)
		require.Error(t, err)
	})
}
