package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/block"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/tinychain/swap-contract/rpc/applog"
	"github.com/tinychain/swap-contract/rpc/swap"
	"go.uber.org/zap"
)

// blockReader provides blocks and execution results of their transactions.
type blockReader interface {
	GetBlockCount() (uint32, error)
	GetBlockByIndex(uint32) (*block.Block, error)
	GetApplicationLog(util.Uint256, *trigger.Type) (*result.ApplicationLog, error)
}

// swapRecord is a swap found in the chain history.
type swapRecord struct {
	block uint32
	tx    util.Uint256
	event *swap.SwapSuccessEvent
}

func runHistory(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	from := fs.Uint("from", 0, "First block to look at")
	to := fs.Int64("to", -1, "Last block to look at (current height if negative)")
	if err := fs.Parse(args); err != nil {
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

	last, err := lastBlock(b.rpc, *to)
	if err != nil {
		return err
	}

	n := 0
	err = findSwaps(ctx, b.rpc, swapHash, uint32(*from), last, func(r swapRecord) {
		n++
		logSwap(e.log, r.tx, r.event, zap.Uint32("block", r.block))
	})
	if err != nil {
		return err
	}

	e.log.Info("history scanned",
		zap.Uint("from", *from), zap.Uint32("to", last), zap.Int("swaps", n))
	return nil
}

// lastBlock returns the given block index or the current chain height if the
// index is negative.
func lastBlock(c blockReader, to int64) (uint32, error) {
	if to >= 0 {
		return uint32(to), nil
	}

	n, err := c.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	if n == 0 {
		return 0, errors.New("empty chain")
	}
	return n - 1, nil
}

// findSwaps passes all SwapSuccess notifications of the given contract emitted
// in blocks from the given range (both ends included) to f in chain order.
func findSwaps(ctx context.Context, c blockReader, contract util.Uint160, from, to uint32, f func(swapRecord)) error {
	if from > to {
		return fmt.Errorf("invalid block range [%d, %d]", from, to)
	}

	trig := trigger.Application

	for i := from; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		b, err := c.GetBlockByIndex(i)
		if err != nil {
			return fmt.Errorf("get block #%d: %w", i, err)
		}

		for _, tx := range b.Transactions {
			h := tx.Hash()

			log, err := c.GetApplicationLog(h, &trig)
			if err != nil {
				return fmt.Errorf("get application log of transaction %s: %w", h.StringLE(), err)
			}

			log = applog.Filter(log, contract)
			for j := range log.Executions {
				if log.Executions[j].VMState != vmstate.Halt {
					log.Executions[j].Events = nil
				}
			}

			evs, err := swap.SwapSuccessEventsFromApplicationLog(log)
			if err != nil {
				return fmt.Errorf("transaction %s: %w", h.StringLE(), err)
			}

			for _, ev := range evs {
				f(swapRecord{block: i, tx: h, event: ev})
			}
		}

		if i == to {
			return nil
		}
	}
}
