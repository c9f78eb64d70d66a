package token

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// DefaultHoldersBatch is the number of holders fetched per iterator traversal
// call by ListHolders.
const DefaultHoldersBatch = 100

// HolderBalance is a single element of the holders iterator.
type HolderBalance struct {
	Account util.Uint160
	Amount  *big.Int
}

// ListHolders returns all accounts with non-zero balance. It traverses the
// session iterator returned by `holders` method in batches of the given size
// (DefaultHoldersBatch if not positive) and terminates the session afterwards.
func (c *ContractReader) ListHolders(batch int) ([]HolderBalance, error) {
	if batch <= 0 {
		batch = DefaultHoldersBatch
	}

	sess, iter, err := c.Holders()
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.invoker.TerminateSession(sess) }()

	var res []HolderBalance
	for {
		items, err := c.invoker.TraverseIterator(sess, &iter, batch)
		if err != nil {
			return nil, fmt.Errorf("traverse holders: %w", err)
		}

		hs, err := ParseHolders(items)
		if err != nil {
			return nil, err
		}
		res = append(res, hs...)

		if len(items) < batch {
			return res, nil
		}
	}
}

// ParseHolders converts key-value items of the holders iterator.
func ParseHolders(items []stackitem.Item) ([]HolderBalance, error) {
	res := make([]HolderBalance, 0, len(items))
	for i := range items {
		h, err := parseHolder(items[i])
		if err != nil {
			return nil, fmt.Errorf("holder #%d: %w", i, err)
		}
		res = append(res, h)
	}
	return res, nil
}

func parseHolder(item stackitem.Item) (HolderBalance, error) {
	kv, ok := item.Value().([]stackitem.Item)
	if !ok || len(kv) != 2 {
		return HolderBalance{}, errors.New("not a key-value pair")
	}

	acc, err := uint160(kv[0])
	if err != nil {
		return HolderBalance{}, fmt.Errorf("account: %w", err)
	}

	amount, err := kv[1].TryInteger()
	if err != nil {
		return HolderBalance{}, fmt.Errorf("amount: %w", err)
	}

	return HolderBalance{Account: acc, Amount: amount}, nil
}
