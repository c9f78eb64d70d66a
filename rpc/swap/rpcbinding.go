// Package swap contains RPC wrappers for Swap contract.
//
// *EventsFromApplicationLog functions select notifications by name only. Logs
// of transactions touching several contracts (swaps in particular) should be
// narrowed to the contract of interest with applog.Filter first.
package swap

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Result is a contract-specific swap.Result type used by its methods.
type Result struct {
	FromAccount util.Uint160
	FromAmount  *big.Int
	ToAccount   util.Uint160
	ToAmount    *big.Int
}

// SwapSuccessEvent represents "SwapSuccess" event emitted by the contract.
type SwapSuccessEvent struct {
	FromAccount util.Uint160
	FromAmount  *big.Int
	ToAccount   util.Uint160
	ToAmount    *big.Int
}

// OwnershipTransferredEvent represents "OwnershipTransferred" event emitted by the contract.
type OwnershipTransferredEvent struct {
	PreviousOwner util.Uint160
	NewOwner      util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// IsSwapAvailable invokes `isSwapAvailable` method of contract.
func (c *ContractReader) IsSwapAvailable(ledgerA util.Uint160, holderA util.Uint160, amountA *big.Int, ledgerB util.Uint160, holderB util.Uint160, amountB *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isSwapAvailable", ledgerA, holderA, amountA, ledgerB, holderB, amountB))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// SwapToken creates a transaction invoking `swapToken` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SwapToken(ledgerA util.Uint160, holderA util.Uint160, amountA *big.Int, ledgerB util.Uint160, holderB util.Uint160, amountB *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "swapToken", ledgerA, holderA, amountA, ledgerB, holderB, amountB)
}

// SwapTokenTransaction creates a transaction invoking `swapToken` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SwapTokenTransaction(ledgerA util.Uint160, holderA util.Uint160, amountA *big.Int, ledgerB util.Uint160, holderB util.Uint160, amountB *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "swapToken", ledgerA, holderA, amountA, ledgerB, holderB, amountB)
}

// SwapTokenUnsigned creates a transaction invoking `swapToken` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SwapTokenUnsigned(ledgerA util.Uint160, holderA util.Uint160, amountA *big.Int, ledgerB util.Uint160, holderB util.Uint160, amountB *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "swapToken", nil, ledgerA, holderA, amountA, ledgerB, holderB, amountB)
}

// TransferOwnership creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferOwnership(newOwner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transferOwnership", newOwner)
}

// TransferOwnershipTransaction creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferOwnershipTransaction(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transferOwnership", newOwner)
}

// TransferOwnershipUnsigned creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferOwnershipUnsigned(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transferOwnership", nil, newOwner)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// itemToResult converts stack item into *Result.
func itemToResult(item stackitem.Item, err error) (*Result, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Result)
	err = res.FromStackItem(item)
	return res, err
}

// ResultFromStack extracts swap result returned by `swapToken` method from
// the resulting stack of the given invocation, for example the one returned
// by actor.Wait.
func ResultFromStack(stack []stackitem.Item) (*Result, error) {
	if len(stack) != 1 {
		return nil, fmt.Errorf("result stack has %d items, expected 1", len(stack))
	}
	return itemToResult(stack[0], nil)
}

// FromStackItem retrieves fields of Result from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Result) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	res.FromAccount, err = uint160(arr[0])
	if err != nil {
		return fmt.Errorf("field FromAccount: %w", err)
	}

	res.FromAmount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field FromAmount: %w", err)
	}

	res.ToAccount, err = uint160(arr[2])
	if err != nil {
		return fmt.Errorf("field ToAccount: %w", err)
	}

	res.ToAmount, err = arr[3].TryInteger()
	if err != nil {
		return fmt.Errorf("field ToAmount: %w", err)
	}

	return nil
}

// SwapSuccessEventsFromApplicationLog retrieves a set of all emitted events
// with "SwapSuccess" name from the provided [result.ApplicationLog].
func SwapSuccessEventsFromApplicationLog(log *result.ApplicationLog) ([]*SwapSuccessEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SwapSuccessEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "SwapSuccess" {
				continue
			}
			event := new(SwapSuccessEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SwapSuccessEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SwapSuccessEvent or
// returns an error if it's not possible to do to so.
func (e *SwapSuccessEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	var res Result
	if err := res.FromStackItem(item); err != nil {
		return err
	}
	*e = SwapSuccessEvent(res)
	return nil
}

// OwnershipTransferredEventsFromApplicationLog retrieves a set of all emitted events
// with "OwnershipTransferred" name from the provided [result.ApplicationLog].
func OwnershipTransferredEventsFromApplicationLog(log *result.ApplicationLog) ([]*OwnershipTransferredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OwnershipTransferredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OwnershipTransferred" {
				continue
			}
			event := new(OwnershipTransferredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OwnershipTransferredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OwnershipTransferredEvent or
// returns an error if it's not possible to do to so.
func (e *OwnershipTransferredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.PreviousOwner, err = uint160(arr[0])
	if err != nil {
		return fmt.Errorf("field PreviousOwner: %w", err)
	}

	e.NewOwner, err = uint160(arr[1])
	if err != nil {
		return fmt.Errorf("field NewOwner: %w", err)
	}

	return nil
}

func uint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}
