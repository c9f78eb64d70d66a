package swap

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/tinychain/swap-contract/common"
)

// Result describes settled swap: FromAccount gave FromAmount of the first
// asset to ToAccount and received ToAmount of the second one.
type Result struct {
	FromAccount interop.Hash160
	FromAmount  int
	ToAccount   interop.Hash160
	ToAmount    int
}

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]any)

	if isUpdate {
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	if len(args) < 1 {
		panic("invalid deploy arguments")
	}

	common.SetOwner(ctx, args[0].(interop.Hash160))

	runtime.Log("swap contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	common.UpdateContract(nefFile, manifest, data)
	runtime.Log("swap contract updated")
}

// IsSwapAvailable checks that both holders have approved this contract to
// spend the requested amounts and own enough assets. It returns true or
// fails with the reason naming the side lacking assets.
func IsSwapAvailable(ledgerA, holderA interop.Hash160, amountA int,
	ledgerB, holderB interop.Hash160, amountB int) bool {
	checkSwap(ledgerA, holderA, amountA, ledgerB, holderB, amountB)
	return true
}

// SwapToken exchanges amountA of ledgerA asset owned by holderA for amountB of
// ledgerB asset owned by holderB. Both transfers are made on behalf of this
// contract, so both holders must approve it as a spender first. It can be
// invoked only by the contract owner.
//
// Either both transfers are made or the transaction fails as a whole.
//
// It produces SwapSuccess notification.
func SwapToken(ledgerA, holderA interop.Hash160, amountA int,
	ledgerB, holderB interop.Hash160, amountB int) Result {
	common.CheckOwnerWitness(storage.GetReadOnlyContext(), common.ErrSwapNotOwner)

	checkSwap(ledgerA, holderA, amountA, ledgerB, holderB, amountB)

	self := runtime.GetExecutingScriptHash()

	ok := contract.Call(ledgerA, "transferFrom", contract.States|contract.AllowNotify, self, holderA, holderB, amountA, nil).(bool)
	if !ok {
		panic(common.ErrLegAFailed)
	}

	ok = contract.Call(ledgerB, "transferFrom", contract.States|contract.AllowNotify, self, holderB, holderA, amountB, nil).(bool)
	if !ok {
		panic(common.ErrLegBFailed)
	}

	runtime.Notify("SwapSuccess", holderA, amountA, holderB, amountB)

	return Result{
		FromAccount: holderA,
		FromAmount:  amountA,
		ToAccount:   holderB,
		ToAmount:    amountB,
	}
}

// Owner returns the account allowed to request swaps.
func Owner() interop.Hash160 {
	return common.Owner(storage.GetReadOnlyContext())
}

// TransferOwnership sets new contract owner. It can be invoked only by the
// current owner.
//
// It produces OwnershipTransferred notification.
func TransferOwnership(newOwner interop.Hash160) {
	common.TransferOwnership(storage.GetContext(), newOwner)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkSwap(ledgerA, holderA interop.Hash160, amountA int,
	ledgerB, holderB interop.Hash160, amountB int) {
	checkRequest(ledgerA, holderA, amountA)
	checkRequest(ledgerB, holderB, amountB)

	if !hasAsset(ledgerA, holderA, amountA) {
		panic(common.ErrNotEnoughA)
	}
	if !hasAsset(ledgerB, holderB, amountB) {
		panic(common.ErrNotEnoughB)
	}
}

func checkRequest(ledger, holder interop.Hash160, amount int) {
	if len(ledger) != interop.Hash160Len {
		panic(common.ErrInvalidLedger)
	}
	common.CheckAccount(holder, common.ErrSwapHolderNull)
	common.CheckAmount(amount, common.ErrSwapZero)
}

// hasAsset returns true if holder owns at least amount of ledger asset and
// has allowed this contract to spend it.
func hasAsset(ledger, holder interop.Hash160, amount int) bool {
	self := runtime.GetExecutingScriptHash()

	allowed := contract.Call(ledger, "allowance", contract.ReadOnly, holder, self).(int)
	if allowed < amount {
		return false
	}

	balance := contract.Call(ledger, "balanceOf", contract.ReadOnly, holder).(int)
	return balance >= amount
}
