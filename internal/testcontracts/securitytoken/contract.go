// Package securitytoken is a restricted asset ledger used as a swap
// counterparty in tests. Holders may be locked by the issuer: transfers from
// locked holders are refused with false result instead of a failure. The
// issuer may also set a contract to be called on every transfer.
package securitytoken

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/tinychain/swap-contract/common"
)

const (
	supplyKey = 's'
	closedKey = 'c'
	hookKey   = 'h'

	balancePrefix   = 'b'
	allowancePrefix = 'a'
	lockPrefix      = 'l'

	// errInvalidReceiver mimics status code of the restricted token
	// standard for the invalid receiver.
	errInvalidReceiver = "56"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	args := data.([]any)
	common.SetOwner(storage.GetContext(), args[0].(interop.Hash160))
}

func TotalSupply() int {
	return common.GetInt(storage.GetReadOnlyContext(), supplyKey)
}

func BalanceOf(account interop.Hash160) int {
	return common.GetInt(storage.GetReadOnlyContext(), append([]byte{balancePrefix}, account...))
}

func Allowance(owner, spender interop.Hash160) int {
	return common.GetInt(storage.GetReadOnlyContext(), allowanceKey(owner, spender))
}

func Approve(owner, spender interop.Hash160, amount int) bool {
	if common.IsNullAccount(spender) {
		panic(errInvalidReceiver)
	}
	common.CheckUsableAddress(owner)

	common.PutInt(storage.GetContext(), allowanceKey(owner, spender), amount)
	runtime.Notify("Approval", owner, spender, amount)
	return true
}

// TransferFrom returns false if from is locked or can't cover the transfer.
func TransferFrom(spender, from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()

	common.CheckUsableAddress(spender)
	if common.IsNullAccount(to) {
		panic(errInvalidReceiver)
	}

	if storage.Get(ctx, append([]byte{lockPrefix}, from...)) != nil {
		runtime.Log("holder is locked")
		return false
	}

	if hook := storage.Get(ctx, hookKey); hook != nil {
		contract.Call(hook.(interop.Hash160), "version", contract.ReadOnly)
	}

	aKey := allowanceKey(from, spender)
	allowed := common.GetInt(ctx, aKey)
	fromKey := append([]byte{balancePrefix}, from...)
	balance := common.GetInt(ctx, fromKey)
	if amount < 0 || allowed < amount || balance < amount {
		return false
	}

	common.PutInt(ctx, aKey, allowed-amount)
	common.PutInt(ctx, fromKey, balance-amount)
	toKey := append([]byte{balancePrefix}, to...)
	common.PutInt(ctx, toKey, common.GetInt(ctx, toKey)+amount)

	runtime.Notify("Transfer", from, to, amount)
	return true
}

func IsIssuable() bool {
	return storage.Get(storage.GetReadOnlyContext(), closedKey) == nil
}

func Issue(to interop.Hash160, amount int, data any) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(ctx, common.ErrNotOwner)
	if storage.Get(ctx, closedKey) != nil {
		panic("issuance is closed")
	}
	if common.IsNullAccount(to) {
		panic(errInvalidReceiver)
	}

	key := append([]byte{balancePrefix}, to...)
	common.PutInt(ctx, key, common.GetInt(ctx, key)+amount)
	common.PutInt(ctx, supplyKey, common.GetInt(ctx, supplyKey)+amount)

	runtime.Notify("Issued", to, amount)
}

func CloseIssuance() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx, common.ErrNotOwner)
	storage.Put(ctx, closedKey, true)
}

func Lock(holder interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx, common.ErrNotOwner)
	storage.Put(ctx, append([]byte{lockPrefix}, holder...), true)
}

func Unlock(holder interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx, common.ErrNotOwner)
	storage.Delete(ctx, append([]byte{lockPrefix}, holder...))
}

func SetTransferHook(h interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx, common.ErrNotOwner)
	storage.Put(ctx, hookKey, h)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	key := append([]byte{allowancePrefix}, owner...)
	return append(key, spender...)
}
