package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/tinychain/swap-contract/common"
)

// Metadata holds descriptive token info set once at deployment.
type Metadata struct {
	// Human-readable name
	Name string
	// Ticker symbol
	Symbol string
	// Amount of decimals
	Decimals int
}

const (
	metadataKey = 'm'
	supplyKey   = 's'
	pausedKey   = 'x'

	balancePrefix   = 'b'
	allowancePrefix = 'a'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]any)

	if isUpdate {
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	if len(args) < 4 {
		panic("invalid deploy arguments")
	}

	common.SetOwner(ctx, args[0].(interop.Hash160))
	common.SetSerialized(ctx, metadataKey, Metadata{
		Name:     args[1].(string),
		Symbol:   args[2].(string),
		Decimals: args[3].(int),
	})

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	common.UpdateContract(nefFile, manifest, data)
	runtime.Log("token contract updated")
}

// Name returns human-readable name of the token.
func Name() string {
	return getMetadata(storage.GetReadOnlyContext()).Name
}

// Symbol returns ticker symbol of the token.
func Symbol() string {
	return getMetadata(storage.GetReadOnlyContext()).Symbol
}

// Decimals returns precision of the token balances.
func Decimals() int {
	return getMetadata(storage.GetReadOnlyContext()).Decimals
}

// TotalSupply returns amount of tokens in circulation. It always equals to
// the sum of all balances.
func TotalSupply() int {
	return common.GetInt(storage.GetReadOnlyContext(), supplyKey)
}

// BalanceOf returns token balance of the specified account.
func BalanceOf(account interop.Hash160) int {
	if len(account) != interop.Hash160Len {
		panic("invalid account")
	}
	return common.GetInt(storage.GetReadOnlyContext(), balanceKey(account))
}

// Allowance returns amount spender is allowed to transfer from the owner
// account.
func Allowance(owner, spender interop.Hash160) int {
	if len(owner) != interop.Hash160Len || len(spender) != interop.Hash160Len {
		panic("invalid account")
	}
	return common.GetInt(storage.GetReadOnlyContext(), allowanceKey(owner, spender))
}

// Holders returns iterator over all non-zero balances. Iterator values are
// key-value pairs where key is the holder account and value is its balance.
func Holders() iterator.Iterator {
	return storage.Find(storage.GetReadOnlyContext(), []byte{balancePrefix}, storage.RemovePrefix)
}

// Owner returns the account allowed to call privileged methods.
func Owner() interop.Hash160 {
	return common.Owner(storage.GetReadOnlyContext())
}

// Paused returns true if transfers are suspended.
func Paused() bool {
	return isPaused(storage.GetReadOnlyContext())
}

// Mint issues new tokens to the specified account. It can be invoked only by
// the contract owner.
//
// It produces Transfer and Mint notifications.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()

	owner := common.CheckOwnerWitness(ctx, common.ErrNotOwner)
	common.CheckAccount(to, common.ErrMintToNull)
	common.CheckAmount(amount, common.ErrMintZero)

	key := balanceKey(to)
	common.PutInt(ctx, key, common.GetInt(ctx, key)+amount)
	common.PutInt(ctx, supplyKey, common.GetInt(ctx, supplyKey)+amount)

	notifyTransfer(nil, to, amount)
	runtime.Notify("Mint", owner, to, amount)
}

// Transfer moves tokens from one account to another. It can be invoked only by
// the sender (or the contract the sender is).
//
// It produces Transfer notification.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()

	checkNotPaused(ctx)
	checkTransferArgs(from, to, amount)
	common.CheckUsableAddress(from)

	transfer(ctx, from, to, amount)

	return true
}

// Approve sets amount spender is allowed to transfer from the owner account.
// Previous allowance is replaced, not increased. It can be invoked only by the
// owner of the account.
//
// It produces Approval notification.
func Approve(owner, spender interop.Hash160, amount int) bool {
	ctx := storage.GetContext()

	common.CheckAccount(owner, common.ErrApproveFrom)
	common.CheckAccount(spender, common.ErrApproveTo)
	if owner.Equals(spender) {
		panic(common.ErrApproveSelf)
	}
	common.CheckAmount(amount, common.ErrApproveZero)
	common.CheckUsableAddress(owner)

	common.PutInt(ctx, allowanceKey(owner, spender), amount)
	runtime.Notify("Approval", owner, spender, amount)

	return true
}

// TransferFrom moves tokens on behalf of the holder. The spender must be
// approved for at least the amount and must either sign the transaction or
// be the calling contract. Allowance is decreased by the amount.
//
// It produces Transfer and Approval notifications, the latter carries the
// remaining allowance.
func TransferFrom(spender, from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()

	checkNotPaused(ctx)
	common.CheckAccount(spender, common.ErrSpenderNull)
	checkTransferArgs(from, to, amount)
	common.CheckUsableAddress(spender)

	key := allowanceKey(from, spender)
	allowed := common.GetInt(ctx, key)
	if allowed < amount {
		panic(common.ErrAllowance)
	}

	transfer(ctx, from, to, amount)

	common.PutInt(ctx, key, allowed-amount)
	runtime.Notify("Approval", from, spender, allowed-amount)

	return true
}

// Burn destroys tokens of the contract owner. It can be invoked only by the
// contract owner.
//
// It produces Transfer and Burn notifications.
func Burn(amount int) {
	ctx := storage.GetContext()

	owner := common.CheckOwnerWitness(ctx, common.ErrNotOwner)
	common.CheckAmount(amount, common.ErrBurnZero)

	key := balanceKey(owner)
	balance := common.GetInt(ctx, key)
	if balance < amount {
		panic(common.ErrBurnBalance)
	}

	common.PutInt(ctx, key, balance-amount)
	common.PutInt(ctx, supplyKey, common.GetInt(ctx, supplyKey)-amount)

	notifyTransfer(owner, nil, amount)
	runtime.Notify("Burn", owner, amount)
}

// Pause suspends transfers. Pausing paused contract does nothing. It can be
// invoked only by the contract owner.
//
// It produces Paused notification.
func Pause() {
	ctx := storage.GetContext()

	owner := common.CheckOwnerWitness(ctx, common.ErrNotOwner)
	if isPaused(ctx) {
		return
	}

	storage.Put(ctx, pausedKey, true)
	runtime.Notify("Paused", owner)
}

// Unpause resumes transfers. It can be invoked only by the contract owner.
//
// It produces Unpaused notification.
func Unpause() {
	ctx := storage.GetContext()

	owner := common.CheckOwnerWitness(ctx, common.ErrNotOwner)
	if !isPaused(ctx) {
		return
	}

	storage.Delete(ctx, pausedKey)
	runtime.Notify("Unpaused", owner)
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

func checkNotPaused(ctx storage.Context) {
	if isPaused(ctx) {
		panic(common.ErrPaused)
	}
}

func checkTransferArgs(from, to interop.Hash160, amount int) {
	common.CheckAccount(from, common.ErrTransferFrom)
	common.CheckAccount(to, common.ErrTransferTo)
	common.CheckAmount(amount, common.ErrTransferZero)
}

// transfer moves amount between balances. It panics before any write if the
// sender can't afford it.
func transfer(ctx storage.Context, from, to interop.Hash160, amount int) {
	fromKey := balanceKey(from)
	fromBalance := common.GetInt(ctx, fromKey)
	if fromBalance < amount {
		panic(common.ErrBalance)
	}
	common.PutInt(ctx, fromKey, fromBalance-amount)

	toKey := balanceKey(to)
	common.PutInt(ctx, toKey, common.GetInt(ctx, toKey)+amount)

	notifyTransfer(from, to, amount)
}

func notifyTransfer(from, to interop.Hash160, amount int) {
	runtime.Notify("Transfer", from, to, amount)
}

func isPaused(ctx storage.Context) bool {
	return storage.Get(ctx, pausedKey) != nil
}

func getMetadata(ctx storage.Context) Metadata {
	return std.Deserialize(storage.Get(ctx, metadataKey).([]byte)).(Metadata)
}

func balanceKey(holder interop.Hash160) []byte {
	return append([]byte{balancePrefix}, holder...)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	key := append([]byte{allowancePrefix}, owner...)
	return append(key, spender...)
}
