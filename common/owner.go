package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// OwnerKey is a storage key of the contract owner. Contracts relying on
// this file must not use it for anything else.
const OwnerKey = 'o'

// SetOwner stores owner as the account controlling privileged methods. It is
// meant to be called from _deploy.
func SetOwner(ctx storage.Context, owner interop.Hash160) {
	CheckAccount(owner, ErrNewOwnerNull)
	storage.Put(ctx, OwnerKey, owner)
}

// Owner returns the current owner of the contract.
func Owner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, OwnerKey).(interop.Hash160)
}

// IsOwnerWitnessed returns true if the current owner of the contract has
// signed the transaction.
func IsOwnerWitnessed(ctx storage.Context) bool {
	return runtime.CheckWitness(Owner(ctx))
}

// CheckOwnerWitness panics with msg if the current owner of the contract has
// not signed the transaction. It returns the owner otherwise.
func CheckOwnerWitness(ctx storage.Context, msg string) interop.Hash160 {
	owner := Owner(ctx)
	checkWitnessWithPanic(owner, msg)
	return owner
}

// TransferOwnership hands privileged methods over to newOwner. Transaction
// must be witnessed by the current owner. Produces OwnershipTransferred
// notification.
func TransferOwnership(ctx storage.Context, newOwner interop.Hash160) {
	prev := CheckOwnerWitness(ctx, ErrNotOwner)
	CheckAccount(newOwner, ErrNewOwnerNull)

	storage.Put(ctx, OwnerKey, newOwner)
	runtime.Notify("OwnershipTransferred", prev, newOwner)
}
