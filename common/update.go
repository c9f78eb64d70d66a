package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// ErrUpdateAccess is thrown when a non-owner tries to update the contract.
const ErrUpdateAccess = "only owner can update contract"

// HasUpdateAccess returns true if contract can be updated.
func HasUpdateAccess(ctx storage.Context) bool {
	return IsOwnerWitnessed(ctx)
}

// UpdateContract replaces script and manifest of the executing contract.
// Current version is appended to data, see CheckVersion.
func UpdateContract(nefFile, manifest []byte, data any) {
	if !HasUpdateAccess(storage.GetReadOnlyContext()) {
		panic(ErrUpdateAccess)
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, AppendVersion(data))
}
