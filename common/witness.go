package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

var (
	// ErrWitnessFailed appears when the method must be called
	// by a certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

// IsUsableAddress checks if addr has either signed the transaction or is
// the script hash of the contract calling the current one.
func IsUsableAddress(addr interop.Hash160) bool {
	if len(addr) != interop.Hash160Len {
		return false
	}

	if runtime.CheckWitness(addr) {
		return true
	}

	// Check if a smart contract is calling script hash
	callingScriptHash := runtime.GetCallingScriptHash()
	return callingScriptHash.Equals(addr)
}

// CheckUsableAddress is like IsUsableAddress but panics with
// ErrWitnessFailed message on fail.
func CheckUsableAddress(addr interop.Hash160) {
	if !IsUsableAddress(addr) {
		panic(ErrWitnessFailed)
	}
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
