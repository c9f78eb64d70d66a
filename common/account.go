package common

import "github.com/nspcc-dev/neo-go/pkg/interop"

// IsNullAccount returns true if acc can't identify any holder: it's either
// malformed or consists of zero bytes only.
func IsNullAccount(acc interop.Hash160) bool {
	if len(acc) != interop.Hash160Len {
		return true
	}

	for i := 0; i < len(acc); i++ {
		if acc[i] != 0 {
			return false
		}
	}

	return true
}

// CheckAccount panics with the given message if acc is a null account.
func CheckAccount(acc interop.Hash160, msg string) {
	if IsNullAccount(acc) {
		panic(msg)
	}
}

// CheckAmount panics if amount is negative or, with the given message, if
// it is zero.
func CheckAmount(amount int, zeroMsg string) {
	if amount < 0 {
		panic(ErrNegativeAmount)
	}
	if amount == 0 {
		panic(zeroMsg)
	}
}
