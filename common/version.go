package common

import "github.com/nspcc-dev/neo-go/pkg/interop/native/std"

const (
	major = 0
	minor = 2
	patch = 0

	// Oldest release an update is accepted from.
	prevMajor = 0
	prevMinor = 1
	prevPatch = 0

	// Version of the swap and ledger contracts encoded as
	// major*1_000_000 + minor*1_000 + patch.
	Version = major*1_000_000 + minor*1_000 + patch

	// PrevVersion is the oldest Version the contracts can be updated from.
	PrevVersion = prevMajor*1_000_000 + prevMinor*1_000 + prevPatch

	// ErrVersionMismatch is a failure reason of an update from the release
	// older than PrevVersion.
	ErrVersionMismatch = "previous version mismatch"

	// ErrAlreadyUpdated is a failure reason of an update to the same Version.
	ErrAlreadyUpdated = "contract is already of the latest version"
)

// CheckVersion panics unless the contract of the given version can be
// replaced by the current code. It is called on update with the version
// passed by UpdateContract.
func CheckVersion(from int) {
	if from < PrevVersion {
		panic(ErrVersionMismatch + ": expected >=" + std.Itoa(PrevVersion, 10))
	}
	if from == Version {
		panic(ErrAlreadyUpdated + ": " + std.Itoa(Version, 10))
	}
}

// AppendVersion adds Version of the running code to the update data, so that
// the new code can check it in _deploy.
func AppendVersion(data any) []any {
	if data == nil {
		return []any{Version}
	}
	return append(data.([]any), Version)
}
