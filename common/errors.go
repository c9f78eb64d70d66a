package common

// Reason strings the contracts panic with. Clients match on them literally,
// so they must stay stable between versions.
const (
	ErrNegativeAmount = "negative amount"

	ErrMintToNull   = "mint to the zero address"
	ErrMintZero     = "mint amount is zero"
	ErrBurnZero     = "burn amount is zero"
	ErrBurnBalance  = "burn amount exceeds balance"
	ErrPaused       = "contract is paused"
	ErrTransferFrom = "transfer from the zero address"
	ErrTransferTo   = "transfer to the zero address"
	ErrTransferZero = "transfer amount is zero"
	ErrBalance      = "transfer amount exceeds balance"
	ErrApproveFrom  = "approve from the zero address"
	ErrApproveTo    = "approve to the zero address"
	ErrApproveSelf  = "approve to same address"
	ErrApproveZero  = "approve amount is zero"
	ErrSpenderNull  = "spender is the zero address"
	ErrAllowance    = "insufficient allowance"

	// ErrNotOwner is thrown when a privileged method is invoked without
	// the witness of the current owner.
	ErrNotOwner = "caller is not the owner"
	// ErrNewOwnerNull is thrown on an attempt to hand the ownership over
	// to the null account.
	ErrNewOwnerNull = "new owner is the zero address"

	// ErrSwapNotOwner is thrown when a swap is requested by anyone but
	// the owner of the swap contract.
	ErrSwapNotOwner   = "only owner can call swap"
	ErrNotEnoughA     = "not enough asset A"
	ErrNotEnoughB     = "not enough asset B"
	ErrInvalidLedger  = "invalid ledger"
	ErrSwapHolderNull = "swap holder is the zero address"
	ErrSwapZero       = "swap amount is zero"
	ErrLegAFailed     = "swap leg A failed"
	ErrLegBFailed     = "swap leg B failed"
)
