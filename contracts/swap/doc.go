/*
Swap contract exchanges assets of two holders kept in two independent ledger
contracts.

Any ledger exposing balanceOf, allowance and transferFrom methods can take
part in a swap. Each holder approves Swap contract as a spender in its
ledger, then the contract owner requests the exchange. Both sides are
validated before any transfer, and a failure of any transfer faults the whole
transaction, so the swap is applied to both ledgers or to none of them.

Contract is deployed with [owner] argument.

Contract notifications

SwapSuccess notification. It is produced once per successful swap.

  SwapSuccess:
    - name: fromAccount
      type: Hash160
    - name: fromAmount
      type: Integer
    - name: toAccount
      type: Hash160
    - name: toAmount
      type: Integer

OwnershipTransferred notification.

  OwnershipTransferred:
    - name: previousOwner
      type: Hash160
    - name: newOwner
      type: Hash160
*/
package swap
