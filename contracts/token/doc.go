/*
Token contract is a fungible asset ledger.

Token contract keeps holder balances and delegated allowances of a single
asset. The contract owner mints and burns the supply, may suspend transfers
and hand the ownership over to another account. Total supply always equals
to the sum of all balances; zero balances and allowances are not stored.

Null (all-zero) account can't hold, send, approve or receive tokens. Every
rejected call fails the transaction with a stable reason message, so no
partial state changes are ever persisted.

Contract is deployed with [owner, name, symbol, decimals] arguments.

Contract notifications

Transfer notification. It is produced on every balance movement. Minted
tokens have null sender, burnt tokens have null receiver.

  Transfer:
    - name: from
      type: Hash160
    - name: to
      type: Hash160
    - name: amount
      type: Integer

Approval notification. It is produced when allowance is set or spent, amount
is the resulting allowance value.

  Approval:
    - name: owner
      type: Hash160
    - name: spender
      type: Hash160
    - name: amount
      type: Integer

Mint notification. It is produced when the owner issues new tokens.

  Mint:
    - name: owner
      type: Hash160
    - name: to
      type: Hash160
    - name: amount
      type: Integer

Burn notification. It is produced when the owner destroys its own tokens.

  Burn:
    - name: owner
      type: Hash160
    - name: amount
      type: Integer

Paused and Unpaused notifications. They are produced only when pause state
actually changes.

  Paused:
    - name: owner
      type: Hash160

  Unpaused:
    - name: owner
      type: Hash160

OwnershipTransferred notification.

  OwnershipTransferred:
    - name: previousOwner
      type: Hash160
    - name: newOwner
      type: Hash160
*/
package token
