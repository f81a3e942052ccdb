// Package token implements the payment-token ledger the marketplace settles
// in. The ledger mirrors ERC20 semantics: holders approve an escrow account
// (a vault address) to pull funds, and the escrow pushes funds back out when
// distributing or refunding. All operations are atomic and fail loudly; a
// failed transfer never moves a partial amount.
package token

// PaymentToken is the escrow-facing surface of the ledger.
//
// Amounts are integer micro-units of the settlement currency.
type PaymentToken interface {
	// BalanceOf reports the balance of account.
	BalanceOf(account string) uint64

	// Transfer moves amount from one account to another.
	Transfer(from, to string, amount uint64) error

	// Approve sets the allowance spender may pull from owner.
	Approve(owner, spender string, amount uint64) error

	// Allowance reports how much spender may still pull from owner.
	Allowance(owner, spender string) uint64

	// TransferFrom moves amount from `from` to `to` on behalf of spender,
	// consuming spender's allowance granted by `from`.
	TransferFrom(spender, from, to string, amount uint64) error
}
