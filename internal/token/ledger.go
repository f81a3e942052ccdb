package token

import (
	"sync"

	"github.com/stayvault/stayvault/internal/logger"
)

// Ledger is the in-process implementation of [PaymentToken].
//
// A single mutex guards balances and allowances so every operation is atomic:
// concurrent callers observe strict operation ordering with no interleaving
// of partial effects.
type Ledger struct {
	mu         sync.Mutex
	balances   map[string]uint64
	allowances map[string]map[string]uint64

	logger *logger.Logger
}

// NewLedger constructs an empty Ledger.
func NewLedger(log *logger.Logger) *Ledger {
	return &Ledger{
		balances:   make(map[string]uint64),
		allowances: make(map[string]map[string]uint64),
		logger:     log,
	}
}

// Mint credits amount to account. Used by the development faucet and tests.
func (l *Ledger) Mint(account string, amount uint64) error {
	if account == "" {
		return ErrEmptyAccount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account] += amount
	l.logger.Debug().Str("account", account).Uint64("amount", amount).Msg("minted tokens")
	return nil
}

// BalanceOf reports the balance of account.
func (l *Ledger) BalanceOf(account string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account]
}

// Transfer moves amount from one account to another. Zero-amount transfers
// are accepted and are a no-op, so distribution shares that round to zero do
// not fail settlement.
func (l *Ledger) Transfer(from, to string, amount uint64) error {
	if from == "" || to == "" {
		return ErrEmptyAccount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.move(from, to, amount)
}

// Approve sets the allowance spender may pull from owner, replacing any
// previous allowance.
func (l *Ledger) Approve(owner, spender string, amount uint64) error {
	if owner == "" || spender == "" {
		return ErrEmptyAccount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	grants, ok := l.allowances[owner]
	if !ok {
		grants = make(map[string]uint64)
		l.allowances[owner] = grants
	}
	grants[spender] = amount

	return nil
}

// Allowance reports how much spender may still pull from owner.
func (l *Ledger) Allowance(owner, spender string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowances[owner][spender]
}

// TransferFrom moves amount from `from` to `to` on behalf of spender.
// The allowance is checked and consumed before the balance moves; on any
// failure neither the allowance nor the balances change.
func (l *Ledger) TransferFrom(spender, from, to string, amount uint64) error {
	if spender == "" || from == "" || to == "" {
		return ErrEmptyAccount
	}
	if amount == 0 {
		return ErrZeroAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	allowed := l.allowances[from][spender]
	if allowed < amount {
		return ErrInsufficientAllowance
	}
	if l.balances[from] < amount {
		return ErrInsufficientBalance
	}

	l.allowances[from][spender] = allowed - amount
	if err := l.move(from, to, amount); err != nil {
		// restore the allowance: the operation must be all-or-nothing
		l.allowances[from][spender] = allowed
		return err
	}

	return nil
}

// move transfers amount between accounts. Caller must hold l.mu.
func (l *Ledger) move(from, to string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if l.balances[from] < amount {
		return ErrInsufficientBalance
	}

	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}
