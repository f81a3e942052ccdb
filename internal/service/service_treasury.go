// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/stayvault/stayvault/internal/config"
	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/registry"
	"github.com/stayvault/stayvault/internal/store"
	"github.com/stayvault/stayvault/internal/token"
	"github.com/stayvault/stayvault/models"
)

// treasuryService exposes the in-process payment ledger and the per-vault
// earnings escrow of parent vaults.
type treasuryService struct {
	ledger         *token.Ledger
	registry       *registry.Registry
	settlementRepo store.SettlementRepository

	// faucetAmount is minted per faucet request. Zero disables the faucet.
	faucetAmount uint64

	logger *logger.Logger
}

// NewTreasuryService constructs a [TreasuryService].
func NewTreasuryService(ledger *token.Ledger, reg *registry.Registry, settlementRepo store.SettlementRepository, cfg config.App, logger *logger.Logger) TreasuryService {
	return &treasuryService{
		ledger:         ledger,
		registry:       reg,
		settlementRepo: settlementRepo,
		faucetAmount:   cfg.FaucetAmount,
		logger:         logger,
	}
}

func (s *treasuryService) Balance(ctx context.Context, account string) (uint64, error) {
	return s.ledger.BalanceOf(account), nil
}

// Faucet mints the configured development amount to account and returns the
// resulting balance. Disabled when the faucet amount is zero.
func (s *treasuryService) Faucet(ctx context.Context, account string) (uint64, error) {
	if s.faucetAmount == 0 {
		return 0, ErrFaucetDisabled
	}
	if err := s.ledger.Mint(account, s.faucetAmount); err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Info().
		Str("account", account).
		Uint64("amount", s.faucetAmount).
		Msg("faucet minted")
	return s.ledger.BalanceOf(account), nil
}

// Approve lets owner authorize spender (typically a vault escrow address) to
// pull up to amount from their balance.
func (s *treasuryService) Approve(ctx context.Context, owner, spender string, amount uint64) error {
	return s.ledger.Approve(owner, spender, amount)
}

func (s *treasuryService) Allowance(ctx context.Context, owner, spender string) (uint64, error) {
	return s.ledger.Allowance(owner, spender), nil
}

// Earnings reports the withdrawable and lifetime earnings of account on the
// vault at address.
func (s *treasuryService) Earnings(ctx context.Context, address, account string) (models.EarningsResponse, error) {
	v, err := s.registry.VaultByAddress(address)
	if err != nil {
		return models.EarningsResponse{}, err
	}

	return models.EarningsResponse{
		Account:       account,
		Earnings:      v.Earnings(account),
		TotalEarnings: v.TotalEarnings(),
	}, nil
}

// WithdrawEarnings moves the caller's accumulated earnings out of the vault
// escrow at address into their ledger account. Owner-only.
func (s *treasuryService) WithdrawEarnings(ctx context.Context, address, caller string) (models.WithdrawResponse, error) {
	log := logger.FromContext(ctx)

	v, err := s.registry.VaultByAddress(address)
	if err != nil {
		return models.WithdrawResponse{}, err
	}

	amount, err := v.WithdrawEarnings(caller)
	if err != nil {
		return models.WithdrawResponse{}, err
	}

	log.Info().
		Str("vault_id", v.ID()).
		Str("account", caller).
		Uint64("amount", amount).
		Msg("earnings withdrawn")
	return models.WithdrawResponse{Account: caller, Withdrawn: amount}, nil
}

// Settlements reads back the settlement journal, newest last.
func (s *treasuryService) Settlements(ctx context.Context, filter models.SettlementFilter) ([]models.Settlement, error) {
	return s.settlementRepo.GetSettlements(ctx, filter)
}
