package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yndnr/voteledger-go/internal/core/domain"
	"github.com/yndnr/voteledger-go/internal/storage"
)

// TokenService is the token ledger.
//
// Each mint assigns the next sequential token ID under the supply cap;
// each transfer hands a token from its owner to another account. Both
// run their ownership writes and the resulting checkpoint appends in
// one storage transaction: either the balance change and the weight
// history both commit, or neither does. Events are published only
// after a successful commit.
type TokenService struct {
	kv      storage.KVEngine
	tokens  *storage.TokenStore
	weights *WeightService
	logger  *slog.Logger

	maxSupply uint64

	mu        sync.RWMutex
	listeners []domain.EventListener
}

// TokenServiceConfig holds configuration for TokenService.
type TokenServiceConfig struct {
	// MaxSupply caps the number of mintable tokens.
	// Default: domain.DefaultMaxSupply.
	MaxSupply uint64
}

// DefaultTokenServiceConfig returns the default configuration.
func DefaultTokenServiceConfig() *TokenServiceConfig {
	return &TokenServiceConfig{
		MaxSupply: domain.DefaultMaxSupply,
	}
}

// NewTokenService creates the token ledger.
func NewTokenService(kv storage.KVEngine, tokens *storage.TokenStore, weights *WeightService, cfg *TokenServiceConfig, logger *slog.Logger) *TokenService {
	if cfg == nil {
		cfg = DefaultTokenServiceConfig()
	}
	if cfg.MaxSupply == 0 {
		cfg.MaxSupply = domain.DefaultMaxSupply
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenService{
		kv:        kv,
		tokens:    tokens,
		weights:   weights,
		logger:    logger,
		maxSupply: cfg.MaxSupply,
	}
}

// Subscribe registers a listener for committed ledger events.
func (s *TokenService) Subscribe(l domain.EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// publish notifies listeners of a committed event.
func (s *TokenService) publish(ev domain.Event) {
	s.mu.RLock()
	listeners := make([]domain.EventListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l.OnEvent(ev)
	}
}

// Mint creates the next token for recipient at the given step.
//
// Caller identity is checked before this is reached (operator key at
// the transport layer); the service enforces the supply cap and the
// recipient format. The recipient's weight checkpoint is appended in
// the mint transaction.
func (s *TokenService) Mint(ctx context.Context, recipient domain.AccountID, step uint32) (domain.TokenID, error) {
	if err := recipient.Validate(); err != nil {
		return 0, err
	}

	var id domain.TokenID
	err := s.kv.Update(ctx, func(tx storage.Txn) error {
		supply, err := s.tokens.SupplyTx(tx)
		if err != nil {
			return err
		}
		if supply >= s.maxSupply {
			return domain.ErrMaxSupplyReached
		}

		id = domain.TokenID(supply + 1)
		if err := s.tokens.SetOwnerTx(tx, id, recipient); err != nil {
			return err
		}

		balance, err := s.tokens.BalanceTx(tx, recipient)
		if err != nil {
			return err
		}
		if err := s.tokens.SetBalanceTx(tx, recipient, balance+1); err != nil {
			return err
		}
		if err := s.tokens.SetSupplyTx(tx, supply+1); err != nil {
			return err
		}

		return s.weights.ApplyMint(tx, recipient, step)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("token minted",
		"token", id.String(),
		"recipient", recipient.String(),
		"step", step)

	s.publish(domain.Event{
		Kind:  domain.EventMinted,
		Token: id,
		To:    recipient,
		Step:  step,
	})
	return id, nil
}

// Transfer moves a token from caller to another account at the given
// step. Only the current owner may transfer; approvals and operators
// are not part of this ledger.
func (s *TokenService) Transfer(ctx context.Context, caller, to domain.AccountID, id domain.TokenID, step uint32) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if caller == to {
		return domain.ErrSelfTransfer
	}

	err := s.kv.Update(ctx, func(tx storage.Txn) error {
		owner, err := s.tokens.OwnerTx(tx, id)
		if err != nil {
			return err
		}
		if owner != caller {
			return domain.ErrNotTokenOwner.WithDetails("token " + id.String())
		}

		if err := s.tokens.SetOwnerTx(tx, id, to); err != nil {
			return err
		}

		fromBalance, err := s.tokens.BalanceTx(tx, caller)
		if err != nil {
			return err
		}
		if fromBalance == 0 {
			// Owner record says caller holds the token but the balance
			// disagrees; surface the inconsistency.
			return domain.ErrLedgerCorrupt.WithDetails("balance of " + caller.String() + " is 0 despite owned token")
		}
		if err := s.tokens.SetBalanceTx(tx, caller, fromBalance-1); err != nil {
			return err
		}

		toBalance, err := s.tokens.BalanceTx(tx, to)
		if err != nil {
			return err
		}
		if err := s.tokens.SetBalanceTx(tx, to, toBalance+1); err != nil {
			return err
		}

		return s.weights.ApplyTransfer(tx, caller, to, step)
	})
	if err != nil {
		return err
	}

	s.logger.Info("token transferred",
		"token", id.String(),
		"from", caller.String(),
		"to", to.String(),
		"step", step)

	s.publish(domain.Event{
		Kind:  domain.EventTransferred,
		Token: id,
		From:  caller,
		To:    to,
		Step:  step,
	})
	return nil
}

// OwnerOf returns the current owner of a token.
func (s *TokenService) OwnerOf(ctx context.Context, id domain.TokenID) (domain.AccountID, error) {
	return s.tokens.Owner(ctx, id)
}

// BalanceOf returns the number of tokens an account holds.
func (s *TokenService) BalanceOf(ctx context.Context, account domain.AccountID) (uint64, error) {
	if err := account.Validate(); err != nil {
		return 0, err
	}
	return s.tokens.Balance(ctx, account)
}

// TotalSupply returns the number of tokens minted so far.
func (s *TokenService) TotalSupply(ctx context.Context) (uint64, error) {
	return s.tokens.Supply(ctx)
}

// MaxSupply returns the supply cap.
func (s *TokenService) MaxSupply() uint64 {
	return s.maxSupply
}
