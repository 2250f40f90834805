package storage

import (
	"context"
	"errors"

	"github.com/yndnr/voteledger-go/internal/core/domain"
)

// TokenStore owns the token ownership map, the per-account balances,
// and the minted-supply counter. All writes happen through txn-level
// methods so the token service can bundle them with checkpoint
// appends in one commit.
type TokenStore struct {
	kv KVEngine
}

// NewTokenStore creates a token store over the given engine.
func NewTokenStore(kv KVEngine) *TokenStore {
	return &TokenStore{kv: kv}
}

// OwnerTx returns the owner of a token within tx.
func (s *TokenStore) OwnerTx(tx Txn, id domain.TokenID) (domain.AccountID, error) {
	data, err := tx.Get(tokenOwnerKey(id))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return "", domain.ErrTokenNotFound.WithDetails("token " + id.String())
		}
		return "", err
	}
	return domain.AccountID(data), nil
}

// SetOwnerTx records the owner of a token within tx.
func (s *TokenStore) SetOwnerTx(tx Txn, id domain.TokenID, owner domain.AccountID) error {
	return tx.Set(tokenOwnerKey(id), []byte(owner))
}

// BalanceTx returns an account's token balance within tx.
func (s *TokenStore) BalanceTx(tx Txn, account domain.AccountID) (uint64, error) {
	return getUint64(tx, balanceKey(account))
}

// SetBalanceTx records an account's token balance within tx.
func (s *TokenStore) SetBalanceTx(tx Txn, account domain.AccountID, balance uint64) error {
	return tx.Set(balanceKey(account), encodeUint64(balance))
}

// SupplyTx returns the number of tokens minted so far within tx.
func (s *TokenStore) SupplyTx(tx Txn) (uint64, error) {
	return getUint64(tx, []byte(keyTotalSupply))
}

// SetSupplyTx records the minted supply within tx.
func (s *TokenStore) SetSupplyTx(tx Txn, supply uint64) error {
	return tx.Set([]byte(keyTotalSupply), encodeUint64(supply))
}

// Owner returns the owner of a token.
func (s *TokenStore) Owner(ctx context.Context, id domain.TokenID) (domain.AccountID, error) {
	var owner domain.AccountID
	err := s.kv.View(ctx, func(tx Txn) error {
		var err error
		owner, err = s.OwnerTx(tx, id)
		return err
	})
	return owner, err
}

// Balance returns an account's token balance.
func (s *TokenStore) Balance(ctx context.Context, account domain.AccountID) (uint64, error) {
	var balance uint64
	err := s.kv.View(ctx, func(tx Txn) error {
		var err error
		balance, err = s.BalanceTx(tx, account)
		return err
	})
	return balance, err
}

// Supply returns the number of tokens minted so far.
func (s *TokenStore) Supply(ctx context.Context) (uint64, error) {
	var supply uint64
	err := s.kv.View(ctx, func(tx Txn) error {
		var err error
		supply, err = s.SupplyTx(tx)
		return err
	})
	return supply, err
}
