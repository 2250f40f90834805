package domain

import "strconv"

// DefaultMaxSupply is the default cap on the number of mintable tokens.
const DefaultMaxSupply uint64 = 10_000

// TokenID identifies a minted token. IDs are assigned sequentially
// starting at 1; 0 is never a valid token.
type TokenID uint64

// String returns the decimal form of the token ID.
func (t TokenID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// ParseTokenID parses a decimal token ID.
func ParseTokenID(s string) (TokenID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, ErrInvalidArgument.WithDetails("token id must be a positive integer")
	}
	return TokenID(v), nil
}

// Token describes a minted token and its current owner.
type Token struct {
	ID    TokenID   `json:"id"`
	Owner AccountID `json:"owner"`
}
