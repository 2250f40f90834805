package domain

// Account identifier constraints.
const (
	// MinAccountIDLength is the minimum account identifier length.
	MinAccountIDLength = 1

	// MaxAccountIDLength is the maximum account identifier length.
	MaxAccountIDLength = 128
)

// AccountID identifies an account in the ledger.
//
// Account identifiers are opaque to the ledger: any printable ASCII
// string within the length bounds is accepted. The host platform
// decides what an identity actually is (an address, a public key
// fingerprint, a username).
type AccountID string

// Validate checks the account identifier constraints.
func (a AccountID) Validate() error {
	if len(a) < MinAccountIDLength {
		return ErrInvalidAccount.WithDetails("empty account id")
	}
	if len(a) > MaxAccountIDLength {
		return ErrInvalidAccount.WithDetails("account id exceeds 128 bytes")
	}
	for i := 0; i < len(a); i++ {
		c := a[i]
		if c < 0x21 || c > 0x7e {
			return ErrInvalidAccount.WithDetails("account id contains non-printable or space character")
		}
	}
	return nil
}

// String returns the account identifier as a string.
func (a AccountID) String() string {
	return string(a)
}
