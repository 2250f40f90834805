// Package token provides random secret material generation.
//
// It backs the operator key secrets (the body after the vlos_ prefix)
// and the CLI keyring file. All randomness comes from crypto/rand;
// string output is Base64 RawURL encoded so secrets are safe in
// headers and config files.
package token
