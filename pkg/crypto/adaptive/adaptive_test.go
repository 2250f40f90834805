package adaptive

import (
	"bytes"
	"testing"
)

func testKey() []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestNew_PicksSuite(t *testing.T) {
	c, err := New(testKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Suite() != SuiteAESGCM && c.Suite() != SuiteChaCha20 {
		t.Errorf("New() suite = %q", c.Suite())
	}
}

func TestNew_RejectsBadKeySize(t *testing.T) {
	for _, n := range []int{0, 16, 24, 31, 33} {
		if _, err := New(make([]byte, n)); err == nil {
			t.Errorf("New() accepted %d-byte key", n)
		}
	}
}

func TestNewSuite_Unknown(t *testing.T) {
	if _, err := NewSuite(testKey(), "vigenere"); err == nil {
		t.Error("NewSuite() accepted unknown suite")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	for _, suite := range []Suite{SuiteAESGCM, SuiteChaCha20} {
		t.Run(string(suite), func(t *testing.T) {
			c, err := NewSuite(testKey(), suite)
			if err != nil {
				t.Fatalf("NewSuite() error = %v", err)
			}

			tests := []struct {
				name      string
				plaintext []byte
				aad       []byte
			}{
				{"empty", []byte{}, nil},
				{"simple", []byte("hello world"), nil},
				{"with aad", []byte("secret"), []byte("bound context")},
				{"binary", []byte{0x00, 0xff, 0x7f, 0x80}, []byte{0x01}},
				{"large", bytes.Repeat([]byte("A"), 4096), nil},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					sealed, err := c.Encrypt(tt.plaintext, tt.aad)
					if err != nil {
						t.Fatalf("Encrypt() error = %v", err)
					}
					if want := len(tt.plaintext) + c.Overhead(); len(sealed) != want {
						t.Errorf("sealed length = %d, want %d", len(sealed), want)
					}
					opened, err := c.Decrypt(sealed, tt.aad)
					if err != nil {
						t.Fatalf("Decrypt() error = %v", err)
					}
					if !bytes.Equal(opened, tt.plaintext) {
						t.Errorf("round trip = %q, want %q", opened, tt.plaintext)
					}
				})
			}
		})
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	c, err := New(testKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sealed, err := c.Encrypt([]byte("message"), []byte("aad"))
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	flipped := bytes.Clone(sealed)
	flipped[len(flipped)-1] ^= 0xff
	if _, err := c.Decrypt(flipped, []byte("aad")); err == nil {
		t.Error("Decrypt() accepted tampered ciphertext")
	}

	if _, err := c.Decrypt(sealed, []byte("other aad")); err == nil {
		t.Error("Decrypt() accepted wrong additional data")
	}

	if _, err := c.Decrypt(sealed[:3], []byte("aad")); err == nil {
		t.Error("Decrypt() accepted truncated ciphertext")
	}
}

func TestEncrypt_FreshNonce(t *testing.T) {
	c, err := New(testKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		sealed, err := c.Encrypt([]byte("same plaintext"), nil)
		if err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		if seen[string(sealed)] {
			t.Fatal("Encrypt() repeated a ciphertext")
		}
		seen[string(sealed)] = true
	}
}
