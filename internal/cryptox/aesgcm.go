package cryptox

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/mod7ex/chrome-ext-test/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

// DeriveKey stretches a passphrase into a 32-byte AES-256 key with argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

// AESGCM encrypts with AES-256-GCM under a key derived from a passphrase.
//
// Every Encode draws a fresh salt and nonce, so the stored form is
//
//	salt(16) | nonce(12) | ciphertext+tag
//
// and needs nothing else persisted next to it.
type AESGCM struct {
	passphrase []byte
}

func NewPassphraseCodec(passphrase string) (*AESGCM, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return &AESGCM{passphrase: []byte(passphrase)}, nil
}

func (c *AESGCM) aead(salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(DeriveKey(c.passphrase, salt))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (c *AESGCM) Encode(plaintext []byte) ([]byte, error) {
	salt := common.GenerateRandByteArray(saltSize)
	nonce := common.GenerateRandByteArray(nonceSize)

	aesgcm, err := c.aead(salt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+nonceSize+len(plaintext)+aesgcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aesgcm.Seal(out, nonce, plaintext, nil), nil
}

func (c *AESGCM) Decode(stored []byte) ([]byte, error) {
	if len(stored) < saltSize+nonceSize {
		return nil, ErrCiphertextTooShort
	}
	salt := stored[:saltSize]
	nonce := stored[saltSize : saltSize+nonceSize]

	aesgcm, err := c.aead(salt)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, stored[saltSize+nonceSize:], nil)
}
