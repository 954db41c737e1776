// Package cryptox holds the at-rest codecs applied to the secret before
// it reaches the key-value store.
package cryptox

import (
	"errors"
	"fmt"
)

// Codec transforms a value on its way into (Encode) and out of (Decode)
// persistent storage.
type Codec interface {
	Encode(plaintext []byte) ([]byte, error)
	Decode(stored []byte) ([]byte, error)
}

const (
	CodecIdentity = "identity"
	CodecAESGCM   = "aes-gcm"
)

var (
	ErrUnknownCodec       = errors.New("unknown codec")
	ErrEmptyPassphrase    = errors.New("empty passphrase")
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// Identity stores values unchanged. It is the default and offers no
// confidentiality at all.
type Identity struct{}

func (Identity) Encode(plaintext []byte) ([]byte, error) {
	return append([]byte(nil), plaintext...), nil
}

func (Identity) Decode(stored []byte) ([]byte, error) {
	return append([]byte(nil), stored...), nil
}

// New returns the codec registered under name.
func New(name, passphrase string) (Codec, error) {
	switch name {
	case "", CodecIdentity:
		return Identity{}, nil
	case CodecAESGCM:
		return NewPassphraseCodec(passphrase)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}
