package credentials

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// Sealed file layout: magic, 16-byte scrypt salt, 24-byte nonce, box.
var sealMagic = []byte("BBSEAL1\x00")

const (
	saltSize  = 16
	nonceSize = 24
)

func deriveKey(passphrase string, salt []byte) (*[32]byte, error) {
	raw, err := scrypt.Key([]byte(passphrase), salt, 1<<15, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("derive credentials key: %w", err)
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}

func seal(passphrase string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(sealMagic)+saltSize+nonceSize+len(plaintext)+secretbox.Overhead)
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plaintext, &nonce, key), nil
}

func open(passphrase string, sealed []byte) ([]byte, error) {
	header := len(sealMagic) + saltSize + nonceSize
	if len(sealed) < header+secretbox.Overhead || string(sealed[:len(sealMagic)]) != string(sealMagic) {
		return nil, ErrSealed
	}

	salt := sealed[len(sealMagic) : len(sealMagic)+saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[len(sealMagic)+saltSize:header])

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	plaintext, ok := secretbox.Open(nil, sealed[header:], &nonce, key)
	if !ok {
		return nil, ErrSealed
	}
	return plaintext, nil
}
