package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// The current supported version of the sealed token format stored on disk.
	sealedFormatVersion = 1

	// Upper bounds on KDF parameters read back from disk.
	maxScryptN = 1 << 20
	maxScryptR = 32
	maxScryptP = 16
	saltSize   = 16
)

var (
	// Returned when the passphrase is incorrect or the ciphertext has been modified / corrupted.
	errWrongPassphrase = errors.New("wrong passphrase or corrupted session file")
	// Returned when the file is not a sealed blob at all, e.g. a plain token
	// written before a passphrase was configured.
	errNotSealed = errors.New("session file is not sealed")
	// Returned when the blob's KDF parameters are out of range.
	errBadParams = errors.New("session file has invalid key derivation parameters")
)

// sealedBlob is the on-disk JSON structure holding the ciphertext and KDF parameters.
type sealedBlob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw into a JSON blob.
func seal(passphrase string, raw []byte, N, r, p int) ([]byte, error) {
	var salt [saltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer wipe(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key is fresh per seal
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return json.Marshal(sealedBlob{
		V:      sealedFormatVersion,
		Salt:   salt[:],
		N:      N,
		R:      r,
		P:      p,
		Cipher: ct,
	})
}

// open decrypts a blob produced by seal.
func open(passphrase string, b []byte) ([]byte, error) {
	var bl sealedBlob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotSealed, err)
	}
	if bl.V == 0 || len(bl.Salt) == 0 {
		return nil, errNotSealed
	}
	if bl.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported session file version %d", bl.V)
	}
	if err := checkParams(bl); err != nil {
		return nil, err
	}

	key, err := scrypt.Key([]byte(passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer wipe(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, errWrongPassphrase
	}
	return pt, nil
}

// checkParams bounds what a corrupted or hostile file can make scrypt do.
func checkParams(bl sealedBlob) error {
	switch {
	case len(bl.Salt) != saltSize:
		return errBadParams
	case bl.N < 2 || bl.N > maxScryptN || bl.N&(bl.N-1) != 0:
		return errBadParams
	case bl.R < 1 || bl.R > maxScryptR:
		return errBadParams
	case bl.P < 1 || bl.P > maxScryptP:
		return errBadParams
	}
	return nil
}

// wipe zeroes a derived key once it is no longer needed. Best-effort.
//
//go:noinline
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
