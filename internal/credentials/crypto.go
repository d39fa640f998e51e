package credentials

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltLength       = 16 // 128-bit salt
	KeyLength        = 32 // AES-256
	NonceLength      = 12 // GCM nonce
	PBKDF2Iterations = 310000
)

// GenerateRandomBytes generates cryptographically secure random bytes
func GenerateRandomBytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return bytes, nil
}

// GenerateSalt generates a 16-byte (128-bit) salt
func GenerateSalt() ([]byte, error) {
	return GenerateRandomBytes(SaltLength)
}

// GenerateNonce generates a 12-byte nonce for AES-GCM
func GenerateNonce() ([]byte, error) {
	return GenerateRandomBytes(NonceLength)
}

// DeriveKey derives a 256-bit key from a secret using PBKDF2-SHA256
func DeriveKey(secret string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(secret), salt, iterations, KeyLength, sha256.New)
}

// Encrypt encrypts plaintext using AES-256-GCM
// Returns ciphertext and nonce
func Encrypt(plaintext string, key []byte) (ciphertext, nonce []byte, err error) {
	if len(key) != KeyLength {
		return nil, nil, fmt.Errorf("invalid key length: expected %d, got %d", KeyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce, err = GenerateNonce()
	if err != nil {
		return nil, nil, err
	}

	ciphertext = gcm.Seal(nil, nonce, []byte(plaintext), nil)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM
func Decrypt(ciphertext, nonce, key []byte) (string, error) {
	if len(key) != KeyLength {
		return "", fmt.Errorf("invalid key length: expected %d, got %d", KeyLength, len(key))
	}

	if len(nonce) != NonceLength {
		return "", fmt.Errorf("invalid nonce length: expected %d, got %d", NonceLength, len(nonce))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plaintext), nil
}
