package credentials

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "formbricks-cli"
	keyringUser    = "api-key"
)

var (
	// fallbackMode indicates if we're using file-based fallback (headless systems)
	fallbackMode    bool
	fallbackModeMu  sync.RWMutex
	fallbackChecked bool
)

// checkKeyringAvailable tests if system keyring is available
func checkKeyringAvailable() bool {
	fallbackModeMu.Lock()
	defer fallbackModeMu.Unlock()

	if fallbackChecked {
		return !fallbackMode
	}

	testKey := "formbricks-keyring-test"
	err := keyring.Set(keyringService, testKey, "test")
	if err != nil {
		fallbackMode = true
		fallbackChecked = true
		return false
	}

	_ = keyring.Delete(keyringService, testKey)
	fallbackChecked = true
	return true
}

func isFallbackMode() bool {
	fallbackModeMu.RLock()
	defer fallbackModeMu.RUnlock()
	return fallbackMode
}

// StoreAPIKey stores the API key in the system keyring, or in an encrypted
// file when no keyring is available.
func StoreAPIKey(key string) error {
	if checkKeyringAvailable() {
		if err := keyring.Set(keyringService, keyringUser, key); err != nil {
			return fmt.Errorf("failed to store key in keyring: %w", err)
		}
		return nil
	}
	return storeFallbackKey(key)
}

// LoadAPIKey retrieves the API key from the system keyring or the fallback
// file.
func LoadAPIKey() (string, error) {
	if !isFallbackMode() && checkKeyringAvailable() {
		key, err := keyring.Get(keyringService, keyringUser)
		if err != nil {
			return "", fmt.Errorf("api key not found in keyring: %w", err)
		}
		return key, nil
	}

	key, err := loadFallbackKey()
	if err != nil {
		return "", fmt.Errorf("api key not found: %w", err)
	}
	return key, nil
}

// DeleteAPIKey removes the stored API key from keyring and fallback file.
func DeleteAPIKey() error {
	var keyringErr, fallbackErr error

	if !isFallbackMode() {
		keyringErr = keyring.Delete(keyringService, keyringUser)
	}
	fallbackErr = deleteFallbackFiles()

	if keyringErr != nil && fallbackErr != nil {
		return fmt.Errorf("failed to delete api key from keyring and fallback")
	}
	return nil
}

// HasAPIKey reports whether a key is stored anywhere.
func HasAPIKey() bool {
	if !isFallbackMode() && checkKeyringAvailable() {
		if _, err := keyring.Get(keyringService, keyringUser); err == nil {
			return true
		}
	}

	path, err := fallbackPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// GetStorageMode returns a string describing current storage mode
func GetStorageMode() string {
	if !fallbackChecked {
		checkKeyringAvailable()
	}
	if isFallbackMode() {
		return "file-based (keyring unavailable)"
	}
	return "system-keyring"
}

// Fallback storage for headless systems. The key file is AES-256-GCM
// encrypted under a key derived from a random machine-local secret; the
// 0600 permissions on both files are the actual access guard.

type fallbackEnvelope struct {
	Ciphertext string `json:"ciphertext"` // base64
	Nonce      string `json:"nonce"`      // base64
	Salt       string `json:"salt"`       // base64
	Iterations int    `json:"iterations"`
}

func fallbackPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".formbricks", ".credentials"), nil
}

func machineSecretPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".formbricks", ".secret"), nil
}

// machineSecret loads the local secret, creating it on first use.
func machineSecret() (string, error) {
	path, err := machineSecretPath()
	if err != nil {
		return "", err
	}

	if data, err := os.ReadFile(path); err == nil {
		return string(data), nil
	}

	raw, err := GenerateRandomBytes(32)
	if err != nil {
		return "", err
	}
	secret := base64.StdEncoding.EncodeToString(raw)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(secret), 0600); err != nil {
		return "", fmt.Errorf("failed to write machine secret: %w", err)
	}
	return secret, nil
}

func storeFallbackKey(key string) error {
	secret, err := machineSecret()
	if err != nil {
		return err
	}

	salt, err := GenerateSalt()
	if err != nil {
		return err
	}
	derived := DeriveKey(secret, salt, PBKDF2Iterations)

	ciphertext, nonce, err := Encrypt(key, derived)
	if err != nil {
		return err
	}

	envelope := fallbackEnvelope{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Iterations: PBKDF2Iterations,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	path, err := fallbackPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write fallback key: %w", err)
	}
	return nil
}

func loadFallbackKey() (string, error) {
	path, err := fallbackPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var envelope fallbackEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", fmt.Errorf("failed to parse credential file: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(envelope.Nonce)
	if err != nil {
		return "", fmt.Errorf("failed to decode nonce: %w", err)
	}
	salt, err := base64.StdEncoding.DecodeString(envelope.Salt)
	if err != nil {
		return "", fmt.Errorf("failed to decode salt: %w", err)
	}

	secret, err := machineSecret()
	if err != nil {
		return "", err
	}
	derived := DeriveKey(secret, salt, envelope.Iterations)

	return Decrypt(ciphertext, nonce, derived)
}

func deleteFallbackFiles() error {
	path, err := fallbackPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
