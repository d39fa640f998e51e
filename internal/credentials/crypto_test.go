package credentials

import (
	"testing"
)

func TestGenerateSalt(t *testing.T) {
	salt1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}

	if len(salt1) != SaltLength {
		t.Errorf("GenerateSalt() length = %d, want %d", len(salt1), SaltLength)
	}

	// Generate another salt - should be different (uniqueness)
	salt2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}

	if string(salt1) == string(salt2) {
		t.Error("GenerateSalt() generated duplicate salts")
	}
}

func TestDeriveKey(t *testing.T) {
	secret := "machine-secret-123"
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}

	key1 := DeriveKey(secret, salt, 1000)
	if len(key1) != KeyLength {
		t.Errorf("DeriveKey() length = %d, want %d", len(key1), KeyLength)
	}

	// Same inputs derive the same key
	key2 := DeriveKey(secret, salt, 1000)
	if string(key1) != string(key2) {
		t.Error("DeriveKey() is not deterministic")
	}

	// A different salt derives a different key
	otherSalt, _ := GenerateSalt()
	key3 := DeriveKey(secret, otherSalt, 1000)
	if string(key1) == string(key3) {
		t.Error("DeriveKey() ignored the salt")
	}
}

func TestEncryptDecrypt(t *testing.T) {
	key, err := GenerateRandomBytes(KeyLength)
	if err != nil {
		t.Fatalf("GenerateRandomBytes() error = %v", err)
	}

	plaintext := "fb_0123456789abcdef"
	ciphertext, nonce, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if len(nonce) != NonceLength {
		t.Errorf("Encrypt() nonce length = %d, want %d", len(nonce), NonceLength)
	}

	decrypted, err := Decrypt(ciphertext, nonce, key)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}

	if decrypted != plaintext {
		t.Errorf("Decrypt() = %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptDecrypt_WrongKey(t *testing.T) {
	key, _ := GenerateRandomBytes(KeyLength)
	wrongKey, _ := GenerateRandomBytes(KeyLength)

	ciphertext, nonce, err := Encrypt("fb_secret", key)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if _, err := Decrypt(ciphertext, nonce, wrongKey); err == nil {
		t.Error("Decrypt() with wrong key should fail")
	}
}

func TestEncrypt_InvalidKeyLength(t *testing.T) {
	if _, _, err := Encrypt("data", []byte("short")); err == nil {
		t.Error("Encrypt() with short key should fail")
	}
}
