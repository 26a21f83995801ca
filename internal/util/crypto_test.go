package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestHashSecret(t *testing.T) {
	secret := "MotherMaidenName"

	hashed, err := HashSecret(secret)
	if err != nil {
		t.Fatalf("HashSecret() error = %v", err)
	}
	if !strings.Contains(hashed, "$") {
		t.Error("hash should be in salt$hash form")
	}

	if _, err := HashSecret(""); err == nil {
		t.Error("empty secret should return error")
	}

	// same secret must produce different hashes (random salt)
	hashed2, _ := HashSecret(secret)
	if hashed == hashed2 {
		t.Error("same secret should produce different hashes")
	}
}

func TestCheckSecret(t *testing.T) {
	secret := "Kathmandu"
	hashed, _ := HashSecret(secret)

	if !CheckSecret(secret, hashed) {
		t.Error("correct secret should verify")
	}
	if CheckSecret("wrong", hashed) {
		t.Error("wrong secret should not verify")
	}
	if CheckSecret("", hashed) {
		t.Error("empty secret should not verify")
	}
	if CheckSecret(secret, "") {
		t.Error("empty hash should not verify")
	}
	if CheckSecret(secret, "invalid-format") {
		t.Error("malformed hash should not verify")
	}
}

func TestEncryptDecryptAES(t *testing.T) {
	key := "backup-key"
	plain := []byte(`{"customers":[],"version":"1.0"}`)

	enc, err := EncryptAES(key, plain)
	if err != nil {
		t.Fatalf("EncryptAES() error = %v", err)
	}
	if bytes.Equal(enc, plain) {
		t.Error("ciphertext should differ from plaintext")
	}

	dec, err := DecryptAES(key, enc)
	if err != nil {
		t.Fatalf("DecryptAES() error = %v", err)
	}
	if !bytes.Equal(dec, plain) {
		t.Errorf("round trip mismatch: got %q", dec)
	}

	if _, err := DecryptAES("other-key", enc); err == nil {
		t.Error("wrong key should fail to decrypt")
	}
	if _, err := DecryptAES(key, []byte("short")); err == nil {
		t.Error("truncated input should fail")
	}
}
