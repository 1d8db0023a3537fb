package crypto

import (
	"bytes"
	"testing"
)

var testKey = bytes.Repeat([]byte("k"), 32)

func TestRoundTrip(t *testing.T) {
	c, err := NewCipher(testKey)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	plaintext := "Felt a lot better after the morning walk."
	encrypted, err := c.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if encrypted == plaintext {
		t.Error("ciphertext equals plaintext")
	}

	decrypted, err := c.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("got %q, want %q", decrypted, plaintext)
	}
}

func TestNonceIsRandom(t *testing.T) {
	c, _ := NewCipher(testKey)
	a, _ := c.Encrypt("same input")
	b, _ := c.Encrypt("same input")
	if a == b {
		t.Error("two encryptions of the same plaintext produced identical output")
	}
}

func TestEmptyStringPassthrough(t *testing.T) {
	c, _ := NewCipher(testKey)
	if enc, err := c.Encrypt(""); err != nil || enc != "" {
		t.Errorf("Encrypt(\"\"): got (%q, %v)", enc, err)
	}
	if dec, err := c.Decrypt(""); err != nil || dec != "" {
		t.Errorf("Decrypt(\"\"): got (%q, %v)", dec, err)
	}
}

func TestBadKeySize(t *testing.T) {
	if _, err := NewCipher([]byte("too short")); err == nil {
		t.Error("expected error for short key")
	}
}

func TestDecryptRejectsTamperedData(t *testing.T) {
	c, _ := NewCipher(testKey)
	encrypted, _ := c.Encrypt("private note")

	tampered := []byte(encrypted)
	tampered[len(tampered)-5] ^= 'x'
	if _, err := c.Decrypt(string(tampered)); err == nil {
		t.Error("expected error for tampered ciphertext")
	}

	if _, err := c.Decrypt("not base64!!"); err == nil {
		t.Error("expected error for malformed input")
	}

	other, _ := NewCipher(bytes.Repeat([]byte("z"), 32))
	if _, err := other.Decrypt(encrypted); err == nil {
		t.Error("expected error for wrong key")
	}
}
