package kdf

import (
	"encoding/hex"
	"testing"

	"tcrecover/internal/hash"
)

// TestHMACSHA1KnownVector checks RFC 2202 test case 1 for HMAC-SHA1.
func TestHMACSHA1KnownVector(t *testing.T) {
	key := make([]byte, 20)
	for i := range key {
		key[i] = 0x0b
	}
	data := []byte("Hi There")
	want := "b617318655057264e28bc0b6fb378c8ef146be00"[:40]

	got := hex.EncodeToString(HMAC(hash.SHA1(), key, data))
	if got != want {
		t.Errorf("HMAC-SHA1 = %s, want %s", got, want)
	}
}

// TestPBKDF2RFC2898Vector checks RFC 6070 test vector 1: PBKDF2-HMAC-SHA1,
// password "password", salt "salt", c=1, dkLen=20.
func TestPBKDF2RFC2898Vector(t *testing.T) {
	dk, err := PBKDF2(hash.SHA1(), []byte("password"), []byte("salt"), 1, 20)
	if err != nil {
		t.Fatalf("PBKDF2: %v", err)
	}
	want := "0c60c80f961f0e71f3a9b524af6012062fe037a6"[:40]
	if got := hex.EncodeToString(dk); got != want {
		t.Errorf("PBKDF2 = %s, want %s", got, want)
	}
}

// TestPBKDF2RFC2898VectorIterated checks RFC 6070 test vector 2: c=2.
func TestPBKDF2RFC2898VectorIterated(t *testing.T) {
	dk, err := PBKDF2(hash.SHA1(), []byte("password"), []byte("salt"), 2, 20)
	if err != nil {
		t.Fatalf("PBKDF2: %v", err)
	}
	want := "ea6c014dc72d6f8ccd1ed92ace1d41f0d8de8957"[:40]
	if got := hex.EncodeToString(dk); got != want {
		t.Errorf("PBKDF2 = %s, want %s", got, want)
	}
}

func TestPBKDF2RejectsZeroIterations(t *testing.T) {
	_, err := PBKDF2(hash.SHA1(), []byte("p"), []byte("s"), 0, 20)
	if err == nil {
		t.Fatal("expected error for zero iterations")
	}
}

func TestDeriveKeyPoolProducesExpectedLayout(t *testing.T) {
	kp, err := DeriveKeyPool(hash.SHA1(), []byte("password"), []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"), 2000)
	if err != nil {
		t.Fatalf("DeriveKeyPool: %v", err)
	}
	b := kp.Bytes()
	if len(b) != 128 {
		t.Fatalf("pool length = %d, want 128", len(b))
	}

	tweak := kp.TweakKey()
	if [16]byte(b[0:16]) != tweak {
		t.Error("TweakKey must equal pool[0:16]")
	}

	for n := 1; n <= 3; n++ {
		got := kp.CipherKey(n)
		start := 32 + (n-1)*32
		want := b[start : start+32]
		if string(got) != string(want) {
			t.Errorf("CipherKey(%d) mismatch", n)
		}
	}

	if kp.CipherKey(0) != nil || kp.CipherKey(4) != nil {
		t.Error("CipherKey must return nil for out-of-range n")
	}
}

func TestNewKeyPoolFromBytesRejectsWrongLength(t *testing.T) {
	if _, err := NewKeyPoolFromBytes(make([]byte, 100)); err == nil {
		t.Fatal("expected error for wrong-length pool")
	}
}

func TestZeroClearsPool(t *testing.T) {
	kp, err := DeriveKeyPool(hash.SHA1(), []byte("password"), []byte("salt-value-salt-value-salt-value"), 100)
	if err != nil {
		t.Fatalf("DeriveKeyPool: %v", err)
	}
	kp.Zero()
	b := kp.Bytes()
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not zeroed: %x", i, v)
		}
	}
}
