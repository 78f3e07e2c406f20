// Package kdf implements the generic HMAC construction and PBKDF2
// iterated key derivation over a pluggable hash primitive (spec.md
// §4.B, §4.C), plus the 128-byte key-pool layout of §3.
//
// crypto/hmac and golang.org/x/crypto/pbkdf2 are both hard-wired to a
// func() hash.Hash factory and cannot accept the Whirlpool primitive
// exposed by internal/hash, so both constructions are reimplemented by
// hand here — ported from the explicit HMAC/PBKDF2 loops in the
// original pytruecrypt keystrengthening.py rather than from any stdlib
// helper.
package kdf

import (
	"encoding/binary"

	"tcrecover/internal/errs"
	"tcrecover/internal/hash"
)

// HMAC computes the keyed-hash message authentication code of message
// under key, using the hash primitive p, per FIPS 198 / spec.md §4.B.
func HMAC(p hash.Primitive, key, message []byte) []byte {
	blockSize := p.BlockSize

	if len(key) > blockSize {
		key = hash.Sum(p, key)
	}
	padded := make([]byte, blockSize)
	copy(padded, key)

	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	for i := 0; i < blockSize; i++ {
		ipad[i] = padded[i] ^ 0x36
		opad[i] = padded[i] ^ 0x5c
	}

	inner := p.New()
	inner.Write(ipad)
	inner.Write(message)
	innerSum := inner.Sum(nil)

	outer := p.New()
	outer.Write(opad)
	outer.Write(innerSum)
	return outer.Sum(nil)
}

// DeriveKeyPool runs PBKDF2 (RFC 2898) over the generic HMAC of p,
// producing a 128-byte key pool from password and salt (spec.md §4.C,
// §4.F). iterations must be at least 1.
func DeriveKeyPool(p hash.Primitive, password, salt []byte, iterations int) (KeyPool, error) {
	raw, err := PBKDF2(p, password, salt, iterations, poolSize)
	if err != nil {
		return KeyPool{}, err
	}
	var kp KeyPool
	copy(kp.bytes[:], raw)
	return kp, nil
}

// PBKDF2 derives dkLen bytes of keying material from password and
// salt using iterations rounds of HMAC under hash primitive p,
// exactly per RFC 2898 §5.2.
func PBKDF2(p hash.Primitive, password, salt []byte, iterations, dkLen int) ([]byte, error) {
	if iterations < 1 {
		return nil, errs.NewMalformedInput("pbkdf2: iteration count must be >= 1", int64(iterations), 1)
	}
	hLen := p.DigestSize
	numBlocks := (dkLen + hLen - 1) / hLen

	dk := make([]byte, 0, numBlocks*hLen)
	for i := 1; i <= numBlocks; i++ {
		block := make([]byte, 4)
		binary.BigEndian.PutUint32(block, uint32(i))

		u := HMAC(p, password, append(append([]byte{}, salt...), block...))
		t := append([]byte{}, u...)
		for j := 2; j <= iterations; j++ {
			u = HMAC(p, password, u)
			for k := range t {
				t[k] ^= u[k]
			}
		}
		dk = append(dk, t...)
	}
	return dk[:dkLen], nil
}

const (
	poolSize       = 128
	tweakKeyOffset = 0
	tweakKeyLen    = 16
	cipherKeyLen   = 32
	cipherKeysBase = 32
	maxCascade     = 3
)

// KeyPool is the 128-byte output of PBKDF2, split per spec.md §3 into
// an LRW tweak key and up to three 256-bit cipher keys.
type KeyPool struct {
	bytes [poolSize]byte
}

// NewKeyPoolFromBytes wraps an existing 128-byte slice (e.g. the
// master key pool read from the decrypted header at offset 192).
func NewKeyPoolFromBytes(b []byte) (KeyPool, error) {
	if len(b) != poolSize {
		return KeyPool{}, errs.NewMalformedInput("key pool must be exactly 128 bytes", int64(len(b)), poolSize)
	}
	var kp KeyPool
	copy(kp.bytes[:], b)
	return kp, nil
}

// Bytes returns the raw 128-byte pool.
func (kp KeyPool) Bytes() [poolSize]byte {
	return kp.bytes
}

// TweakKey returns the 16-byte LRW tweak key K2 from pool bytes [0..16).
func (kp KeyPool) TweakKey() [16]byte {
	var out [16]byte
	copy(out[:], kp.bytes[tweakKeyOffset:tweakKeyOffset+tweakKeyLen])
	return out
}

// CipherKey returns the n-th (1-based, n in 1..3) 32-byte cipher key
// from pool bytes [32..128).
func (kp KeyPool) CipherKey(n int) []byte {
	if n < 1 || n > maxCascade {
		return nil
	}
	start := cipherKeysBase + (n-1)*cipherKeyLen
	return kp.bytes[start : start+cipherKeyLen]
}

// Zero overwrites the pool with zeros, best-effort, once the caller no
// longer needs the keying material (spec.md §6 memory hygiene note).
func (kp *KeyPool) Zero() {
	for i := range kp.bytes {
		kp.bytes[i] = 0
	}
}
