// Package hash exposes the pluggable hash-primitive capability required by
// internal/kdf's generic HMAC and PBKDF2 implementations: an incremental
// hasher plus its block size and digest size (spec.md §4.B, §6).
//
// Three primitives are wired for the legacy TrueCrypt probe, exactly the
// set named in spec.md §4.F: SHA-1 and RIPEMD-160 (classic 64-byte-block
// hashes) and Whirlpool (a 64-byte-block, 64-byte-digest hash not present
// in any standard cryptography library, pulled from the one maintained
// Go implementation in the wild).
package hash

import (
	"crypto/sha1"
	"hash"

	"github.com/jzelinskie/whirlpool"
	"golang.org/x/crypto/ripemd160"
)

// Hasher is the incremental-hash capability: update then digest.
type Hasher interface {
	Write(p []byte) (n int, err error)
	Sum(b []byte) []byte
	Reset()
}

// Primitive is a hash-primitive factory: New() produces a fresh Hasher,
// BlockSize/DigestSize report the HMAC block size and digest size.
type Primitive struct {
	Name      string
	New       func() Hasher
	BlockSize int
	DigestSize int
}

func wrapStdlib(h func() hash.Hash) func() Hasher {
	return func() Hasher { return h() }
}

// SHA1 is the SHA-1 primitive (block 64, digest 20).
func SHA1() Primitive {
	return Primitive{
		Name:       "SHA-1",
		New:        wrapStdlib(sha1.New),
		BlockSize:  sha1.BlockSize,
		DigestSize: sha1.Size,
	}
}

// RIPEMD160 is the RIPEMD-160 primitive (block 64, digest 20).
func RIPEMD160() Primitive {
	return Primitive{
		Name:       "RIPEMD-160",
		New:        wrapStdlib(ripemd160.New),
		BlockSize:  ripemd160.BlockSize,
		DigestSize: ripemd160.Size,
	}
}

// Whirlpool is the Whirlpool primitive (block 64, digest 64).
func Whirlpool() Primitive {
	return Primitive{
		Name:       "Whirlpool",
		New:        wrapStdlib(whirlpool.New),
		BlockSize:  64,
		DigestSize: whirlpool.Size,
	}
}

// Sum computes p.New().Write(data).Sum(nil) in one call — used by the
// generic HMAC construction in internal/kdf.
func Sum(p Primitive, data []byte) []byte {
	h := p.New()
	h.Write(data)
	return h.Sum(nil)
}
