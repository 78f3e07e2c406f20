// Package blockcipher provides the three ECB-mode 16-byte block
// ciphers the legacy cascade format can combine — Rijndael (AES),
// Serpent, and Twofish — plus the Chain type that composes 1-3 of
// them in series (spec.md §4.E).
//
// Grounded on the teacher's CipherSuite in internal/crypto/cipher.go
// (key-already-installed Cipher capability, explicit encrypt/decrypt
// ordering documented as CRITICAL) and on the cipher-chain dispatch
// of original_source/src/truecrypt.py, generalized from a single
// XChaCha20+Serpent pairing to an arbitrary ordered list of the three
// legacy ciphers.
package blockcipher

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/Picocrypt/serpent"
	"golang.org/x/crypto/twofish"

	"tcrecover/internal/errs"
)

// KeySize is the fixed 256-bit key size used for all three ciphers in
// every cascade (spec.md §4.E).
const KeySize = 32

// BlockSize is the fixed cipher block size.
const BlockSize = 16

// Cipher is a single-block ECB encrypt/decrypt capability with its
// key already installed.
type Cipher interface {
	Encrypt(dst, src []byte)
	Decrypt(dst, src []byte)
}

type stdlibCipher struct {
	block cipher.Block
}

func (c stdlibCipher) Encrypt(dst, src []byte) { c.block.Encrypt(dst, src) }
func (c stdlibCipher) Decrypt(dst, src []byte) { c.block.Decrypt(dst, src) }

// NewRijndael builds the Rijndael (AES) cipher from a 32-byte key,
// using crypto/aes — AES-256 is a drop-in match for the 128-bit-block,
// 256-bit-key Rijndael variant the legacy format specifies.
func NewRijndael(key []byte) (Cipher, error) {
	if len(key) != KeySize {
		return nil, errs.NewMalformedInput("rijndael: key must be 32 bytes", int64(len(key)), KeySize)
	}
	b, err := aes.NewCipher(key)
	if err != nil {
		return nil, errs.NewIOError("aes.NewCipher", err)
	}
	return stdlibCipher{block: b}, nil
}

// NewSerpent builds the Serpent cipher from a 32-byte key.
func NewSerpent(key []byte) (Cipher, error) {
	if len(key) != KeySize {
		return nil, errs.NewMalformedInput("serpent: key must be 32 bytes", int64(len(key)), KeySize)
	}
	b, err := serpent.NewCipher(key)
	if err != nil {
		return nil, errs.NewIOError("serpent.NewCipher", err)
	}
	return stdlibCipher{block: b}, nil
}

// NewTwofish builds the Twofish cipher from a 32-byte key.
func NewTwofish(key []byte) (Cipher, error) {
	if len(key) != KeySize {
		return nil, errs.NewMalformedInput("twofish: key must be 32 bytes", int64(len(key)), KeySize)
	}
	b, err := twofish.NewCipher(key)
	if err != nil {
		return nil, errs.NewIOError("twofish.NewCipher", err)
	}
	return stdlibCipher{block: b}, nil
}

// Name identifies one of the three legacy ciphers.
type Name int

const (
	Rijndael Name = iota
	Serpent
	Twofish
)

func (n Name) String() string {
	switch n {
	case Rijndael:
		return "Rijndael"
	case Serpent:
		return "Serpent"
	case Twofish:
		return "Twofish"
	default:
		return "Unknown"
	}
}

func newNamed(n Name, key []byte) (Cipher, error) {
	switch n {
	case Rijndael:
		return NewRijndael(key)
	case Serpent:
		return NewSerpent(key)
	case Twofish:
		return NewTwofish(key)
	default:
		return nil, errs.NewMalformedInput("blockcipher: unknown cipher name", int64(n), int64(Twofish))
	}
}

// Cascades is the fixed 8-entry list of cipher chains, in the exact
// order the unlocker must try them (spec.md §4.E).
var Cascades = [][]Name{
	{Rijndael},
	{Serpent},
	{Twofish},
	{Twofish, Rijndael},
	{Serpent, Twofish, Rijndael},
	{Rijndael, Serpent},
	{Rijndael, Twofish, Serpent},
	{Serpent, Twofish},
}

// CascadeName renders a cascade as a hyphen-joined name, outermost
// cipher last — e.g. the cascade {Serpent, Twofish, Rijndael} (applied
// Serpent-then-Twofish-then-Rijndael on encrypt) renders as
// "Rijndael-Twofish-Serpent". This matches the original CipherChain's
// get_name(), which reports the chain in reversed (innermost-cipher-
// first, as seen from the ciphertext) order.
func CascadeName(names []Name) string {
	s := ""
	for i := len(names) - 1; i >= 0; i-- {
		if i != len(names)-1 {
			s += "-"
		}
		s += names[i].String()
	}
	return s
}

// Chain holds an ordered list of 1-3 keyed block ciphers. Encrypt
// applies C_1, then C_2, …, then C_n; Decrypt applies C_n, …, then
// C_1 (spec.md §4.E).
type Chain struct {
	names   []Name
	ciphers []Cipher
}

// NewChain builds a Chain for the given cascade and installs keys:
// keys[i] is the 32-byte key for names[i]. len(keys) must be >=
// len(names); extra keys are ignored (spec.md §4.E: "for two-cipher
// cascades, the first two are used and the third is ignored").
func NewChain(names []Name, keys [][]byte) (*Chain, error) {
	if len(names) < 1 || len(names) > 3 {
		return nil, errs.NewMalformedInput("blockcipher: cascade must have 1-3 ciphers", int64(len(names)), 1)
	}
	if len(keys) < len(names) {
		return nil, errs.NewMalformedInput("blockcipher: not enough keys for cascade", int64(len(keys)), int64(len(names)))
	}

	ciphers := make([]Cipher, len(names))
	for i, n := range names {
		c, err := newNamed(n, keys[i])
		if err != nil {
			return nil, err
		}
		ciphers[i] = c
	}
	return &Chain{names: names, ciphers: ciphers}, nil
}

// Names returns the cascade's cipher order.
func (c *Chain) Names() []Name {
	return c.names
}

// Encrypt applies the chain outer-to-inner: C_1, C_2, …, C_n.
func (c *Chain) Encrypt(block []byte) []byte {
	buf := make([]byte, BlockSize)
	src := block
	for _, cipher := range c.ciphers {
		cipher.Encrypt(buf, src)
		src = append([]byte{}, buf...)
	}
	return src
}

// Decrypt applies the chain inner-to-outer: C_n, C_{n-1}, …, C_1.
func (c *Chain) Decrypt(block []byte) []byte {
	buf := make([]byte, BlockSize)
	src := block
	for i := len(c.ciphers) - 1; i >= 0; i-- {
		c.ciphers[i].Decrypt(buf, src)
		src = append([]byte{}, buf...)
	}
	return src
}
