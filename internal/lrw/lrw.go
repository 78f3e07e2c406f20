// Package lrw implements the LRW tweakable block-cipher mode used to
// whiten each 16-byte block of a TrueCrypt header or sector with a
// position-dependent tweak before/after the cipher chain runs
// (spec.md §4.D).
//
// Ported from the bjrn.se lrw.py LRW/LRWMany functions in
// original_source/src/lrw.py, adapted to operate on fixed 16-byte
// blocks via internal/gf2n's Element type instead of Python bignums.
package lrw

import (
	"tcrecover/internal/errs"
	"tcrecover/internal/gf2n"
)

// BlockSize is the fixed LRW block size in bytes.
const BlockSize = 16

// CipherFunc applies a single keyed block-cipher operation (either
// the encrypt or decrypt direction of an already-keyed chain) to
// exactly one 16-byte block.
type CipherFunc func(block []byte) []byte

func xor16(a, b []byte) []byte {
	out := make([]byte, BlockSize)
	for i := 0; i < BlockSize; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// tweak computes T = K2 * i in GF(2^128), encoded as 16 bytes
// big-endian.
func tweak(k2 [16]byte, i uint64) [16]byte {
	k2Elem := gf2n.BytesToElement(k2[:])
	iElem := gf2n.Element{Lo: i}
	t := gf2n.Mul(k2Elem, iElem)
	return gf2n.ElementToBytes(t)
}

// Block performs a single LRW operation: C = T ⊕ E(T ⊕ P) where
// T = K2·i. cipherFunc must already have its key installed; passing
// the chain's Decrypt function instead of Encrypt computes the
// inverse, since T is XORed on both sides (spec.md §4.D).
//
// i is the 1-based LRW block index; i == 0 is a programming error.
func Block(cipherFunc CipherFunc, tweakKey [16]byte, i uint64, block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, errs.NewMalformedInput("lrw: block must be 16 bytes", int64(len(block)), BlockSize)
	}
	if i == 0 {
		return nil, errs.NewMalformedInput("lrw: block index must be >= 1", 0, 1)
	}

	t := tweak(tweakKey, i)
	masked := xor16(t[:], block)
	enc := cipherFunc(masked)
	return xor16(t[:], enc), nil
}

// Many applies Block to each consecutive 16-byte sub-block of data,
// using indices i_start, i_start+1, … (spec.md §4.D). len(data) must
// be a multiple of 16. Sub-blocks are independent of one another and
// may be computed in any order or in parallel.
func Many(cipherFunc CipherFunc, tweakKey [16]byte, iStart uint64, data []byte) ([]byte, error) {
	if len(data)%BlockSize != 0 {
		return nil, errs.NewMalformedInput("lrw: data length must be a multiple of 16", int64(len(data)), BlockSize)
	}
	if iStart == 0 {
		return nil, errs.NewMalformedInput("lrw: start index must be >= 1", 0, 1)
	}

	numBlocks := len(data) / BlockSize
	out := make([]byte, 0, len(data))
	for b := 0; b < numBlocks; b++ {
		sub := data[b*BlockSize : (b+1)*BlockSize]
		res, err := Block(cipherFunc, tweakKey, iStart+uint64(b), sub)
		if err != nil {
			return nil, err
		}
		out = append(out, res...)
	}
	return out, nil
}
