package volume

import (
	"context"
	"fmt"

	"tcrecover/internal/blockcipher"
	"tcrecover/internal/errs"
	"tcrecover/internal/hash"
	"tcrecover/internal/kdf"
	"tcrecover/internal/lrw"
	"tcrecover/internal/progress"
	"tcrecover/internal/tcformat"
	"tcrecover/internal/tclog"
)

// hmacTrial pairs a hash primitive with its name and PBKDF2 iteration
// count, in the exact order the probe must try them (spec.md §4.F).
// The Whirlpool iteration count is 1000, not 2000 — a deliberate
// format difference from the other two primitives.
type hmacTrial struct {
	primitive  hash.Primitive
	name       string
	iterations int
}

var hmacTrials = []hmacTrial{
	{hash.SHA1(), "SHA-1", 2000},
	{hash.RIPEMD160(), "RIPEMD-160", 2000},
	{hash.Whirlpool(), "Whirlpool", 1000},
}

// variant identifies which salt/header slot of the container a trial
// targets.
type variant struct {
	name string
	// offset computes the byte offset of the 64-byte salt given the
	// container's total length.
	offset func(fileLen int64) int64
}

var variants = []variant{
	{name: "normal", offset: func(int64) int64 { return 0 }},
	{name: "hidden", offset: func(fileLen int64) int64 { return fileLen - tcformat.HiddenRegionSize }},
}

// Unlock performs the brute-force (variant, hash, cascade) search of
// spec.md §4.F against src and returns the resulting State on the
// first CRC-validated combination, or ErrNotUnlockable if none
// validates. ctx may be used for cooperative cancellation between
// trials; it has no effect on which combination is found, only on how
// promptly the search can be abandoned (spec.md §5).
func Unlock(ctx context.Context, src Source, password []byte, reporter progress.Reporter) (*State, error) {
	fileLen := src.Len()
	if fileLen < tcformat.MinFileLen {
		return nil, errs.NewMalformedInput("volume: file too short to contain a header", fileLen, tcformat.MinFileLen)
	}

	totalTrials := len(variants) * len(hmacTrials) * len(blockcipher.Cascades)
	trialsDone := 0

	for _, v := range variants {
		if v.name == "hidden" && fileLen < tcformat.HiddenRegionSize {
			trialsDone += len(hmacTrials) * len(blockcipher.Cascades)
			continue
		}

		off := v.offset(fileLen)
		salt := make([]byte, tcformat.SaltSize)
		if err := readExact(src, off, salt); err != nil {
			return nil, err
		}
		encHeader := make([]byte, tcformat.EncryptedHeaderSize)
		if err := readExact(src, off+tcformat.SaltSize, encHeader); err != nil {
			return nil, err
		}

		for _, trial := range hmacTrials {
			if err := ctx.Err(); err != nil {
				return nil, errs.ErrCancelled
			}

			pool, err := kdf.DeriveKeyPool(trial.primitive, password, salt, trial.iterations)
			if err != nil {
				return nil, err
			}
			headerTweak := pool.TweakKey()
			headerKeys := [][]byte{pool.CipherKey(1), pool.CipherKey(2), pool.CipherKey(3)}

			for _, cascade := range blockcipher.Cascades {
				trialsDone++
				progress.Report(reporter, fmt.Sprintf("trying %s / %s", trial.name, v.name),
					float32(trialsDone)/float32(totalTrials), blockcipher.CascadeName(cascade))

				chain, err := blockcipher.NewChain(cascade, headerKeys)
				if err != nil {
					return nil, err
				}

				decrypted, err := lrw.Many(chain.Decrypt, headerTweak, 1, encHeader)
				if err != nil {
					return nil, err
				}

				hdr, ok, err := tcformat.ParseHeader(decrypted)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}

				masterPool, err := kdf.NewKeyPoolFromBytes(hdr.MasterPool[:128])
				if err != nil {
					return nil, err
				}
				masterKeys := [][]byte{
					masterPool.CipherKey(1),
					masterPool.CipherKey(2),
					masterPool.CipherKey(3),
				}
				masterChain, err := blockcipher.NewChain(cascade, masterKeys)
				if err != nil {
					return nil, err
				}
				masterTweak := masterPool.TweakKey()

				tclog.Info("volume unlocked",
					tclog.String("variant", v.name),
					tclog.String("hmac", trial.name),
					tclog.String("cascade", blockcipher.CascadeName(cascade)))

				progress.Report(reporter, "unlocked", 1.0, blockcipher.CascadeName(cascade))

				return &State{
					src:          src,
					fileLen:      fileLen,
					variant:      v.name,
					hmacName:     trial.name,
					cascade:      cascade,
					header:       hdr,
					masterChain:  masterChain,
					masterTweak:  masterTweak,
					hiddenSize:   hdr.HiddenVolumeSize,
				}, nil
			}
		}
	}

	return nil, errs.ErrNotUnlockable
}

// IsValidHeader reports whether a 448-byte decrypted header passes
// the magic-and-CRC check of spec.md §4.F, independent of an unlock
// attempt — exposed for diagnostics and direct testing of the
// validation rule.
func IsValidHeader(decrypted []byte) bool {
	_, ok, err := tcformat.ParseHeader(decrypted)
	return err == nil && ok
}
