package volume

import (
	"tcrecover/internal/blockcipher"
	"tcrecover/internal/errs"
	"tcrecover/internal/lrw"
	"tcrecover/internal/tcformat"
)

// State is the unlocked-volume record of spec.md §3: an ownership-
// exclusive view into the file, the validated header, the master
// cipher chain, the master tweak key, and the hidden-volume size.
// Its lifetime begins at a successful Unlock and ends at Close.
type State struct {
	src     Source
	fileLen int64
	variant string

	hmacName string
	cascade  []blockcipher.Name

	header      tcformat.Header
	masterChain *blockcipher.Chain
	masterTweak [16]byte
	hiddenSize  uint64

	closed bool
}

// ReadSector decrypts and returns the 512-byte sector at 1-based
// logical position index, or an empty slice past the end of the
// volume (spec.md §4.G). index must be >= 1; index 0 is a programming
// error.
func (s *State) ReadSector(index uint64) ([]byte, error) {
	if s.closed {
		return nil, errs.NewMalformedInput("volume: read on closed state", 0, 1)
	}
	if index == 0 {
		return nil, errs.NewMalformedInput("volume: sector index must be >= 1", 0, 1)
	}

	lrwIndex := (index-1)*32 + 1

	var mod int64
	lastSectorOffset := int64(tcformat.SectorSize)
	if s.hiddenSize > 0 {
		mod = s.fileLen - int64(s.hiddenSize) - tcformat.HiddenRegionSize - tcformat.SectorSize
		lastSectorOffset = tcformat.SectorSize + tcformat.HiddenRegionSize
	}
	seekTo := mod + tcformat.SectorSize*int64(index)

	if seekTo > s.fileLen-lastSectorOffset {
		return []byte{}, nil
	}

	raw := make([]byte, tcformat.SectorSize)
	if err := readExact(s.src, seekTo, raw); err != nil {
		return nil, err
	}

	return lrw.Many(s.masterChain.Decrypt, s.masterTweak, lrwIndex, raw)
}

// SectorCount returns the number of addressable sectors: hidden_size/512
// for a hidden volume, or (file_len-512)/512 otherwise (spec.md §4.G).
func (s *State) SectorCount() uint64 {
	if s.hiddenSize > 0 {
		return s.hiddenSize / tcformat.SectorSize
	}
	return uint64(s.fileLen-tcformat.SectorSize) / tcformat.SectorSize
}

// Close releases the underlying Source (if file-backed) and
// best-effort zeros the master tweak key. The cipher chain's
// installed key schedules are not independently zeroable through the
// blockcipher.Cipher interface; callers relying on memory hygiene for
// those should drop all references to the State promptly.
func (s *State) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	for i := range s.masterTweak {
		s.masterTweak[i] = 0
	}
	return Close(s.src)
}

// Variant reports which slot of the container unlocked: "normal" or
// "hidden".
func (s *State) Variant() string { return s.variant }

// CascadeName renders the winning cipher cascade, e.g.
// "Rijndael-Twofish-Serpent".
func (s *State) CascadeName() string { return blockcipher.CascadeName(s.cascade) }

// HMACName reports the winning HMAC primitive's name.
func (s *State) HMACName() string { return s.hmacName }

// HiddenSize returns the embedded hidden-volume size in bytes, or 0
// if this volume does not carry one.
func (s *State) HiddenSize() uint64 { return s.hiddenSize }

// FormatVersion returns the decrypted header's format-version field.
func (s *State) FormatVersion() uint16 { return s.header.FormatVersion }

// VolumeCreatedAt returns the volume-creation FILETIME, converted to
// Unix seconds.
func (s *State) VolumeCreatedAt() int64 { return s.header.VolumeCreatedAt }

// HeaderCreatedAt returns the header-creation FILETIME, converted to
// Unix seconds.
func (s *State) HeaderCreatedAt() int64 { return s.header.HeaderCreatedAt }

// HeaderHex renders the 448-byte decrypted header as hex, for
// diagnostics only — not security-critical (spec.md §6).
func (s *State) HeaderHex() string { return s.header.Hex() }

// MasterPoolHex renders the 256-byte master key pool (header bytes
// 192..448) as hex, for diagnostics only.
func (s *State) MasterPoolHex() string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 0, len(s.header.MasterPool)*2)
	for _, b := range s.header.MasterPool {
		out = append(out, hexDigits[b>>4], hexDigits[b&0x0f])
	}
	return string(out)
}
