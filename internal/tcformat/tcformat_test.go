package tcformat

import (
	"bytes"
	"testing"
)

func TestBEDecoders(t *testing.T) {
	if got := BE16([]byte{0x12, 0x34}); got != 0x1234 {
		t.Errorf("BE16 = %#x, want 0x1234", got)
	}
	if got := BE32([]byte{0x12, 0x34, 0x56, 0x78}); got != 0x12345678 {
		t.Errorf("BE32 = %#x, want 0x12345678", got)
	}
	if got := BE64([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}); got != 0x0102030405060708 {
		t.Errorf("BE64 = %#x, want 0x0102030405060708", got)
	}
}

func TestCRC32KnownVector(t *testing.T) {
	// CRC-32 (ZIP/IEEE) of "123456789" is the canonical check value.
	if got := CRC32([]byte("123456789")); got != 0xCBF43926 {
		t.Errorf("CRC32 = %#x, want 0xCBF43926", got)
	}
}

func TestFileTimeToUnix(t *testing.T) {
	// 1601-01-01 itself maps to the negative of the epoch offset.
	if got := FileTimeToUnix(0); got != -filetimeEpochOffset {
		t.Errorf("FileTimeToUnix(0) = %d, want %d", got, -int64(filetimeEpochOffset))
	}
	// One tick count known to correspond to 2010-01-20 08:24:25 UTC.
	const ft = 129084494650000000
	const wantUnix = 1263975865
	if got := FileTimeToUnix(ft); got != wantUnix {
		t.Errorf("FileTimeToUnix(%d) = %d, want %d", ft, got, wantUnix)
	}
}

func buildValidHeader() []byte {
	h := make([]byte, DecryptedHeaderSize)
	copy(h[0:4], "TRUE")
	h[4], h[5] = 0x00, 0x05 // format version 5
	h[6], h[7] = 0x00, 0x01 // min program version 1
	// leave creation timestamps and hidden size zero
	for i := range h[MasterPoolOffset:DecryptedHeaderSize] {
		h[MasterPoolOffset+i] = byte(i)
	}
	crc := CRC32(h[MasterPoolOffset:DecryptedHeaderSize])
	h[8] = byte(crc >> 24)
	h[9] = byte(crc >> 16)
	h[10] = byte(crc >> 8)
	h[11] = byte(crc)
	return h
}

func TestParseHeaderValid(t *testing.T) {
	raw := buildValidHeader()
	h, ok, err := ParseHeader(raw)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if !ok {
		t.Fatal("expected valid header")
	}
	if h.FormatVersion != 5 {
		t.Errorf("FormatVersion = %d, want 5", h.FormatVersion)
	}
	if h.IsHidden() {
		t.Error("expected non-hidden header")
	}
	if !bytes.Equal(h.MasterPool[:], raw[MasterPoolOffset:DecryptedHeaderSize]) {
		t.Error("MasterPool extraction mismatch")
	}
}

func TestParseHeaderBadMagic(t *testing.T) {
	raw := buildValidHeader()
	raw[0] = 'X'
	_, ok, err := ParseHeader(raw)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if ok {
		t.Fatal("expected invalid header for bad magic")
	}
}

func TestParseHeaderBadCRC(t *testing.T) {
	raw := buildValidHeader()
	raw[MasterPoolOffset] ^= 0xff
	_, ok, err := ParseHeader(raw)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if ok {
		t.Fatal("expected invalid header for bad CRC")
	}
}

func TestParseHeaderWrongLength(t *testing.T) {
	_, _, err := ParseHeader(make([]byte, 100))
	if err == nil {
		t.Fatal("expected error for wrong-length input")
	}
}

func TestHiddenHeader(t *testing.T) {
	raw := buildValidHeader()
	raw[28], raw[29], raw[30], raw[31] = 0, 0, 0, 0
	raw[32], raw[33], raw[34], raw[35] = 0, 0x01, 0x00, 0x00 // 65536
	crc := CRC32(raw[MasterPoolOffset:DecryptedHeaderSize])
	raw[8] = byte(crc >> 24)
	raw[9] = byte(crc >> 16)
	raw[10] = byte(crc >> 8)
	raw[11] = byte(crc)

	h, ok, err := ParseHeader(raw)
	if err != nil || !ok {
		t.Fatalf("ParseHeader: ok=%v err=%v", ok, err)
	}
	if !h.IsHidden() {
		t.Error("expected hidden header")
	}
	if h.HiddenVolumeSize != 65536 {
		t.Errorf("HiddenVolumeSize = %d, want 65536", h.HiddenVolumeSize)
	}
}
