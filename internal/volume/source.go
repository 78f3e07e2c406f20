// Package volume implements the legacy TrueCrypt volume-unlock probe
// (spec.md §4.F) and the random-access sector reader it produces
// (spec.md §4.G): a brute-force search over {hash × cascade × variant}
// that performs PBKDF2 key derivation, tentative LRW header decryption,
// and CRC-32 validation, followed by on-demand sector decryption of
// the body.
//
// Grounded on the teacher's internal/volume/context.go (ProgressReporter
// shape, OperationContext-style "own the handle, zero on Close"
// lifecycle) and internal/volume/decrypt.go (the overall unlock
// pipeline as a sequence of named stages), re-pointed from Picocrypt's
// Argon2/XChaCha20 pipeline to the legacy PBKDF2/LRW/cascade pipeline
// of original_source/src/truecrypt.py's TrueCryptVolume constructor.
package volume

import (
	"io"
	"os"

	"tcrecover/internal/errs"
)

// Source is a random-access byte container: the volume file. Seek
// relative to end must be supported for the hidden-volume probe
// (spec.md §6); modeling that as an absolute Len()+ReadAt() pair
// rather than a stateful seek cursor keeps the probe's two variants
// (normal at offset 0, hidden at file_len-1536) reentrant and safe to
// read from concurrently if a caller chooses to parallelize trials.
type Source interface {
	// Len returns the total size of the underlying container in bytes.
	Len() int64
	// ReadAt reads len(p) bytes starting at absolute offset off,
	// exactly like io.ReaderAt.
	ReadAt(p []byte, off int64) (int, error)
}

// fileSource adapts an *os.File to Source.
type fileSource struct {
	f    *os.File
	size int64
}

// OpenFile opens path read-only and wraps it as a Source.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.NewIOError("open", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errs.NewIOError("stat", err)
	}
	return &fileSource{f: f, size: info.Size()}, nil
}

func (s *fileSource) Len() int64 { return s.size }

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) {
	return s.f.ReadAt(p, off)
}

// Close releases the underlying file handle, if the Source is
// file-backed.
func Close(s Source) error {
	if fs, ok := s.(*fileSource); ok {
		return fs.f.Close()
	}
	return nil
}

// readExact reads exactly len(buf) bytes from src at off, wrapping
// short reads and underlying errors in errs.IOError.
func readExact(src Source, off int64, buf []byte) error {
	n, err := src.ReadAt(buf, off)
	if err != nil && err != io.EOF {
		return errs.NewIOError("read-at", err)
	}
	if n != len(buf) {
		return errs.NewMalformedInput("volume: short read", int64(n), int64(len(buf)))
	}
	return nil
}
