package hash

import "testing"

func TestPrimitiveSizes(t *testing.T) {
	cases := []struct {
		p          Primitive
		blockSize  int
		digestSize int
	}{
		{SHA1(), 64, 20},
		{RIPEMD160(), 64, 20},
		{Whirlpool(), 64, 64},
	}
	for _, c := range cases {
		if c.p.BlockSize != c.blockSize {
			t.Errorf("%s BlockSize = %d, want %d", c.p.Name, c.p.BlockSize, c.blockSize)
		}
		if c.p.DigestSize != c.digestSize {
			t.Errorf("%s DigestSize = %d, want %d", c.p.Name, c.p.DigestSize, c.digestSize)
		}
		digest := Sum(c.p, []byte("the quick brown fox"))
		if len(digest) != c.digestSize {
			t.Errorf("%s Sum length = %d, want %d", c.p.Name, len(digest), c.digestSize)
		}
	}
}

func TestHasherIsIncremental(t *testing.T) {
	p := SHA1()
	h1 := p.New()
	h1.Write([]byte("hello "))
	h1.Write([]byte("world"))

	h2 := p.New()
	h2.Write([]byte("hello world"))

	d1 := h1.Sum(nil)
	d2 := h2.Sum(nil)
	if string(d1) != string(d2) {
		t.Error("incremental writes must match a single write of the concatenation")
	}
}

func TestResetClearsState(t *testing.T) {
	p := SHA1()
	h := p.New()
	h.Write([]byte("some data"))
	withData := h.Sum(nil)

	h.Reset()
	empty := h.Sum(nil)

	fresh := p.New()
	wantEmpty := fresh.Sum(nil)

	if string(empty) != string(wantEmpty) {
		t.Error("Reset should return hasher to the empty-input digest")
	}
	if string(withData) == string(empty) {
		t.Error("digest before reset should differ from the empty digest for non-empty input")
	}
}
