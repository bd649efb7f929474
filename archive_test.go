package tokcompress

import (
	"bytes"
	"testing"
)

func TestArchiveRoundTrip(t *testing.T) {
	input := repeatPattern([]uint32{4, 5, 6}, 12, 800)
	cfg := NewConfig(WithHierarchical(false))
	res, err := Compress(input, cfg)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	for _, useFlate := range []bool{false, true} {
		var buf bytes.Buffer
		if err := WriteArchive(&buf, res, useFlate); err != nil {
			t.Fatalf("WriteArchive(flate=%v) failed: %v", useFlate, err)
		}
		back, err := ReadArchive(&buf)
		if err != nil {
			t.Fatalf("ReadArchive(flate=%v) failed: %v", useFlate, err)
		}
		if !sequenceEqual(back.Stream, res.Stream) {
			t.Fatalf("flate=%v: archived stream does not match original stream", useFlate)
		}
		if back.OriginalLength != res.OriginalLength {
			t.Fatalf("flate=%v: OriginalLength mismatch: got %d want %d", useFlate, back.OriginalLength, res.OriginalLength)
		}

		got, err := Decompress(back.Stream, cfg)
		if err != nil {
			t.Fatalf("flate=%v: Decompress after archive round trip failed: %v", useFlate, err)
		}
		if !sequenceEqual(input, got) {
			t.Fatalf("flate=%v: full archive+decompress round trip mismatch", useFlate)
		}
	}
}

func TestReadArchiveRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("not an archive header at all............")
	if _, err := ReadArchive(buf); err == nil {
		t.Fatalf("expected error for bad magic")
	}
}
