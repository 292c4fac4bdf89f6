package varint

import (
	"bytes"
	"testing"
)

func TestBlocks(t *testing.T) {
	block := []byte{1, 2, 3, 4, 5}
	buf := append(PrependLength(block), 0xff, 0xff)

	extracted, n, err := GetNextBlock(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(extracted, block) {
		t.Fatalf("unexpected block: %v", extracted)
	}
	if n != len(block)+1 {
		t.Fatalf("unexpected block size: %d", n)
	}
}

func TestBlockErrors(t *testing.T) {
	if _, _, err := GetNextBlock(nil); err == nil {
		t.Fatal("empty input must fail")
	}

	// length prefix larger than the remaining data
	if _, _, err := GetNextBlock([]byte{10, 1, 2}); err == nil {
		t.Fatal("truncated block must fail")
	}

	// corrupt length prefix that overflows int must fail, not panic
	huge := append(Pack64(1<<63), 1, 2, 3)
	if _, _, err := GetNextBlock(huge); err == nil {
		t.Fatal("overflowing length prefix must fail")
	}
}
