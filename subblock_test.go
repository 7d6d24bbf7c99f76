package gifdecoder

import (
	"bytes"
	"testing"
)

func TestReadSubBlockChainSingle(t *testing.T) {
	data := []byte{3, 'a', 'b', 'c', 0}
	got, err := readSubBlockChain(bytes.NewReader(data), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestReadSubBlockChainMultiple(t *testing.T) {
	data := []byte{2, 'h', 'i', 3, '!', '!', '!', 0}
	got, err := readSubBlockChain(bytes.NewReader(data), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "hi!!!" {
		t.Errorf("got %q, want %q", got, "hi!!!")
	}
}

func TestReadSubBlockChainEmpty(t *testing.T) {
	got, err := readSubBlockChain(bytes.NewReader([]byte{0}), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d bytes, want 0", len(got))
	}
}

func TestReadSubBlockChainTruncated(t *testing.T) {
	_, err := readSubBlockChain(bytes.NewReader([]byte{5, 'a', 'b'}), "test")
	if err == nil {
		t.Fatal("expected error for truncated sub-block")
	}
}

func TestSubBlockAccumulatorSpansPages(t *testing.T) {
	acc := newSubBlockAccumulator()
	big := bytes.Repeat([]byte{0x7A}, subBlockPageSize+100)
	acc.appendBytes(big)
	got := acc.bytes()
	if len(got) != len(big) {
		t.Fatalf("got %d bytes, want %d", len(got), len(big))
	}
	for i, b := range got {
		if b != 0x7A {
			t.Fatalf("byte %d: got %#x, want 0x7a", i, b)
		}
	}
}
