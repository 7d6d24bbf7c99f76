package gifdecoder

import (
	"io"

	"github.com/pkg/errors"
)

// ColorTable is an ordered array of at most 256 RGB entries used to
// resolve palette indices, mirroring nicogif's GIFEncoder.colorTab /
// writePalette field-for-field: same size-flag bit layout, same
// "entries = 1 << (size_flag+1)" arithmetic the design notes call out
// as the spec-correct reading (not the "3 * 2^(n+2)" variant seen in
// one source branch).
type ColorTable struct {
	Entries []RGB
	Size    int
	Sorted  bool
}

// colorTableEntries converts a 3-bit size flag into an entry count.
func colorTableEntries(sizeFlag uint8) int {
	return 1 << (uint(sizeFlag&0x7) + 1)
}

// ParseColorTable reads 3*entries bytes of RGB triples, where entries
// = 1 << (sizeFlag+1). The table must be read in full or
// ErrInvalidColorTable is returned.
func ParseColorTable(r io.Reader, sizeFlag uint8, sorted bool) (*ColorTable, error) {
	entries := colorTableEntries(sizeFlag)
	buf := make([]byte, entries*3)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(ErrInvalidColorTable, "truncated color table data")
	}

	ct := &ColorTable{
		Entries: make([]RGB, entries),
		Size:    entries,
		Sorted:  sorted,
	}
	for i := 0; i < entries; i++ {
		ct.Entries[i] = RGB{R: buf[i*3], G: buf[i*3+1], B: buf[i*3+2]}
	}
	return ct, nil
}

// Lookup resolves a palette index to an RGB color, returning fallback
// when index is out of range.
func (ct *ColorTable) Lookup(index uint8, fallback RGB) RGB {
	if ct == nil || int(index) >= ct.Size {
		return fallback
	}
	return ct.Entries[index]
}

// defaultFallback is the spec's default out-of-range fallback color.
var defaultFallback = RGB{0, 0, 0}
