package gifdecoder

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Options is the Go realization of §6's `options` record: a default
// color table, and whether comment extensions are validated as strict
// ASCII.
type Options struct {
	// DefaultColorTable, if set, is the color table used for an image
	// that has neither a local nor a global color table. Its zeroth
	// entry (if any) is also the fallback color for out-of-range
	// palette indices; nil means RGB(0,0,0) per §3.
	DefaultColorTable *ColorTable
	// StrictASCII rejects comment extensions containing bytes above
	// 0x7F. Plain-text and application extension payloads are not
	// checked.
	StrictASCII bool
}

// defaultColor returns the caller-chosen fallback color, or the
// spec's default of black when none was supplied.
func (o Options) defaultColor() RGB {
	if o.DefaultColorTable != nil && o.DefaultColorTable.Size > 0 {
		return o.DefaultColorTable.Entries[0]
	}
	return defaultFallback
}

// LoadOptionsJSON parses a JSON blob of the shape
//
//	{"strict_ascii": bool, "default_color": {"r": u8, "g": u8, "b": u8}}
//
// into an Options value. It uses gjson's read-only path queries
// rather than a full encoding/json struct round-trip, since every
// field is optional and the blob is small — the idiomatic gjson use
// case, and the concern nicogif's go.mod already anticipated by
// carrying gjson as a dependency without ever importing it.
func LoadOptionsJSON(data []byte) (Options, error) {
	if !gjson.ValidBytes(data) {
		return Options{}, errors.New("gifdecoder: invalid options JSON")
	}
	root := gjson.ParseBytes(data)

	opts := Options{
		StrictASCII: root.Get("strict_ascii").Bool(),
	}

	dc := root.Get("default_color")
	if dc.Exists() {
		r := dc.Get("r")
		g := dc.Get("g")
		b := dc.Get("b")
		if !r.Exists() || !g.Exists() || !b.Exists() {
			return Options{}, errors.New("gifdecoder: default_color requires r, g and b")
		}
		if r.Num < 0 || r.Num > 255 || g.Num < 0 || g.Num > 255 || b.Num < 0 || b.Num > 255 {
			return Options{}, errors.New("gifdecoder: default_color components must be in [0,255]")
		}
		opts.DefaultColorTable = &ColorTable{
			Entries: []RGB{{R: uint8(r.Num), G: uint8(g.Num), B: uint8(b.Num)}},
			Size:    1,
		}
	}

	return opts, nil
}
