package gifdecoder

import (
	"io"

	"github.com/pkg/errors"
)

// blockCategory classifies a block discriminant or extension label
// into one of the categories the grammar's restriction field checks
// against (§4.E). There is no "Trailer" category in the restriction
// sense — the trailer is only ever valid under an unrestricted state.
type blockCategory int

const (
	categoryGraphic blockCategory = iota
	categoryControl
	categorySpecialPurpose
)

func (c blockCategory) String() string {
	switch c {
	case categoryGraphic:
		return "Graphic"
	case categoryControl:
		return "Control"
	case categorySpecialPurpose:
		return "SpecialPurpose"
	default:
		return "Unknown"
	}
}

// Discriminant bytes (§6).
const (
	discImage    byte = 0x2C
	discExtend   byte = 0x21
	discTrailer  byte = 0x3B
)

// Well-known extension labels (§4.E).
const (
	labelPlainText      byte = 0x01
	labelGraphicControl byte = 0xF9
	labelComment        byte = 0xFE
	labelApplication    byte = 0xFF
)

// classifyExtensionLabel maps an extension label byte to its category
// per §4.E's ranges: 0x00..0x7F -> Graphic, 0x80..0xF9 -> Control,
// 0xFA..0xFF -> SpecialPurpose.
func classifyExtensionLabel(label byte) blockCategory {
	switch {
	case label <= 0x7F:
		return categoryGraphic
	case label <= 0xF9:
		return categoryControl
	default:
		return categorySpecialPurpose
	}
}

// GrammarState is the grammar state the driver carries from one block
// to the next: only the optional category restriction set by a graphic
// control extension. It has no state-kind tag; decodeStream reads the
// header, logical screen descriptor and global color table in
// straight-line code before its block loop.
type GrammarState struct {
	Restriction *blockCategory // nil == "None": any category acceptable
}

func (s GrammarState) allows(c blockCategory) bool {
	return s.Restriction == nil || *s.Restriction == c
}

// decoderState carries everything the grammar driver accumulates
// while walking a stream: the parsed screen descriptor, the optional
// global color table, the lazily-created frame, and the current
// restriction.
type decoderState struct {
	opts        Options
	lsd         *LogicalScreenDescriptor
	globalTable *ColorTable
	frame       *RasterBuffer
	state       GrammarState
}

func categoryPtr(c blockCategory) *blockCategory { return &c }

// decodeStream drives the GrammarDriver state machine (§4.E) over r,
// producing a single composited frame (§1's Non-goal: no multi-frame
// animation assembly).
func decodeStream(r io.Reader, opts Options) (*DecodedImage, error) {
	if _, err := ParseHeader(r); err != nil {
		return nil, err
	}

	lsd, err := ParseLogicalScreenDescriptor(r)
	if err != nil {
		return nil, err
	}

	st := &decoderState{opts: opts, lsd: lsd}

	if lsd.GlobalColorTableFlag {
		ct, err := ParseColorTable(r, lsd.GlobalColorTableSizeFlag, lsd.SortFlag)
		if err != nil {
			return nil, wrapStage("global-color-table", KindInvalidColorTable, err)
		}
		st.globalTable = ct
	}

	for {
		disc, err := readOneByte(r, "block-type")
		if err != nil {
			return nil, err
		}

		switch disc {
		case discImage:
			if !st.state.allows(categoryGraphic) {
				return nil, wrapStage("block-type", KindUnexpectedBlockDiscriminant, ErrRestrictionViolated)
			}
			img, err := ParseTableBasedImage(r)
			if err != nil {
				return nil, err
			}
			if err := st.composite(img); err != nil {
				return nil, wrapStage("image:composite", KindImageDataError, err)
			}
			st.state = GrammarState{}

		case discExtend:
			label, err := readOneByte(r, "extension-type")
			if err != nil {
				return nil, err
			}
			category := classifyExtensionLabel(label)
			if !st.state.allows(category) {
				return nil, wrapStage("extension-type", KindUnexpectedExtensionLabel,
					errors.Wrapf(ErrUnexpectedExtLabel, "label 0x%02X is %s, restriction requires %s", label, category, *st.state.Restriction))
			}

			switch label {
			case labelGraphicControl:
				if _, err := ParseGraphicControlExtension(r); err != nil {
					return nil, err
				}
				st.state = GrammarState{Restriction: categoryPtr(categoryGraphic)}
			case labelApplication:
				if _, err := ParseApplicationExtension(r); err != nil {
					return nil, err
				}
				st.state = GrammarState{}
			case labelComment:
				if _, err := ParseCommentExtension(r, opts); err != nil {
					return nil, err
				}
				st.state = GrammarState{}
			case labelPlainText:
				if _, err := ParsePlainTextExtension(r); err != nil {
					return nil, err
				}
				st.state = GrammarState{}
			default:
				if _, err := readSubBlockChain(r, "extension:unknown"); err != nil {
					return nil, err
				}
				st.state = GrammarState{}
			}

		case discTrailer:
			if st.state.Restriction != nil {
				return nil, wrapStage("trailer", KindUnexpectedBlockDiscriminant, ErrRestrictionViolated)
			}
			return st.result(), nil

		default:
			return nil, wrapStage("block-type", KindUnexpectedBlockDiscriminant,
				errors.Wrapf(ErrUnexpectedDiscriminant, "0x%02X", disc))
		}
	}
}

func readOneByte(r io.Reader, stage string) (byte, error) {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, ioError(stage, "reading discriminant byte", err)
	}
	return buf[0], nil
}

// composite lazily creates the frame at the logical screen size,
// resolves this image's palette indices through Local > Global >
// caller-supplied default color table priority, and blits the result
// at the image's declared rectangle (§4.E).
func (st *decoderState) composite(img *TableBasedImage) error {
	if st.frame == nil {
		st.frame = NewRasterBuffer(uint32(st.lsd.Width), uint32(st.lsd.Height))
	}

	table := img.LocalTable
	if table == nil {
		table = st.globalTable
	}
	if table == nil {
		table = st.opts.DefaultColorTable
	}
	fallback := st.opts.defaultColor()

	w := int(img.Descriptor.Width)
	h := int(img.Descriptor.Height)
	pixels := make([]RGB, w*h)
	for i := range pixels {
		if i < len(img.Indices) {
			pixels[i] = table.Lookup(img.Indices[i], fallback)
		} else {
			pixels[i] = fallback
		}
	}

	return st.frame.PutRect(uint32(img.Descriptor.Left), uint32(img.Descriptor.Top), uint32(w), uint32(h), pixels)
}

// result finalizes the decode: per §8's invariant exactly one
// RasterBuffer is produced even when the stream never carried an
// image block (the degenerate header+LSD+trailer case composites to
// an all-zero frame at the logical screen size).
func (st *decoderState) result() *DecodedImage {
	if st.frame == nil {
		st.frame = NewRasterBuffer(uint32(st.lsd.Width), uint32(st.lsd.Height))
	}
	return &DecodedImage{Single: st.frame}
}
