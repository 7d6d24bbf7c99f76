package gifdecoder

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Header is the 6-byte GIF signature + version, field-for-field the
// read-back of nicogif's writeHeader ("GIF89a").
type Header struct {
	Version string // "87a" or "89a"
}

// ParseHeader reads and validates the 6-byte GIF signature.
func ParseHeader(r io.Reader) (*Header, error) {
	buf := make([]byte, 6)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ioError("header", "reading signature", err)
	}
	if string(buf[:3]) != "GIF" {
		return nil, wrapStage("header", KindUnknownSignature, ErrUnknownSignature)
	}
	version := string(buf[3:6])
	if version != "87a" && version != "89a" {
		return nil, wrapStage("header", KindUnknownVersion, errors.Wrapf(ErrUnknownVersion, "got %q", version))
	}
	return &Header{Version: version}, nil
}

// LogicalScreenDescriptor is the 7-byte block read back from
// nicogif's writeLSD.
type LogicalScreenDescriptor struct {
	Width, Height            uint16
	GlobalColorTableFlag     bool
	ColorResolution          uint8 // bits 4..6, zero-based
	SortFlag                 bool
	GlobalColorTableSizeFlag uint8 // bits 0..2
	BackgroundColorIndex     uint8
	AspectRatio              uint8
}

// ParseLogicalScreenDescriptor reads the fixed 7-byte LSD; it always
// succeeds barring an I/O failure.
func ParseLogicalScreenDescriptor(r io.Reader) (*LogicalScreenDescriptor, error) {
	buf := make([]byte, 7)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ioError("logical-screen-descriptor", "reading LSD", err)
	}
	packed := buf[4]
	return &LogicalScreenDescriptor{
		Width:                    binary.LittleEndian.Uint16(buf[0:2]),
		Height:                   binary.LittleEndian.Uint16(buf[2:4]),
		GlobalColorTableFlag:     packed&0x80 != 0,
		ColorResolution:          (packed >> 4) & 0x07,
		SortFlag:                packed&0x08 != 0,
		GlobalColorTableSizeFlag: packed & 0x07,
		BackgroundColorIndex:     buf[5],
		AspectRatio:              buf[6],
	}, nil
}

// ImageDescriptor is the 9-byte block read back from nicogif's
// writeImageDesc.
type ImageDescriptor struct {
	Left, Top, Width, Height uint16
	LocalColorTableFlag      bool
	InterlaceFlag            bool
	SortFlag                 bool
	LocalColorTableSizeFlag  uint8
}

// ParseImageDescriptor reads the fixed 9-byte image descriptor that
// follows the 0x2C discriminant.
func ParseImageDescriptor(r io.Reader) (*ImageDescriptor, error) {
	buf := make([]byte, 9)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ioError("image-descriptor", "reading image descriptor", err)
	}
	packed := buf[8]
	return &ImageDescriptor{
		Left:                    binary.LittleEndian.Uint16(buf[0:2]),
		Top:                     binary.LittleEndian.Uint16(buf[2:4]),
		Width:                   binary.LittleEndian.Uint16(buf[4:6]),
		Height:                  binary.LittleEndian.Uint16(buf[6:8]),
		LocalColorTableFlag:     packed&0x80 != 0,
		InterlaceFlag:           packed&0x40 != 0,
		SortFlag:                packed&0x20 != 0,
		LocalColorTableSizeFlag: packed & 0x07,
	}, nil
}

// GraphicControlExtension is the 0x21 0xF9 extension body, read back
// from nicogif's writeGraphicCtrlExt.
type GraphicControlExtension struct {
	DisposalMethod       uint8 // bits 2..4
	UserInputFlag        bool
	TransparentColorFlag bool
	DelayTime            uint16
	TransparentIndex     uint8
}

// ParseGraphicControlExtension reads the 6 bytes following the 0xF9
// label: [block_size=4, packed, delay_lo, delay_hi, transparent_index,
// terminator=0].
func ParseGraphicControlExtension(r io.Reader) (*GraphicControlExtension, error) {
	buf := make([]byte, 6)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ioError("extension:graphic-control", "reading GCE", err)
	}
	if buf[0] != 4 {
		return nil, wrapStage("extension:graphic-control", KindUnexpectedBlockSize,
			errors.Wrapf(ErrUnexpectedBlockSize, "got %d want 4", buf[0]))
	}
	if buf[5] != 0 {
		return nil, wrapStage("extension:graphic-control", KindInvalidBlockTerminator, ErrInvalidBlockTerminator)
	}
	packed := buf[1]
	return &GraphicControlExtension{
		DisposalMethod:       (packed >> 2) & 0x07,
		UserInputFlag:        packed&0x02 != 0,
		TransparentColorFlag: packed&0x01 != 0,
		DelayTime:            binary.LittleEndian.Uint16(buf[2:4]),
		TransparentIndex:     buf[4],
	}, nil
}

// ApplicationExtension is the 0x21 0xFF extension: an 8-byte
// application identifier, a 3-byte authentication code, and a
// sub-block chain payload. The well-known NETSCAPE2.0 looping
// extension is additionally decoded into LoopCount when recognised
// (a dropped-feature supplement grounded on the original source's
// application_extension.rs and on nicogif's own writeNetscapeExt,
// whose sub-block shape this mirrors exactly); the loop count is
// recorded but never acted on, since animation assembly is out of
// scope.
type ApplicationExtension struct {
	Identifier     string
	AuthCode       string
	Payload        []byte
	LoopCount      uint16
	HasNetscapeExt bool
}

// ParseApplicationExtension reads the fixed 11-byte header (block
// size must be 11) then the variable sub-block chain.
func ParseApplicationExtension(r io.Reader) (*ApplicationExtension, error) {
	head := make([]byte, 12) // block_size(1) + id(8) + auth(3)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, ioError("extension:application", "reading application header", err)
	}
	if head[0] != 11 {
		return nil, wrapStage("extension:application", KindUnexpectedBlockSize,
			errors.Wrapf(ErrUnexpectedBlockSize, "got %d want 11", head[0]))
	}
	ext := &ApplicationExtension{
		Identifier: string(head[1:9]),
		AuthCode:   string(head[9:12]),
	}
	payload, err := readSubBlockChain(r, "extension:application")
	if err != nil {
		return nil, err
	}
	ext.Payload = payload
	if ext.Identifier == "NETSCAPE" && ext.AuthCode == "2.0" && len(payload) == 3 &&
		payload[0] == 1 {
		ext.HasNetscapeExt = true
		ext.LoopCount = binary.LittleEndian.Uint16(payload[1:3])
	}
	return ext, nil
}

// CommentExtension is the 0x21 0xFE extension: just a sub-block
// chain. When opts.StrictASCII is set, non-ASCII bytes are rejected;
// the default accepts any UTF-8 per §4.D.
type CommentExtension struct {
	Text []byte
}

// ParseCommentExtension reads the comment's sub-block chain.
func ParseCommentExtension(r io.Reader, opts Options) (*CommentExtension, error) {
	payload, err := readSubBlockChain(r, "extension:comment")
	if err != nil {
		return nil, err
	}
	if opts.StrictASCII {
		for _, b := range payload {
			if b > 0x7F {
				return nil, wrapStage("extension:comment", KindUnexpectedExtensionLabel,
					errors.New("comment extension contains non-ASCII byte under strict_ascii"))
			}
		}
	}
	return &CommentExtension{Text: payload}, nil
}

// PlainTextExtension is the 0x21 0x01 extension: 12 fixed parameter
// bytes followed by a sub-block chain. Rendering plain text is out of
// scope (§1); this parser only consumes the bytes so the grammar can
// continue.
type PlainTextExtension struct {
	Left, Top, Width, Height     uint16
	CellWidth, CellHeight        uint8
	ForegroundIndex, BackgroundIndex uint8
	Text                         []byte
}

// ParsePlainTextExtension reads the 13-byte header (block size +
// 12 parameter bytes) then the text sub-block chain.
func ParsePlainTextExtension(r io.Reader) (*PlainTextExtension, error) {
	head := make([]byte, 13)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, ioError("extension:plain-text", "reading plain text header", err)
	}
	if head[0] != 12 {
		return nil, wrapStage("extension:plain-text", KindUnexpectedBlockSize,
			errors.Wrapf(ErrUnexpectedBlockSize, "got %d want 12", head[0]))
	}
	body := head[1:]
	pte := &PlainTextExtension{
		Left:             binary.LittleEndian.Uint16(body[0:2]),
		Top:              binary.LittleEndian.Uint16(body[2:4]),
		Width:            binary.LittleEndian.Uint16(body[4:6]),
		Height:           binary.LittleEndian.Uint16(body[6:8]),
		CellWidth:        body[8],
		CellHeight:       body[9],
		ForegroundIndex:  body[10],
		BackgroundIndex:  body[11],
	}
	text, err := readSubBlockChain(r, "extension:plain-text")
	if err != nil {
		return nil, err
	}
	pte.Text = text
	return pte, nil
}

// TableBasedImage is a fully decoded image block: its descriptor, an
// optional local color table, and the LZW-decompressed palette
// indices (length >= Width*Height, row-major, transmission order —
// interlaced images are not four-pass reordered per §1's Non-goal).
type TableBasedImage struct {
	Descriptor *ImageDescriptor
	LocalTable *ColorTable
	Indices    []byte
}

// ParseTableBasedImage reads the 9-byte image descriptor, an optional
// local color table, the minimum code size byte, and the image data
// sub-block chain, then runs DecodeLZW over the concatenated payload.
func ParseTableBasedImage(r io.Reader) (*TableBasedImage, error) {
	desc, err := ParseImageDescriptor(r)
	if err != nil {
		return nil, err
	}

	img := &TableBasedImage{Descriptor: desc}

	if desc.LocalColorTableFlag {
		ct, err := ParseColorTable(r, desc.LocalColorTableSizeFlag, desc.SortFlag)
		if err != nil {
			return nil, wrapStage("image:local-color-table", KindInvalidColorTable, err)
		}
		img.LocalTable = ct
	}

	mcsBuf := make([]byte, 1)
	if _, err := io.ReadFull(r, mcsBuf); err != nil {
		return nil, ioError("image:minimum-code-size", "reading minimum code size", err)
	}

	data, err := readSubBlockChain(r, "image:data")
	if err != nil {
		return nil, err
	}

	indices, err := DecodeLZW(bytes.NewReader(data), int(mcsBuf[0]))
	if err != nil {
		return nil, err
	}

	want := int(desc.Width) * int(desc.Height)
	if len(indices) < want {
		return nil, wrapStage("image:data", KindImageDataError, ErrImageDataShort)
	}
	img.Indices = indices
	return img, nil
}
