package gifdecoder

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderValid(t *testing.T) {
	h, err := ParseHeader(bytes.NewReader([]byte("GIF89a")))
	require.NoError(t, err)
	assert.Equal(t, "89a", h.Version)

	h, err = ParseHeader(bytes.NewReader([]byte("GIF87a")))
	require.NoError(t, err)
	assert.Equal(t, "87a", h.Version)
}

func TestParseHeaderBadSignature(t *testing.T) {
	_, err := ParseHeader(bytes.NewReader([]byte("PNG89a")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSignature)
}

func TestParseHeaderUnknownVersion(t *testing.T) {
	_, err := ParseHeader(bytes.NewReader([]byte("GIF90a")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestParseHeaderTruncated(t *testing.T) {
	_, err := ParseHeader(bytes.NewReader([]byte("GIF")))
	require.Error(t, err)
}

func TestParseLogicalScreenDescriptor(t *testing.T) {
	data := []byte{
		0x01, 0x00, // width = 1
		0x01, 0x00, // height = 1
		0xF1,       // global table flag=1, color res=7, sort=0, size=1
		0x00, 0x00,
	}
	lsd, err := ParseLogicalScreenDescriptor(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, uint16(1), lsd.Width)
	assert.Equal(t, uint16(1), lsd.Height)
	assert.True(t, lsd.GlobalColorTableFlag)
	assert.Equal(t, uint8(1), lsd.GlobalColorTableSizeFlag)
}

func TestParseGraphicControlExtension(t *testing.T) {
	data := []byte{4, 0x0B, 0x0A, 0x00, 0x02, 0x00}
	gce, err := ParseGraphicControlExtension(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, gce.TransparentColorFlag)
	assert.True(t, gce.UserInputFlag)
	assert.Equal(t, uint16(10), gce.DelayTime)
	assert.Equal(t, uint8(2), gce.TransparentIndex)
}

func TestParseGraphicControlExtensionBadBlockSize(t *testing.T) {
	data := []byte{5, 0, 0, 0, 0, 0}
	_, err := ParseGraphicControlExtension(bytes.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedBlockSize)
}

func TestParseGraphicControlExtensionBadTerminator(t *testing.T) {
	data := []byte{4, 0, 0, 0, 0, 9}
	_, err := ParseGraphicControlExtension(bytes.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBlockTerminator)
}

func TestParseApplicationExtensionNetscape(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(11)
	buf.WriteString("NETSCAPE")
	buf.WriteString("2.0")
	buf.WriteByte(3) // sub-block length
	buf.Write([]byte{1, 0x05, 0x00}) // marker=1, loop count=5 little-endian
	buf.WriteByte(0)

	ext, err := ParseApplicationExtension(&buf)
	require.NoError(t, err)
	assert.True(t, ext.HasNetscapeExt)
	assert.Equal(t, uint16(5), ext.LoopCount)
}

func TestParseApplicationExtensionBadBlockSize(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(10)
	buf.WriteString("NETSCAPE")
	buf.WriteString("2.0")
	_, err := ParseApplicationExtension(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedBlockSize)
}

func TestParseCommentExtensionStrictASCIIRejectsNonASCII(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(2)
	buf.Write([]byte{'h', 0xE9})
	buf.WriteByte(0)
	_, err := ParseCommentExtension(&buf, Options{StrictASCII: true})
	require.Error(t, err)
}

func TestParseCommentExtensionDefaultAcceptsAnything(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(2)
	buf.Write([]byte{'h', 0xE9})
	buf.WriteByte(0)
	c, err := ParseCommentExtension(&buf, Options{})
	require.NoError(t, err)
	assert.Len(t, c.Text, 2)
}

func TestParseTableBasedImageSingleSolidPixel(t *testing.T) {
	var buf bytes.Buffer
	// image descriptor: left=0 top=0 w=1 h=1 packed=0
	buf.Write([]byte{0, 0, 0, 0, 1, 0, 1, 0, 0})
	// minimum code size 2, then codes [clear,1,eoi] in one sub-block
	buf.WriteByte(2)
	buf.WriteByte(2) // sub-block length
	buf.Write([]byte{0x4C, 0x01})
	buf.WriteByte(0)

	img, err := ParseTableBasedImage(&buf)
	require.NoError(t, err)
	require.Len(t, img.Indices, 1)
	assert.Equal(t, byte(1), img.Indices[0])
}

func TestParseTableBasedImageShortData(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0, 2, 0, 2, 0, 0}) // wants 4 indices
	buf.WriteByte(2)
	buf.WriteByte(2) // sub-block length
	buf.Write([]byte{0x4C, 0x01}) // codes [clear,1,eoi] decode to just one index
	buf.WriteByte(0)

	_, err := ParseTableBasedImage(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImageDataShort)
}
