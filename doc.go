// Package gifdecoder decodes GIF87a/GIF89a image streams.
//
// It implements the GIF block grammar (header, logical screen
// descriptor, color tables, graphic control and other extensions,
// table-based images) on top of a from-scratch variable-width LZW
// decompressor whose codebook stores back-references as (offset,
// length) pairs into the output buffer rather than per-code strings.
//
// Encoding GIF, color quantization/dithering, and multi-frame
// animation compositing are out of scope; Decode always returns a
// single composited frame.
package gifdecoder
