package gifdecoder

import "io"

// Fixed bounds for the GIF-variant LZW codebook (§4.C).
const (
	lzwMaxCode      = 0xFFF
	lzwMaxTableSize = 4096
	// lzwFullAt is the next_index value at which the codebook stops
	// growing: "is full when next_index >= 4095" (§3).
	lzwFullAt = 4095
)

// codebookEntry is one slot of the in-place LZW codebook: a word is
// represented as a back-reference (offset, length) into the decoder's
// own output buffer — "the prefix" — followed by one trailing
// suffix byte, never as a freshly allocated string. Predefined codes
// (values below the clear code) have no prefix: their word is just
// the single suffix byte.
type codebookEntry struct {
	hasPrefix bool
	offset    int
	length    int
	suffix    byte
	suffixSet bool
}

// lzwCodebook is the (offset,length) back-reference codebook from §3.
type lzwCodebook struct {
	entries   [lzwMaxTableSize]codebookEntry
	nextIndex int // -1 encodes the spec's "None"
	clearCode uint16
	eoiCode   uint16
}

func newLZWCodebook(minCodeSize int) *lzwCodebook {
	cb := &lzwCodebook{nextIndex: -1}
	cb.clearCode = uint16(1) << uint(minCodeSize)
	cb.eoiCode = cb.clearCode + 1
	cb.reset()
	return cb
}

// reset re-initialises predefined codes [0, clearCode) and forgets
// every learned entry, matching a Clear code or construction.
func (cb *lzwCodebook) reset() {
	for c := uint16(0); c < cb.clearCode; c++ {
		cb.entries[c] = codebookEntry{hasPrefix: false, suffix: byte(c), suffixSet: true}
	}
	cb.nextIndex = -1
}

func (cb *lzwCodebook) full() bool {
	return cb.nextIndex >= lzwFullAt
}

// DecodeLZW decompresses the GIF-variant LZW stream read from r (the
// concatenation of an image's data sub-blocks, already stripped of
// their length prefixes) using minCodeSize as the initial code width.
// It returns the decoded palette-index bytes, or a taxonomy error on
// any malformed input; no partial output is ever returned.
func DecodeLZW(r io.Reader, minCodeSize int) ([]byte, error) {
	if minCodeSize < 2 || minCodeSize > 10 {
		return nil, wrapStage("lzw", KindLZWInvalidMinimumCodeSize, ErrLZWInvalidMinCodeSize)
	}

	cb := newLZWCodebook(minCodeSize)
	br := NewBitReader(r)

	codeBits := minCodeSize + 1
	output := make([]byte, 0, 256)
	prevCode := -1
	pendingIndex := -1

	for {
		code, err := br.ReadCode(codeBits)
		if err != nil {
			return nil, wrapStage("lzw", KindLZWUnexpectedEOF, ErrUnexpectedEOF)
		}

		if code == cb.eoiCode {
			return output, nil
		}

		if code == cb.clearCode {
			cb.reset()
			codeBits = minCodeSize + 1
			prevCode = -1
			pendingIndex = -1
			continue
		}

		if cb.nextIndex == -1 {
			if code >= cb.clearCode {
				return nil, wrapStage("lzw", KindLZWTooLargeCode, ErrLZWTooLargeCode)
			}
		} else if int(code) > cb.nextIndex {
			return nil, wrapStage("lzw", KindLZWTooLargeCode, ErrLZWTooLargeCode)
		}

		wordStart := len(output)
		var firstChar byte

		if int(code) == cb.nextIndex {
			// KwKwK: the about-to-be-created entry. Its prefix was
			// registered in the previous iteration's step (h) as a
			// reference to the full previous word.
			if prevCode < 0 || !cb.entries[code].hasPrefix {
				return nil, wrapStage("lzw", KindLZWPrefixMismatch, ErrLZWPrefixMismatch)
			}
			e := cb.entries[code]
			output = append(output, output[e.offset:e.offset+e.length]...)
			firstChar = output[e.offset]
			output = append(output, firstChar)
		} else {
			e := cb.entries[code]
			if e.hasPrefix {
				output = append(output, output[e.offset:e.offset+e.length]...)
				output = append(output, e.suffix)
				firstChar = output[wordStart]
			} else {
				output = append(output, e.suffix)
				firstChar = e.suffix
			}
		}

		// Step f: complete the entry registered in the previous
		// iteration's step (h), now that this iteration's first
		// character is known.
		if pendingIndex >= 0 && !cb.entries[pendingIndex].suffixSet {
			cb.entries[pendingIndex].suffix = firstChar
			cb.entries[pendingIndex].suffixSet = true
		}

		// Step g: advance next_index and the code width.
		if cb.nextIndex == -1 {
			cb.nextIndex = int(cb.clearCode) + 2
		} else {
			cb.nextIndex++
		}
		if cb.nextIndex == (1<<uint(codeBits)) && codeBits < 12 {
			codeBits++
		}

		// Step h: register a new incomplete entry, unless full.
		if cb.nextIndex < lzwFullAt {
			cb.entries[cb.nextIndex] = codebookEntry{
				hasPrefix: true,
				offset:    wordStart,
				length:    len(output) - wordStart,
			}
			pendingIndex = cb.nextIndex
		} else {
			pendingIndex = -1
		}

		prevCode = int(code)
	}
}
