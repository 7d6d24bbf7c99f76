package gifdecoder

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind identifies which member of the decoder's error taxonomy
// a failure belongs to, independent of which parser stage raised it.
type ErrorKind int

const (
	// KindIO wraps an underlying read failure from the byte stream.
	KindIO ErrorKind = iota
	KindUnknownSignature
	KindUnknownVersion
	KindUnexpectedBlockDiscriminant
	KindUnexpectedExtensionLabel
	KindUnexpectedBlockSize
	KindInvalidBlockTerminator
	KindInvalidColorTable
	KindLZWUnexpectedEOF
	KindLZWInvalidMinimumCodeSize
	KindLZWTooLargeCode
	KindLZWPrefixMismatch
	KindImageDataError
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O"
	case KindUnknownSignature:
		return "UnknownSignature"
	case KindUnknownVersion:
		return "UnknownVersion"
	case KindUnexpectedBlockDiscriminant:
		return "UnexpectedBlockDiscriminant"
	case KindUnexpectedExtensionLabel:
		return "UnexpectedExtensionLabel"
	case KindUnexpectedBlockSize:
		return "UnexpectedBlockSize"
	case KindInvalidBlockTerminator:
		return "InvalidBlockTerminator"
	case KindInvalidColorTable:
		return "InvalidColorTable"
	case KindLZWUnexpectedEOF:
		return "LZW.UnexpectedEOF"
	case KindLZWInvalidMinimumCodeSize:
		return "LZW.InvalidMinimumCodeSize"
	case KindLZWTooLargeCode:
		return "LZW.TooLargeCode"
	case KindLZWPrefixMismatch:
		return "LZW.PrefixMismatch"
	case KindImageDataError:
		return "ImageDataError"
	default:
		return "Unknown"
	}
}

// sentinel errors usable with errors.Is. DecodeError.Cause() unwraps
// to one of these for taxonomy failures; for KindIO it unwraps to the
// underlying read error (for example io.EOF), and the strict-ASCII
// comment rejection carries its own error value.
var (
	ErrUnexpectedEOF           = errors.New("gifdecoder: unexpected end of stream")
	ErrUnknownSignature        = errors.New("gifdecoder: unknown signature")
	ErrUnknownVersion          = errors.New("gifdecoder: unknown version")
	ErrUnexpectedDiscriminant  = errors.New("gifdecoder: unexpected block discriminant")
	ErrUnexpectedExtLabel      = errors.New("gifdecoder: unexpected extension label")
	ErrUnexpectedBlockSize     = errors.New("gifdecoder: unexpected block size")
	ErrInvalidBlockTerminator  = errors.New("gifdecoder: invalid block terminator")
	ErrInvalidColorTable       = errors.New("gifdecoder: invalid color table")
	ErrLZWTooLargeCode         = errors.New("gifdecoder: lzw code too large for table")
	ErrLZWPrefixMismatch       = errors.New("gifdecoder: lzw prefix mismatch")
	ErrLZWInvalidMinCodeSize   = errors.New("gifdecoder: lzw minimum code size out of range")
	ErrImageDataShort          = errors.New("gifdecoder: decoded image data shorter than frame rectangle")
	ErrInsufficientTypeSize    = errors.New("gifdecoder: requested bit width exceeds destination type")
	ErrRestrictionViolated     = errors.New("gifdecoder: block violates graphic control restriction")
)

// DecodeError annotates a sentinel error from the taxonomy above with
// the parser stage that produced it, so callers can tell a header
// failure from an LZW failure without inspecting decoder internals.
type DecodeError struct {
	Stage string
	Kind  ErrorKind
	cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gifdecoder: %s: %v", e.Stage, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// Cause recovers the original sentinel, unwrapping any pkg/errors
// context attached along the way.
func (e *DecodeError) Cause() error { return errors.Cause(e.cause) }

// wrapStage builds a *DecodeError for the given stage, prefixing the
// stage name to cause's message with pkg/errors' WithMessage (which
// records no stack trace of its own) while errors.Is still matches the
// underlying sentinel.
func wrapStage(stage string, kind ErrorKind, cause error) error {
	if cause == nil {
		return nil
	}
	return &DecodeError{
		Stage: stage,
		Kind:  kind,
		cause: errors.WithMessage(cause, stage),
	}
}

// ioError wraps a raw stream read failure as the I/O taxonomy member,
// carrying a short reason for diagnostic context per §7.
func ioError(stage string, reason string, cause error) error {
	return wrapStage(stage, KindIO, errors.Wrap(cause, reason))
}
