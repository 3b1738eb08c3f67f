// Package errs defines the sentinel errors returned by the fseq packages.
//
// Errors are wrapped with context (offending field and value) by the package
// that detects them, so callers should match with errors.Is:
//
//	seq, err := fseq.Parse(data)
//	if errors.Is(err, errs.ErrBadMagic) {
//	    // not an FSEQ file
//	}
package errs

import "errors"

// Header validation errors.
var (
	ErrBadSize                 = errors.New("invalid header size")
	ErrBadMagic                = errors.New("invalid magic")
	ErrUnsupportedVersion      = errors.New("unsupported major version")
	ErrUnsupportedFlags        = errors.New("non-zero flags not supported")
	ErrUnsupportedCompression  = errors.New("compression not supported")
	ErrUnsupportedSparseRanges = errors.New("sparse channel ranges not supported")
	ErrBadOffsets              = errors.New("invalid data offsets")
)

// Variable record errors.
var (
	ErrTruncatedRecord   = errors.New("variable record overruns buffer")
	ErrInvalidCodeLength = errors.New("invalid variable code length")
	ErrDataTooLarge      = errors.New("variable data too large")
)

// Sequence errors.
var (
	ErrFrameDataSizeMismatch = errors.New("frame data size mismatch")
	ErrChannelCountMismatch  = errors.New("channel count mismatch")
	ErrDocumentTooLarge      = errors.New("document too large")
	ErrStepTimeTooLong       = errors.New("step time out of range")
	ErrOutOfRange            = errors.New("index out of range")
	ErrStaleFrame            = errors.New("frame invalidated by sequence mutation")
)

// Storage errors.
var (
	ErrUnsupportedContainer = errors.New("unsupported container type")
)
