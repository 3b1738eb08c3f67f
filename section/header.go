package section

import (
	"fmt"
	"time"

	"github.com/arloliu/fseq/endian"
	"github.com/arloliu/fseq/errs"
	"github.com/arloliu/fseq/format"
)

// Header represents the fixed-size header section at the start of an FSEQv2 file.
type Header struct {
	// ChannelDataOffset is the byte offset where frame data begins.
	ChannelDataOffset uint16 // byte offset 4-5
	// VersionMinor is round-tripped but not interpreted.
	VersionMinor uint8 // byte offset 6
	// VersionMajor must be 2.
	VersionMajor uint8 // byte offset 7
	// VariableDataOffset is the byte offset where the variable block begins.
	VariableDataOffset uint16 // byte offset 8-9
	// ChannelCount is the number of channels per frame.
	ChannelCount uint32 // byte offset 10-13
	// FrameCount is the number of frames.
	FrameCount uint32 // byte offset 14-17
	// StepTime is the duration of one frame in milliseconds.
	StepTime uint8 // byte offset 18
	// Flags must be 0.
	Flags uint8 // byte offset 19
	// CompressionType comes from bits 4-7 of byte 20 and must be none.
	CompressionType format.CompressionType
	// CompressionBlockCount is the 12-bit block count split over bits 0-3 of
	// byte 20 (high bits) and byte 21 (low bits). Must be 0.
	CompressionBlockCount uint16
	// SparseRangeCount must be 0.
	SparseRangeCount uint8 // byte offset 22
	// Reserved is unused.
	Reserved uint8 // byte offset 23
	// Timestamp is the creation time in microseconds since the Unix epoch.
	Timestamp uint64 // byte offset 24-31
}

// NewHeader creates a header for a sequence with the given shape.
// The data offsets are set by the caller once the variable block size is known.
func NewHeader(channelCount, frameCount uint32, stepTime uint8, created time.Time) *Header {
	return &Header{
		VersionMajor:       VersionMajor,
		VariableDataOffset: VariableDataOffset,
		ChannelDataOffset:  VariableDataOffset,
		ChannelCount:       channelCount,
		FrameCount:         frameCount,
		StepTime:           stepTime,
		Timestamp:          uint64(created.UnixMicro()), //nolint:gosec
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrBadSize if data is not 32 bytes, or one of the unsupported
//     feature errors when the header asks for something this codec cannot read
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrBadSize, len(data), HeaderSize)
	}

	if string(data[offMagic:offMagic+len(Magic)]) != Magic {
		return fmt.Errorf("%w: %q", errs.ErrBadMagic, data[offMagic:offMagic+len(Magic)])
	}

	engine := endian.GetLittleEndianEngine()

	h.ChannelDataOffset = engine.Uint16(data[offChannelDataOffset:])
	h.VersionMinor = data[offVersionMinor]
	h.VersionMajor = data[offVersionMajor]
	h.VariableDataOffset = engine.Uint16(data[offVariableDataOffset:])
	h.ChannelCount = engine.Uint32(data[offChannelCount:])
	h.FrameCount = engine.Uint32(data[offFrameCount:])
	h.StepTime = data[offStepTime]
	h.Flags = data[offFlags]
	h.CompressionType = format.CompressionType((data[offCompression] & CompressionTypeMask) >> compressionTypeShift)
	h.CompressionBlockCount = uint16(data[offCompression]&CompressionBlocksHiMask)<<8 | uint16(data[offCompressionBlocks])
	h.SparseRangeCount = data[offSparseRangeCount]
	h.Reserved = data[offReserved]
	h.Timestamp = engine.Uint64(data[offTimestamp:])

	return h.Validate()
}

// Validate checks that the header only uses features this codec supports.
func (h *Header) Validate() error {
	if h.VersionMajor != VersionMajor {
		return fmt.Errorf("%w: got %d, want %d", errs.ErrUnsupportedVersion, h.VersionMajor, VersionMajor)
	}

	if h.Flags != 0 {
		return fmt.Errorf("%w: 0x%02x", errs.ErrUnsupportedFlags, h.Flags)
	}

	if h.CompressionType != format.CompressionNone {
		return fmt.Errorf("%w: type %s", errs.ErrUnsupportedCompression, h.CompressionType)
	}

	if h.CompressionBlockCount != 0 {
		return fmt.Errorf("%w: %d compression blocks", errs.ErrUnsupportedCompression, h.CompressionBlockCount)
	}

	if h.SparseRangeCount != 0 {
		return fmt.Errorf("%w: %d ranges", errs.ErrUnsupportedSparseRanges, h.SparseRangeCount)
	}

	return nil
}

// Bytes serializes the header into a new 32-byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the 32-byte wire form of the header to dst.
//
// Magic, major version, flags, compression, sparse range count and the
// reserved byte are always written as their supported values, so the codec
// never produces a file it could not read back.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = append(dst, Magic...)
	dst = engine.AppendUint16(dst, h.ChannelDataOffset)
	dst = append(dst, h.VersionMinor, VersionMajor)
	dst = engine.AppendUint16(dst, h.VariableDataOffset)
	dst = engine.AppendUint32(dst, h.ChannelCount)
	dst = engine.AppendUint32(dst, h.FrameCount)
	dst = append(dst,
		h.StepTime,
		0, // flags
		0, // compression type | block count high bits
		0, // block count low bits
		0, // sparse range count
		0, // reserved
	)
	dst = engine.AppendUint64(dst, h.Timestamp)

	return dst
}

// Created returns the header timestamp as a time.Time.
func (h *Header) Created() time.Time {
	return time.UnixMicro(int64(h.Timestamp)) //nolint:gosec
}

// FrameDataSize returns the number of frame bytes the header declares.
func (h *Header) FrameDataSize() uint64 {
	return uint64(h.ChannelCount) * uint64(h.FrameCount)
}

// ParseHeader parses a Header from the first 32 bytes of a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be at least 32 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrBadSize or header validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, want at least %d", errs.ErrBadSize, len(data), HeaderSize)
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

// IsSequence reports whether data starts with the FSEQ magic.
func IsSequence(data []byte) bool {
	return len(data) >= len(Magic) && string(data[:len(Magic)]) == Magic
}
