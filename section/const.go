package section

import (
	"math"
)

// Magic is the identifier at the start of every FSEQ file.
const Magic = "PSEQ"

// VersionMajor is the only major version this codec reads and writes.
const VersionMajor = 2

// offset and section sizes in the sequence file
const (
	HeaderSize          = 32                                  // fixed header size in bytes
	VariableDataOffset  = HeaderSize                          // byte offset where the variable block starts on write
	VariableAlignment   = 4                                   // variable block is zero-padded to this multiple
	MaxDataOffset       = math.MaxUint16                      // channel and variable data offsets are uint16 on the wire
	VariableHeaderSize  = 4                                   // size field (2 bytes) + code (2 bytes)
	VariableCodeLength  = 2                                   // variable codes are exactly two bytes
	MaxVariableDataSize = math.MaxUint16 - VariableHeaderSize // record size is a uint16 including its header
	MaxStepTimeMillis   = math.MaxUint8                       // step time is a single byte of milliseconds
)

// Header field byte offsets.
const (
	offMagic              = 0
	offChannelDataOffset  = 4
	offVersionMinor       = 6
	offVersionMajor       = 7
	offVariableDataOffset = 8
	offChannelCount       = 10
	offFrameCount         = 14
	offStepTime           = 18
	offFlags              = 19
	offCompression        = 20
	offCompressionBlocks  = 21
	offSparseRangeCount   = 22
	offReserved           = 23
	offTimestamp          = 24
)

// Bit masks for the packed compression byte (offset 20).
const (
	CompressionBlocksHiMask = 0x0F // bits 0-3: high 4 bits of the 12-bit compression block count
	CompressionTypeMask     = 0xF0 // bits 4-7: compression type
	compressionTypeShift    = 4
)
