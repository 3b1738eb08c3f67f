// Package section defines the low-level binary structures and constants of the FSEQv2 format.
//
// It handles byte-level serialization and deserialization of the fixed header
// and of the variable (metadata) records, with no knowledge of frames beyond
// the counts and offsets the header carries.
//
// # File Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	├─────────────────────────────────────────────────────────┤
//	│ Variable block (variable, starts at VariableDataOffset) │
//	│  - Records: size (uint16), code (2 bytes), data         │
//	│  - Zero padding to a multiple of 4 bytes                │
//	├─────────────────────────────────────────────────────────┤
//	│ Frame data (starts at ChannelDataOffset)                │
//	│  - FrameCount × ChannelCount bytes, frame-major         │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field                 | Type    | Description
//	-------|-----------------------|---------|----------------------------------
//	0-3    | Magic                 | [4]byte | "PSEQ"
//	4-5    | ChannelDataOffset     | uint16  | Byte offset to frame data
//	6      | VersionMinor          | uint8   | Round-tripped
//	7      | VersionMajor          | uint8   | Must be 2
//	8-9    | VariableDataOffset    | uint16  | Byte offset to variable block (32)
//	10-13  | ChannelCount          | uint32  | Channels per frame
//	14-17  | FrameCount            | uint32  | Number of frames
//	18     | StepTime              | uint8   | Milliseconds per frame
//	19     | Flags                 | uint8   | Must be 0
//	20     | Compression           | uint8   | Bits 4-7 type, bits 0-3 block count high bits
//	21     | CompressionBlockCount | uint8   | Block count low bits
//	22     | SparseRangeCount      | uint8   | Must be 0
//	23     | Reserved              | uint8   |
//	24-31  | Timestamp             | uint64  | Microseconds since Unix epoch
//
// All multi-byte fields are little-endian. Compression, sparse ranges and flags
// are decoded only far enough to reject files that use them.
//
// # Usage Examples
//
// Parsing a header:
//
//	header, err := section.ParseHeader(data)
//	if err != nil {
//	    return err
//	}
//	vars, err := section.DecodeVariables(data[header.VariableDataOffset:header.ChannelDataOffset])
//
// Writing a block and header:
//
//	block, err := section.EncodeVariables(map[string]string{"mf": "show.wav"})
//	header := section.NewHeader(channels, frames, 25, time.Now())
//	header.ChannelDataOffset = uint16(section.HeaderSize + len(block))
//	out := append(header.Bytes(), block...)
package section
