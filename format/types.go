package format

import (
	"path/filepath"
	"strings"
)

type (
	// CompressionType is the FSEQ header compression type (high nibble of byte 20).
	// Only CompressionNone is supported; the other values are named so that
	// rejections can say what the file asked for.
	CompressionType uint8

	// ContainerType is an outer compression container wrapping a whole FSEQ
	// buffer on disk. It is independent of the FSEQ header compression field.
	ContainerType uint8
)

const (
	CompressionNone CompressionType = 0x0 // CompressionNone represents uncompressed frame data.
	CompressionZstd CompressionType = 0x1 // CompressionZstd represents zstd compressed frame blocks.
	CompressionZlib CompressionType = 0x2 // CompressionZlib represents zlib compressed frame blocks.
)

const (
	ContainerNone ContainerType = 0x1 // ContainerNone stores the FSEQ bytes as-is.
	ContainerZstd ContainerType = 0x2 // ContainerZstd wraps the FSEQ bytes in zstd.
	ContainerS2   ContainerType = 0x3 // ContainerS2 wraps the FSEQ bytes in s2.
	ContainerLZ4  ContainerType = 0x4 // ContainerLZ4 wraps the FSEQ bytes in an lz4 frame.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionZlib:
		return "Zlib"
	default:
		return "Unknown"
	}
}

func (c ContainerType) String() string {
	switch c {
	case ContainerNone:
		return "None"
	case ContainerZstd:
		return "Zstd"
	case ContainerS2:
		return "S2"
	case ContainerLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ContainerFromPath picks the container type from the file extension.
// Unknown extensions map to ContainerNone.
func ContainerFromPath(path string) ContainerType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return ContainerZstd
	case ".s2":
		return ContainerS2
	case ".lz4":
		return ContainerLZ4
	default:
		return ContainerNone
	}
}

// ParseContainer parses a container name as accepted by the write command's
// --container flag.
func ParseContainer(name string) (ContainerType, bool) {
	switch strings.ToLower(name) {
	case "", "none":
		return ContainerNone, true
	case "zstd", "zst":
		return ContainerZstd, true
	case "s2":
		return ContainerS2, true
	case "lz4":
		return ContainerLZ4, true
	default:
		return 0, false
	}
}
