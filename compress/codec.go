package compress

import (
	"fmt"

	"github.com/arloliu/fseq/errs"
	"github.com/arloliu/fseq/format"
)

// Compressor compresses a complete buffer.
//
// Memory management:
//   - Returned slice is owned by the caller unless documented otherwise
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a buffer produced by the matching Compressor.
//
// Returns an error if the data is corrupted or was produced by a different
// algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.ContainerType]Codec{
	format.ContainerNone: NewNoOpCompressor(),
	format.ContainerZstd: NewZstdCompressor(),
	format.ContainerS2:   NewS2Compressor(),
	format.ContainerLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified container type.
//
// Returns:
//   - Codec: Shared codec instance, safe for concurrent use
//   - error: ErrUnsupportedContainer for unknown container types
func GetCodec(container format.ContainerType) (Codec, error) {
	if codec, ok := builtinCodecs[container]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (%d)", errs.ErrUnsupportedContainer, container, uint8(container))
}
