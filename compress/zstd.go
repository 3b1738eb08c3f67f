package compress

// ZstdCompressor provides Zstandard compression, the best ratio of the
// containers. Sequence files are mostly repeated channel values and typically
// shrink by an order of magnitude.
//
// Two implementations exist: pure Go (klauspost/compress, the default) and
// cgo libzstd (valyala/gozstd) selected with the gozstd build tag. Both read
// each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
