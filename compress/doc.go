// Package compress provides the codecs used for compressed sequence file
// containers.
//
// An FSEQ file itself is always written uncompressed; the format's own
// compression fields are reserved. Large shows are instead stored inside a
// general-purpose container chosen by file extension (see format.ContainerFromPath):
//   - None: the plain file
//   - Zstd: best ratio, moderate speed (.zst, .zstd)
//   - S2: balanced speed and ratio (.s2)
//   - LZ4: fastest decompression, LZ4 frame format (.lz4)
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Use GetCodec to obtain the shared codec of a container type:
//
//	codec, err := compress.GetCodec(format.ContainerZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(raw)
//
// # Zstd Implementations
//
// The default zstd codec is pure Go (klauspost/compress) with pooled encoders
// and decoders. Building with the gozstd tag and cgo enabled switches to
// libzstd through valyala/gozstd. Both produce standard zstd frames.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use.
package compress
