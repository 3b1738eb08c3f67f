// Package endian provides the byte order engine used by the FSEQ codec.
//
// FSEQv2 stores every multi-byte integer little-endian. The codec reads and
// writes header fields and variable record sizes through an EndianEngine so
// that decode (ByteOrder) and encode (AppendByteOrder) share a single value:
//
//	engine := endian.GetLittleEndianEngine()
//	size := engine.Uint16(raw[0:2])
//	buf = engine.AppendUint16(buf, size)
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the FSEQ wire byte order.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
