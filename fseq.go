// Package fseq reads and writes FSEQ version 2 sequence files, the binary
// format used by xLights and Falcon Player to store pre-rendered lighting
// shows.
//
// A sequence file holds a fixed 32-byte header, a block of two-letter
// variables (media file name, creator tool and so on) and a frame store: one
// byte per channel for every frame, frames played back at a fixed step time.
//
// # Basic Usage
//
// Creating a show:
//
//	import "github.com/arloliu/fseq"
//
//	seq, _ := fseq.New(512, 25*time.Millisecond)
//	seq.AddVariable("mf", "song.mp3")
//
//	frame := make([]byte, 512)
//	for i := range 40 {
//	    frame[0] = byte(i * 6)
//	    seq.AddFrame(frame)
//	}
//
//	_ = fseq.Save("show.fseq", seq)
//
// Reading a show:
//
//	seq, _ := fseq.Load("show.fseq.zst")
//	for frame := range seq.All() {
//	    v, _ := frame.ChannelData(0)
//	    fmt.Printf("%v: %d\n", frame.Offset(), v)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The sequence package
// holds the document model, section the header and variable codecs, and
// storage the file I/O with optional zstd, s2 or lz4 containers.
package fseq

import (
	"time"

	"github.com/arloliu/fseq/section"
	"github.com/arloliu/fseq/sequence"
	"github.com/arloliu/fseq/storage"
)

// New creates an empty sequence.
//
// Parameters:
//   - channelCount: Number of channels per frame
//   - step: Frame duration, at most sequence.MaxStepTime
//   - opts: Optional configuration, see sequence.WithCreated and friends
//
// Example:
//
//	seq, err := fseq.New(16, 50*time.Millisecond, sequence.WithCreated(t))
func New(channelCount uint32, step time.Duration, opts ...sequence.Option) (*sequence.Sequence, error) {
	return sequence.New(channelCount, step, opts...)
}

// Parse decodes FSEQ bytes.
func Parse(data []byte) (*sequence.Sequence, error) {
	return sequence.Parse(data)
}

// IsSequence reports whether data starts with the FSEQ magic.
func IsSequence(data []byte) bool {
	return section.IsSequence(data)
}

// Load reads and decodes the sequence file at path.
//
// The container is chosen by extension: .zst and .zstd are zstd, .s2 is s2,
// .lz4 is lz4, anything else is read as a plain FSEQ file.
//
// Returns:
//   - *sequence.Sequence: The decoded sequence
//   - error: I/O, container or format error
func Load(path string) (*sequence.Sequence, error) {
	data, err := storage.Load(path)
	if err != nil {
		return nil, err
	}

	return sequence.Parse(data)
}

// Save serializes seq and writes it to path, compressing it when the
// extension names a container. The file is replaced atomically.
func Save(path string, seq *sequence.Sequence) error {
	data, err := seq.Bytes()
	if err != nil {
		return err
	}

	return storage.Save(path, data)
}
