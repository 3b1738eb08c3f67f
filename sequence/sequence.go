package sequence

import (
	"bytes"
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/arloliu/fseq/errs"
	"github.com/arloliu/fseq/internal/hash"
	"github.com/arloliu/fseq/internal/options"
	"github.com/arloliu/fseq/section"
)

// MaxStepTime is the longest step time the one-byte header field can hold.
const MaxStepTime = section.MaxStepTimeMillis * time.Millisecond

// Sequence is an in-memory FSEQv2 document: header metadata, variables and the
// frame store.
//
// The frame store is a single channel-major byte slice holding FrameCount runs
// of ChannelCount bytes. Its length is always ChannelCount * FrameCount.
//
// Note: Sequence is NOT thread-safe. Mutating methods (AddVariable,
// RemoveVariable, AddFrame, UnmarshalBinary) invalidate every Frame obtained
// before the call.
type Sequence struct {
	versionMinor uint8
	channelCount uint32
	frameCount   uint32
	stepTime     time.Duration
	created      time.Time

	variables map[string]string
	frames    []byte

	// generation is bumped on every mutation; a Frame remembers the value it
	// was created with.
	generation uint64
}

// New creates an empty sequence with the given channel count and step time.
//
// Parameters:
//   - channelCount: Number of channels in every frame
//   - step: Duration of one frame, 0 to 255ms; sub-millisecond parts are dropped
//   - opts: Optional configuration (WithCreated, WithClock, WithVersionMinor, WithReservedFrames)
//
// Returns:
//   - *Sequence: The new sequence with no frames and no variables
//   - error: ErrStepTimeTooLong if step is out of range, or an option error
func New(channelCount uint32, step time.Duration, opts ...Option) (*Sequence, error) {
	if step < 0 || step > MaxStepTime {
		return nil, fmt.Errorf("%w: %v, max %v", errs.ErrStepTimeTooLong, step, MaxStepTime)
	}

	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	s := &Sequence{
		versionMinor: cfg.versionMinor,
		channelCount: channelCount,
		stepTime:     step.Truncate(time.Millisecond),
		created:      cfg.createdAt(),
		variables:    make(map[string]string),
	}
	if err := s.ReserveFrames(cfg.reserveFrames); err != nil {
		return nil, err
	}

	return s, nil
}

// Parse decodes a complete FSEQv2 buffer.
//
// The frame bytes are copied, so data may be reused by the caller afterwards.
// On error no Sequence is returned.
//
// Returns:
//   - *Sequence: The decoded sequence
//   - error: header errors, ErrBadOffsets, ErrTruncatedRecord or
//     ErrFrameDataSizeMismatch
func Parse(data []byte) (*Sequence, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	varOffset := int(header.VariableDataOffset)
	chOffset := int(header.ChannelDataOffset)

	if varOffset < section.HeaderSize || varOffset > chOffset || chOffset > len(data) {
		return nil, fmt.Errorf("%w: variable data at %d, channel data at %d, buffer is %d bytes",
			errs.ErrBadOffsets, varOffset, chOffset, len(data))
	}

	vars, err := section.DecodeVariables(data[varOffset:chOffset])
	if err != nil {
		return nil, err
	}

	frameData := data[chOffset:]
	if uint64(len(frameData)) != header.FrameDataSize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d channels x %d frames",
			errs.ErrFrameDataSizeMismatch, len(frameData), header.ChannelCount, header.FrameCount)
	}

	return &Sequence{
		versionMinor: header.VersionMinor,
		channelCount: header.ChannelCount,
		frameCount:   header.FrameCount,
		stepTime:     time.Duration(header.StepTime) * time.Millisecond,
		created:      header.Created(),
		variables:    vars,
		frames:       slices.Clone(frameData),
	}, nil
}

// Bytes serializes the sequence.
//
// The variable block is encoded first so that the channel data offset is
// known, then header, variable block and frame store are concatenated.
//
// Returns:
//   - []byte: The complete file contents
//   - error: ErrDocumentTooLarge when the variable block pushes the channel
//     data offset past 65535, or a variable record error
func (s *Sequence) Bytes() ([]byte, error) {
	block, err := section.EncodeVariables(s.variables)
	if err != nil {
		return nil, fmt.Errorf("encode variables: %w", err)
	}

	header := section.NewHeader(s.channelCount, s.frameCount, uint8(s.stepTime.Milliseconds()), s.created) //nolint:gosec
	header.VersionMinor = s.versionMinor
	header.ChannelDataOffset = uint16(section.HeaderSize + len(block)) //nolint:gosec

	out := make([]byte, 0, section.HeaderSize+len(block)+len(s.frames))
	out = header.AppendTo(out)
	out = append(out, block...)
	out = append(out, s.frames...)

	return out, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Sequence) MarshalBinary() ([]byte, error) {
	return s.Bytes()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The receiver is replaced only if data parses successfully; outstanding
// frames are invalidated either way.
func (s *Sequence) UnmarshalBinary(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}

	parsed.generation = s.generation + 1
	*s = *parsed

	return nil
}

// VersionMinor returns the minor format version.
func (s *Sequence) VersionMinor() uint8 {
	return s.versionMinor
}

// ChannelCount returns the number of channels per frame.
func (s *Sequence) ChannelCount() uint32 {
	return s.channelCount
}

// FrameCount returns the number of frames.
func (s *Sequence) FrameCount() uint32 {
	return s.frameCount
}

// StepDuration returns the duration of one frame.
func (s *Sequence) StepDuration() time.Duration {
	return s.stepTime
}

// TotalDuration returns the playback duration of all frames.
func (s *Sequence) TotalDuration() time.Duration {
	return s.stepTime * time.Duration(s.frameCount)
}

// Created returns the creation timestamp.
func (s *Sequence) Created() time.Time {
	return s.created
}

// Variable returns the data stored under code.
func (s *Sequence) Variable(code string) (string, bool) {
	data, ok := s.variables[code]
	return data, ok
}

// Variables returns a copy of all variables.
func (s *Sequence) Variables() map[string]string {
	return maps.Clone(s.variables)
}

// Codes returns the variable codes in serialization order.
func (s *Sequence) Codes() []string {
	return slices.Sorted(maps.Keys(s.variables))
}

// AddVariable sets variable code to data, replacing any previous value.
//
// Returns:
//   - error: ErrInvalidCodeLength if code is not 2 bytes, ErrDataTooLarge if data
//     cannot fit one record
func (s *Sequence) AddVariable(code, data string) error {
	if err := section.ValidateVariable(code, data); err != nil {
		return err
	}

	if s.variables == nil {
		s.variables = make(map[string]string)
	}
	s.variables[code] = data
	s.mutate()

	return nil
}

// RemoveVariable deletes variable code and reports whether it existed.
func (s *Sequence) RemoveVariable(code string) bool {
	if _, ok := s.variables[code]; !ok {
		return false
	}

	delete(s.variables, code)
	s.mutate()

	return true
}

// AddFrame appends one frame of channel data.
//
// Returns:
//   - error: ErrChannelCountMismatch if len(data) != ChannelCount, ErrDocumentTooLarge
//     if the frame count would overflow
func (s *Sequence) AddFrame(data []byte) error {
	if uint64(len(data)) != uint64(s.channelCount) {
		return fmt.Errorf("%w: frame has %d channels, sequence has %d",
			errs.ErrChannelCountMismatch, len(data), s.channelCount)
	}

	if s.frameCount == math.MaxUint32 {
		return fmt.Errorf("%w: frame count limit %d reached", errs.ErrDocumentTooLarge, uint32(math.MaxUint32))
	}

	s.frames = append(s.frames, data...)
	s.frameCount++
	s.mutate()

	return nil
}

// ReserveFrames grows the frame store capacity for n more frames.
// A non-positive n is a no-op.
//
// Returns:
//   - error: ErrDocumentTooLarge if the frame count or the frame store size
//     cannot hold n more frames
func (s *Sequence) ReserveFrames(n int) error {
	if n <= 0 {
		return nil
	}

	if uint64(n) > math.MaxUint32-uint64(s.frameCount) {
		return fmt.Errorf("%w: cannot reserve %d frames on top of %d", errs.ErrDocumentTooLarge, n, s.frameCount)
	}

	size := uint64(n) * uint64(s.channelCount)
	if size > math.MaxInt-uint64(len(s.frames)) {
		return fmt.Errorf("%w: %d frames of %d channels exceed the addressable size",
			errs.ErrDocumentTooLarge, n, s.channelCount)
	}

	s.frames = slices.Grow(s.frames, int(size))

	return nil
}

// Frame returns a view of frame index, or false if index is out of range.
func (s *Sequence) Frame(index int) (Frame, bool) {
	if index < 0 || uint64(index) >= uint64(s.frameCount) {
		return Frame{}, false
	}

	return Frame{seq: s, index: index, generation: s.generation}, true
}

// All returns an iterator over every frame in order.
func (s *Sequence) All() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for f, ok := s.Frame(0); ok; f, ok = f.Next() {
			if !yield(f) {
				return
			}
		}
	}
}

// Fingerprint returns the xxHash64 of the frame store.
func (s *Sequence) Fingerprint() uint64 {
	return hash.Fingerprint(s.frames)
}

// FrameDataSize returns the size of the frame store in bytes.
func (s *Sequence) FrameDataSize() int {
	return len(s.frames)
}

// Equal reports whether s and other hold the same header fields, variables
// and frame data.
func (s *Sequence) Equal(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.versionMinor == other.versionMinor &&
		s.channelCount == other.channelCount &&
		s.frameCount == other.frameCount &&
		s.stepTime == other.stepTime &&
		s.created.Equal(other.created) &&
		maps.Equal(s.variables, other.variables) &&
		bytes.Equal(s.frames, other.frames)
}

func (s *Sequence) mutate() {
	s.generation++
}
