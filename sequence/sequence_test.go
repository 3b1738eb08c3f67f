package sequence

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/arloliu/fseq/errs"
	"github.com/arloliu/fseq/internal/hash"
	"github.com/arloliu/fseq/section"
	"github.com/stretchr/testify/require"
)

func newTestSequence(t *testing.T, channels uint32, frames ...[]byte) *Sequence {
	t.Helper()

	seq, err := New(channels, 25*time.Millisecond, WithCreated(referenceCreated()))
	require.NoError(t, err)

	for _, f := range frames {
		require.NoError(t, seq.AddFrame(f))
	}

	return seq
}

func TestParse_ReferenceShow(t *testing.T) {
	data := referenceShow()

	seq, err := Parse(data)
	require.NoError(t, err)

	require.Equal(t, uint64(referenceTimestampUs), uint64(seq.Created().UnixMicro()))
	require.Equal(t, uint32(4), seq.ChannelCount())
	require.Equal(t, uint32(4), seq.FrameCount())
	require.Equal(t, uint8(0), seq.VersionMinor())
	require.Equal(t, 20*time.Millisecond, seq.StepDuration())
	require.Equal(t, 80*time.Millisecond, seq.TotalDuration())
	require.Equal(t, map[string]string{
		"mf": "deadbeefcafe.wav",
		"sp": "VLT creator v0.0.7",
	}, seq.Variables())

	frame, ok := seq.Frame(0)
	require.True(t, ok)
	require.Equal(t, time.Duration(0), frame.Offset())

	want := byte(0)
	for i := range 4 {
		require.Equal(t, time.Duration(i)*20*time.Millisecond, frame.Offset())
		for ch := range 4 {
			got, err := frame.ChannelData(ch)
			require.NoError(t, err)
			require.Equal(t, want, got)
			want++
		}

		frame, ok = frame.Next()
		require.Equal(t, i < 3, ok)
	}

	out, err := seq.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestParse_CopiesInput(t *testing.T) {
	data := referenceShow()

	seq, err := Parse(data)
	require.NoError(t, err)

	data[len(data)-1] = 0xFF

	frame, ok := seq.Frame(3)
	require.True(t, ok)
	v, err := frame.ChannelData(3)
	require.NoError(t, err)
	require.Equal(t, byte(0x0f), v)
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]byte) []byte
		err    error
	}{
		{"bad magic", func(b []byte) []byte { b[1] = 'X'; return b }, errs.ErrBadMagic},
		{"major version 1", func(b []byte) []byte { b[7] = 1; return b }, errs.ErrUnsupportedVersion},
		{"flags", func(b []byte) []byte { b[19] = 0x80; return b }, errs.ErrUnsupportedFlags},
		{"compression", func(b []byte) []byte { b[20] = 0x10; return b }, errs.ErrUnsupportedCompression},
		{"sparse ranges", func(b []byte) []byte { b[22] = 2; return b }, errs.ErrUnsupportedSparseRanges},
		{"short buffer", func(b []byte) []byte { return b[:section.HeaderSize-1] }, errs.ErrBadSize},
		{"empty buffer", func(b []byte) []byte { return nil }, errs.ErrBadSize},
		{"missing frame byte", func(b []byte) []byte { return b[:len(b)-1] }, errs.ErrFrameDataSizeMismatch},
		{"extra frame byte", func(b []byte) []byte { return append(b, 0) }, errs.ErrFrameDataSizeMismatch},
		{"frame count too high", func(b []byte) []byte { b[14] = 5; return b }, errs.ErrFrameDataSizeMismatch},
		{"channel offset past end", func(b []byte) []byte { b[4], b[5] = 0xFF, 0x00; return b }, errs.ErrBadOffsets},
		{"variable offset inside header", func(b []byte) []byte { b[8] = 8; return b }, errs.ErrBadOffsets},
		{"variable offset after channel offset", func(b []byte) []byte { b[8] = 80; return b }, errs.ErrBadOffsets},
		{"truncated variable", func(b []byte) []byte { b[32] = 200; return b }, errs.ErrTruncatedRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Parse(tt.mutate(referenceShow()))

			require.ErrorIs(t, err, tt.err)
			require.Nil(t, seq)
		})
	}
}

func TestParse_NoVariables(t *testing.T) {
	seq := newTestSequence(t, 2, []byte{1, 2})

	data, err := seq.Bytes()
	require.NoError(t, err)
	require.Len(t, data, section.HeaderSize+2)
	require.Equal(t, byte(section.HeaderSize), data[4])

	parsed, err := Parse(data)
	require.NoError(t, err)
	require.Empty(t, parsed.Variables())
	require.True(t, seq.Equal(parsed))
}

func TestParse_VariablePaddingWithSentinel(t *testing.T) {
	// A writer that pads with more than the minimum still parses: the zero
	// size field ends the block.
	data := referenceShow()
	block := data[32:76]
	padded := append(append([]byte{}, block...), 0, 0, 0, 0)

	rebuilt := append([]byte{}, data[:32]...)
	rebuilt[4] = byte(32 + len(padded))
	rebuilt = append(rebuilt, padded...)
	rebuilt = append(rebuilt, data[76:]...)

	seq, err := Parse(rebuilt)
	require.NoError(t, err)
	require.Len(t, seq.Variables(), 2)
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)
		seq, err := New(16, 50*time.Millisecond, WithClock(func() time.Time { return now }))

		require.NoError(t, err)
		require.Equal(t, uint32(16), seq.ChannelCount())
		require.Equal(t, uint32(0), seq.FrameCount())
		require.Equal(t, 50*time.Millisecond, seq.StepDuration())
		require.Equal(t, time.Duration(0), seq.TotalDuration())
		require.True(t, now.Truncate(time.Microsecond).Equal(seq.Created()))
		require.Empty(t, seq.Variables())

		_, ok := seq.Frame(0)
		require.False(t, ok)
	})

	t.Run("created overrides clock", func(t *testing.T) {
		created := time.UnixMicro(42)
		seq, err := New(1, time.Millisecond,
			WithClock(time.Now),
			WithCreated(created),
			WithVersionMinor(3),
		)

		require.NoError(t, err)
		require.True(t, created.Equal(seq.Created()))
		require.Equal(t, uint8(3), seq.VersionMinor())
	})

	t.Run("step time limits", func(t *testing.T) {
		_, err := New(1, MaxStepTime)
		require.NoError(t, err)

		_, err = New(1, 0)
		require.NoError(t, err)

		_, err = New(1, MaxStepTime+time.Millisecond)
		require.ErrorIs(t, err, errs.ErrStepTimeTooLong)

		_, err = New(1, -time.Millisecond)
		require.ErrorIs(t, err, errs.ErrStepTimeTooLong)
	})

	t.Run("sub-millisecond step is truncated", func(t *testing.T) {
		seq, err := New(1, 25*time.Millisecond+500*time.Microsecond)

		require.NoError(t, err)
		require.Equal(t, 25*time.Millisecond, seq.StepDuration())
	})

	t.Run("option errors", func(t *testing.T) {
		_, err := New(1, time.Millisecond, WithClock(nil))
		require.Error(t, err)

		_, err = New(1, time.Millisecond, WithReservedFrames(-1))
		require.Error(t, err)
	})

	t.Run("reserved frames", func(t *testing.T) {
		seq, err := New(8, time.Millisecond, WithReservedFrames(10))

		require.NoError(t, err)
		require.GreaterOrEqual(t, cap(seq.frames), 80)
		require.Zero(t, seq.FrameDataSize())
	})
}

func TestSequence_AddFrame(t *testing.T) {
	seq := newTestSequence(t, 3)

	require.NoError(t, seq.AddFrame([]byte{1, 2, 3}))
	require.NoError(t, seq.AddFrame([]byte{4, 5, 6}))
	require.Equal(t, uint32(2), seq.FrameCount())
	require.Equal(t, 6, seq.FrameDataSize())
	require.Equal(t, 50*time.Millisecond, seq.TotalDuration())

	err := seq.AddFrame([]byte{1, 2})
	require.ErrorIs(t, err, errs.ErrChannelCountMismatch)

	err = seq.AddFrame([]byte{1, 2, 3, 4})
	require.ErrorIs(t, err, errs.ErrChannelCountMismatch)

	require.Equal(t, uint32(2), seq.FrameCount())
	require.Equal(t, int(seq.ChannelCount()*seq.FrameCount()), seq.FrameDataSize())
}

func TestSequence_AddFrameCopiesInput(t *testing.T) {
	seq := newTestSequence(t, 2)
	frame := []byte{7, 8}
	require.NoError(t, seq.AddFrame(frame))

	frame[0] = 0

	f, _ := seq.Frame(0)
	v, err := f.ChannelData(0)
	require.NoError(t, err)
	require.Equal(t, byte(7), v)
}

func TestSequence_Variables(t *testing.T) {
	seq := newTestSequence(t, 1)

	require.NoError(t, seq.AddVariable("sp", "creator"))
	require.NoError(t, seq.AddVariable("mf", "a.wav"))
	require.NoError(t, seq.AddVariable("mf", "b.wav"))

	data, ok := seq.Variable("mf")
	require.True(t, ok)
	require.Equal(t, "b.wav", data)
	require.Equal(t, []string{"mf", "sp"}, seq.Codes())

	_, ok = seq.Variable("zz")
	require.False(t, ok)

	err := seq.AddVariable("mfx", "x")
	require.ErrorIs(t, err, errs.ErrInvalidCodeLength)

	err = seq.AddVariable("m", "x")
	require.ErrorIs(t, err, errs.ErrInvalidCodeLength)

	err = seq.AddVariable("mf", strings.Repeat("x", section.MaxVariableDataSize+1))
	require.ErrorIs(t, err, errs.ErrDataTooLarge)

	vars := seq.Variables()
	vars["zz"] = "not stored"
	_, ok = seq.Variable("zz")
	require.False(t, ok, "Variables must return a copy")

	require.True(t, seq.RemoveVariable("sp"))
	require.False(t, seq.RemoveVariable("sp"))
	require.Equal(t, []string{"mf"}, seq.Codes())
}

func TestSequence_ZeroValue(t *testing.T) {
	var seq Sequence

	require.NoError(t, seq.AddVariable("mf", "song.mp3"))

	data, ok := seq.Variable("mf")
	require.True(t, ok)
	require.Equal(t, "song.mp3", data)
	require.True(t, seq.RemoveVariable("mf"))
	require.NoError(t, seq.AddFrame([]byte{}))
	require.Equal(t, uint32(1), seq.FrameCount())
}

func TestSequence_ReserveFrames(t *testing.T) {
	t.Run("grows capacity", func(t *testing.T) {
		seq := newTestSequence(t, 4, []byte{1, 2, 3, 4})

		require.NoError(t, seq.ReserveFrames(16))
		require.GreaterOrEqual(t, cap(seq.frames), 4+64)
		require.Equal(t, 4, seq.FrameDataSize())
	})

	t.Run("non-positive is a no-op", func(t *testing.T) {
		seq := newTestSequence(t, 4)

		require.NoError(t, seq.ReserveFrames(0))
		require.NoError(t, seq.ReserveFrames(-3))
	})

	t.Run("beyond frame count limit", func(t *testing.T) {
		seq := newTestSequence(t, 1, []byte{1})

		err := seq.ReserveFrames(math.MaxUint32)
		require.ErrorIs(t, err, errs.ErrDocumentTooLarge)
	})

	t.Run("beyond addressable size", func(t *testing.T) {
		seq := newTestSequence(t, math.MaxUint32)

		err := seq.ReserveFrames(math.MaxUint32)
		require.ErrorIs(t, err, errs.ErrDocumentTooLarge)
	})

	t.Run("New rejects unsatisfiable reservation", func(t *testing.T) {
		var seq *Sequence
		var err error
		require.NotPanics(t, func() {
			seq, err = New(math.MaxUint32, 0, WithReservedFrames(1<<32))
		})
		require.Nil(t, seq)
		require.ErrorIs(t, err, errs.ErrDocumentTooLarge)

		require.NotPanics(t, func() {
			seq, err = New(math.MaxUint32, 0, WithReservedFrames(math.MaxUint32))
		})
		require.Nil(t, seq)
		require.ErrorIs(t, err, errs.ErrDocumentTooLarge)
	})
}

func TestSequence_BytesDocumentTooLarge(t *testing.T) {
	seq := newTestSequence(t, 1, []byte{1})
	require.NoError(t, seq.AddVariable("aa", strings.Repeat("a", 40000)))
	require.NoError(t, seq.AddVariable("bb", strings.Repeat("b", 40000)))

	_, err := seq.Bytes()

	require.ErrorIs(t, err, errs.ErrDocumentTooLarge)
}

func TestSequence_RoundTrip(t *testing.T) {
	seq, err := New(5, 50*time.Millisecond,
		WithCreated(time.Date(2024, 12, 24, 18, 0, 0, 1000, time.UTC)),
		WithVersionMinor(1),
	)
	require.NoError(t, err)
	require.NoError(t, seq.AddVariable("mf", "carol.mp3"))
	require.NoError(t, seq.AddVariable("sp", "fseq test"))
	require.NoError(t, seq.AddVariable("ab", ""))
	for i := range 10 {
		require.NoError(t, seq.AddFrame([]byte{byte(i), byte(i * 2), 0, 255, byte(i)}))
	}

	data, err := seq.Bytes()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	require.True(t, seq.Equal(parsed))

	again, err := parsed.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, again)

	header, err := section.ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, uint16(section.VariableDataOffset), header.VariableDataOffset)
	require.Zero(t, (int(header.ChannelDataOffset)-section.HeaderSize)%section.VariableAlignment)
	require.Equal(t, uint8(1), header.VersionMinor)
}

func TestSequence_MarshalBinary(t *testing.T) {
	seq, err := Parse(referenceShow())
	require.NoError(t, err)

	data, err := seq.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, referenceShow(), data)

	var target Sequence
	require.NoError(t, target.UnmarshalBinary(data))
	require.True(t, seq.Equal(&target))
}

func TestSequence_UnmarshalBinaryFailureKeepsState(t *testing.T) {
	seq, err := Parse(referenceShow())
	require.NoError(t, err)

	bad := referenceShow()
	bad[0] = 'X'

	require.ErrorIs(t, seq.UnmarshalBinary(bad), errs.ErrBadMagic)
	require.Equal(t, uint32(4), seq.FrameCount())
	require.Len(t, seq.Variables(), 2)
}

func TestSequence_UnmarshalBinaryInvalidatesFrames(t *testing.T) {
	seq, err := Parse(referenceShow())
	require.NoError(t, err)

	frame, ok := seq.Frame(0)
	require.True(t, ok)

	require.NoError(t, seq.UnmarshalBinary(referenceShow()))

	_, err = frame.ChannelData(0)
	require.ErrorIs(t, err, errs.ErrStaleFrame)
}

func TestSequence_Equal(t *testing.T) {
	a := newTestSequence(t, 2, []byte{1, 2})
	b := newTestSequence(t, 2, []byte{1, 2})
	require.True(t, a.Equal(b))

	require.NoError(t, b.AddVariable("mf", "x"))
	require.False(t, a.Equal(b))

	c := newTestSequence(t, 2, []byte{1, 3})
	require.False(t, a.Equal(c))

	var nilSeq *Sequence
	require.False(t, a.Equal(nil))
	require.True(t, nilSeq.Equal(nil))
}

func TestSequence_Fingerprint(t *testing.T) {
	seq, err := Parse(referenceShow())
	require.NoError(t, err)

	frames := referenceShow()[76:]
	require.Equal(t, hash.Fingerprint(frames), seq.Fingerprint())

	other := newTestSequence(t, 4, frames[:4])
	require.NotEqual(t, seq.Fingerprint(), other.Fingerprint())
}

func TestSequence_All(t *testing.T) {
	seq, err := Parse(referenceShow())
	require.NoError(t, err)

	var indexes []int
	for f := range seq.All() {
		indexes = append(indexes, f.Index())
	}
	require.Equal(t, []int{0, 1, 2, 3}, indexes)

	count := 0
	for range seq.All() {
		count++
		break
	}
	require.Equal(t, 1, count)

	empty := newTestSequence(t, 4)
	for range empty.All() {
		t.Fatal("empty sequence must not yield frames")
	}
}

func BenchmarkParse(b *testing.B) {
	seq, err := New(512, 25*time.Millisecond)
	require.NoError(b, err)
	require.NoError(b, seq.AddVariable("mf", "show.mp3"))
	frame := make([]byte, 512)
	for range 1200 {
		require.NoError(b, seq.AddFrame(frame))
	}
	data, err := seq.Bytes()
	require.NoError(b, err)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for b.Loop() {
		if _, err := Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}
