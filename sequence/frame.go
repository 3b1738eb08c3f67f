package sequence

import (
	"fmt"
	"strings"
	"time"

	"github.com/arloliu/fseq/errs"
)

// blankSlot replaces a channel value that did not change in a diff dump.
const blankSlot = "   "

// truncationMarker ends a dump line that shows fewer channels than the frame has.
const truncationMarker = " ..."

// Frame is a read-only view of one frame of a Sequence.
//
// A Frame does not own channel data; it borrows it from its Sequence and is
// invalidated by any mutation of that Sequence. Methods on an invalidated
// Frame return ErrStaleFrame.
type Frame struct {
	seq        *Sequence
	index      int
	generation uint64
}

// Index returns the frame number.
func (f Frame) Index() int {
	return f.index
}

// Offset returns the playback time of the frame relative to the sequence start.
func (f Frame) Offset() time.Duration {
	if f.seq == nil {
		return 0
	}

	return f.seq.stepTime * time.Duration(f.index)
}

// ChannelData returns the value of channel ch.
//
// Returns:
//   - byte: Channel value
//   - error: ErrOutOfRange if ch is not a valid channel index, ErrStaleFrame if
//     the sequence was mutated after the frame was obtained
func (f Frame) ChannelData(ch int) (byte, error) {
	if err := f.check(); err != nil {
		return 0, err
	}

	pos := f.index*int(f.seq.channelCount) + ch
	if ch < 0 || ch >= int(f.seq.channelCount) || pos >= len(f.seq.frames) {
		return 0, fmt.Errorf("%w: channel %d of %d in frame %d", errs.ErrOutOfRange, ch, f.seq.channelCount, f.index)
	}

	return f.seq.frames[pos], nil
}

// Channels returns a copy of all channel values of the frame.
func (f Frame) Channels() ([]byte, error) {
	if err := f.check(); err != nil {
		return nil, err
	}

	out := make([]byte, f.seq.channelCount)
	copy(out, f.data())

	return out, nil
}

// Next returns the following frame, or false after the last frame or when
// the frame is no longer valid.
func (f Frame) Next() (Frame, bool) {
	if f.check() != nil {
		return Frame{}, false
	}

	return f.seq.Frame(f.index + 1)
}

// Dump renders the frame as one line of hex channel values.
//
// The line starts with the right-aligned offset (e.g. "     20ms"), followed
// by " xx" for each of the first maxChannels channels and " ..." if channels
// were left out. A maxChannels of zero or less renders every channel.
//
// When previous is given, channels whose value equals the value in previous
// are rendered blank, and if no rendered channel changed the result is the
// empty string, so callers can skip frames that repeat the one before.
func (f Frame) Dump(maxChannels int, previous *Frame) (string, error) {
	if err := f.check(); err != nil {
		return "", err
	}

	if previous != nil {
		if err := previous.check(); err != nil {
			return "", err
		}
	}

	count := int(f.seq.channelCount)
	truncated := false
	if maxChannels > 0 && maxChannels < count {
		count = maxChannels
		truncated = true
	}

	data := f.data()

	var sb strings.Builder
	sb.Grow(count * len(blankSlot))

	changed := false
	for ch := range count {
		if previous != nil {
			prev, err := previous.ChannelData(ch)
			if err != nil {
				return "", err
			}

			if prev == data[ch] {
				sb.WriteString(blankSlot)
				continue
			}
		}

		changed = true
		// Always two digits (" 0a"), not the space-padded " a" of a "%2x" dump.
		fmt.Fprintf(&sb, " %02x", data[ch])
	}

	if !changed {
		return "", nil
	}

	marker := ""
	if truncated {
		marker = truncationMarker
	}

	return fmt.Sprintf("%9s [%s%s]\n", fmt.Sprintf("%dms", f.Offset().Milliseconds()), sb.String(), marker), nil
}

// check verifies that the frame still refers to live sequence data.
func (f Frame) check() error {
	if f.seq == nil {
		return fmt.Errorf("%w: zero frame", errs.ErrStaleFrame)
	}

	if f.generation != f.seq.generation {
		return fmt.Errorf("%w: frame %d", errs.ErrStaleFrame, f.index)
	}

	return nil
}

// data returns the frame's slice of the frame store. The caller must have
// called check.
func (f Frame) data() []byte {
	size := int(f.seq.channelCount)
	start := f.index * size

	return f.seq.frames[start : start+size]
}
