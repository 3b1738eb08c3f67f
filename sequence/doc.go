// Package sequence provides the in-memory FSEQv2 document and frame-level access.
//
// A Sequence is either built from scratch and grown frame by frame, or parsed
// from a complete file buffer:
//
//	seq, err := sequence.New(512, 25*time.Millisecond)
//	if err != nil {
//	    return err
//	}
//	_ = seq.AddVariable("mf", "show.mp3")
//	for _, frame := range frames {
//	    if err := seq.AddFrame(frame); err != nil {
//	        return err
//	    }
//	}
//	data, err := seq.Bytes()
//
//	parsed, err := sequence.Parse(data)
//
// # Frames
//
// Frame is a lightweight cursor (sequence, index) over one frame's channel
// bytes. Frames are obtained with Sequence.Frame or Sequence.All and walked
// with Frame.Next. Frame.Dump renders a frame as hex and, given the previous
// frame, blanks unchanged channels so that a whole show can be diffed:
//
//	var prev *sequence.Frame
//	for f := range seq.All() {
//	    line, _ := f.Dump(64, prev)
//	    fmt.Print(line)
//	    prev = &f
//	}
//
// # Thread Safety
//
// Sequence is not safe for concurrent use. Any mutation invalidates the frames
// obtained before it; using such a frame returns errs.ErrStaleFrame.
package sequence
