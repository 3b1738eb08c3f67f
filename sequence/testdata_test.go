package sequence

import (
	"time"
)

const referenceTimestampUs = 1742822121000000

// referenceShow returns the bytes of a 4 channel, 4 frame, 20ms show with the
// variables mf and sp, built field by field.
func referenceShow() []byte {
	vars := []byte{20, 0, 'm', 'f'}
	vars = append(vars, "deadbeefcafe.wav"...)
	vars = append(vars, 22, 0, 's', 'p')
	vars = append(vars, "VLT creator v0.0.7"...)
	vars = append(vars, 0, 0) // padding to 44 bytes

	data := []byte{'P', 'S', 'E', 'Q'}
	data = append(data, byte(32+len(vars)), 0) // channel data offset
	data = append(data, 0, 2)                  // version minor, major
	data = append(data, 32, 0)                 // variable data offset
	data = append(data, 4, 0, 0, 0)            // channel count
	data = append(data, 4, 0, 0, 0)            // frame count
	data = append(data, 20, 0, 0, 0, 0, 0)     // step time, flags, compression, sparse, reserved
	data = append(data, 0x40, 0xcc, 0x6d, 0x65, 0x16, 0x31, 0x06, 0x00)
	data = append(data, vars...)
	data = append(data,
		0x00, 0x01, 0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b,
		0x0c, 0x0d, 0x0e, 0x0f,
	)

	return data
}

func referenceCreated() time.Time {
	return time.UnixMicro(referenceTimestampUs)
}
