package section

import (
	"fmt"

	"github.com/arloliu/fseq/endian"
	"github.com/arloliu/fseq/errs"
)

// Variable is a single tagged metadata record from the variable block.
//
// Wire layout:
//
//	Bytes  | Field | Type    | Description
//	-------|-------|---------|-------------------------------------
//	0-1    | Size  | uint16  | Total record size including this header
//	2-3    | Code  | [2]byte | ASCII tag, e.g. "mf" or "sp"
//	4-     | Data  | []byte  | Size-4 bytes of payload
//
// A zero Size marks the end of the block (trailing padding).
type Variable struct {
	Size uint16
	Code string
	Data string
}

// IsSentinel reports whether v is the end-of-block marker.
func (v Variable) IsSentinel() bool {
	return v.Size == 0
}

// ParseVariable parses one variable record from the start of data.
//
// When fewer than 4 bytes remain, or the size field is zero, the zero
// sentinel record is returned.
//
// Returns:
//   - Variable: Parsed record, or the sentinel
//   - error: ErrTruncatedRecord if the declared size overruns data
func ParseVariable(data []byte) (Variable, error) {
	var v Variable

	if len(data) < VariableHeaderSize {
		return v, nil
	}

	v.Size = endian.GetLittleEndianEngine().Uint16(data[0:2])
	if v.Size == 0 {
		return v, nil
	}

	if v.Size < VariableHeaderSize {
		return Variable{}, fmt.Errorf("%w: declared size %d is smaller than the record header", errs.ErrTruncatedRecord, v.Size)
	}

	if int(v.Size) > len(data) {
		return Variable{}, fmt.Errorf("%w: code %q declares %d bytes, %d remain",
			errs.ErrTruncatedRecord, data[2:4], v.Size, len(data))
	}

	v.Code = string(data[2:4])
	v.Data = string(data[VariableHeaderSize:v.Size])

	return v, nil
}

// AppendVariable appends the wire form of one variable record to dst.
//
// Returns:
//   - []byte: dst with the record appended (unchanged on error)
//   - error: ErrInvalidCodeLength if code is not 2 bytes, ErrDataTooLarge if
//     data exceeds MaxVariableDataSize
func AppendVariable(dst []byte, code, data string) ([]byte, error) {
	if err := ValidateVariable(code, data); err != nil {
		return dst, err
	}

	size := uint16(VariableHeaderSize + len(data)) //nolint:gosec

	dst = endian.GetLittleEndianEngine().AppendUint16(dst, size)
	dst = append(dst, code...)
	dst = append(dst, data...)

	return dst, nil
}

// ValidateVariable checks code and data against the record constraints.
func ValidateVariable(code, data string) error {
	if len(code) != VariableCodeLength {
		return fmt.Errorf("%w: %q has %d bytes, want %d", errs.ErrInvalidCodeLength, code, len(code), VariableCodeLength)
	}

	if len(data) > MaxVariableDataSize {
		return fmt.Errorf("%w: %q has %d bytes, max %d", errs.ErrDataTooLarge, code, len(data), MaxVariableDataSize)
	}

	return nil
}
