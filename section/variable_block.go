package section

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/fseq/errs"
	"github.com/arloliu/fseq/internal/pool"
)

// DecodeVariables decodes every record of a variable block into a map keyed by code.
//
// Records are read sequentially, advancing by each record's declared size,
// until the zero-size sentinel or the end of data. A code seen twice keeps
// the data of its last record.
//
// Parameters:
//   - data: The variable block, i.e. bytes [VariableDataOffset, ChannelDataOffset)
//
// Returns:
//   - map[string]string: code to data mapping (never nil)
//   - error: ErrTruncatedRecord if a record overruns the block
func DecodeVariables(data []byte) (map[string]string, error) {
	vars := make(map[string]string)

	offset := 0
	for offset < len(data) {
		v, err := ParseVariable(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("variable at block offset %d: %w", offset, err)
		}

		if v.IsSentinel() {
			break
		}

		vars[v.Code] = v.Data
		offset += int(v.Size)
	}

	return vars, nil
}

// EncodeVariables encodes vars into a variable block.
//
// Records are written in ascending code order and the block is zero-padded to
// a multiple of VariableAlignment bytes.
//
// Returns:
//   - []byte: The padded block
//   - error: ErrInvalidCodeLength or ErrDataTooLarge for a bad record; an error
//     matching both ErrDocumentTooLarge and ErrDataTooLarge when the header plus
//     block would not fit the uint16 channel data offset
func EncodeVariables(vars map[string]string) ([]byte, error) {
	buf := pool.GetVariableBuffer()
	defer pool.PutVariableBuffer(buf)

	var err error
	for _, code := range slices.Sorted(maps.Keys(vars)) {
		buf.B, err = AppendVariable(buf.B, code, vars[code])
		if err != nil {
			return nil, err
		}

		if HeaderSize+buf.Len() > MaxDataOffset {
			break
		}
	}

	buf.PadTo(VariableAlignment)

	if HeaderSize+buf.Len() > MaxDataOffset {
		return nil, fmt.Errorf("%w: %w: variable block needs more than %d bytes",
			errs.ErrDocumentTooLarge, errs.ErrDataTooLarge, MaxDataOffset-HeaderSize)
	}

	return buf.Clone(), nil
}

// PaddedLen returns n rounded up to the variable block alignment.
func PaddedLen(n int) int {
	return (n + VariableAlignment - 1) / VariableAlignment * VariableAlignment
}
