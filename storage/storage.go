// Package storage reads and writes sequence files, unwrapping or wrapping the
// optional compression container selected by the file extension.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arloliu/fseq/compress"
	"github.com/arloliu/fseq/errs"
	"github.com/arloliu/fseq/format"
	"github.com/arloliu/fseq/section"
)

// filePerm is the permission of newly written sequence files.
const filePerm = 0o644

// Load reads the file at path and returns the raw FSEQ bytes.
//
// Files ending in .zst, .zstd, .s2 or .lz4 are decompressed first.
//
// Returns:
//   - []byte: The FSEQ bytes
//   - error: I/O or decompression error, or ErrBadMagic if the result is not
//     a sequence
func Load(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sequence file: %w", err)
	}

	return Decode(raw, format.ContainerFromPath(path))
}

// Decode unwraps raw from container and checks that it holds a sequence.
func Decode(raw []byte, container format.ContainerType) ([]byte, error) {
	codec, err := compress.GetCodec(container)
	if err != nil {
		return nil, err
	}

	data, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%s container: %w", container, err)
	}

	if !section.IsSequence(data) {
		return nil, fmt.Errorf("%w: %s container does not hold a sequence", errs.ErrBadMagic, container)
	}

	return data, nil
}

// Encode wraps data in container.
func Encode(data []byte, container format.ContainerType) ([]byte, error) {
	codec, err := compress.GetCodec(container)
	if err != nil {
		return nil, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("%s container: %w", container, err)
	}

	return out, nil
}

// Save writes data to path, compressing it when the extension names a
// container.
//
// The file is written to a temporary file in the same directory and renamed
// into place, so readers never observe a partial file.
func Save(path string, data []byte) error {
	return SaveContainer(path, data, format.ContainerFromPath(path))
}

// SaveContainer writes data to path wrapped in container, regardless of the
// file extension.
func SaveContainer(path string, data []byte, container format.ContainerType) error {
	out, err := Encode(data, container)
	if err != nil {
		return err
	}

	return writeFileAtomic(path, out)
}

func writeFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}

	return nil
}
