package loader

import (
	"errors"
	"fmt"
	"io"
)

// MaxSettingsFileSize is the hard cap on a settings file.
const MaxSettingsFileSize = 16 << 20

const readChunkSize = 64 << 10

// ReadBounded reads the whole file at path. It fails with ErrFileTooLarge
// if the reported size is negative or above maxBytes (capped at
// MaxSettingsFileSize), and with ErrShortRead if fewer bytes than the
// reported size can be read.
func ReadBounded(fsys FileSystem, path string, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 || maxBytes > MaxSettingsFileSize {
		maxBytes = MaxSettingsFileSize
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, newIOError("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, newIOError("stat", path, err)
	}

	size := info.Size()
	if size < 0 || size > maxBytes {
		return nil, &SizeError{Path: path, Size: size, Limit: maxBytes}
	}

	data := make([]byte, size)
	var total int64
	for total < size {
		end := min(total+readChunkSize, size)
		n, err := f.Read(data[total:end])
		total += int64(n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, newIOError("read", path, err)
		}
		if n == 0 {
			break
		}
	}

	if total < size {
		return nil, fmt.Errorf("%s: read %d of %d bytes: %w", path, total, size, ErrShortRead)
	}
	return data, nil
}
