package loader

import (
	"errors"
	"path/filepath"
)

// TempSuffix is appended to the target path for the in-progress write.
const TempSuffix = ".tmp"

// WriteAtomic writes data to path + TempSuffix, flushes it to stable
// storage, and renames it over path. On any failure the temp file is
// removed and the original file is left untouched.
func WriteAtomic(fsys FileSystem, path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return newIOError("mkdir", dir, err)
	}

	tmpPath := path + TempSuffix
	f, err := fsys.Create(tmpPath)
	if err != nil {
		return newIOError("create", tmpPath, err)
	}

	closed := false
	defer func() {
		if !closed {
			_ = f.Close()
		}
		if err != nil {
			_ = fsys.Remove(tmpPath)
		}
	}()

	n, err := f.Write(data)
	if err != nil {
		return newIOError("write", tmpPath, err)
	}
	if n != len(data) {
		return newIOError("write", tmpPath, errors.New("incomplete write"))
	}

	if err = f.Sync(); err != nil {
		return newIOError("sync", tmpPath, err)
	}

	closed = true
	if err = f.Close(); err != nil {
		return newIOError("close", tmpPath, err)
	}

	if err = fsys.Rename(tmpPath, path); err != nil {
		return newIOError("rename", path, err)
	}
	return nil
}
