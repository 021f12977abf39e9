package loader

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultFS wraps OSFS and fails selected operations.
type faultFS struct {
	OSFS
	renameErr error
	syncErr   error
	writeErr  error
	mkdirErr  error
	size      int64 // overrides reported size when non-zero
	truncate  int   // limits bytes returned by reads when non-zero
}

func (f *faultFS) Rename(oldpath, newpath string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	return f.OSFS.Rename(oldpath, newpath)
}

func (f *faultFS) MkdirAll(path string, perm fs.FileMode) error {
	if f.mkdirErr != nil {
		return f.mkdirErr
	}
	return f.OSFS.MkdirAll(path, perm)
}

func (f *faultFS) Create(name string) (WriteFile, error) {
	w, err := f.OSFS.Create(name)
	if err != nil {
		return nil, err
	}
	return &faultWriter{WriteFile: w, fs: f}, nil
}

func (f *faultFS) Open(name string) (File, error) {
	r, err := f.OSFS.Open(name)
	if err != nil {
		return nil, err
	}
	return &faultReader{File: r, fs: f}, nil
}

type faultWriter struct {
	WriteFile
	fs *faultFS
}

func (w *faultWriter) Write(p []byte) (int, error) {
	if w.fs.writeErr != nil {
		return 0, w.fs.writeErr
	}
	return w.WriteFile.Write(p)
}

func (w *faultWriter) Sync() error {
	if w.fs.syncErr != nil {
		return w.fs.syncErr
	}
	return w.WriteFile.Sync()
}

type faultReader struct {
	File
	fs   *faultFS
	read int
}

func (r *faultReader) Stat() (fs.FileInfo, error) {
	info, err := r.File.Stat()
	if err != nil || r.fs.size == 0 {
		return info, err
	}
	return sizedInfo{FileInfo: info, size: r.fs.size}, nil
}

func (r *faultReader) Read(p []byte) (int, error) {
	if r.fs.truncate > 0 {
		remaining := r.fs.truncate - r.read
		if remaining <= 0 {
			return 0, io.EOF
		}
		if len(p) > remaining {
			p = p[:remaining]
		}
	}
	n, err := r.File.Read(p)
	r.read += n
	return n, err
}

type sizedInfo struct {
	fs.FileInfo
	size int64
}

func (s sizedInfo) Size() int64 { return s.size }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadBounded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	content := strings.Repeat("x", readChunkSize*2+17)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	data, err := ReadBounded(DefaultFS(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestReadBounded_Missing(t *testing.T) {
	_, err := ReadBounded(DefaultFS(), filepath.Join(t.TempDir(), "missing"), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "open", ioErr.Op)
	assert.NotZero(t, ioErr.Code)
}

func TestReadBounded_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.json")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	_, err := ReadBounded(DefaultFS(), path, 5)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = ReadBounded(&faultFS{size: MaxSettingsFileSize + 1}, path, 0)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = ReadBounded(&faultFS{size: -1}, path, 0)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestReadBounded_ShortRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	_, err := ReadBounded(&faultFS{truncate: 4}, path, 0)
	assert.ErrorIs(t, err, ErrShortRead)
}

func TestWriteAtomic_CreatesParentAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "s.json")

	require.NoError(t, WriteAtomic(DefaultFS(), path, []byte("one")))
	require.NoError(t, WriteAtomic(DefaultFS(), path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	_, err = os.Stat(path + TempSuffix)
	assert.True(t, os.IsNotExist(err), "temp file must not remain")
}

func TestWriteAtomic_FailureKeepsOriginal(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		fs   *faultFS
		op   string
	}{
		{"rename", &faultFS{renameErr: boom}, "rename"},
		{"sync", &faultFS{syncErr: boom}, "sync"},
		{"write", &faultFS{writeErr: boom}, "write"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "s.json")
			require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

			err := WriteAtomic(tt.fs, path, []byte("replacement"))
			require.ErrorIs(t, err, boom)

			var ioErr *IOError
			require.ErrorAs(t, err, &ioErr)
			assert.Equal(t, tt.op, ioErr.Op)

			data, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, "original", string(data))

			_, statErr := os.Stat(path + TempSuffix)
			assert.True(t, os.IsNotExist(statErr), "temp file must be removed")
		})
	}
}

func TestWriteAtomic_MkdirFailure(t *testing.T) {
	boom := errors.New("denied")
	err := WriteAtomic(&faultFS{mkdirErr: boom}, filepath.Join(t.TempDir(), "x", "s.json"), []byte("{}"))
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "mkdir", ioErr.Op)
}

func TestQuarantine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.settings.json")
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	require.NoError(t, os.WriteFile(path, []byte("bad one"), 0o644))
	first, ok := Quarantine(DefaultFS(), path, now, discardLogger())
	require.True(t, ok)
	assert.Equal(t, path+".bad.20260304T050607Z", first)

	require.NoError(t, os.WriteFile(path, []byte("bad two"), 0o644))
	second, ok := Quarantine(DefaultFS(), path, now, discardLogger())
	require.True(t, ok)
	assert.Equal(t, path+".bad.20260304T050607Z.1", second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "bad one", string(data))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestQuarantine_ExhaustedOrFailing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.json")
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.WriteFile(path, []byte("bad"), 0o644))

	for n := 0; n <= MaxQuarantineProbes; n++ {
		require.NoError(t, os.WriteFile(QuarantineName(path, now, n), nil, 0o644))
	}
	_, ok := Quarantine(DefaultFS(), path, now, discardLogger())
	assert.False(t, ok)

	_, ok = Quarantine(&faultFS{renameErr: errors.New("locked")}, path, now.Add(time.Hour), discardLogger())
	assert.False(t, ok)

	_, err := os.Stat(path)
	assert.NoError(t, err, "original stays in place when quarantine fails")
}
