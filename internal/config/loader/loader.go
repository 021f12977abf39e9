// Package loader provides the file-level primitives behind settings
// persistence: bounded whole-file reads, atomic replace-on-write, and
// quarantine of corrupt files.
//
// All operations go through a FileSystem so tests can inject failures
// without touching the real disk.
package loader

import (
	"io"
	"io/fs"
	"os"
)

// File is a readable file handle.
type File interface {
	io.Reader
	io.Closer
	Stat() (fs.FileInfo, error)
}

// WriteFile is a writable file handle that can be flushed to stable storage.
type WriteFile interface {
	io.Writer
	io.Closer
	Sync() error
}

// FileSystem is an abstraction for file system operations.
type FileSystem interface {
	// Open opens a file for reading.
	Open(name string) (File, error)
	// Create creates or truncates a file for writing.
	Create(name string) (WriteFile, error)
	// Stat returns file info for path.
	Stat(name string) (fs.FileInfo, error)
	// Rename atomically replaces newpath with oldpath.
	Rename(oldpath, newpath string) error
	// Remove deletes a file.
	Remove(name string) error
	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string, perm fs.FileMode) error
	// ReadDir lists a directory.
	ReadDir(name string) ([]fs.DirEntry, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements FileSystem.
func (OSFS) Open(name string) (File, error) {
	return os.Open(name)
}

// Create implements FileSystem.
func (OSFS) Create(name string) (WriteFile, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
}

// Stat implements FileSystem.
func (OSFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Rename implements FileSystem.
func (OSFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Remove implements FileSystem.
func (OSFS) Remove(name string) error {
	return os.Remove(name)
}

// MkdirAll implements FileSystem.
func (OSFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// ReadDir implements FileSystem.
func (OSFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Exists reports whether name exists. Errors other than absence count as
// existing so callers surface them when they try to read.
func Exists(fsys FileSystem, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil || !os.IsNotExist(err)
}
