package fs

import (
	iofs "io/fs"
)

// EmbedFileSystem is a read-only FileSystem over any fs.FS, typically an
// embed.FS holding built-in templates.
type EmbedFileSystem struct {
	fs iofs.FS
}

func NewEmbedFileSystem(fs iofs.FS) *EmbedFileSystem {
	return &EmbedFileSystem{fs: fs}
}

func (fs *EmbedFileSystem) ReadFile(path string) ([]byte, error) {
	return iofs.ReadFile(fs.fs, path)
}

func (fs *EmbedFileSystem) ReadDir(path string) ([]iofs.DirEntry, error) {
	return iofs.ReadDir(fs.fs, path)
}

func (fs *EmbedFileSystem) FileExists(path string) bool {
	_, err := iofs.Stat(fs.fs, path)
	return err == nil
}

func (fs *EmbedFileSystem) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	return ErrReadOnly
}

func (fs *EmbedFileSystem) MkdirAll(path string, perm iofs.FileMode) error {
	return ErrReadOnly
}

func (fs *EmbedFileSystem) Remove(path string) error {
	return ErrReadOnly
}

func (fs *EmbedFileSystem) CopyFile(src, dst string) error {
	return ErrReadOnly
}

func (fs *EmbedFileSystem) CopyDir(src, dst string) (int, error) {
	return 0, ErrReadOnly
}
