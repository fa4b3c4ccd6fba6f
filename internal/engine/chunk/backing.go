package chunk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrIO reports a failure of the backing file.
var ErrIO = errors.New("backing i/o failure")

// Backing is the file-like resource a Store reads from and saves to.
type Backing interface {
	// Size returns the current length of the resource in bytes.
	Size() (int64, error)

	// ReadSpan returns exactly n bytes starting at off.
	ReadSpan(off, n int64) ([]byte, error)

	// WriteAll replaces the whole content with the bytes read from r.
	// On failure the previous content must remain readable.
	WriteAll(r io.Reader) error
}

// FileBacking reads spans from a file on disk and saves atomically through
// a temporary file in the same directory.
type FileBacking struct {
	path string
	perm os.FileMode
}

// NewFileBacking creates a backing for path. The file does not need to exist
// yet; a missing file behaves as empty until the first save.
func NewFileBacking(path string) *FileBacking {
	return &FileBacking{path: path, perm: 0o644}
}

// Path returns the file path.
func (f *FileBacking) Path() string {
	return f.path
}

// Size implements Backing.
func (f *FileBacking) Size() (int64, error) {
	info, err := os.Stat(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w: %w", f.path, ErrIO, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("stat %s: %w: is a directory", f.path, ErrIO)
	}
	return info.Size(), nil
}

// ReadSpan implements Backing.
func (f *FileBacking) ReadSpan(off, n int64) ([]byte, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", f.path, ErrIO, err)
	}
	defer file.Close()

	buf := make([]byte, n)
	if _, err := file.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("read %s [%d,+%d): %w: %w", f.path, off, n, ErrIO, err)
	}
	return buf, nil
}

// WriteAll implements Backing.
func (f *FileBacking) WriteAll(r io.Reader) error {
	if info, err := os.Stat(f.path); err == nil {
		f.perm = info.Mode().Perm()
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp in %s: %w: %w", dir, ErrIO, err)
	}
	tmpName := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return fmt.Errorf("write %s: %w: %w", f.path, ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w: %w", f.path, ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w: %w", f.path, ErrIO, err)
	}
	if err := os.Chmod(tmpName, f.perm); err != nil {
		return fmt.Errorf("chmod %s: %w: %w", f.path, ErrIO, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("rename %s: %w: %w", f.path, ErrIO, err)
	}
	ok = true
	return nil
}

// MemoryBacking keeps the content in memory. It backs scratch documents.
type MemoryBacking struct {
	data []byte
}

// NewMemoryBacking creates a backing holding a copy of data.
func NewMemoryBacking(data []byte) *MemoryBacking {
	return &MemoryBacking{data: bytes.Clone(data)}
}

// Bytes returns a copy of the stored content.
func (m *MemoryBacking) Bytes() []byte {
	return bytes.Clone(m.data)
}

// Size implements Backing.
func (m *MemoryBacking) Size() (int64, error) {
	return int64(len(m.data)), nil
}

// ReadSpan implements Backing.
func (m *MemoryBacking) ReadSpan(off, n int64) ([]byte, error) {
	if off < 0 || n < 0 || off+n > int64(len(m.data)) {
		return nil, fmt.Errorf("read [%d,+%d) of %d bytes: %w", off, n, len(m.data), ErrIO)
	}
	return bytes.Clone(m.data[off : off+n]), nil
}

// WriteAll implements Backing.
func (m *MemoryBacking) WriteAll(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("write: %w: %w", ErrIO, err)
	}
	m.data = data
	return nil
}

// spanReader streams one Unloaded span during save. The span is fetched on
// first read and released once consumed.
type spanReader struct {
	backing Backing
	off, n  int64
	buf     *bytes.Reader
}

func (s *spanReader) Read(p []byte) (int, error) {
	if s.buf == nil {
		data, err := s.backing.ReadSpan(s.off, s.n)
		if err != nil {
			return 0, err
		}
		s.buf = bytes.NewReader(data)
	}
	n, err := s.buf.Read(p)
	if err == io.EOF {
		s.buf = bytes.NewReader(nil)
	}
	return n, err
}
