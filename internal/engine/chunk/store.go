package chunk

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/fresh/internal/engine/buffer"
)

// DefaultChunkSize is the size of the chunks a file is partitioned into
// when opened, and the upper bound for coalescing Loaded chunks.
const DefaultChunkSize int64 = 64 * 1024

// Option configures a Store.
type Option func(*Store)

// WithChunkSize sets the chunk size. Values below 1 are ignored.
func WithChunkSize(n int64) Option {
	return func(s *Store) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// Store is the chunked content of one document.
//
// Store is not safe for concurrent use; it belongs to the editor's single
// mutation path.
type Store struct {
	backing   Backing
	chunks    []Chunk
	size      int64
	chunkSize int64
}

// Open creates a Store over backing. Nothing is read besides the size.
func Open(backing Backing, opts ...Option) (*Store, error) {
	s := &Store{
		backing:   backing,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	size, err := backing.Size()
	if err != nil {
		return nil, err
	}
	s.size = size
	s.chunks = partition(0, size, s.chunkSize)
	return s, nil
}

// FromString creates a Store over an in-memory copy of text.
func FromString(text string, opts ...Option) *Store {
	s, err := Open(NewMemoryBacking([]byte(text)), opts...)
	if err != nil {
		// MemoryBacking.Size cannot fail.
		panic(err)
	}
	return s
}

func partition(offset, size, chunkSize int64) []Chunk {
	chunks := make([]Chunk, 0, size/chunkSize+1)
	for off := int64(0); off < size; off += chunkSize {
		n := min(chunkSize, size-off)
		chunks = append(chunks, Chunk{
			Kind:   Unloaded,
			Offset: offset + off,
			Size:   n,
			Source: off,
		})
	}
	return chunks
}

// Backing returns the store's backing resource.
func (s *Store) Backing() Backing {
	return s.backing
}

// Len returns the document size in bytes.
func (s *Store) Len() int64 {
	return s.size
}

// ChunkSize returns the configured chunk size.
func (s *Store) ChunkSize() int64 {
	return s.chunkSize
}

// Chunks returns a copy of the chunk list for inspection.
func (s *Store) Chunks() []Chunk {
	out := make([]Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// LoadedBytes returns the number of content bytes held in memory.
func (s *Store) LoadedBytes() int64 {
	var n int64
	for _, c := range s.chunks {
		if c.Kind == Loaded {
			n += c.Size
		}
	}
	return n
}

// IsModified reports whether any chunk diverges from the backing file.
func (s *Store) IsModified() bool {
	for _, c := range s.chunks {
		if c.Modified {
			return true
		}
	}
	return false
}

// Read returns the content of [offset, offset+length), materializing every
// Unloaded chunk that overlaps the span.
func (s *Store) Read(offset, length int64) (string, error) {
	if err := buffer.CheckSpan("read", offset, length, s.size); err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}

	chunks, i, j, err := s.isolate(offset, offset+length)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(int(length))
	for k := i; k < j; k++ {
		if chunks[k].Kind == Unloaded {
			data, err := s.backing.ReadSpan(chunks[k].Source, chunks[k].Size)
			if err != nil {
				return "", err
			}
			chunks[k] = newLoaded(chunks[k].Offset, data, false)
		}
		sb.Write(chunks[k].Data)
	}

	s.chunks = chunks
	return sb.String(), nil
}

// Text returns the whole document, materializing it.
func (s *Store) Text() (string, error) {
	return s.Read(0, s.size)
}

// Insert inserts text at position.
func (s *Store) Insert(position int64, text string) error {
	if err := buffer.CheckSpan("insert", position, 0, s.size); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	_, err := s.replace(position, position, text)
	return err
}

// Delete removes the range and returns the removed text.
func (s *Store) Delete(r buffer.Range) (string, error) {
	if err := buffer.CheckSpan("delete", r.Start, r.Len(), s.size); err != nil {
		return "", err
	}
	if r.IsEmpty() {
		return "", nil
	}
	return s.replace(r.Start, r.End, "")
}

// replace substitutes [start, end) with text. The covered chunks are
// replaced by one Loaded modified chunk and the tail is shifted. The result
// is built on a copy and swapped in last.
func (s *Store) replace(start, end int64, text string) (string, error) {
	chunks, i, j, err := s.isolate(start, end)
	if err != nil {
		return "", err
	}

	var removed strings.Builder
	for k := i; k < j; k++ {
		data, err := s.contentOf(chunks[k])
		if err != nil {
			return "", err
		}
		removed.Write(data)
	}

	delta := int64(len(text)) - (end - start)
	out := make([]Chunk, 0, len(chunks)-(j-i)+1)
	out = append(out, chunks[:i]...)
	out = append(out, newLoaded(start, []byte(text), true))
	for _, c := range chunks[j:] {
		c.Offset += delta
		out = append(out, c)
	}

	s.chunks = s.coalesce(out)
	s.size += delta
	return removed.String(), nil
}

// isolate returns a copy of the chunk list split so that chunk boundaries
// exist at start and end, together with the index range [i, j) of the
// chunks covering the span. For an empty span i == j is the insertion index.
func (s *Store) isolate(start, end int64) ([]Chunk, int, int, error) {
	chunks := make([]Chunk, len(s.chunks))
	copy(chunks, s.chunks)

	var err error
	if chunks, err = splitAt(chunks, start); err != nil {
		return nil, 0, 0, err
	}
	if chunks, err = splitAt(chunks, end); err != nil {
		return nil, 0, 0, err
	}

	i := 0
	for i < len(chunks) && chunks[i].End() <= start {
		i++
	}
	j := i
	for j < len(chunks) && chunks[j].Offset < end {
		j++
	}
	return chunks, i, j, nil
}

// splitAt splits the chunk strictly containing at, if any.
func splitAt(chunks []Chunk, at int64) ([]Chunk, error) {
	for k, c := range chunks {
		if at <= c.Offset || at >= c.End() {
			continue
		}
		left, right, err := c.Split(at)
		if err != nil {
			return nil, err
		}
		out := make([]Chunk, 0, len(chunks)+1)
		out = append(out, chunks[:k]...)
		out = append(out, left, right)
		out = append(out, chunks[k+1:]...)
		return out, nil
	}
	return chunks, nil
}

// coalesce merges adjacent Loaded chunks whose combined size fits in the
// chunk size. Empty Loaded chunks always merge into a Loaded neighbour.
func (s *Store) coalesce(chunks []Chunk) []Chunk {
	out := chunks[:0:0]
	for _, c := range chunks {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if prev.Kind == Loaded && c.Kind == Loaded &&
				(prev.Size+c.Size <= s.chunkSize || prev.Size == 0 || c.Size == 0) {
				data := make([]byte, 0, prev.Size+c.Size)
				data = append(data, prev.Data...)
				data = append(data, c.Data...)
				out[n-1] = newLoaded(prev.Offset, data, prev.Modified || c.Modified)
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// contentOf returns a chunk's bytes without retaining them in the store.
func (s *Store) contentOf(c Chunk) ([]byte, error) {
	if c.Kind == Loaded {
		return c.Data, nil
	}
	if c.Size == 0 {
		return nil, nil
	}
	return s.backing.ReadSpan(c.Source, c.Size)
}

// Save writes the document to the backing file and clears every modified
// flag. Unloaded chunks are streamed from the backing file without being
// materialized. On failure the store is unchanged and remains modified.
func (s *Store) Save() error {
	return s.saveTo(s.backing)
}

// SaveAs writes the document to target and makes it the store's backing
// file. Unloaded chunks are streamed from the old backing file. On failure
// the store is unchanged.
func (s *Store) SaveAs(target Backing) error {
	if err := s.saveTo(target); err != nil {
		return err
	}
	s.backing = target
	return nil
}

func (s *Store) saveTo(target Backing) error {
	readers := make([]io.Reader, 0, len(s.chunks))
	for _, c := range s.chunks {
		switch {
		case c.Size == 0:
		case c.Kind == Loaded:
			readers = append(readers, bytes.NewReader(c.Data))
		default:
			readers = append(readers, &spanReader{backing: s.backing, off: c.Source, n: c.Size})
		}
	}

	if err := target.WriteAll(io.MultiReader(readers...)); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	saved := make([]Chunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		if c.Size == 0 {
			continue
		}
		c.Modified = false
		c.Source = c.Offset
		saved = append(saved, c)
	}
	s.chunks = saved
	return nil
}
