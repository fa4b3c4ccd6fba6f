package chunk

import (
	"bytes"
	"fmt"

	"github.com/dshills/fresh/internal/engine/buffer"
)

// lineCountOf returns the number of newlines in chunk k, caching the count.
func (s *Store) lineCountOf(k int) (int64, error) {
	c := &s.chunks[k]
	if c.linesKnown {
		return c.lines, nil
	}
	data, err := s.contentOf(*c)
	if err != nil {
		return 0, err
	}
	c.lines = int64(bytes.Count(data, newline))
	c.linesKnown = true
	return c.lines, nil
}

// LineCount returns the number of lines. An empty document has one line,
// and a trailing newline starts a final empty line.
func (s *Store) LineCount() (int64, error) {
	var n int64
	for k := range s.chunks {
		lines, err := s.lineCountOf(k)
		if err != nil {
			return 0, err
		}
		n += lines
	}
	return n + 1, nil
}

// ByteToLine returns the 0-indexed line containing offset.
func (s *Store) ByteToLine(offset int64) (int64, error) {
	if err := buffer.CheckSpan("byte to line", offset, 0, s.size); err != nil {
		return 0, err
	}

	var line int64
	for k, c := range s.chunks {
		if c.End() <= offset {
			lines, err := s.lineCountOf(k)
			if err != nil {
				return 0, err
			}
			line += lines
			continue
		}
		if c.Offset < offset {
			data, err := s.contentOf(c)
			if err != nil {
				return 0, err
			}
			line += int64(bytes.Count(data[:offset-c.Offset], newline))
		}
		break
	}
	return line, nil
}

// LineToByte returns the offset of the first byte of line.
func (s *Store) LineToByte(line int64) (int64, error) {
	if line == 0 {
		return 0, nil
	}
	if line < 0 {
		return 0, fmt.Errorf("line %d: %w", line, buffer.ErrInvalidOffset)
	}

	var seen int64
	for k, c := range s.chunks {
		lines, err := s.lineCountOf(k)
		if err != nil {
			return 0, err
		}
		if seen+lines < line {
			seen += lines
			continue
		}

		data, err := s.contentOf(c)
		if err != nil {
			return 0, err
		}
		idx := nthIndex(data, line-seen)
		return c.Offset + int64(idx) + 1, nil
	}
	return 0, fmt.Errorf("line %d of %d: %w", line, seen+1, buffer.ErrInvalidOffset)
}

// LineStart is an alias of LineToByte.
func (s *Store) LineStart(line int64) (int64, error) {
	return s.LineToByte(line)
}

// LineEnd returns the offset just past the last content byte of line,
// excluding its newline.
func (s *Store) LineEnd(line int64) (int64, error) {
	count, err := s.LineCount()
	if err != nil {
		return 0, err
	}
	if line < 0 || line >= count {
		return 0, fmt.Errorf("line %d of %d: %w", line, count, buffer.ErrInvalidOffset)
	}
	if line == count-1 {
		return s.size, nil
	}
	next, err := s.LineToByte(line + 1)
	if err != nil {
		return 0, err
	}
	return next - 1, nil
}

// LineText returns the content of line without its newline. Only the
// chunks overlapping that line are materialized.
func (s *Store) LineText(line int64) (string, error) {
	start, err := s.LineToByte(line)
	if err != nil {
		return "", err
	}
	end, err := s.LineEnd(line)
	if err != nil {
		return "", err
	}
	return s.Read(start, end-start)
}

// nthIndex returns the index of the n-th (1-based) newline in data.
func nthIndex(data []byte, n int64) int {
	pos := 0
	for ; n > 0; n-- {
		i := bytes.IndexByte(data[pos:], '\n')
		if i < 0 {
			return -1
		}
		pos += i + 1
	}
	return pos - 1
}
