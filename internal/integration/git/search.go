package git

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/dshills/fresh/internal/bridge"
)

// MaxResults caps the entries of one result message.
const MaxResults = 100

// Searcher runs searches in one repository.
type Searcher struct {
	dir    string
	runner Runner
	limit  int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithRunner replaces the git executor.
func WithRunner(r Runner) Option {
	return func(s *Searcher) {
		s.runner = r
	}
}

// WithLimit sets the result cap.
func WithLimit(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewSearcher creates a searcher running git in dir.
func NewSearcher(dir string, opts ...Option) *Searcher {
	s := &Searcher{dir: dir, runner: ExecRunner{}, limit: MaxResults}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory git runs in.
func (s *Searcher) Dir() string {
	return s.dir
}

// Grep searches file contents for req.Query and sends the matches. It
// returns the search failure, if any, after sending an empty result; the
// only other error is a failed send.
func (s *Searcher) Grep(ctx context.Context, out bridge.Sender, req bridge.Request) error {
	matches, err := s.grep(ctx, req.Query)
	if sendErr := out.Send(ctx, bridge.GrepResults{Req: req, Matches: matches}); sendErr != nil {
		return sendErr
	}
	return err
}

func (s *Searcher) grep(ctx context.Context, query string) ([]bridge.GrepMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	// -I skips binary files; "--" ends options so the query may start
	// with a dash.
	args := []string{"grep", "-n", "--column", "-I", "--", query}
	var matches []bridge.GrepMatch
	err := s.runner.Run(ctx, s.dir, args, func(line string) bool {
		if m, ok := ParseGrepLine(line); ok {
			matches = append(matches, m)
		}
		return len(matches) < s.limit
	})
	if err != nil {
		// git grep exits 1 when nothing matched.
		var exit *exec.ExitError
		if errors.As(err, &exit) && exit.ExitCode() == 1 {
			return nil, nil
		}
		return nil, err
	}
	return matches, nil
}

// ListFiles lists tracked files matching req.Query and sends them, best
// matches first. Failures are handled as in Grep.
func (s *Searcher) ListFiles(ctx context.Context, out bridge.Sender, req bridge.Request) error {
	files, err := s.listFiles(ctx, req.Query)
	if sendErr := out.Send(ctx, bridge.FileListResults{Req: req, Files: files}); sendErr != nil {
		return sendErr
	}
	return err
}

// listFiles keeps only matching paths and stops listing once limit of them
// match by file name, since nothing later can rank ahead of those.
func (s *Searcher) listFiles(ctx context.Context, query string) ([]string, error) {
	var paths []string
	best := 0
	err := s.runner.Run(ctx, s.dir, []string{"ls-files"}, func(path string) bool {
		if !FuzzyMatch(path, query) {
			return true
		}
		paths = append(paths, path)
		if nameMatches(path, query) {
			best++
		}
		return best < s.limit
	})
	if err != nil {
		return nil, err
	}
	return FilterFiles(paths, query, s.limit), nil
}
