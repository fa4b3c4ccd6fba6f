package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/fresh/internal/bridge"
)

func TestParseGrepLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bridge.GrepMatch
		ok   bool
	}{
		{
			name: "simple",
			line: "src/main.go:10:5:func main() {",
			want: bridge.GrepMatch{File: "src/main.go", Line: 10, Column: 5, Content: "func main() {"},
			ok:   true,
		},
		{
			name: "colons in content",
			line: `config.json:5:10:  "port": 8080,`,
			want: bridge.GrepMatch{File: "config.json", Line: 5, Column: 10, Content: `"port": 8080,`},
			ok:   true,
		},
		{name: "missing column", line: "a.go:3:text", ok: false},
		{name: "bad line number", line: "a.go:x:1:text", ok: false},
		{name: "empty", line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseGrepLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		path, query string
		want        bool
	}{
		{"internal/engine/state.go", "state", true},
		{"internal/engine/state.go", "ies", true},
		{"internal/engine/state.go", "STG", true},
		{"internal/engine/state.go", "zz", false},
		{"a.go", "", true},
		{"ab", "ba", false},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.query, func(t *testing.T) {
			if got := FuzzyMatch(tt.path, tt.query); got != tt.want {
				t.Errorf("FuzzyMatch(%q, %q) = %v", tt.path, tt.query, got)
			}
		})
	}
}

func TestFilterFilesRanksFileNames(t *testing.T) {
	paths := []string{
		"main/go.sum",
		"cmd/main.go",
		"docs/readme.md",
		"internal/domain.go",
	}

	got := FilterFiles(paths, "main", 10)
	want := []string{"cmd/main.go", "internal/domain.go", "main/go.sum"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("FilterFiles = %v, want %v", got, want)
	}
}

func TestFilterFilesCap(t *testing.T) {
	var paths []string
	for i := range 250 {
		paths = append(paths, fmt.Sprintf("f%03d.go", i))
	}
	if got := FilterFiles(paths, "", MaxResults); len(got) != MaxResults {
		t.Errorf("len = %d, want %d", len(got), MaxResults)
	}
}

// fakeRunner streams output line by line, recording the arguments of
// each call and how many lines the caller consumed.
type fakeRunner struct {
	output string
	err    error
	calls  [][]string
	read   int
}

func (f *fakeRunner) Run(_ context.Context, _ string, args []string, fn func(string) bool) error {
	f.calls = append(f.calls, args)
	for line := range strings.Lines(f.output) {
		f.read++
		if !fn(strings.TrimRight(line, "\n")) {
			return nil
		}
	}
	return f.err
}

func TestSearcherGrep(t *testing.T) {
	var output strings.Builder
	for i := range 150 {
		fmt.Fprintf(&output, "a.go:%d:1:line %d\n", i+1, i)
	}
	runner := &fakeRunner{output: output.String()}
	s := NewSearcher("/repo", WithRunner(runner))

	b := bridge.New(4)
	req := bridge.NewRequest(bridge.KindGrep, "-v")
	if err := s.Grep(context.Background(), b.Sender(), req); err != nil {
		t.Fatal(err)
	}

	msgs := b.Drain()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages", len(msgs))
	}
	res := msgs[0].(bridge.GrepResults)
	if res.Req != req {
		t.Errorf("request = %v, want %v", res.Req, req)
	}
	if len(res.Matches) != MaxResults {
		t.Errorf("matches = %d, want cap %d", len(res.Matches), MaxResults)
	}
	if runner.read != MaxResults {
		t.Errorf("read %d lines, expected to stop at the cap of %d", runner.read, MaxResults)
	}
	want := "grep -n --column -I -- -v"
	if got := strings.Join(runner.calls[0], " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestSearcherSendsEmptyResultOnFailure(t *testing.T) {
	failure := errors.New("not a git repository")
	s := NewSearcher("/tmp", WithRunner(&fakeRunner{err: failure}))
	b := bridge.New(4)
	ctx := context.Background()

	if err := s.Grep(ctx, b.Sender(), bridge.NewRequest(bridge.KindGrep, "foo")); !errors.Is(err, failure) {
		t.Errorf("Grep error = %v", err)
	}
	if err := s.ListFiles(ctx, b.Sender(), bridge.NewRequest(bridge.KindFiles, "foo")); !errors.Is(err, failure) {
		t.Errorf("ListFiles error = %v", err)
	}
	if err := s.Grep(ctx, b.Sender(), bridge.NewRequest(bridge.KindGrep, "  ")); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("empty query error = %v", err)
	}

	msgs := b.Drain()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want one per request", len(msgs))
	}
	if m := msgs[0].(bridge.GrepResults); len(m.Matches) != 0 {
		t.Errorf("grep matches = %v", m.Matches)
	}
	if m := msgs[1].(bridge.FileListResults); len(m.Files) != 0 {
		t.Errorf("files = %v", m.Files)
	}
}

func TestListFilesStopsAfterEnoughNameMatches(t *testing.T) {
	var output strings.Builder
	for i := range 50 {
		fmt.Fprintf(&output, "pkg/main%02d.go\n", i)
	}
	runner := &fakeRunner{output: output.String()}
	s := NewSearcher("/repo", WithRunner(runner), WithLimit(10))
	b := bridge.New(4)

	if err := s.ListFiles(context.Background(), b.Sender(), bridge.NewRequest(bridge.KindFiles, "main")); err != nil {
		t.Fatal(err)
	}
	files := b.Drain()[0].(bridge.FileListResults).Files
	if len(files) != 10 || files[0] != "pkg/main00.go" || files[9] != "pkg/main09.go" {
		t.Errorf("files = %v", files)
	}
	if runner.read != 10 {
		t.Errorf("read %d lines, expected 10", runner.read)
	}
}

func TestSearcherGrepCancelled(t *testing.T) {
	runner := RunnerFunc(func(ctx context.Context, _ string, _ []string, _ func(string) bool) error {
		<-ctx.Done()
		return ctx.Err()
	})
	s := NewSearcher("/repo", WithRunner(runner))
	b := bridge.New(4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Grep(ctx, b.Sender(), bridge.NewRequest(bridge.KindGrep, "foo")); !errors.Is(err, context.Canceled) {
		t.Errorf("Grep error = %v, expected canceled", err)
	}
	msgs := b.Drain()
	if len(msgs) != 1 || len(msgs[0].(bridge.GrepResults).Matches) != 0 {
		t.Errorf("expected one empty result, got %v", msgs)
	}
}

// endlessReader yields grep output lines forever and counts the bytes
// handed out.
type endlessReader struct {
	line  string
	bytes int
}

func (r *endlessReader) Read(p []byte) (int, error) {
	n := 0
	for n+len(r.line) <= len(p) {
		n += copy(p[n:], r.line)
	}
	if n == 0 {
		n = copy(p, r.line)
	}
	r.bytes += n
	return n, nil
}

func TestScanLinesStopsReading(t *testing.T) {
	r := &endlessReader{line: "a.go:1:1:foo := 1\n"}
	count := 0
	stopped, err := scanLines(r, func(line string) bool {
		if _, ok := ParseGrepLine(line); !ok {
			t.Fatalf("bad line %q", line)
		}
		count++
		return count < MaxResults
	})
	if err != nil || !stopped {
		t.Fatalf("stopped = %v, err = %v", stopped, err)
	}
	if count != MaxResults {
		t.Errorf("lines = %d, expected %d", count, MaxResults)
	}
	if r.bytes > 2*lineBufferSize {
		t.Errorf("read %d bytes for %d lines", r.bytes, count)
	}
}

func TestScanLinesTruncatesLongLines(t *testing.T) {
	long := strings.Repeat("x", 3*lineBufferSize)
	input := "a.go:1:1:" + long + "\nb.go:2:1:short\n\n"

	var lines []string
	stopped, err := scanLines(strings.NewReader(input), func(line string) bool {
		lines = append(lines, line)
		return true
	})
	if err != nil || stopped {
		t.Fatalf("stopped = %v, err = %v", stopped, err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, expected 2", len(lines))
	}
	if len(lines[0]) != lineBufferSize || !strings.HasPrefix(lines[0], "a.go:1:1:x") {
		t.Errorf("long line kept %d bytes", len(lines[0]))
	}
	if lines[1] != "b.go:2:1:short" {
		t.Errorf("second line = %q", lines[1])
	}
}

// testRepo creates a temporary git repository, skipping when git is not
// installed.
func testRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	gitCmd(t, dir, "init", "-q")
	return dir
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
}

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func TestSearcherAgainstRepository(t *testing.T) {
	dir := testRepo(t)
	createFile(t, dir, "src/main.go", "package main\n\nfunc main() {}\n")
	createFile(t, dir, "README.md", "fresh editor\n")
	gitCmd(t, dir, "add", ".")

	root, err := Discover(filepath.Join(dir, "src"))
	if err != nil {
		t.Fatal(err)
	}
	s := NewSearcher(root)
	b := bridge.New(4)
	ctx := context.Background()

	if err := s.Grep(ctx, b.Sender(), bridge.NewRequest(bridge.KindGrep, "func main")); err != nil {
		t.Fatal(err)
	}
	if err := s.Grep(ctx, b.Sender(), bridge.NewRequest(bridge.KindGrep, "no-such-text")); err != nil {
		t.Fatalf("no match should not be an error: %v", err)
	}
	if err := s.ListFiles(ctx, b.Sender(), bridge.NewRequest(bridge.KindFiles, "main")); err != nil {
		t.Fatal(err)
	}

	msgs := b.Drain()
	grep := msgs[0].(bridge.GrepResults)
	if len(grep.Matches) != 1 || grep.Matches[0] != (bridge.GrepMatch{File: "src/main.go", Line: 3, Column: 1, Content: "func main() {}"}) {
		t.Errorf("grep = %+v", grep.Matches)
	}
	if none := msgs[1].(bridge.GrepResults); len(none.Matches) != 0 {
		t.Errorf("unexpected matches %+v", none.Matches)
	}
	files := msgs[2].(bridge.FileListResults)
	if len(files.Files) != 1 || files.Files[0] != "src/main.go" {
		t.Errorf("files = %v", files.Files)
	}
}

func TestDiscoverOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	if root, err := Discover(dir); err == nil {
		// The temp dir itself may live inside a checkout.
		if _, statErr := os.Stat(filepath.Join(root, ".git")); statErr != nil {
			t.Errorf("Discover returned %q without .git", root)
		}
	} else if !errors.Is(err, ErrRepositoryNotFound) {
		t.Errorf("Discover error = %v", err)
	}
}
