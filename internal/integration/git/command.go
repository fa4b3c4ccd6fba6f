package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// lineBufferSize bounds the memory spent on one output line. Longer lines
// are cut to this size.
const lineBufferSize = 64 * 1024

// Runner executes git and hands each non-empty line of its standard output
// to fn, in order. When fn returns false the command is stopped and Run
// returns nil. Tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, dir string, args []string, fn func(line string) bool) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, dir string, args []string, fn func(line string) bool) error

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, dir string, args []string, fn func(line string) bool) error {
	return f(ctx, dir, args, fn)
}

// ExecRunner runs the git binary.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, args []string, fn func(line string) bool) error {
	return newGitCommand(dir, args...).run(ctx, fn)
}

// gitCommand is one git invocation.
type gitCommand struct {
	dir  string
	args []string
}

func newGitCommand(dir string, args ...string) *gitCommand {
	return &gitCommand{dir: dir, args: args}
}

// run executes the command, streaming its output to fn. Stopping early
// kills git. A non-zero exit is returned as an *exec.ExitError wrapped
// with git's stderr.
func (c *gitCommand) run(ctx context.Context, fn func(line string) bool) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "git", c.args...)
	if c.dir != "" {
		cmd.Dir = c.dir
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("git %s: %w", strings.Join(c.args, " "), err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("git %s: %w", strings.Join(c.args, " "), err)
	}

	stopped, scanErr := scanLines(stdout, fn)
	if stopped || scanErr != nil {
		// git may be blocked writing output nobody reads.
		cancel()
	}
	waitErr := cmd.Wait()

	switch {
	case stopped:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case scanErr != nil:
		return fmt.Errorf("git %s: read output: %w", strings.Join(c.args, " "), scanErr)
	case waitErr != nil:
		return fmt.Errorf("git %s: %s: %w",
			strings.Join(c.args, " "), strings.TrimSpace(stderr.String()), waitErr)
	}
	return nil
}

// scanLines reads r line by line until fn returns false or r is
// exhausted, and reports whether fn stopped it. Memory use is bounded by
// lineBufferSize whatever the output size.
func scanLines(r io.Reader, fn func(line string) bool) (bool, error) {
	br := bufio.NewReaderSize(r, lineBufferSize)
	for {
		chunk, err := br.ReadSlice('\n')
		line := string(chunk)
		// Skip the remainder of an overlong line.
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = br.ReadSlice('\n')
		}

		if line = strings.TrimRight(line, "\r\n"); line != "" && !fn(line) {
			return true, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
	}
}

// Discover finds the repository root containing path by walking up the
// directory tree looking for .git.
func Discover(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}

	current := absPath
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrRepositoryNotFound
		}
		current = parent
	}
}
