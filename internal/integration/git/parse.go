package git

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/fresh/internal/bridge"
)

// ParseGrepLine parses one line of "git grep -n --column" output,
// file:line:column:content. Colons inside content are kept; surrounding
// whitespace is trimmed.
func ParseGrepLine(line string) (bridge.GrepMatch, bool) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) != 4 {
		return bridge.GrepMatch{}, false
	}

	lineNum, err := strconv.Atoi(parts[1])
	if err != nil {
		return bridge.GrepMatch{}, false
	}
	column, err := strconv.Atoi(parts[2])
	if err != nil {
		return bridge.GrepMatch{}, false
	}

	return bridge.GrepMatch{
		File:    parts[0],
		Line:    lineNum,
		Column:  column,
		Content: strings.TrimSpace(parts[3]),
	}, true
}

// FuzzyMatch reports whether every rune of query appears in path in
// order, ignoring case. An empty query matches everything.
func FuzzyMatch(path, query string) bool {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return true
	}
	i := 0
	for _, r := range strings.ToLower(path) {
		if r == q[i] {
			i++
			if i == len(q) {
				return true
			}
		}
	}
	return false
}

// FilterFiles returns the paths matching query, those whose file name
// contains query first, keeping listing order otherwise, capped at limit.
func FilterFiles(paths []string, query string, limit int) []string {
	var out []string
	for _, p := range paths {
		if FuzzyMatch(p, query) {
			out = append(out, p)
		}
	}

	rank := func(p string) int {
		if nameMatches(p, query) {
			return 0
		}
		return 1
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// nameMatches reports whether the file name of path contains query,
// ignoring case. An empty query matches every name.
func nameMatches(path, query string) bool {
	name := path[strings.LastIndexByte(path, '/')+1:]
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}
