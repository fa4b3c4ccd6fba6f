// Package git runs repository searches in the background for the editor.
//
// A Searcher answers two kinds of request: content search with
// "git grep" and file listing with "git ls-files" filtered by a fuzzy
// query. Each call runs to completion on the caller's goroutine and
// sends exactly one result message through a bridge.Sender, an empty one
// when git fails. Results are capped at MaxResults: git output is read
// line by line and git is stopped as soon as the cap is reached, so memory
// use does not grow with the number of matches. Cancelling ctx stops git.
//
//	s := git.NewSearcher(root)
//	go s.Grep(ctx, b.Sender(), tracker.Issue(bridge.KindGrep, "TODO"))
package git
