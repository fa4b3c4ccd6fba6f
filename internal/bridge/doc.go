// Package bridge carries completed background results into the editor's
// single-threaded update loop.
//
// Producers (git searches, the config watcher) receive only a Sender. They
// never touch editor state; they send one message per finished request. The
// loop calls Drain once per input cycle, which never blocks, and asks a
// Tracker whether each result still belongs to the current request before
// using it. Issuing a newer request of the same kind cancels the context
// of the one it supersedes, so abandoned searches stop early.
//
//	b := bridge.New(bridge.DefaultCapacity)
//	ctx, req := tracker.Start(parent, bridge.KindGrep, "foo")
//	go searcher.Grep(ctx, b.Sender(), req)
//	...
//	for _, msg := range b.Drain() {
//	    if tracker.Accept(msg) {
//	        apply(msg)
//	    }
//	}
package bridge
