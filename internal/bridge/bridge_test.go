package bridge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDrainIsNonBlocking(t *testing.T) {
	b := New(4)
	if got := b.Drain(); got != nil {
		t.Fatalf("empty drain = %v", got)
	}

	s := b.Sender()
	ctx := context.Background()
	for _, q := range []string{"a", "b", "c"} {
		if err := s.Send(ctx, FileListResults{Req: NewRequest(KindFiles, q)}); err != nil {
			t.Fatal(err)
		}
	}

	got := b.Drain()
	if len(got) != 3 {
		t.Fatalf("drained %d messages, expected 3", len(got))
	}
	for i, q := range []string{"a", "b", "c"} {
		if got[i].Request().Query != q {
			t.Errorf("message %d query = %q, expected %q", i, got[i].Request().Query, q)
		}
	}
	if b.Pending() != 0 {
		t.Errorf("pending = %d after drain", b.Pending())
	}
}

func TestSendHonorsContext(t *testing.T) {
	b := New(1)
	s := b.Sender()
	if err := s.Send(context.Background(), GrepResults{}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := s.Send(ctx, GrepResults{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("send on full bridge = %v, expected deadline exceeded", err)
	}
}

func TestCloseReleasesSenders(t *testing.T) {
	b := New(1)
	s := b.Sender()
	_ = s.Send(context.Background(), GrepResults{})

	var wg sync.WaitGroup
	var err error
	wg.Add(1)
	go func() {
		defer wg.Done()
		err = s.Send(context.Background(), GrepResults{})
	}()
	b.Close()
	wg.Wait()

	if !errors.Is(err, ErrClosed) {
		t.Errorf("blocked send after close = %v", err)
	}
	if len(b.Drain()) != 1 {
		t.Error("buffered message should survive close")
	}
}

func TestZeroSenderDrops(t *testing.T) {
	var s Sender
	if err := s.Send(context.Background(), GrepResults{}); err != nil {
		t.Errorf("zero sender = %v", err)
	}
}

func TestTrackerDropsStaleResults(t *testing.T) {
	b := New(DefaultCapacity)
	tr := NewTracker()
	ctx := context.Background()

	foo := tr.Issue(KindGrep, "foo")
	bar := tr.Issue(KindGrep, "bar")

	// foo finishes after bar became current.
	_ = b.Sender().Send(ctx, GrepResults{Req: foo, Matches: []GrepMatch{{File: "a.go"}}})

	var visible []GrepMatch
	apply := func() {
		for _, m := range b.Drain() {
			if tr.Accept(m) {
				visible = m.(GrepResults).Matches
			}
		}
	}

	apply()
	if visible != nil {
		t.Fatalf("stale result applied: %v", visible)
	}

	_ = b.Sender().Send(ctx, GrepResults{Req: bar, Matches: []GrepMatch{{File: "b.go"}}})
	apply()
	if len(visible) != 1 || visible[0].File != "b.go" {
		t.Errorf("visible = %v, expected the bar result", visible)
	}
}

func TestTrackerKinds(t *testing.T) {
	tr := NewTracker()
	files := tr.Issue(KindFiles, "main")

	tests := []struct {
		name string
		msg  Message
		want bool
	}{
		{"current files", FileListResults{Req: files}, true},
		{"grep never issued", GrepResults{Req: NewRequest(KindGrep, "main")}, false},
		{"config always", ConfigReloaded{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Accept(tt.msg); got != tt.want {
				t.Errorf("Accept = %v, expected %v", got, tt.want)
			}
		})
	}

	tr.Cancel(KindFiles)
	if tr.Accept(FileListResults{Req: files}) {
		t.Error("cancelled request should be stale")
	}
}

func TestTrackerStartCancelsSupersededRequest(t *testing.T) {
	tr := NewTracker()
	parent := context.Background()

	fooCtx, _ := tr.Start(parent, KindGrep, "foo")
	barCtx, bar := tr.Start(parent, KindGrep, "bar")
	filesCtx, _ := tr.Start(parent, KindFiles, "main")

	if !errors.Is(fooCtx.Err(), context.Canceled) {
		t.Errorf("superseded request context = %v, expected canceled", fooCtx.Err())
	}
	if barCtx.Err() != nil || filesCtx.Err() != nil {
		t.Fatalf("current contexts cancelled: grep %v, files %v", barCtx.Err(), filesCtx.Err())
	}

	if !tr.Accept(GrepResults{Req: bar}) {
		t.Fatal("result for the current request rejected")
	}
	if !errors.Is(barCtx.Err(), context.Canceled) {
		t.Error("answered request context should be released")
	}

	tr.Cancel(KindFiles)
	if !errors.Is(filesCtx.Err(), context.Canceled) {
		t.Error("cancelled request context should be cancelled")
	}
}

func TestTrackerSameQueryResultKeepsNewerContext(t *testing.T) {
	tr := NewTracker()
	_, old := tr.Start(context.Background(), KindGrep, "fo")
	ctx, _ := tr.Start(context.Background(), KindGrep, "fo")

	// An older answer to the same query is still usable but must not
	// stop the newer producer.
	if !tr.Accept(GrepResults{Req: old}) {
		t.Error("same-query result rejected")
	}
	if ctx.Err() != nil {
		t.Errorf("newer request context = %v", ctx.Err())
	}
}

func TestSendDeliversWithDoneContextWhenRoom(t *testing.T) {
	b := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.Sender().Send(ctx, GrepResults{}); err != nil {
		t.Fatalf("send with room = %v", err)
	}
	if b.Pending() != 1 {
		t.Errorf("pending = %d, expected 1", b.Pending())
	}
}
