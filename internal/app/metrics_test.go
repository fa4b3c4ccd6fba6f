package app

import (
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.RenderCount != 0 || s.EventCount != 0 || s.AvgRenderNs != 0 {
		t.Errorf("new metrics not empty: %+v", s)
	}
	if s.StaleRate() != 0 {
		t.Errorf("StaleRate = %v with no results", s.StaleRate())
	}
}

func TestMetrics_RecordRender(t *testing.T) {
	m := NewMetrics()

	m.RecordRender(10 * time.Millisecond)
	m.RecordRender(20 * time.Millisecond)
	m.RecordRender(6 * time.Millisecond)

	s := m.Snapshot()
	if s.RenderCount != 3 {
		t.Errorf("expected 3 renders, got %d", s.RenderCount)
	}
	if s.AvgRenderNs != int64(12*time.Millisecond) {
		t.Errorf("expected avg 12ms, got %d ns", s.AvgRenderNs)
	}
	if s.MaxRenderNs != int64(20*time.Millisecond) {
		t.Errorf("expected max 20ms, got %d ns", s.MaxRenderNs)
	}
}

func TestMetrics_RecordEvent(t *testing.T) {
	m := NewMetrics()

	m.RecordEvent(time.Millisecond)
	m.RecordEvent(3 * time.Millisecond)

	s := m.Snapshot()
	if s.EventCount != 2 || s.AvgEventNs != int64(2*time.Millisecond) {
		t.Errorf("events = %d avg = %d", s.EventCount, s.AvgEventNs)
	}
}

func TestMetrics_StaleRate(t *testing.T) {
	m := NewMetrics()
	m.RecordResult(true)
	m.RecordResult(false)
	m.RecordResult(true)
	m.RecordResult(true)

	s := m.Snapshot()
	if s.ResultsAccepted != 3 || s.ResultsStale != 1 {
		t.Errorf("accepted = %d stale = %d", s.ResultsAccepted, s.ResultsStale)
	}
	if s.StaleRate() != 25 {
		t.Errorf("StaleRate = %v, want 25", s.StaleRate())
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m.RecordRender(time.Duration(i+1) * time.Millisecond)
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.RenderCount != 1000 {
		t.Errorf("expected 1000 renders, got %d", s.RenderCount)
	}
	if s.MaxRenderNs != int64(10*time.Millisecond) {
		t.Errorf("expected max 10ms, got %d ns", s.MaxRenderNs)
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)
	if timer.Elapsed() < 2*time.Millisecond {
		t.Errorf("Elapsed = %v", timer.Elapsed())
	}
}
