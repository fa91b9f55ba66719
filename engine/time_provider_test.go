package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/orrery/parameter"
)

var (
	_ TimeProvider = (*MonotonicTimeProvider)(nil)
	_ TimeProvider = (*MockTimeProvider)(nil)
	_ Timeline     = (*TimeController)(nil)
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := provider.Now()

	if diff := t2.Sub(t1); diff < 5*time.Millisecond {
		t.Errorf("Expected at least 5ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if now := mock.Now(); !now.Equal(start) {
		t.Fatalf("Expected initial time %v, got %v", start, now)
	}

	mock.Advance(time.Hour)
	mock.AdvanceFrames(3)
	expected := start.Add(time.Hour + 3*parameter.FrameUpdateInterval)
	if now := mock.Now(); !now.Equal(expected) {
		t.Errorf("Expected %v after advances, got %v", expected, now)
	}
	if elapsed := mock.Elapsed(); elapsed != expected.Sub(start) {
		t.Errorf("Expected elapsed %v, got %v", expected.Sub(start), elapsed)
	}

	reset := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.SetTime(reset)
	if now := mock.Now(); !now.Equal(reset) {
		t.Errorf("Expected %v after SetTime, got %v", reset, now)
	}
	if elapsed := mock.Elapsed(); elapsed != 0 {
		t.Errorf("Expected SetTime to reset elapsed, got %v", elapsed)
	}
}

func TestMockTimeProviderConcurrency(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				mock.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	if now := mock.Now(); !now.Equal(start.Add(250 * time.Millisecond)) {
		t.Errorf("Expected 250ms advance after concurrent writers, got %v", now.Sub(start))
	}
}
