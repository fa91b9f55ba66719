package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/orrery/parameter"
)

// MockTimeProvider is a wall clock that only moves when told to
// Headless runs step it one frame interval per tick so the transition hold behaves as in the viewer
type MockTimeProvider struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{start: start, now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// SetTime moves the clock to t; Elapsed is measured from the new time
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.start, m.now = t, t
}

func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// AdvanceFrames advances by n render frames
func (m *MockTimeProvider) AdvanceFrames(n int) {
	m.Advance(time.Duration(n) * parameter.FrameUpdateInterval)
}

// Elapsed returns the mocked time passed since construction or the last SetTime
func (m *MockTimeProvider) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now.Sub(m.start)
}
