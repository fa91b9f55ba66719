package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/orrery/content"
)

// CommandKind identifies an input routed to the orchestrator
type CommandKind uint8

const (
	CommandScroll CommandKind = iota
	CommandJump
	CommandDataset
)

// Command is one queued input; Value carries the scroll delta or jump year
type Command struct {
	Kind    CommandKind
	Value   float64
	Dataset *content.Dataset
}

// InputQueue carries commands from input goroutines to the tick goroutine
// Commands take effect at the start of the next tick, in arrival order
type InputQueue struct {
	ch      chan Command
	dropped atomic.Uint64
}

// NewInputQueue creates a queue with the given capacity
func NewInputQueue(size int) *InputQueue {
	if size < 1 {
		size = 1
	}
	return &InputQueue{ch: make(chan Command, size)}
}

// Push enqueues without blocking; returns false and counts a drop when full
func (q *InputQueue) Push(cmd Command) bool {
	select {
	case q.ch <- cmd:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Scroll enqueues a scroll delta
func (q *InputQueue) Scroll(delta float64) bool {
	return q.Push(Command{Kind: CommandScroll, Value: delta})
}

// Jump enqueues a jump to year
func (q *InputQueue) Jump(year float64) bool {
	return q.Push(Command{Kind: CommandJump, Value: year})
}

// ReplaceDataset enqueues a dataset swap
func (q *InputQueue) ReplaceDataset(ds *content.Dataset) bool {
	return q.Push(Command{Kind: CommandDataset, Dataset: ds})
}

// Drain calls fn for every command queued at entry
// Bounded by the backlog at entry so producers cannot starve the tick; single consumer only
func (q *InputQueue) Drain(fn func(Command)) int {
	n := len(q.ch)
	for i := 0; i < n; i++ {
		fn(<-q.ch)
	}
	return n
}

// Dropped returns the number of commands rejected because the queue was full
func (q *InputQueue) Dropped() uint64 {
	return q.dropped.Load()
}
