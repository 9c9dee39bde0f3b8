// Package queue serializes command execution so at most one external command
// runs at a time. User-initiated items always start before queued background
// items, and background items coalesce by key so redundant refreshes collapse
// to the newest one.
//
// The queue never auto-advances on process exit: the consumer calls MarkIdle
// once it has fully handled a result, which is what lets the controller finish
// its bookkeeping before the next command starts.
package queue

import "sync"

// Priority classifies a queued item.
type Priority int

// Priorities.
const (
	// User marks explicit user actions (stage, commit, push). They always
	// start before queued Background work.
	User Priority = iota
	// Background marks automatic refreshes. Same-key background items
	// coalesce, newest wins.
	Background
)

// Item is one queued action. Start runs when the item is admitted; it is
// responsible for the work that eventually leads to MarkIdle being called.
type Item struct {
	Key      string
	Priority Priority
	Start    func()
}

// Queue admits one item at a time. Safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	running  bool
	items    []Item
	onChange func()
}

// New returns an idle queue. onChange, when non-nil, fires after every state
// transition (enqueue, start, idle) outside the queue lock.
func New(onChange func()) *Queue {
	return &Queue{onChange: onChange}
}

// Running reports whether a command is currently active.
func (q *Queue) Running() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.running
}

// Len reports how many items are waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Enqueue adds an item and starts it immediately when the queue is idle.
// A Background item first drops every queued item sharing its key.
func (q *Queue) Enqueue(item Item) {
	q.mu.Lock()
	if item.Priority == Background {
		kept := q.items[:0]
		for _, queued := range q.items {
			if queued.Key != item.Key {
				kept = append(kept, queued)
			}
		}
		q.items = kept
	}
	q.items = append(q.items, item)
	next := q.takeNextLocked()
	q.mu.Unlock()

	q.notifyChange()
	q.startItem(next)
}

// MarkRunning blocks the queue without admitting anything, for commands that
// bypass Enqueue.
func (q *Queue) MarkRunning() {
	q.mu.Lock()
	q.running = true
	q.mu.Unlock()
	q.notifyChange()
}

// MarkIdle releases the gate and admits the next queued item, if any.
func (q *Queue) MarkIdle() {
	q.mu.Lock()
	q.running = false
	next := q.takeNextLocked()
	q.mu.Unlock()

	q.notifyChange()
	q.startItem(next)
}

// takeNextLocked removes and returns the item to admit, marking the queue
// running, or returns nil when busy or empty. Any User item beats every
// Background item regardless of arrival order.
func (q *Queue) takeNextLocked() *Item {
	if q.running || len(q.items) == 0 {
		return nil
	}

	pick := 0
	for i, item := range q.items {
		if item.Priority == User {
			pick = i
			break
		}
	}

	item := q.items[pick]
	q.items = append(q.items[:pick], q.items[pick+1:]...)
	q.running = true
	return &item
}

func (q *Queue) startItem(item *Item) {
	if item == nil {
		return
	}
	q.notifyChange()
	if item.Start != nil {
		item.Start()
	}
}

func (q *Queue) notifyChange() {
	if q.onChange != nil {
		q.onChange()
	}
}
