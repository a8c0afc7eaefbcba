package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg reports that a scheduled task is due.
type timerMsg struct{ id uint64 }

// postMsg carries a function to run on the UI goroutine.
type postMsg struct{ fn func() }

// sender is the part of tea.Program the relay needs.
type sender interface {
	Send(msg tea.Msg)
}

// relay forwards messages from background goroutines to the program.
// Messages sent before the program is attached are held and delivered once
// it is. Send must not be called from the bubbletea goroutine, because
// Program.Send blocks until the event loop receives the message.
type relay struct {
	mu      sync.Mutex
	target  sender
	pending []tea.Msg
	closed  bool
}

// Send delivers msg to the attached program or queues it.
func (r *relay) Send(msg tea.Msg) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if r.target == nil {
		r.pending = append(r.pending, msg)
		r.mu.Unlock()
		return
	}
	target := r.target
	r.mu.Unlock()
	target.Send(msg)
}

// Attach sets the program and flushes queued messages in order. The flush
// runs on its own goroutine since the program may not be running yet.
func (r *relay) Attach(target sender) {
	r.mu.Lock()
	r.target = target
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(pending) == 0 {
		return
	}
	go func() {
		for _, msg := range pending {
			target.Send(msg)
		}
	}()
}

// Close drops queued and future messages.
func (r *relay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.pending = nil
}

// Scheduler runs cell animation steps and posted callbacks on the UI
// goroutine. Timers fire on their own goroutines and only send a message;
// the task itself runs when the model handles that message. Everything
// except Post must be called from the UI goroutine.
type Scheduler struct {
	send   func(tea.Msg)
	nextID uint64
	tasks  map[uint64]*task
}

type task struct {
	fn    func()
	timer *time.Timer
}

// NewScheduler creates a scheduler that delivers its messages with send.
func NewScheduler(send func(tea.Msg)) *Scheduler {
	return &Scheduler{send: send, tasks: make(map[uint64]*task)}
}

// After schedules fn to run after d. The returned function cancels it; a
// cancelled task never runs even if its timer already fired.
func (s *Scheduler) After(d time.Duration, fn func()) (cancel func()) {
	s.nextID++
	id := s.nextID
	t := &task{fn: fn}
	s.tasks[id] = t
	t.timer = time.AfterFunc(d, func() { s.send(timerMsg{id: id}) })

	return func() {
		if t, ok := s.tasks[id]; ok {
			t.timer.Stop()
			delete(s.tasks, id)
		}
	}
}

// Post arranges for fn to run on the UI goroutine. It is safe to call from
// any goroutine other than the UI goroutine.
func (s *Scheduler) Post(fn func()) {
	s.send(postMsg{fn: fn})
}

// Pending returns the number of scheduled tasks that have not run.
func (s *Scheduler) Pending() int { return len(s.tasks) }

// Stop cancels every scheduled task.
func (s *Scheduler) Stop() {
	for id, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, id)
	}
}

// fire runs the task for id if it is still scheduled.
func (s *Scheduler) fire(id uint64) {
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	delete(s.tasks, id)
	t.fn()
}
