package http

import "sync"

// Notification is one user-facing outcome message produced by a session's
// pipeline since the last state fetch.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	levelSuccess = "success"
	levelError   = "error"
)

// Collector buffers pipeline notifications per session until the client
// drains them with the next state read. It implements ports.Notifier.
type Collector struct {
	mu      sync.Mutex
	pending []Notification
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Success(message string) {
	c.append(levelSuccess, message)
}

func (c *Collector) Error(message string) {
	c.append(levelError, message)
}

func (c *Collector) append(level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, Notification{Level: level, Message: message})
}

// Drain returns the buffered notifications and clears the buffer.
func (c *Collector) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	drained := c.pending
	c.pending = nil
	return drained
}
