package server

import (
	"sync"
	"time"

	"github.com/GabrielNunesIT/go-libs/logger"

	"github.com/GabrielNunesIT/swagger-preview/internal/viewer"
)

// notificationBacklog bounds undrained notifications; older ones are dropped.
const notificationBacklog = 50

// Notification is a transient message for the page.
type Notification struct {
	Level   viewer.Level `json:"level"`
	Message string       `json:"message"`
	At      time.Time    `json:"at"`
}

// Notifications buffers coordinator notifications until the page drains them.
type Notifications struct {
	log logger.ILogger

	mu    sync.Mutex
	items []Notification
}

// NewNotifications creates an empty buffer.
func NewNotifications(log logger.ILogger) *Notifications {
	return &Notifications{log: log}
}

// Notify implements viewer.Notifier.
func (n *Notifications) Notify(level viewer.Level, message string) {
	if level == viewer.LevelError {
		n.log.Errorf("notify: %s", message)
	} else {
		n.log.Infof("notify: %s", message)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = append(n.items, Notification{Level: level, Message: message, At: time.Now()})
	if len(n.items) > notificationBacklog {
		n.items = n.items[len(n.items)-notificationBacklog:]
	}
}

// Drain returns and forgets the buffered notifications, oldest first.
func (n *Notifications) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	items := n.items
	n.items = nil
	if items == nil {
		items = []Notification{}
	}
	return items
}
