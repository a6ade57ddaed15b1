package webhook

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds each individual send.
const DefaultTimeout = 5 * time.Second

// Registration subscribes one endpoint to one event name. The same
// event may have any number of registrations; each is invoked
// independently and no ordering across them is promised.
type Registration struct {
	Event string `json:"event"`
	URL   string `json:"url"`
}

// Envelope is the JSON body POSTed to subscribers.
type Envelope struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Sender delivers one envelope to one destination.
type Sender interface {
	Send(ctx context.Context, url string, env Envelope) error
}

// Manager fans events out to registered subscribers. Each send gets its
// own timeout, and one endpoint failing or timing out never prevents
// delivery attempts to the others: delivery is best-effort, failures
// are logged and swallowed.
type Manager struct {
	mu    sync.RWMutex
	hooks []Registration

	sender  Sender
	logger  *zap.SugaredLogger
	timeout time.Duration

	now func() time.Time
}

func NewManager(sender Sender, logger *zap.SugaredLogger, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		sender:  sender,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

// Register subscribes url to event.
func (m *Manager) Register(event, url string) {
	m.mu.Lock()
	m.hooks = append(m.hooks, Registration{Event: event, URL: url})
	m.mu.Unlock()

	m.logger.Infow("webhook registered", "event", event, "url", url)
}

// Registrations returns a snapshot of the current subscriptions.
func (m *Manager) Registrations() []Registration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Registration(nil), m.hooks...)
}

// Trigger fires event to every matching subscriber, at most once each.
func (m *Manager) Trigger(ctx context.Context, event string, data any) {
	env := Envelope{
		Event:     event,
		Timestamp: m.now(),
		Data:      data,
	}

	for _, hook := range m.Registrations() {
		if hook.Event != event {
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, m.timeout)
		err := m.sender.Send(sendCtx, hook.URL, env)
		cancel()

		if err != nil {
			m.logger.Errorw("webhook delivery failed", "event", event, "url", hook.URL, "error", err)
			continue
		}
		m.logger.Infow("webhook delivered", "event", event, "url", hook.URL)
	}
}
