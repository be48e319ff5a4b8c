// Package notify polls the notification endpoint on a fixed interval
// and merges the result into local state. Read-state is low-stakes and
// eventually consistent: marking a notification read is optimistic and
// never rolled back, because the next poll reconciles truth.
package notify

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mkravets/jobtrack/internal/client/gateway"
	"github.com/mkravets/jobtrack/internal/client/session"
	"github.com/mkravets/jobtrack/internal/models"
)

// DefaultInterval is the polling cadence.
const DefaultInterval = 10 * time.Second

// Poller periodically fetches the notification collection for the
// current session. At most one polling loop runs at a time.
type Poller struct {
	gw       *gateway.Gateway
	session  *session.Store
	log      *zap.Logger
	interval time.Duration

	// onUnauthorized runs when a poll hits a 401, so the shared
	// session-expiry recovery fires from the background loop too.
	onUnauthorized func()

	mu            sync.Mutex
	cancel        context.CancelFunc
	done          chan struct{}
	notifications []models.Notification
}

// New constructs a Poller. interval <= 0 selects DefaultInterval.
// onUnauthorized may be nil.
func New(gw *gateway.Gateway, sess *session.Store, log *zap.Logger, interval time.Duration, onUnauthorized func()) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		gw:             gw,
		session:        sess,
		log:            log,
		interval:       interval,
		onUnauthorized: onUnauthorized,
	}
}

// Start fetches immediately and then re-fetches on the fixed interval
// until Stop is called or ctx is cancelled. Starting while already
// running is a no-op: exactly one timer exists per poller.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	done := make(chan struct{})
	p.done = done
	p.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.fetch(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.fetch(ctx)
			}
		}
	}()
}

// Stop cancels the polling loop and waits for it to exit. It is safe
// to call when not running and must be called on logout and teardown
// so no timer keeps firing authorized calls after the credential is
// cleared.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a polling loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// fetch pulls the full collection and replaces the local state.
func (p *Poller) fetch(ctx context.Context) {
	token := p.session.Token()
	if token == "" {
		return
	}

	var notifications []models.Notification
	err := p.gw.Do(ctx, http.MethodGet, "/api/notifications", nil, token, &notifications)
	if err != nil {
		if gateway.IsUnauthorized(err) {
			p.log.Info("notification poll unauthorized, ending session")
			_ = p.session.Clear()
			if p.onUnauthorized != nil {
				p.onUnauthorized()
			}
			return
		}
		if ctx.Err() == nil {
			p.log.Warn("notification fetch failed", zap.Error(err))
		}
		return
	}

	p.mu.Lock()
	p.notifications = notifications
	p.mu.Unlock()
}

// Notifications returns the current local collection.
func (p *Poller) Notifications() []models.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.notifications)
}

// Unread counts locally unread notifications.
func (p *Poller) Unread() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, note := range p.notifications {
		if !note.Read {
			n++
		}
	}
	return n
}

// MarkRead flips the local read flag synchronously and issues the
// update call. The flip is one-way and survives a failed call; the
// next poll reconciles with the server either way.
func (p *Poller) MarkRead(ctx context.Context, id string) error {
	p.mu.Lock()
	for i := range p.notifications {
		if p.notifications[i].ID == id {
			p.notifications[i].Read = true
		}
	}
	p.mu.Unlock()

	token := p.session.Token()
	if token == "" {
		return nil
	}
	err := p.gw.Do(ctx, http.MethodPut, "/api/notifications/"+id+"/read", nil, token, nil)
	if err != nil {
		p.log.Warn("mark read failed", zap.String("id", id), zap.Error(err))
	}
	return err
}
