package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/mkravets/jobtrack/internal/client/gateway"
	"github.com/mkravets/jobtrack/internal/client/session"
	"github.com/mkravets/jobtrack/internal/models"
)

func testSession(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if err := s.SetCredential(token, false); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	return s
}

func TestStartStop_FetchesImmediatelyThenOnInterval(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		json.NewEncoder(w).Encode([]models.Notification{{ID: "n1", Message: "hi"}})
	}))
	defer srv.Close()

	p := New(gateway.New(srv.URL, zap.NewNop()), testSession(t), zap.NewNop(), 30*time.Millisecond, nil)
	p.Start(context.Background())
	defer p.Stop()

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt32(&fetches) < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := atomic.LoadInt32(&fetches); got < 3 {
		t.Fatalf("fetches = %d; want at least 3 (immediate + interval)", got)
	}
	if len(p.Notifications()) != 1 {
		t.Errorf("Notifications = %d; want 1", len(p.Notifications()))
	}
}

func TestStart_TwiceKeepsSingleTimer(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := New(gateway.New(srv.URL, zap.NewNop()), testSession(t), zap.NewNop(), 40*time.Millisecond, nil)
	p.Start(context.Background())
	p.Start(context.Background()) // no-op: one active loop only
	defer p.Stop()

	time.Sleep(150 * time.Millisecond)
	got := atomic.LoadInt32(&fetches)
	// One timer over ~150ms at a 40ms cadence: 1 immediate + 3 ticks,
	// with headroom. Two timers would roughly double this.
	if got > 6 {
		t.Fatalf("fetches = %d; duplicate polling loop suspected", got)
	}
	if !p.Running() {
		t.Error("Running = false; want true")
	}
}

func TestStop_HaltsFetching(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := New(gateway.New(srv.URL, zap.NewNop()), testSession(t), zap.NewNop(), 20*time.Millisecond, nil)
	p.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	p.Stop()
	if p.Running() {
		t.Fatal("Running = true after Stop")
	}

	before := atomic.LoadInt32(&fetches)
	time.Sleep(80 * time.Millisecond)
	if after := atomic.LoadInt32(&fetches); after != before {
		t.Fatalf("fetches advanced from %d to %d after Stop", before, after)
	}

	// Stop again is safe, and a fresh Start works.
	p.Stop()
	p.Start(context.Background())
	defer p.Stop()
	if !p.Running() {
		t.Error("Running = false after restart")
	}
}

func TestMarkRead_OptimisticFlipSurvivesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := New(gateway.New(srv.URL, zap.NewNop()), testSession(t), zap.NewNop(), time.Hour, nil)
	p.mu.Lock()
	p.notifications = []models.Notification{{ID: "n1", Read: false}, {ID: "n2", Read: false}}
	p.mu.Unlock()

	err := p.MarkRead(context.Background(), "n1")
	if err == nil {
		t.Fatal("expected the update call to fail")
	}
	// The local flag flipped synchronously and is not rolled back;
	// read-state reconciles on the next poll.
	notes := p.Notifications()
	if !notes[0].Read {
		t.Error("n1 must be read locally despite the failed call")
	}
	if notes[1].Read {
		t.Error("n2 must stay unread")
	}
	if p.Unread() != 1 {
		t.Errorf("Unread = %d; want 1", p.Unread())
	}
}

func TestFetch_UnauthorizedClearsSessionAndStops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := testSession(t)
	var hookCalls int32
	p := New(gateway.New(srv.URL, zap.NewNop()), sess, zap.NewNop(), time.Hour, func() {
		atomic.AddInt32(&hookCalls, 1)
	})
	p.fetch(context.Background())

	if sess.Token() != "" {
		t.Error("credential must be cleared on unauthorized poll")
	}
	if atomic.LoadInt32(&hookCalls) != 1 {
		t.Errorf("hook calls = %d; want 1", hookCalls)
	}

	// Logged out: further fetches are skipped entirely.
	p.fetch(context.Background())
	if atomic.LoadInt32(&hookCalls) != 1 {
		t.Error("fetch without credential must not re-trigger recovery")
	}
}
