package controller

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/mkravets/jobtrack/internal/client/gateway"
	"github.com/mkravets/jobtrack/internal/client/session"
)

// newTestDeps wires a Deps against an httptest server with a logged-in
// user session.
func newTestDeps(t *testing.T, handler http.Handler, isAdmin bool) (Deps, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
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
	if err := sess.SetCredential(token, isAdmin); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}

	return Deps{
		Gateway: gateway.New(srv.URL, zap.NewNop()),
		Session: sess,
		Log:     zap.NewNop(),
	}, srv
}
