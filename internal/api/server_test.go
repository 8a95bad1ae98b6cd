// ABOUTME: Tests for the token HTTP server and JWT issuing
// ABOUTME: Verifies claims, defaults, and endpoint behavior via httptest
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer() *Server {
	return NewServer(Config{
		Addr:      ":0",
		APIKey:    "test-key",
		APISecret: "test-secret",
		TokenTTL:  6 * time.Hour,
	})
}

func TestIssueTokenClaims(t *testing.T) {
	raw, err := IssueToken("key", "secret", "alice", "room-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	claims, err := ParseToken("secret", raw)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Issuer != "key" {
		t.Errorf("Issuer = %q, want key", claims.Issuer)
	}
	if claims.Subject != "alice" || claims.Name != "alice" {
		t.Errorf("identity = %q/%q, want alice", claims.Subject, claims.Name)
	}
	if !claims.Video.RoomJoin || claims.Video.Room != "room-1" {
		t.Errorf("Video = %+v, want roomJoin grant for room-1", claims.Video)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != time.Hour {
		t.Errorf("token TTL = %v, want 1h", ttl)
	}
}

func TestIssueTokenRequiresCredentials(t *testing.T) {
	if _, err := IssueToken("", "secret", "alice", "r", time.Hour); err == nil {
		t.Error("IssueToken() with empty key should fail")
	}
	if _, err := IssueToken("key", "", "alice", "r", time.Hour); err == nil {
		t.Error("IssueToken() with empty secret should fail")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	raw, err := IssueToken("key", "secret", "alice", "r", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if _, err := ParseToken("other-secret", raw); err == nil {
		t.Error("ParseToken() with wrong secret should fail")
	}
}

func TestGetTokenEndpoint(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/getToken?name=alice&room=demo")
	if err != nil {
		t.Fatalf("GET /getToken error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	claims, err := ParseToken("test-secret", string(body))
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Name != "alice" || claims.Video.Room != "demo" {
		t.Errorf("claims = %+v, want alice in room demo", claims)
	}
}

func TestGetTokenDefaults(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/getToken")
	if err != nil {
		t.Fatalf("GET /getToken error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	claims, err := ParseToken("test-secret", string(body))
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Name != "my name" {
		t.Errorf("Name = %q, want default identity", claims.Name)
	}
	if !strings.HasPrefix(claims.Video.Room, "room-") {
		t.Errorf("Room = %q, want generated room- name", claims.Video.Room)
	}
}

func TestGetTokenMissingCredentials(t *testing.T) {
	server := NewServer(Config{TokenTTL: time.Hour})
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/getToken")
	if err != nil {
		t.Fatalf("GET /getToken error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 when credentials are unset", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer()
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("status = %q, want ok", payload["status"])
	}
}
