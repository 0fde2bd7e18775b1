package igdb

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeIdentity issues token-1, token-2, ... and counts exchanges.
type fakeIdentity struct {
	server    *httptest.Server
	calls     atomic.Int32
	expiresIn int64
	status    int

	mu   sync.Mutex
	form map[string]string
}

func newFakeIdentity(t *testing.T) *fakeIdentity {
	t.Helper()
	f := &fakeIdentity{expiresIn: 3600, status: http.StatusOK}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := f.calls.Add(1)
		_ = r.ParseForm()
		f.mu.Lock()
		f.form = map[string]string{
			"client_id":     r.PostForm.Get("client_id"),
			"client_secret": r.PostForm.Get("client_secret"),
			"grant_type":    r.PostForm.Get("grant_type"),
		}
		f.mu.Unlock()

		if f.status != http.StatusOK {
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, `{"message":"invalid client"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"access_token":"token-%d","expires_in":%d,"token_type":"bearer"}`, n, f.expiresIn)
	}))
	t.Cleanup(f.server.Close)
	return f
}

// fakeCatalog replies with the scripted statuses in order, then 200.
type fakeCatalog struct {
	server   *httptest.Server
	calls    atomic.Int32
	payload  string
	statuses []int

	mu      sync.Mutex
	tokens  []string
	bodies  []string
	headers []http.Header
}

func newFakeCatalog(t *testing.T, payload string, statuses ...int) *fakeCatalog {
	t.Helper()
	f := &fakeCatalog{payload: payload, statuses: statuses}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(f.calls.Add(1))
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.tokens = append(f.tokens, r.Header.Get("Authorization"))
		f.bodies = append(f.bodies, string(body))
		f.headers = append(f.headers, r.Header.Clone())
		f.mu.Unlock()

		if n <= len(f.statuses) && f.statuses[n-1] != http.StatusOK {
			w.WriteHeader(f.statuses[n-1])
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, f.payload)
	}))
	t.Cleanup(f.server.Close)
	return f
}
