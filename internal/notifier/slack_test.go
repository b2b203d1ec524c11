package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestSlack(url string) *SlackNotifier {
	n := NewSlackNotifier("xoxb-test", "#aleart")
	n.APIURL = url
	return n
}

func TestSlackSend_PostsFormWithAuth(t *testing.T) {
	var gotAuth, gotChannel, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotChannel = r.PostFormValue("channel")
		gotText = r.PostFormValue("text")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := newTestSlack(srv.URL)
	if err := n.Send("buy KRW-BTC"); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if gotAuth != "Bearer xoxb-test" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotChannel != "#aleart" || gotText != "buy KRW-BTC" {
		t.Errorf("form = (%q, %q), want channel and text", gotChannel, gotText)
	}
}

func TestSlackSend_APILevelError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Slack signals failures with HTTP 200 and ok=false.
		w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	}))
	defer srv.Close()

	n := newTestSlack(srv.URL)
	err := n.Send("hello")
	if err == nil {
		t.Fatal("Send() = nil, want error on ok=false")
	}
	if !strings.Contains(err.Error(), "channel_not_found") {
		t.Errorf("error = %v, want slack error code surfaced", err)
	}
}

func TestSlackSendWithRetry_RecoversAfterFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := newTestSlack(srv.URL)
	if err := n.SendWithRetry(context.Background(), "cycle failed", 2); err != nil {
		t.Fatalf("SendWithRetry() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want a retry after the first failure", calls)
	}
}

func TestSlackSendWithRetry_StopsOnCancel(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := newTestSlack(srv.URL)
	err := n.SendWithRetry(ctx, "cycle failed", 3)
	if err != context.Canceled {
		t.Fatalf("SendWithRetry() = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want no retries after cancel", calls)
	}
}
