package alerts_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ghostie/internal/alerts"
	"ghostie/internal/testsupport"
)

func TestNewSinkReturnsNoopWhenNothingEnabled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	sink := alerts.NewSink(cfg)
	if _, ok := sink.(alerts.Noop); !ok {
		t.Fatalf("expected Noop sink, got %T", sink)
	}
	if err := sink.Send(context.Background(), "hello", time.Second); err != nil {
		t.Fatalf("expected noop send to succeed, got %v", err)
	}
}

func TestNewSinkSelectsEnabledChannels(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic("http://127.0.0.1:1/topic"))
	if _, ok := alerts.NewSink(cfg).(*alerts.Ntfy); !ok {
		t.Fatalf("expected ntfy sink, got %T", alerts.NewSink(cfg))
	}
	cfg.EnableOSNotifications = true
	multi, ok := alerts.NewSink(cfg).(alerts.Multi)
	if !ok || len(multi) != 2 {
		t.Fatalf("expected desktop+ntfy fan-out, got %T", alerts.NewSink(cfg))
	}
}

func TestNtfySendsMessageWithHeaders(t *testing.T) {
	var (
		body    string
		title   string
		tags    string
		method  string
		content string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		title = r.Header.Get("Title")
		tags = r.Header.Get("Tags")
		method = r.Method
		content = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sink := alerts.NewNtfy(server.URL, time.Second)
	if err := sink.Send(context.Background(), "3 new notifications", 3*time.Second); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if method != http.MethodPost {
		t.Fatalf("expected POST, got %s", method)
	}
	if body != "3 new notifications" {
		t.Fatalf("unexpected body %q", body)
	}
	if title != alerts.AppName {
		t.Fatalf("unexpected title %q", title)
	}
	if !strings.Contains(tags, "ghostie") {
		t.Fatalf("unexpected tags %q", tags)
	}
	if !strings.HasPrefix(content, "text/plain") {
		t.Fatalf("unexpected content type %q", content)
	}
}

func TestNtfyReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic closed", http.StatusForbidden)
	}))
	defer server.Close()

	err := alerts.NewNtfy(server.URL, time.Second).Send(context.Background(), "x", time.Second)
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}

func TestNtfyHonorsSendTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	err := alerts.NewNtfy(server.URL, 10*time.Second).Send(context.Background(), "x", 50*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("send ignored timeout, took %s", elapsed)
	}
}

type recordingSink struct {
	messages []string
	err      error
}

func (r *recordingSink) Send(_ context.Context, message string, _ time.Duration) error {
	r.messages = append(r.messages, message)
	return r.err
}

func TestMultiSendsToAllAndJoinsErrors(t *testing.T) {
	failing := &recordingSink{err: errors.New("no display")}
	ok := &recordingSink{}
	err := alerts.Multi{failing, ok}.Send(context.Background(), "hi", time.Second)
	if err == nil || !strings.Contains(err.Error(), "no display") {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(failing.messages) != 1 || len(ok.messages) != 1 {
		t.Fatalf("expected both sinks to receive the message: %v %v", failing.messages, ok.messages)
	}
}

func TestDesktopCommand(t *testing.T) {
	name, args, ok := alerts.DesktopCommand("linux", "2 new notifications", 3*time.Second)
	if !ok || name != "notify-send" {
		t.Fatalf("unexpected linux notifier: %q %v", name, ok)
	}
	want := []string{"-t", "3000", "-a", "Ghostie", "Ghostie", "2 new notifications"}
	if strings.Join(args, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected args %q", args)
	}

	name, args, ok = alerts.DesktopCommand("darwin", `say "hi"`, time.Second)
	if !ok || name != "osascript" {
		t.Fatalf("unexpected darwin notifier: %q %v", name, ok)
	}
	if len(args) != 2 || args[1] != `display notification "say \"hi\"" with title "Ghostie"` {
		t.Fatalf("unexpected osascript args %q", args)
	}

	if _, _, ok := alerts.DesktopCommand("plan9", "x", time.Second); ok {
		t.Fatal("expected unsupported platform")
	}
}
