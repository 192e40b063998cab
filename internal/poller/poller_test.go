package poller_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ghostie/internal/cache"
	"ghostie/internal/logging"
	"ghostie/internal/poller"
	"ghostie/internal/testsupport"
)

type fakeSource struct {
	mu      sync.Mutex
	results [][]cache.Notification
	errs    []error
	calls   int
	since   []time.Time
	onCall  func(call int)
}

func (f *fakeSource) ListSince(_ context.Context, since time.Time) ([]cache.Notification, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	f.since = append(f.since, since)
	var (
		result []cache.Notification
		err    error
	)
	if call < len(f.results) {
		result = f.results[call]
	}
	if call < len(f.errs) {
		err = f.errs[call]
	}
	hook := f.onCall
	f.mu.Unlock()
	if hook != nil {
		hook(call)
	}
	return result, err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSink struct {
	mu       sync.Mutex
	messages []string
	timeouts []time.Duration
	err      error
}

func (f *fakeSink) Send(_ context.Context, message string, timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	f.timeouts = append(f.timeouts, timeout)
	return f.err
}

func ids(t *testing.T, store *cache.Store) map[string]bool {
	t.Helper()
	all, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	out := make(map[string]bool, len(all))
	for _, n := range all {
		out[n.ID] = true
	}
	return out
}

func TestTickWritesAndAnnouncesOnlyUnseenNotifications(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	now := time.Now()
	a := testsupport.Notification("A", now.Add(-time.Hour))
	b := testsupport.Notification("B", now.Add(-time.Hour))
	c := testsupport.Notification("C", now.Add(-time.Minute))
	testsupport.MustWrite(t, store, a, b)

	changedA := a
	changedA.Subject = "changed upstream"
	source := &fakeSource{results: [][]cache.Notification{{changedA, b, c}}}
	sink := &fakeSink{}
	p, err := poller.New(cfg, store, source, sink, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	count, err := p.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 new notification, got %d", count)
	}
	got := ids(t, store)
	if len(got) != 3 || !got["A"] || !got["B"] || !got["C"] {
		t.Fatalf("unexpected cache contents: %v", got)
	}
	stored, err := store.ReadByID(context.Background(), "A")
	if err != nil {
		t.Fatalf("ReadByID failed: %v", err)
	}
	if stored.Subject == "changed upstream" {
		t.Fatal("expected already cached notification to be left untouched")
	}
	if len(sink.messages) != 1 || sink.messages[0] != "1 new notifications" {
		t.Fatalf("unexpected alerts: %v", sink.messages)
	}
	if sink.timeouts[0] != poller.AlertTimeout {
		t.Fatalf("unexpected alert timeout: %s", sink.timeouts[0])
	}

	source.results = append(source.results, []cache.Notification{a, b, c})
	count, err = p.Tick(context.Background())
	if err != nil {
		t.Fatalf("second Tick failed: %v", err)
	}
	if count != 0 || len(sink.messages) != 1 {
		t.Fatalf("expected no new notifications on repeat fetch, got %d (alerts %v)", count, sink.messages)
	}
}

func TestTickPrunesOutsideWindowAndFetchesSinceWindow(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPollingWindowDays(2))
	store := testsupport.MustOpenStore(t, cfg)
	now := time.Now()
	testsupport.MustWrite(t, store,
		testsupport.Notification("fresh", now.Add(-time.Hour)),
		testsupport.Notification("old", now.Add(-3*24*time.Hour)),
		testsupport.Notification("ancient", now.Add(-10*24*time.Hour)),
	)

	source := &fakeSource{}
	sink := &fakeSink{}
	p, err := poller.New(cfg, store, source, sink, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := p.Tick(context.Background()); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	got := ids(t, store)
	if len(got) != 1 || !got["fresh"] {
		t.Fatalf("expected only fresh record to survive, got %v", got)
	}
	if len(sink.messages) != 0 {
		t.Fatalf("expected no alert without new notifications, got %v", sink.messages)
	}
	wantSince := now.Add(-48 * time.Hour)
	if diff := source.since[0].Sub(wantSince); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("expected fetch since ~%s, got %s", wantSince, source.since[0])
	}
}

func TestTickFetchErrorIsFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	boom := errors.New("401 bad credentials")
	source := &fakeSource{errs: []error{boom}}
	sink := &fakeSink{}
	p, err := poller.New(cfg, store, source, sink, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = p.Tick(context.Background())
	var fetchErr *poller.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	if source.callCount() != 1 {
		t.Fatalf("expected no retries by default, got %d calls", source.callCount())
	}
	if len(sink.messages) != 0 {
		t.Fatalf("expected no alert on failure, got %v", sink.messages)
	}
}

func TestTickRetriesFetchWhenConfigured(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.FetchRetries = 1
	store := testsupport.MustOpenStore(t, cfg)
	source := &fakeSource{
		errs:    []error{errors.New("connection reset"), nil},
		results: [][]cache.Notification{nil, {testsupport.Notification("X", time.Now())}},
	}
	p, err := poller.New(cfg, store, source, &fakeSink{}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	count, err := p.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if count != 1 || source.callCount() != 2 {
		t.Fatalf("expected success on retry, got count=%d calls=%d", count, source.callCount())
	}
}

func TestTickSwallowsAlertErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	source := &fakeSource{results: [][]cache.Notification{{
		testsupport.Notification("1", time.Now()),
		testsupport.Notification("2", time.Now()),
	}}}
	sink := &fakeSink{err: errors.New("notify-send missing")}
	p, err := poller.New(cfg, store, source, sink, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	count, err := p.Tick(context.Background())
	if err != nil {
		t.Fatalf("expected alert failure to be swallowed, got %v", err)
	}
	if count != 2 || len(sink.messages) != 1 || sink.messages[0] != "2 new notifications" {
		t.Fatalf("unexpected result count=%d alerts=%v", count, sink.messages)
	}
}

func TestTickReportsWhetherAlertWasSent(t *testing.T) {
	tests := []struct {
		name string
		sink *fakeSink
		want string
	}{
		{name: "alerts disabled", sink: nil, want: "alerted=false"},
		{name: "alert delivered", sink: &fakeSink{}, want: "alerted=true"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testsupport.NewConfig(t)
			store := testsupport.MustOpenStore(t, cfg)
			source := &fakeSource{results: [][]cache.Notification{{
				testsupport.Notification("1", time.Now()),
			}}}
			var out bytes.Buffer
			logger, err := logging.New(logging.Options{Level: "info", Stdout: &out, Stderr: &out})
			if err != nil {
				t.Fatalf("logging.New failed: %v", err)
			}
			var p *poller.Poller
			if tc.sink == nil {
				p, err = poller.New(cfg, store, source, nil, logger)
			} else {
				p, err = poller.New(cfg, store, source, tc.sink, logger)
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			count, err := p.Tick(context.Background())
			if err != nil || count != 1 {
				t.Fatalf("unexpected tick result count=%d err=%v", count, err)
			}
			if !strings.Contains(out.String(), tc.want) {
				t.Fatalf("expected %q in log output, got %q", tc.want, out.String())
			}
		})
	}
}

func TestRunStopsOnCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPollingInterval(3600))
	store := testsupport.MustOpenStore(t, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &fakeSource{}
	source.onCall = func(int) { cancel() }
	p, err := poller.New(cfg, store, source, &fakeSink{}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on cancellation, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
	if source.callCount() != 1 {
		t.Fatalf("expected exactly one immediate tick, got %d", source.callCount())
	}
}

func TestRunTicksOnInterval(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPollingInterval(1))
	store := testsupport.MustOpenStore(t, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &fakeSource{}
	source.onCall = func(call int) {
		if call == 1 {
			cancel()
		}
	}
	p, err := poller.New(cfg, store, source, &fakeSink{}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if source.callCount() != 2 {
		t.Fatalf("expected two ticks, got %d", source.callCount())
	}
}

func TestRunReturnsFetchError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	source := &fakeSource{errs: []error{errors.New("dns failure")}}
	p, err := poller.New(cfg, store, source, &fakeSink{}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = p.Run(context.Background())
	var fetchErr *poller.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError from Run, got %v", err)
	}
}
