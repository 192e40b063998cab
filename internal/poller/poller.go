package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jpillora/backoff"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ghostie/internal/alerts"
	"ghostie/internal/cache"
	"ghostie/internal/config"
	"ghostie/internal/logging"
)

// AlertTimeout bounds each "new notifications" alert.
const AlertTimeout = 3 * time.Second

// Store is the cache surface a tick needs.
type Store interface {
	DeleteAllOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	ReadAll(ctx context.Context) ([]cache.Notification, error)
	WriteBatch(ctx context.Context, notifications []cache.Notification) error
}

// Source lists remote notifications updated at or after since.
type Source interface {
	ListSince(ctx context.Context, since time.Time) ([]cache.Notification, error)
}

// Poller owns one synchronization loop.
type Poller struct {
	store    Store
	source   Source
	sink     alerts.Sink
	logger   *slog.Logger
	interval time.Duration
	window   time.Duration
	retries  int
	backoff  backoff.Backoff
	printer  *message.Printer
	now      func() time.Time
}

// New wires a poller from configuration and collaborators. A nil sink
// disables alerts and a nil logger discards output.
func New(cfg *config.Config, store Store, source Source, sink alerts.Sink, logger *slog.Logger) (*Poller, error) {
	if cfg == nil || store == nil || source == nil {
		return nil, errors.New("poller requires config, store, and source")
	}
	if sink == nil {
		sink = alerts.Noop{}
	}
	return &Poller{
		store:    store,
		source:   source,
		sink:     sink,
		logger:   logging.NewComponentLogger(logger, "poller"),
		interval: cfg.PollInterval(),
		window:   cfg.Window(),
		retries:  cfg.FetchRetries,
		backoff: backoff.Backoff{
			Min:    time.Second,
			Max:    30 * time.Second,
			Factor: 2,
			Jitter: true,
		},
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}, nil
}

// Tick performs one synchronization cycle and returns how many new
// notifications were stored.
func (p *Poller) Tick(ctx context.Context) (int, error) {
	since := p.now().Add(-p.window)

	pruned, err := p.store.DeleteAllOlderThan(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	if pruned > 0 {
		p.logger.Debug("pruned expired notifications", logging.Int("count", pruned))
	}

	cached, err := p.store.ReadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("snapshot cache: %w", err)
	}
	seen := make(map[string]struct{}, len(cached))
	for _, n := range cached {
		seen[n.ID] = struct{}{}
	}

	fetched, err := p.fetch(ctx, since)
	if err != nil {
		return 0, err
	}

	fresh := make([]cache.Notification, 0, len(fetched))
	for _, n := range fetched {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		// Pages may repeat a thread that moved between requests.
		seen[n.ID] = struct{}{}
		fresh = append(fresh, n)
	}

	if err := p.store.WriteBatch(ctx, fresh); err != nil {
		return 0, fmt.Errorf("store new notifications: %w", err)
	}

	count := len(fresh)
	alerted := false
	if _, silent := p.sink.(alerts.Noop); count > 0 && !silent {
		text := p.printer.Sprintf("%d new notifications", count)
		if err := p.sink.Send(ctx, text, AlertTimeout); err != nil {
			p.logger.Debug("alert delivery failed", logging.Error(err))
		} else {
			alerted = true
		}
	}

	p.logger.Info("found new notifications",
		logging.String(logging.FieldEventType, "sync_tick"),
		logging.Int("count", count),
		logging.Int("fetched", len(fetched)),
		logging.Bool("alerted", alerted),
		logging.Time("since", since),
	)
	return count, nil
}

// Run ticks once immediately and then every interval until ctx is cancelled
// or a tick fails. Cancellation returns nil.
func (p *Poller) Run(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("invalid polling interval %s", p.interval)
	}
	p.logger.Info("polling started",
		logging.Duration("interval", p.interval),
		logging.Duration("window", p.window),
	)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("synchronization failed", logging.Error(err))
			return err
		}
		select {
		case <-ctx.Done():
			p.logger.Info("polling stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Poller) fetch(ctx context.Context, since time.Time) ([]cache.Notification, error) {
	b := p.backoff
	b.Reset()
	attempts := 0
	for {
		attempts++
		notifications, err := p.source.ListSince(ctx, since)
		if err == nil {
			return notifications, nil
		}
		if attempts > p.retries || ctx.Err() != nil {
			return nil, &FetchError{Attempts: attempts, Err: err}
		}
		delay := b.Duration()
		p.logger.Warn("fetch failed, retrying",
			logging.Error(err),
			logging.Int("attempt", attempts),
			logging.Duration("retry_in", delay),
		)
		select {
		case <-ctx.Done():
			return nil, &FetchError{Attempts: attempts, Err: err}
		case <-time.After(delay):
		}
	}
}
