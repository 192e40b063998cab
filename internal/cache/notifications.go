package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const notificationColumns = "id, name, repo, subject, kind, url, updated_at"

// Write upserts a notification. A record with the same id is fully replaced.
func (s *Store) Write(ctx context.Context, n Notification) error {
	if err := n.validate(); err != nil {
		return storageErr("write", err)
	}
	_, err := s.execWithRetry(
		ctx,
		`INSERT OR REPLACE INTO notifications (`+notificationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID,
		n.Name,
		n.Repo,
		n.Subject,
		n.Kind,
		n.URL,
		formatTime(n.UpdatedAt),
	)
	return storageErr("write", err)
}

// WriteBatch upserts notifications in order and stops at the first failure.
// Each upsert is atomic; the batch as a whole is not.
func (s *Store) WriteBatch(ctx context.Context, notifications []Notification) error {
	for i, n := range notifications {
		if err := s.Write(ctx, n); err != nil {
			return &BatchError{Index: i, ID: n.ID, Err: err}
		}
	}
	return nil
}

// ReadAll returns every cached notification in no particular order.
func (s *Store) ReadAll(ctx context.Context) ([]Notification, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT `+notificationColumns+` FROM notifications`)
	if err != nil {
		return nil, storageErr("read all", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, storageErr("read all", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("read all", err)
	}
	return notifications, nil
}

// ReadByID fetches one notification. It returns ErrNotFound when absent.
func (s *Store) ReadByID(ctx context.Context, id string) (Notification, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Notification{}, fmt.Errorf("read %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Notification{}, storageErr("read by id", err)
	}
	return n, nil
}

// Count returns the number of cached notifications.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM notifications`).Scan(&count); err != nil {
		return 0, storageErr("count", err)
	}
	return count, nil
}

// DeleteByID removes one notification. Deleting an absent id is not an error.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	_, err := s.execWithRetry(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	return storageErr("delete", err)
}

// DeleteAll removes every cached notification and reports how many were removed.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM notifications`)
	if err != nil {
		return 0, storageErr("delete all", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("delete all", err)
	}
	return affected, nil
}

// DeleteAllOlderThan removes notifications whose UpdatedAt is before cutoff.
// Records are read and filtered here rather than in SQL so timestamp parsing
// stays in scanNotification.
func (s *Store) DeleteAllOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	notifications, err := s.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, n := range notifications {
		if !n.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := s.DeleteByID(ctx, n.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func scanNotification(scanner interface{ Scan(dest ...any) error }) (Notification, error) {
	var (
		n          Notification
		updatedRaw string
	)
	if err := scanner.Scan(&n.ID, &n.Name, &n.Repo, &n.Subject, &n.Kind, &n.URL, &updatedRaw); err != nil {
		return Notification{}, err
	}
	updated, err := parseTime(updatedRaw)
	if err != nil {
		return Notification{}, fmt.Errorf("notification %q: %w", n.ID, err)
	}
	n.UpdatedAt = updated
	return n, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("updated_at is empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC1123Z, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("updated_at %q is not a recognized timestamp", value)
}
