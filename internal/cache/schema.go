package cache

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("init schema", fmt.Errorf("begin schema tx: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return storageErr("init schema", fmt.Errorf("create schema: %w", err))
	}

	var version int
	err = tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return storageErr("init schema", fmt.Errorf("read schema version: %w", err))
	}
	switch version {
	case 0:
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return storageErr("init schema", fmt.Errorf("record schema version: %w", err))
		}
	case schemaVersion:
	default:
		return fmt.Errorf("%w: database has version %d, expected %d (run 'ghostie prune --reset' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("init schema", fmt.Errorf("commit schema: %w", err))
	}
	return nil
}

func (s *Store) dropSchema(ctx context.Context) error {
	for _, table := range []string{"notifications", "schema_version"} {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return storageErr("reset", fmt.Errorf("drop %s: %w", table, err))
		}
	}
	return nil
}
