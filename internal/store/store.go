package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"applock/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	dbFileName = "applock.sqlite"
	profileKey = "profile"
)

// Store persists the profile as a single JSON blob under one key. This
// mirrors the mobile mock's key-value storage: the whole record is rewritten
// on every mutation and the last writer wins.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is
	// locked" flakiness when a CLI command runs next to the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Load reads the profile blob. A missing or corrupted value yields a fresh
// default profile rather than an error: callers should always end up with
// something usable (the record is best-effort by design).
func (s Store) Load(ctx context.Context) (*model.Profile, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, profileKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultProfile(), nil
	}
	if err != nil {
		return nil, err
	}

	var p model.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// Corrupted blob: treat as missing.
		return defaultProfile(), nil
	}
	p.Normalize()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return &p, nil
}

// Save overwrites the whole blob. There is no partial update and no
// transactional guarantee across mutations; a crash between the in-memory
// change and this write loses that change.
func (s Store) Save(ctx context.Context, p *model.Profile) error {
	if p == nil {
		return nil
	}
	p.Normalize()
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v`,
		profileKey, string(b))
	return err
}

func defaultProfile() *model.Profile {
	p := &model.Profile{
		ID:              uuid.NewString(),
		ProtectionState: model.StateOff,
		Theme:           model.ThemePurple,
		ProtectedApps:   []model.ProtectedApp{},
	}
	return p
}
