package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"

	"applock/internal/model"
)

func TestLoad_MissingBlobYieldsDefaults(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	p, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ProtectionState != model.StateOff {
		t.Fatalf("expected OFF; got %s", p.ProtectionState)
	}
	if p.Theme != model.ThemePurple {
		t.Fatalf("expected purple; got %s", p.Theme)
	}
	if len(p.ProtectedApps) != 0 {
		t.Fatalf("expected empty app list; got %d", len(p.ProtectedApps))
	}
	if p.Password != "" {
		t.Fatalf("expected unset password; got %q", p.Password)
	}
	if p.ID == "" {
		t.Fatalf("expected a generated profile id")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	in := &model.Profile{
		ID:              "prof-test",
		ProtectionState: model.StateActive,
		Theme:           model.ThemeRed,
		ProtectedApps: []model.ProtectedApp{
			{Name: "Facebook", PackageName: "com.facebook.katana", Icon: "📘"},
			{Name: "WhatsApp", PackageName: "com.whatsapp", Icon: "💬"},
		},
		Password: "1234",
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.ProtectionState != in.ProtectionState {
		t.Fatalf("state: expected %s; got %s", in.ProtectionState, out.ProtectionState)
	}
	if out.Theme != in.Theme {
		t.Fatalf("theme: expected %s; got %s", in.Theme, out.Theme)
	}
	if out.Password != in.Password {
		t.Fatalf("password: expected %q; got %q", in.Password, out.Password)
	}
	if !reflect.DeepEqual(out.ProtectedApps, in.ProtectedApps) {
		t.Fatalf("apps: expected %+v; got %+v", in.ProtectedApps, out.ProtectedApps)
	}
}

func TestSave_LastWriterWins(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	first := &model.Profile{ProtectionState: model.StateBackground, Password: "1111"}
	second := &model.Profile{ProtectionState: model.StateActive, Password: "2222"}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.ProtectionState != model.StateActive || out.Password != "2222" {
		t.Fatalf("expected second write to win; got state=%s password=%q", out.ProtectionState, out.Password)
	}
}

func TestLoad_CorruptBlobTreatedAsMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}
	ctx := context.Background()

	// Seed the kv table directly with garbage.
	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v TEXT NOT NULL);`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO kv (k, v) VALUES (?, ?)`, profileKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	p, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ProtectionState != model.StateOff || p.Password != "" {
		t.Fatalf("corrupt blob must load as defaults; got %+v", p)
	}
}

func TestLoad_AbsentFieldsDefaulted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}
	ctx := context.Background()

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v TEXT NOT NULL);`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO kv (k, v) VALUES (?, ?)`, profileKey, `{"password":"9"}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	p, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ProtectionState != model.StateOff {
		t.Fatalf("expected default OFF; got %s", p.ProtectionState)
	}
	if p.Theme != model.ThemePurple {
		t.Fatalf("expected default purple; got %s", p.Theme)
	}
	if p.ProtectedApps == nil {
		t.Fatalf("expected empty app list, not nil")
	}
	if p.Password != "9" {
		t.Fatalf("expected password preserved; got %q", p.Password)
	}
}
