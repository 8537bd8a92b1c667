package database

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/nerrad567/ucapi/migrations"
)

//go:embed testdata/*.sql
var testdataFS embed.FS

func testMigrations(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(testdataFS, "testdata")
	if err != nil {
		t.Fatalf("fs.Sub() error = %v", err)
	}
	return sub
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n)
	if err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	return n > 0
}

func TestMigrate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fsys := testMigrations(t)

	done, err := db.Migrate(ctx, fsys)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if len(done) != 2 || done[0] != "20260101_000000" || done[1] != "20260102_000000" {
		t.Errorf("Migrate() applied %v", done)
	}
	if !tableExists(t, db, "widget") {
		t.Fatal("table widget not created")
	}

	done, err = db.Migrate(ctx, fsys)
	if err != nil || len(done) != 0 {
		t.Errorf("second Migrate() = %v, %v, want nothing applied", done, err)
	}

	applied, pending, err := db.MigrationStatus(ctx, fsys)
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if len(applied) != 2 || len(pending) != 0 {
		t.Errorf("MigrationStatus() = %d applied, %d pending", len(applied), len(pending))
	}
	if applied[0].AppliedAt.IsZero() {
		t.Error("AppliedAt not recorded")
	}
}

func TestMigrateDown(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fsys := testMigrations(t)

	if _, err := db.Migrate(ctx, fsys); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// The latest migration has no down file.
	if _, err := db.MigrateDown(ctx, fsys); !errors.Is(err, ErrNoDownMigration) {
		t.Fatalf("MigrateDown() error = %v, want ErrNoDownMigration", err)
	}

	only := fstest.MapFS{}
	for _, name := range []string{"20260101_000000_create_widget.up.sql", "20260101_000000_create_widget.down.sql"} {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", name, err)
		}
		only[name] = &fstest.MapFile{Data: data}
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = '20260102_000000'"); err != nil {
		t.Fatalf("deleting record: %v", err)
	}

	version, err := db.MigrateDown(ctx, only)
	if err != nil {
		t.Fatalf("MigrateDown() error = %v", err)
	}
	if version != "20260101_000000" {
		t.Errorf("MigrateDown() = %q", version)
	}
	if tableExists(t, db, "widget") {
		t.Error("table widget still exists")
	}

	version, err = db.MigrateDown(ctx, only)
	if err != nil || version != "" {
		t.Errorf("MigrateDown(nothing applied) = %q, %v", version, err)
	}
}

func TestMigrateEmpty(t *testing.T) {
	db := openTestDB(t)
	done, err := db.Migrate(context.Background(), fstest.MapFS{})
	if err != nil || len(done) != 0 {
		t.Errorf("Migrate(empty) = %v, %v", done, err)
	}
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"20260102_000000_second.up.sql":  {Data: []byte("SELECT 2;")},
		"20260101_000000_first.up.sql":   {Data: []byte("SELECT 1;")},
		"20260101_000000_first.down.sql": {Data: []byte("SELECT -1;")},
		"README.md":                      {Data: []byte("notes")},
	}
	got, err := LoadMigrations(fsys)
	if err != nil {
		t.Fatalf("LoadMigrations() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "first" || got[0].DownSQL == "" || got[1].Name != "second" {
		t.Errorf("LoadMigrations() = %+v", got)
	}

	_, err = LoadMigrations(fstest.MapFS{"20260101_000000_orphan.down.sql": {Data: []byte("x")}})
	if err == nil {
		t.Error("LoadMigrations(down only) error = nil")
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		filename    string
		wantVersion string
		wantName    string
		wantUp      bool
		wantOK      bool
	}{
		{"20260118_120000_create_users.up.sql", "20260118_120000", "create_users", true, true},
		{"20260118_120000_create_users.down.sql", "20260118_120000", "create_users", false, true},
		{"readme.txt", "", "", false, false},
		{"20260118_120000_create_users.sql", "", "", false, false},
		{"invalid.up.sql", "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, up, ok := parseMigrationFilename(tt.filename)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (version != tt.wantVersion || name != tt.wantName || up != tt.wantUp) {
				t.Errorf("parseMigrationFilename() = %q, %q, %v", version, name, up)
			}
		})
	}
}

func TestStoreMigrations(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.Migrate(ctx, migrations.FS); err != nil {
		t.Fatalf("Migrate(migrations.FS) error = %v", err)
	}
	for _, table := range []string{"integration_drivers", "integrations"} {
		if !tableExists(t, db, table) {
			t.Errorf("table %s not created", table)
		}
	}

	for range 2 {
		if _, err := db.MigrateDown(ctx, migrations.FS); err != nil {
			t.Fatalf("MigrateDown() error = %v", err)
		}
	}
	if tableExists(t, db, "integration_drivers") {
		t.Error("integration_drivers still exists after rollback")
	}
}
