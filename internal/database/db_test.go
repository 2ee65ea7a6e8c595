package database

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testDB creates a temporary in-memory database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()

	cfg := Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	// Quiet logger for tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func sampleAnniversary(latin, local string, birth bool) *Anniversary {
	return &Anniversary{
		IDLatin:       latin,
		IDLocal:       local,
		IsBirth:       birth,
		LunarAnchored: true,
		AnchorYear:    1990,
		AnchorMonth:   5,
		AnchorDay:     24,
		LunarMonth:    5,
		LunarDay:      1,
		Checksum:      0xdeadbeef,
	}
}

// -----------------------------------------------------------------
// DB tests
// -----------------------------------------------------------------

func TestOpen(t *testing.T) {
	db := testDB(t)

	ctx := context.Background()
	if err := db.Health(ctx); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lunarcal.db")

	db, err := Open(DefaultConfig(path), nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("database directory not created: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Running again should be a no-op
	count, err := db.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Migrate() count = %d, want 0 (already applied)", count)
	}
}

// -----------------------------------------------------------------
// Anniversary tests
// -----------------------------------------------------------------

func TestInsertAnniversary(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	a := sampleAnniversary("Li", "李", true)
	if err := db.InsertAnniversary(ctx, a); err != nil {
		t.Fatalf("InsertAnniversary() error = %v", err)
	}
	if a.ID == 0 {
		t.Error("InsertAnniversary() did not set ID")
	}

	got, err := db.GetAnniversary(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAnniversary() error = %v", err)
	}
	if got.AnchorDate() != "1990-05-24" {
		t.Errorf("AnchorDate() = %q, want %q", got.AnchorDate(), "1990-05-24")
	}
	if got.Checksum != 0xdeadbeef {
		t.Errorf("Checksum = %#x, want %#x", got.Checksum, uint32(0xdeadbeef))
	}
	if got.IDLocal != "李" || !got.IsBirth || !got.LunarAnchored {
		t.Errorf("GetAnniversary() = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("GetAnniversary() did not parse created_at")
	}
}

func TestInsertAnniversary_Duplicate(t *testing.T) {
	tests := []struct {
		name    string
		second  *Anniversary
		wantErr error
	}{
		{"same latin id", sampleAnniversary("Li", "黎", true), ErrDuplicate},
		{"same local id", sampleAnniversary("Lee", "李", true), ErrDuplicate},
		{"same ids as a death", sampleAnniversary("Li", "李", false), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)
			ctx := context.Background()

			if err := db.InsertAnniversary(ctx, sampleAnniversary("Li", "李", true)); err != nil {
				t.Fatalf("first InsertAnniversary() error = %v", err)
			}

			err := db.InsertAnniversary(ctx, tt.second)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("InsertAnniversary() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleteAnniversary(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, a := range []*Anniversary{
		sampleAnniversary("Li", "李", true),
		sampleAnniversary("Li", "李", false),
		sampleAnniversary("Wang", "王", true),
	} {
		if err := db.InsertAnniversary(ctx, a); err != nil {
			t.Fatalf("InsertAnniversary() error = %v", err)
		}
	}

	n, err := db.DeleteAnniversary(ctx, "李")
	if err != nil {
		t.Fatalf("DeleteAnniversary() error = %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteAnniversary() removed %d, want 2", n)
	}

	count, err := db.CountAnniversaries(ctx)
	if err != nil {
		t.Fatalf("CountAnniversaries() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountAnniversaries() = %d, want 1", count)
	}
}

func TestDeleteAnniversary_NotFound(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := db.DeleteAnniversary(ctx, "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteAnniversary() error = %v, want ErrNotFound", err)
	}
}

func TestGetAnniversary_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetAnniversary(context.Background(), 42)
	if err != ErrNotFound {
		t.Errorf("GetAnniversary() error = %v, want ErrNotFound", err)
	}
}

func TestListAnniversaries(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	list, err := db.ListAnniversaries(ctx)
	if err != nil {
		t.Fatalf("ListAnniversaries() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListAnniversaries() on empty store returned %d rows", len(list))
	}

	ids := []string{"Zhao", "Qian", "Sun"}
	for _, id := range ids {
		if err := db.InsertAnniversary(ctx, sampleAnniversary(id, id, true)); err != nil {
			t.Fatalf("InsertAnniversary(%s) error = %v", id, err)
		}
	}

	list, err = db.ListAnniversaries(ctx)
	if err != nil {
		t.Fatalf("ListAnniversaries() error = %v", err)
	}
	if len(list) != len(ids) {
		t.Fatalf("ListAnniversaries() returned %d rows, want %d", len(list), len(ids))
	}
	for i, id := range ids {
		if list[i].IDLatin != id {
			t.Errorf("ListAnniversaries()[%d] = %q, want %q", i, list[i].IDLatin, id)
		}
	}
}

func TestListAnniversaries_UndecodableRow(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, id := range []string{"Li", "Wang"} {
		if err := db.InsertAnniversary(ctx, sampleAnniversary(id, id, true)); err != nil {
			t.Fatalf("InsertAnniversary(%s) error = %v", id, err)
		}
	}
	_, err := db.ExecContext(ctx,
		`UPDATE anniversaries SET anchor_date = '1990-5-25', is_birth = 'yes' WHERE id_latin = 'Wang'`)
	if err != nil {
		t.Fatalf("corrupt row: %v", err)
	}

	list, err := db.ListAnniversaries(ctx)
	if err != nil {
		t.Fatalf("ListAnniversaries() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListAnniversaries() returned %d rows, want 2", len(list))
	}

	if list[0].DecodeErr != nil {
		t.Errorf("Li DecodeErr = %v, want nil", list[0].DecodeErr)
	}

	wang := list[1]
	if wang.DecodeErr == nil {
		t.Fatal("Wang DecodeErr = nil, want decode failure")
	}
	for _, column := range []string{"anchor_date", "is_birth"} {
		if !strings.Contains(wang.DecodeErr.Error(), column) {
			t.Errorf("DecodeErr %q does not mention %s", wang.DecodeErr, column)
		}
	}
	if wang.AnchorDate() != "1990-5-25" {
		t.Errorf("AnchorDate() = %q, want stored text %q", wang.AnchorDate(), "1990-5-25")
	}
	if wang.LunarMonth != 5 || wang.Checksum != 0xdeadbeef {
		t.Errorf("decodable columns lost: %+v", wang)
	}

	got, err := db.GetAnniversary(ctx, wang.ID)
	if err != nil {
		t.Fatalf("GetAnniversary() error = %v", err)
	}
	if got.DecodeErr == nil {
		t.Error("GetAnniversary() DecodeErr = nil, want decode failure")
	}
}

func TestWithTx_Rollback(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO anniversaries (id_latin, id_local, is_birth, lunar_anchored,
				anchor_date, lunar_month, lunar_day, checksum)
			VALUES ('Li', '李', 1, 0, '2000-01-01', 11, 25, 1)
		`)
		if err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want %v", err, boom)
	}

	count, err := db.CountAnniversaries(ctx)
	if err != nil {
		t.Fatalf("CountAnniversaries() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountAnniversaries() = %d after rollback, want 0", count)
	}
}
