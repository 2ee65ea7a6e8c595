package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Returns nil if the value is empty or unparseable.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAnniversary reads one row. Columns that fail to decode do not fail
// the scan; they are collected into Anniversary.DecodeErr so a single bad
// row cannot hide the rest of the store.
func scanAnniversary(row rowScanner) (Anniversary, error) {
	var a Anniversary
	var idLatin, idLocal, isBirth, lunarAnchored sql.NullString
	var anchor, lunarMonth, lunarDay, checksum, createdAt sql.NullString

	err := row.Scan(
		&a.ID,
		&idLatin,
		&idLocal,
		&isBirth,
		&lunarAnchored,
		&anchor,
		&lunarMonth,
		&lunarDay,
		&checksum,
		&createdAt,
	)
	if err != nil {
		return a, err
	}

	var errs []error
	a.IDLatin, a.IDLocal = idLatin.String, idLocal.String
	a.IsBirth = decodeBool("is_birth", isBirth, &errs)
	a.LunarAnchored = decodeBool("lunar_anchored", lunarAnchored, &errs)
	if err := a.setAnchorDate(anchor.String); err != nil {
		errs = append(errs, err)
	}
	a.LunarMonth = int(decodeInt("lunar_month", lunarMonth, 32, &errs))
	a.LunarDay = int(decodeInt("lunar_day", lunarDay, 32, &errs))
	a.Checksum = uint32(decodeInt("checksum", checksum, 64, &errs))
	if t := parseTimestamp(createdAt); t != nil {
		a.CreatedAt = *t
	}
	a.DecodeErr = errors.Join(errs...)
	return a, nil
}

func decodeBool(column string, ns sql.NullString, errs *[]error) bool {
	b, err := strconv.ParseBool(ns.String)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s %q is not a boolean", column, ns.String))
	}
	return b
}

func decodeInt(column string, ns sql.NullString, bits int, errs *[]error) int64 {
	n, err := strconv.ParseInt(ns.String, 10, bits)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s %q is not an integer", column, ns.String))
	}
	return n
}

const anniversaryColumns = `
	id, id_latin, id_local, is_birth, lunar_anchored,
	anchor_date, lunar_month, lunar_day, checksum, created_at
`

// =============================================================================
// Anniversary Queries
// =============================================================================

// InsertAnniversary stores a and sets its ID.
// Returns ErrDuplicate if either identifier already exists for the same
// birth or death kind.
func (db *DB) InsertAnniversary(ctx context.Context, a *Anniversary) error {
	query := `
		INSERT INTO anniversaries (
			id_latin, id_local, is_birth, lunar_anchored,
			anchor_date, lunar_month, lunar_day, checksum
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.ExecContext(ctx, query,
		a.IDLatin,
		a.IDLocal,
		a.IsBirth,
		a.LunarAnchored,
		a.AnchorDate(),
		a.LunarMonth,
		a.LunarDay,
		int64(a.Checksum),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert anniversary %q: %w", a.IDLatin, ErrDuplicate)
		}
		return fmt.Errorf("insert anniversary: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get anniversary id: %w", err)
	}
	a.ID = id

	return nil
}

// DeleteAnniversary removes every record whose Latin or local identifier
// equals id and returns how many were removed.
// Returns ErrNotFound if none matched.
func (db *DB) DeleteAnniversary(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM anniversaries WHERE id_latin = ? OR id_local = ?`

	var rows int64
	err := db.WithTx(ctx, func(tx *Tx) error {
		result, err := tx.ExecContext(ctx, query, id, id)
		if err != nil {
			return fmt.Errorf("delete anniversary: %w", err)
		}

		rows, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("check rows affected: %w", err)
		}

		if rows == 0 {
			return fmt.Errorf("delete anniversary %q: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return rows, nil
}

// GetAnniversary retrieves a record by row ID.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) GetAnniversary(ctx context.Context, id int64) (*Anniversary, error) {
	query := `SELECT ` + anniversaryColumns + ` FROM anniversaries WHERE id = ?`

	a, err := scanAnniversary(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query anniversary: %w", err)
	}
	return &a, nil
}

// ListAnniversaries returns every record in insertion order.
// Returns an empty slice if the store is empty.
func (db *DB) ListAnniversaries(ctx context.Context) ([]Anniversary, error) {
	query := `SELECT ` + anniversaryColumns + ` FROM anniversaries ORDER BY id ASC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query anniversaries: %w", err)
	}
	defer rows.Close()

	anniversaries := []Anniversary{}
	for rows.Next() {
		a, err := scanAnniversary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan anniversary row: %w", err)
		}
		anniversaries = append(anniversaries, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate anniversary rows: %w", err)
	}

	return anniversaries, nil
}

// CountAnniversaries returns the number of stored records.
func (db *DB) CountAnniversaries(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM anniversaries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count anniversaries: %w", err)
	}
	return n, nil
}
