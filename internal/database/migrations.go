package database

// migrationsSQL contains all database migrations, applied in order by
// version number.
var migrationsSQL = map[int]string{
	1: migrationV1Anniversaries,
}

// migrationV1Anniversaries creates the anniversary table.
//
// An identifier may appear once as a birth and once as a death, in either
// script. anchor_date is the Gregorian date the anniversary counts from;
// lunar_month and lunar_day are its Chinese date, stored so lunar-anchored
// records match without a gateway lookup. checksum covers the anchor and the
// lunar fields.
const migrationV1Anniversaries = `
CREATE TABLE IF NOT EXISTS anniversaries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    id_latin TEXT NOT NULL,
    id_local TEXT NOT NULL,

    is_birth BOOLEAN NOT NULL,
    lunar_anchored BOOLEAN NOT NULL,

    -- YYYY-MM-DD
    anchor_date TEXT NOT NULL,
    lunar_month INTEGER NOT NULL CHECK (lunar_month BETWEEN 1 AND 12),
    lunar_day INTEGER NOT NULL CHECK (lunar_day BETWEEN 1 AND 30),

    checksum INTEGER NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (id_latin, is_birth),
    UNIQUE (id_local, is_birth)
);

CREATE INDEX IF NOT EXISTS idx_anniversaries_id_latin
    ON anniversaries(id_latin);

CREATE INDEX IF NOT EXISTS idx_anniversaries_id_local
    ON anniversaries(id_local);
`
