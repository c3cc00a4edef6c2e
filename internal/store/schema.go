package store

const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS meta (
    key    TEXT PRIMARY KEY,
    value  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cycle_state (
    id          INTEGER PRIMARY KEY CHECK (id = 1),
    start_date  TEXT,
    confirmed   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS daily_balances (
    date      TEXT PRIMARY KEY,
    consumed  REAL NOT NULL,
    target    REAL NOT NULL,
    balance   REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS meals (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    date       TEXT NOT NULL,
    slot       TEXT NOT NULL,
    name       TEXT NOT NULL,
    kcal       REAL NOT NULL,
    logged_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cycle_archive (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    start_date       TEXT NOT NULL,
    end_date         TEXT NOT NULL,
    days_logged      INTEGER NOT NULL,
    total_balance    REAL NOT NULL,
    capped_balance   REAL NOT NULL,
    days_over_limit  INTEGER NOT NULL,
    archived_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meals_date ON meals(date);
CREATE INDEX IF NOT EXISTS idx_archive_start ON cycle_archive(start_date);
`

const dropSQL = `
DROP TABLE IF EXISTS meta;
DROP TABLE IF EXISTS cycle_state;
DROP TABLE IF EXISTS daily_balances;
DROP TABLE IF EXISTS meals;
DROP TABLE IF EXISTS cycle_archive;
`
