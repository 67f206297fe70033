// Package indexdb keeps a queryable SQLite copy of the audit trail. It is a
// read model only; world state is never restored from it.
package indexdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"spacestation.ai/internal/sim/tuning"
	"spacestation.ai/internal/sim/world"
)

type SQLiteIndex struct {
	db          *sql.DB
	insertAudit *sql.Stmt
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	ins, err := db.Prepare(`INSERT OR REPLACE INTO audits(run_id,seq,step,actor,action,resource_id,kind,amount,x,y,code,reason,raw_json) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db, insertAudit: ins}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			tuning_digest TEXT NOT NULL,
			tuning_json TEXT NOT NULL,
			started_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS audits (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			step INTEGER NOT NULL,
			actor TEXT NOT NULL,
			action TEXT NOT NULL,
			resource_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			amount INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			code TEXT NOT NULL,
			reason TEXT NOT NULL,
			raw_json TEXT NOT NULL,
			PRIMARY KEY(run_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS audits_code ON audits(run_id, code);`,
		`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1');`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	if s == nil {
		return nil
	}
	_ = s.insertAudit.Close()
	return s.db.Close()
}

// RecordRun stores the tuning a run was started with.
func (s *SQLiteIndex) RecordRun(ctx context.Context, runID string, seed uint64, tune tuning.Tuning) error {
	b, err := json.Marshal(tune)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(b)
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs(run_id,seed,tuning_digest,tuning_json,started_at) VALUES(?,?,?,?,?)`,
		runID, int64(seed), hex.EncodeToString(sum[:]), string(b), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// WriteAudit makes the index a world.AuditSink.
func (s *SQLiteIndex) WriteAudit(e world.AuditEntry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = s.insertAudit.Exec(e.RunID, int64(e.Seq), int64(e.Step), e.Actor, e.Action,
		e.ResourceID, e.Kind, e.Amount, e.X, e.Y, e.Code, e.Reason, string(raw))
	return err
}

func (s *SQLiteIndex) CountAudits(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audits WHERE run_id=?`, runID).Scan(&n)
	return n, err
}

// CodeCounts tallies a run's audits by result code.
func (s *SQLiteIndex) CodeCounts(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, COUNT(*) FROM audits WHERE run_id=? GROUP BY code`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var code string
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, err
		}
		out[code] = n
	}
	return out, rows.Err()
}

// MinedTotals sums successfully mined amounts per resource kind.
func (s *SQLiteIndex) MinedTotals(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, SUM(amount) FROM audits WHERE run_id=? AND action='MINE' AND code='NOMINAL' GROUP BY kind`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, rows.Err()
}

// RunTuning returns the tuning recorded for runID.
func (s *SQLiteIndex) RunTuning(ctx context.Context, runID string) (tuning.Tuning, string, error) {
	var raw, digest string
	err := s.db.QueryRowContext(ctx, `SELECT tuning_json, tuning_digest FROM runs WHERE run_id=?`, runID).Scan(&raw, &digest)
	if err != nil {
		return tuning.Tuning{}, "", err
	}
	var t tuning.Tuning
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return tuning.Tuning{}, "", err
	}
	return t, digest, nil
}
