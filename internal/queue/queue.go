// Package queue is the local durable store for submissions that could not
// be delivered to the hosted database. Entries live in a single SQLite file
// and survive process restarts; the sync coordinator removes them only after
// the remote write is acknowledged.
package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/VitorSouza2004/SouzaTec/internal/models"
)

const localIDPrefix = "local_"

type Queue struct {
	db *sql.DB
}

// Open opens (or creates) the queue file. Use ":memory:" in tests.
// SQLite allows a single writer, so the handle is pinned to one
// connection and writers wait for the lock instead of failing with
// SQLITE_BUSY.
func Open(path string) (*Queue, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	q := &Queue{db: db}
	if err := q.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return q, nil
}

func (q *Queue) initSchema() error {
	_, err := q.db.Exec(`
	CREATE TABLE IF NOT EXISTS pending_submissions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		local_id TEXT NOT NULL UNIQUE,
		payload TEXT NOT NULL,
		enqueued_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`)
	return err
}

func (q *Queue) Close() error { return q.db.Close() }

// Enqueue appends the request and returns the minted local id. Ids are the
// fixed prefix plus the submission epoch milliseconds; a collision (two
// submissions inside the same millisecond) is resolved by appending the
// current epoch count again.
func (q *Queue) Enqueue(ctx context.Context, req models.ServiceRequest) (models.QueuedSubmission, error) {
	sub := models.QueuedSubmission{
		ServiceRequest: req,
		LocalID:        localIDPrefix + strconv.FormatInt(time.Now().UnixMilli(), 10),
		NeedsSync:      true,
	}

	for {
		payload, err := json.Marshal(sub)
		if err != nil {
			return models.QueuedSubmission{}, err
		}
		_, err = q.db.ExecContext(ctx, `
			INSERT INTO pending_submissions (local_id, payload) VALUES (?, ?)
		`, sub.LocalID, string(payload))
		if err == nil {
			return sub, nil
		}
		if !isUniqueViolation(err) {
			return models.QueuedSubmission{}, err
		}
		sub.LocalID += "_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
}

// Pending returns every queued submission in insertion order.
func (q *Queue) Pending(ctx context.Context) ([]models.QueuedSubmission, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT payload FROM pending_submissions ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.QueuedSubmission
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var sub models.QueuedSubmission
		if err := json.Unmarshal([]byte(payload), &sub); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Remove deletes an entry by local id. Removing an absent id is a no-op.
func (q *Queue) Remove(ctx context.Context, localID string) error {
	_, err := q.db.ExecContext(ctx, `
		DELETE FROM pending_submissions WHERE local_id = ?
	`, localID)
	return err
}

// Len reports how many submissions are waiting.
func (q *Queue) Len(ctx context.Context) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_submissions`).Scan(&n)
	return n, err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
