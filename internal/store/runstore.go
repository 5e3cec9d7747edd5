package store

import (
	"database/sql"
	"encoding/json"

	_ "github.com/glebarez/go-sqlite"

	"github.com/rahul/drishti/internal/agent"
)

// RunStore archives finished runs and their invocation history in a
// local sqlite database.
type RunStore struct {
	DB *sql.DB
}

func NewRunStore(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			goal TEXT,
			plan TEXT,
			final_answer TEXT,
			iterations INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS invocations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			step INTEGER,
			tool TEXT,
			parameters TEXT,
			summary TEXT,
			error TEXT,
			reused INTEGER DEFAULT 0
		);`,
	}
	for _, q := range queries {
		if _, err = db.Exec(q); err != nil {
			return nil, err
		}
	}

	return &RunStore{DB: db}, nil
}

func (s *RunStore) Close() error {
	return s.DB.Close()
}

// SaveRun writes the run row and one invocation row per history record.
func (s *RunStore) SaveRun(st *agent.RunState) error {
	plan, err := json.Marshal(st.Plan)
	if err != nil {
		return err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, goal, plan, final_answer, iterations) VALUES (?, ?, ?, ?, ?)`,
		st.ID, st.Goal, string(plan), st.FinalAnswer, st.Iterations,
	)
	if err != nil {
		return err
	}

	for _, rec := range st.History {
		params, err := json.Marshal(rec.Params)
		if err != nil {
			return err
		}
		summary := ""
		if rec.Result != nil {
			summary = rec.Result.Summary
		}
		reused := 0
		if rec.Reused {
			reused = 1
		}
		_, err = tx.Exec(
			`INSERT INTO invocations (run_id, step, tool, parameters, summary, error, reused) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			st.ID, rec.Step, rec.Tool, string(params), summary, rec.Err, reused,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentRuns returns the latest runs, newest first.
func (s *RunStore) RecentRuns(limit int) ([]map[string]any, error) {
	rows, err := s.DB.Query(
		`SELECT id, goal, final_answer, iterations, created_at FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]any
	for rows.Next() {
		var id, goal, answer, createdAt string
		var iterations int
		if err := rows.Scan(&id, &goal, &answer, &iterations, &createdAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]any{
			"id":           id,
			"goal":         goal,
			"final_answer": answer,
			"iterations":   iterations,
			"created_at":   createdAt,
		})
	}
	return runs, rows.Err()
}
