package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Job is one recorded batch import.
type Job struct {
	ID         string
	Folder     string
	State      string
	Total      int
	Imported   int
	StartedAt  time.Time
	FinishedAt time.Time
	Files      []JobFile
}

// JobFile is one file of a recorded job. Collection is empty when the file
// produced nothing; Error is empty when it succeeded.
type JobFile struct {
	File       string
	Collection string
	Error      string
}

func addJob(q querier, j *Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	_, err := q.Exec(`
		INSERT INTO jobs (id, folder, state, total, imported, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Folder, j.State, j.Total, j.Imported, j.StartedAt, j.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", mapSQLiteError(err))
	}
	for _, f := range j.Files {
		_, err := q.Exec(`
			INSERT INTO job_files (job_id, file, collection, error)
			VALUES (?, ?, ?, ?)`,
			j.ID, f.File, f.Collection, f.Error,
		)
		if err != nil {
			return fmt.Errorf("insert job file: %w", mapSQLiteError(err))
		}
	}
	return nil
}

// AddJob inserts a job and its per-file rows. Assigns a fresh ID when the
// job has none.
func (s *Store) AddJob(j *Job) error { return addJob(s.db, j) }

// AddJob inserts a job within a transaction.
func (t *Tx) AddJob(j *Job) error { return addJob(t.tx, j) }

func getJob(q querier, id string) (*Job, error) {
	j := &Job{}
	err := q.QueryRow(`
		SELECT id, folder, state, total, imported, started_at, finished_at
		FROM jobs WHERE id = ?`, id,
	).Scan(&j.ID, &j.Folder, &j.State, &j.Total, &j.Imported, &j.StartedAt, &j.FinishedAt)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, mapSQLiteError(err))
	}

	rows, err := q.Query(`
		SELECT file, collection, error
		FROM job_files WHERE job_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get job files %s: %w", id, mapSQLiteError(err))
	}
	defer rows.Close()
	for rows.Next() {
		var f JobFile
		if err := rows.Scan(&f.File, &f.Collection, &f.Error); err != nil {
			return nil, fmt.Errorf("scan job file: %w", err)
		}
		j.Files = append(j.Files, f)
	}
	return j, rows.Err()
}

// GetJob retrieves a job and its files by ID.
// Returns ErrNotFound if the job does not exist.
func (s *Store) GetJob(id string) (*Job, error) { return getJob(s.db, id) }

// GetJob retrieves a job by ID within a transaction.
func (t *Tx) GetJob(id string) (*Job, error) { return getJob(t.tx, id) }

func listJobs(q querier, limit int) ([]*Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.Query(`
		SELECT id, folder, state, total, imported, started_at, finished_at
		FROM jobs ORDER BY started_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", mapSQLiteError(err))
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		j := &Job{}
		if err := rows.Scan(&j.ID, &j.Folder, &j.State, &j.Total, &j.Imported, &j.StartedAt, &j.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// ListJobs returns the most recent jobs, newest first, without file rows.
func (s *Store) ListJobs(limit int) ([]*Job, error) { return listJobs(s.db, limit) }

// ListJobs lists jobs within a transaction.
func (t *Tx) ListJobs(limit int) ([]*Job, error) { return listJobs(t.tx, limit) }
