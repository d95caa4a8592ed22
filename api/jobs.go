package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// jobStore bookkeeps ingest jobs (source file identity, counts, timings)
// in Postgres. It never stores a generated route: routes are always
// recomputed, never persisted, per this module's non-goal.
//
// Grounded on passbi_core's internal/db/connection.go (pgxpool.ParseConfig
// + pgxpool.NewWithConfig, ping-on-connect) and cmd/importer/main.go's
// createImportLog/updateImportLog pair, generalized from a single
// hard-coded "import_log" table shape to this module's ingest_job fields.
type jobStore struct {
	pool *pgxpool.Pool
}

// IngestJob is one row of the ingest_job bookkeeping table.
type IngestJob struct {
	ID          string
	Region      string
	SourceFile  string
	Status      string // "running", "succeeded", "failed"
	NodeCount   int
	EdgeCount   int
	Message     string
	StartedAt   time.Time
	CompletedAt *time.Time
}

func newJobStore(dsn string) (*jobStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &jobStore{pool: pool}, nil
}

func (j *jobStore) Close() error {
	j.pool.Close()
	return nil
}

// CreateJob inserts a new running ingest_job row and returns its id.
func (j *jobStore) CreateJob(ctx context.Context, region, sourceFile string) (string, error) {
	id := uuid.NewString()
	_, err := j.pool.Exec(ctx, `
		INSERT INTO ingest_job (id, region, source_file, status, started_at)
		VALUES ($1, $2, $3, 'running', NOW())
	`, id, region, sourceFile)
	if err != nil {
		return "", fmt.Errorf("insert ingest_job: %w", err)
	}
	return id, nil
}

// CompleteJob marks a job succeeded (err == nil) or failed, recording
// counts and an optional message.
func (j *jobStore) CompleteJob(ctx context.Context, id string, nodeCount, edgeCount int, completionErr error) error {
	status := "succeeded"
	message := fmt.Sprintf("ingested %d nodes, %d edges", nodeCount, edgeCount)
	if completionErr != nil {
		status = "failed"
		message = completionErr.Error()
	}

	_, err := j.pool.Exec(ctx, `
		UPDATE ingest_job
		SET status = $2, node_count = $3, edge_count = $4, message = $5, completed_at = NOW()
		WHERE id = $1
	`, id, status, nodeCount, edgeCount, message)
	if err != nil {
		return fmt.Errorf("update ingest_job: %w", err)
	}
	return nil
}

// Job fetches a single ingest_job row by id.
func (j *jobStore) Job(ctx context.Context, id string) (*IngestJob, error) {
	var job IngestJob
	err := j.pool.QueryRow(ctx, `
		SELECT id, region, source_file, status, node_count, edge_count, message, started_at, completed_at
		FROM ingest_job WHERE id = $1
	`, id).Scan(&job.ID, &job.Region, &job.SourceFile, &job.Status, &job.NodeCount, &job.EdgeCount,
		&job.Message, &job.StartedAt, &job.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("query ingest_job %s: %w", id, err)
	}
	return &job, nil
}
