package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobtrackhq/jobtrack/internal/domain/job"
	"github.com/jobtrackhq/jobtrack/internal/observability"
)

type JobsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

// constructor function

func NewJobsRepo(pool *pgxpool.Pool, prom *observability.Prom) *JobsRepo {
	return &JobsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *JobsRepo) Create(ctx context.Context, j job.Job) (job.Job, error) {
	err := r.prom.ObserveDB("jobs.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO jobs(id, company, position, status, job_type, created_by, created_at, updated_at)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
			j.ID, j.Company, j.Position, j.Status, j.JobType, j.CreatedBy, j.CreatedAt, j.UpdatedAt)
		return err
	})

	if err != nil {
		return job.Job{}, err
	}

	return j, nil
}

// whereClause builds the conjunctive filter: the owner predicate always
// comes first and is never optional, the rest joins in as supplied.
func whereClause(userID string, q job.ListQuery) (string, []interface{}, int) {
	conds := []string{"created_by = $1"}
	args := []interface{}{userID}

	argsPosition := 2

	if q.Search != nil {
		conds = append(conds, fmt.Sprintf("position ILIKE $%d", argsPosition))
		args = append(args, "%"+*q.Search+"%")
		argsPosition++
	}

	if q.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, *q.Status)
		argsPosition++
	}

	if q.JobType != nil {
		conds = append(conds, fmt.Sprintf("job_type = $%d", argsPosition))
		args = append(args, *q.JobType)
		argsPosition++
	}

	return " WHERE " + strings.Join(conds, " AND "), args, argsPosition
}

func orderClause(sort job.Sort) string {
	switch sort {
	case job.SortLatest:
		// id tiebreak keeps page boundaries stable
		return " ORDER BY created_at DESC, id DESC"
	case job.SortOldest:
		return " ORDER BY created_at ASC, id ASC"
	case job.SortAZ:
		return " ORDER BY position ASC, id ASC"
	case job.SortZA:
		return " ORDER BY position DESC, id DESC"
	default:
		return ""
	}
}

// List applies the filter, ordering and offset pagination, and returns the
// page together with the total match count.
func (r *JobsRepo) List(ctx context.Context, userID string, q job.ListQuery) ([]job.Job, int, error) {
	baseQuery :=
		`SELECT id,
		company,
		position,
		status,
		job_type,
		created_by,
		created_at,
		updated_at,
		COUNT(*) OVER() AS total
	FROM jobs`

	where, args, argsPosition := whereClause(userID, q)

	query := baseQuery + where + orderClause(q.Sort)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argsPosition, argsPosition+1)

	args = append(args, q.Limit, q.Offset())

	output := make([]job.Job, 0, q.Limit)
	total := 0

	err := r.prom.ObserveDB("jobs.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var j job.Job
			var t int

			err = rows.Scan(&j.ID, &j.Company, &j.Position, &j.Status, &j.JobType, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt, &t)

			if err != nil {
				return err
			}

			total = t
			output = append(output, j)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, 0, err
	}

	// the window count is lost when the requested page is past the end
	if len(output) == 0 {
		total, err = r.count(ctx, userID, q)

		if err != nil {
			return nil, 0, err
		}
	}

	return output, total, nil
}

func (r *JobsRepo) count(ctx context.Context, userID string, q job.ListQuery) (int, error) {
	where, args, _ := whereClause(userID, q)

	var total int

	err := r.prom.ObserveDB("jobs.count", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&total)
	})

	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *JobsRepo) GetByID(ctx context.Context, userID, id string) (job.Job, error) {
	var j job.Job

	err := r.prom.ObserveDB("jobs.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, company, position, status, job_type, created_by, created_at, updated_at
			 FROM jobs
			 WHERE id = $1 AND created_by = $2`,
			id, userID,
		).Scan(&j.ID, &j.Company, &j.Position, &j.Status, &j.JobType, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}

		return job.Job{}, err
	}

	return j, nil
}

// Update applies a partial update in a single owner-scoped statement, so the
// find-and-modify is atomic at the store. Absent fields keep their value.
func (r *JobsRepo) Update(ctx context.Context, userID, id string, req job.UpdateJobRequest) (job.Job, error) {
	var j job.Job

	err := r.prom.ObserveDB("jobs.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE jobs
				SET company = COALESCE($3, company),
						position = COALESCE($4, position),
						status = COALESCE($5, status),
						job_type = COALESCE($6, job_type),
						updated_at = NOW()
			 WHERE id = $1 AND created_by = $2
			 RETURNING id, company, position, status, job_type, created_by, created_at, updated_at`,
			id,
			userID,
			req.Company,
			req.Position,
			req.Status,
			req.JobType,
		).Scan(
			&j.ID,
			&j.Company,
			&j.Position,
			&j.Status,
			&j.JobType,
			&j.CreatedBy,
			&j.CreatedAt,
			&j.UpdatedAt,
		)
	})

	if err != nil {
		// covers both "no such job" and "someone else's job"
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}

		return job.Job{}, err
	}

	return j, nil
}

func (r *JobsRepo) Delete(ctx context.Context, userID, id string) error {
	var affected int64

	err := r.prom.ObserveDB("jobs.delete", func() error {
		tag, err := r.pool.Exec(ctx, `
			DELETE FROM jobs WHERE id = $1 AND created_by = $2
		`, id, userID)

		if err != nil {
			return err
		}

		affected = tag.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	if affected == 0 {
		return job.ErrNotFound
	}

	return nil
}

// StatusCounts groups the caller's jobs per status, zero-filling statuses
// with no rows.
func (r *JobsRepo) StatusCounts(ctx context.Context, userID string) (job.StatusCounts, error) {
	var counts job.StatusCounts

	err := r.prom.ObserveDB("jobs.status_counts", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT status, COUNT(*)
			 FROM jobs
			 WHERE created_by = $1
			 GROUP BY status`,
			userID,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var status job.Status
			var n int

			if err := rows.Scan(&status, &n); err != nil {
				return err
			}

			switch status {
			case job.StatusPending:
				counts.Pending = n
			case job.StatusInterview:
				counts.Interview = n
			case job.StatusDeclined:
				counts.Declined = n
			}
		}

		return rows.Err()
	})

	if err != nil {
		return job.StatusCounts{}, err
	}

	return counts, nil
}

// MonthlyCounts returns up to the six most recent (year, month) buckets,
// newest first. Grouping uses the store's timestamps as-is, there is no
// timezone normalization.
func (r *JobsRepo) MonthlyCounts(ctx context.Context, userID string) ([]job.MonthlyCount, error) {
	buckets := make([]job.MonthlyCount, 0, 6)

	err := r.prom.ObserveDB("jobs.monthly_counts", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT EXTRACT(YEAR FROM created_at)::int AS year,
							EXTRACT(MONTH FROM created_at)::int AS month,
							COUNT(*)
			 FROM jobs
			 WHERE created_by = $1
			 GROUP BY 1, 2
			 ORDER BY 1 DESC, 2 DESC
			 LIMIT 6`,
			userID,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var year, month, n int

			if err := rows.Scan(&year, &month, &n); err != nil {
				return err
			}

			buckets = append(buckets, job.MonthlyCount{
				Year:  year,
				Month: time.Month(month),
				Count: n,
			})
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return buckets, nil
}
