package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jobtrackhq/jobtrack/internal/domain/job"
)

// JobsRepo keeps jobs in memory with the same filter/sort/pagination
// semantics as the postgres repo. It backs the handler and invariant tests.
type JobsRepo struct {
	mu    sync.RWMutex
	items map[string]job.Job
	order []string // insertion order stands in for the store's default order
}

func NewJobsRepo() *JobsRepo {
	return &JobsRepo{
		items: make(map[string]job.Job),
	}
}

func (r *JobsRepo) Create(ctx context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	r.items[j.ID] = j
	r.order = append(r.order, j.ID)
	r.mu.Unlock()

	return j, nil
}

func (r *JobsRepo) GetByID(ctx context.Context, userID, id string) (job.Job, error) {
	r.mu.RLock()
	j, ok := r.items[id]
	r.mu.RUnlock()

	if !ok || j.CreatedBy != userID {
		return job.Job{}, job.ErrNotFound
	}

	return j, nil
}

func (r *JobsRepo) List(ctx context.Context, userID string, q job.ListQuery) ([]job.Job, int, error) {
	r.mu.RLock()

	matched := make([]job.Job, 0, len(r.order))

	for _, id := range r.order {
		j := r.items[id]

		if j.CreatedBy != userID {
			continue
		}
		if q.Search != nil && !strings.Contains(strings.ToLower(j.Position), strings.ToLower(*q.Search)) {
			continue
		}
		if q.Status != nil && j.Status != *q.Status {
			continue
		}
		if q.JobType != nil && j.JobType != *q.JobType {
			continue
		}

		matched = append(matched, j)
	}
	r.mu.RUnlock()

	sortJobs(matched, q.Sort)

	total := len(matched)

	start := q.Offset()
	if start > total {
		start = total
	}

	end := start + q.Limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func sortJobs(jobs []job.Job, by job.Sort) {
	switch by {
	case job.SortLatest:
		sort.SliceStable(jobs, func(i, k int) bool {
			return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
		})
	case job.SortOldest:
		sort.SliceStable(jobs, func(i, k int) bool {
			return jobs[i].CreatedAt.Before(jobs[k].CreatedAt)
		})
	case job.SortAZ:
		sort.SliceStable(jobs, func(i, k int) bool {
			return jobs[i].Position < jobs[k].Position
		})
	case job.SortZA:
		sort.SliceStable(jobs, func(i, k int) bool {
			return jobs[i].Position > jobs[k].Position
		})
	}
}

func (r *JobsRepo) Update(ctx context.Context, userID, id string, req job.UpdateJobRequest) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[id]

	if !ok || j.CreatedBy != userID {
		return job.Job{}, job.ErrNotFound
	}

	if req.Company != nil {
		j.Company = *req.Company
	}
	if req.Position != nil {
		j.Position = *req.Position
	}
	if req.Status != nil {
		j.Status = *req.Status
	}
	if req.JobType != nil {
		j.JobType = *req.JobType
	}
	j.UpdatedAt = time.Now().UTC()

	r.items[id] = j

	return j, nil
}

func (r *JobsRepo) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[id]

	if !ok || j.CreatedBy != userID {
		return job.ErrNotFound
	}

	delete(r.items, id)

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *JobsRepo) StatusCounts(ctx context.Context, userID string) (job.StatusCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var counts job.StatusCounts

	for _, j := range r.items {
		if j.CreatedBy != userID {
			continue
		}

		switch j.Status {
		case job.StatusPending:
			counts.Pending++
		case job.StatusInterview:
			counts.Interview++
		case job.StatusDeclined:
			counts.Declined++
		}
	}

	return counts, nil
}

func (r *JobsRepo) MonthlyCounts(ctx context.Context, userID string) ([]job.MonthlyCount, error) {
	type ym struct {
		year  int
		month time.Month
	}

	r.mu.RLock()

	grouped := make(map[ym]int)

	for _, j := range r.items {
		if j.CreatedBy != userID {
			continue
		}

		key := ym{year: j.CreatedAt.Year(), month: j.CreatedAt.Month()}
		grouped[key]++
	}
	r.mu.RUnlock()

	buckets := make([]job.MonthlyCount, 0, len(grouped))

	for key, n := range grouped {
		buckets = append(buckets, job.MonthlyCount{Year: key.year, Month: key.month, Count: n})
	}

	// newest first, capped at six, same as the aggregation query
	sort.Slice(buckets, func(i, k int) bool {
		if buckets[i].Year != buckets[k].Year {
			return buckets[i].Year > buckets[k].Year
		}
		return buckets[i].Month > buckets[k].Month
	})

	if len(buckets) > 6 {
		buckets = buckets[:6]
	}

	return buckets, nil
}
