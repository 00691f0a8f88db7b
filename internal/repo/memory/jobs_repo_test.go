package memory_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrackhq/jobtrack/internal/domain/job"
	"github.com/jobtrackhq/jobtrack/internal/repo/memory"
)

func seedJob(t *testing.T, repo *memory.JobsRepo, owner, company, position string, status job.Status, jobType job.Type, createdAt time.Time) job.Job {
	t.Helper()

	j := job.Job{
		ID:        uuid.NewString(),
		Company:   company,
		Position:  position,
		Status:    status,
		JobType:   jobType,
		CreatedBy: owner,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	created, err := repo.Create(context.Background(), j)
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}

	return created
}

func TestList_PaginationInvariant(t *testing.T) {
	const owner = "user-a"
	const totalJobs = 23
	const limit = 7

	repo := memory.NewJobsRepo()
	base := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < totalJobs; i++ {
		seedJob(t, repo, owner, "acme", fmt.Sprintf("position-%02d", i), job.StatusPending, job.TypeFullTime, base.Add(time.Duration(i)*time.Hour))
	}

	for _, sortBy := range []job.Sort{job.SortNone, job.SortLatest, job.SortOldest, job.SortAZ, job.SortZA} {
		t.Run(string(sortBy)+"_sort", func(t *testing.T) {
			seen := make(map[string]bool)
			collected := 0

			page := 1
			for {
				q := job.ListQuery{Sort: sortBy, Page: page, Limit: limit}

				jobs, total, err := repo.List(context.Background(), owner, q)
				if err != nil {
					t.Fatalf("list page %d: %v", page, err)
				}

				if total != totalJobs {
					t.Fatalf("page %d: got total %d, want %d", page, total, totalJobs)
				}

				wantPages := (totalJobs + limit - 1) / limit
				if got := q.NumOfPages(total); got != wantPages {
					t.Fatalf("got numOfPages %d, want %d", got, wantPages)
				}

				if len(jobs) == 0 {
					break
				}

				for _, j := range jobs {
					if seen[j.ID] {
						t.Fatalf("job %s appeared on more than one page", j.ID)
					}
					seen[j.ID] = true
				}

				collected += len(jobs)
				page++
			}

			if collected != totalJobs {
				t.Fatalf("concatenated pages held %d jobs, want %d", collected, totalJobs)
			}
		})
	}
}

func TestList_FilterInvariants(t *testing.T) {
	const owner = "user-a"

	repo := memory.NewJobsRepo()
	now := time.Now().UTC()

	seedJob(t, repo, owner, "acme", "Backend Engineer", job.StatusInterview, job.TypeRemote, now)
	seedJob(t, repo, owner, "acme", "Frontend Engineer", job.StatusPending, job.TypeFullTime, now)
	seedJob(t, repo, owner, "globex", "Data Analyst", job.StatusInterview, job.TypeFullTime, now)
	seedJob(t, repo, owner, "globex", "Designer", job.StatusDeclined, job.TypePartTime, now)
	seedJob(t, repo, "user-b", "acme", "Platform Engineer", job.StatusInterview, job.TypeRemote, now)

	t.Run("status_filter", func(t *testing.T) {
		status := job.StatusInterview

		jobs, total, err := repo.List(context.Background(), owner, job.ListQuery{Status: &status, Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		if total != 2 || len(jobs) != 2 {
			t.Fatalf("got total=%d len=%d, want 2/2", total, len(jobs))
		}

		for _, j := range jobs {
			if j.Status != job.StatusInterview {
				t.Fatalf("job %s has status %s, want interview", j.ID, j.Status)
			}
		}
	})

	t.Run("search_is_case_insensitive_substring", func(t *testing.T) {
		search := "eNgInEeR"

		jobs, total, err := repo.List(context.Background(), owner, job.ListQuery{Search: &search, Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		if total != 2 {
			t.Fatalf("got total %d, want 2", total)
		}

		for _, j := range jobs {
			if !strings.Contains(strings.ToLower(j.Position), "engineer") {
				t.Fatalf("job position %q does not match search", j.Position)
			}
			if j.CreatedBy != owner {
				t.Fatalf("job %s belongs to %s, owner scoping leaked", j.ID, j.CreatedBy)
			}
		}
	})

	t.Run("combined_filters_conjoin", func(t *testing.T) {
		status := job.StatusInterview
		jobType := job.TypeFullTime

		_, total, err := repo.List(context.Background(), owner, job.ListQuery{Status: &status, JobType: &jobType, Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		if total != 1 {
			t.Fatalf("got total %d, want 1", total)
		}
	})
}

func TestOwnerScoping_CrossUserIsNotFound(t *testing.T) {
	repo := memory.NewJobsRepo()
	now := time.Now().UTC()

	created := seedJob(t, repo, "user-a", "acme", "Backend Engineer", job.StatusPending, job.TypeFullTime, now)

	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "user-b", created.ID); err != job.ErrNotFound {
		t.Fatalf("GetByID for foreign user: got %v, want ErrNotFound", err)
	}

	company := "evil corp"
	if _, err := repo.Update(ctx, "user-b", created.ID, job.UpdateJobRequest{Company: &company}); err != job.ErrNotFound {
		t.Fatalf("Update for foreign user: got %v, want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, "user-b", created.ID); err != job.ErrNotFound {
		t.Fatalf("Delete for foreign user: got %v, want ErrNotFound", err)
	}

	// the record is untouched for its owner
	got, err := repo.GetByID(ctx, "user-a", created.ID)
	if err != nil {
		t.Fatalf("owner lost access to own job: %v", err)
	}
	if got.Company != "acme" {
		t.Fatalf("job mutated by foreign user: %+v", got)
	}
}

func TestStatusCounts_Fixture(t *testing.T) {
	repo := memory.NewJobsRepo()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		seedJob(t, repo, "user-a", "acme", "p", job.StatusPending, job.TypeFullTime, now)
	}
	for i := 0; i < 2; i++ {
		seedJob(t, repo, "user-a", "acme", "p", job.StatusInterview, job.TypeFullTime, now)
	}
	seedJob(t, repo, "user-b", "acme", "p", job.StatusDeclined, job.TypeFullTime, now)

	counts, err := repo.StatusCounts(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("status counts: %v", err)
	}

	want := job.StatusCounts{Pending: 3, Interview: 2, Declined: 0}
	if counts != want {
		t.Fatalf("got %+v, want %+v", counts, want)
	}
}

func TestMonthlyCounts_CappedAtSixNewestFirst(t *testing.T) {
	repo := memory.NewJobsRepo()

	// nine distinct months, Apr through Dec 2025
	for i := 0; i < 9; i++ {
		createdAt := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		seedJob(t, repo, "user-a", "acme", "p", job.StatusPending, job.TypeFullTime, createdAt)
	}

	buckets, err := repo.MonthlyCounts(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("monthly counts: %v", err)
	}

	if len(buckets) != 6 {
		t.Fatalf("got %d buckets, want 6", len(buckets))
	}

	for i := 1; i < len(buckets); i++ {
		prev, cur := buckets[i-1], buckets[i]
		if cur.Year > prev.Year || (cur.Year == prev.Year && cur.Month >= prev.Month) {
			t.Fatalf("buckets not newest-first at %d: %+v then %+v", i, prev, cur)
		}
	}

	// and the formatted output never exceeds six, ascending
	apps := job.FormatMonthly(buckets)
	if len(apps) > 6 {
		t.Fatalf("formatted output has %d entries, want at most 6", len(apps))
	}
	if apps[0].Date != "Jul 2025" || apps[len(apps)-1].Date != "Dec 2025" {
		t.Fatalf("unexpected chronological range: first=%s last=%s", apps[0].Date, apps[len(apps)-1].Date)
	}
}
