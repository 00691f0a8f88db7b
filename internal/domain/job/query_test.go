package job_test

import (
	"testing"
	"time"

	"github.com/jobtrackhq/jobtrack/internal/domain/job"
)

func TestParseListQuery_Defaults(t *testing.T) {
	q := job.ParseListQuery("", "", "", "", "", "")

	if q.Page != 1 || q.Limit != 10 {
		t.Fatalf("got page=%d limit=%d, want 1/10", q.Page, q.Limit)
	}
	if q.Search != nil || q.Status != nil || q.JobType != nil {
		t.Fatalf("expected no optional predicates, got %+v", q)
	}
	if q.Sort != job.SortNone {
		t.Fatalf("expected store-default ordering, got %q", q.Sort)
	}
}

func TestParseListQuery_BadNumbersFallBack(t *testing.T) {
	tests := []struct {
		name        string
		page, limit string
		wantPage    int
		wantLimit   int
	}{
		{"non_numeric", "abc", "xyz", 1, 10},
		{"zero", "0", "0", 1, 10},
		{"negative", "-3", "-1", 1, 10},
		{"valid", "4", "25", 4, 25},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			q := job.ParseListQuery("", "", "", "", tt.page, tt.limit)

			if q.Page != tt.wantPage || q.Limit != tt.wantLimit {
				t.Fatalf("got page=%d limit=%d, want %d/%d", q.Page, q.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestParseListQuery_AllMeansNoFilter(t *testing.T) {
	q := job.ParseListQuery("", "all", "all", "", "", "")

	if q.Status != nil {
		t.Fatalf("status 'all' should not filter, got %v", *q.Status)
	}
	if q.JobType != nil {
		t.Fatalf("jobType 'all' should not filter, got %v", *q.JobType)
	}
}

func TestParseListQuery_EnumFilters(t *testing.T) {
	q := job.ParseListQuery("engineer", "interview", "remote", "latest", "2", "5")

	if q.Search == nil || *q.Search != "engineer" {
		t.Fatalf("search not carried: %+v", q.Search)
	}
	if q.Status == nil || *q.Status != job.StatusInterview {
		t.Fatalf("status not carried: %+v", q.Status)
	}
	if q.JobType == nil || *q.JobType != job.TypeRemote {
		t.Fatalf("jobType not carried: %+v", q.JobType)
	}
	if q.Sort != job.SortLatest {
		t.Fatalf("got sort %q, want latest", q.Sort)
	}
	if q.Offset() != 5 {
		t.Fatalf("got offset %d, want 5", q.Offset())
	}
}

func TestParseListQuery_UnknownSortIsStoreDefault(t *testing.T) {
	q := job.ParseListQuery("", "", "", "salary-desc", "", "")

	if q.Sort != job.SortNone {
		t.Fatalf("got sort %q, want store default", q.Sort)
	}
}

func TestNumOfPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{7, 3, 3},
	}

	for _, tt := range tests {
		q := job.ListQuery{Page: 1, Limit: tt.limit}

		if got := q.NumOfPages(tt.total); got != tt.want {
			t.Fatalf("NumOfPages(%d) with limit %d = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestFormatMonthly(t *testing.T) {
	// stores hand buckets over newest-first; output must be chronological
	buckets := []job.MonthlyCount{
		{Year: 2026, Month: time.March, Count: 4},
		{Year: 2026, Month: time.January, Count: 2},
		{Year: 2025, Month: time.November, Count: 7},
	}

	got := job.FormatMonthly(buckets)

	want := []job.MonthlyApplication{
		{Date: "Nov 2025", Count: 7},
		{Date: "Jan 2026", Count: 2},
		{Date: "Mar 2026", Count: 4},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
