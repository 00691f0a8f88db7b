package job

import (
	"strconv"
	"strings"
)

type Sort string

const (
	SortNone   Sort = ""
	SortLatest Sort = "latest"
	SortOldest Sort = "oldest"
	SortAZ     Sort = "a-z"
	SortZA     Sort = "z-a"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListQuery is the normalized job listing query. The owner predicate is not
// part of it: every store call takes the owning user id separately and
// always filters by it.
type ListQuery struct {
	Search  *string
	Status  *Status
	JobType *Type
	Sort    Sort
	Page    int
	Limit   int
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// NumOfPages computes ceil(total/limit) for a total match count.
func (q ListQuery) NumOfPages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + q.Limit - 1) / q.Limit
}

// ParseListQuery normalizes raw URL parameters. Bad or absent numbers fall
// back to defaults instead of failing, "all" (or anything outside the enum)
// means no filter, and unknown sort values leave ordering to the store.
func ParseListQuery(search, status, jobType, sort, page, limit string) ListQuery {
	q := ListQuery{
		Sort:  parseSort(sort),
		Page:  parsePositiveInt(page, DefaultPage),
		Limit: parsePositiveInt(limit, DefaultLimit),
	}

	if s := strings.TrimSpace(search); s != "" {
		q.Search = &s
	}

	if st := Status(strings.TrimSpace(status)); validStatus(st) {
		q.Status = &st
	}

	if jt := Type(strings.TrimSpace(jobType)); validType(jt) {
		q.JobType = &jt
	}

	return q
}

func parseSort(raw string) Sort {
	switch Sort(strings.TrimSpace(raw)) {
	case SortLatest:
		return SortLatest
	case SortOldest:
		return SortOldest
	case SortAZ:
		return SortAZ
	case SortZA:
		return SortZA
	default:
		return SortNone
	}
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))

	if err != nil || n < 1 {
		return fallback
	}

	return n
}

func validStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInterview, StatusDeclined:
		return true
	}
	return false
}

func validType(t Type) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeRemote, TypeInternship:
		return true
	}
	return false
}
