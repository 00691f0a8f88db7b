package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusInterview Status = "interview"
	StatusDeclined  Status = "declined"
)

type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeRemote     Type = "remote"
	TypeInternship Type = "internship"
)

type Job struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Status    Status    `json:"status"`
	JobType   Type      `json:"jobType"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("job not found")

type CreateJobRequest struct {
	Company  string `json:"company" binding:"required,max=100"`
	Position string `json:"position" binding:"required,max=120"`
	Status   Status `json:"status" binding:"omitempty,oneof=pending interview declined"`
	JobType  Type   `json:"jobType" binding:"omitempty,oneof=full-time part-time remote internship"`
}

// Partial update. Pointers distinguish "absent" from "explicitly empty":
// company/position supplied as "" must be rejected, not skipped.
type UpdateJobRequest struct {
	Company  *string `json:"company" binding:"omitempty,max=100"`
	Position *string `json:"position" binding:"omitempty,max=120"`
	Status   *Status `json:"status" binding:"omitempty,oneof=pending interview declined"`
	JobType  *Type   `json:"jobType" binding:"omitempty,oneof=full-time part-time remote internship"`
}

// NewFromCreateRequest builds a Job owned by userID. Whatever ownership the
// payload may claim is ignored here, the caller identity always wins.
func NewFromCreateRequest(userID string, req CreateJobRequest) Job {
	now := time.Now().UTC()

	status := req.Status
	if status == "" {
		status = StatusPending
	}

	jobType := req.JobType
	if jobType == "" {
		jobType = TypeFullTime
	}

	return Job{
		ID:        uuid.NewString(),
		Company:   req.Company,
		Position:  req.Position,
		Status:    status,
		JobType:   jobType,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type StatusCounts struct {
	Pending   int `json:"pending"`
	Interview int `json:"interview"`
	Declined  int `json:"declined"`
}

// MonthlyCount is one (year, month) bucket of applications.
type MonthlyCount struct {
	Year  int
	Month time.Month
	Count int
}

type MonthlyApplication struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// FormatMonthly turns year-desc/month-desc buckets (at most six, as returned
// by the stores) into chronologically ascending "Jan 2006" entries.
func FormatMonthly(buckets []MonthlyCount) []MonthlyApplication {
	out := make([]MonthlyApplication, 0, len(buckets))

	for i := len(buckets) - 1; i >= 0; i-- {
		b := buckets[i]
		label := time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")

		out = append(out, MonthlyApplication{
			Date:  label,
			Count: b.Count,
		})
	}

	return out
}
