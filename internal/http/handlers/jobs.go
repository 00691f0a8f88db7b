package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackhq/jobtrack/internal/cache"
	"github.com/jobtrackhq/jobtrack/internal/domain/job"
	"github.com/jobtrackhq/jobtrack/internal/http/middlewares"
	"github.com/jobtrackhq/jobtrack/internal/observability"
)

type JobsStore interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	GetByID(ctx context.Context, userID, id string) (job.Job, error)
	List(ctx context.Context, userID string, q job.ListQuery) ([]job.Job, int, error)
	Update(ctx context.Context, userID, id string, req job.UpdateJobRequest) (job.Job, error)
	Delete(ctx context.Context, userID, id string) error
	StatusCounts(ctx context.Context, userID string) (job.StatusCounts, error)
	MonthlyCounts(ctx context.Context, userID string) ([]job.MonthlyCount, error)
}

type JobsHandler struct {
	repo       JobsStore
	statsCache *cache.Cache
	log        *slog.Logger
	prom       *observability.Prom
}

func NewJobsHandler(repo JobsStore, statsCache *cache.Cache, log *slog.Logger, prom *observability.Prom) *JobsHandler {
	return &JobsHandler{
		repo:       repo,
		statsCache: statsCache,
		log:        log,
		prom:       prom,
	}
}

// requireUserID pulls the authenticated identity; the auth gate runs before
// every route in here, so a miss means broken wiring, not a user error.
func requireUserID(ctx *gin.Context) (string, bool) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "Not authorized to access this route")
		return "", false
	}

	return userID, true
}

func statsCacheKey(userID string) string {
	return "stats:" + userID
}

func (h *JobsHandler) CreateJob(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req job.CreateJobRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// ownership always comes from the caller identity, never the payload
	j := job.NewFromCreateRequest(userID, req)

	created, err := h.repo.Create(ctx.Request.Context(), j)

	if err != nil {
		h.log.Error("job create failed", "err", err)
		RespondInternal(ctx, "Could not create job")
		return
	}

	if h.statsCache != nil {
		h.statsCache.Delete(statsCacheKey(userID))
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *JobsHandler) GetAllJobs(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	q := job.ParseListQuery(
		ctx.Query("search"),
		ctx.Query("status"),
		ctx.Query("jobType"),
		ctx.Query("sort"),
		ctx.Query("page"),
		ctx.Query("limit"),
	)

	jobs, total, err := h.repo.List(ctx.Request.Context(), userID, q)

	if err != nil {
		h.log.Error("job list failed", "err", err)
		RespondInternal(ctx, "Could not list jobs")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"jobs":       jobs,
		"totalJobs":  total,
		"numOfPages": q.NumOfPages(total),
	})
}

func (h *JobsHandler) GetJob(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	j, err := h.repo.GetByID(ctx.Request.Context(), userID, id)

	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			RespondNotFound(ctx, "No job found with id "+id)
			return
		}

		h.log.Error("job fetch failed", "err", err)
		RespondInternal(ctx, "Could not fetch job")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"job": j})
}

func (h *JobsHandler) UpdateJob(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var req job.UpdateJobRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// explicit empty strings are rejected, absent fields are fine
	if (req.Company != nil && *req.Company == "") || (req.Position != nil && *req.Position == "") {
		RespondBadRequest(ctx, "Company or Position field can not be empty")
		return
	}

	j, err := h.repo.Update(ctx.Request.Context(), userID, id, req)

	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			RespondNotFound(ctx, "No job found with id "+id)
			return
		}

		h.log.Error("job update failed", "err", err)
		RespondInternal(ctx, "Could not update job")
		return
	}

	if h.statsCache != nil {
		h.statsCache.Delete(statsCacheKey(userID))
	}

	ctx.JSON(http.StatusOK, gin.H{"job": j})
}

func (h *JobsHandler) DeleteJob(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	err := h.repo.Delete(ctx.Request.Context(), userID, id)

	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			RespondNotFound(ctx, "No job found with id "+id)
			return
		}

		h.log.Error("job delete failed", "err", err)
		RespondInternal(ctx, "Could not delete job")
		return
	}

	if h.statsCache != nil {
		h.statsCache.Delete(statsCacheKey(userID))
	}

	// empty object keeps wire compatibility with existing clients
	ctx.JSON(http.StatusOK, gin.H{})
}

// ShowStats serves the per-status counts and the six most recent monthly
// buckets in chronological order. Responses are cached per user until the
// next mutation or TTL expiry.
func (h *JobsHandler) ShowStats(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if h.statsCache != nil {
		if cached, ok := h.statsCache.Get(statsCacheKey(userID)); ok {
			h.prom.IncStatsCache("hit")
			ctx.JSON(http.StatusOK, cached)
			return
		}
	}
	h.prom.IncStatsCache("miss")

	rctx := ctx.Request.Context()

	counts, err := h.repo.StatusCounts(rctx, userID)

	if err != nil {
		h.log.Error("status counts failed", "err", err)
		RespondInternal(ctx, "Could not compute stats")
		return
	}

	buckets, err := h.repo.MonthlyCounts(rctx, userID)

	if err != nil {
		h.log.Error("monthly counts failed", "err", err)
		RespondInternal(ctx, "Could not compute stats")
		return
	}

	resp := gin.H{
		"defaultStats":        counts,
		"monthlyApplications": job.FormatMonthly(buckets),
	}

	if h.statsCache != nil {
		h.statsCache.Set(statsCacheKey(userID), resp)
	}

	ctx.JSON(http.StatusOK, resp)
}
