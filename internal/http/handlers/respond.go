package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackhq/jobtrack/internal/domain/job"
	"github.com/jobtrackhq/jobtrack/internal/domain/user"
)

// Every failure leaves through here as {"msg": "..."} with a status that
// reflects the error kind. Internal detail never reaches the client.

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"msg": message})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

func RespondUnAuthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, message)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message)
}

// RespondDomainError translates the domain sentinels; anything unknown
// becomes a generic 500 with the fallback message.
func RespondDomainError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, job.ErrNotFound):
		RespondNotFound(ctx, "No job found")
	case errors.Is(err, user.ErrNotFound):
		RespondNotFound(ctx, "No user found")
	case errors.Is(err, user.ErrEmailTaken):
		RespondConflict(ctx, "Email is already in use")
	default:
		RespondInternal(ctx, fallback)
	}
}
