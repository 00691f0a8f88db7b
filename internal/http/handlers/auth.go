package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackhq/jobtrack/internal/auth"
	"github.com/jobtrackhq/jobtrack/internal/config"
	"github.com/jobtrackhq/jobtrack/internal/domain/user"
	"github.com/jobtrackhq/jobtrack/internal/http/middlewares"
	"github.com/jobtrackhq/jobtrack/internal/observability"
	"github.com/jobtrackhq/jobtrack/internal/security"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, email, passwordHash, name, lastname, location string) (user.User, error)
	UpdateProfile(ctx context.Context, id string, req user.UpdateRequest) (user.User, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        *auth.Manager
	log        *slog.Logger
	prom       *observability.Prom
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwtManager *auth.Manager, log *slog.Logger, prom *observability.Prom) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwtManager,
		log:        log,
		prom:       prom,
	}
}

// userEnvelope is the public profile plus a fresh token. The password hash
// is not part of user.User's JSON form to begin with.
func userEnvelope(u user.User, token string) gin.H {
	return gin.H{
		"user": gin.H{
			"email":    u.Email,
			"name":     u.Name,
			"lastname": u.LastName,
			"location": u.Location,
			"token":    token,
		},
	}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.LastName == "" {
		req.LastName = user.DefaultLastName
	}
	if req.Location == "" {
		req.Location = user.DefaultLocation
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		h.prom.IncAuth("register", "error")
		RespondInternal(ctx, "Could not create user")
		return
	}

	u, err := h.userWriter.Create(cctx, req.Email, hash, req.Name, req.LastName, req.Location)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			h.prom.IncAuth("register", "rejected")
			RespondConflict(ctx, "Email is already in use")
			return
		}

		h.log.Error("register failed", "err", err)
		h.prom.IncAuth("register", "error")
		RespondInternal(ctx, "Could not create user")
		return
	}

	token, err := h.jwt.GenerateToken(u.ID, u.Name)

	if err != nil {
		h.log.Error("token generation failed", "err", err)
		RespondInternal(ctx, "Could not create user")
		return
	}

	h.prom.IncAuth("register", "ok")
	ctx.JSON(http.StatusCreated, userEnvelope(u, token))
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		// same message whether the email or the password was wrong
		h.prom.IncAuth("login", "rejected")
		RespondUnAuthorized(ctx, "Invalid Credentials")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		h.prom.IncAuth("login", "rejected")
		RespondUnAuthorized(ctx, "Invalid Credentials")
		return
	}

	token, err := h.jwt.GenerateToken(foundUser.ID, foundUser.Name)

	if err != nil {
		h.log.Error("token generation failed", "err", err)
		RespondInternal(ctx, "Could not log in")
		return
	}

	h.prom.IncAuth("login", "ok")
	ctx.JSON(http.StatusOK, userEnvelope(foundUser, token))
}

// UpdateUser overwrites the four profile fields and reissues the token so
// its embedded name stays consistent with the stored one.
func (h *AuthHandler) UpdateUser(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "Not authorized to access this route")
		return
	}

	var req user.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.userWriter.UpdateProfile(cctx, userID, req)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, user.ErrEmailTaken) {
			RespondDomainError(ctx, err, "Could not update user")
			return
		}

		h.log.Error("profile update failed", "err", err)
		RespondInternal(ctx, "Could not update user")
		return
	}

	token, err := h.jwt.GenerateToken(u.ID, u.Name)

	if err != nil {
		h.log.Error("token generation failed", "err", err)
		RespondInternal(ctx, "Could not update user")
		return
	}

	ctx.JSON(http.StatusOK, userEnvelope(u, token))
}
