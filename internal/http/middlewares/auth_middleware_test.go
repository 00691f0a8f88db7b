package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackhq/jobtrack/internal/auth"
	"github.com/jobtrackhq/jobtrack/internal/http/middlewares"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	verifyFn func(token string) (*auth.Claims, error)
}

func (f *fakeVerifier) VerifyToken(token string) (*auth.Claims, error) {
	if f.verifyFn != nil {
		return f.verifyFn(token)
	}
	return nil, errors.New("no verifier configured")
}

const demoID = "demo-user-id"

func protectedRouter(v middlewares.TokenVerifier, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	m := middlewares.NewAuthMiddleware(v, demoID)

	handlers := []gin.HandlerFunc{m.RequireAuth()}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := middlewares.UserIDFromContext(c)
		name, _ := middlewares.NameFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"userId": id,
			"name":   name,
			"isDemo": middlewares.IsDemoFromContext(c),
		})
	})

	r.GET("/protected", handlers...)
	r.PATCH("/protected", handlers...)

	return r
}

func TestRequireAuth_RejectsMissingAndInvalidIdentically(t *testing.T) {
	v := &fakeVerifier{
		verifyFn: func(token string) (*auth.Claims, error) {
			return nil, errors.New("bad signature")
		},
	}

	r := protectedRouter(v)

	tests := []struct {
		name   string
		header string
	}{
		{"no_header", ""},
		{"not_bearer", "Basic abc123"},
		{"bearer_no_token", "Bearer "},
		{"invalid_token", "Bearer garbage"},
	}

	var bodies []string

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("got status %d, want 401, body=%s", w.Code, w.Body.String())
			}

			bodies = append(bodies, w.Body.String())
		})
	}

	// no-token and bad-token must be indistinguishable on the wire
	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Fatalf("rejection bodies differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}

func TestRequireAuth_AttachesIdentity(t *testing.T) {
	v := &fakeVerifier{
		verifyFn: func(token string) (*auth.Claims, error) {
			if token != "good-token" {
				return nil, errors.New("unexpected token")
			}
			return &auth.Claims{UserID: "user-123", Name: "Sam"}, nil
		},
	}

	r := protectedRouter(v)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	for _, want := range []string{`"userId":"user-123"`, `"name":"Sam"`, `"isDemo":false`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body %s missing %s", body, want)
		}
	}
}

func TestBlockDemoUser(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		wantStatus int
	}{
		{"demo_account_blocked", demoID, http.StatusBadRequest},
		{"regular_account_allowed", "user-123", http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			v := &fakeVerifier{
				verifyFn: func(token string) (*auth.Claims, error) {
					return &auth.Claims{UserID: tt.userID, Name: "n"}, nil
				},
			}

			r := protectedRouter(v, middlewares.BlockDemoUser())

			req := httptest.NewRequest(http.MethodPatch, "/protected", nil)
			req.Header.Set("Authorization", "Bearer token")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
