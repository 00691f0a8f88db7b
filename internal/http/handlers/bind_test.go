package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jobtrackhq/jobtrack/internal/domain/user"
	"github.com/jobtrackhq/jobtrack/internal/http/handlers"
)

func bindRouter() *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", func(ctx *gin.Context) {
		var req user.RegisterRequest
		if !handlers.BindJSON(ctx, &req) {
			return
		}
		ctx.Status(http.StatusCreated)
	})

	return r
}

func TestBindJSON_ValidationMessageNamesJSONFields(t *testing.T) {
	r := bindRouter()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"name":"A"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}

	var resp struct {
		Msg string `json:"msg"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v body=%s", err, w.Body.String())
	}

	if !strings.HasPrefix(resp.Msg, "Please provide all values:") {
		t.Fatalf("unexpected msg prefix: %q", resp.Msg)
	}

	for _, want := range []string{
		"name must be at least 2",
		"email is required",
		"password is required",
	} {
		if !strings.Contains(resp.Msg, want) {
			t.Fatalf("msg %q missing %q", resp.Msg, want)
		}
	}
}

func TestBindJSON_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "truncated_json", body: `{"name":`},
		{name: "type_mismatch", body: `{"name":7,"email":"a@b.com","password":"secret123"}`},
		{name: "empty_body", body: ``},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			r := bindRouter()

			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
			}

			var resp struct {
				Msg string `json:"msg"`
			}

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal error response: %v body=%s", err, w.Body.String())
			}

			if resp.Msg != "Invalid request body" {
				t.Fatalf("got msg %q, want %q", resp.Msg, "Invalid request body")
			}
		})
	}
}
