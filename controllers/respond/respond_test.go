package respond

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/models"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{models.ValidationError("All fields required"), http.StatusBadRequest},
		{models.ErrDuplicateEmail, http.StatusBadRequest},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{models.ErrAdminsOnly, http.StatusForbidden},
		{models.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("insert user: %w", models.ErrDuplicateEmail), http.StatusBadRequest},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Fatalf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestErrorHidesStorageCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/signup", nil)

	Error(c, errors.New("pq: password authentication failed"), "Signup failed")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"Signup failed"}` {
		t.Fatalf("unexpected body %s", body)
	}
}
