package userControllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/auth"
	"github.com/junaidrashid-git/shopfront-api/events"
	"github.com/junaidrashid-git/shopfront-api/models"
	"github.com/junaidrashid-git/shopfront-api/store/memstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestService(t *testing.T) (*Service, *memstore.Store, *events.Recorder) {
	t.Helper()
	st := memstore.New()
	rec := &events.Recorder{}
	svc := NewService(st, auth.NewTokenIssuer("test-secret", time.Hour), auth.NewMemoryRevoker(), rec)
	return svc, st, rec
}

func seedAdmin(t *testing.T, st *memstore.Store, email, password string, isAdmin bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &models.User{Name: "Boss", Email: email, Password: hash, IsAdmin: isAdmin}
	if err := st.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestSignupThenLogin(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "Ann", "ann@x.io", "pw1")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if created.Password == "pw1" {
		t.Fatal("password stored in plain text")
	}

	user, err := svc.Login(ctx, "ann@x.io", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != created.ID || user.Name != "Ann" {
		t.Fatalf("unexpected user %+v", user)
	}
	if topics := rec.Topics(); len(topics) != 1 || topics[0] != events.TopicUserCreated {
		t.Fatalf("events: %v", topics)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "Ann", "ann@x.io", "pw1"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := svc.Signup(ctx, "Ann Again", "ann@x.io", "pw2")
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSignupRequiresAllFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	for _, in := range [][3]string{{"", "a@x.io", "pw"}, {"A", "", "pw"}, {"A", "a@x.io", ""}} {
		_, err := svc.Signup(context.Background(), in[0], in[1], in[2])
		if !models.IsValidation(err) {
			t.Fatalf("Signup(%q): expected validation error, got %v", in, err)
		}
	}
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Signup(ctx, "Ann", "ann@x.io", "pw1"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, wrongPw := svc.Login(ctx, "ann@x.io", "nope")
	_, unknown := svc.Login(ctx, "ghost@x.io", "pw1")
	if !errors.Is(wrongPw, models.ErrInvalidCredentials) || !errors.Is(unknown, models.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", wrongPw, unknown)
	}
	if wrongPw.Error() != unknown.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPw, unknown)
	}
}

func TestAdminLogin(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	admin := seedAdmin(t, st, "boss@shop.io", "root", true)
	seedAdmin(t, st, "clerk@shop.io", "clerk", false)

	session, err := svc.AdminLogin(ctx, "boss@shop.io", "root")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if session.Admin.ID != admin.ID || session.Token == "" || !session.ExpiresAt.After(time.Now()) {
		t.Fatalf("unexpected session %+v", session)
	}

	if _, err := svc.AdminLogin(ctx, "clerk@shop.io", "clerk"); !errors.Is(err, models.ErrAdminsOnly) {
		t.Fatalf("non-admin: expected ErrAdminsOnly, got %v", err)
	}
	if _, err := svc.AdminLogin(ctx, "boss@shop.io", "wrong"); !errors.Is(err, models.ErrAdminInvalidCredentials) {
		t.Fatalf("bad password: expected ErrAdminInvalidCredentials, got %v", err)
	}
	if _, err := svc.AdminLogin(ctx, "ghost@shop.io", "root"); !errors.Is(err, models.ErrAdminInvalidCredentials) {
		t.Fatalf("unknown: expected ErrAdminInvalidCredentials, got %v", err)
	}
}

func TestAdminLogoutRevokesToken(t *testing.T) {
	st := memstore.New()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	revoker := auth.NewMemoryRevoker()
	svc := NewService(st, tokens, revoker, nil)
	seedAdmin(t, st, "boss@shop.io", "root", true)

	session, err := svc.AdminLogin(context.Background(), "boss@shop.io", "root")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	claims, err := tokens.Parse(session.Token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := svc.AdminLogout(context.Background(), claims); err != nil {
		t.Fatalf("AdminLogout: %v", err)
	}
	revoked, _ := revoker.IsRevoked(context.Background(), claims.ID)
	if !revoked {
		t.Fatal("expected token to be revoked")
	}
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupAndLoginHandlers(t *testing.T) {
	svc, st, _ := newTestService(t)
	r := gin.New()
	r.POST("/signup", Signup(svc))
	r.POST("/login", Login(svc))

	w := doJSON(r, http.MethodPost, "/signup", `{"name":"Ann","email":"ann@x.io","password":"pw1"}`)
	if w.Code != http.StatusCreated || !strings.Contains(w.Body.String(), "Signup successful") {
		t.Fatalf("signup: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/signup", `{"name":"Ann","email":"ann@x.io","password":"pw1"}`)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Email already exists") {
		t.Fatalf("duplicate signup: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/signup", `{"name":"Ann","email":"ann2@x.io"}`)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "All fields required") {
		t.Fatalf("missing field: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/login", `{"email":"ann@x.io","password":"pw1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var body struct {
		UserID  uint   `json:"user_id"`
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.UserID == 0 || body.Name != "Ann" || body.Message != "Login successful" {
		t.Fatalf("unexpected login body %+v", body)
	}

	w = doJSON(r, http.MethodPost, "/login", `{"email":"ann@x.io","password":"bad"}`)
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Invalid email or password") {
		t.Fatalf("bad login: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/login", `{"email":"ann@x.io"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing password: %d", w.Code)
	}

	st.SetFailure(errors.New("db down"))
	w = doJSON(r, http.MethodPost, "/signup", `{"name":"Bob","email":"bob@x.io","password":"pw"}`)
	if w.Code != http.StatusInternalServerError || w.Body.String() != `{"error":"Signup failed"}` {
		t.Fatalf("storage failure: %d %s", w.Code, w.Body.String())
	}
}
