package cartControllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/events"
	"github.com/junaidrashid-git/shopfront-api/models"
	"github.com/junaidrashid-git/shopfront-api/store/memstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCartFixture(t *testing.T) (*Service, *memstore.Store, *models.Product) {
	t.Helper()
	st := memstore.New()
	p := &models.Product{Name: "Mug", Category: "home", Price: 7.5, ImageURL: "mug.png"}
	if err := st.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return NewService(st, nil), st, p
}

func TestAddAccumulatesQuantity(t *testing.T) {
	svc, _, p := newCartFixture(t)
	ctx := context.Background()

	if err := svc.Add(ctx, 1, p.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(ctx, 1, p.ID, 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 5 || lines[0].Name != "Mug" || lines[0].Price != 7.5 {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestConcurrentAddsAllCount(t *testing.T) {
	svc, st, p := newCartFixture(t)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Add(ctx, 7, p.ID, 1)
		}()
	}
	wg.Wait()

	rows := st.CartRows(7)
	if len(rows) != 1 || rows[0].Quantity != n {
		t.Fatalf("expected one row with quantity %d, got %+v", n, rows)
	}
}

func TestAddRequiresIDs(t *testing.T) {
	svc, _, p := newCartFixture(t)
	if err := svc.Add(context.Background(), 0, p.ID, 1); !models.IsValidation(err) {
		t.Fatalf("missing user: %v", err)
	}
	if err := svc.Add(context.Background(), 1, 0, 1); !models.IsValidation(err) {
		t.Fatalf("missing product: %v", err)
	}
}

func TestGetEmptyCart(t *testing.T) {
	svc, _, _ := newCartFixture(t)
	lines, err := svc.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if lines == nil || len(lines) != 0 {
		t.Fatalf("expected empty slice, got %#v", lines)
	}
}

func TestCartHandlers(t *testing.T) {
	st := memstore.New()
	p := &models.Product{Name: "Mug", Category: "home", Price: 7.5, ImageURL: "mug.png"}
	_ = st.CreateProduct(context.Background(), p)
	rec := &events.Recorder{}
	svc := NewService(st, rec)

	r := gin.New()
	r.POST("/add-to-cart", AddToCart(svc))
	r.GET("/cart", GetCart(svc))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/add-to-cart", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := post(`{"user_id":1,"product_id":1}`); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Product added to cart") {
		t.Fatalf("add default quantity: %d %s", w.Code, w.Body.String())
	}
	if w := post(`{"user_id":1,"product_id":1,"quantity":4}`); w.Code != http.StatusOK {
		t.Fatalf("add with quantity: %d", w.Code)
	}
	if w := post(`{"user_id":1}`); w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "user_id and product_id required") {
		t.Fatalf("missing product: %d %s", w.Code, w.Body.String())
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart?user_id=1", nil))
	var lines []models.CartLine
	if err := json.Unmarshal(w.Body.Bytes(), &lines); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 5 || lines[0].ImageURL != "mug.png" {
		t.Fatalf("cart: %s", w.Body.String())
	}

	for path, want := range map[string]int{
		"/cart":           http.StatusBadRequest,
		"/cart?user_id=x": http.StatusBadRequest,
		"/cart?user_id=2": http.StatusOK,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want {
			t.Fatalf("%s: got %d want %d", path, w.Code, want)
		}
	}

	if got := len(rec.Topics()); got != 2 {
		t.Fatalf("expected 2 cart events, got %d", got)
	}

	st.SetFailure(errors.New("db down"))
	if w := post(`{"user_id":1,"product_id":1}`); w.Code != http.StatusInternalServerError || w.Body.String() != `{"error":"Error adding to cart"}` {
		t.Fatalf("storage failure: %d %s", w.Code, w.Body.String())
	}
}
