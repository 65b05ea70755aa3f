package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafe-altura/internal/auth"
	ord "github.com/MikeMC777/cafe-altura/internal/order"
)

const testSecret = "test-secret"

// brokenRepo fails every call, as a database that went away would.
type brokenRepo struct{}

func (brokenRepo) Create(context.Context, *ord.Order) error { return errors.New("conn refused") }
func (brokenRepo) List(context.Context) ([]ord.Order, error) {
	return nil, errors.New("conn refused")
}
func (brokenRepo) GetByID(context.Context, string) (*ord.Order, error) {
	return nil, errors.New("conn refused")
}
func (brokenRepo) UpdateStatus(context.Context, string, ord.Status) (*ord.Order, ord.Status, error) {
	return nil, "", errors.New("conn refused")
}

func newTestRouter(repo ord.Repository, requireAuth bool) *gin.Engine {
	svc := ord.NewService(repo, ord.Permissive, nil)
	return newRouter(svc, routerOpts{jwtSecret: testSecret, requireAuth: requireAuth})
}

func doJSON(r http.Handler, method, url, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, url, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(testSecret, time.Hour, uuid.NewString(), "Admin", role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) ord.Order {
	t.Helper()
	var o ord.Order
	if err := json.Unmarshal(w.Body.Bytes(), &o); err != nil {
		t.Fatalf("json inválido: %v body=%s", err, w.Body.String())
	}
	return o
}

// ===== Ana por Instagram: crear, listar, cancelar, consultar =====
func TestOrderLifecycle_AnaInstagram(t *testing.T) {
	t.Parallel()

	r := newTestRouter(ord.NewMemRepo(), true)
	tok := token(t, auth.RoleAdmin)

	w := doJSON(r, http.MethodPost, "/api/pedidos",
		`{"clientName":"Ana","detail":"2x Arábica 250g","totalAmount":360}`, tok)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s (esperaba 201)", w.Code, w.Body.String())
	}
	created := decodeOrder(t, w)
	if created.Status != ord.Pending || created.Channel != ord.Instagram {
		t.Fatalf("pedido inesperado: %+v", created)
	}
	if !created.TotalAmount.Equal(decimal.NewFromInt(360)) {
		t.Fatalf("total=%s, esperado=360", created.TotalAmount)
	}

	w = doJSON(r, http.MethodGet, "/api/pedidos", "", tok)
	var list []ord.Order
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("lista inesperada: %s", w.Body.String())
	}
	if list[0].ID != created.ID {
		t.Fatalf("id=%s, esperado=%s", list[0].ID, created.ID)
	}

	w = doJSON(r, http.MethodPut, "/api/pedidos/"+created.ID+"/estado", `{"status":"Cancelled"}`, tok)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (esperaba 200)", w.Code, w.Body.String())
	}
	if got := decodeOrder(t, w); got.Status != ord.Cancelled {
		t.Fatalf("estado=%s, esperado=Cancelled", got.Status)
	}

	w = doJSON(r, http.MethodGet, "/api/pedidos/"+created.ID, "", tok)
	got := decodeOrder(t, w)
	if got.Status != ord.Cancelled || got.Detail != created.Detail || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("pedido tras cancelar: %+v", got)
	}
}

// ===== Ana por Instagram, 359.98, pagado: todo lo demás igual =====
func TestOrderScenario_AnaPaid(t *testing.T) {
	t.Parallel()

	r := newTestRouter(ord.NewMemRepo(), false)

	w := doJSON(r, http.MethodPost, "/api/pedidos",
		`{"clientName":"Ana","channel":"Instagram","detail":"2x Arabica 250g","totalAmount":359.98}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s (esperaba 201)", w.Code, w.Body.String())
	}
	created := decodeOrder(t, w)
	if created.Status != ord.Pending {
		t.Fatalf("estado=%s, esperado=Pending", created.Status)
	}
	if _, err := uuid.Parse(created.ID); err != nil {
		t.Fatalf("id no generado: %q", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("createdAt vacío")
	}

	w = doJSON(r, http.MethodPut, "/api/pedidos/"+created.ID+"/estado", `{"status":"Paid"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (esperaba 200)", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/api/pedidos/"+created.ID, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (esperaba 200)", w.Code, w.Body.String())
	}
	got := decodeOrder(t, w)
	if got.Status != ord.Paid {
		t.Fatalf("estado=%s, esperado=Paid", got.Status)
	}
	if !got.TotalAmount.Equal(decimal.RequireFromString("359.98")) || !got.TotalAmount.Equal(created.TotalAmount) {
		t.Fatalf("total=%s, creado=%s", got.TotalAmount, created.TotalAmount)
	}

	want := created
	want.Status = ord.Paid
	want.TotalAmount, got.TotalAmount = decimal.Zero, decimal.Zero
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("createdAt=%s, esperado=%s", got.CreatedAt, want.CreatedAt)
	}
	want.CreatedAt, got.CreatedAt = time.Time{}, time.Time{}
	if got != want {
		t.Fatalf("pedido cambió:\n got=%+v\nwant=%+v", got, want)
	}
}

// ===== POST sin total: 400 y nada persistido =====
func TestCreateOrder_MissingTotal(t *testing.T) {
	t.Parallel()

	repo := ord.NewMemRepo()
	r := newTestRouter(repo, false)

	w := doJSON(r, http.MethodPost, "/api/pedidos", `{"clientName":"Ana","detail":"x"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (esperaba 400)", w.Code, w.Body.String())
	}
	all, _ := repo.List(context.Background())
	if len(all) != 0 {
		t.Fatalf("no debía persistir nada, hay %d", len(all))
	}
}

func TestCreateOrder_TotalAsStringAndChannel(t *testing.T) {
	t.Parallel()

	r := newTestRouter(ord.NewMemRepo(), false)
	w := doJSON(r, http.MethodPost, "/api/pedidos",
		`{"clientName":"Luis","channel":"WhatsApp","detail":"Bourbon","totalAmount":"95.50"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	o := decodeOrder(t, w)
	if o.Channel != ord.WhatsApp || !o.TotalAmount.Equal(decimal.RequireFromString("95.5")) {
		t.Fatalf("pedido inesperado: %+v", o)
	}

	w = doJSON(r, http.MethodPost, "/api/pedidos", `{"clientName":"Luis","channel":"Fax","detail":"x","totalAmount":1}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("canal inválido: status=%d (esperaba 400)", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/api/pedidos", `{not json`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("json roto: status=%d (esperaba 400)", w.Code)
	}
}

// ===== GET /api/pedidos/:id (not found) =====
func TestGetOrder_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRouter(ord.NewMemRepo(), false)
	for _, id := range []string{uuid.NewString(), "no-es-uuid"} {
		w := doJSON(r, http.MethodGet, "/api/pedidos/"+id, "", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d body=%s (esperaba 404)", w.Code, w.Body.String())
		}
	}
}

// ===== PUT /api/pedidos/:id/estado =====
func TestUpdateOrderStatus_Errors(t *testing.T) {
	t.Parallel()

	r := newTestRouter(ord.NewMemRepo(), false)

	w := doJSON(r, http.MethodPut, "/api/pedidos/"+uuid.NewString()+"/estado", `{"status":"Paid"}`, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d (esperaba 404)", w.Code)
	}

	w = doJSON(r, http.MethodPut, "/api/pedidos/"+uuid.NewString()+"/estado", `{"status":"wtf"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d (esperaba 400)", w.Code)
	}
}

func TestUpdateOrderStatus_AcceptsLabel(t *testing.T) {
	t.Parallel()

	r := newTestRouter(ord.NewMemRepo(), false)
	w := doJSON(r, http.MethodPost, "/api/pedidos", `{"clientName":"Ana","detail":"x","totalAmount":1}`, "")
	o := decodeOrder(t, w)

	w = doJSON(r, http.MethodPut, "/api/pedidos/"+o.ID+"/estado", `{"status":"En Preparación"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := decodeOrder(t, w); got.Status != ord.InPreparation {
		t.Fatalf("estado=%s, esperado=InPreparation", got.Status)
	}
}

// ===== auth sobre /api/pedidos =====
func TestOrders_RequireAdmin(t *testing.T) {
	t.Parallel()

	r := newTestRouter(ord.NewMemRepo(), true)

	if w := doJSON(r, http.MethodGet, "/api/pedidos", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("sin token: status=%d (esperaba 401)", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/pedidos", "", token(t, auth.RoleCustomer)); w.Code != http.StatusForbidden {
		t.Fatalf("cliente: status=%d (esperaba 403)", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/pedidos", "", token(t, auth.RoleAdmin)); w.Code != http.StatusOK {
		t.Fatalf("admin: status=%d (esperaba 200)", w.Code)
	}
}

// ===== errores de persistencia: 500 genérico =====
func TestOrders_StoreFailure(t *testing.T) {
	t.Parallel()

	r := newTestRouter(brokenRepo{}, false)
	w := doJSON(r, http.MethodGet, "/api/pedidos", "", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d (esperaba 500)", w.Code)
	}
	if w.Body.String() != `{"error":"internal error"}` {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}
