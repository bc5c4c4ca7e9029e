package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/storefront/internal/application/storefront"
	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/session"
	catalogimpl "github.com/xiebiao/storefront/internal/infrastructure/catalog"
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/logger"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	provider, err := catalogimpl.NewStaticProvider()
	require.NoError(t, err)

	log := logger.Discard()
	svc := storefront.NewService(session.NewGate(), provider, cart.NewStore(memory.NewSlot(), log), log)

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Metrics.Enabled = true

	return NewRouter(cfg, log,
		handler.NewSessionHandler(svc),
		handler.NewCatalogueHandler(svc),
		handler.NewCartHandler(svc),
		middleware.NewSessionMiddleware(svc),
	)
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func loginAs(t *testing.T, r http.Handler, branch string) {
	t.Helper()
	_, env := do(t, r, http.MethodPost, "/api/v1/session/login", gin.H{
		"username": "alice", "password": "secret", "branch": branch,
	})
	require.Equal(t, 0, env.Code, env.Message)
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)
	w, env := do(t, r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestRequestIDPropagated(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(middleware.HeaderRequestID))
}

func TestGatedRoutesRequireLogin(t *testing.T) {
	r := newTestRouter(t)

	routes := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/v1/catalogue", nil},
		{http.MethodGet, "/api/v1/cart", nil},
		{http.MethodDelete, "/api/v1/cart", nil},
		{http.MethodPost, "/api/v1/cart/items", gin.H{"book_id": "ai"}},
		{http.MethodPatch, "/api/v1/cart/items/CSE/ai", gin.H{"delta": 1}},
		{http.MethodDelete, "/api/v1/cart/items/CSE/ai", nil},
		{http.MethodPost, "/api/v1/cart/checkout", nil},
		{http.MethodPut, "/api/v1/session/branch", gin.H{"branch": "ECE"}},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w, env := do(t, r, rt.method, rt.path, rt.body)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, apperrors.ErrCodeUnauthorized, env.Code)
		})
	}
}

func TestLogin_ValidationErrors(t *testing.T) {
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodPost, "/api/v1/session/login", gin.H{
		"username": "al", "password": "", "branch": "",
	})
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)

	data := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, env)
	assert.Equal(t, map[string]string{
		session.FieldUsername: session.MsgUsernameTooShort,
		session.FieldPassword: session.MsgPasswordTooShort,
		session.FieldBranch:   session.MsgBranchRequired,
	}, data.Fields)

	_, env = do(t, r, http.MethodGet, "/api/v1/session", nil)
	view := decode[storefront.SessionView](t, env)
	assert.False(t, view.Active)
}

func TestLogin_MalformedBody(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
}

func TestForgotPassword(t *testing.T) {
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodPost, "/api/v1/session/forgot-password", gin.H{"identifier": "alice@example.com"})
	require.Equal(t, 0, env.Code)
	assert.Contains(t, decode[storefront.ForgotPasswordResult](t, env).Notice, "alice@example.com")

	_, env = do(t, r, http.MethodPost, "/api/v1/session/forgot-password", gin.H{"identifier": ""})
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
}

func TestSelectBranchAndCatalogue(t *testing.T) {
	r := newTestRouter(t)
	loginAs(t, r, "CSE")

	_, env := do(t, r, http.MethodGet, "/api/v1/catalogue", nil)
	require.Equal(t, 0, env.Code)
	catalogue := decode[storefront.CatalogueView](t, env)
	assert.Equal(t, "CSE", catalogue.Branch)
	assert.Len(t, catalogue.Books, 4)

	_, env = do(t, r, http.MethodPut, "/api/v1/session/branch", gin.H{"branch": "EEE"})
	require.Equal(t, 0, env.Code)
	assert.Equal(t, "EEE", decode[storefront.SessionView](t, env).Branch)

	_, env = do(t, r, http.MethodPut, "/api/v1/session/branch", gin.H{"branch": "MECH"})
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)

	_, env = do(t, r, http.MethodGet, "/api/v1/catalogue?branch=ECE", nil)
	catalogue = decode[storefront.CatalogueView](t, env)
	assert.Equal(t, "ECE", catalogue.Branch)
	assert.Len(t, catalogue.Books, 2)
}

func TestCartFlow(t *testing.T) {
	r := newTestRouter(t)
	loginAs(t, r, "CSE")

	_, env := do(t, r, http.MethodPost, "/api/v1/cart/items", gin.H{"book_id": "ai"})
	require.Equal(t, 0, env.Code)
	_, env = do(t, r, http.MethodPost, "/api/v1/cart/items", gin.H{"book_id": "html-24", "branch": "CSE"})
	require.Equal(t, 0, env.Code)
	view := decode[storefront.CartView](t, env)
	require.Len(t, view.Items, 2)
	assert.Equal(t, cart.DisplayTotals{Subtotal: "$113.00", Tax: "$5.65", GrandTotal: "$118.65"}, view.Totals)

	_, env = do(t, r, http.MethodPatch, "/api/v1/cart/items/CSE/ai", gin.H{"delta": 2})
	require.Equal(t, 0, env.Code)
	view = decode[storefront.CartView](t, env)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, "$250.95", view.Totals.GrandTotal)

	_, env = do(t, r, http.MethodDelete, "/api/v1/cart/items/CSE/html-24", nil)
	require.Equal(t, 0, env.Code)
	view = decode[storefront.CartView](t, env)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "$198.45", view.Totals.GrandTotal)

	_, env = do(t, r, http.MethodPost, "/api/v1/cart/checkout", nil)
	require.Equal(t, 0, env.Code)
	result := decode[storefront.CheckoutResult](t, env)
	assert.Equal(t, "$198.45", result.Billed.GrandTotal)
	assert.Equal(t, 3, result.Units)

	_, env = do(t, r, http.MethodGet, "/api/v1/cart", nil)
	view = decode[storefront.CartView](t, env)
	assert.True(t, view.Empty)
	assert.Equal(t, "$0.00", view.Totals.GrandTotal)
}

func TestCart_BindErrors(t *testing.T) {
	r := newTestRouter(t)
	loginAs(t, r, "CSE")

	_, env := do(t, r, http.MethodPost, "/api/v1/cart/items", gin.H{"branch": "CSE"})
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
	assert.Contains(t, env.Message, apperrors.ErrBindError.Message+": ")

	_, env = do(t, r, http.MethodPatch, "/api/v1/cart/items/CSE/ai", gin.H{})
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)

	_, env = do(t, r, http.MethodPatch, "/api/v1/cart/items/CSE/ai", gin.H{"delta": "two"})
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
}

func TestCart_AdjustByZero(t *testing.T) {
	r := newTestRouter(t)
	loginAs(t, r, "CSE")

	_, env := do(t, r, http.MethodPost, "/api/v1/cart/items", gin.H{"book_id": "ai"})
	require.Equal(t, 0, env.Code)
	_, env = do(t, r, http.MethodPatch, "/api/v1/cart/items/CSE/ai", gin.H{"delta": 1})
	require.Equal(t, 0, env.Code)

	_, env = do(t, r, http.MethodPatch, "/api/v1/cart/items/CSE/ai", gin.H{"delta": 0})
	require.Equal(t, 0, env.Code)
	view := decode[storefront.CartView](t, env)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	_, env = do(t, r, http.MethodPatch, "/api/v1/cart/items/CSE/ai", gin.H{"delta": -10})
	require.Equal(t, 0, env.Code)
	assert.Equal(t, 1, decode[storefront.CartView](t, env).Items[0].Quantity)
}

func TestCart_ClearKeepsSession(t *testing.T) {
	r := newTestRouter(t)
	loginAs(t, r, "CIVIL")

	_, env := do(t, r, http.MethodPost, "/api/v1/cart/items", gin.H{"book_id": "struct"})
	require.Equal(t, 0, env.Code)

	_, env = do(t, r, http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, 0, env.Code)
	assert.True(t, decode[storefront.CartView](t, env).Empty)

	_, env = do(t, r, http.MethodGet, "/api/v1/session", nil)
	assert.True(t, decode[storefront.SessionView](t, env).Active)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodGet, "/ping", nil)

	w, _ := do(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/ping",status="200"}`)
}

func TestMetricsDisabled(t *testing.T) {
	provider, err := catalogimpl.NewStaticProvider()
	require.NoError(t, err)
	log := logger.Discard()
	svc := storefront.NewService(session.NewGate(), provider, cart.NewStore(memory.NewSlot(), log), log)

	r := NewRouter(&config.Config{}, log,
		handler.NewSessionHandler(svc),
		handler.NewCatalogueHandler(svc),
		handler.NewCartHandler(svc),
		middleware.NewSessionMiddleware(svc),
	)

	w, _ := do(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerRoute(t *testing.T) {
	r := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/swagger/doc.json", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/cart/checkout")
}
