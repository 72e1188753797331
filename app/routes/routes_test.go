package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopfront/app/controllers"
	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/app/routes"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/app"
	"github.com/shashiranjanraj/shopfront/pkg/auth"
	"github.com/shashiranjanraj/shopfront/pkg/event"
	"github.com/shashiranjanraj/shopfront/pkg/middleware"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
	"github.com/shashiranjanraj/shopfront/pkg/rbac"
	"github.com/shashiranjanraj/shopfront/pkg/router"
	"github.com/shashiranjanraj/shopfront/pkg/testkit"
)

const (
	adminID    = "65a000000000000000000001"
	customerID = "65a000000000000000000002"
)

type accounts map[string]*rbac.Account

func (a accounts) FindAccount(_ context.Context, id string) (*rbac.Account, error) {
	return a[id], nil
}

type memReviews struct {
	mu   sync.Mutex
	byID map[string]*models.Review
}

func (m *memReviews) List(_ context.Context, f repositories.ReviewFilter, _ pagination.Params) ([]models.Review, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for _, r := range m.byID {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (m *memReviews) FindByID(_ context.Context, id string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, apperrors.NotFound("Review")
	}
	cp := *r
	return &cp, nil
}

func (m *memReviews) Create(_ context.Context, r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = primitive.NewObjectID()
	cp := *r
	m.byID[r.ID.Hex()] = &cp
	return nil
}

func (m *memReviews) SetStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return apperrors.NotFound("Review")
	}
	r.Status = status
	return nil
}

func (m *memReviews) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return apperrors.NotFound("Review")
	}
	delete(m.byID, id)
	return nil
}

type oneProduct struct{ id string }

func (p oneProduct) FindByID(_ context.Context, id string) (*models.Product, error) {
	if id != p.id {
		return nil, apperrors.NotFound("Product")
	}
	oid, _ := primitive.ObjectIDFromHex(id)
	return &models.Product{ID: oid, Name: "Tea"}, nil
}

type harness struct {
	handler  http.Handler
	signer   *auth.Signer
	reviews  *memReviews
	product  string
	recorded []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		signer:  auth.NewSigner("test-secret"),
		reviews: &memReviews{byID: map[string]*models.Review{}},
		product: primitive.NewObjectID().Hex(),
	}

	bus := event.NewBus()
	bus.Listen(event.ReviewChanged, func(_ context.Context, payload any) {
		h.recorded = append(h.recorded, payload.(event.ReviewChangedPayload).ProductID)
	})

	gate := rbac.NewGate(h.signer, accounts{
		adminID:    {ID: adminID, Email: "admin@example.com", Name: "Admin", IsAdmin: true},
		customerID: {ID: customerID, Email: "c@example.com", Name: "Cust"},
	})
	handlers := &routes.Controllers{
		Reviews: controllers.NewReviewController(services.NewReviewService(h.reviews, oneProduct{id: h.product}, bus)),
	}

	h.handler = app.New().
		Authenticate(middleware.Authenticate(h.signer)).
		Routes(func(r *router.Router) {
			routes.RegisterAPI(r, handlers, gate)
			routes.RegisterWeb(r, gate)
		}).
		Handler()
	return h
}

func (h *harness) token(t *testing.T, id string, admin bool) string {
	t.Helper()
	tok, err := h.signer.GenerateToken(id, admin)
	require.NoError(t, err)
	return tok
}

func (h *harness) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

var gatedAPI = [][2]string{
	{http.MethodPost, "/api/products"},
	{http.MethodPut, "/api/products/p1"},
	{http.MethodDelete, "/api/products/p1"},
	{http.MethodPut, "/api/reviews/r1"},
	{http.MethodDelete, "/api/reviews/r1"},
	{http.MethodPost, "/api/banners"},
	{http.MethodPut, "/api/banners/b1"},
	{http.MethodDelete, "/api/banners/b1"},
	{http.MethodPut, "/api/testimonials/t1"},
	{http.MethodDelete, "/api/testimonials/t1"},
	{http.MethodGet, "/api/newsletter"},
	{http.MethodGet, "/api/contact"},
	{http.MethodPut, "/api/contact/c1"},
	{http.MethodGet, "/api/admin/reviews"},
	{http.MethodGet, "/api/admin/testimonials"},
	{http.MethodGet, "/api/admin/orders"},
	{http.MethodGet, "/api/admin/orders/o1"},
	{http.MethodPut, "/api/admin/orders/o1"},
	{http.MethodGet, "/api/admin/users"},
	{http.MethodGet, "/api/admin/users/u1"},
	{http.MethodPut, "/api/admin/users/u1"},
	{http.MethodDelete, "/api/admin/users/u1"},
	{http.MethodGet, "/api/admin/analytics"},
}

func TestAdminAPI_DeniesWithoutAdmin(t *testing.T) {
	h := newHarness(t)
	customer := h.token(t, customerID, false)
	ghost := h.token(t, primitive.NewObjectID().Hex(), true)

	for _, rt := range gatedAPI {
		for name, tok := range map[string]string{
			"anonymous": "",
			"customer":  customer,
			"garbage":   "not.a.jwt",
			"deleted":   ghost,
		} {
			rec := h.do(rt[0], rt[1], "", tok)
			assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s as %s", rt[0], rt[1], name)
			assert.JSONEq(t, `{"error":"Admin access required"}`, rec.Body.String())
		}
	}
}

func TestAdminAPI_StaleAdminClaimIsRechecked(t *testing.T) {
	h := newHarness(t)
	// The token says admin but the account no longer is.
	rec := h.do(http.MethodGet, "/api/admin/reviews", "", h.token(t, customerID, true))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCustomerRoutes_RequireUser(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/api/cart", "/api/orders", "/api/auth/me"} {
		rec := h.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

		rec = h.do(http.MethodGet, path, "", "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
	}
}

func TestAdminPages_Redirects(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/admin/orders?tab=open", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fadmin%2Forders%3Ftab%3Dopen", rec.Header().Get("Location"))

	rec = h.do(http.MethodGet, "/admin", "", "bad")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login?redirect="))

	rec = h.do(http.MethodGet, "/admin/users", "", h.token(t, customerID, false))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/?error=unauthorized", rec.Header().Get("Location"))
}

func TestAdminPages_AllowAdmin(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/admin/products", "", h.token(t, adminID, true))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool               `json:"success"`
		Admin   rbac.AdminIdentity `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "admin@example.com", body.Admin.Email)
}

func TestReviewModerationOverHTTP(t *testing.T) {
	h := newHarness(t)
	admin := h.token(t, adminID, true)

	rec := h.do(http.MethodPost, "/api/reviews",
		`{"productId":"`+h.product+`","customerName":"Ann","customerEmail":"ANN@x.io","rating":4,"comment":"good"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		ReviewID string `json:"reviewId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Review submitted successfully and is pending approval", created.Message)
	require.NotEmpty(t, created.ReviewID)

	rec = h.do(http.MethodGet, "/api/reviews?productId="+h.product, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":0`)

	rec = h.do(http.MethodPut, "/api/reviews/"+created.ReviewID, `{"status":"published"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid status"}`, rec.Body.String())

	rec = h.do(http.MethodPut, "/api/reviews/"+created.ReviewID, `{"status":"approved"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review status updated successfully")

	rec = h.do(http.MethodPut, "/api/reviews/"+primitive.NewObjectID().Hex(), `{"status":"approved"}`, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Review not found"}`, rec.Body.String())

	rec = h.do(http.MethodDelete, "/api/reviews/"+created.ReviewID, "", admin)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{h.product, h.product, h.product}, h.recorded)
}

func TestReviewSubmission_Validation(t *testing.T) {
	h := newHarness(t)

	cases := []struct {
		body string
		code int
		msg  string
	}{
		{`{"productId":"` + h.product + `","customerName":"Ann"}`, http.StatusBadRequest, "Missing required fields"},
		{`{"productId":"` + h.product + `","customerName":"Ann","rating":9,"comment":"x"}`, http.StatusBadRequest, "Rating must be between 1 and 5"},
		{`{"productId":"` + primitive.NewObjectID().Hex() + `","customerName":"Ann","rating":3,"comment":"x"}`, http.StatusNotFound, "Product not found"},
	}
	for _, tc := range cases {
		rec := h.do(http.MethodPost, "/api/reviews", tc.body, "")
		assert.Equal(t, tc.code, rec.Code, tc.body)
		assert.Contains(t, rec.Body.String(), tc.msg)
	}
	assert.Empty(t, h.recorded)
}

func TestMissingEntities_ExactMessages(t *testing.T) {
	h := newHarness(t)
	admin := h.token(t, adminID, true)
	missing := primitive.NewObjectID().Hex()

	rec := h.do(http.MethodDelete, "/api/reviews/"+missing, "", admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Review not found"}`, rec.Body.String())

	rec = h.do(http.MethodPost, "/api/reviews",
		`{"productId":"`+missing+`","customerName":"Ann","customerEmail":"ann@example.com","rating":3,"title":"t","comment":"x"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, rec.Body.String())
	assert.Empty(t, h.recorded)
}

func TestReviewModerationScenario(t *testing.T) {
	h := newHarness(t)

	state := testkit.RunSuite(t, h.handler, "testdata/review_moderation.json", testkit.Vars{
		"productId":     h.product,
		"adminToken":    h.token(t, adminID, true),
		"customerToken": h.token(t, customerID, false),
	})
	assert.Equal(t, state["reviewId"], state["listedId"])
	assert.Len(t, h.recorded, 3)
}
