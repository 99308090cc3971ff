package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/policy"
	"github.com/fekuna/omnipos-storefront-service/internal/policy/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	doc *model.PolicyDocument
	err error
}

func (s stubRepo) FindDocument(context.Context, policy.Kind) (*model.PolicyDocument, error) {
	return s.doc, s.err
}

func setupRouter(t *testing.T, repo policy.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tr, err := i18n.New()
	require.NoError(t, err)

	log := logger.NewNop()
	h := NewPolicyHandler(usecase.NewPolicyUseCase(repo, nil, time.Minute, log), tr, log)

	r := gin.New()
	h.Register(r.Group("/api/v1"))
	return r
}

func get(r *gin.Engine, rawType string, lang string) *httptest.ResponseRecorder {
	target := "/api/v1/policies"
	if rawType != "" {
		target += "?type=" + url.QueryEscape(rawType)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetPolicy_OK(t *testing.T) {
	doc := &model.PolicyDocument{
		TermsOfService: sql.NullString{String: "No refunds on socks.", Valid: true},
		UpdatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	w := get(setupRouter(t, stubRepo{doc: doc}), "terms of service", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":"No refunds on socks.","updatedAt":"2026-01-02T03:04:05Z"}`, w.Body.String())
}

func TestGetPolicy_MissingType(t *testing.T) {
	w := get(setupRouter(t, stubRepo{}), "", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"policy type is required"}`, w.Body.String())
}

func TestGetPolicy_NotFoundLocalized(t *testing.T) {
	w := get(setupRouter(t, stubRepo{}), "refund policy", "id")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"konten kebijakan tidak ditemukan"}`, w.Body.String())
}

func TestGetPolicy_InternalError(t *testing.T) {
	w := get(setupRouter(t, stubRepo{err: sql.ErrConnDone}), "privacy policy", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
