package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/order-template-api/internal/config"
	"github.com/vfg2006/order-template-api/internal/usecases/templating"
	"github.com/vfg2006/order-template-api/internal/usecases/templating/mocks"
	"github.com/vfg2006/order-template-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func newTestServer(t *testing.T, service templating.TemplateService) *Server {
	t.Helper()
	log.SetupTestLogger()

	srv, err := New(&config.Config{
		Server: config.Server{Host: "127.0.0.1", Port: "0"},
	}, service, nil)
	require.NoError(t, err)
	return srv
}

func TestServer_HealthHasCorsHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newTestServer(t, mocks.NewMockTemplateService(ctrl))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)
}

func TestServer_PreflightOnExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newTestServer(t, mocks.NewMockTemplateService(ctrl))

	req := httptest.NewRequest(http.MethodOptions, "/export-orders-template", nil)
	req.Header.Set("Origin", "https://app.exemplo")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Origin, X-Requested-With, Content-Type, Accept", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestServer_MissingUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockTemplateService(ctrl)
	service.EXPECT().ExportOrdersTemplate(gomock.Any(), "").Return(nil, templating.NewMissingIdentifierError())

	srv := newTestServer(t, service)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export-orders-template", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing user_id", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newTestServer(t, mocks.NewMockTemplateService(ctrl))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
