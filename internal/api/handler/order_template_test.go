package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/order-template-api/internal/api/handler/router"
	"github.com/vfg2006/order-template-api/internal/domain"
	"github.com/vfg2006/order-template-api/internal/usecases/templating"
	"github.com/vfg2006/order-template-api/internal/usecases/templating/mocks"
	"github.com/vfg2006/order-template-api/internal/workbook"
	"github.com/vfg2006/order-template-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func serveTemplate(t *testing.T, service templating.TemplateService, target string) *httptest.ResponseRecorder {
	t.Helper()

	rt := router.New(router.WithRoutes(OrderTemplate(service)...))
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestExportOrdersTemplate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockTemplateService(ctrl)
	content := []byte("PK\x03\x04xlsx")
	service.EXPECT().ExportOrdersTemplate(gomock.Any(), "user-1").Return(&templating.Export{
		Filename:    "order_template_complete.xlsx",
		ContentType: workbook.ContentType,
		Content:     content,
	}, nil)

	rec := serveTemplate(t, service, "/export-orders-template?user_id=user-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, workbook.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=order_template_complete.xlsx", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "8", rec.Header().Get("Content-Length"))
	assert.Equal(t, content, rec.Body.Bytes())
}

func TestExportOrdersTemplate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		userID     string
		err        error
		wantStatus int
		wantBody   string
		wantCode   string
	}{
		{
			name:       "sem user_id",
			target:     "/export-orders-template",
			userID:     "",
			err:        templating.NewMissingIdentifierError(),
			wantStatus: http.StatusBadRequest,
			wantBody:   "Missing user_id",
			wantCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:       "falha na busca",
			target:     "/export-orders-template?user_id=user-1",
			userID:     "user-1",
			err:        templating.NewReferenceFetchError("user-1", domain.ProductsCollection, errors.New("timeout")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Error fetching reference data",
			wantCode:   apiErrors.ErrReferenceFetch,
		},
		{
			name:       "falha na geração",
			target:     "/export-orders-template?user_id=user-1",
			userID:     "user-1",
			err:        templating.NewSerializationError("user-1", errors.New("zip")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Error generating Excel file",
			wantCode:   apiErrors.ErrSerialization,
		},
		{
			name:       "erro inesperado",
			target:     "/export-orders-template?user_id=user-1",
			userID:     "user-1",
			err:        errors.New("inesperado"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error",
			wantCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := mocks.NewMockTemplateService(ctrl)
			service.EXPECT().ExportOrdersTemplate(gomock.Any(), tt.userID).Return(nil, tt.err)

			rec := serveTemplate(t, service, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantCode, rec.Header().Get("X-Error-Code"))
			assert.Empty(t, rec.Header().Get("Content-Disposition"))
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		})
	}
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (w brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestExportOrdersTemplate_WriteFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockTemplateService(ctrl)
	service.EXPECT().ExportOrdersTemplate(gomock.Any(), "user-1").Return(&templating.Export{
		Filename:    "order_template_complete.xlsx",
		ContentType: workbook.ContentType,
		Content:     []byte("conteúdo"),
	}, nil)

	h := ExportOrdersTemplate(service)
	w := brokenWriter{httptest.NewRecorder()}

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export-orders-template?user_id=user-1", nil))
	})
}

func TestExportOrdersTemplate_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockTemplateService(ctrl)
	rt := router.New(router.WithRoutes(OrderTemplate(service)...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export-orders-template?user_id=user-1", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
