package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/order-template-api/pkg/log"
)

func TestCors_SetsHeadersForAnyOrigin(t *testing.T) {
	h := Cors()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://qualquer.exemplo")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin, X-Requested-With, Content-Type, Accept", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestCors_Preflight(t *testing.T) {
	called := false
	h := Cors()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/export-orders-template", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_CountsBytesAndSetsCorrelationID(t *testing.T) {
	log.SetupTestLogger()

	var seenID string
	h := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("abc"))
		_, _ = w.Write([]byte("de"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "abcde", rec.Body.String())
	require.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rec.Header().Get(CorrelationIDHeader))

	lrw := newLoggingResponseWriter(httptest.NewRecorder())
	_, _ = lrw.Write([]byte("12345"))
	assert.Equal(t, 5, lrw.bytes)
	assert.Equal(t, http.StatusOK, lrw.statusCode)
}

func TestLoggingMiddleware_LevelFollowsStatus(t *testing.T) {
	log.SetupTestLogger()
	log.SetEnvironment("production")
	hook := logtest.NewGlobal()
	t.Cleanup(func() {
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
		log.SetEnvironment("")
	})

	tests := []struct {
		status int
		level  logrus.Level
	}{
		{status: http.StatusOK, level: logrus.InfoLevel},
		{status: http.StatusBadRequest, level: logrus.WarnLevel},
		{status: http.StatusInternalServerError, level: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			hook.Reset()
			h := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export-orders-template?user_id=user-1", nil))

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.status, entry.Data["status_code"])
			assert.Equal(t, "user-1", entry.Data["user_id"])
			assert.Equal(t, rec.Header().Get(CorrelationIDHeader), entry.Data["correlation_id"])
		})
	}
}

func TestLogPanicMiddleware_Recovers(t *testing.T) {
	log.SetupTestLogger()

	h := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export-orders-template", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error\n", rec.Body.String())
}

func TestLogPanicMiddleware_RepanicsOnAbort(t *testing.T) {
	log.SetupTestLogger()

	h := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	rec := httptest.NewRecorder()
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export-orders-template", nil))
	})
	assert.Empty(t, rec.Body.String())
}
