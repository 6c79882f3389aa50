package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/order-template-api/infrastructure/integrator/supabase/supabaseclient"
	"github.com/vfg2006/order-template-api/internal/config"
	"github.com/vfg2006/order-template-api/internal/domain"
)

type capturedRequest struct {
	path   string
	query  map[string]string
	apiKey string
	bearer string
}

func newTestIntegrator(t *testing.T, status int, body string) (SupabaseIntegrator, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.query = map[string]string{}
		for k := range r.URL.Query() {
			captured.query[k] = r.URL.Query().Get(k)
		}
		captured.apiKey = r.Header.Get("apikey")
		captured.bearer = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := supabaseclient.NewClient(config.Supabase{
		URL:     srv.URL,
		Key:     "service-key",
		Timeout: 5 * time.Second,
	})
	return New(client), captured
}

func TestSupabaseService_ListPlatforms(t *testing.T) {
	integrator, req := newTestIntegrator(t, http.StatusOK, `[{"name":"Shopee"},{"name":"TikTok"}]`)

	platforms, err := integrator.ListPlatforms(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, []domain.Platform{{Name: "Shopee"}, {Name: "TikTok"}}, platforms)
	assert.Equal(t, "/rest/v1/platforms", req.path)
	assert.Equal(t, "name", req.query["select"])
	assert.Equal(t, "eq.user-1", req.query["user_id"])
	assert.Equal(t, "service-key", req.apiKey)
	assert.Equal(t, "Bearer service-key", req.bearer)
}

func TestSupabaseService_ListCreators(t *testing.T) {
	integrator, req := newTestIntegrator(t, http.StatusOK,
		`[{"name":"Mint","commission_rate":12.5},{"name":"Beam","commission_rate":null}]`)

	creators, err := integrator.ListCreators(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, creators, 2)

	assert.Equal(t, "name,commission_rate", req.query["select"])
	assert.Equal(t, 12.5, creators[0].Rate())
	assert.Nil(t, creators[1].CommissionRate)
}

func TestSupabaseService_ListProducts(t *testing.T) {
	integrator, req := newTestIntegrator(t, http.StatusOK, `[
		{"name":"Serum","category":"Skincare","sku":"SR-01","costprice":120,"suggestedPrice":390,"commissionRate":10},
		{"name":"Toner","category":null,"sku":null,"costprice":null,"suggestedPrice":null,"commissionRate":null}
	]`)

	products, err := integrator.ListProducts(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "/rest/v1/products", req.path)
	assert.Equal(t, "name,category,sku,costprice,suggestedPrice,commissionRate", req.query["select"])
	assert.Equal(t, "SR-01", products[0].SKU)
	assert.Equal(t, 390.0, products[0].SuggestedPrice)
	assert.Equal(t, domain.Product{Name: "Toner"}, products[1])
}

func TestSupabaseService_EmptyTable(t *testing.T) {
	integrator, _ := newTestIntegrator(t, http.StatusOK, `[]`)

	products, err := integrator.ListProducts(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestSupabaseService_ErrorStatus(t *testing.T) {
	integrator, _ := newTestIntegrator(t, http.StatusUnauthorized, `{"message":"Invalid API key"}`)

	creators, err := integrator.ListCreators(context.Background(), "user-1")
	assert.Nil(t, creators)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creators")
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestSupabaseService_InvalidPayload(t *testing.T) {
	integrator, _ := newTestIntegrator(t, http.StatusOK, `{"not":"a list"}`)

	platforms, err := integrator.ListPlatforms(context.Background(), "user-1")
	assert.Nil(t, platforms)
	assert.Error(t, err)
}

func TestSupabaseService_Ping(t *testing.T) {
	integrator, req := newTestIntegrator(t, http.StatusOK, `{}`)

	require.NoError(t, integrator.Ping(context.Background()))
	assert.Equal(t, "/rest/v1/", req.path)
}

func TestSupabaseService_PingFailure(t *testing.T) {
	integrator, _ := newTestIntegrator(t, http.StatusServiceUnavailable, `down`)

	assert.Error(t, integrator.Ping(context.Background()))
}
