package supabaseclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/order-template-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	Select(ctx context.Context, params SelectParams, out interface{}) error
	Ping(ctx context.Context) error
}

type SupabaseClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient cria o cliente da API REST do Supabase. O http.Client é compartilhado
// por todas as requisições do processo.
func NewClient(cfg config.Supabase) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &SupabaseClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: cfg.URL,
		apiKey:  cfg.Key,
	}
}
