package supabaseclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/pkg/errors"
)

const restPath = "/rest/v1"

// SelectParams descreve uma consulta do PostgREST: colunas e filtros de igualdade
type SelectParams struct {
	Table   string
	Columns []string
	Eq      map[string]string
}

func (c *SupabaseClient) Select(ctx context.Context, params SelectParams, out interface{}) error {
	endpoint, err := c.endpoint(params.Table)
	if err != nil {
		return err
	}

	query := endpoint.Query()
	query.Set("select", strings.Join(params.Columns, ","))
	for column, value := range params.Eq {
		query.Set(column, "eq."+value)
	}
	endpoint.RawQuery = query.Encode()

	resp, err := c.do(ctx, endpoint.String())
	if err != nil {
		return errors.Wrapf(err, "supabase: erro ao consultar %s", params.Table)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return errors.Wrapf(err, "supabase: erro ao consultar %s", params.Table)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "supabase: erro ao decodificar %s", params.Table)
	}

	return nil
}

// Ping verifica se a API REST responde com as credenciais configuradas
func (c *SupabaseClient) Ping(ctx context.Context) error {
	endpoint, err := c.endpoint("")
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, endpoint.String())
	if err != nil {
		return errors.Wrap(err, "supabase: erro ao verificar conexão")
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *SupabaseClient) endpoint(table string) (*url.URL, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "supabase: erro ao analisar a URL base")
	}
	endpoint.Path = path.Join(endpoint.Path, restPath, table)
	if table == "" {
		endpoint.Path += "/"
	}
	return endpoint, nil
}

func (c *SupabaseClient) do(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return errors.Errorf("requisição falhou com status %s: %s", resp.Status, strings.TrimSpace(string(body)))
}
