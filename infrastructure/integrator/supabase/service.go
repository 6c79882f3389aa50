package supabase

import (
	"context"

	"github.com/vfg2006/order-template-api/infrastructure/integrator/supabase/supabaseclient"
	"github.com/vfg2006/order-template-api/internal/domain"
)

const ownerColumn = "user_id"

var (
	platformColumns = []string{"name"}
	creatorColumns  = []string{"name", "commission_rate"}
	productColumns  = []string{"name", "category", "sku", "costprice", "suggestedPrice", "commissionRate"}
)

// SupabaseIntegrator lê as tabelas de referência pela API REST do Supabase
type SupabaseIntegrator interface {
	ListPlatforms(ctx context.Context, userID string) ([]domain.Platform, error)
	ListCreators(ctx context.Context, userID string) ([]domain.Creator, error)
	ListProducts(ctx context.Context, userID string) ([]domain.Product, error)
	Ping(ctx context.Context) error
}

type SupabaseService struct {
	Client supabaseclient.Client
}

func New(client supabaseclient.Client) SupabaseIntegrator {
	return &SupabaseService{
		Client: client,
	}
}

func (s *SupabaseService) ListPlatforms(ctx context.Context, userID string) ([]domain.Platform, error) {
	platforms := make([]domain.Platform, 0)
	if err := s.Client.Select(ctx, selectByOwner(domain.PlatformsCollection, platformColumns, userID), &platforms); err != nil {
		return nil, err
	}
	return platforms, nil
}

func (s *SupabaseService) ListCreators(ctx context.Context, userID string) ([]domain.Creator, error) {
	creators := make([]domain.Creator, 0)
	if err := s.Client.Select(ctx, selectByOwner(domain.CreatorsCollection, creatorColumns, userID), &creators); err != nil {
		return nil, err
	}
	return creators, nil
}

func (s *SupabaseService) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	if err := s.Client.Select(ctx, selectByOwner(domain.ProductsCollection, productColumns, userID), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *SupabaseService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx)
}

func selectByOwner(table string, columns []string, userID string) supabaseclient.SelectParams {
	return supabaseclient.SelectParams{
		Table:   table,
		Columns: columns,
		Eq:      map[string]string{ownerColumn: userID},
	}
}
