package templating

import (
	"context"

	"github.com/vfg2006/order-template-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/service_mock.go -package=mocks -exclude_interfaces=ReferenceReader

// ReferenceReader define a origem dos dados de referência de um usuário.
// Implementado pelo repositório Postgres e pela integração REST do Supabase.
type ReferenceReader interface {
	ListPlatforms(ctx context.Context, userID string) ([]domain.Platform, error)
	ListCreators(ctx context.Context, userID string) ([]domain.Creator, error)
	ListProducts(ctx context.Context, userID string) ([]domain.Product, error)
}

// TemplateService gera o arquivo de template de pedidos de um usuário
type TemplateService interface {
	ExportOrdersTemplate(ctx context.Context, userID string) (*Export, error)
}
