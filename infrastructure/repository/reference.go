// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/order-template-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-template-api/internal/domain"
)

const (
	platformsTable = "platforms"
	creatorsTable  = "creators"
	productsTable  = "products"

	ownerColumn = "user_id"
)

//go:generate mockgen -source=reference.go -destination=mocks/reference_mock.go -package=mocks

// ReferenceRepository lê os dados de referência de um usuário.
// As linhas voltam na ordem em que o banco as entrega.
type ReferenceRepository interface {
	ListPlatforms(ctx context.Context, userID string) ([]domain.Platform, error)
	ListCreators(ctx context.Context, userID string) ([]domain.Creator, error)
	ListProducts(ctx context.Context, userID string) ([]domain.Product, error)
}

type referenceRepository struct {
	conn postgres.Queryer
}

func NewReferenceRepository(conn postgres.Queryer) ReferenceRepository {
	return &referenceRepository{
		conn: conn,
	}
}

func (r *referenceRepository) ListPlatforms(ctx context.Context, userID string) ([]domain.Platform, error) {
	rows, err := r.query(ctx, platformsTable, userID, "name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	platforms := make([]domain.Platform, 0)
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("erro ao escanear plataforma: %w", err)
		}
		platforms = append(platforms, domain.Platform{Name: name.String})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de plataformas: %w", err)
	}

	return platforms, nil
}

func (r *referenceRepository) ListCreators(ctx context.Context, userID string) ([]domain.Creator, error) {
	rows, err := r.query(ctx, creatorsTable, userID, "name", "commission_rate")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creators := make([]domain.Creator, 0)
	for rows.Next() {
		var (
			name sql.NullString
			rate sql.NullFloat64
		)
		if err := rows.Scan(&name, &rate); err != nil {
			return nil, fmt.Errorf("erro ao escanear criador: %w", err)
		}
		creators = append(creators, domain.Creator{
			Name:           name.String,
			CommissionRate: nullableFloat(rate),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de criadores: %w", err)
	}

	return creators, nil
}

func (r *referenceRepository) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	rows, err := r.query(ctx, productsTable, userID,
		"name",
		"category",
		"sku",
		"costprice",
		`"suggestedPrice"`,
		`"commissionRate"`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		item, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products = append(products, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de produtos: %w", err)
	}

	return products, nil
}

func (r *referenceRepository) query(ctx context.Context, table, userID string, columns ...string) (*sql.Rows, error) {
	sqlQuery, args, err := squirrel.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{ownerColumn: userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query de %s: %w", table, err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de %s: %w", table, err)
	}

	return rows, nil
}

func (r *referenceRepository) scanProduct(rows *sql.Rows) (*domain.Product, error) {
	var (
		name, category, sku   sql.NullString
		cost, suggested, rate sql.NullFloat64
	)

	if err := rows.Scan(&name, &category, &sku, &cost, &suggested, &rate); err != nil {
		return nil, err
	}

	return &domain.Product{
		Name:           name.String,
		Category:       category.String,
		SKU:            sku.String,
		CostPrice:      cost.Float64,
		SuggestedPrice: suggested.Float64,
		CommissionRate: nullableFloat(rate),
	}, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
