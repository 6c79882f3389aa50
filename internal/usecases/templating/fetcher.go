package templating

import (
	"context"
	"errors"
	"strings"

	"github.com/vfg2006/order-template-api/internal/domain"
	"github.com/vfg2006/order-template-api/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Fetcher busca as três coleções de referência em paralelo
type Fetcher struct {
	reader ReferenceReader
}

func NewFetcher(reader ReferenceReader) *Fetcher {
	return &Fetcher{
		reader: reader,
	}
}

// Fetch retorna o conjunto completo ou um erro. Se qualquer consulta falhar as
// demais são canceladas e nenhum dado parcial é devolvido.
func (f *Fetcher) Fetch(ctx context.Context, userID string) (domain.ReferenceDataset, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.ReferenceDataset{}, NewMissingIdentifierError()
	}

	var (
		platforms []domain.Platform
		creators  []domain.Creator
		products  []domain.Product
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		platforms, err = f.reader.ListPlatforms(gctx, userID)
		return f.fetchError(ctx, gctx, userID, domain.PlatformsCollection, err)
	})

	g.Go(func() error {
		var err error
		creators, err = f.reader.ListCreators(gctx, userID)
		return f.fetchError(ctx, gctx, userID, domain.CreatorsCollection, err)
	})

	g.Go(func() error {
		var err error
		products, err = f.reader.ListProducts(gctx, userID)
		return f.fetchError(ctx, gctx, userID, domain.ProductsCollection, err)
	})

	if err := g.Wait(); err != nil {
		return domain.ReferenceDataset{}, err
	}

	return domain.ReferenceDataset{
		Platforms: platforms,
		Creators:  creators,
		Products:  products,
	}, nil
}

// fetchError registra a falha da consulta. Consultas canceladas porque outra coleção
// já falhou não são registradas, apenas a falha original.
func (f *Fetcher) fetchError(ctx, gctx context.Context, userID, collection string, err error) error {
	if err == nil {
		return nil
	}

	if ctx.Err() == nil && gctx.Err() != nil && errors.Is(err, context.Canceled) {
		return NewReferenceFetchError(userID, collection, err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":    userID,
		"collection": collection,
		"error":      err.Error(),
	}).Error("Erro ao buscar dados de referência")

	return NewReferenceFetchError(userID, collection, err)
}
