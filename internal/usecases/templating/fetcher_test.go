package templating

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/order-template-api/infrastructure/repository/mocks"
	"github.com/vfg2006/order-template-api/internal/domain"
	"github.com/vfg2006/order-template-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestFetcher_Fetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mocks.NewMockReferenceRepository(ctrl)
	rate := 12.5

	reader.EXPECT().ListPlatforms(gomock.Any(), "user-1").
		Return([]domain.Platform{{Name: "Shopee"}, {Name: "TikTok"}}, nil)
	reader.EXPECT().ListCreators(gomock.Any(), "user-1").
		Return([]domain.Creator{{Name: "Mint", CommissionRate: &rate}}, nil)
	reader.EXPECT().ListProducts(gomock.Any(), "user-1").
		Return([]domain.Product{{Name: "Serum", SKU: "SR-01"}}, nil)

	dataset, err := NewFetcher(reader).Fetch(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Shopee", "TikTok"}, dataset.PlatformNames())
	assert.Equal(t, []string{"Mint"}, dataset.CreatorNames())
	assert.Equal(t, []string{"Serum"}, dataset.ProductNames())
}

func TestFetcher_MissingIdentifier(t *testing.T) {
	for _, userID := range []string{"", "   ", "\t"} {
		ctrl := gomock.NewController(t)
		reader := mocks.NewMockReferenceRepository(ctrl)
		// nenhuma consulta pode ser feita

		dataset, err := NewFetcher(reader).Fetch(context.Background(), userID)

		assert.ErrorIs(t, err, ErrMissingIdentifier)
		assert.True(t, IsClientError(err))
		assert.Equal(t, domain.ReferenceDataset{}, dataset)

		var tplErr *TemplateError
		require.ErrorAs(t, err, &tplErr)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, tplErr.Code)
		ctrl.Finish()
	}
}

func TestFetcher_FailureNamesCollection(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		setup      func(reader *mocks.MockReferenceRepository, cause error)
	}{
		{
			name:       "plataformas",
			collection: domain.PlatformsCollection,
			setup: func(reader *mocks.MockReferenceRepository, cause error) {
				reader.EXPECT().ListPlatforms(gomock.Any(), "user-1").Return(nil, cause)
				reader.EXPECT().ListCreators(gomock.Any(), "user-1").Return([]domain.Creator{{Name: "Mint"}}, nil)
				reader.EXPECT().ListProducts(gomock.Any(), "user-1").Return([]domain.Product{{Name: "Serum"}}, nil)
			},
		},
		{
			name:       "criadores",
			collection: domain.CreatorsCollection,
			setup: func(reader *mocks.MockReferenceRepository, cause error) {
				reader.EXPECT().ListPlatforms(gomock.Any(), "user-1").Return([]domain.Platform{{Name: "Shopee"}}, nil)
				reader.EXPECT().ListCreators(gomock.Any(), "user-1").Return(nil, cause)
				reader.EXPECT().ListProducts(gomock.Any(), "user-1").Return([]domain.Product{{Name: "Serum"}}, nil)
			},
		},
		{
			name:       "produtos",
			collection: domain.ProductsCollection,
			setup: func(reader *mocks.MockReferenceRepository, cause error) {
				reader.EXPECT().ListPlatforms(gomock.Any(), "user-1").Return([]domain.Platform{{Name: "Shopee"}}, nil)
				reader.EXPECT().ListCreators(gomock.Any(), "user-1").Return([]domain.Creator{{Name: "Mint"}}, nil)
				reader.EXPECT().ListProducts(gomock.Any(), "user-1").Return(nil, cause)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := mocks.NewMockReferenceRepository(ctrl)
			cause := errors.New("connection refused")
			tt.setup(reader, cause)

			dataset, err := NewFetcher(reader).Fetch(context.Background(), "user-1")

			// nada do que foi buscado com sucesso pode ser devolvido
			assert.Equal(t, domain.ReferenceDataset{}, dataset)
			assert.ErrorIs(t, err, ErrReferenceFetch)
			assert.ErrorIs(t, err, cause)
			assert.False(t, IsClientError(err))

			var tplErr *TemplateError
			require.ErrorAs(t, err, &tplErr)
			assert.Equal(t, tt.collection, tplErr.Collection)
			assert.Equal(t, "user-1", tplErr.UserID)
			assert.Equal(t, apiErrors.ErrReferenceFetch, tplErr.Code)
			assert.Contains(t, err.Error(), tt.collection)
		})
	}
}

func TestFetcher_FailureCancelsPendingQueries(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mocks.NewMockReferenceRepository(ctrl)
	cause := errors.New("timeout")

	reader.EXPECT().ListPlatforms(gomock.Any(), "user-1").Return(nil, cause)
	reader.EXPECT().ListCreators(gomock.Any(), "user-1").
		DoAndReturn(func(ctx context.Context, _ string) ([]domain.Creator, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	reader.EXPECT().ListProducts(gomock.Any(), "user-1").
		DoAndReturn(func(ctx context.Context, _ string) ([]domain.Product, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	_, err := NewFetcher(reader).Fetch(context.Background(), "user-1")

	var tplErr *TemplateError
	require.ErrorAs(t, err, &tplErr)
	assert.Equal(t, domain.PlatformsCollection, tplErr.Collection)
	assert.ErrorIs(t, err, cause)

	// só a coleção que falhou aparece no log
	var failed []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			failed = append(failed, entry.Message)
		}
	}
	assert.Equal(t, []string{"Erro ao buscar dados de referência"}, failed)
}

func TestFetcher_CallerCancellationIsLogged(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := mocks.NewMockReferenceRepository(ctrl)
	reader.EXPECT().ListPlatforms(gomock.Any(), "user-1").Return(nil, context.Canceled)
	reader.EXPECT().ListCreators(gomock.Any(), "user-1").Return(nil, context.Canceled)
	reader.EXPECT().ListProducts(gomock.Any(), "user-1").Return(nil, context.Canceled)

	_, err := NewFetcher(reader).Fetch(ctx, "user-1")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, hook.AllEntries(), 3)
}
