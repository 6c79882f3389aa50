package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-template-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-template-api/infrastructure/integrator/supabase"
	"github.com/vfg2006/order-template-api/infrastructure/integrator/supabase/supabaseclient"
	"github.com/vfg2006/order-template-api/infrastructure/repository"
	"github.com/vfg2006/order-template-api/internal/api"
	"github.com/vfg2006/order-template-api/internal/config"
	"github.com/vfg2006/order-template-api/internal/scheduler"
	"github.com/vfg2006/order-template-api/internal/usecases/templating"
	"github.com/vfg2006/order-template-api/pkg/log"
)

// referenceSource agrupa a leitura dos dados e a verificação da origem escolhida
type referenceSource interface {
	templating.ReferenceReader
	scheduler.Pinger
}

type postgresSource struct {
	repository.ReferenceRepository
	*postgres.Connection
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel, cfg.App.Env)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, closeSource := newReferenceSource(ctx, cfg)
	defer closeSource()

	templateService, err := templating.NewService(cfg.Template, source)
	if err != nil {
		logrus.Fatal(err)
	}

	storeProbe := scheduler.NewStoreProbeService(source, cfg)
	if err := storeProbe.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a verificação da origem de dados")
	}

	server, err := api.New(cfg, templateService, storeProbe)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// newReferenceSource escolhe a origem dos dados de referência conforme REFERENCE_SOURCE
func newReferenceSource(ctx context.Context, cfg *config.Config) (referenceSource, func()) {
	switch cfg.ReferenceSource {
	case config.SourcePostgres:
		conn := pgconn(ctx, cfg.Database)
		return postgresSource{
			ReferenceRepository: repository.NewReferenceRepository(conn),
			Connection:          conn,
		}, func() { conn.Close() }
	default:
		client := supabaseclient.NewClient(cfg.Supabase)
		logrus.WithField("url", cfg.Supabase.URL).Info("Usando a API REST do Supabase como origem de dados")
		return supabase.New(client), func() {}
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
